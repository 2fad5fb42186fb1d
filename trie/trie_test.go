package trie

import "testing"

func TestInsertDedup(t *testing.T) {
	tr := New()
	if ok := tr.Insert([]int{1, 3, 5}, SecretDep{true, false}); !ok {
		t.Fatalf("first insert should report newly inserted")
	}
	if ok := tr.Insert([]int{1, 3, 5}, SecretDep{true, false}); ok {
		t.Fatalf("second insert of the same tuple should report already present")
	}
	if tr.Len() != 1 {
		t.Fatalf("expected 1 stored tuple, got %d", tr.Len())
	}
}

func TestContains(t *testing.T) {
	tr := New()
	tr.Insert([]int{2, 4}, SecretDep{false, true})
	if dep, ok := tr.Contains([]int{2, 4}); !ok || dep != (SecretDep{false, true}) {
		t.Fatalf("expected stored tuple with matching dep")
	}
	if _, ok := tr.Contains([]int{2, 5}); ok {
		t.Fatalf("unexpected tuple reported present")
	}
}

func TestContainsSubsetOf(t *testing.T) {
	tr := New()
	tr.Insert([]int{1, 2}, SecretDep{true, true})
	if !tr.ContainsSubsetOf([]int{0, 1, 2, 3}) {
		t.Fatalf("{1,2} is a subset of {0,1,2,3}, should be found")
	}
	if tr.ContainsSubsetOf([]int{0, 3, 4}) {
		t.Fatalf("no stored tuple is a subset of {0,3,4}")
	}
}
