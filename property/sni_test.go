package property

import "testing"

func TestSNI_RefreshGadgetHoldsAtOrder1(t *testing.T) {
	c := buildRefreshGadget()
	v := SNI(c, 1, 2, nil)
	if !v.Holds {
		t.Fatalf("expected the linear refresh gadget to be 1-SNI, got counterexample %v", v.Counterexample)
	}
}

func TestSNI_LeakyGadgetFailsAtOrder1(t *testing.T) {
	c := buildLeakyGadget()
	v := SNI(c, 1, 2, nil)
	if v.Holds {
		t.Fatalf("expected the unmasked bad output wire to break 1-SNI")
	}
}
