package predicate

import (
	"testing"

	"maskverify/bitdep"
	"maskverify/gauss"
)

func TestEvaluateThresholdBasic(t *testing.T) {
	w := bitdep.Widths{}
	row0 := bitdep.New(w)
	row0.Secrets[0] = 0b11 // two shares of input 1 exposed, no pivot
	rows := []bitdep.BitDep{row0}
	pivots := []gauss.Rand{{IsSet: false}}

	res := Evaluate(rows, pivots, Options{TIn: 1})
	if !res.Leaks[0] {
		t.Fatalf("popcount 2 > t_in(1) should leak input 1")
	}
	if res.Leaks[1] {
		t.Fatalf("input 2 carries nothing, should not leak")
	}
}

func TestEvaluatePivotedRowDoesNotLeak(t *testing.T) {
	w := bitdep.Widths{}
	row0 := bitdep.New(w)
	row0.Secrets[0] = 0b11
	rows := []bitdep.BitDep{row0}
	pivots := []gauss.Rand{{IsSet: true}} // masked by a surviving random

	res := Evaluate(rows, pivots, Options{TIn: 0})
	if res.Leaks[0] {
		t.Fatalf("a pivoted (masked) row must not contribute to leakage")
	}
}

func TestEvaluatePINIMergesInputs(t *testing.T) {
	w := bitdep.Widths{}
	row0 := bitdep.New(w)
	row0.Secrets[0] = 0b1
	row1 := bitdep.New(w)
	row1.Secrets[1] = 0b10
	rows := []bitdep.BitDep{row0, row1}
	pivots := []gauss.Rand{{}, {}}

	res := Evaluate(rows, pivots, Options{TIn: 1, PINI: true})
	if !res.Leaks[0] || !res.Leaks[1] {
		t.Fatalf("PINI mode should merge both inputs' masks and report both as leaking together")
	}
}

func TestEvaluateSharesToIgnore(t *testing.T) {
	w := bitdep.Widths{}
	row0 := bitdep.New(w)
	row0.Secrets[0] = 0b11
	rows := []bitdep.BitDep{row0}
	pivots := []gauss.Rand{{}}

	res := Evaluate(rows, pivots, Options{TIn: 1, SharesToIgnore: 0b01})
	if res.Leaks[0] {
		t.Fatalf("conceded share should be ignored, leaving only popcount 1 <= t_in(1)")
	}
}

func TestSearchRandomAugmentationFindsCancellation(t *testing.T) {
	w := bitdep.Widths{RandLen: 1}
	leakWithRandom := bitdep.New(w)
	leakWithRandom.Secrets[0] = 0b1
	bitdep.SetBit(leakWithRandom.Randoms, 0)

	subset, _, ok := SearchRandomAugmentation([]bitdep.BitDep{leakWithRandom}, w, 0, nil, Options{TIn: 0, CombFreeSpace: 1})
	if !ok {
		t.Fatalf("expected forcing random 0 to zero to expose the leak")
	}
	if len(subset) != 1 || subset[0] != 0 {
		t.Fatalf("expected subset {0}, got %v", subset)
	}
}
