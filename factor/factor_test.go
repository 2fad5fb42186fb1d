package factor

import (
	"testing"

	"maskverify/bitdep"
	"maskverify/circuit"
)

func denseWithRandom(n, r, randomIdx int) circuit.Dependency {
	d := circuit.Dependency{
		Secrets: [2][]uint8{make([]uint8, n), make([]uint8, n)},
		Randoms: make([]uint8, r),
	}
	d.Randoms[randomIdx] = 1
	return d
}

func denseWithSecret(n, r, input, share int) circuit.Dependency {
	d := circuit.Dependency{
		Secrets: [2][]uint8{make([]uint8, n), make([]uint8, n)},
		Randoms: make([]uint8, r),
	}
	d.Secrets[input][share] = 1
	return d
}

func TestFactorizeDistributesProduct(t *testing.T) {
	n, r := 2, 2
	left := denseWithSecret(n, r, 0, 0) // a0
	right := denseWithRandom(n, r, 0)   // r0 (refreshed share of b, say)

	w := bitdep.Widths{RandLen: 1, MultLen: 1}
	row := bitdep.New(w)
	bitdep.SetBit(row.Mults, 0)

	mults := []circuit.MultDependency{{Left: left, Right: right}}
	res, err := Factorize(mults, row, w, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bitdep.PopCountWords(res.Base.Mults) != 0 {
		t.Fatalf("base row should have its mult bits cleared")
	}
	if len(res.FactorRows) != 2 {
		t.Fatalf("expected 2 factor rows (1 left atom + 1 right atom), got %d", len(res.FactorRows))
	}
	// left atom (a0) XOR right operand (r0), and right atom (r0) XOR left
	// operand (a0): both factor rows are secret a0 XOR random r0
	rowsA0R0 := 0
	for _, fr := range res.FactorRows {
		if fr.Secrets[0]&1 != 0 && bitdep.TestBit(fr.Randoms, 0) {
			rowsA0R0++
		}
	}
	if rowsA0R0 != 2 {
		t.Fatalf("expected one factor row per operand atom, got %+v", res.FactorRows)
	}
}

func TestFactorizeNoopWithoutInputRands(t *testing.T) {
	w := bitdep.Widths{RandLen: 1, MultLen: 1}
	row := bitdep.New(w)
	bitdep.SetBit(row.Mults, 0)
	mults := []circuit.MultDependency{{Left: denseWithSecret(2, 1, 0, 0), Right: denseWithRandom(2, 1, 0)}}

	res, err := Factorize(mults, row, w, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bitdep.TestBit(res.Base.Mults, 0) {
		t.Fatalf("without input refresh, the row should pass through unchanged")
	}
	if res.FactorRows != nil {
		t.Fatalf("expected no factor rows without input refresh")
	}
}

func TestFactorizeRejectsRandomOnBothSides(t *testing.T) {
	w := bitdep.Widths{RandLen: 1, MultLen: 2}
	row := bitdep.New(w)
	bitdep.SetBit(row.Mults, 0)
	bitdep.SetBit(row.Mults, 1)

	// mult 0: left has r0; mult 1: right has r0 too -- folded together
	// this row now straddles a random on both aggregate sides.
	mults := []circuit.MultDependency{
		{Left: denseWithRandom(2, 1, 0), Right: denseWithSecret(2, 1, 0, 0)},
		{Left: denseWithSecret(2, 1, 1, 0), Right: denseWithRandom(2, 1, 0)},
	}
	_, err := Factorize(mults, row, w, true)
	if err == nil {
		t.Fatalf("expected a circuit-format error")
	}
}
