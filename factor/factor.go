// Package factor implements the multiplication-factorization step:
// distributing a product (Σ aᵢ)(Σ bⱼ) into per-operand-atom rows so that
// randoms hidden inside a product become visible to Gaussian elimination.
package factor

import (
	"maskverify/bitdep"
	"maskverify/circuit"
	"maskverify/verifyerr"
)

// Atom enumerates the single-bit "atoms" of a dense Dependency: one per
// set bit in its secrets, randoms, correction-output masks, plus the
// constant if set. These are the individual terms a factored product
// distributes over.
type Atom struct {
	Kind int // AtomSecret, AtomRandom, AtomCorrection, AtomConstant
	Arg0 int // input index for AtomSecret
	Arg1 int // share/random/correction index
}

const (
	AtomSecret = iota
	AtomRandom
	AtomCorrection
	AtomConstant
)

func atomsOf(d circuit.Dependency) []Atom {
	var atoms []Atom
	for i := 0; i < 2; i++ {
		for j, v := range d.Secrets[i] {
			if v != 0 {
				atoms = append(atoms, Atom{Kind: AtomSecret, Arg0: i, Arg1: j})
			}
		}
	}
	for j, v := range d.Randoms {
		if v != 0 {
			atoms = append(atoms, Atom{Kind: AtomRandom, Arg1: j})
		}
	}
	for j, v := range d.CorrectionOutputs {
		if v != 0 {
			atoms = append(atoms, Atom{Kind: AtomCorrection, Arg1: j})
		}
	}
	if d.Constant != 0 {
		atoms = append(atoms, Atom{Kind: AtomConstant})
	}
	return atoms
}

func atomBitDep(a Atom, w bitdep.Widths) bitdep.BitDep {
	b := bitdep.New(w)
	switch a.Kind {
	case AtomSecret:
		b.Secrets[a.Arg0] |= 1 << uint(a.Arg1)
	case AtomRandom:
		bitdep.SetBit(b.Randoms, a.Arg1)
	case AtomCorrection:
		bitdep.SetBit(b.CorrectionOutputs, a.Arg1)
	case AtomConstant:
		b.Constant = true
	}
	return b
}

func denseToBitDep(d circuit.Dependency, w bitdep.Widths) bitdep.BitDep {
	return bitdep.FromDense(d.Secrets, d.Randoms, d.CorrectionOutputs, d.Mults, d.Constant, w)
}

// Result is the output of factoring one row: the row with its mult bits
// cleared (still carrying whatever secrets/randoms/corrections/constant
// it had besides the products) plus the extra rows exposing each
// product's hidden randoms, each of which still needs to be folded back
// into the Gaussian eliminator by the caller.
type Result struct {
	Base       bitdep.BitDep
	FactorRows []bitdep.BitDep
}

// Factorize distributes every product referenced by row's Mults bitmask,
// given the circuit's mult-term table. It is a no-op (Base==row,
// FactorRows==nil) unless hasInputRands is true and row carries at
// least one mult bit; a row whose randoms were never refreshed before a
// multiplication can never hide anything behind a product in the first
// place, so factoring it would be wasted work.
//
// It returns a *verifyerr.CircuitFormatError if, across every mult term
// referenced by row simultaneously, some random or some input share
// appears on both the aggregate left side and the aggregate right side
// — a condition each individual MultDependency already rules out in
// isolation, but that folding several wires of a tuple together into one
// row can still expose.
func Factorize(mults []circuit.MultDependency, row bitdep.BitDep, w bitdep.Widths, hasInputRands bool) (Result, error) {
	if !hasInputRands || bitdep.PopCountWords(row.Mults) == 0 {
		return Result{Base: row}, nil
	}

	var leftRandomsUsed, rightRandomsUsed []bool
	var leftSecrets, rightSecrets [2]uint64
	var factorRows []bitdep.BitDep

	for m := 0; m < len(mults); m++ {
		if !bitdep.TestBit(row.Mults, m) {
			continue
		}
		md := mults[m]
		leftRandomsUsed = orBools(leftRandomsUsed, md.Left.Randoms)
		rightRandomsUsed = orBools(rightRandomsUsed, md.Right.Randoms)
		for i := 0; i < 2; i++ {
			leftSecrets[i] |= secretMask(md.Left.Secrets[i])
			rightSecrets[i] |= secretMask(md.Right.Secrets[i])
		}

		rightBit := denseToBitDep(md.Right, w)
		leftBit := denseToBitDep(md.Left, w)
		for _, a := range atomsOf(md.Left) {
			fr := atomBitDep(a, w)
			fr.XOR(rightBit)
			factorRows = append(factorRows, fr)
		}
		for _, a := range atomsOf(md.Right) {
			fr := atomBitDep(a, w)
			fr.XOR(leftBit)
			factorRows = append(factorRows, fr)
		}
	}

	if boolsIntersect(leftRandomsUsed, rightRandomsUsed) {
		return Result{}, verifyerr.NewCircuitFormatError("", "a tuple row carries a random on both sides of a product across folded multiplications")
	}
	if leftSecrets[0]&rightSecrets[0] != 0 || leftSecrets[1]&rightSecrets[1] != 0 {
		return Result{}, verifyerr.NewCircuitFormatError("", "a tuple row carries the same input share on both sides of a product across folded multiplications")
	}

	base := row.Clone()
	for i := range base.Mults {
		base.Mults[i] = 0
	}
	return Result{Base: base, FactorRows: factorRows}, nil
}

func orBools(acc []bool, src []uint8) []bool {
	if acc == nil {
		acc = make([]bool, len(src))
	}
	for i, v := range src {
		if v != 0 {
			acc[i] = true
		}
	}
	return acc
}

func boolsIntersect(a, b []bool) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] && b[i] {
			return true
		}
	}
	return false
}

func secretMask(shares []uint8) uint64 {
	var m uint64
	for i, v := range shares {
		if v != 0 {
			m |= 1 << uint(i)
		}
	}
	return m
}
