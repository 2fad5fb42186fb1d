// Package reduce implements the dimension-reduction layer: removing
// wires that are provably redundant for the tuple search (basic
// reduction), a deeper Bordes–Karpman-style candidate removal (advanced
// reduction), and reconstruction of full-circuit failures from reduced
// ones.
package reduce

import (
	"maskverify/bitdep"
	"maskverify/circuit"
)

// Data is the bookkeeping a reduction pass leaves behind so failures
// found against the reduced circuit can be translated back to the
// original one. It holds a snapshot of the pre-reduction circuit rather
// than a back-pointer, so Data and the reduced circuit are two
// independently owned values with no cyclic reference between them, per
// the design notes.
type Data struct {
	NewToOld        []int   // reduced wire index -> original wire index
	RemovedWires    []int   // original indices dropped, in removal order
	ElementaryWires [][]int // [input*shareCount+share] -> equivalent original wire indices
	OldCircuit      *circuit.Circuit
}

// isElementarySecret reports whether dense carries exactly one secret
// share bit and nothing else.
func isElementarySecret(d circuit.Dependency) bool {
	count := 0
	for i := 0; i < 2; i++ {
		for _, v := range d.Secrets[i] {
			if v != 0 {
				count++
			}
		}
	}
	if count != 1 {
		return false
	}
	return allZero(d.Randoms) && allZero(d.CorrectionOutputs) && allZero(d.Mults) && d.Constant == 0
}

// isElementaryProduct reports whether dense is exactly one unrefreshed
// product of two inputs: a single mult bit, nothing else, and the
// referenced MultDependency's operands carry no randoms.
func isElementaryProduct(d circuit.Dependency, mults []circuit.MultDependency) bool {
	multIdx := -1
	for j, v := range d.Mults {
		if v != 0 {
			if multIdx != -1 {
				return false // more than one product, not elementary
			}
			multIdx = j
		}
	}
	if multIdx == -1 {
		return false
	}
	if !allZero(d.Secrets[0]) || !allZero(d.Secrets[1]) || !allZero(d.Randoms) ||
		!allZero(d.CorrectionOutputs) || d.Constant != 0 {
		return false
	}
	if multIdx >= len(mults) {
		return false
	}
	md := mults[multIdx]
	return allZero(md.Left.Randoms) && allZero(md.Right.Randoms)
}

// isElementaryRandom reports whether dense is exactly a single random
// and nothing else.
func isElementaryRandom(d circuit.Dependency) bool {
	count := 0
	for _, v := range d.Randoms {
		if v != 0 {
			count++
		}
	}
	if count != 1 {
		return false
	}
	return allZero(d.Secrets[0]) && allZero(d.Secrets[1]) && allZero(d.CorrectionOutputs) &&
		allZero(d.Mults) && d.Constant == 0
}

func allZero(s []uint8) bool {
	for _, v := range s {
		if v != 0 {
			return false
		}
	}
	return true
}

// secretPosition returns (input, share) for an elementary-secret
// dependency.
func secretPosition(d circuit.Dependency) (input, share int) {
	for i := 0; i < 2; i++ {
		for j, v := range d.Secrets[i] {
			if v != 0 {
				return i, j
			}
		}
	}
	return -1, -1
}

// Basic implements §4.4's basic reduction: remove every wire that is a
// single input share, a single unrefreshed product of two inputs, or
// (when probingOnly) a single random. Output wires are never removed,
// since every property counts them explicitly. The returned Data records
// the index mapping and, per (input,share), the list of original wires
// that reconstruct it.
func Basic(c *circuit.Circuit, probingOnly bool) (*circuit.Circuit, *Data) {
	data := &Data{
		OldCircuit:      c,
		ElementaryWires: make([][]int, 2*c.Cfg.ShareCount),
	}
	outputStart := len(c.Wires) - c.OutputCount*c.Cfg.ShareCount

	reduced := &circuit.Circuit{
		Cfg:           c.Cfg,
		Mults:         c.Mults,
		OutputCount:   c.OutputCount,
		ContainsMults: c.ContainsMults,
		HasInputRands: c.HasInputRands,
	}

	for _, w := range c.Wires {
		isOutput := w.Index >= outputStart
		removable := !isOutput && (isElementarySecret(w.Dense) ||
			isElementaryProduct(w.Dense, c.Mults) ||
			(probingOnly && isElementaryRandom(w.Dense)))

		if removable {
			data.RemovedWires = append(data.RemovedWires, w.Index)
			if isElementarySecret(w.Dense) {
				input, share := secretPosition(w.Dense)
				key := input*c.Cfg.ShareCount + share
				data.ElementaryWires[key] = append(data.ElementaryWires[key], w.Index)
			}
			continue
		}
		data.NewToOld = append(data.NewToOld, w.Index)
		nw := w
		nw.Index = len(reduced.Wires)
		reduced.Wires = append(reduced.Wires, nw)
	}
	return reduced, data
}

// Reduce runs the full §4.4 reduction pipeline: basic reduction
// followed by advanced (Bordes–Karpman) reduction over what basic
// leaves behind. This is the entry point property drivers call before
// building their search universe — IronMask does the equivalent at the
// head of every property driver (remove_elementary_wires then
// advanced_dimension_reduction, e.g. NI.c:73-79, SNI.c:92-104, RP.c:45).
// probingOnly controls whether elementary randoms are removed too (safe
// for pure-probing properties; random-probing/fault properties that
// reason about random values directly pass false).
func Reduce(c *circuit.Circuit, probingOnly bool) (*circuit.Circuit, *Data) {
	basic, data := Basic(c, probingOnly)
	return Advanced(basic, data)
}

// WidthsOf is a small convenience wrapper so callers that only have a
// circuit.EngineConfig (not a *circuit.Circuit) can still build
// bitdep.Widths consistently with the rest of the package.
func WidthsOf(cfg circuit.EngineConfig) bitdep.Widths {
	return bitdep.Widths{
		RandLen: cfg.BitRandLen,
		MultLen: cfg.BitMultLen,
		CorrLen: cfg.BitCorrLen,
		OutLen:  cfg.BitOutLen,
	}
}
