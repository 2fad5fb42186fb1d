// Package property implements the per-property verification drivers:
// NI, SNI, PINI, free-SNI/IOS, RP, RPE1/RPE2/RPE-copy, RPC, CNI, CRP and
// CRPC. Each instantiates the shared tuple-search engine (package
// engine, via package driver) with the prefixing, threshold and
// enumeration policy particular to that property, per §4.8.
package property

import (
	"maskverify/circuit"
	"maskverify/comb"
	"maskverify/driver"
	"maskverify/gauss"
	"maskverify/reduce"
)

// Verdict is the outcome of checking one property at one order.
type Verdict struct {
	Holds          bool
	Counterexample []int // circuit wire indices, prefix first, in tuple order
	TuplesChecked  uint64

	// Extension holds the removed elementary wires reduce.Reconstruct
	// added on top of Counterexample, nil unless the counterexample was
	// found by reconstruction rather than directly.
	Extension []int

	// AugmentedRandoms holds the random indices predicate.
	// SearchRandomAugmentation forced to zero to expose Counterexample,
	// nil unless the counterexample was found by random augmentation.
	AugmentedRandoms []int
}

// verdictFrom turns a driver.Failure into a Verdict, folding its
// Prefix+Tuple into one Counterexample and carrying over whichever
// fallback (if any) found it.
func verdictFrom(f driver.Failure, checked uint64) Verdict {
	return Verdict{
		Holds:            false,
		Counterexample:   append(append([]int(nil), f.Prefix...), f.Tuple...),
		TuplesChecked:    checked,
		Extension:        f.Extension,
		AugmentedRandoms: f.AugmentedRandoms,
	}
}

// reduceUniverse runs §4.4 reduction over c and filters base (a list of
// circuit wire indices, typically internalIndices(c) or every wire) down
// to the ones that survive it, returning the filtered list alongside the
// Data a driver.Config needs to reconstruct or augment a non-failing
// reduced tuple back into a full-circuit failure. This is the
// basic+advanced reduction IronMask runs at the head of every property
// driver (NI.c:73-79, SNI.c:92-104, RP.c:45) before searching.
func reduceUniverse(c *circuit.Circuit, probingOnly bool, base []int) ([]int, *reduce.Data) {
	_, data := reduce.Reduce(c, probingOnly)
	removed := make(map[int]bool, len(data.RemovedWires))
	for _, w := range data.RemovedWires {
		removed[w] = true
	}
	out := make([]int, 0, len(base))
	for _, idx := range base {
		if !removed[idx] {
			out = append(out, idx)
		}
	}
	return out, data
}

// defaultMaxRows sizes the per-tuple Gaussian-eliminator scratch array,
// per the design notes' 10*circuit.length rule of thumb, with headroom
// for correction-output and multiplication-factor row expansion.
func defaultMaxRows(c *circuit.Circuit) int {
	return 10*c.Length() + 16
}

// internalIndices returns every non-output wire index, the universe
// NI/SNI/PINI searches extend over once any output prefix is fixed.
func internalIndices(c *circuit.Circuit) []int {
	n := c.OutputCount * c.Cfg.ShareCount
	start := len(c.Wires) - n
	if start < 0 {
		start = 0
	}
	out := make([]int, start)
	for i := range out {
		out[i] = i
	}
	return out
}

// outputIndices returns the circuit's declared output wire indices.
func outputIndices(c *circuit.Circuit) []int {
	ws := c.OutputWires()
	out := make([]int, len(ws))
	for i, w := range ws {
		out[i] = w.Index
	}
	return out
}

// outputCombos enumerates every size-o subset of outputs, each returned
// as a slice of circuit wire indices in increasing order (a valid
// driver.Config.Prefix).
func outputCombos(outputs []int, o int) [][]int {
	if o > len(outputs) || o < 0 {
		return nil
	}
	cur := comb.First(o)
	var combos [][]int
	for {
		picked := make([]int, o)
		for i, p := range cur {
			picked[i] = outputs[p]
		}
		combos = append(combos, picked)
		if comb.Next(cur, len(outputs)) == -1 {
			break
		}
	}
	return combos
}

// shareOf converts an output wire's global circuit index into its local
// output-share index (0-based position within c.OutputWires()), the
// unit predicate.Options.SharesToIgnore bitmasks are expressed in.
func shareOf(c *circuit.Circuit, wireIdx int) int {
	start := len(c.Wires) - c.OutputCount*c.Cfg.ShareCount
	return wireIdx - start
}

func sharesToIgnoreMask(c *circuit.Circuit, prefix []int) uint64 {
	var mask uint64
	for _, idx := range prefix {
		mask |= 1 << uint(shareOf(c, idx))
	}
	return mask
}

// gaussEngine builds a fresh gauss.Eliminator sized for one circuit,
// used by the output-uniformity check in free-SNI/IOS.
func gaussEngine(c *circuit.Circuit, corrTable []gauss.CorrectionExpansion) *gauss.Eliminator {
	return gauss.NewEliminator(c.Widths(), c.Cfg.CorrectionOutputCount, corrTable, defaultMaxRows(c))
}
