package property

import (
	"maskverify/circuit"
	"maskverify/driver"
	"maskverify/gauss"
	"maskverify/predicate"
)

// RPC checks the random-probing-composability coefficient bound at
// order (t, tOut): like RPE, output subsets of size tOut are prefixed
// one at a time and internal tuple sizes are swept 0..t, but RPC tracks
// a single (unsplit) coefficient polynomial per output combination and
// combines them by elementwise maximum, rather than RPE's four-way
// input-leak split.
func RPC(c *circuit.Circuit, t, tOut, workers int, corrTable []gauss.CorrectionExpansion) CoeffResult {
	outputs := outputIndices(c)
	internal := internalIndices(c)
	maxRows := defaultMaxRows(c)
	totalWires := c.Length()

	merged := newZeroAccumulator(totalWires)
	var checked uint64

	for _, prefix := range outputCombos(outputs, tOut) {
		base := driver.Config{
			Workers:   workers,
			N:         len(internal),
			Universe:  internal,
			Prefix:    prefix,
			Opts:      predicate.Options{TIn: 0},
			MaxRows:   maxRows,
			CorrTable: corrTable,
		}
		acc, stats := driver.RunCoeffAccumulationSweep(c, base, 0, t, totalWires)
		checked += stats.TuplesChecked
		maxInto(merged, acc)
	}

	return CoeffResult{Accumulator: merged, TuplesChecked: checked}
}
