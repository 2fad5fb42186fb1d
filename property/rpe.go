package property

import (
	"maskverify/circuit"
	"maskverify/driver"
	"maskverify/gauss"
	"maskverify/predicate"
)

// SplitCoeffResult is the four-way I1/I2/union/intersection coefficient
// split an RPE driver produces, maximized elementwise across every
// output combination it prefixed with, per §4.8's "taken elementwise as
// max" rule.
type SplitCoeffResult struct {
	driver.SplitAccumulators
	TuplesChecked uint64
}

// rpeSweep is the shared body of RPE1/RPE2/RPE-copy: for every size-
// outputPrefixSize output combination, prefix it and sweep internal
// tuple sizes [0, coeffMax], routing each minimal failure into the
// I1/I2/union/intersection accumulators; across combinations the
// coefficients are combined by elementwise maximum (a tighter bound
// than summing, since different output combinations can rediscover the
// same underlying leak).
func rpeSweep(c *circuit.Circuit, outputPrefixSize, coeffMax, workers int, corrTable []gauss.CorrectionExpansion) SplitCoeffResult {
	outputs := outputIndices(c)
	internal := internalIndices(c)
	maxRows := defaultMaxRows(c)

	totalWires := c.Length()
	merged := driver.SplitAccumulators{
		I1:           newZeroAccumulator(totalWires),
		I2:           newZeroAccumulator(totalWires),
		Union:        newZeroAccumulator(totalWires),
		Intersection: newZeroAccumulator(totalWires),
	}
	var checked uint64

	for _, prefix := range outputCombos(outputs, outputPrefixSize) {
		base := driver.Config{
			Workers:   workers,
			N:         len(internal),
			Universe:  internal,
			Prefix:    prefix,
			Opts:      predicate.Options{TIn: 0},
			MaxRows:   maxRows,
			CorrTable: corrTable,
		}
		accs, stats := driver.RunCoeffAccumulationSplit(c, base, 0, coeffMax, totalWires)
		checked += stats.TuplesChecked
		maxInto(merged.I1, accs.I1)
		maxInto(merged.I2, accs.I2)
		maxInto(merged.Union, accs.Union)
		maxInto(merged.Intersection, accs.Intersection)
	}

	return SplitCoeffResult{SplitAccumulators: merged, TuplesChecked: checked}
}

// RPE1 prefixes a fixed-size t_output subset of output shares.
func RPE1(c *circuit.Circuit, tOutput, coeffMax, workers int, corrTable []gauss.CorrectionExpansion) SplitCoeffResult {
	return rpeSweep(c, tOutput, coeffMax, workers, corrTable)
}

// RPE2 prefixes all-but-one output share (size n-1), the densest output
// prefix RPE2 considers per §4.8.
func RPE2(c *circuit.Circuit, coeffMax, workers int, corrTable []gauss.CorrectionExpansion) SplitCoeffResult {
	return rpeSweep(c, c.Cfg.ShareCount-1, coeffMax, workers, corrTable)
}

// RPECopy is RPE2 specialized for copy gadgets (every output wire is an
// independent copy of the same shared input, so n-1 output shares are
// again the relevant prefix size). It runs exactly the same sweep as
// RPE2: there is no first_output option, and all output shares are
// treated alike, with no first/last output labeling.
func RPECopy(c *circuit.Circuit, coeffMax, workers int, corrTable []gauss.CorrectionExpansion) SplitCoeffResult {
	return rpeSweep(c, c.Cfg.ShareCount-1, coeffMax, workers, corrTable)
}
