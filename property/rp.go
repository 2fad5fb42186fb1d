package property

import (
	"maskverify/circuit"
	"maskverify/coeff"
	"maskverify/driver"
	"maskverify/gauss"
	"maskverify/predicate"
)

// CoeffResult bundles the coefficient accumulator a property's sweep
// produced with how much of the tuple space it actually visited.
type CoeffResult struct {
	Accumulator   *coeff.Accumulator
	TuplesChecked uint64
}

// RP sweeps every tuple size from 0 to coeffMax over the whole circuit
// (no prefix — every wire, including outputs, is eligible) and folds
// each minimal failing tuple's size into a shared coefficient
// polynomial via update_coeff_c_single, per §4.8/§4.9. A tuple "leaks"
// at TIn=0: in the random-probing model any single exposed share is
// already the unit of leakage the coefficient polynomial counts.
func RP(c *circuit.Circuit, coeffMax, workers int, corrTable []gauss.CorrectionExpansion) CoeffResult {
	universe := make([]int, c.Length())
	for i := range universe {
		universe[i] = i
	}
	base := driver.Config{
		Workers:   workers,
		N:         len(universe),
		Universe:  universe,
		Opts:      predicate.Options{TIn: 0},
		MaxRows:   defaultMaxRows(c),
		CorrTable: corrTable,
	}
	acc, stats := driver.RunCoeffAccumulationSweep(c, base, 0, coeffMax, c.Length())
	return CoeffResult{Accumulator: acc, TuplesChecked: stats.TuplesChecked}
}
