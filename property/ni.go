package property

import (
	"maskverify/circuit"
	"maskverify/driver"
	"maskverify/gauss"
	"maskverify/predicate"
)

// NI checks t-Non-Interference: every tuple of up to t circuit wires
// (no prefix, outputs counted the same as any other wire) must reveal
// at most t shares of either secret input. It stops at the first
// counterexample found, per §4.8. The search runs over the §4.4-reduced
// wire set, with a non-failing reduced tuple given a second chance via
// reconstruction/random augmentation before being accepted as secure.
func NI(c *circuit.Circuit, t, workers int, corrTable []gauss.CorrectionExpansion) Verdict {
	all := make([]int, c.Length())
	for i := range all {
		all[i] = i
	}
	universe, data := reduceUniverse(c, true, all)
	maxRows := defaultMaxRows(c)

	var checked uint64
	for k := 0; k <= t; k++ {
		cfg := driver.Config{
			Workers:     workers,
			N:           len(universe),
			K:           k,
			Universe:    universe,
			Opts:        predicate.Options{TIn: t},
			MaxRows:     maxRows,
			CorrTable:   corrTable,
			Reduction:   data,
			StopOnFirst: true,
		}
		var found *driver.Failure
		stats := driver.Run(c, cfg, func(f driver.Failure) {
			ff := f
			found = &ff
		})
		checked += stats.TuplesChecked
		if found != nil {
			return verdictFrom(*found, checked)
		}
	}
	return Verdict{Holds: true, TuplesChecked: checked}
}
