package property

import (
	"maskverify/circuit"
	"maskverify/driver"
	"maskverify/gauss"
	"maskverify/predicate"
)

// PINI checks t-Probing-Isolation-Non-Interference: for every output
// subset O of size o in [0,t], O is prefixed, its share positions are
// marked SharesToIgnore (so probing O costs nothing extra once it is
// conceded), the two inputs are merged (PINI mode), and the threshold is
// t-o. O ranges up to t, the same budget SNI gives it — PINI's isolation
// property comes from SharesToIgnore exempting O from the popcount, not
// from a smaller O budget; a [1,t-1] range (an earlier, narrower reading
// of the distilled §4.8 wording) would make PINI vacuously hold whenever
// all of a gadget's wires are themselves outputs and t<2, which is
// wrong. This o range (and the o=0 inclusion, reducing to NI with
// input-merging) is the resolution recorded in the design notes.
func PINI(c *circuit.Circuit, t, workers int, corrTable []gauss.CorrectionExpansion) Verdict {
	outputs := outputIndices(c)
	internal, data := reduceUniverse(c, true, internalIndices(c))
	maxRows := defaultMaxRows(c)

	var checked uint64
	for o := 0; o <= t && o <= len(outputs); o++ {
		threshold := t - o
		for _, prefix := range outputCombos(outputs, o) {
			ignore := sharesToIgnoreMask(c, prefix)
			for k := 0; k <= threshold; k++ {
				cfg := driver.Config{
					Workers:  workers,
					N:        len(internal),
					K:        k,
					Universe: internal,
					Prefix:   prefix,
					Opts: predicate.Options{
						TIn:            threshold,
						SharesToIgnore: ignore,
						PINI:           true,
					},
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
		}
	}
	return Verdict{Holds: true, TuplesChecked: checked}
}
