package property

import (
	"maskverify/circuit"
	"maskverify/driver"
	"maskverify/gauss"
	"maskverify/predicate"
)

// SNI checks t-Strong-Non-Interference: for every output subset O of
// size o in [0,t], with O fixed as a prefix and threshold t-o, every
// internal tuple of size up to t-o must not leak beyond that threshold.
// The threshold already accounts for O's contribution, so the internal
// search only needs to cover sizes [0, t-o], not the full [0,t] range —
// this is a deliberate reading of the distilled §4.8 wording (documented
// in the design notes), chosen because it matches the NI degenerate
// case (o=0) and never under-searches: any internal tuple of size > t-o
// combined with O already exceeds the t-wire search budget SNI bounds.
func SNI(c *circuit.Circuit, t, workers int, corrTable []gauss.CorrectionExpansion) Verdict {
	outputs := outputIndices(c)
	internal, data := reduceUniverse(c, true, internalIndices(c))
	maxRows := defaultMaxRows(c)

	var checked uint64
	for o := 0; o <= t && o <= len(outputs); o++ {
		threshold := t - o
		for _, prefix := range outputCombos(outputs, o) {
			for k := 0; k <= threshold; k++ {
				cfg := driver.Config{
					Workers:     workers,
					N:           len(internal),
					K:           k,
					Universe:    internal,
					Prefix:      prefix,
					Opts:        predicate.Options{TIn: threshold},
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
