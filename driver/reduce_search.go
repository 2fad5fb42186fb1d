package driver

import (
	"maskverify/engine"
	"maskverify/predicate"
	"maskverify/reduce"
)

// classify turns one tuple's evaluation into a Failure, trying
// reduce.Reconstruct and predicate.SearchRandomAugmentation when the
// tuple did not fail directly but cfg.Reduction says the search
// universe had elementary wires removed from it. Prefix and Tuple on
// the returned Failure always name cfg.Prefix and the real (translated)
// tuple actually drawn; Extension/AugmentedRandoms record what the
// fallback search added on top of it, if anything.
func classify(cfg Config, ev *engine.TupleEvaluator, full []int, res predicate.Result) (Failure, bool) {
	prefix := append([]int(nil), cfg.Prefix...)
	tuple := append([]int(nil), full[len(cfg.Prefix):]...)

	if res.Failed() {
		return Failure{Prefix: prefix, Tuple: tuple, Result: res}, true
	}

	slack := cfg.Opts.TIn - cfg.K
	if cfg.Reduction == nil || slack <= 0 {
		return Failure{}, false
	}

	if ext, ok := reduce.Reconstruct(cfg.Reduction, res.SecretMask, len(full), len(full)+slack, cfg.Opts.TIn); ok {
		leaks := reduce.ExtensionLeaks(cfg.Reduction, ext, res.SecretMask, cfg.Opts.TIn)
		extended := res
		extended.Leaks = leaks
		return Failure{Prefix: prefix, Tuple: tuple, Result: extended, Extension: ext}, true
	}

	augOpts := cfg.Opts
	augOpts.CombFreeSpace = slack
	if subset, augRes, ok := predicate.SearchRandomAugmentation(ev.RawRows(), ev.Widths(), ev.CorrCount(), cfg.CorrTable, augOpts); ok {
		return Failure{Prefix: prefix, Tuple: tuple, Result: augRes, AugmentedRandoms: subset}, true
	}

	return Failure{}, false
}
