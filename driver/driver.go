// Package driver implements the parallel tuple-space search: splitting
// the combination space across worker goroutines, folding each tuple
// through an engine.TupleEvaluator, and deduplicating reported failures
// through a shared trie so overlapping reductions (basic + advanced +
// random augmentation) never double-count the same underlying failure.
package driver

import (
	"sync"
	"sync/atomic"

	"maskverify/circuit"
	"maskverify/comb"
	"maskverify/engine"
	"maskverify/gauss"
	"maskverify/predicate"
	"maskverify/reduce"
	"maskverify/trie"
)

// Failure is one deduplicated failing tuple, reported with the prefix
// that was folded ahead of it so a caller can reconstruct the full
// wire set.
type Failure struct {
	Prefix []int
	Tuple  []int
	Result predicate.Result

	// Extension holds the removed elementary wires reduce.Reconstruct
	// added on top of Prefix+Tuple to reach this failure, nil unless the
	// failure was found by reconstruction rather than directly.
	Extension []int

	// AugmentedRandoms holds the random indices predicate.
	// SearchRandomAugmentation forced to zero to reach this failure, nil
	// unless the failure was found by random augmentation rather than
	// directly or by reconstruction.
	AugmentedRandoms []int
}

// Config parameterizes one parallel search over k-combinations of
// [0, N).
type Config struct {
	Workers   int
	N         int
	K         int
	Prefix    []int
	Opts      predicate.Options
	MaxRows   int
	CorrTable []gauss.CorrectionExpansion

	// Universe restricts which circuit wire indices tuples are drawn
	// from: rank i names wire Universe[i] rather than wire i directly.
	// Property drivers use this to search internal wires only, holding
	// outputs out of the combinatorial suffix while still prefixing
	// specific output wires via Prefix. N must equal len(Universe) when
	// set; nil means the identity mapping over [0,N).
	Universe []int

	// Reduction is the §4.4 reduction bookkeeping for the circuit
	// Universe was built from, when the property driver excluded
	// elementary wires from the search. When set, a non-failing tuple
	// with leftover budget (Opts.TIn - K) is given a second chance via
	// reduce.Reconstruct (extending it with removed elementary wires)
	// and predicate.SearchRandomAugmentation (forcing its visible
	// randoms to cancel), matching IronMask's remove_elementary_wires +
	// remove_randoms/has_random=false augmentation pairing. nil disables
	// both and searches Universe exactly as given.
	Reduction *reduce.Data

	// StopOnFirst ends the whole search as soon as any worker reports a
	// failure, for properties (NI/SNI/PINI/...) that only need a
	// pass/fail verdict and a single counterexample.
	StopOnFirst bool
}

// translate maps a rank-space tuple (indices into Universe, or raw
// circuit wire indices if Universe is nil) to actual circuit wire
// indices.
func translate(universe []int, tuple []int) []int {
	if universe == nil {
		return tuple
	}
	out := make([]int, len(tuple))
	for i, idx := range tuple {
		out[i] = universe[idx]
	}
	return out
}

// Stats summarizes one Run.
type Stats struct {
	TuplesChecked uint64
	Failures      int
	Stopped       bool // true if StopOnFirst ended the search early
}

// Run partitions C(N,K) combinations across cfg.Workers goroutines,
// evaluates each through its own engine.TupleEvaluator (so no gauss
// scratch state is shared across workers), and invokes onFailure for
// every newly-seen failing tuple — "newly seen" meaning the shared trie
// had not already recorded it, exactly as §4.7 describes for avoiding
// double-reporting across workers and across reduction layers.
func Run(c *circuit.Circuit, cfg Config, onFailure func(Failure)) Stats {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	total := comb.Count(cfg.N, cfg.K)

	seen := trie.New()
	var checked uint64
	var failures int64
	var stopped atomic.Bool
	var mu sync.Mutex
	var wg sync.WaitGroup

	for wkr := 0; wkr < workers; wkr++ {
		start, count := comb.WorkerRange(wkr, workers, total)
		if count == 0 {
			continue
		}
		wg.Add(1)
		go func(start, count uint64) {
			defer wg.Done()
			ev := engine.New(c, cfg.CorrTable, cfg.MaxRows)
			tuple := comb.Unrank(cfg.N, cfg.K, start)
			for i := uint64(0); i < count; i++ {
				if cfg.StopOnFirst && stopped.Load() {
					return
				}
				real := translate(cfg.Universe, tuple)
				res, err := ev.Evaluate(cfg.Prefix, real, cfg.Opts)
				atomic.AddUint64(&checked, 1)
				if err == nil {
					full := append(append([]int(nil), cfg.Prefix...), real...)
					failure, found := classify(cfg, ev, full, res)
					if found {
						dep := trie.SecretDep{failure.Result.Leaks[0], failure.Result.Leaks[1]}
						dedupKey := append(append([]int(nil), full...), failure.Extension...)
						if seen.Insert(dedupKey, dep) {
							atomic.AddInt64(&failures, 1)
							mu.Lock()
							onFailure(failure)
							mu.Unlock()
							if cfg.StopOnFirst {
								stopped.Store(true)
								return
							}
						}
					}
				}
				if i+1 < count {
					comb.Next(tuple, cfg.N)
				}
			}
		}(start, count)
	}
	wg.Wait()

	return Stats{
		TuplesChecked: atomic.LoadUint64(&checked),
		Failures:      int(atomic.LoadInt64(&failures)),
		Stopped:       stopped.Load(),
	}
}
