package driver

import (
	"sync"
	"sync/atomic"

	"maskverify/circuit"
	"maskverify/coeff"
	"maskverify/comb"
	"maskverify/engine"
	"maskverify/trie"
)

// RunCoeffAccumulation reuses Config (the same partitioning, prefix and
// predicate.Options a plain Run would use) but, instead of stopping at
// the first failure, visits every tuple and folds each minimal failing
// one (not already a superset of a previously recorded failure) into a
// shared coeff.Accumulator in a single pass over the tuple space (tuples
// are not processed in batches). Work is split across cfg.Workers goroutines and dedup-
// pruned through a shared trie, which here also serves the superset-
// pruning role described in §4.4: a worker that discovers a tuple is a
// superset of an already-known failure skips the accumulator update for
// it, since every superset of a failure is itself a failure and its
// contribution was already folded in by the smaller one's Update call.
func RunCoeffAccumulation(c *circuit.Circuit, cfg Config, totalWires int) (*coeff.Accumulator, Stats) {
	seen := trie.New()
	acc := coeff.NewAccumulator(totalWires)
	stats := accumulateInto(c, cfg, seen, acc)
	return acc, stats
}

// RunCoeffAccumulationSweep is RunCoeffAccumulation generalized over a
// range of tuple sizes [minK, maxK] sharing one trie and one accumulator
// across sizes, for RP-style drivers that sweep every size up to
// coeff_max rather than a single fixed K: a failure found at a smaller
// size must still prune supersets discovered while sweeping larger
// sizes, which requires the trie to persist across the whole sweep.
func RunCoeffAccumulationSweep(c *circuit.Circuit, base Config, minK, maxK, totalWires int) (*coeff.Accumulator, Stats) {
	seen := trie.New()
	acc := coeff.NewAccumulator(totalWires)
	var total Stats
	for k := minK; k <= maxK; k++ {
		cfg := base
		cfg.K = k
		s := accumulateInto(c, cfg, seen, acc)
		total.TuplesChecked += s.TuplesChecked
		total.Failures += s.Failures
	}
	return acc, total
}

// SplitAccumulators holds the four coefficient polynomials RPE-style
// drivers track: failures leaking input 1 alone, input 2 alone, either
// (the union), and both simultaneously (the intersection) — the I1,
// I2, I1∨I2, I1∧I2 split from §4.8.
type SplitAccumulators struct {
	I1, I2, Union, Intersection *coeff.Accumulator
}

// RunCoeffAccumulationSplit is RunCoeffAccumulationSweep, but instead of
// folding every minimal failure into one accumulator it routes each
// into the I1/I2/Union/Intersection accumulators according to which
// secret input(s) predicate.Result.Leaks reports. Dedup is shared
// across all four splits: a tuple is "newly seen" (and thus counted)
// at most once regardless of which accumulators its leak pattern
// touches.
func RunCoeffAccumulationSplit(c *circuit.Circuit, base Config, minK, maxK, totalWires int) (SplitAccumulators, Stats) {
	accs := SplitAccumulators{
		I1:           coeff.NewAccumulator(totalWires),
		I2:           coeff.NewAccumulator(totalWires),
		Union:        coeff.NewAccumulator(totalWires),
		Intersection: coeff.NewAccumulator(totalWires),
	}
	seen := trie.New()
	var total Stats
	for k := minK; k <= maxK; k++ {
		cfg := base
		cfg.K = k
		s := accumulateSplitInto(c, cfg, seen, accs)
		total.TuplesChecked += s.TuplesChecked
		total.Failures += s.Failures
	}
	return accs, total
}

func accumulateSplitInto(c *circuit.Circuit, cfg Config, seen *trie.Trie, accs SplitAccumulators) Stats {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	total := comb.Count(cfg.N, cfg.K)

	var checked uint64
	var failures int64
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
				real := translate(cfg.Universe, tuple)
				res, err := ev.Evaluate(cfg.Prefix, real, cfg.Opts)
				atomic.AddUint64(&checked, 1)
				if err == nil {
					full := append(append([]int(nil), cfg.Prefix...), real...)
					failure, found := classify(cfg, ev, full, res)
					if found {
						key := append(append([]int(nil), full...), failure.Extension...)
						mu.Lock()
						if !seen.ContainsSubsetOf(key) {
							dep := trie.SecretDep{failure.Result.Leaks[0], failure.Result.Leaks[1]}
							seen.Insert(key, dep)
							size := len(key)
							accs.Union.Update(size)
							if failure.Result.Leaks[0] {
								accs.I1.Update(size)
							}
							if failure.Result.Leaks[1] {
								accs.I2.Update(size)
							}
							if failure.Result.Leaks[0] && failure.Result.Leaks[1] {
								accs.Intersection.Update(size)
							}
							atomic.AddInt64(&failures, 1)
						}
						mu.Unlock()
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
	}
}

// accumulateInto partitions C(N,K) combinations across cfg.Workers
// goroutines, evaluating each through its own engine.TupleEvaluator. A
// failing tuple that is not a subset-redundant superset of one already
// recorded in seen is inserted and its size folded into acc via
// coeff.Accumulator.Update.
func accumulateInto(c *circuit.Circuit, cfg Config, seen *trie.Trie, acc *coeff.Accumulator) Stats {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	total := comb.Count(cfg.N, cfg.K)

	var checked uint64
	var failures int64
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
				real := translate(cfg.Universe, tuple)
				res, err := ev.Evaluate(cfg.Prefix, real, cfg.Opts)
				atomic.AddUint64(&checked, 1)
				if err == nil {
					full := append(append([]int(nil), cfg.Prefix...), real...)
					failure, found := classify(cfg, ev, full, res)
					if found {
						key := append(append([]int(nil), full...), failure.Extension...)
						mu.Lock()
						if !seen.ContainsSubsetOf(key) {
							dep := trie.SecretDep{failure.Result.Leaks[0], failure.Result.Leaks[1]}
							seen.Insert(key, dep)
							acc.Update(len(key))
							atomic.AddInt64(&failures, 1)
						}
						mu.Unlock()
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
	}
}
