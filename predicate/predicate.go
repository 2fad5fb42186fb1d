// Package predicate implements the failure predicate: whether a folded,
// Gaussian-eliminated tuple reveals more than t_in shares of some secret
// input, including the PINI input-merging mode and the random-
// augmentation search used when randoms were pre-removed by dimension
// reduction.
package predicate

import (
	"math/bits"
	"sort"

	"maskverify/bitdep"
	"maskverify/comb"
	"maskverify/gauss"
)

// Options configures one predicate evaluation.
type Options struct {
	TIn            int    // t_in: the order being verified against
	CombFreeSpace  int    // room left to grow the tuple during search; 0 at a final check
	SharesToIgnore uint64 // output-share bitmask already conceded (SNI/PINI prefixes)
	PINI           bool   // merge the two inputs' secret masks before thresholding
}

// Result is the outcome of one predicate evaluation.
type Result struct {
	Leaks      [2]bool
	Popcount   [2]int
	SecretMask [2]uint64 // post-SharesToIgnore/PINI-merge secret popcount bits, for reduce.Reconstruct
}

// Failed reports whether either input leaked.
func (r Result) Failed() bool { return r.Leaks[0] || r.Leaks[1] }

// Evaluate ORs together the secret masks of every unpivoted row (rows
// with a pivot had their randomness survive and so are masked), applies
// SharesToIgnore, and compares the resulting popcount against
// t_in - comb_free_space. In PINI mode the two inputs' masks are merged
// before thresholding, modeling the two inputs as one.
func Evaluate(rows []bitdep.BitDep, pivots []gauss.Rand, opts Options) Result {
	var secretsOR [2]uint64
	for i, row := range rows {
		if i < len(pivots) && pivots[i].IsSet {
			continue
		}
		secretsOR[0] |= row.Secrets[0]
		secretsOR[1] |= row.Secrets[1]
	}
	if opts.PINI {
		merged := secretsOR[0] | secretsOR[1]
		secretsOR[0], secretsOR[1] = merged, merged
	}
	threshold := opts.TIn - opts.CombFreeSpace
	var res Result
	for i := 0; i < 2; i++ {
		masked := secretsOR[i] &^ opts.SharesToIgnore
		res.SecretMask[i] = masked
		pc := bits.OnesCount64(masked)
		res.Popcount[i] = pc
		if pc > threshold {
			res.Leaks[i] = true
		}
	}
	return res
}

// RandomsPresent returns the sorted list of random bit indices set across
// any row, the universe the augmentation search draws subsets from.
func RandomsPresent(rows []bitdep.BitDep) []int {
	seen := map[int]bool{}
	for _, r := range rows {
		for w, word := range r.Randoms {
			v := word
			for v != 0 {
				b := bits.TrailingZeros64(v)
				seen[w*64+b] = true
				v &= v - 1
			}
		}
	}
	out := make([]int, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// augmentWithRandoms re-runs Gaussian elimination on rawRows with the
// given random indices forced to zero before folding, simulating the
// case where wires outside the current tuple eventually cancel them,
// and evaluates the predicate on the result.
func augmentWithRandoms(rawRows []bitdep.BitDep, toFlip []int, widths bitdep.Widths, corrCount int, corrTable []gauss.CorrectionExpansion, opts Options) Result {
	e := gauss.NewEliminator(widths, corrCount, corrTable, len(rawRows)*4+8)
	for _, r := range rawRows {
		rr := r.Clone()
		for _, idx := range toFlip {
			bitdep.ClearBit(rr.Randoms, idx)
		}
		e.Step(rr)
	}
	return Evaluate(e.Rows(), e.Pivots(), opts)
}

// SearchRandomAugmentation implements the "additional random
// augmentation" refinement from spec.md §4.5: when a tuple built from
// already-reduced wires does not yet fail, try every subset of size
// <= CombFreeSpace of the randoms appearing in its rows, forcing each
// subset to zero in turn and re-evaluating. It returns the first subset
// (in combinatorial order) whose forcing causes the predicate to fire,
// or ok=false if none does.
func SearchRandomAugmentation(rawRows []bitdep.BitDep, widths bitdep.Widths, corrCount int, corrTable []gauss.CorrectionExpansion, opts Options) (subset []int, result Result, ok bool) {
	present := RandomsPresent(rawRows)
	for size := 1; size <= opts.CombFreeSpace && size <= len(present); size++ {
		idx := comb.First(size)
		for {
			picked := make([]int, size)
			for i, p := range idx {
				picked[i] = present[p]
			}
			res := augmentWithRandoms(rawRows, picked, widths, corrCount, corrTable, opts)
			if res.Failed() {
				return picked, res, true
			}
			if comb.Next(idx, len(present)) == -1 {
				break
			}
		}
	}
	return nil, Result{}, false
}
