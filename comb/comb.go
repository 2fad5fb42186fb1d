// Package comb implements the combination enumerator: lexicographic
// increment of a sorted k-tuple (next_comb), and the rank/unrank
// bijections onto [0, C(N,k)) used to partition the tuple space across
// worker threads.
package comb

// Comb is an ordered, strictly-increasing sequence of wire indices: one
// k-sized combination from a universe of size N.
type Comb []int

// First returns the lexicographically smallest k-combination: {0,1,...,k-1}.
func First(k int) Comb {
	c := make(Comb, k)
	for i := range c {
		c[i] = i
	}
	return c
}

// Next advances curr to its lexicographic successor in place and returns
// the smallest index that changed, or -1 if curr was the last
// combination of its size. The returned index tells the caller how many
// prefix rows of accumulated state (e.g. Gaussian-elimination rows) are
// still valid and can be reused instead of recomputed from scratch.
func Next(curr Comb, n int) int {
	k := len(curr)
	if k == 0 {
		return -1
	}
	i := k - 1
	for i >= 0 && curr[i] == n-k+i {
		i--
	}
	if i < 0 {
		return -1
	}
	curr[i]++
	for j := i + 1; j < k; j++ {
		curr[j] = curr[j-1] + 1
	}
	return i
}

// binomial returns C(n, k), clamped to 0 for out-of-range arguments. It
// uses plain uint64 arithmetic computed multiplicatively to avoid
// overflow from factorials; callers needing arbitrary precision for
// large N use the coeff package's big.Int variant instead.
func binomial(n, k int) uint64 {
	if k < 0 || n < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	var result uint64 = 1
	for i := 0; i < k; i++ {
		result = result * uint64(n-i) / uint64(i+1)
	}
	return result
}

// Count returns C(n, k), the total number of k-combinations of n items.
func Count(n, k int) uint64 {
	return binomial(n, k)
}

// Rank maps a sorted k-combination to its position in the combinatorial
// number system ordering over [0, C(N,k)).
func Rank(c Comb, n int) uint64 {
	var r uint64
	k := len(c)
	for i, v := range c {
		// number of combinations with a smaller value at this position
		lo := 0
		if i > 0 {
			lo = c[i-1] + 1
		}
		for x := lo; x < v; x++ {
			r += binomial(n-x-1, k-i-1)
		}
	}
	return r
}

// Unrank is the inverse of Rank: given n, k, and a rank in
// [0, C(n,k)), it reconstructs the corresponding sorted k-combination.
func Unrank(n, k int, rank uint64) Comb {
	c := make(Comb, k)
	x := 0
	for i := 0; i < k; i++ {
		remaining := k - i
		for {
			c2 := binomial(n-x-1, remaining-1)
			if rank < c2 {
				c[i] = x
				x++
				break
			}
			rank -= c2
			x++
		}
	}
	return c
}

// WorkerRange returns the half-open [start, start+count) rank interval
// worker w (0-indexed) out of numWorkers should process over a tuple
// space of size total. Ranges are an exact partition of [0,total) — no
// gaps, no overlap — rather than the original driver's overlapping
// ceil(total/W)+1 slices per worker: an exact partition gives the same
// full coverage without needing a race-prone "first worker past a given
// rank wins" claim check at the boundary.
func WorkerRange(w, numWorkers int, total uint64) (start, count uint64) {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	start = uint64(w) * total / uint64(numWorkers)
	end := uint64(w+1) * total / uint64(numWorkers)
	if end > total {
		end = total
	}
	if end < start {
		end = start
	}
	return start, end - start
}
