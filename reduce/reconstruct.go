package reduce

import (
	"math/bits"

	"maskverify/comb"
)

// elementaryBits returns the secret-share bitmask an elementary removed
// wire contributes. Elementary wires (single input share, or single
// unrefreshed product of two inputs) carry no randoms by construction,
// so they can never be masked: they always contribute directly, which is
// what makes reconstruction a pure bitmask combination instead of a full
// re-run of Gaussian elimination.
func elementaryBits(data *Data, wireIdx int) [2]uint64 {
	var out [2]uint64
	for _, w := range data.OldCircuit.Wires {
		if w.Index != wireIdx {
			continue
		}
		for i := 0; i < 2; i++ {
			for j, v := range w.Dense.Secrets[i] {
				if v != 0 {
					out[i] |= 1 << uint(j)
				}
			}
		}
		break
	}
	return out
}

// Reconstruct implements §4.4's reconstruction: given a reduced tuple
// whose final (already computed) unpivoted-secret masks are baseSecrets,
// and |reducedLen| < maxLen, it enumerates combinations of the removed
// wires of increasing size up to maxLen-reducedLen and ORs their
// elementary secret-share bits into baseSecrets, looking for a
// combination that pushes some input's popcount above tIn. It returns
// the extending wire indices (not the full tuple) and ok=true on the
// first combination found, in combinatorial order — the same order
// spec.md §3 requires for deterministic reconstruction.
func Reconstruct(data *Data, baseSecrets [2]uint64, reducedLen, maxLen, tIn int) (extension []int, ok bool) {
	slack := maxLen - reducedLen
	if slack <= 0 {
		return nil, false
	}
	removed := data.RemovedWires
	if len(removed) == 0 {
		return nil, false
	}

	bitsOf := make([][2]uint64, len(removed))
	for i, w := range removed {
		bitsOf[i] = elementaryBits(data, w)
	}

	kMin := 1
	for k := kMin; k <= slack && k <= len(removed); k++ {
		c := comb.First(k)
		for {
			acc := baseSecrets
			for _, pos := range c {
				acc[0] |= bitsOf[pos][0]
				acc[1] |= bitsOf[pos][1]
			}
			if bits.OnesCount64(acc[0]) > tIn || bits.OnesCount64(acc[1]) > tIn {
				ext := make([]int, k)
				for i, pos := range c {
					ext[i] = removed[pos]
				}
				return ext, true
			}
			if comb.Next(c, len(removed)) == -1 {
				break
			}
		}
	}
	return nil, false
}

// ExtensionLeaks recomputes which secret(s) an extension found by
// Reconstruct pushes over tIn, for callers that need to report a
// leak/result shape consistent with a direct (non-reconstructed)
// failure rather than re-deriving the popcounts themselves.
func ExtensionLeaks(data *Data, ext []int, baseSecrets [2]uint64, tIn int) [2]bool {
	acc := baseSecrets
	for _, w := range ext {
		bits := elementaryBits(data, w)
		acc[0] |= bits[0]
		acc[1] |= bits[1]
	}
	var leaks [2]bool
	for i := 0; i < 2; i++ {
		leaks[i] = bits.OnesCount64(acc[i]) > tIn
	}
	return leaks
}
