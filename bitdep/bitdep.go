// Package bitdep implements the compact per-probe symbolic value the
// verification engine actually computes with: a small struct of bitmasks
// (secrets, randoms, mults, correction outputs, constant, output shares)
// plus the handful of bitwise operations (XOR, popcount, zero, copy,
// equality) the rest of the engine builds on.
//
// A BitDep never stores its own lengths: the length of the Randoms, Mults
// and CorrectionOutputs slices is carried by the slice header itself,
// which is the idiomatic-Go rendering of "pass (ptr, len) pairs, not
// fixed-size arrays" from the design notes. Callers that need the nominal
// widths (e.g. to allocate a fresh BitDep) read them from a
// circuit.EngineConfig.
package bitdep

import "math/bits"

// BitDep is the compact symbolic dependency of a single probed wire (or of
// a row accumulated while folding a tuple of wires together).
type BitDep struct {
	Secrets            [2]uint64 // bit j set: share j of input i is present (n <= 63)
	Randoms            []uint64  // bit-packed random-index bitmask
	Mults              []uint64  // bit-packed multiplication-term bitmask
	CorrectionOutputs  []uint64  // bit-packed correction-output bitmask
	Constant           bool
	Out                []uint64 // output-share bitmask, used only by free-SNI / IOS
}

// Widths is the set of slice lengths (in 64-bit words) a BitDep needs;
// it is derived once from circuit.EngineConfig and reused for every
// allocation so call sites never hardcode a width.
type Widths struct {
	RandLen int
	MultLen int
	CorrLen int
	OutLen  int
}

// New allocates a zeroed BitDep sized per w.
func New(w Widths) BitDep {
	return BitDep{
		Randoms:           make([]uint64, w.RandLen),
		Mults:             make([]uint64, w.MultLen),
		CorrectionOutputs: make([]uint64, w.CorrLen),
		Out:               make([]uint64, w.OutLen),
	}
}

// Zero clears a BitDep in place, reusing its existing backing arrays.
func (b *BitDep) Zero() {
	b.Secrets[0], b.Secrets[1] = 0, 0
	for i := range b.Randoms {
		b.Randoms[i] = 0
	}
	for i := range b.Mults {
		b.Mults[i] = 0
	}
	for i := range b.CorrectionOutputs {
		b.CorrectionOutputs[i] = 0
	}
	for i := range b.Out {
		b.Out[i] = 0
	}
	b.Constant = false
}

// CopyFrom overwrites b with src's contents (b's backing arrays are
// reused, not reallocated, so this is safe inside a hot loop as long as
// b and src have matching widths).
func (b *BitDep) CopyFrom(src BitDep) {
	b.Secrets = src.Secrets
	copy(b.Randoms, src.Randoms)
	copy(b.Mults, src.Mults)
	copy(b.CorrectionOutputs, src.CorrectionOutputs)
	copy(b.Out, src.Out)
	b.Constant = src.Constant
}

// Clone returns an independent copy of b.
func (b BitDep) Clone() BitDep {
	out := BitDep{
		Secrets:           b.Secrets,
		Randoms:           append([]uint64(nil), b.Randoms...),
		Mults:             append([]uint64(nil), b.Mults...),
		CorrectionOutputs: append([]uint64(nil), b.CorrectionOutputs...),
		Out:               append([]uint64(nil), b.Out...),
		Constant:          b.Constant,
	}
	return out
}

// XOR accumulates other into b in place, field by field.
func (b *BitDep) XOR(other BitDep) {
	b.Secrets[0] ^= other.Secrets[0]
	b.Secrets[1] ^= other.Secrets[1]
	for i := range b.Randoms {
		b.Randoms[i] ^= other.Randoms[i]
	}
	for i := range b.Mults {
		b.Mults[i] ^= other.Mults[i]
	}
	for i := range b.CorrectionOutputs {
		b.CorrectionOutputs[i] ^= other.CorrectionOutputs[i]
	}
	for i := range b.Out {
		b.Out[i] ^= other.Out[i]
	}
	b.Constant = b.Constant != other.Constant
}

// Equal reports componentwise bit equality, the semantic-equality
// relation the spec's data model requires of BitDep.
func Equal(a, b BitDep) bool {
	if a.Secrets != b.Secrets || a.Constant != b.Constant {
		return false
	}
	if !wordsEqual(a.Randoms, b.Randoms) || !wordsEqual(a.Mults, b.Mults) ||
		!wordsEqual(a.CorrectionOutputs, b.CorrectionOutputs) || !wordsEqual(a.Out, b.Out) {
		return false
	}
	return true
}

func wordsEqual(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// PopCountSecrets returns popcount(secrets[i]) for input i.
func PopCountSecrets(b BitDep, i int) int {
	return bits.OnesCount64(b.Secrets[i])
}

// PopCountWords returns the total popcount across a bit-packed word slice
// (randoms, mults, or correction outputs).
func PopCountWords(words []uint64) int {
	n := 0
	for _, w := range words {
		n += bits.OnesCount64(w)
	}
	return n
}

// IsZero reports whether b carries no contribution at all.
func (b BitDep) IsZero() bool {
	if b.Secrets[0] != 0 || b.Secrets[1] != 0 || b.Constant {
		return false
	}
	return PopCountWords(b.Randoms) == 0 && PopCountWords(b.Mults) == 0 &&
		PopCountWords(b.CorrectionOutputs) == 0 && PopCountWords(b.Out) == 0
}

// TestBit reports whether bit i (0-indexed from LSB of word 0) is set in
// words.
func TestBit(words []uint64, i int) bool {
	wi, bi := i/64, i%64
	if wi >= len(words) {
		return false
	}
	return words[wi]&(uint64(1)<<uint(bi)) != 0
}

// SetBit sets bit i in words in place.
func SetBit(words []uint64, i int) {
	wi, bi := i/64, i%64
	if wi < len(words) {
		words[wi] |= uint64(1) << uint(bi)
	}
}

// ClearBit clears bit i in words in place.
func ClearBit(words []uint64, i int) {
	wi, bi := i/64, i%64
	if wi < len(words) {
		words[wi] &^= uint64(1) << uint(bi)
	}
}

// HighestBitInLowestNonzeroWord scans words from index 0 upward for the
// first non-zero word and returns the position of its most-significant
// set bit. This is the pivot-candidate order the Gaussian eliminator's
// set_gauss_rand rule uses: "the highest-order set bit, MSB within the
// lowest non-zero word".
func HighestBitInLowestNonzeroWord(words []uint64) (wordIdx, bitIdx int, ok bool) {
	for i, w := range words {
		if w == 0 {
			continue
		}
		return i, bits.Len64(w) - 1, true
	}
	return 0, 0, false
}

// NextCandidateBit returns the next pivot candidate after (wordIdx,
// bitIdx) in the same scan order as HighestBitInLowestNonzeroWord: lower
// bits within the current word first, then the next non-zero word.
func NextCandidateBit(words []uint64, wordIdx, bitIdx int) (int, int, bool) {
	if bitIdx > 0 {
		mask := (uint64(1) << uint(bitIdx)) - 1
		if w := words[wordIdx] & mask; w != 0 {
			return wordIdx, bits.Len64(w) - 1, true
		}
	}
	for i := wordIdx + 1; i < len(words); i++ {
		if words[i] != 0 {
			return i, bits.Len64(words[i]) - 1, true
		}
	}
	return 0, 0, false
}

// FromDense converts a circuit.Dependency-shaped set of 0/1 vectors into
// the packed bitmask form. Call sites pass the raw uint8 slices rather
// than importing circuit.Dependency directly, so bitdep has no import
// cycle back onto circuit.
func FromDense(secrets [2][]uint8, randoms, corrOutputs, mults []uint8, constant uint8, w Widths) BitDep {
	out := New(w)
	for i := 0; i < 2; i++ {
		for j, v := range secrets[i] {
			if v != 0 {
				out.Secrets[i] |= uint64(1) << uint(j)
			}
		}
	}
	for j, v := range randoms {
		if v != 0 {
			SetBit(out.Randoms, j)
		}
	}
	for j, v := range corrOutputs {
		if v != 0 {
			SetBit(out.CorrectionOutputs, j)
		}
	}
	for j, v := range mults {
		if v != 0 {
			SetBit(out.Mults, j)
		}
	}
	out.Constant = constant != 0
	return out
}
