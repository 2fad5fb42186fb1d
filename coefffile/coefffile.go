// Package coefffile implements the binary persisted-coefficient format
// (written by maskverify's rp -out flag, read by coeffplot; the CRP/CRPC
// drivers compute their accumulators in memory and read no coefficient
// file): one little-endian uint64 block
// of length total_wires+1 per fault scenario, plus a final block for
// the unfaulted circuit. File name pattern
// <gadget>_k<k>_c<coeff_max>_f<set>.<prop>_coeffs (and _t<t>_… for
// CRPC's nested per-input-fault-combination sections).
package coefffile

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math/big"
	"os"

	"maskverify/coeff"
)

// File is one parsed coefficient file: one block per fault scenario (in
// file order) followed by the unfaulted circuit's block.
type File struct {
	TotalWires int
	Scenarios  [][]uint64 // one []uint64 of length TotalWires+1 per scenario
	Unfaulted  []uint64
}

// Read parses path into a File. Every block must have length
// totalWires+1; Read returns an error when the file size is not a whole
// number of such blocks or the file holds no block.
func Read(path string, totalWires int) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("coefffile: open %s: %w", path, err)
	}
	blockLen := totalWires + 1
	blockBytes := blockLen * 8
	if len(data)%blockBytes != 0 {
		return File{}, fmt.Errorf("coefffile: %s: size %d is not a multiple of block size %d", path, len(data), blockBytes)
	}
	nBlocks := len(data) / blockBytes
	if nBlocks == 0 {
		return File{}, fmt.Errorf("coefffile: %s: contains no blocks", path)
	}

	f := File{TotalWires: totalWires}
	for b := 0; b < nBlocks; b++ {
		block := make([]uint64, blockLen)
		base := b * blockBytes
		for j := 0; j < blockLen; j++ {
			block[j] = binary.LittleEndian.Uint64(data[base+j*8 : base+j*8+8])
		}
		if b == nBlocks-1 {
			f.Unfaulted = block
		} else {
			f.Scenarios = append(f.Scenarios, block)
		}
	}
	return f, nil
}

// Write serializes scenarios (in order) followed by unfaulted, each of
// length totalWires+1, to path.
func Write(path string, totalWires int, scenarios [][]uint64, unfaulted []uint64) error {
	blockLen := totalWires + 1
	if len(unfaulted) != blockLen {
		return fmt.Errorf("coefffile: unfaulted block has length %d, want %d", len(unfaulted), blockLen)
	}
	for i, s := range scenarios {
		if len(s) != blockLen {
			return fmt.Errorf("coefffile: scenario %d block has length %d, want %d", i, len(s), blockLen)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("coefffile: create %s: %w", path, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	writeBlock := func(block []uint64) error {
		var buf [8]byte
		for _, v := range block {
			binary.LittleEndian.PutUint64(buf[:], v)
			if _, err := w.Write(buf[:]); err != nil {
				return err
			}
		}
		return nil
	}
	for _, s := range scenarios {
		if err := writeBlock(s); err != nil {
			return fmt.Errorf("coefffile: writing %s: %w", path, err)
		}
	}
	if err := writeBlock(unfaulted); err != nil {
		return fmt.Errorf("coefffile: writing %s: %w", path, err)
	}
	return w.Flush()
}

// ToAccumulator converts a raw uint64 coefficient block into a
// coeff.Accumulator, e.g. for re-combining a persisted file's blocks
// through coeff.CombineCRP.
func ToAccumulator(block []uint64) *coeff.Accumulator {
	acc := coeff.NewAccumulator(len(block) - 1)
	for j, v := range block {
		acc.Coeffs[j] = new(big.Int).SetUint64(v)
	}
	return acc
}

// FromAccumulator converts a coeff.Accumulator back into a raw uint64
// block, for persisting via Write. Coefficients that do not fit in a
// uint64 are an internal consistency violation for this file format
// (coefficients count k-subsets of at most a few thousand wires, well
// within range for any gadget this verifier can practically search);
// FromAccumulator panics rather than silently truncating, since that
// would corrupt the persisted file.
func FromAccumulator(acc *coeff.Accumulator) []uint64 {
	block := make([]uint64, len(acc.Coeffs))
	for j, c := range acc.Coeffs {
		if !c.IsUint64() {
			panic(fmt.Sprintf("coefffile: coefficient %d does not fit in a uint64", j))
		}
		block[j] = c.Uint64()
	}
	return block
}
