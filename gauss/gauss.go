// Package gauss implements the online Gaussian eliminator: as wires are
// folded one at a time into the current tuple, each new row is reduced
// against the pivots already chosen, a pivot random is picked for it if
// one survives, and any correction-output placeholders left on an
// unpivoted row are expanded back into their underlying dependencies.
package gauss

import "maskverify/bitdep"

// Rand is a row's chosen pivot: the random-index bitmask word and bit it
// owns, or IsSet=false if the row has no pivot and therefore contributes
// to leakage accounting.
type Rand struct {
	IsSet bool
	Idx   int // word index into BitDep.Randoms
	Mask  uint64
}

// CorrectionExpansion is the precomputed expansion of one correction-
// output placeholder: the rows it stands for, and the random columns
// those rows touch (used by pivot selection so a correction output can
// never mask an otherwise-independent random).
type CorrectionExpansion struct {
	Rows           []bitdep.BitDep
	RandomsCovered []uint64
}

// Eliminator holds the working array of rows and pivots for one
// tuple's worth of Gaussian elimination. It is reused across tuples via
// Reset to avoid allocator traffic in the enumeration hot path.
type Eliminator struct {
	widths         bitdep.Widths
	corrCount      int
	corrTable      []CorrectionExpansion
	rows           []bitdep.BitDep
	pivots         []Rand
	n              int
}

// NewEliminator preallocates a working array of maxRows rows (the spec
// recommends 10*circuit.length) sized per widths, and records the
// correction-output expansion table used to unfold placeholders left on
// unpivoted rows.
func NewEliminator(widths bitdep.Widths, corrCount int, corrTable []CorrectionExpansion, maxRows int) *Eliminator {
	rows := make([]bitdep.BitDep, maxRows)
	for i := range rows {
		rows[i] = bitdep.New(widths)
	}
	return &Eliminator{
		widths:    widths,
		corrCount: corrCount,
		corrTable: corrTable,
		rows:      rows,
		pivots:    make([]Rand, maxRows),
	}
}

// Reset clears the working state without freeing the backing arrays, so
// the next tuple reuses them.
func (e *Eliminator) Reset() {
	e.n = 0
}

// NumRows returns how many rows are currently in use (including rows
// inserted by correction-output expansion).
func (e *Eliminator) NumRows() int { return e.n }

// Rows returns the in-use prefix of the working array.
func (e *Eliminator) Rows() []bitdep.BitDep { return e.rows[:e.n] }

// Pivots returns the in-use prefix of the pivot array, parallel to Rows.
func (e *Eliminator) Pivots() []Rand { return e.pivots[:e.n] }

// Step folds one more wire's BitDep into the elimination state: it is
// copied into the next free row, reduced against the existing pivots
// (gauss_step), assigned a pivot if one survives (set_gauss_rand), and,
// if it ends up unpivoted, has any correction-output bits expanded
// (replace_correction_outputs_in_dep) by recursively stepping in the
// rows each one stands for. It returns the row index the wire landed
// at (correction-output expansion may have inserted further rows after
// it, visible via NumRows).
func (e *Eliminator) Step(row bitdep.BitDep) int {
	idx := e.n
	e.n++
	e.rows[idx].CopyFrom(row)
	e.gaussStep(idx)
	e.setPivot(idx)
	if !e.pivots[idx].IsSet {
		e.expandCorrectionOutputs(idx)
	}
	return idx
}

// gaussStep XORs every earlier pivoted row whose pivot bit is set in
// rows[idx] into rows[idx], in increasing row order, exactly as
// gauss_step prescribes.
func (e *Eliminator) gaussStep(idx int) {
	row := &e.rows[idx]
	for i := 0; i < idx; i++ {
		p := e.pivots[i]
		if !p.IsSet {
			continue
		}
		if p.Idx < len(row.Randoms) && row.Randoms[p.Idx]&p.Mask != 0 {
			row.XOR(e.rows[i])
		}
	}
}

// setPivot implements set_gauss_rand: scan row.Randoms for the
// highest-order set bit (MSB within the lowest non-zero word); if
// correction outputs are bound to the row, reject a candidate that is
// already fully explained by their covered-randoms masks and try the
// next candidate. A row with no acceptable random is left unpivoted.
func (e *Eliminator) setPivot(idx int) {
	row := &e.rows[idx]
	hasCorr := bitdep.PopCountWords(row.CorrectionOutputs) > 0
	var covered []uint64
	if hasCorr {
		covered = e.coveredRandoms(*row)
	}
	wi, bi, ok := bitdep.HighestBitInLowestNonzeroWord(row.Randoms)
	for ok {
		if !hasCorr || !bitdep.TestBit(covered, wi*64+bi) {
			e.pivots[idx] = Rand{IsSet: true, Idx: wi, Mask: uint64(1) << uint(bi)}
			return
		}
		wi, bi, ok = bitdep.NextCandidateBit(row.Randoms, wi, bi)
	}
	e.pivots[idx] = Rand{}
}

// coveredRandoms unions the RandomsCovered masks of every correction
// output bit currently set on row.
func (e *Eliminator) coveredRandoms(row bitdep.BitDep) []uint64 {
	union := make([]uint64, e.widths.RandLen)
	for bit := 0; bit < e.corrCount; bit++ {
		if !bitdep.TestBit(row.CorrectionOutputs, bit) {
			continue
		}
		exp := e.corrTable[bit]
		for w := 0; w < len(union) && w < len(exp.RandomsCovered); w++ {
			union[w] |= exp.RandomsCovered[w]
		}
	}
	return union
}

// expandCorrectionOutputs unfolds every correction-output bit set on
// rows[idx] by stepping in the rows from its precomputed expansion,
// then clearing the bit. Recursive: the newly stepped rows may
// themselves end up unpivoted with their own correction-output bits,
// which Step will expand in turn.
func (e *Eliminator) expandCorrectionOutputs(idx int) {
	row := &e.rows[idx]
	for bit := 0; bit < e.corrCount; bit++ {
		if !bitdep.TestBit(row.CorrectionOutputs, bit) {
			continue
		}
		for _, r := range e.corrTable[bit].Rows {
			e.Step(r)
		}
		bitdep.ClearBit(row.CorrectionOutputs, bit)
	}
}
