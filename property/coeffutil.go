package property

import (
	"math/big"

	"maskverify/coeff"
)

// newZeroAccumulator is a thin wrapper kept in this package so call
// sites reading rpe.go don't need to reach into coeff for the obvious
// zero-valued starting point of an elementwise-max merge.
func newZeroAccumulator(totalWires int) *coeff.Accumulator {
	return coeff.NewAccumulator(totalWires)
}

// maxInto merges src into dst elementwise by coefficient, keeping the
// larger of the two at each degree — the "taken elementwise as max"
// combination rule §4.8 prescribes across output combinations.
func maxInto(dst, src *coeff.Accumulator) {
	for j := range dst.Coeffs {
		if j >= len(src.Coeffs) {
			continue
		}
		if src.Coeffs[j].Cmp(dst.Coeffs[j]) > 0 {
			dst.Coeffs[j] = new(big.Int).Set(src.Coeffs[j])
		}
	}
}
