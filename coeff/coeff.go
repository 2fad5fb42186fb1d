// Package coeff implements the coefficient accumulator
// (update_coeff_c_single) and the leakage-probability evaluator
// (compute_leakage_proba), using math/big for the arbitrary-precision
// arithmetic the design notes call for: p_fault^k * C(N,k) underflows
// IEEE-754 for large N, so every computation here stays in big.Int /
// big.Float until the final printed value.
package coeff

import "math/big"

// Limit models a bound that may be absent. The original implementation
// casts -1 to an unsigned "no limit" sentinel; we use an explicit tagged
// union instead, per the open-question resolution in the design notes.
type Limit struct {
	None  bool
	Value int
}

// Unbounded returns the "no limit" Limit.
func Unbounded() Limit { return Limit{None: true} }

// Bounded returns a Limit fixed at v.
func Bounded(v int) Limit { return Limit{Value: v} }

// Accumulator holds, for a fixed total wire count, the coefficient
// polynomial f(p) = Σ_j coeffs[j] p^j (1-p)^(N-j) built incrementally by
// Update as failures of increasing size are discovered.
type Accumulator struct {
	TotalWires int
	Coeffs     []*big.Int // length TotalWires+1
}

// NewAccumulator allocates a zeroed Accumulator for a circuit with
// totalWires wires.
func NewAccumulator(totalWires int) *Accumulator {
	coeffs := make([]*big.Int, totalWires+1)
	for i := range coeffs {
		coeffs[i] = new(big.Int)
	}
	return &Accumulator{TotalWires: totalWires, Coeffs: coeffs}
}

// binomial returns C(n,k) as an exact big.Int, 0 if k is out of range.
func binomial(n, k int) *big.Int {
	if k < 0 || n < 0 || k > n {
		return new(big.Int)
	}
	return new(big.Int).Binomial(int64(n), int64(k))
}

// Update implements update_coeff_c_single: given a failing combination
// comb of size k (within a circuit of a.TotalWires wires), it increments
// coeffs[j] for every j in [k, TotalWires] by C(TotalWires-k, j-k), the
// number of ways to extend comb to a j-sized failure using only its
// complement — valid because every superset of a failure is itself a
// failure.
func (a *Accumulator) Update(k int) {
	n := a.TotalWires
	for j := k; j <= n; j++ {
		a.Coeffs[j].Add(a.Coeffs[j], binomial(n-k, j-k))
	}
}

// EvaluateAt evaluates f(p) = Σ_j coeffs[j] p^j (1-p)^(N-j) at the given
// p (0 < p < 1) to prec bits of float precision.
func (a *Accumulator) EvaluateAt(p float64, prec uint) *big.Float {
	pf := new(big.Float).SetPrec(prec).SetFloat64(p)
	oneMinusP := new(big.Float).SetPrec(prec).Sub(big.NewFloat(1), pf)
	sum := new(big.Float).SetPrec(prec)
	for j, c := range a.Coeffs {
		if c.Sign() == 0 {
			continue
		}
		term := new(big.Float).SetPrec(prec).SetInt(c)
		term.Mul(term, bigPow(pf, j, prec))
		term.Mul(term, bigPow(oneMinusP, a.TotalWires-j, prec))
		sum.Add(sum, term)
	}
	return sum
}

func bigPow(base *big.Float, exp int, prec uint) *big.Float {
	result := new(big.Float).SetPrec(prec).SetInt64(1)
	b := new(big.Float).SetPrec(prec).Copy(base)
	for exp > 0 {
		if exp&1 == 1 {
			result.Mul(result, b)
		}
		b.Mul(b, b)
		exp >>= 1
	}
	return result
}

// AmplificationOrder returns the smallest k for which coeffs[k] is
// non-zero (the amplification order d from the glossary), or -1 if every
// coefficient is zero (the gadget never leaks).
func (a *Accumulator) AmplificationOrder() int {
	for k, c := range a.Coeffs {
		if c.Sign() != 0 {
			return k
		}
	}
	return -1
}
