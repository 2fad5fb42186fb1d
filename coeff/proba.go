package coeff

import (
	"math"
	"math/big"
)

// Bound evaluates a coefficient polynomial with missing tail
// coefficients (indices beyond what was actually searched, e.g. because
// CombFreeSpace truncated the search at coeff_max) replaced either by
// zero (a lower bound on leakage probability) or by C(N,j) (an upper
// bound — every possible j-subset assumed to be a failure).
type Bound int

const (
	// LowerBound substitutes 0 for unknown coefficients.
	LowerBound Bound = iota
	// UpperBound substitutes C(N,j) for unknown coefficients.
	UpperBound
)

// EvaluateBounded is like EvaluateAt but coefficients at index > knownUpTo
// are replaced per bound instead of using whatever Update happened to
// leave there (normally zero, which already matches LowerBound — this
// makes the substitution explicit and lets UpperBound behave correctly
// even if Update was never called for those indices).
func (a *Accumulator) EvaluateBounded(p float64, prec uint, knownUpTo int, bound Bound) *big.Float {
	pf := new(big.Float).SetPrec(prec).SetFloat64(p)
	oneMinusP := new(big.Float).SetPrec(prec).Sub(big.NewFloat(1), pf)
	sum := new(big.Float).SetPrec(prec)
	for j := 0; j <= a.TotalWires; j++ {
		var c *big.Int
		if j <= knownUpTo {
			c = a.Coeffs[j]
		} else if bound == UpperBound {
			c = binomial(a.TotalWires, j)
		} else {
			continue
		}
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

// MaximizeSensitivity searches p in (0,1) over a fixed grid of samples
// for the value maximizing f(p), matching compute_leakage_proba's role
// of reporting the worst-case leakage probability bound rather than a
// single fixed operating point.
func (a *Accumulator) MaximizeSensitivity(samples int, prec uint, knownUpTo int, bound Bound) (pStar float64, fStar *big.Float) {
	best := new(big.Float).SetPrec(prec)
	bestP := 0.0
	for i := 1; i < samples; i++ {
		p := float64(i) / float64(samples)
		v := a.EvaluateBounded(p, prec, knownUpTo, bound)
		if v.Cmp(best) > 0 {
			best = v
			bestP = p
		}
	}
	return bestP, best
}

// Log2 returns log2(v) for a positive big.Float, via float64 conversion
// (sufficient precision for the fixed-decimal printed output the CLI
// produces; callers needing exact arbitrary-precision logs should not
// use this helper).
func Log2(v *big.Float) float64 {
	f, _ := v.Float64()
	if f <= 0 {
		return math.Inf(-1)
	}
	return math.Log2(f)
}

// CRP combines a fault probability and a per-wire leakage probability
// into the arbitrary-precision epsilon/mu/gamma triple spec.md §4.8
// describes for CRP/CRPC: epsilon is the leakage-probability bound at
// p_leak conditioned on the fault budget, mu is the fault-probability
// mass spent reaching a given fault combination size, and gamma is their
// product, the overall security bound.
type CRP struct {
	Epsilon *big.Float
	Mu      *big.Float
	Gamma   *big.Float
}

// CombineCRP evaluates the CRP/CRPC combination formula: mu = p_fault^k *
// C(n_faultable, k) (the probability of landing on some specific
// k-fault combination), epsilon = the leakage accumulator evaluated at
// p_leak, gamma = mu * epsilon.
func CombineCRP(faultAcc *Accumulator, leakAcc *Accumulator, pFault, pLeak float64, k, nFaultable int, prec uint) CRP {
	pf := new(big.Float).SetPrec(prec).SetFloat64(pFault)
	muTerm := bigPow(pf, k, prec)
	muTerm.Mul(muTerm, new(big.Float).SetPrec(prec).SetInt(binomial(nFaultable, k)))

	eps := leakAcc.EvaluateAt(pLeak, prec)
	gamma := new(big.Float).SetPrec(prec).Mul(muTerm, eps)
	return CRP{Epsilon: eps, Mu: muTerm, Gamma: gamma}
}
