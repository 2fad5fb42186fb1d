package property

import (
	"maskverify/circuit"
	"maskverify/coeff"
	"maskverify/faultscenario"
	"maskverify/gauss"
	"maskverify/verifyerr"
)

// CRPResult bundles the per-fault-scenario coefficient accumulators
// (in scenario order, unfaulted circuit last) with the combined
// epsilon/mu/gamma security bound.
type CRPResult struct {
	PerScenario []*coeff.Accumulator
	Unfaulted   *coeff.Accumulator
	Bound       coeff.CRP
}

// CRP computes, for each scenario in scenarios, the RP-style
// coefficient polynomial of the circuit faulted per that scenario (via
// injector, an external collaborator), takes the elementwise maximum
// across scenarios as the worst-case fault-conditioned leakage
// accumulator, and combines it with the unfaulted circuit's own RP
// accumulator into the epsilon/mu/gamma bound via coeff.CombineCRP, per
// §4.8. k is the fault-combination size the scenarios were generated
// at (used for mu's binomial term); nFaultable is the number of wires
// eligible to be faulted.
func CRP(c *circuit.Circuit, injector circuit.FaultInjector, scenarios faultscenario.Set, coeffMax, k, nFaultable, workers int, pFault, pLeak float64, prec uint, corrTable []gauss.CorrectionExpansion) (CRPResult, error) {
	if len(scenarios.Scenarios) == 0 {
		return CRPResult{}, verifyerr.NewConfigError("CRP", "requires at least one fault scenario")
	}

	totalWires := c.Length()
	faultAcc := newZeroAccumulator(totalWires)
	var perScenario []*coeff.Accumulator

	for _, sc := range scenarios.Scenarios {
		faulted, err := injector.Fault(sc.WireNames, nil)
		if err != nil {
			return CRPResult{}, verifyerr.NewConfigError("CRP", "faulting scenario %v: %v", sc.WireNames, err)
		}
		res := RP(faulted, coeffMax, workers, corrTable)
		perScenario = append(perScenario, res.Accumulator)
		maxInto(faultAcc, res.Accumulator)
	}

	unfaulted := RP(c, coeffMax, workers, corrTable).Accumulator
	bound := coeff.CombineCRP(faultAcc, unfaulted, pFault, pLeak, k, nFaultable, prec)

	return CRPResult{PerScenario: perScenario, Unfaulted: unfaulted, Bound: bound}, nil
}
