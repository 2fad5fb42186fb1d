package property

import (
	"maskverify/circuit"
	"maskverify/faultscenario"
	"maskverify/gauss"
	"maskverify/verifyerr"
)

// CRPCResult is one CRPC run's outcome: a CRPResult per input-fault
// combination section, keyed by the same label faultscenario.NestedSet
// uses.
type CRPCResult struct {
	BySection map[string]CRPResult
}

// CRPC is CRP generalized over faultscenario.NestedSet's sectioned
// format: each section names a distinct input-fault combination (e.g.
// "t1" meaning one input wire forced, "t2" meaning two), and CRP is run
// independently within each section against its own scenario list.
// CRPC is defined only for single-output gadgets — requesting it on a
// multi-output circuit is a configuration error per §7.
func CRPC(c *circuit.Circuit, injector circuit.FaultInjector, ns faultscenario.NestedSet, coeffMax, k, nFaultable, workers int, pFault, pLeak float64, prec uint, corrTable []gauss.CorrectionExpansion) (CRPCResult, error) {
	if c.OutputCount != 1 {
		return CRPCResult{}, verifyerr.NewConfigError("CRPC", "requires a single-output gadget, got output_count=%d", c.OutputCount)
	}

	result := CRPCResult{BySection: map[string]CRPResult{}}
	for label, set := range ns.Sections {
		res, err := CRP(c, injector, set, coeffMax, k, nFaultable, workers, pFault, pLeak, prec, corrTable)
		if err != nil {
			return CRPCResult{}, verifyerr.NewConfigError("CRPC", "section %s: %v", label, err)
		}
		result.BySection[label] = res
	}
	return result, nil
}
