package property

import (
	"maskverify/circuit"
	"maskverify/faultscenario"
	"testing"
)

// identityInjector returns the same circuit regardless of what's
// faulted, for CRP tests that only care about the combination plumbing.
type identityInjector struct{ c *circuit.Circuit }

func (f identityInjector) Fault(names []string, _ []bool) (*circuit.Circuit, error) {
	return f.c, nil
}

func TestCRP_RequiresAtLeastOneScenario(t *testing.T) {
	c := buildSingleCopyGadget()
	_, err := CRP(c, identityInjector{c}, faultscenario.Set{}, 1, 1, 1, 1, 0.1, 0.1, 64, nil)
	if err == nil {
		t.Fatalf("expected an error for an empty scenario set")
	}
}

func TestCRP_CombinesFaultAndLeakageBounds(t *testing.T) {
	c := buildSingleCopyGadget()
	scenarios := faultscenario.Set{Scenarios: []faultscenario.Scenario{{WireNames: []string{"x0"}}}}

	res, err := CRP(c, identityInjector{c}, scenarios, 1, 1, 1, 1, 0.1, 0.1, 64, nil)
	if err != nil {
		t.Fatalf("CRP: %v", err)
	}
	if len(res.PerScenario) != 1 {
		t.Fatalf("expected one per-scenario accumulator, got %d", len(res.PerScenario))
	}
	if res.Bound.Gamma.Sign() <= 0 {
		t.Fatalf("expected a strictly positive gamma bound, got %v", res.Bound.Gamma)
	}
	if res.Bound.Mu.Sign() <= 0 || res.Bound.Epsilon.Sign() <= 0 {
		t.Fatalf("expected strictly positive mu and epsilon, got mu=%v epsilon=%v", res.Bound.Mu, res.Bound.Epsilon)
	}
}
