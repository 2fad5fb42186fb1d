package property

import (
	"maskverify/circuit"
	"testing"
)

// faultStub is a minimal circuit.FaultInjector: forcing "r0" to a
// constant returns a circuit that no longer masks its output (modeling
// the refresh gadget's random losing its effect), any other fault
// leaves the gadget unchanged and still secure.
type faultStub struct {
	original *circuit.Circuit
	broken   *circuit.Circuit
}

func (f faultStub) Fault(names []string, _ []bool) (*circuit.Circuit, error) {
	for _, n := range names {
		if n == "r0" {
			return f.broken, nil
		}
	}
	return f.original, nil
}

func TestCNI_FaultingTheSharedRandomBreaksNI(t *testing.T) {
	refresh := buildRefreshGadget()
	injector := faultStub{original: refresh, broken: buildLeakyGadget()}

	v := CNI(refresh, injector, 1, 1, 2, nil)
	if v.Holds {
		t.Fatalf("expected forcing r0 to break 1-NI")
	}
}

func TestCNI_NoFaultBreaksAnUnrelatedSecureGadget(t *testing.T) {
	refresh := buildRefreshGadget()
	injector := faultStub{original: refresh, broken: refresh}

	v := CNI(refresh, injector, 1, 1, 2, nil)
	if !v.Holds {
		t.Fatalf("expected no single fault to break 1-NI when faulting is a no-op, got counterexample %v", v.Counterexample)
	}
}
