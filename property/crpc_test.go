package property

import (
	"maskverify/faultscenario"
	"testing"
)

func TestCRPC_RejectsMultiOutputGadgets(t *testing.T) {
	c := buildRefreshGadget() // OutputCount=1, ShareCount=2: fine, multi-output means OutputCount>1
	c.OutputCount = 2
	ns := faultscenario.NestedSet{Sections: map[string]faultscenario.Set{}}
	_, err := CRPC(c, identityInjector{c}, ns, 1, 1, 1, 1, 0.1, 0.1, 64, nil)
	if err == nil {
		t.Fatalf("expected an error for a multi-output gadget")
	}
}

func TestCRPC_RunsCRPPerSection(t *testing.T) {
	c := buildSingleCopyGadget()
	ns := faultscenario.NestedSet{
		Sections: map[string]faultscenario.Set{
			"t1": {Scenarios: []faultscenario.Scenario{{WireNames: []string{"x0"}}}},
		},
	}

	res, err := CRPC(c, identityInjector{c}, ns, 1, 1, 1, 1, 0.1, 0.1, 64, nil)
	if err != nil {
		t.Fatalf("CRPC: %v", err)
	}
	section, ok := res.BySection["t1"]
	if !ok {
		t.Fatalf("expected a result for section t1")
	}
	if section.Bound.Gamma.Sign() <= 0 {
		t.Fatalf("expected a strictly positive gamma for section t1, got %v", section.Bound.Gamma)
	}
}
