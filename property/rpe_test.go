package property

import (
	"maskverify/circuit"
	"testing"
)

// buildTwoInputGadget has one internal wire leaking only input 1, one
// leaking only input 2, and one leaking both, to exercise the RPE
// I1/I2/union/intersection split.
func buildTwoInputGadget() *circuit.Circuit {
	cfg := circuit.NewEngineConfig(1, 2, 1, 0, 0, 0, 0)
	c := &circuit.Circuit{Cfg: cfg, OutputCount: 1}

	da := circuit.NewDependency(cfg)
	da.Secrets[0][0] = 1
	c.CompileWire("a", da)

	db := circuit.NewDependency(cfg)
	db.Secrets[1][0] = 1
	c.CompileWire("b", db)

	dab := circuit.NewDependency(cfg)
	dab.Secrets[0][0] = 1
	dab.Secrets[1][0] = 1
	c.CompileWire("ab", dab)

	dy := circuit.NewDependency(cfg)
	dy.Secrets[0][0] = 1
	c.CompileWire("y", dy)

	return c
}

func TestRPE2_SplitsLeaksByInput(t *testing.T) {
	c := buildTwoInputGadget()
	res := RPE2(c, 1, 1, nil)

	if got := res.I1.Coeffs[1].Int64(); got != 2 {
		t.Fatalf("I1 coeffs[1]: got %d want 2", got)
	}
	if got := res.I2.Coeffs[1].Int64(); got != 2 {
		t.Fatalf("I2 coeffs[1]: got %d want 2", got)
	}
	if got := res.Union.Coeffs[1].Int64(); got != 3 {
		t.Fatalf("Union coeffs[1]: got %d want 3", got)
	}
	if got := res.Intersection.Coeffs[1].Int64(); got != 1 {
		t.Fatalf("Intersection coeffs[1]: got %d want 1", got)
	}
}
