package property

import "maskverify/circuit"

// buildRefreshGadget is the canonical two-share linear refresh: y_i =
// x_i xor r, a textbook 1-NI/1-SNI-secure gadget.
func buildRefreshGadget() *circuit.Circuit {
	cfg := circuit.NewEngineConfig(2, 1, 1, 1, 0, 0, 0)
	c := &circuit.Circuit{Cfg: cfg, OutputCount: 1}

	dx0 := circuit.NewDependency(cfg)
	dx0.Secrets[0][0] = 1
	c.CompileWire("x0", dx0)

	dx1 := circuit.NewDependency(cfg)
	dx1.Secrets[0][1] = 1
	c.CompileWire("x1", dx1)

	dr0 := circuit.NewDependency(cfg)
	dr0.Randoms[0] = 1
	c.CompileWire("r0", dr0)

	dy0 := circuit.NewDependency(cfg)
	dy0.Secrets[0][0] = 1
	dy0.Randoms[0] = 1
	c.CompileWire("y0", dy0)

	dy1 := circuit.NewDependency(cfg)
	dy1.Secrets[0][1] = 1
	dy1.Randoms[0] = 1
	c.CompileWire("y1", dy1)

	return c
}

// buildLeakyGadget has a single output wire carrying both shares of the
// input with no randomness at all: a single probe on it already leaks
// the whole secret.
func buildLeakyGadget() *circuit.Circuit {
	cfg := circuit.NewEngineConfig(2, 1, 1, 0, 0, 0, 0)
	c := &circuit.Circuit{Cfg: cfg, OutputCount: 1}

	dBad := circuit.NewDependency(cfg)
	dBad.Secrets[0][0] = 1
	dBad.Secrets[0][1] = 1
	c.CompileWire("bad", dBad)

	dy1 := circuit.NewDependency(cfg)
	dy1.Secrets[0][1] = 1
	c.CompileWire("y1", dy1)

	return c
}

// buildSingleCopyGadget is a one-wire, one-share gadget whose sole wire
// copies the secret verbatim: the minimal example for RP's coefficient
// accumulation (coeffs=[0,1], amplification order 1).
func buildSingleCopyGadget() *circuit.Circuit {
	cfg := circuit.NewEngineConfig(1, 1, 1, 0, 0, 0, 0)
	c := &circuit.Circuit{Cfg: cfg, OutputCount: 1}

	d0 := circuit.NewDependency(cfg)
	d0.Secrets[0][0] = 1
	c.CompileWire("x0", d0)

	return c
}
