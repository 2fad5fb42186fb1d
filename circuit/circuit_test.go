package circuit

import "testing"

func buildTwoShareCircuit() *Circuit {
	cfg := NewEngineConfig(2, 1, 1, 1, 0, 0, 0)
	c := &Circuit{Cfg: cfg, OutputCount: 1}

	dx0 := NewDependency(cfg)
	dx0.Secrets[0][0] = 1
	c.CompileWire("x0", dx0)

	dx1 := NewDependency(cfg)
	dx1.Secrets[0][1] = 1
	c.CompileWire("x1", dx1)

	dy0 := NewDependency(cfg)
	dy0.Secrets[0][0] = 1
	dy0.Randoms[0] = 1
	c.CompileWire("y0", dy0)

	dy1 := NewDependency(cfg)
	dy1.Secrets[0][1] = 1
	dy1.Randoms[0] = 1
	c.CompileWire("y1", dy1)

	return c
}

func TestCircuitLength(t *testing.T) {
	c := buildTwoShareCircuit()
	if c.Length() != 4 {
		t.Fatalf("Length() = %d, want 4", c.Length())
	}
}

func TestOutputWires(t *testing.T) {
	c := buildTwoShareCircuit()
	out := c.OutputWires()
	if len(out) != 2 {
		t.Fatalf("len(OutputWires()) = %d, want 2", len(out))
	}
	if out[0].Name != "y0" || out[1].Name != "y1" {
		t.Fatalf("OutputWires() = %v, want [y0 y1]", out)
	}
}

func TestOutputWiresClampedToCircuitLength(t *testing.T) {
	cfg := NewEngineConfig(2, 1, 5, 0, 0, 0, 0)
	c := &Circuit{Cfg: cfg, OutputCount: 5}
	d := NewDependency(cfg)
	c.CompileWire("only", d)
	out := c.OutputWires()
	if len(out) != 1 {
		t.Fatalf("expected OutputWires to clamp to the single compiled wire, got %d", len(out))
	}
}

func TestCompileWireAssignsSequentialIndices(t *testing.T) {
	c := buildTwoShareCircuit()
	for i, w := range c.Wires {
		if w.Index != i {
			t.Fatalf("wire %d has Index %d, want %d", i, w.Index, i)
		}
	}
}

func TestWidths(t *testing.T) {
	cfg := NewEngineConfig(4, 2, 1, 65, 70, 3, 0)
	c := &Circuit{Cfg: cfg}
	w := c.Widths()
	if w.RandLen != 2 {
		t.Fatalf("RandLen = %d, want 2 (ceil(65/64))", w.RandLen)
	}
	if w.MultLen != 2 {
		t.Fatalf("MultLen = %d, want 2 (ceil(70/64))", w.MultLen)
	}
	if w.CorrLen != 1 {
		t.Fatalf("CorrLen = %d, want 1 (ceil(3/64))", w.CorrLen)
	}
}

func TestNewMultDependencyRejectsSharedSecretShare(t *testing.T) {
	cfg := NewEngineConfig(2, 1, 1, 0, 1, 0, 0)
	left := NewDependency(cfg)
	left.Secrets[0][0] = 1
	right := NewDependency(cfg)
	right.Secrets[0][0] = 1

	if _, err := NewMultDependency("m0", left, right); err == nil {
		t.Fatalf("expected an error when both operands carry the same secret share")
	}
}

func TestNewMultDependencyRejectsSharedRandom(t *testing.T) {
	cfg := NewEngineConfig(2, 1, 1, 1, 1, 0, 0)
	left := NewDependency(cfg)
	left.Randoms[0] = 1
	right := NewDependency(cfg)
	right.Randoms[0] = 1

	if _, err := NewMultDependency("m0", left, right); err == nil {
		t.Fatalf("expected an error when both operands carry the same random")
	}
}

func TestNewMultDependencyAcceptsDisjointOperands(t *testing.T) {
	cfg := NewEngineConfig(2, 1, 1, 0, 1, 0, 0)
	left := NewDependency(cfg)
	left.Secrets[0][0] = 1
	right := NewDependency(cfg)
	right.Secrets[0][1] = 1

	md, err := NewMultDependency("m0", left, right)
	if err != nil {
		t.Fatalf("NewMultDependency: %v", err)
	}
	if !md.ContainedSecrets[0][0] || !md.ContainedSecrets[1][0] {
		t.Fatalf("expected input 1's two shares to be recorded on their respective operands, got %v", md.ContainedSecrets)
	}
}

func TestDependencyXORAndIsZero(t *testing.T) {
	cfg := NewEngineConfig(2, 1, 1, 1, 0, 0, 0)
	d := NewDependency(cfg)
	if !d.IsZero() {
		t.Fatalf("a freshly allocated Dependency should be zero")
	}
	other := NewDependency(cfg)
	other.Secrets[0][0] = 1
	other.Randoms[0] = 1
	d.XOR(other)
	if d.IsZero() {
		t.Fatalf("expected XOR to leave a nonzero dependency")
	}
	d.XOR(other)
	if !d.IsZero() {
		t.Fatalf("XORing the same dependency twice should cancel back to zero")
	}
}
