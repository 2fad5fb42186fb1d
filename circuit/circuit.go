package circuit

import "maskverify/bitdep"

// Wire is one entry in a Circuit's ordered variable sequence.
type Wire struct {
	Index int
	Name  string
	Dense Dependency
	Bit   bitdep.BitDep
}

// Circuit is the compiled gadget the engine verifies: an ordered sequence
// of wires plus the sizes needed to interpret them. The textual parser
// and the expression-to-dependency lowering that produce a Circuit are
// external collaborators (see Provider); this type is their handoff
// shape.
type Circuit struct {
	Cfg            EngineConfig
	Wires          []Wire
	Mults          []MultDependency // parallel to the Mults bit positions
	OutputCount    int
	ContainsMults  bool
	HasInputRands  bool // whether inputs may be refreshed before multiplication
}

// Widths returns the bitdep.Widths implied by the circuit's EngineConfig.
func (c *Circuit) Widths() bitdep.Widths {
	return bitdep.Widths{
		RandLen: c.Cfg.BitRandLen,
		MultLen: c.Cfg.BitMultLen,
		CorrLen: c.Cfg.BitCorrLen,
		OutLen:  c.Cfg.BitOutLen,
	}
}

// OutputWires returns the last OutputCount*ShareCount wires, the circuit's
// declared outputs.
func (c *Circuit) OutputWires() []Wire {
	n := c.OutputCount * c.Cfg.ShareCount
	if n > len(c.Wires) {
		n = len(c.Wires)
	}
	return c.Wires[len(c.Wires)-n:]
}

// Length returns the number of wires (the "N" universe size the
// combination enumerator ranks over).
func (c *Circuit) Length() int {
	return len(c.Wires)
}

// CompileWire derives a wire's BitDep from its dense dependency and
// appends it to the circuit. Providers that already computed a dense
// Dependency for a new wire call this instead of hand-building a BitDep.
func (c *Circuit) CompileWire(name string, dense Dependency) Wire {
	w := c.Widths()
	bd := bitdep.FromDense(dense.Secrets, dense.Randoms, dense.CorrectionOutputs, dense.Mults, dense.Constant, w)
	wire := Wire{Index: len(c.Wires), Name: name, Dense: dense, Bit: bd}
	c.Wires = append(c.Wires, wire)
	return wire
}

// Provider is the interface a textual gadget parser (not part of this
// repository) must satisfy to hand the engine a compiled Circuit. The
// engine packages never construct a Provider themselves; cmd/maskverify
// wires a concrete implementation supplied elsewhere.
type Provider interface {
	// Compile parses gadget source and returns a fully compiled Circuit,
	// including each wire's dense Dependency, BitDep, and (for
	// multiplication wires) the operand MultDependency.
	Compile(source []byte) (*Circuit, error)
}
