package circuit

// Dependency is the dense per-wire layout produced by the circuit
// provider: one small integer per position in
//
//	[ secret1-share-mask | secret2-share-mask | random1..randomR |
//	  correctionOutput1..correctionOutputC | mult1..multM | constant ]
//
// A wire's symbolic value is the XOR-sum of the contributions it carries.
// This is the handoff shape from the (out-of-scope) expression-to-dependency
// lowering step; BitDep (see package bitdep) is the compact form the engine
// actually works with.
type Dependency struct {
	Secrets           [2][]uint8
	Randoms           []uint8
	CorrectionOutputs []uint8
	Mults             []uint8
	Constant          uint8
}

// NewDependency allocates a zeroed Dependency sized from cfg.
func NewDependency(cfg EngineConfig) Dependency {
	return Dependency{
		Secrets:           [2][]uint8{make([]uint8, cfg.ShareCount), make([]uint8, cfg.ShareCount)},
		Randoms:           make([]uint8, cfg.RandomCount),
		CorrectionOutputs: make([]uint8, cfg.CorrectionOutputCount),
		Mults:             make([]uint8, cfg.MultCount),
	}
}

// XOR accumulates other into d in place (dense-form XOR, used by the
// circuit provider when summing contributions into a wire; the engine
// itself works on the compact BitDep form).
func (d *Dependency) XOR(other Dependency) {
	for i := 0; i < 2; i++ {
		for j := range d.Secrets[i] {
			d.Secrets[i][j] ^= other.Secrets[i][j] & 1
		}
	}
	for j := range d.Randoms {
		d.Randoms[j] ^= other.Randoms[j] & 1
	}
	for j := range d.CorrectionOutputs {
		d.CorrectionOutputs[j] ^= other.CorrectionOutputs[j] & 1
	}
	for j := range d.Mults {
		d.Mults[j] ^= other.Mults[j] & 1
	}
	d.Constant ^= other.Constant & 1
}

// IsZero reports whether the dependency carries no contribution at all.
func (d Dependency) IsZero() bool {
	for i := 0; i < 2; i++ {
		for _, v := range d.Secrets[i] {
			if v != 0 {
				return false
			}
		}
	}
	for _, v := range d.Randoms {
		if v != 0 {
			return false
		}
	}
	for _, v := range d.CorrectionOutputs {
		if v != 0 {
			return false
		}
	}
	for _, v := range d.Mults {
		if v != 0 {
			return false
		}
	}
	return d.Constant == 0
}
