package engine

import (
	"testing"

	"maskverify/circuit"
	"maskverify/predicate"
)

func buildToyCircuit() *circuit.Circuit {
	cfg := circuit.NewEngineConfig(2, 1, 2, 1, 0, 0, 0)
	c := &circuit.Circuit{Cfg: cfg, OutputCount: 2}

	d0 := circuit.NewDependency(cfg)
	d0.Secrets[0][0] = 1
	c.CompileWire("x0", d0)

	d1 := circuit.NewDependency(cfg)
	d1.Secrets[0][1] = 1
	c.CompileWire("x1", d1)

	d2 := circuit.NewDependency(cfg)
	d2.Secrets[0][0] = 1
	d2.Randoms[0] = 1
	c.CompileWire("y0", d2)

	d3 := circuit.NewDependency(cfg)
	d3.Secrets[0][1] = 1
	d3.Randoms[0] = 1
	c.CompileWire("y1", d3)

	return c
}

func TestEvaluateSingleShareLeaksAtTIn0(t *testing.T) {
	c := buildToyCircuit()
	ev := New(c, nil, 4*len(c.Wires))
	res, err := ev.Evaluate(nil, []int{0}, predicate.Options{TIn: 0})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !res.Failed() {
		t.Fatalf("expected a single unmasked share to fail at t_in=0")
	}
}

func TestEvaluateMaskedPairLeaksBothSharesAtTIn1(t *testing.T) {
	c := buildToyCircuit()
	ev := New(c, nil, 4*len(c.Wires))
	res, err := ev.Evaluate(nil, []int{2, 3}, predicate.Options{TIn: 1})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !res.Failed() {
		t.Fatalf("expected the two masked-pair wires together to cancel r0 and leak both shares at t_in=1")
	}
}

func TestEvaluateResetsBetweenCalls(t *testing.T) {
	c := buildToyCircuit()
	ev := New(c, nil, 4*len(c.Wires))

	first, err := ev.Evaluate(nil, []int{0}, predicate.Options{TIn: 0})
	if err != nil {
		t.Fatalf("Evaluate (first): %v", err)
	}
	if !first.Failed() {
		t.Fatalf("expected the first call to fail")
	}

	second, err := ev.Evaluate(nil, []int{3}, predicate.Options{TIn: 0})
	if err != nil {
		t.Fatalf("Evaluate (second): %v", err)
	}
	if second.Failed() {
		t.Fatalf("a prior call's failing tuple leaked into a later, independent call")
	}
}

func TestCorrCountMatchesCircuitConfig(t *testing.T) {
	c := buildToyCircuit()
	ev := New(c, nil, 4*len(c.Wires))
	if got := ev.CorrCount(); got != c.Cfg.CorrectionOutputCount {
		t.Fatalf("CorrCount()=%d, want %d", got, c.Cfg.CorrectionOutputCount)
	}
}

func TestEvaluateWithPrefixFoldsPrefixFirst(t *testing.T) {
	c := buildToyCircuit()
	ev := New(c, nil, 4*len(c.Wires))
	withoutPrefix, err := ev.Evaluate(nil, []int{3}, predicate.Options{TIn: 0})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	withPrefix, err := ev.Evaluate([]int{2}, []int{3}, predicate.Options{TIn: 0})
	if err != nil {
		t.Fatalf("Evaluate with prefix: %v", err)
	}
	if withoutPrefix.Failed() {
		t.Fatalf("expected a lone masked share to stay secure at t_in=0")
	}
	if !withPrefix.Failed() {
		t.Fatalf("expected the prefix wire to cancel r0 and expose both shares at t_in=0")
	}
}
