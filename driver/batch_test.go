package driver

import (
	"testing"

	"maskverify/predicate"
)

func TestRunCoeffAccumulationSweepCountsEachWireOnce(t *testing.T) {
	c := buildToyCircuit()
	base := Config{
		Workers: 2,
		N:       len(c.Wires),
		Opts:    predicate.Options{TIn: 0},
		MaxRows: 4 * len(c.Wires),
	}
	acc, stats := RunCoeffAccumulationSweep(c, base, 0, 1, len(c.Wires))
	if stats.Failures != 2 {
		t.Fatalf("expected 2 minimal single-wire failures (x0, x1), got %d", stats.Failures)
	}
	if acc.AmplificationOrder() != 1 {
		t.Fatalf("expected amplification order 1, got %d", acc.AmplificationOrder())
	}
}
