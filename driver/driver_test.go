package driver

import (
	"testing"

	"maskverify/circuit"
	"maskverify/predicate"
)

// buildToyCircuit builds a 4-wire probing circuit over 1 input
// (shareCount=2): wires 0,1 are the two shares directly (leaking),
// wires 2,3 are each share XORed with a shared random (each masked on
// its own; together the random cancels and both shares are exposed).
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

func TestRunFindsSingleWireLeakAtTIn0(t *testing.T) {
	c := buildToyCircuit()
	cfg := Config{
		Workers: 2,
		N:       len(c.Wires),
		K:       1,
		Opts:    predicate.Options{TIn: 0},
		MaxRows: 4 * len(c.Wires),
	}
	var found []Failure
	stats := Run(c, cfg, func(f Failure) {
		found = append(found, f)
	})
	if stats.Failures == 0 {
		t.Fatalf("expected at least one single-wire failure at t_in=0, found none")
	}
	if len(found) != stats.Failures {
		t.Fatalf("onFailure called %d times, stats reports %d", len(found), stats.Failures)
	}
}

func TestRunNoFailureForMaskedPairAtTIn1(t *testing.T) {
	c := buildToyCircuit()
	// Probing just wire 2 (y0) alone never exceeds t_in=1 on its own,
	// and a 1-combination search can't see the masked pair; this checks
	// the search doesn't spuriously report wire 2 or 3 alone as failing.
	cfg := Config{
		Workers: 1,
		N:       len(c.Wires),
		K:       1,
		Opts:    predicate.Options{TIn: 1},
		MaxRows: 4 * len(c.Wires),
	}
	var leaksY bool
	stats := Run(c, cfg, func(f Failure) {
		for _, idx := range f.Tuple {
			if idx == 2 || idx == 3 {
				leaksY = true
			}
		}
	})
	if leaksY {
		t.Fatalf("expected masked wires 2,3 to not leak individually at t_in=1")
	}
	_ = stats
}

func TestRunDeduplicatesAcrossWorkers(t *testing.T) {
	c := buildToyCircuit()
	cfg := Config{
		Workers: 4,
		N:       len(c.Wires),
		K:       1,
		Opts:    predicate.Options{TIn: 0},
		MaxRows: 4 * len(c.Wires),
	}
	seenTuples := map[int]bool{}
	stats := Run(c, cfg, func(f Failure) {
		for _, idx := range f.Tuple {
			if seenTuples[idx] {
				t.Fatalf("wire %d reported as a failure more than once", idx)
			}
			seenTuples[idx] = true
		}
	})
	if stats.Failures != len(seenTuples) {
		t.Fatalf("stats.Failures=%d but distinct wires seen=%d", stats.Failures, len(seenTuples))
	}
}
