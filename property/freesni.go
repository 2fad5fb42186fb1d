package property

import (
	"sync"
	"sync/atomic"

	"maskverify/bitdep"
	"maskverify/circuit"
	"maskverify/comb"
	"maskverify/engine"
	"maskverify/gauss"
	"maskverify/predicate"
)

// OutputUniform reports whether every output group (the ShareCount
// wires of one declared output) is "uniform" in the free-SNI/IOS sense:
// Gaussian-reducing its share dependencies in declaration order leaves
// the first ShareCount-1 rows pivoted (each owns a fresh random column)
// and the last row unpivoted with a full secret-share mask and no
// randoms — i.e. the last share is exactly the XOR-complement of the
// others plus the full secret, the shape a uniformly-shared output must
// have.
func OutputUniform(c *circuit.Circuit, corrTable []gauss.CorrectionExpansion) bool {
	n := c.OutputCount * c.Cfg.ShareCount
	start := len(c.Wires) - n
	if start < 0 {
		return false
	}
	for g := 0; g < c.OutputCount; g++ {
		e := gaussEngine(c, corrTable)
		base := start + g*c.Cfg.ShareCount
		for s := 0; s < c.Cfg.ShareCount; s++ {
			e.Step(c.Wires[base+s].Bit)
		}
		rows := e.Rows()
		pivots := e.Pivots()
		for s := 0; s < c.Cfg.ShareCount-1; s++ {
			if !pivots[s].IsSet {
				return false
			}
		}
		last := rows[c.Cfg.ShareCount-1]
		if pivots[c.Cfg.ShareCount-1].IsSet {
			return false
		}
		fullMask := uint64(1)<<uint(c.Cfg.ShareCount) - 1
		if bitdep.PopCountWords(last.Randoms) != 0 {
			return false
		}
		if last.Secrets[0] != fullMask && last.Secrets[0] != 0 {
			// single-input gadgets only need input 1's mask to be full;
			// two-input gadgets require each input's mask to independently
			// be either untouched or fully uniform.
			return false
		}
		if last.Secrets[1] != fullMask && last.Secrets[1] != 0 {
			return false
		}
		if last.Secrets[0] == 0 && last.Secrets[1] == 0 {
			return false
		}
	}
	return true
}

// ioAssignment is one way of splitting the circuit's output shares
// between the leaked-input set I (folded alongside the internal probes
// and counted toward the tuple's input-share usage) and the
// output-independence set O (excluded from the input-side fold; IOS
// additionally bounds O's own share count).
type ioAssignment struct {
	inI []int
	outO []int
}

// ioAssignments enumerates every 2^len(outputs) way to split outputs
// between I and O, per §4.8's "branching over 2^choice_count small
// assignments" — choice_count here is the output share count, which is
// small and fixed per circuit regardless of how large the internal
// search gets.
func ioAssignments(outputs []int) []ioAssignment {
	n := len(outputs)
	out := make([]ioAssignment, 0, 1<<uint(n))
	for mask := 0; mask < 1<<uint(n); mask++ {
		var a ioAssignment
		for i, w := range outputs {
			if mask&(1<<uint(i)) != 0 {
				a.inI = append(a.inI, w)
			} else {
				a.outO = append(a.outO, w)
			}
		}
		out = append(out, a)
	}
	return out
}

// satisfiesAssignment folds real (the internal probe tuple) with
// assignment.inI and checks the combined input-share usage stays within
// len(real) — the tuple's own size, the self-referential bound free-SNI
// and IOS share (unlike NI/SNI's externally fixed t, adding more probes
// to the tuple grows the allowed usage right along with it, which is why
// reduce.Reconstruct's budget-extension trick does not apply here: an
// elementary wire added to close a gap also raises the bound by one). In
// IOS mode, assignment.outO's own share usage must independently stay
// within len(real) too.
func satisfiesAssignment(ev *engine.TupleEvaluator, real []int, a ioAssignment, iosMode bool) bool {
	bound := len(real)
	combined := append(append([]int(nil), real...), a.inI...)
	res, err := ev.Evaluate(nil, combined, predicate.Options{TIn: bound})
	if err != nil || res.Failed() {
		return false
	}
	if !iosMode || len(a.outO) == 0 {
		return true
	}
	oRes, err := ev.Evaluate(nil, a.outO, predicate.Options{TIn: bound})
	return err == nil && !oRes.Failed()
}

// freeSNIOrIOS implements §4.8's free-SNI/IOS check: output uniformity
// must hold first (IronMask's find_first_failure_freeSNI_IOS does the
// same gate before searching, freeSNI.c:79-90), then every tuple of
// internal probes up to t is checked against every I/O output-share
// assignment; the tuple is secure as soon as one assignment satisfies
// its bound, and a counterexample is reported only once every
// assignment fails it. iosMode selects the stronger, output-usage-
// tracking variant IronMask picks with a trailing boolean flag; false
// gives plain free-SNI.
func freeSNIOrIOS(c *circuit.Circuit, t, workers int, corrTable []gauss.CorrectionExpansion, iosMode bool) Verdict {
	if !OutputUniform(c, corrTable) {
		return Verdict{Holds: false}
	}

	internal, _ := reduceUniverse(c, true, internalIndices(c))
	outputs := outputIndices(c)
	assignments := ioAssignments(outputs)
	maxRows := defaultMaxRows(c)

	var checked uint64
	for k := 0; k <= t && k <= len(internal); k++ {
		total := comb.Count(len(internal), k)
		if workers < 1 {
			workers = 1
		}

		var found []int
		var foundMu sync.Mutex
		var stopped atomic.Bool
		var wg sync.WaitGroup

		for wkr := 0; wkr < workers; wkr++ {
			start, count := comb.WorkerRange(wkr, workers, total)
			if count == 0 {
				continue
			}
			wg.Add(1)
			go func(start, count uint64) {
				defer wg.Done()
				ev := engine.New(c, corrTable, maxRows)
				tuple := comb.Unrank(len(internal), k, start)
				for i := uint64(0); i < count; i++ {
					if stopped.Load() {
						return
					}
					real := translateWires(internal, tuple)
					atomic.AddUint64(&checked, 1)
					ok := false
					for _, a := range assignments {
						if satisfiesAssignment(ev, real, a, iosMode) {
							ok = true
							break
						}
					}
					if !ok {
						foundMu.Lock()
						if found == nil {
							found = append([]int(nil), real...)
						}
						foundMu.Unlock()
						stopped.Store(true)
						return
					}
					if i+1 < count {
						comb.Next(tuple, len(internal))
					}
				}
			}(start, count)
		}
		wg.Wait()

		if found != nil {
			return Verdict{Holds: false, Counterexample: found, TuplesChecked: checked}
		}
	}
	return Verdict{Holds: true, TuplesChecked: checked}
}

// translateWires maps rank-space indices (into universe) to circuit
// wire indices, the same mapping driver.Config.Universe gives the
// parallel driver.
func translateWires(universe, tuple []int) []int {
	out := make([]int, len(tuple))
	for i, idx := range tuple {
		out[i] = universe[idx]
	}
	return out
}

// FreeSNI checks t-free-SNI: every output share may be probed for free
// (once OutputUniform holds) alongside up to t internal probes, as long
// as some I/O assignment of the probed outputs keeps the combined
// input-share usage within the tuple's own size.
func FreeSNI(c *circuit.Circuit, t, workers int, corrTable []gauss.CorrectionExpansion) Verdict {
	return freeSNIOrIOS(c, t, workers, corrTable, false)
}

// IOS is free-SNI's stronger sibling: the same branching search, but a
// satisfying assignment must additionally keep the output-independence
// set's own share usage within the tuple's size, modeling a composing
// observer who can reuse those output shares as part of their own probe
// budget, not just the leaked-input side.
func IOS(c *circuit.Circuit, t, workers int, corrTable []gauss.CorrectionExpansion) Verdict {
	return freeSNIOrIOS(c, t, workers, corrTable, true)
}
