// Package engine wires together the bit-dependency algebra, the
// Gaussian eliminator, the multiplication factorizer and the failure
// predicate into a single per-tuple evaluator, the unit of work the
// combination enumerator and parallel driver repeat over the tuple
// space.
package engine

import (
	"maskverify/bitdep"
	"maskverify/circuit"
	"maskverify/factor"
	"maskverify/gauss"
	"maskverify/predicate"
)

// TupleEvaluator folds a sequence of wire indices into Gaussian-
// eliminated rows and evaluates the failure predicate against them. It
// owns reusable scratch state (the gauss.Eliminator's working arrays)
// so repeated calls to Evaluate across an enumeration do not allocate.
type TupleEvaluator struct {
	circuit   *circuit.Circuit
	widths    bitdep.Widths
	corrTable []gauss.CorrectionExpansion
	maxRows   int
	elim      *gauss.Eliminator
}

// New builds a TupleEvaluator for c, preallocating a working array sized
// maxRows (spec.md recommends 10*circuit.length to leave headroom for
// correction-output and multiplication-factor expansion).
func New(c *circuit.Circuit, corrTable []gauss.CorrectionExpansion, maxRows int) *TupleEvaluator {
	w := c.Widths()
	return &TupleEvaluator{
		circuit:   c,
		widths:    w,
		corrTable: corrTable,
		maxRows:   maxRows,
		elim:      gauss.NewEliminator(w, c.Cfg.CorrectionOutputCount, corrTable, maxRows),
	}
}

// Evaluate folds prefix then tuple (in that order — prefix wires are
// gauss-stepped first so their pivots are chosen before the variable
// suffix, matching the prefix-handling rule in §4.6) and evaluates the
// failure predicate with opts. It resets its internal Eliminator first,
// so results from a previous call never leak into this one.
func (e *TupleEvaluator) Evaluate(prefix, tuple []int, opts predicate.Options) (predicate.Result, error) {
	e.elim.Reset()
	if err := e.fold(prefix); err != nil {
		return predicate.Result{}, err
	}
	if err := e.fold(tuple); err != nil {
		return predicate.Result{}, err
	}
	return predicate.Evaluate(e.elim.Rows(), e.elim.Pivots(), opts), nil
}

func (e *TupleEvaluator) fold(wires []int) error {
	for _, idx := range wires {
		wire := e.circuit.Wires[idx]
		res, err := factor.Factorize(e.circuit.Mults, wire.Bit, e.widths, e.circuit.HasInputRands)
		if err != nil {
			return err
		}
		e.elim.Step(res.Base)
		for _, fr := range res.FactorRows {
			e.elim.Step(fr)
		}
	}
	return nil
}

// RawRows returns the current (unreduced-mask) rows, without pivots, for
// callers that need the random-augmentation search (predicate.
// SearchRandomAugmentation) after a non-failing Evaluate.
func (e *TupleEvaluator) RawRows() []bitdep.BitDep { return e.elim.Rows() }

// Widths exposes the evaluator's bitdep.Widths, e.g. for random
// augmentation which needs to build a scratch Eliminator of its own.
func (e *TupleEvaluator) Widths() bitdep.Widths { return e.widths }

// CorrTable exposes the correction-output expansion table.
func (e *TupleEvaluator) CorrTable() []gauss.CorrectionExpansion { return e.corrTable }

// CorrCount exposes the circuit's declared correction-output count, for
// callers (random augmentation) that build their own scratch
// gauss.Eliminator and need to size it the same way.
func (e *TupleEvaluator) CorrCount() int { return e.circuit.Cfg.CorrectionOutputCount }
