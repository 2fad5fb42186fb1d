package circuit

import "maskverify/verifyerr"

// MultDependency describes one product `left * right` feeding a
// multiplication wire. It caches which inputs each operand contains so
// the factorizer does not need to re-scan the dense dependency on every
// tuple.
type MultDependency struct {
	Left, Right      Dependency
	ContainedSecrets [2][2]bool // ContainedSecrets[operand][input]
}

// NewMultDependency builds and validates a MultDependency. It enforces the
// invariants from spec.md §3: for every share position only one operand
// may carry input-i share j, and every random may appear in at most one
// operand. Violations return a *verifyerr.CircuitFormatError.
func NewMultDependency(wireName string, left, right Dependency) (MultDependency, error) {
	md := MultDependency{Left: left, Right: right}
	for i := 0; i < 2; i++ {
		for j := range left.Secrets[i] {
			lset := left.Secrets[i][j] != 0
			rset := j < len(right.Secrets[i]) && right.Secrets[i][j] != 0
			if lset && rset {
				return MultDependency{}, verifyerr.NewCircuitFormatError(wireName,
					"input %d share %d appears on both operands of a multiplication", i+1, j)
			}
			if lset {
				md.ContainedSecrets[0][i] = true
			}
			if rset {
				md.ContainedSecrets[1][i] = true
			}
		}
	}
	for j := range left.Randoms {
		lset := left.Randoms[j] != 0
		rset := j < len(right.Randoms) && right.Randoms[j] != 0
		if lset && rset {
			return MultDependency{}, verifyerr.NewCircuitFormatError(wireName,
				"random %d appears on both operands of a multiplication", j)
		}
	}
	return md, nil
}
