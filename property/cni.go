package property

import (
	"maskverify/circuit"
	"maskverify/comb"
	"maskverify/gauss"
)

// CNI checks t-order Composable-Non-Interference against up to k
// simultaneous wire faults: for every fault combination of size 1..k
// drawn from the circuit's internal wires, the faulted circuit (built
// by injector, an external collaborator — see circuit.FaultInjector)
// must still satisfy t-NI. The search stops at the first fault
// combination whose faulted circuit fails NI and returns that faulted
// circuit's NI counterexample; the Verdict does not name the faulted
// wires.
func CNI(c *circuit.Circuit, injector circuit.FaultInjector, t, k, workers int, corrTable []gauss.CorrectionExpansion) Verdict {
	internal := internalIndices(c)
	var checked uint64
	for size := 1; size <= k && size <= len(internal); size++ {
		cur := comb.First(size)
		for {
			names := make([]string, size)
			for i, p := range cur {
				names[i] = c.Wires[internal[p]].Name
			}
			faulted, err := injector.Fault(names, nil)
			if err == nil {
				v := NI(faulted, t, workers, corrTable)
				checked += v.TuplesChecked
				if !v.Holds {
					return Verdict{
						Holds:            false,
						Counterexample:   v.Counterexample,
						TuplesChecked:    checked,
						Extension:        v.Extension,
						AugmentedRandoms: v.AugmentedRandoms,
					}
				}
			}
			if comb.Next(cur, len(internal)) == -1 {
				break
			}
		}
	}
	return Verdict{Holds: true, TuplesChecked: checked}
}
