package property

import "testing"

func TestRPC_AccumulatesAcrossInternalWires(t *testing.T) {
	c := buildTwoInputGadget()
	res := RPC(c, 1, 0, 1, nil)
	if got := res.Accumulator.Coeffs[1].Int64(); got != 3 {
		t.Fatalf("coeffs[1]: got %d want 3 (a, b, ab each leak alone)", got)
	}
}
