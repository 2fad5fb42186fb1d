package property

import "testing"

func TestRP_SingleCopyGadgetHasAmplificationOrderOne(t *testing.T) {
	c := buildSingleCopyGadget()
	res := RP(c, 1, 1, nil)
	if got := res.Accumulator.AmplificationOrder(); got != 1 {
		t.Fatalf("expected amplification order 1, got %d", got)
	}
	if res.Accumulator.Coeffs[0].Sign() != 0 {
		t.Fatalf("expected coeffs[0]=0, got %v", res.Accumulator.Coeffs[0])
	}
	if res.Accumulator.Coeffs[1].Int64() != 1 {
		t.Fatalf("expected coeffs[1]=1, got %v", res.Accumulator.Coeffs[1])
	}
}

func TestRP_RefreshGadgetOutputSharesDoNotAddLeakage(t *testing.T) {
	// The refresh gadget's own input-share wires (x0, x1) are elementary
	// secrets and so trivially count as order-1 leaks in the random
	// probing model; that's expected and not a masking failure. What the
	// refresh should guarantee is that the masked output wires (y0, y1)
	// contribute no failures of their own at order 1: only x0 and x1 do.
	c := buildRefreshGadget()
	res := RP(c, 1, 2, nil)
	if res.Accumulator.Coeffs[0].Sign() != 0 {
		t.Fatalf("expected no order-0 leakage, got coeffs[0]=%v", res.Accumulator.Coeffs[0])
	}
	want := int64(2) // C(4,0) from x0 plus C(4,0) from x1
	if got := res.Accumulator.Coeffs[1].Int64(); got != want {
		t.Fatalf("expected coeffs[1]=%d (only x0,x1 leak alone), got %d", want, got)
	}
}
