package property

import "testing"

func TestPINI_RefreshGadgetHoldsAtOrder1(t *testing.T) {
	c := buildRefreshGadget()
	v := PINI(c, 1, 2, nil)
	if !v.Holds {
		t.Fatalf("expected the linear refresh gadget to be 1-PINI, got counterexample %v", v.Counterexample)
	}
}

func TestPINI_LeakyGadgetFailsAtOrder1(t *testing.T) {
	c := buildLeakyGadget()
	v := PINI(c, 1, 2, nil)
	if v.Holds {
		t.Fatalf("expected the unmasked bad output wire to break 1-PINI")
	}
}
