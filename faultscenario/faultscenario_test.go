package faultscenario

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestWriteReadFileRoundTrip(t *testing.T) {
	set := Set{Scenarios: []Scenario{
		{WireNames: []string{"r0"}},
		{WireNames: []string{"x0", "x1"}},
	}}
	path := filepath.Join(t.TempDir(), "gadget_faulty_scenarios_k1_f0_NI")
	if err := WriteFile(path, set); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !reflect.DeepEqual(got, set) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, set)
	}
}

func TestWriteReadNestedFileRoundTrip(t *testing.T) {
	ns := NestedSet{Sections: map[string]Set{
		"t1": {Scenarios: []Scenario{{WireNames: []string{"r0"}}}},
		"t2": {Scenarios: []Scenario{{WireNames: []string{"r0", "r1"}}}},
	}}
	path := filepath.Join(t.TempDir(), "gadget_k2_f0.CRPC_scenarios")
	if err := WriteNestedFile(path, ns); err != nil {
		t.Fatalf("WriteNestedFile: %v", err)
	}
	got, err := ReadNestedFile(path)
	if err != nil {
		t.Fatalf("ReadNestedFile: %v", err)
	}
	if !reflect.DeepEqual(got, ns) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, ns)
	}
}

func TestReadFileRejectsTruncatedScenarioList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "truncated")
	if err := WriteFile(path, Set{Scenarios: []Scenario{{WireNames: []string{"r0"}}}}); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	// Corrupt: claim 5 scenarios while only writing one (WriteFile already
	// wrote the correct count, so instead read a hand-built bad file).
	bad := []byte("5\nr0\n")
	if err := os.WriteFile(path, bad, 0o644); err != nil {
		t.Fatalf("writing corrupt file: %v", err)
	}
	if _, err := ReadFile(path); err == nil {
		t.Fatalf("expected an error for a truncated scenario list")
	}
}
