// Package faultscenario implements the text-file format CNI/CRP/CRPC
// fault combinations are read from and written to: a companion script
// (out of scope here) produces the list of fault scenarios still worth
// checking, skipping ones a prior run already proved corrected.
package faultscenario

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Scenario is one fault combination: the circuit wire names forced to a
// constant together.
type Scenario struct {
	WireNames []string
}

// Set is the flat scenario list CNI and plain CRP read: first line a
// decimal count, then one comma-separated wire-name line per scenario.
type Set struct {
	Scenarios []Scenario
}

// Provider is the interface a companion script's output satisfies (or
// any other collaborator that can enumerate fault scenarios to check),
// keeping the property drivers agnostic of how the list was produced.
type Provider interface {
	Scenarios() (Set, error)
}

// ReadFile parses the flat scenario format from path: file name pattern
// <gadget>_faulty_scenarios_k<k>_f<set>_<prop>.
func ReadFile(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return Set{}, fmt.Errorf("faultscenario: open %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return Set{}, fmt.Errorf("faultscenario: %s is empty", path)
	}
	count, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return Set{}, fmt.Errorf("faultscenario: %s: bad count line: %w", path, err)
	}

	var set Set
	for i := 0; i < count; i++ {
		if !sc.Scan() {
			return Set{}, fmt.Errorf("faultscenario: %s: expected %d scenarios, found %d", path, count, i)
		}
		names := strings.Split(strings.TrimSpace(sc.Text()), ",")
		set.Scenarios = append(set.Scenarios, Scenario{WireNames: names})
	}
	if err := sc.Err(); err != nil {
		return Set{}, fmt.Errorf("faultscenario: reading %s: %w", path, err)
	}
	return set, nil
}

// WriteFile writes set back out in the same format ReadFile consumes.
func WriteFile(path string, set Set) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("faultscenario: create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, len(set.Scenarios))
	for _, s := range set.Scenarios {
		fmt.Fprintln(w, strings.Join(s.WireNames, ","))
	}
	return w.Flush()
}

// NestedSet is CRPC's per-input-fault-combination sectioned format: each
// section is keyed by a label naming the input-fault combination (e.g.
// "t2" for a 2-fault combination over input wires) and holds its own
// flat Set of circuit-wire fault scenarios.
type NestedSet struct {
	Sections map[string]Set
}

// ReadNestedFile parses CRPC's sectioned format: a line "SECTION <label>"
// followed by that section's flat-format body (count line, then that
// many comma-separated scenario lines), repeated until EOF.
func ReadNestedFile(path string) (NestedSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return NestedSet{}, fmt.Errorf("faultscenario: open %s: %w", path, err)
	}
	defer f.Close()

	ns := NestedSet{Sections: map[string]Set{}}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 || fields[0] != "SECTION" {
			return NestedSet{}, fmt.Errorf("faultscenario: %s: expected SECTION line, got %q", path, line)
		}
		label := fields[1]
		if !sc.Scan() {
			return NestedSet{}, fmt.Errorf("faultscenario: %s: section %s missing count line", path, label)
		}
		count, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
		if err != nil {
			return NestedSet{}, fmt.Errorf("faultscenario: %s: section %s: bad count line: %w", path, label, err)
		}
		var set Set
		for i := 0; i < count; i++ {
			if !sc.Scan() {
				return NestedSet{}, fmt.Errorf("faultscenario: %s: section %s: expected %d scenarios, found %d", path, label, count, i)
			}
			names := strings.Split(strings.TrimSpace(sc.Text()), ",")
			set.Scenarios = append(set.Scenarios, Scenario{WireNames: names})
		}
		ns.Sections[label] = set
	}
	if err := sc.Err(); err != nil {
		return NestedSet{}, fmt.Errorf("faultscenario: reading %s: %w", path, err)
	}
	return ns, nil
}

// WriteNestedFile writes ns back out in the format ReadNestedFile
// consumes.
func WriteNestedFile(path string, ns NestedSet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("faultscenario: create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for label, set := range ns.Sections {
		fmt.Fprintf(w, "SECTION %s\n", label)
		fmt.Fprintln(w, len(set.Scenarios))
		for _, s := range set.Scenarios {
			fmt.Fprintln(w, strings.Join(s.WireNames, ","))
		}
	}
	return w.Flush()
}
