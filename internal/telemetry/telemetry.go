// Package telemetry implements per-phase timing for a verification run
// (circuit load, each property checked, final reporting), adapted from
// the teacher's prof package into a named-phase log a CLI run can print
// under -v instead of a single global timing sink.
package telemetry

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Entry is one completed phase's timing.
type Entry struct {
	Label string
	Dur   time.Duration
}

// Log collects phase timings for one run. The zero value is ready to
// use; a *Log is safe for concurrent Track calls from parallel property
// drivers.
type Log struct {
	mu      sync.Mutex
	entries []Entry
}

// Track records the duration since start under name. Typical use is
// `defer log.Track(time.Now(), "NI")` at the top of a phase.
func (l *Log) Track(start time.Time, name string) {
	elapsed := time.Since(start)
	l.mu.Lock()
	l.entries = append(l.entries, Entry{Label: name, Dur: elapsed})
	l.mu.Unlock()
}

// Snapshot returns a copy of every entry recorded so far.
func (l *Log) Snapshot() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// WriteReport prints one line per phase plus a total, for -v output.
func WriteReport(w io.Writer, entries []Entry) {
	var total time.Duration
	for _, e := range entries {
		fmt.Fprintf(w, "%-16s %v\n", e.Label, e.Dur)
		total += e.Dur
	}
	fmt.Fprintf(w, "%-16s %v\n", "total", total)
}
