// Package journal keeps the versioned event history of a duel. The
// engine produces events; the journal assigns them monotonic versions so
// clients can sync incrementally and tests can assert on what happened.
package journal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/peterkuimelis/vicegrid/internal/engine"
)

// Entry is one journaled event with its assigned version.
type Entry struct {
	Version int          `json:"version"`
	Event   engine.Event `json:"event"`
}

// Journal is an append-only, versioned event log. Safe for concurrent
// readers and writers.
type Journal struct {
	mu      sync.RWMutex
	entries []Entry
}

func New() *Journal {
	return &Journal{}
}

// Append records a batch of events, assigning consecutive versions, and
// returns the version of the last entry.
func (j *Journal) Append(events []engine.Event) int {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, ev := range events {
		j.entries = append(j.entries, Entry{Version: len(j.entries) + 1, Event: ev})
	}
	return len(j.entries)
}

// Version returns the version of the most recent entry, 0 when empty.
func (j *Journal) Version() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.entries)
}

// All returns a copy of every entry.
func (j *Journal) All() []Entry {
	return j.Since(0)
}

// Since returns a copy of the entries with version strictly greater
// than v.
func (j *Journal) Since(v int) []Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if v < 0 {
		v = 0
	}
	if v >= len(j.entries) {
		return nil
	}
	out := make([]Entry, len(j.entries)-v)
	copy(out, j.entries[v:])
	return out
}

// OfType returns all entries whose event matches the given type.
func (j *Journal) OfType(t engine.EventType) []Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()
	var result []Entry
	for _, e := range j.entries {
		if e.Event.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// Last returns the most recent entry, or a zero entry when empty.
func (j *Journal) Last() Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if len(j.entries) == 0 {
		return Entry{}
	}
	return j.entries[len(j.entries)-1]
}

// --- Formatting ---

// FormatEntry formats one entry as a human-readable line.
func FormatEntry(e Entry) string {
	return fmt.Sprintf("%4d | %s", e.Version, e.Event.String())
}

// FormatAll formats a batch of entries as a multi-line string.
func FormatAll(entries []Entry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(FormatEntry(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Tail writes every entry past version v to w and returns the new
// high-water mark. Useful for streaming a duel to a terminal.
func (j *Journal) Tail(w io.Writer, v int) int {
	entries := j.Since(v)
	for _, e := range entries {
		fmt.Fprintln(w, FormatEntry(e))
	}
	if len(entries) == 0 {
		return v
	}
	return entries[len(entries)-1].Version
}
