package server

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/peterkuimelis/vicegrid/internal/engine"
	"github.com/peterkuimelis/vicegrid/internal/journal"
)

var (
	// ErrStaleVersion means the caller's expectedVersion no longer matches
	// the journal; they need to sync before retrying.
	ErrStaleVersion = errors.New("stale version")

	// ErrIllegalCommand means the engine rejected the command.
	ErrIllegalCommand = errors.New("illegal command")

	// ErrMatchNotFound means no match with that id exists.
	ErrMatchNotFound = errors.New("match not found")
)

// Match is one duel hosted by the server: the current snapshot, its
// journal, and the subscribers watching the event stream.
type Match struct {
	ID string

	mu      sync.Mutex
	state   *engine.GameState
	journal *journal.Journal
	subs    map[chan []journal.Entry]struct{}
}

func newMatch(cfg engine.DuelConfig) (*Match, error) {
	state, err := engine.NewDuel(cfg)
	if err != nil {
		return nil, err
	}
	return &Match{
		ID:      uuid.NewString(),
		state:   state,
		journal: journal.New(),
		subs:    make(map[chan []journal.Entry]struct{}),
	}, nil
}

// State returns the current snapshot. Snapshots are immutable; callers
// must not mutate the result.
func (m *Match) State() *engine.GameState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Version returns the journal's current version.
func (m *Match) Version() int {
	return m.journal.Version()
}

// Events returns journal entries with version strictly greater than
// since.
func (m *Match) Events(since int) []journal.Entry {
	return m.journal.Since(since)
}

// LegalMoves enumerates the legal commands for a seat against the
// current snapshot.
func (m *Match) LegalMoves(seat engine.Seat) []engine.Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	return engine.LegalMoves(m.state, seat)
}

// Submit decides a command, folds the resulting events into a new
// snapshot, journals them, and notifies subscribers. expectedVersion < 0
// skips the optimistic-concurrency check.
func (m *Match) Submit(seat engine.Seat, cmd engine.Command, expectedVersion int) ([]journal.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if expectedVersion >= 0 && expectedVersion != m.journal.Version() {
		return nil, ErrStaleVersion
	}

	events := engine.Decide(m.state, seat, cmd)
	if len(events) == 0 {
		return nil, ErrIllegalCommand
	}

	m.state = engine.Apply(m.state, events)
	before := m.journal.Version()
	m.journal.Append(events)
	entries := m.journal.Since(before)

	for ch := range m.subs {
		select {
		case ch <- entries:
		default:
			// Slow subscriber; it will resync from the journal.
		}
	}
	return entries, nil
}

// Subscribe registers a channel receiving each appended batch. The
// returned cancel func must be called when done.
func (m *Match) Subscribe() (<-chan []journal.Entry, func()) {
	ch := make(chan []journal.Entry, 16)
	m.mu.Lock()
	m.subs[ch] = struct{}{}
	m.mu.Unlock()
	cancel := func() {
		m.mu.Lock()
		delete(m.subs, ch)
		m.mu.Unlock()
	}
	return ch, cancel
}

// Registry tracks the matches the server is hosting.
type Registry struct {
	mu      sync.RWMutex
	matches map[string]*Match
}

func NewRegistry() *Registry {
	return &Registry{matches: make(map[string]*Match)}
}

// Create starts a new match from the given duel config.
func (r *Registry) Create(cfg engine.DuelConfig) (*Match, error) {
	m, err := newMatch(cfg)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.matches[m.ID] = m
	r.mu.Unlock()
	return m, nil
}

// Get looks up a match by id.
func (r *Registry) Get(id string) (*Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.matches[id]
	if !ok {
		return nil, ErrMatchNotFound
	}
	return m, nil
}
