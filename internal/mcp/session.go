package mcp

import (
	"errors"
	"sync"

	"github.com/peterkuimelis/vicegrid/internal/engine"
	"github.com/peterkuimelis/vicegrid/internal/journal"
)

// Session is one in-process duel: the current snapshot plus its journal.
type Session struct {
	mu    sync.Mutex
	state *engine.GameState
	log   *journal.Journal
}

// NewSession starts a duel from the given config.
func NewSession(cfg engine.DuelConfig) (*Session, error) {
	state, err := engine.NewDuel(cfg)
	if err != nil {
		return nil, err
	}
	return &Session{state: state, log: journal.New()}, nil
}

// Snapshot returns the versioned view for a seat, or the spectator view
// when seat is empty.
func (s *Session) Snapshot(seat engine.Seat) any {
	s.mu.Lock()
	defer s.mu.Unlock()

	type snapshot struct {
		Version int         `json:"version"`
		Seat    engine.Seat `json:"seat,omitempty"`
		View    any         `json:"view"`
	}
	snap := snapshot{Version: s.log.Version(), Seat: seat}
	if seat == "" {
		snap.View = engine.BuildSpectatorView(s.state)
	} else {
		snap.View = engine.BuildPlayerView(s.state, seat)
	}
	return snap
}

// LegalMoves enumerates the seat's legal commands.
func (s *Session) LegalMoves(seat engine.Seat) []engine.Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.LegalMoves(s.state, seat)
}

// Submit decides and applies one command, journaling its events.
func (s *Session) Submit(seat engine.Seat, cmd engine.Command) ([]journal.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := engine.Decide(s.state, seat, cmd)
	if len(events) == 0 {
		return nil, errors.New("illegal command")
	}
	s.state = engine.Apply(s.state, events)
	before := s.log.Version()
	s.log.Append(events)
	return s.log.Since(before), nil
}

// Events returns journal entries past the given version.
func (s *Session) Events(since int) []journal.Entry {
	return s.log.Since(since)
}

// Version returns the journal's current version.
func (s *Session) Version() int {
	return s.log.Version()
}

func (s *Session) GameOver() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.GameOver
}

func (s *Session) Winner() engine.Seat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Winner
}
