// Package server exposes hosted duels over HTTP: create a match, submit
// commands with optimistic concurrency, read seat-scoped state, and
// follow the event stream over a websocket.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"

	"github.com/peterkuimelis/vicegrid/internal/catalog"
	"github.com/peterkuimelis/vicegrid/internal/engine"
	"github.com/peterkuimelis/vicegrid/internal/journal"
)

// Server is the vicegrid HTTP server.
type Server struct {
	registry *Registry
	defs     engine.Registry
	decks    map[string][]string
	log      *zap.Logger
	mux      *http.ServeMux
}

// NewServer creates a server hosting duels built from the given card
// registry and deck lists.
func NewServer(defs engine.Registry, decks map[string][]string, log *zap.Logger) *Server {
	s := &Server{
		registry: NewRegistry(),
		defs:     defs,
		decks:    decks,
		log:      log,
		mux:      http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/decks", s.handleDecks)
	s.mux.HandleFunc("POST /api/matches", s.handleCreateMatch)
	s.mux.HandleFunc("GET /api/matches/{id}/state", s.handleState)
	s.mux.HandleFunc("GET /api/matches/{id}/events", s.handleEvents)
	s.mux.HandleFunc("GET /api/matches/{id}/legal", s.handleLegal)
	s.mux.HandleFunc("POST /api/matches/{id}/commands", s.handleCommand)
	s.mux.HandleFunc("GET /api/matches/{id}/stream", s.handleStream)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, s.mux)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// CardInfo is the JSON representation of a card for /api/cards.
type CardInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CardType    string `json:"cardType"`
	Rarity      string `json:"rarity,omitempty"`
	Level       int    `json:"level,omitempty"`
	Attack      int    `json:"attack,omitempty"`
	Defense     int    `json:"defense,omitempty"`
	Subtype     string `json:"subtype,omitempty"`
	Description string `json:"description,omitempty"`
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	cards := make([]CardInfo, 0, len(s.defs))
	for _, def := range s.defs {
		ci := CardInfo{
			ID:       def.ID,
			Name:     def.Name,
			CardType: string(def.Type),
			Rarity:   def.Rarity,
			Level:    def.Level,
			Attack:   def.Attack,
			Defense:  def.Defense,
			Subtype:  string(def.Spell),
		}
		for _, eff := range def.Effects {
			if ci.Description != "" {
				ci.Description += " / "
			}
			ci.Description += eff.Description
		}
		cards = append(cards, ci)
	}
	writeJSON(w, http.StatusOK, cards)
}

// DeckInfo is the JSON representation of a deck for /api/decks.
type DeckInfo struct {
	Name  string   `json:"name"`
	Cards []string `json:"cards"`
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	decks := make([]DeckInfo, 0, len(s.decks))
	for name, ids := range s.decks {
		decks = append(decks, DeckInfo{Name: name, Cards: ids})
	}
	writeJSON(w, http.StatusOK, decks)
}

type createMatchRequest struct {
	HostDeck  string      `json:"hostDeck"`
	AwayDeck  string      `json:"awayDeck"`
	Seed      int64       `json:"seed,omitempty"`
	FirstSeat engine.Seat `json:"firstSeat,omitempty"`
}

type createMatchResponse struct {
	MatchID string `json:"matchId"`
	Version int    `json:"version"`
}

func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req createMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	hostDeck, err := catalog.DeckByName(s.decks, req.HostDeck)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	awayDeck, err := catalog.DeckByName(s.decks, req.AwayDeck)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := s.registry.Create(engine.DuelConfig{
		Defs:      s.defs,
		HostDeck:  hostDeck,
		AwayDeck:  awayDeck,
		Seed:      req.Seed,
		FirstSeat: req.FirstSeat,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.log.Info("match created",
		zap.String("match", m.ID),
		zap.String("hostDeck", req.HostDeck),
		zap.String("awayDeck", req.AwayDeck))
	writeJSON(w, http.StatusCreated, createMatchResponse{MatchID: m.ID, Version: m.Version()})
}

func (s *Server) match(w http.ResponseWriter, r *http.Request) *Match {
	m, err := s.registry.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "match not found")
		return nil
	}
	return m
}

// seatParam reads the seat query parameter; empty means spectator.
func seatParam(r *http.Request) (engine.Seat, bool) {
	raw := r.URL.Query().Get("seat")
	if raw == "" {
		return "", true
	}
	seat := engine.Seat(raw)
	return seat, seat.Valid()
}

type stateResponse struct {
	Version int    `json:"version"`
	View    any    `json:"view"`
	Seat    string `json:"seat,omitempty"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	m := s.match(w, r)
	if m == nil {
		return
	}
	seat, ok := seatParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid seat")
		return
	}

	gs := m.State()
	resp := stateResponse{Version: m.Version(), Seat: string(seat)}
	if seat == "" {
		resp.View = engine.BuildSpectatorView(gs)
	} else {
		resp.View = engine.BuildPlayerView(gs, seat)
	}
	writeJSON(w, http.StatusOK, resp)
}

type eventsResponse struct {
	Version int             `json:"version"`
	Events  []journal.Entry `json:"events"`
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	m := s.match(w, r)
	if m == nil {
		return
	}
	since := 0
	if raw := r.URL.Query().Get("since"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid since")
			return
		}
		since = n
	}
	writeJSON(w, http.StatusOK, eventsResponse{Version: m.Version(), Events: m.Events(since)})
}

type legalResponse struct {
	Version int              `json:"version"`
	Moves   []engine.Command `json:"moves"`
}

func (s *Server) handleLegal(w http.ResponseWriter, r *http.Request) {
	m := s.match(w, r)
	if m == nil {
		return
	}
	seat, ok := seatParam(r)
	if !ok || seat == "" {
		writeError(w, http.StatusBadRequest, "seat required")
		return
	}
	writeJSON(w, http.StatusOK, legalResponse{Version: m.Version(), Moves: m.LegalMoves(seat)})
}

type commandRequest struct {
	Seat            engine.Seat    `json:"seat"`
	Command         engine.Command `json:"command"`
	ExpectedVersion *int           `json:"expectedVersion,omitempty"`
}

type commandResponse struct {
	Version int             `json:"version"`
	Events  []journal.Entry `json:"events"`
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	m := s.match(w, r)
	if m == nil {
		return
	}
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !req.Seat.Valid() {
		writeError(w, http.StatusBadRequest, "invalid seat")
		return
	}

	expected := -1
	if req.ExpectedVersion != nil {
		expected = *req.ExpectedVersion
	}

	entries, err := m.Submit(req.Seat, req.Command, expected)
	switch {
	case errors.Is(err, ErrStaleVersion):
		writeError(w, http.StatusConflict, "stale version")
		return
	case errors.Is(err, ErrIllegalCommand):
		writeError(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("illegal command for seat %q", req.Seat))
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.log.Info("command applied",
		zap.String("match", m.ID),
		zap.String("seat", string(req.Seat)),
		zap.String("command", string(req.Command.Type)),
		zap.Int("events", len(entries)))
	writeJSON(w, http.StatusOK, commandResponse{Version: m.Version(), Events: entries})
}

// handleStream pushes journal entries to the client as they are
// appended. The client sends nothing; it reads JSON batches.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	m := s.match(w, r)
	if m == nil {
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.log.Warn("websocket accept", zap.Error(err))
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	ch, cancel := m.Subscribe()
	defer cancel()

	// Backfill anything already journaled before streaming live batches.
	if backlog := m.Events(0); len(backlog) > 0 {
		if err := wsjson.Write(ctx, conn, backlog); err != nil {
			return
		}
	}

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "client gone")
			return
		case entries, open := <-ch:
			if !open {
				return
			}
			if err := wsjson.Write(ctx, conn, entries); err != nil {
				return
			}
		}
	}
}
