// Package mcp exposes hosted duels as MCP tools so a model client can
// drive a duel over stdio: start a duel, inspect seat-scoped state,
// enumerate legal moves, and submit commands.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/vicegrid/internal/catalog"
	"github.com/peterkuimelis/vicegrid/internal/engine"
	"github.com/peterkuimelis/vicegrid/internal/journal"
)

// activeSession is the singleton duel session (one per stdio process).
var activeSession *Session

// defs and decks are the card pool the process serves, set by main.
var (
	defs  engine.Registry
	decks map[string][]string
)

// SetCardPool sets the registry and deck lists used for new duels.
func SetCardPool(registry engine.Registry, deckLists map[string][]string) {
	defs = registry
	decks = deckLists
}

// RegisterTools adds all duel tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startDuelTool(), handleStartDuel)
	s.AddTool(getStateTool(), handleGetState)
	s.AddTool(legalMovesTool(), handleLegalMoves)
	s.AddTool(submitCommandTool(), handleSubmitCommand)
	s.AddTool(getEventsTool(), handleGetEvents)
}

// --- Tool definitions ---

func startDuelTool() mcp.Tool {
	return mcp.NewTool("start_duel",
		mcp.WithDescription("Start a new duel between the host and away seats. "+
			"Both seats are driven through this process; submit commands for whichever seat holds priority."),
		mcp.WithString("host_deck", mcp.Required(), mcp.Description("Deck name for the host seat")),
		mcp.WithString("away_deck", mcp.Required(), mcp.Description("Deck name for the away seat")),
		mcp.WithNumber("seed", mcp.Description("Shuffle seed; 0 or omitted leaves decks unshuffled")),
		mcp.WithString("first_seat", mcp.Description("Which seat takes the first turn: 'host' (default) or 'away'")),
	)
}

func getStateTool() mcp.Tool {
	return mcp.NewTool("get_state",
		mcp.WithDescription("Get the current duel state from one seat's perspective (opponent face-down cards are hidden), or the spectator view when no seat is given. Read-only."),
		mcp.WithString("seat", mcp.Description("'host', 'away', or omitted for the spectator view")),
	)
}

func legalMovesTool() mcp.Tool {
	return mcp.NewTool("legal_moves",
		mcp.WithDescription("Enumerate every command the given seat may legally submit right now. Read-only."),
		mcp.WithString("seat", mcp.Required(), mcp.Description("'host' or 'away'")),
	)
}

func submitCommandTool() mcp.Tool {
	return mcp.NewTool("submit_command",
		mcp.WithDescription("Submit a command for a seat. The command is a JSON object as returned by legal_moves. "+
			"Returns the events it produced, or an error when the command is illegal."),
		mcp.WithString("seat", mcp.Required(), mcp.Description("'host' or 'away'")),
		mcp.WithString("command", mcp.Required(), mcp.Description("Command JSON, e.g. {\"type\":\"advance_phase\"}")),
	)
}

func getEventsTool() mcp.Tool {
	return mcp.NewTool("get_events",
		mcp.WithDescription("Get journaled events with version greater than 'since'. Read-only."),
		mcp.WithNumber("since", mcp.Description("Return events after this version (default 0 = all)")),
	)
}

// --- Tool handlers ---

func respondJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}

func handleStartDuel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession != nil && !activeSession.GameOver() {
		return mcp.NewToolResultError("A duel is already running. Finish it before starting another."), nil
	}

	hostDeck, err := catalog.DeckByName(decks, request.GetString("host_deck", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("host deck: %v", err), nil
	}
	awayDeck, err := catalog.DeckByName(decks, request.GetString("away_deck", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("away deck: %v", err), nil
	}

	first := engine.Seat(request.GetString("first_seat", string(engine.SeatHost)))
	sess, err := NewSession(engine.DuelConfig{
		Defs:      defs,
		HostDeck:  hostDeck,
		AwayDeck:  awayDeck,
		Seed:      int64(request.GetInt("seed", 0)),
		FirstSeat: first,
	})
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start duel: %v", err), nil
	}
	activeSession = sess

	return mcp.NewToolResultText(respondJSON(sess.Snapshot(""))), nil
}

func handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No duel is running. Use start_duel first."), nil
	}
	seat := engine.Seat(request.GetString("seat", ""))
	if seat != "" && !seat.Valid() {
		return mcp.NewToolResultErrorf("Invalid seat %q.", seat), nil
	}
	return mcp.NewToolResultText(respondJSON(activeSession.Snapshot(seat))), nil
}

func handleLegalMoves(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No duel is running. Use start_duel first."), nil
	}
	seat := engine.Seat(request.GetString("seat", ""))
	if !seat.Valid() {
		return mcp.NewToolResultErrorf("Invalid seat %q.", seat), nil
	}
	return mcp.NewToolResultText(respondJSON(activeSession.LegalMoves(seat))), nil
}

func handleSubmitCommand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No duel is running. Use start_duel first."), nil
	}
	seat := engine.Seat(request.GetString("seat", ""))
	if !seat.Valid() {
		return mcp.NewToolResultErrorf("Invalid seat %q.", seat), nil
	}

	var cmd engine.Command
	if err := json.Unmarshal([]byte(request.GetString("command", "")), &cmd); err != nil {
		return mcp.NewToolResultErrorf("Invalid command JSON: %v", err), nil
	}

	entries, err := activeSession.Submit(seat, cmd)
	if err != nil {
		return mcp.NewToolResultErrorf("Command rejected: %v. Use legal_moves to see what %s may do.", err, seat), nil
	}

	resp := struct {
		Events   []journal.Entry `json:"events"`
		Version  int             `json:"version"`
		GameOver bool            `json:"gameOver"`
		Winner   engine.Seat     `json:"winner,omitempty"`
	}{
		Events:   entries,
		Version:  activeSession.Version(),
		GameOver: activeSession.GameOver(),
		Winner:   activeSession.Winner(),
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleGetEvents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No duel is running. Use start_duel first."), nil
	}
	since := request.GetInt("since", 0)
	return mcp.NewToolResultText(respondJSON(activeSession.Events(since))), nil
}
