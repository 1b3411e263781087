package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakdownSweepDestroysAtThreshold(t *testing.T) {
	gs := baseState(testRegistry())
	gs.CurrentPhase = PhaseMain2
	bc := putMonster(gs, SeatHost, "b1", "grunt", PositionAttack)
	bc.ViceCounters = BreakdownThreshold
	stock(gs, SeatAway, "grunt", 1)

	events := Decide(gs, SeatHost, Command{Type: CommandAdvancePhase})
	require.NotEmpty(t, events)

	// The breakdown itself is exactly three events: destruction, grave,
	// breakdown credit.
	assert.Equal(t, 1, countType(events, EventCardDestroyed))
	assert.Equal(t, 1, countType(events, EventCardToGrave))
	assert.Equal(t, 1, countType(events, EventBreakdown))

	next := Apply(gs, events)
	assert.Empty(t, next.Players[SeatHost].Board)
	assert.Contains(t, next.Players[SeatHost].Graveyard, "b1")
	assert.Equal(t, 1, next.Players[SeatAway].BreakdownsCaused)
}

func TestBreakdownBelowThresholdSurvives(t *testing.T) {
	gs := baseState(testRegistry())
	gs.CurrentPhase = PhaseMain2
	bc := putMonster(gs, SeatHost, "b1", "grunt", PositionAttack)
	bc.ViceCounters = BreakdownThreshold - 1

	next := play(t, gs, SeatHost, Command{Type: CommandAdvancePhase})
	assert.Len(t, next.Players[SeatHost].Board, 1)
	assert.Equal(t, 0, next.Players[SeatAway].BreakdownsCaused)
}

func TestTripleBreakdownWinsTheDuel(t *testing.T) {
	gs := baseState(testRegistry())
	gs.CurrentPhase = PhaseMain2
	for i, id := range []string{"b1", "b2", "b3"} {
		bc := putMonster(gs, SeatHost, id, "grunt", PositionAttack)
		bc.ViceCounters = BreakdownThreshold + i
	}

	events := Decide(gs, SeatHost, Command{Type: CommandAdvancePhase})
	require.NotEmpty(t, events)

	// Three breakdowns, nine breakdown events, then the game ends; the
	// win is emitted after the sweep completes, not mid-sweep.
	assert.Equal(t, 3, countType(events, EventBreakdown))
	assert.Equal(t, 3, countType(events, EventCardDestroyed))
	assert.Equal(t, 3, countType(events, EventCardToGrave))
	last := events[len(events)-1]
	assert.Equal(t, EventGameEnded, last.Type)
	assert.Equal(t, SeatAway, last.Winner)
	assert.Equal(t, WinReasonBreakdown, last.Reason)

	next := Apply(gs, events)
	assert.True(t, next.GameOver)
	assert.Equal(t, 3, next.Players[SeatAway].BreakdownsCaused)
}

func TestBreakdownSweepBoardOrderHostFirst(t *testing.T) {
	gs := baseState(testRegistry())
	gs.CurrentPhase = PhaseMain2
	putMonster(gs, SeatAway, "a1", "grunt", PositionAttack).ViceCounters = BreakdownThreshold
	putMonster(gs, SeatHost, "h1", "grunt", PositionAttack).ViceCounters = BreakdownThreshold

	events := Decide(gs, SeatHost, Command{Type: CommandAdvancePhase})
	require.NotEmpty(t, events)

	var order []string
	for _, ev := range events {
		if ev.Type == EventBreakdown {
			order = append(order, ev.CardID)
		}
	}
	assert.Equal(t, []string{"h1", "a1"}, order)
}

func TestBreakdownCreditGoesToOwnersOpponent(t *testing.T) {
	gs := baseState(testRegistry())
	gs.CurrentPhase = PhaseMain2
	putMonster(gs, SeatAway, "a1", "grunt", PositionAttack).ViceCounters = BreakdownThreshold

	events := Decide(gs, SeatHost, Command{Type: CommandAdvancePhase})
	require.NotEmpty(t, events)
	for _, ev := range events {
		if ev.Type == EventBreakdown {
			assert.Equal(t, SeatHost, ev.CreditedTo)
		}
	}
}

func TestViceCountersClampAtZero(t *testing.T) {
	gs := baseState(testRegistry())
	bc := putMonster(gs, SeatHost, "b1", "grunt", PositionAttack)
	bc.ViceCounters = 1

	events := ExecuteAction(gs, EffectAction{Type: ActionRemoveVice, Amount: 5}, SeatHost, "b1", nil)
	require.Len(t, events, 1)
	assert.Equal(t, 0, events[0].Amount)

	next := Apply(gs, events)
	assert.Equal(t, 0, next.Players[SeatHost].Board[0].ViceCounters)
}

func TestViceSweepRunsAfterChainResolution(t *testing.T) {
	gs := baseState(testRegistry())
	putMonster(gs, SeatHost, "b1", "hexer", PositionAttack)
	bc := putMonster(gs, SeatAway, "e1", "grunt", PositionAttack)
	bc.ViceCounters = BreakdownThreshold - 1

	next := play(t, gs, SeatHost, Command{
		Type: CommandActivateIgnition, CardID: "b1", TargetIDs: []string{"e1"},
	})
	next = pass(t, next, SeatAway)
	next = pass(t, next, SeatHost)

	// The third counter triggers the breakdown during resolution, not at
	// the next breakdown_check.
	assert.Empty(t, next.Players[SeatAway].Board)
	assert.Equal(t, 1, next.Players[SeatHost].BreakdownsCaused)
}
