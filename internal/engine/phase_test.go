package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseCycle(t *testing.T) {
	gs := baseState(testRegistry())
	gs.CurrentPhase = PhaseDraw
	stock(gs, SeatAway, "grunt", 1)

	want := []Phase{PhaseStandby, PhaseMain, PhaseCombat, PhaseMain2, PhaseBreakdownCheck, PhaseEnd}
	for _, phase := range want {
		gs = play(t, gs, SeatHost, Command{Type: CommandAdvancePhase})
		assert.Equal(t, phase, gs.CurrentPhase)
	}

	// Advancing out of the end phase flips the turn and draws.
	gs = play(t, gs, SeatHost, Command{Type: CommandAdvancePhase})
	assert.Equal(t, SeatAway, gs.CurrentTurnPlayer)
	assert.Equal(t, 3, gs.TurnNumber)
	assert.Equal(t, PhaseDraw, gs.CurrentPhase)
	assert.Len(t, gs.Players[SeatAway].Hand, 1)
	assert.Empty(t, gs.Players[SeatAway].Deck)
}

func TestEndTurnShortcutsFromMain2(t *testing.T) {
	gs := baseState(testRegistry())
	gs.CurrentPhase = PhaseMain2
	stock(gs, SeatAway, "grunt", 1)

	events := Decide(gs, SeatHost, Command{Type: CommandEndTurn})
	require.NotEmpty(t, events)
	assert.Equal(t, []EventType{
		EventPhaseChanged, // breakdown_check
		EventPhaseChanged, // end
		EventTurnEnded,
		EventTurnStarted,
		EventPhaseChanged, // draw
		EventCardDrawn,
	}, eventTypes(events))

	next := Apply(gs, events)
	assert.Equal(t, SeatAway, next.CurrentTurnPlayer)
	assert.Equal(t, PhaseDraw, next.CurrentPhase)
}

func TestEndTurnOnlyFromMain2(t *testing.T) {
	gs := baseState(testRegistry())
	refuse(t, gs, SeatHost, Command{Type: CommandEndTurn})
	refuse(t, gs, SeatAway, Command{Type: CommandEndTurn})
}

func TestDeckOutLoss(t *testing.T) {
	gs := baseState(testRegistry())
	gs.CurrentPhase = PhaseMain2
	// The away seat has no deck left to draw from.

	events := Decide(gs, SeatHost, Command{Type: CommandEndTurn})
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, EventGameEnded, last.Type)
	assert.Equal(t, SeatHost, last.Winner)
	assert.Equal(t, WinReasonDeckOut, last.Reason)

	next := Apply(gs, events)
	assert.True(t, next.GameOver)
}

func TestTurnFlipResetsPerTurnFlags(t *testing.T) {
	gs := baseState(testRegistry())
	gs.CurrentPhase = PhaseMain2
	gs.Players[SeatHost].NormalSummonedThisTurn = true
	bc := putMonster(gs, SeatHost, "b1", "grunt", PositionAttack)
	bc.HasAttackedThisTurn = true
	bc.ChangedPositionThisTurn = true
	gs.EffectsUsedThisTurn["b1/eff_0"] = true
	stock(gs, SeatAway, "grunt", 1)

	next := play(t, gs, SeatHost, Command{Type: CommandEndTurn})

	p := next.Players[SeatHost]
	assert.False(t, p.NormalSummonedThisTurn)
	assert.False(t, p.Board[0].HasAttackedThisTurn)
	assert.False(t, p.Board[0].ChangedPositionThisTurn)
	assert.Empty(t, next.EffectsUsedThisTurn)
}

func TestSurrender(t *testing.T) {
	gs := baseState(testRegistry())

	next := play(t, gs, SeatAway, Command{Type: CommandSurrender})
	assert.True(t, next.GameOver)
	assert.Equal(t, SeatHost, next.Winner)
	assert.Equal(t, WinReasonSurrender, next.WinReason)
}

func TestOpponentCannotAdvancePhase(t *testing.T) {
	gs := baseState(testRegistry())
	refuse(t, gs, SeatAway, Command{Type: CommandAdvancePhase})
}

func TestNoCommandsAfterGameOver(t *testing.T) {
	gs := baseState(testRegistry())
	gs.GameOver = true
	gs.Winner = SeatHost

	refuse(t, gs, SeatHost, Command{Type: CommandAdvancePhase})
	refuse(t, gs, SeatAway, Command{Type: CommandSurrender})
}
