package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pass(t *testing.T, gs *GameState, seat Seat) *GameState {
	t.Helper()
	return play(t, gs, seat, Command{Type: CommandChainResponse, Pass: true})
}

func TestSpellActivationOpensChain(t *testing.T) {
	gs := baseState(testRegistry())
	give(gs, SeatHost, "h1", "draw2")
	stock(gs, SeatHost, "grunt", 3)

	next := play(t, gs, SeatHost, Command{Type: CommandActivateSpell, CardID: "h1"})

	require.Len(t, next.CurrentChain, 1)
	assert.Equal(t, SeatAway, next.CurrentPriorityPlayer)
	assert.Equal(t, PhaseMain, next.PhaseBeforeChain)
	// The spell sits face-up in the zone while the chain is open.
	require.Len(t, next.Players[SeatHost].SpellTraps, 1)
	assert.True(t, next.Players[SeatHost].SpellTraps[0].Activated)
}

func TestChainBlocksOtherCommands(t *testing.T) {
	gs := baseState(testRegistry())
	give(gs, SeatHost, "h1", "draw2")
	give(gs, SeatHost, "h2", "grunt")
	stock(gs, SeatHost, "grunt", 3)

	next := play(t, gs, SeatHost, Command{Type: CommandActivateSpell, CardID: "h1"})

	refuse(t, next, SeatHost, Command{Type: CommandSummon, CardID: "h2"})
	refuse(t, next, SeatHost, Command{Type: CommandAdvancePhase})
	// Only the priority seat may respond.
	refuse(t, next, SeatHost, Command{Type: CommandChainResponse, Pass: true})
}

func TestDoublePassResolvesLink(t *testing.T) {
	gs := baseState(testRegistry())
	give(gs, SeatHost, "h1", "draw2")
	stock(gs, SeatHost, "grunt", 3)

	next := play(t, gs, SeatHost, Command{Type: CommandActivateSpell, CardID: "h1"})
	next = pass(t, next, SeatAway)

	// One pass does nothing yet.
	require.Len(t, next.CurrentChain, 1)
	assert.Equal(t, SeatHost, next.CurrentPriorityPlayer)

	next = pass(t, next, SeatHost)

	assert.Empty(t, next.CurrentChain)
	assert.Equal(t, PhaseMain, next.CurrentPhase)
	assert.Len(t, next.Players[SeatHost].Hand, 2)
	assert.Contains(t, next.Players[SeatHost].Graveyard, "h1")
	assert.Empty(t, next.Players[SeatHost].SpellTraps)
}

func TestNegatedLinkResolvesAsNoOp(t *testing.T) {
	gs := baseState(testRegistry())
	give(gs, SeatHost, "h1", "draw2")
	stock(gs, SeatHost, "grunt", 3)
	putSet(gs, SeatAway, "t1", "veto")

	next := play(t, gs, SeatHost, Command{Type: CommandActivateSpell, CardID: "h1"})
	// The away seat chains its set counter trap.
	next = play(t, next, SeatAway, Command{Type: CommandChainResponse, CardID: "t1"})
	require.Len(t, next.CurrentChain, 2)
	assert.Equal(t, SeatHost, next.CurrentPriorityPlayer)

	// Double pass resolves only the trap; it marks the link below.
	next = pass(t, next, SeatHost)
	next = pass(t, next, SeatAway)
	require.Len(t, next.CurrentChain, 1)
	assert.True(t, next.CurrentChain[0].Negated)
	assert.Contains(t, next.Players[SeatAway].Graveyard, "t1")

	// Double pass again: the negated spell resolves without drawing.
	next = pass(t, next, SeatAway)
	next = pass(t, next, SeatHost)

	assert.Empty(t, next.CurrentChain)
	assert.Empty(t, next.Players[SeatHost].Hand)
	assert.Contains(t, next.Players[SeatHost].Graveyard, "h1")
	assert.Equal(t, PhaseMain, next.CurrentPhase)
}

func TestSetTrapNotActivatableOnSetTurn(t *testing.T) {
	gs := baseState(testRegistry())
	st := putSet(gs, SeatHost, "t1", "veto")
	st.TurnSet = gs.TurnNumber

	refuse(t, gs, SeatHost, Command{Type: CommandActivateSet, CardID: "t1"})
}

func TestSetTrapNotActivatableOffTurn(t *testing.T) {
	gs := baseState(testRegistry())
	putSet(gs, SeatAway, "t1", "veto")

	// Outside a chain the off-turn seat cannot flip its set trap; it only
	// reaches it through a chain response.
	refuse(t, gs, SeatAway, Command{Type: CommandActivateSet, CardID: "t1"})

	moves := LegalMoves(gs, SeatAway)
	require.Len(t, moves, 1)
	assert.Equal(t, CommandSurrender, moves[0].Type)
}

func TestUntargetedEffectRejectsExplicitTargets(t *testing.T) {
	gs := baseState(testRegistry())
	give(gs, SeatHost, "h1", "draw2")
	stock(gs, SeatHost, "grunt", 3)
	putMonster(gs, SeatHost, "b1", "grunt", PositionAttack)
	putSet(gs, SeatHost, "t1", "veto")

	refuse(t, gs, SeatHost, Command{
		Type: CommandActivateSpell, CardID: "h1", TargetIDs: []string{"b1"},
	})
	refuse(t, gs, SeatHost, Command{
		Type: CommandActivateSet, CardID: "t1", TargetIDs: []string{"b1"},
	})
	// The variant without targets stays legal.
	play(t, gs, SeatHost, Command{Type: CommandActivateSpell, CardID: "h1"})
}

func TestQuickPlayBoostExpiresAtTurnEnd(t *testing.T) {
	gs := baseState(testRegistry())
	give(gs, SeatHost, "h1", "pump")
	putMonster(gs, SeatHost, "b1", "grunt", PositionAttack)
	stock(gs, SeatAway, "grunt", 2)

	next := play(t, gs, SeatHost, Command{
		Type: CommandActivateSpell, CardID: "h1", TargetIDs: []string{"b1"},
	})
	next = pass(t, next, SeatAway)
	next = pass(t, next, SeatHost)

	bc := next.Players[SeatHost].Board[0]
	assert.Equal(t, 2200, next.EffectATK(bc))

	// The boost is gone after the turn flips.
	next = play(t, next, SeatHost, Command{Type: CommandAdvancePhase}) // combat
	next = play(t, next, SeatHost, Command{Type: CommandAdvancePhase}) // main2
	next = play(t, next, SeatHost, Command{Type: CommandEndTurn})

	require.Equal(t, SeatAway, next.CurrentTurnPlayer)
	bc = next.Players[SeatHost].Board[0]
	assert.Equal(t, 1700, next.EffectATK(bc))
}

func TestIgnitionOncePerTurn(t *testing.T) {
	gs := baseState(testRegistry())
	putMonster(gs, SeatHost, "b1", "hexer", PositionAttack)
	putMonster(gs, SeatAway, "e1", "grunt", PositionAttack)

	next := play(t, gs, SeatHost, Command{
		Type: CommandActivateIgnition, CardID: "b1", TargetIDs: []string{"e1"},
	})
	next = pass(t, next, SeatAway)
	next = pass(t, next, SeatHost)

	assert.Equal(t, 1, next.Players[SeatAway].Board[0].ViceCounters)

	refuse(t, next, SeatHost, Command{
		Type: CommandActivateIgnition, CardID: "b1", TargetIDs: []string{"e1"},
	})
}

func TestIgnitionTargetMustMatchFilter(t *testing.T) {
	gs := baseState(testRegistry())
	putMonster(gs, SeatHost, "b1", "hexer", PositionAttack)
	putMonster(gs, SeatHost, "b2", "grunt", PositionAttack)
	putFaceDown(gs, SeatAway, "e1", "grunt")

	// Own monster fails the opponent filter; face-down cards are
	// unselectable.
	refuse(t, gs, SeatHost, Command{
		Type: CommandActivateIgnition, CardID: "b1", TargetIDs: []string{"b2"},
	})
	refuse(t, gs, SeatHost, Command{
		Type: CommandActivateIgnition, CardID: "b1", TargetIDs: []string{"e1"},
	})
}

func TestMassRemovalSpell(t *testing.T) {
	gs := baseState(testRegistry())
	give(gs, SeatHost, "h1", "nuke")
	putMonster(gs, SeatAway, "e1", "grunt", PositionAttack)
	putFaceDown(gs, SeatAway, "e2", "wall")
	putMonster(gs, SeatHost, "b1", "grunt", PositionAttack)

	next := play(t, gs, SeatHost, Command{Type: CommandActivateSpell, CardID: "h1"})
	next = pass(t, next, SeatAway)
	next = pass(t, next, SeatHost)

	assert.Empty(t, next.Players[SeatAway].Board)
	assert.ElementsMatch(t, []string{"e1", "e2"}, next.Players[SeatAway].Graveyard)
	// The activator's own board is untouched.
	assert.Len(t, next.Players[SeatHost].Board, 1)
}

func TestChainResponseOnlyFromPrioritySeat(t *testing.T) {
	gs := baseState(testRegistry())
	give(gs, SeatHost, "h1", "draw2")
	stock(gs, SeatHost, "grunt", 3)
	putSet(gs, SeatHost, "t1", "veto")

	next := play(t, gs, SeatHost, Command{Type: CommandActivateSpell, CardID: "h1"})

	// Priority is with the away seat; the host cannot chain its own trap
	// until priority returns.
	refuse(t, next, SeatHost, Command{Type: CommandChainResponse, CardID: "t1"})

	next = pass(t, next, SeatAway)
	next = play(t, next, SeatHost, Command{Type: CommandChainResponse, CardID: "t1"})
	assert.Len(t, next.CurrentChain, 2)
}
