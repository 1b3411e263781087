package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDuelSetup(t *testing.T) {
	reg := testRegistry()
	deck := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		deck = append(deck, "grunt")
	}

	gs, err := NewDuel(DuelConfig{Defs: reg, HostDeck: deck, AwayDeck: deck})
	require.NoError(t, err)

	assert.Equal(t, 1, gs.TurnNumber)
	assert.Equal(t, SeatHost, gs.CurrentTurnPlayer)
	assert.Equal(t, PhaseDraw, gs.CurrentPhase)

	// Opening hands plus the first seat's turn draw.
	assert.Len(t, gs.Players[SeatHost].Hand, InitialHandSize+1)
	assert.Len(t, gs.Players[SeatAway].Hand, InitialHandSize)
	assert.Len(t, gs.Players[SeatHost].Deck, 20-InitialHandSize-1)
	assert.Equal(t, StartingLifePoints, gs.Players[SeatHost].LifePoints)
}

func TestNewDuelSeededShuffleIsDeterministic(t *testing.T) {
	reg := testRegistry()
	var deck []string
	for i := 0; i < 10; i++ {
		deck = append(deck, "grunt", "wall")
	}

	a, err := NewDuel(DuelConfig{Defs: reg, HostDeck: deck, AwayDeck: deck, Seed: 7})
	require.NoError(t, err)
	b, err := NewDuel(DuelConfig{Defs: reg, HostDeck: deck, AwayDeck: deck, Seed: 7})
	require.NoError(t, err)

	assert.Equal(t, a.Players[SeatHost].Deck, b.Players[SeatHost].Deck)
	assert.Equal(t, a.Players[SeatHost].Hand, b.Players[SeatHost].Hand)
}

func TestNewDuelRejectsUnknownCards(t *testing.T) {
	reg := testRegistry()
	_, err := NewDuel(DuelConfig{Defs: reg, HostDeck: []string{"nonsense"}, AwayDeck: nil})
	require.Error(t, err)
}

func TestApplyNeverMutatesInput(t *testing.T) {
	gs := baseState(testRegistry())
	give(gs, SeatHost, "h1", "grunt")
	putMonster(gs, SeatAway, "e1", "wall", PositionAttack)

	before := len(gs.Players[SeatHost].Hand)
	events := Decide(gs, SeatHost, Command{Type: CommandSummon, CardID: "h1"})
	require.NotEmpty(t, events)

	next := Apply(gs, events)
	assert.Len(t, gs.Players[SeatHost].Hand, before)
	assert.Empty(t, gs.Players[SeatHost].Board)
	assert.NotSame(t, gs.Players[SeatHost], next.Players[SeatHost])
}

func TestApplyIsReplayable(t *testing.T) {
	gs := baseState(testRegistry())
	give(gs, SeatHost, "h1", "grunt")

	events := Decide(gs, SeatHost, Command{Type: CommandSummon, CardID: "h1"})
	require.NotEmpty(t, events)

	// Folding the same events from the same snapshot is deterministic.
	a := Apply(gs, events)
	b := Apply(gs, events)
	assert.Equal(t, a.Players[SeatHost].Board, b.Players[SeatHost].Board)
	assert.Equal(t, a.Players[SeatHost].Hand, b.Players[SeatHost].Hand)
}

func TestCloneIndependence(t *testing.T) {
	gs := baseState(testRegistry())
	putMonster(gs, SeatHost, "b1", "grunt", PositionAttack)
	gs.EffectsUsedThisTurn["b1/eff_0"] = true

	cp := gs.Clone()
	cp.Players[SeatHost].Board[0].ViceCounters = 2
	cp.Players[SeatHost].Hand = append(cp.Players[SeatHost].Hand, "x")
	cp.EffectsUsedThisTurn["other"] = true

	assert.Equal(t, 0, gs.Players[SeatHost].Board[0].ViceCounters)
	assert.Empty(t, gs.Players[SeatHost].Hand)
	assert.NotContains(t, gs.EffectsUsedThisTurn, "other")
}

func TestStrayEventsDegradeToNoOps(t *testing.T) {
	gs := baseState(testRegistry())

	// Facts about cards that are not where the event expects must not
	// panic or corrupt the fold.
	next := Apply(gs, []Event{
		{Type: EventCardDrawn, Seat: SeatHost, CardID: "ghost"},
		{Type: EventCardDestroyed, Seat: SeatAway, CardID: "ghost"},
		{Type: EventStatBoosted, CardID: "ghost", Stat: "attack", Amount: 100},
		{Type: EventViceChanged, Seat: SeatHost, CardID: "ghost", Amount: 2},
	})
	assert.Empty(t, next.Players[SeatHost].Hand)
	assert.Empty(t, next.Players[SeatAway].Graveyard)
}
