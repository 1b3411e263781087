package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// testRegistry builds the card pool the engine tests run against: vanilla
// monsters at each tribute tier plus a handful of effect cards covering
// the interpreter's action variants.
func testRegistry() Registry {
	return Registry{
		"grunt": {ID: "grunt", Name: "Grunt", Type: CardTypeMonster, Level: 4, Attack: 1700, Defense: 1100},
		"wall":  {ID: "wall", Name: "Wall", Type: CardTypeMonster, Level: 4, Attack: 1200, Defense: 1800},
		"titan": {ID: "titan", Name: "Titan", Type: CardTypeMonster, Level: 5, Attack: 2300, Defense: 1500},
		"colossus": {ID: "colossus", Name: "Colossus", Type: CardTypeMonster,
			Level: 7, Attack: 2900, Defense: 2200},
		"scout": {ID: "scout", Name: "Scout", Type: CardTypeMonster, Level: 2, Attack: 800, Defense: 700,
			Effects: []EffectDefinition{{
				ID: "eff_0", Type: EffectOnSummon, OncePerTurn: true,
				Actions: []EffectAction{{Type: ActionDraw, Count: 1}},
			}}},
		"hexer": {ID: "hexer", Name: "Hexer", Type: CardTypeMonster, Level: 4, Attack: 1600, Defense: 900,
			Effects: []EffectDefinition{{
				ID: "eff_0", Type: EffectIgnition, OncePerTurn: true,
				Filter:      &TargetFilter{Owner: "opponent", CardType: CardTypeMonster},
				TargetCount: 1,
				Actions:     []EffectAction{{Type: ActionAddVice, Amount: 1}},
			}}},
		"draw2": {ID: "draw2", Name: "Draw Two", Type: CardTypeSpell, Spell: SpellNormal,
			Effects: []EffectDefinition{{
				ID: "eff_0", Type: EffectTrigger,
				Actions: []EffectAction{{Type: ActionDraw, Count: 2}},
			}}},
		"pump": {ID: "pump", Name: "Pump", Type: CardTypeSpell, Spell: SpellQuickPlay,
			Effects: []EffectDefinition{{
				ID: "eff_0", Type: EffectQuick,
				Filter:      &TargetFilter{Owner: "self", CardType: CardTypeMonster},
				TargetCount: 1,
				Actions:     []EffectAction{{Type: ActionBoostAttack, Amount: 500, Duration: "turn"}},
			}}},
		"veto": {ID: "veto", Name: "Veto", Type: CardTypeTrap,
			Effects: []EffectDefinition{{
				ID: "eff_0", Type: EffectQuick,
				Actions: []EffectAction{{Type: ActionNegate, Target: TargetLastChainLink}},
			}}},
		"nuke": {ID: "nuke", Name: "Nuke", Type: CardTypeSpell, Spell: SpellNormal,
			Effects: []EffectDefinition{{
				ID: "eff_0", Type: EffectTrigger,
				Actions: []EffectAction{{Type: ActionDestroy, Target: TargetAllOpponentMonsters}},
			}}},
		"dome": {ID: "dome", Name: "Dome", Type: CardTypeSpell, Spell: SpellField,
			Effects: []EffectDefinition{{
				ID: "eff_0", Type: EffectContinuous,
				Actions: []EffectAction{{Type: ActionBoostDefense, Amount: 400}},
			}}},
	}
}

// baseState builds an empty mid-duel snapshot: turn 2, main phase, the
// host as turn player, no cards anywhere.
func baseState(reg Registry) *GameState {
	return &GameState{
		Players: map[Seat]*PlayerState{
			SeatHost: {LifePoints: StartingLifePoints},
			SeatAway: {LifePoints: StartingLifePoints},
		},
		TurnNumber:          2,
		CurrentTurnPlayer:   SeatHost,
		CurrentPhase:        PhaseMain,
		EffectsUsedThisTurn: map[string]bool{},
		EffectsUsedThisDuel: map[string]bool{},
		Cards:               map[string]string{},
		Defs:                reg,
	}
}

// give registers an instance id for a definition and puts it in a hand.
func give(gs *GameState, seat Seat, instanceID, defID string) {
	gs.Cards[instanceID] = defID
	p := gs.Players[seat]
	p.Hand = append(p.Hand, instanceID)
}

// stock registers instance ids for a definition and appends them to the
// seat's deck.
func stock(gs *GameState, seat Seat, defID string, n int) {
	p := gs.Players[seat]
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("%s-deck-%s-%d", seat, defID, len(p.Deck))
		gs.Cards[id] = defID
		p.Deck = append(p.Deck, id)
	}
}

// putMonster places a monster directly on a seat's board, summoned on a
// previous turn so it may attack and change position.
func putMonster(gs *GameState, seat Seat, instanceID, defID string, pos Position) *BoardCard {
	gs.Cards[instanceID] = defID
	bc := &BoardCard{
		InstanceID:   instanceID,
		DefinitionID: defID,
		Position:     pos,
		CanAttack:    true,
		TurnSummoned: gs.TurnNumber - 1,
	}
	gs.Players[seat].Board = append(gs.Players[seat].Board, bc)
	return bc
}

// putFaceDown places a face-down defense monster set on a previous turn.
func putFaceDown(gs *GameState, seat Seat, instanceID, defID string) *BoardCard {
	bc := putMonster(gs, seat, instanceID, defID, PositionDefense)
	bc.FaceDown = true
	bc.CanAttack = false
	return bc
}

// putSet places a face-down spell or trap set on a previous turn.
func putSet(gs *GameState, seat Seat, instanceID, defID string) *SpellTrapCard {
	gs.Cards[instanceID] = defID
	st := &SpellTrapCard{
		InstanceID:   instanceID,
		DefinitionID: defID,
		FaceDown:     true,
		TurnSet:      gs.TurnNumber - 1,
	}
	gs.Players[seat].SpellTraps = append(gs.Players[seat].SpellTraps, st)
	return st
}

// play decides a command that must be legal and folds its events.
func play(t *testing.T, gs *GameState, seat Seat, cmd Command) *GameState {
	t.Helper()
	events := Decide(gs, seat, cmd)
	require.NotEmpty(t, events, "expected %s to be legal for %s", cmd, seat)
	return Apply(gs, events)
}

// refuse asserts a command decides to nothing.
func refuse(t *testing.T, gs *GameState, seat Seat, cmd Command) {
	t.Helper()
	require.Empty(t, Decide(gs, seat, cmd), "expected %s to be illegal for %s", cmd, seat)
}

// eventTypes projects a batch of events to their types.
func eventTypes(events []Event) []EventType {
	out := make([]EventType, len(events))
	for i, ev := range events {
		out[i] = ev.Type
	}
	return out
}

// countType counts events of one type in a batch.
func countType(events []Event, t EventType) int {
	n := 0
	for _, ev := range events {
		if ev.Type == t {
			n++
		}
	}
	return n
}
