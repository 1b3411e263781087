package engine

// Summon, set, flip-summon, and position-change decisions. All follow the
// decide contract: illegal commands return an empty event list.

// summonPreconditions covers the checks shared by normal summon and set.
func summonPreconditions(gs *GameState, seat Seat, cmd Command) (*CardDefinition, bool) {
	if len(gs.CurrentChain) > 0 {
		return nil, false
	}
	if seat != gs.CurrentTurnPlayer || !gs.CurrentPhase.IsMainPhase() {
		return nil, false
	}
	p := gs.Players[seat]
	if p.NormalSummonedThisTurn {
		return nil, false
	}
	if !gs.HandContains(seat, cmd.CardID) {
		return nil, false
	}
	def := gs.Definition(cmd.CardID)
	if def == nil || def.Type != CardTypeMonster {
		return nil, false
	}
	return def, true
}

// validTributes checks that the tribute payment is exactly the required
// size and that every tribute is a distinct face-up monster of the seat.
func validTributes(gs *GameState, seat Seat, need int, tributes []string) bool {
	if len(tributes) != need {
		return false
	}
	p := gs.Players[seat]
	seen := map[string]bool{}
	for _, id := range tributes {
		if seen[id] {
			return false
		}
		seen[id] = true
		bc := p.boardCard(id)
		if bc == nil || bc.FaceDown {
			return false
		}
	}
	return true
}

// decideSummon performs a normal summon in face-up attack position.
// Monsters below the tribute threshold need a free board slot; higher
// levels need exactly enough face-up tributes.
func decideSummon(gs *GameState, seat Seat, cmd Command) []Event {
	def, ok := summonPreconditions(gs, seat, cmd)
	if !ok {
		return nil
	}
	p := gs.Players[seat]
	need := TributesRequired(def.Level)
	if need == 0 {
		if len(cmd.TributeIDs) != 0 || len(p.Board) >= MaxBoardSlots {
			return nil
		}
	} else {
		if !validTributes(gs, seat, need, cmd.TributeIDs) {
			return nil
		}
		if len(p.Board)-need >= MaxBoardSlots {
			return nil
		}
	}

	e := newEmitter(gs)
	for _, id := range cmd.TributeIDs {
		e.emit(Event{Type: EventCardTributed, Seat: seat, CardID: id})
	}
	e.emit(Event{Type: EventCardSummoned, Seat: seat, CardID: cmd.CardID, Position: PositionAttack})
	runOnSummonEffects(e, seat, cmd.CardID)
	return e.events
}

// decideSetMonster sets a monster face-down in defense position. Setting
// consumes the normal summon for the turn and pays the same tribute costs
// as a summon.
func decideSetMonster(gs *GameState, seat Seat, cmd Command) []Event {
	def, ok := summonPreconditions(gs, seat, cmd)
	if !ok {
		return nil
	}
	p := gs.Players[seat]
	need := TributesRequired(def.Level)
	if need == 0 {
		if len(cmd.TributeIDs) != 0 || len(p.Board) >= MaxBoardSlots {
			return nil
		}
	} else {
		if !validTributes(gs, seat, need, cmd.TributeIDs) {
			return nil
		}
		if len(p.Board)-need >= MaxBoardSlots {
			return nil
		}
	}

	e := newEmitter(gs)
	for _, id := range cmd.TributeIDs {
		e.emit(Event{Type: EventCardTributed, Seat: seat, CardID: id})
	}
	e.emit(Event{Type: EventCardSet, Seat: seat, CardID: cmd.CardID, Zone: "board"})
	return e.events
}

// decideSetSpellTrap sets a spell or trap face-down. Does not consume the
// normal summon. Field spells go to the field slot, replacing (and
// discarding) any prior field spell.
func decideSetSpellTrap(gs *GameState, seat Seat, cmd Command) []Event {
	if len(gs.CurrentChain) > 0 {
		return nil
	}
	if seat != gs.CurrentTurnPlayer || !gs.CurrentPhase.IsMainPhase() {
		return nil
	}
	if !gs.HandContains(seat, cmd.CardID) {
		return nil
	}
	def := gs.Definition(cmd.CardID)
	if def == nil || (def.Type != CardTypeSpell && def.Type != CardTypeTrap) {
		return nil
	}
	p := gs.Players[seat]

	e := newEmitter(gs)
	if def.Type == CardTypeSpell && def.Spell == SpellField {
		if old := p.FieldSpell; old != nil {
			e.emit(Event{Type: EventCardDestroyed, Seat: seat, CardID: old.InstanceID})
			e.emit(Event{Type: EventCardToGrave, Seat: seat, CardID: old.InstanceID})
		}
		e.emit(Event{Type: EventCardSet, Seat: seat, CardID: cmd.CardID, Zone: "field"})
		return e.events
	}
	if len(p.SpellTraps) >= MaxSpellTrapSlots {
		return nil
	}
	e.emit(Event{Type: EventCardSet, Seat: seat, CardID: cmd.CardID, Zone: "spell_trap"})
	return e.events
}

// decideFlipSummon flips a face-down monster to face-up attack position.
// Only legal for cards set on an earlier turn.
func decideFlipSummon(gs *GameState, seat Seat, cmd Command) []Event {
	if len(gs.CurrentChain) > 0 {
		return nil
	}
	if seat != gs.CurrentTurnPlayer || !gs.CurrentPhase.IsMainPhase() {
		return nil
	}
	bc := gs.Players[seat].boardCard(cmd.CardID)
	if bc == nil || !bc.FaceDown || bc.TurnSummoned >= gs.TurnNumber {
		return nil
	}

	e := newEmitter(gs)
	e.emit(Event{Type: EventCardFlipped, Seat: seat, CardID: cmd.CardID})
	runOnSummonEffects(e, seat, cmd.CardID)
	return e.events
}

// decideChangePosition toggles a face-up monster between attack and
// defense. Once per turn; not on the turn it arrived, and not after it
// attacked.
func decideChangePosition(gs *GameState, seat Seat, cmd Command) []Event {
	if len(gs.CurrentChain) > 0 {
		return nil
	}
	if seat != gs.CurrentTurnPlayer || !gs.CurrentPhase.IsMainPhase() {
		return nil
	}
	bc := gs.Players[seat].boardCard(cmd.CardID)
	if bc == nil || bc.FaceDown {
		return nil
	}
	if bc.TurnSummoned >= gs.TurnNumber || bc.ChangedPositionThisTurn || bc.HasAttackedThisTurn {
		return nil
	}

	pos := PositionDefense
	if bc.Position == PositionDefense {
		pos = PositionAttack
	}
	e := newEmitter(gs)
	e.emit(Event{Type: EventPositionChange, Seat: seat, CardID: cmd.CardID, Position: pos})
	return e.events
}
