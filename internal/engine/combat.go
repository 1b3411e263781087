package engine

// Combat decisions. Damage calculation follows the classic table: attack
// against attack destroys the weaker side and deals the difference; attack
// against defense never damages the defender's controller, but an
// under-powered attacker takes the difference itself.

// attackEligible reports whether a board card may declare an attack this
// turn.
func attackEligible(gs *GameState, seat Seat, bc *BoardCard) bool {
	if bc.FaceDown || bc.Position != PositionAttack {
		return false
	}
	if !bc.CanAttack || bc.HasAttackedThisTurn {
		return false
	}
	for _, r := range gs.TurnRestrictions {
		if r.Seat == seat && r.Kind == "no_attack" {
			return false
		}
	}
	return true
}

// decideDeclareAttack validates and executes an attack declaration. An
// empty target id declares a direct attack, legal only when the opponent
// controls no face-up monsters. No attacks on the very first turn.
func decideDeclareAttack(gs *GameState, seat Seat, cmd Command) []Event {
	if len(gs.CurrentChain) > 0 {
		return nil
	}
	if seat != gs.CurrentTurnPlayer || gs.CurrentPhase != PhaseCombat {
		return nil
	}
	if gs.TurnNumber <= 1 {
		return nil
	}
	attacker := gs.Players[seat].boardCard(cmd.CardID)
	if attacker == nil || !attackEligible(gs, seat, attacker) {
		return nil
	}

	opp := seat.Opponent()
	defenders := gs.Players[opp].FaceUpMonsters()

	if cmd.TargetID == "" {
		// Direct attack: only with no face-up opposition.
		if len(defenders) > 0 {
			return nil
		}
		e := newEmitter(gs)
		e.emit(Event{Type: EventAttackDeclared, Seat: seat, CardID: cmd.CardID})
		e.emit(Event{Type: EventDamageDealt, Seat: opp, Amount: gs.EffectATK(attacker)})
		e.checkLife()
		return e.events
	}

	var target *BoardCard
	for _, bc := range defenders {
		if bc.InstanceID == cmd.TargetID {
			target = bc
			break
		}
	}
	if target == nil {
		return nil
	}

	e := newEmitter(gs)
	e.emit(Event{Type: EventAttackDeclared, Seat: seat, CardID: cmd.CardID, TargetID: cmd.TargetID})
	resolveBattle(e, seat, attacker, opp, target)
	e.checkLife()
	return e.events
}

// resolveBattle emits the damage-calculation outcome for one attack.
func resolveBattle(e *emitter, seat Seat, attacker *BoardCard, opp Seat, target *BoardCard) {
	gs := e.gs
	atk := gs.EffectATK(attacker)

	if target.Position == PositionAttack {
		def := gs.EffectATK(target)
		switch {
		case atk > def:
			e.emit(Event{Type: EventCardDestroyed, Seat: opp, CardID: target.InstanceID})
			e.emit(Event{Type: EventCardToGrave, Seat: opp, CardID: target.InstanceID})
			e.emit(Event{Type: EventDamageDealt, Seat: opp, Amount: atk - def})
		case def > atk:
			e.emit(Event{Type: EventCardDestroyed, Seat: seat, CardID: attacker.InstanceID})
			e.emit(Event{Type: EventCardToGrave, Seat: seat, CardID: attacker.InstanceID})
			e.emit(Event{Type: EventDamageDealt, Seat: seat, Amount: def - atk})
		default:
			// Mutual destruction, no damage.
			e.emit(Event{Type: EventCardDestroyed, Seat: opp, CardID: target.InstanceID})
			e.emit(Event{Type: EventCardToGrave, Seat: opp, CardID: target.InstanceID})
			e.emit(Event{Type: EventCardDestroyed, Seat: seat, CardID: attacker.InstanceID})
			e.emit(Event{Type: EventCardToGrave, Seat: seat, CardID: attacker.InstanceID})
		}
		return
	}

	def := gs.EffectDEF(target)
	switch {
	case atk > def:
		e.emit(Event{Type: EventCardDestroyed, Seat: opp, CardID: target.InstanceID})
		e.emit(Event{Type: EventCardToGrave, Seat: opp, CardID: target.InstanceID})
	case def > atk:
		e.emit(Event{Type: EventDamageDealt, Seat: seat, Amount: def - atk})
	}
	// Equal values against defense: nothing happens.
}
