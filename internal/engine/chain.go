package engine

// Chain & priority resolution. Activating a spell, trap, ignition effect,
// or quick effect opens or extends the chain; while a chain is open only
// the priority seat may act, and only by responding or passing. Two passes
// in succession resolve the top link (strict LIFO).

// decideActivateSpell activates a spell from the hand, opening a chain.
// Quick-play spells follow the same hand-activation rule as other spells:
// own main phase only, never during combat, never mid-chain.
func decideActivateSpell(gs *GameState, seat Seat, cmd Command) []Event {
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
	if def == nil || def.Type != CardTypeSpell {
		return nil
	}
	p := gs.Players[seat]
	if def.Spell != SpellField && len(p.SpellTraps) >= MaxSpellTrapSlots {
		return nil
	}
	eff := def.EffectAt(cmd.EffectIndex)
	if eff == nil || !effectUsable(gs, cmd.CardID, eff) {
		return nil
	}
	if !targetsValid(gs, seat, eff, cmd.TargetIDs) {
		return nil
	}

	e := newEmitter(gs)
	if def.Spell == SpellField && p.FieldSpell != nil {
		old := p.FieldSpell.InstanceID
		e.emit(Event{Type: EventCardDestroyed, Seat: seat, CardID: old})
		e.emit(Event{Type: EventCardToGrave, Seat: seat, CardID: old})
	}
	e.emit(Event{Type: EventSpellActivated, Seat: seat, CardID: cmd.CardID})
	markEffectUsed(e, seat, cmd.CardID, eff)
	addChainLink(e, seat, cmd.CardID, eff, cmd.TargetIDs, "hand")
	return e.events
}

// decideActivateSet activates a set trap or set quick-play spell, opening a
// chain. Set cards cannot be activated the turn they were set. Outside a
// chain this is a turn-player action; the off-turn seat only reaches its
// set cards through chain responses.
func decideActivateSet(gs *GameState, seat Seat, cmd Command) []Event {
	if len(gs.CurrentChain) > 0 {
		return nil
	}
	if seat != gs.CurrentTurnPlayer {
		return nil
	}
	switch gs.CurrentPhase {
	case PhaseMain, PhaseMain2, PhaseCombat:
	default:
		return nil
	}
	st, owner := gs.FindSpellTrap(cmd.CardID)
	if st == nil || owner != seat || !st.FaceDown || st.TurnSet >= gs.TurnNumber {
		return nil
	}
	def := gs.Definition(cmd.CardID)
	if def == nil {
		return nil
	}
	if def.Type != CardTypeTrap && !(def.Type == CardTypeSpell && def.Spell == SpellQuickPlay) {
		return nil
	}
	eff := def.EffectAt(cmd.EffectIndex)
	if eff == nil || !effectUsable(gs, cmd.CardID, eff) {
		return nil
	}
	if !targetsValid(gs, seat, eff, cmd.TargetIDs) {
		return nil
	}

	e := newEmitter(gs)
	e.emit(Event{Type: EventSpellActivated, Seat: seat, CardID: cmd.CardID})
	markEffectUsed(e, seat, cmd.CardID, eff)
	addChainLink(e, seat, cmd.CardID, eff, cmd.TargetIDs, "set")
	return e.events
}

// decideActivateIgnition activates an ignition effect of a face-up board
// monster during the controller's own main phase, opening a chain.
func decideActivateIgnition(gs *GameState, seat Seat, cmd Command) []Event {
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
	def := gs.Definition(cmd.CardID)
	if def == nil {
		return nil
	}
	eff := def.EffectAt(cmd.EffectIndex)
	if eff == nil || eff.Type != EffectIgnition || !effectUsable(gs, cmd.CardID, eff) {
		return nil
	}
	if !targetsValid(gs, seat, eff, cmd.TargetIDs) {
		return nil
	}

	e := newEmitter(gs)
	markEffectUsed(e, seat, cmd.CardID, eff)
	addChainLink(e, seat, cmd.CardID, eff, cmd.TargetIDs, "board")
	return e.events
}

// decideChainResponse handles priority while a chain is open: either pass,
// or add a faster-or-equal-speed response (set traps, set quick-plays, and
// board quick effects; hand quick-plays are not insertable mid-chain).
func decideChainResponse(gs *GameState, seat Seat, cmd Command) []Event {
	if len(gs.CurrentChain) == 0 || seat != gs.CurrentPriorityPlayer {
		return nil
	}

	if cmd.Pass {
		secondPass := gs.CurrentChainPasser != "" && gs.CurrentChainPasser == seat.Opponent()
		e := newEmitter(gs)
		e.emit(Event{Type: EventChainPassed, Passer: seat})
		if secondPass {
			resolveTopLink(e)
		}
		return e.events
	}

	def := gs.Definition(cmd.CardID)
	if def == nil {
		return nil
	}
	eff := def.EffectAt(cmd.EffectIndex)
	if eff == nil || !effectUsable(gs, cmd.CardID, eff) {
		return nil
	}
	if !targetsValid(gs, seat, eff, cmd.TargetIDs) {
		return nil
	}

	// Set trap or set quick-play spell.
	if st, owner := gs.FindSpellTrap(cmd.CardID); st != nil {
		if owner != seat || !st.FaceDown || st.TurnSet >= gs.TurnNumber {
			return nil
		}
		if def.Type != CardTypeTrap && !(def.Type == CardTypeSpell && def.Spell == SpellQuickPlay) {
			return nil
		}
		e := newEmitter(gs)
		e.emit(Event{Type: EventSpellActivated, Seat: seat, CardID: cmd.CardID})
		markEffectUsed(e, seat, cmd.CardID, eff)
		addChainLink(e, seat, cmd.CardID, eff, cmd.TargetIDs, "set")
		return e.events
	}

	// Quick effect of a face-up board monster.
	if bc := gs.Players[seat].boardCard(cmd.CardID); bc != nil && !bc.FaceDown && eff.Type == EffectQuick {
		e := newEmitter(gs)
		markEffectUsed(e, seat, cmd.CardID, eff)
		addChainLink(e, seat, cmd.CardID, eff, cmd.TargetIDs, "board")
		return e.events
	}

	return nil
}

// addChainLink appends the next link; priority flips to the opponent via
// the fold.
func addChainLink(e *emitter, seat Seat, cardID string, eff *EffectDefinition, targets []string, zone string) {
	e.emit(Event{
		Type:      EventChainLinkAdded,
		Seat:      seat,
		CardID:    cardID,
		EffectID:  eff.ID,
		CardIDs:   targets,
		LinkIndex: len(e.gs.CurrentChain) + 1,
		Zone:      zone,
	})
}

// resolveTopLink pops and resolves the most recent link. Negated links
// resolve as no-ops but still appear in the event history. When the chain
// empties, control returns to the phase active before it opened.
func resolveTopLink(e *emitter) {
	chain := e.gs.CurrentChain
	if len(chain) == 0 {
		return
	}
	link := chain[len(chain)-1]
	negated := link.Negated
	seat := link.Seat
	cardID := link.CardID
	effectID := link.EffectID
	targets := append([]string(nil), link.TargetIDs...)

	e.emit(Event{Type: EventChainResolved, Seat: seat, CardID: cardID, LinkIndex: link.Index})

	if !negated && !e.gs.GameOver {
		def := e.gs.Definition(cardID)
		if eff := findEffectByID(def, effectID); eff != nil {
			for _, action := range eff.Actions {
				execAction(e, action, seat, cardID, targets)
				if e.gs.GameOver {
					break
				}
			}
		}
		sweepBreakdowns(e)
	}

	cleanupAfterResolution(e, cardID)

	if len(e.gs.CurrentChain) == 0 {
		e.emit(Event{Type: EventChainEnded})
	}
}

// cleanupAfterResolution sends a resolved normal spell or non-continuous
// trap from the spell/trap zone to its owner's graveyard. Continuous and
// field cards stay put; cards that already left the zone are untouched.
func cleanupAfterResolution(e *emitter, cardID string) {
	st, owner := e.gs.FindSpellTrap(cardID)
	if st == nil || !st.Activated || st.FieldSpell {
		return
	}
	def := e.gs.Definition(cardID)
	if def == nil {
		return
	}
	switch def.Type {
	case CardTypeSpell:
		if def.Spell == SpellContinuous || def.Spell == SpellField {
			return
		}
	case CardTypeTrap:
		// No continuous trap subtype in the current card pool.
	default:
		return
	}
	e.emit(Event{Type: EventCardToGrave, Seat: owner, CardID: cardID})
}

// runOnSummonEffects executes a freshly summoned card's on_summon effects
// (auto-resolved, respecting once-per-turn limits).
func runOnSummonEffects(e *emitter, seat Seat, cardID string) {
	def := e.gs.Definition(cardID)
	if def == nil {
		return
	}
	for i := range def.Effects {
		eff := &def.Effects[i]
		if eff.Type != EffectOnSummon || !effectUsable(e.gs, cardID, eff) {
			continue
		}
		markEffectUsed(e, seat, cardID, eff)
		for _, action := range eff.Actions {
			execAction(e, action, seat, cardID, nil)
			if e.gs.GameOver {
				return
			}
		}
	}
	sweepBreakdowns(e)
}

// --- Effect usability and targeting ---

// effectUsable enforces per-turn and per-duel usage limits.
func effectUsable(gs *GameState, instanceID string, eff *EffectDefinition) bool {
	key := effectKey(instanceID, eff.ID)
	if eff.OncePerTurn && gs.EffectsUsedThisTurn[key] {
		return false
	}
	if eff.OncePerDuel && gs.EffectsUsedThisDuel[key] {
		return false
	}
	return true
}

func markEffectUsed(e *emitter, seat Seat, instanceID string, eff *EffectDefinition) {
	e.emit(Event{Type: EventEffectUsed, Seat: seat, CardID: instanceID, EffectID: eff.ID})
}

// targetsValid checks explicit targets against the effect's filter.
// Untargeted effects require an empty selection, so every accepted command
// variant is one the enumerator offers.
func targetsValid(gs *GameState, seat Seat, eff *EffectDefinition, targetIDs []string) bool {
	if eff.TargetCount <= 0 {
		return len(targetIDs) == 0
	}
	if len(targetIDs) != eff.TargetCount {
		return false
	}
	seen := map[string]bool{}
	for _, id := range targetIDs {
		if seen[id] || !matchesFilter(gs, seat, eff.Filter, id) {
			return false
		}
		seen[id] = true
	}
	return true
}

// matchesFilter checks one candidate against a target filter. Face-down
// cards cannot be selected.
func matchesFilter(gs *GameState, seat Seat, f *TargetFilter, instanceID string) bool {
	def := gs.Definition(instanceID)
	if def == nil {
		return false
	}

	var owner Seat
	var zone string
	if bc, s := gs.FindBoardCard(instanceID); bc != nil {
		if bc.FaceDown {
			return false
		}
		owner, zone = s, "board"
	} else if st, s := gs.FindSpellTrap(instanceID); st != nil {
		if st.FaceDown {
			return false
		}
		owner, zone = s, "spell_trap"
	} else {
		return false
	}

	if f == nil {
		return true
	}
	switch f.Owner {
	case "self":
		if owner != seat {
			return false
		}
	case "opponent":
		if owner != seat.Opponent() {
			return false
		}
	}
	if f.Zone != "" && f.Zone != zone {
		return false
	}
	if f.CardType != "" && f.CardType != def.Type {
		return false
	}
	return true
}

// findEffectByID locates an effect on a definition by its id.
func findEffectByID(def *CardDefinition, effectID string) *EffectDefinition {
	if def == nil {
		return nil
	}
	for i := range def.Effects {
		if def.Effects[i].ID == effectID {
			return &def.Effects[i]
		}
	}
	return nil
}
