package engine

// emitter accumulates events while folding each one into a private working
// snapshot, so later decisions in the same command see the intermediate
// state. Decide functions build one from the caller's snapshot, which stays
// untouched.
type emitter struct {
	gs     *GameState
	events []Event
}

func newEmitter(gs *GameState) *emitter {
	return &emitter{gs: gs.Clone()}
}

func (e *emitter) emit(ev Event) {
	applyEvent(e.gs, ev)
	e.events = append(e.events, ev)
}

// checkLife ends the game when either seat's life points are exhausted.
func (e *emitter) checkLife() {
	if e.gs.GameOver {
		return
	}
	for _, seat := range Seats() {
		if e.gs.Players[seat].LifePoints <= 0 {
			e.emit(Event{
				Type:   EventGameEnded,
				Winner: seat.Opponent(),
				Reason: WinReasonLifePoints,
			})
			return
		}
	}
}

// ExecuteAction executes one effect action against a snapshot and returns
// the resulting events. Pure: the snapshot is not modified. Unknown action
// types return no events.
func ExecuteAction(gs *GameState, action EffectAction, seat Seat, sourceID string, targetIDs []string) []Event {
	e := newEmitter(gs)
	execAction(e, action, seat, sourceID, targetIDs)
	return e.events
}

// execAction is the emitter-sharing form used during chain resolution.
func execAction(e *emitter, action EffectAction, seat Seat, sourceID string, targetIDs []string) {
	gs := e.gs
	if gs.GameOver {
		return
	}

	switch action.Type {

	case ActionBoostAttack, ActionBoostDefense:
		stat := "attack"
		if action.Type == ActionBoostDefense {
			stat = "defense"
		}
		duration := action.Duration
		if duration == "" {
			duration = "permanent"
		}
		for _, id := range resolveCardTargets(gs, seat, sourceID, targetIDs) {
			e.emit(Event{Type: EventStatBoosted, CardID: id, Stat: stat, Amount: action.Amount, Duration: duration})
		}

	case ActionDamage:
		victim := seat.Opponent()
		if action.Target == TargetSelf {
			victim = seat
		}
		if action.Amount > 0 {
			e.emit(Event{Type: EventDamageDealt, Seat: victim, Amount: action.Amount})
			e.checkLife()
		}

	case ActionHeal:
		who := seat
		if action.Target == TargetOpponent {
			who = seat.Opponent()
		}
		if action.Amount > 0 {
			e.emit(Event{Type: EventLifeGained, Seat: who, Amount: action.Amount})
		}

	case ActionDraw:
		count := action.Count
		if count <= 0 {
			count = 1
		}
		p := gs.Players[seat]
		for i := 0; i < count && len(p.Deck) > 0; i++ {
			e.emit(Event{Type: EventCardDrawn, Seat: seat, CardID: p.Deck[0]})
		}

	case ActionDiscard:
		who := seat
		if action.Target == TargetOpponent {
			who = seat.Opponent()
		}
		count := action.Count
		if count <= 0 {
			count = 1
		}
		p := gs.Players[who]
		if count == DiscardAll {
			count = len(p.Hand)
		}
		for i := 0; i < count && len(p.Hand) > 0; i++ {
			e.emit(Event{Type: EventCardDiscarded, Seat: who, CardID: p.Hand[0]})
		}

	case ActionDestroy:
		var doomed []string
		switch action.Target {
		case TargetAllSpellsTraps:
			for _, s := range Seats() {
				for _, st := range gs.Players[s].SpellTraps {
					doomed = append(doomed, st.InstanceID)
				}
				if fs := gs.Players[s].FieldSpell; fs != nil {
					doomed = append(doomed, fs.InstanceID)
				}
			}
		case TargetAllOpponentMonsters:
			for _, bc := range gs.Players[seat.Opponent()].Board {
				doomed = append(doomed, bc.InstanceID)
			}
		default:
			doomed = resolveCardTargets(gs, seat, sourceID, targetIDs)
		}
		for _, id := range doomed {
			destroyCard(e, id)
		}

	case ActionNegate:
		// Targets the most recent unresolved chain link. During resolution
		// the resolving link has already been popped, so the top is the
		// link activated just before it.
		if n := len(gs.CurrentChain); n > 0 {
			e.emit(Event{Type: EventChainNegated, LinkIndex: gs.CurrentChain[n-1].Index})
		}

	case ActionReturnToHand:
		for _, id := range explicitOrSource(gs, sourceID, targetIDs) {
			if owner, ok := findCardOutsideDeck(gs, id); ok {
				e.emit(Event{Type: EventCardToHand, Seat: owner, CardID: id})
			}
		}

	case ActionBanish:
		for _, id := range explicitOrSource(gs, sourceID, targetIDs) {
			if owner, ok := findCardOutsideDeck(gs, id); ok {
				e.emit(Event{Type: EventCardBanished, Seat: owner, CardID: id})
			}
		}

	case ActionSpecialSummon:
		from := action.From
		if from == "" {
			from = "graveyard"
		}
		p := gs.Players[seat]
		for _, id := range explicitOrSource(gs, sourceID, targetIDs) {
			if len(p.Board) >= MaxBoardSlots {
				break
			}
			if !zoneContains(p, from, id) {
				continue
			}
			def := gs.Definition(id)
			if def == nil || def.Type != CardTypeMonster {
				continue
			}
			e.emit(Event{Type: EventSpecialSummon, Seat: seat, CardID: id, Zone: from, Position: action.Position})
		}

	case ActionChangePosition:
		for _, id := range resolveCardTargets(gs, seat, sourceID, targetIDs) {
			bc, owner := gs.FindBoardCard(id)
			if bc == nil {
				continue
			}
			pos := action.Position
			if pos == "" {
				pos = PositionDefense
				if bc.Position == PositionDefense {
					pos = PositionAttack
				}
			}
			e.emit(Event{Type: EventPositionChange, Seat: owner, CardID: id, Position: pos})
		}

	case ActionAddVice, ActionRemoveVice:
		delta := action.Amount
		if delta <= 0 {
			delta = 1
		}
		if action.Type == ActionRemoveVice {
			delta = -delta
		}
		for _, id := range resolveCardTargets(gs, seat, sourceID, targetIDs) {
			bc, owner := gs.FindBoardCard(id)
			if bc == nil {
				continue
			}
			next := bc.ViceCounters + delta
			if next < 0 {
				next = 0
			}
			e.emit(Event{Type: EventViceChanged, Seat: owner, CardID: id, Amount: next})
		}

	case ActionApplyRestriction:
		who := seat.Opponent()
		if action.Target == TargetSelf {
			who = seat
		}
		e.emit(Event{Type: EventRestriction, Seat: who, Kind: action.Kind, Amount: action.Amount})

	case ActionModifyCost:
		who := seat
		if action.Target == TargetOpponent {
			who = seat.Opponent()
		}
		e.emit(Event{Type: EventCostModified, Seat: who, Kind: action.Kind, Amount: action.Amount})

	case ActionViewTopCards:
		count := action.Count
		if count <= 0 {
			count = 1
		}
		deck := gs.Players[seat].Deck
		if count > len(deck) {
			count = len(deck)
		}
		if count > 0 {
			e.emit(Event{Type: EventTopViewed, Seat: seat, CardIDs: append([]string(nil), deck[:count]...)})
		}

	case ActionRearrangeTop:
		count := action.Count
		if count <= 0 {
			count = 1
		}
		deck := gs.Players[seat].Deck
		if count > len(deck) {
			count = len(deck)
		}
		if count > 1 {
			rearranged := make([]string, count)
			for i := 0; i < count; i++ {
				rearranged[i] = deck[count-1-i]
			}
			e.emit(Event{Type: EventDeckRearranged, Seat: seat, CardIDs: rearranged})
		}
	}
}

// destroyCard emits destruction plus graveyard movement for a card on a
// board or in a spell/trap zone, recording the owning seat (which may
// differ from the activating seat).
func destroyCard(e *emitter, instanceID string) {
	gs := e.gs
	if bc, owner := gs.FindBoardCard(instanceID); bc != nil {
		e.emit(Event{Type: EventCardDestroyed, Seat: owner, CardID: instanceID})
		e.emit(Event{Type: EventCardToGrave, Seat: owner, CardID: instanceID})
		return
	}
	if st, owner := gs.FindSpellTrap(instanceID); st != nil {
		e.emit(Event{Type: EventCardDestroyed, Seat: owner, CardID: instanceID})
		e.emit(Event{Type: EventCardToGrave, Seat: owner, CardID: instanceID})
	}
}

// resolveCardTargets applies the target precedence: explicit targets win;
// otherwise the source card itself when it sits on a board; otherwise all
// friendly face-up board monsters of the activating seat.
func resolveCardTargets(gs *GameState, seat Seat, sourceID string, explicit []string) []string {
	if len(explicit) > 0 {
		return explicit
	}
	if bc, _ := gs.FindBoardCard(sourceID); bc != nil {
		return []string{sourceID}
	}
	var out []string
	for _, bc := range gs.Players[seat].FaceUpMonsters() {
		out = append(out, bc.InstanceID)
	}
	return out
}

// explicitOrSource prefers explicit targets, falling back to the source
// card (for zone-crossing actions that must name a card).
func explicitOrSource(gs *GameState, sourceID string, explicit []string) []string {
	if len(explicit) > 0 {
		return explicit
	}
	if sourceID != "" {
		return []string{sourceID}
	}
	return nil
}

// findCardOutsideDeck locates a card's owning seat, searching hand, then
// graveyard, then banished, then board, then spell/trap zones (host before
// away within each zone). Cards currently in a deck are not found.
func findCardOutsideDeck(gs *GameState, instanceID string) (Seat, bool) {
	for _, seat := range Seats() {
		for _, id := range gs.Players[seat].Hand {
			if id == instanceID {
				return seat, true
			}
		}
	}
	for _, seat := range Seats() {
		for _, id := range gs.Players[seat].Graveyard {
			if id == instanceID {
				return seat, true
			}
		}
	}
	for _, seat := range Seats() {
		for _, id := range gs.Players[seat].Banished {
			if id == instanceID {
				return seat, true
			}
		}
	}
	if _, seat := gs.FindBoardCard(instanceID); seat != "" {
		return seat, true
	}
	if _, seat := gs.FindSpellTrap(instanceID); seat != "" {
		return seat, true
	}
	return "", false
}

// zoneContains reports whether the named zone of a player holds the card.
func zoneContains(p *PlayerState, zone, instanceID string) bool {
	var list []string
	switch zone {
	case "hand":
		list = p.Hand
	case "graveyard":
		list = p.Graveyard
	case "banished":
		list = p.Banished
	default:
		return false
	}
	for _, id := range list {
		if id == instanceID {
			return true
		}
	}
	return false
}
