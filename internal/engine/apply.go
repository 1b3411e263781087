package engine

// Apply folds events into a snapshot, returning the next snapshot. The
// input snapshot is never touched, so callers may retain prior states for
// replay or audit.
func Apply(gs *GameState, events []Event) *GameState {
	next := gs.Clone()
	for _, ev := range events {
		applyEvent(next, ev)
	}
	return next
}

// applyEvent folds one event in place. Exhaustive over EventType; facts
// that cannot be applied (card no longer where expected) degrade to no-ops
// to keep the fold total.
func applyEvent(gs *GameState, ev Event) {
	switch ev.Type {

	case EventTurnStarted:
		gs.TurnNumber = ev.Turn
		gs.CurrentTurnPlayer = ev.Seat

	case EventTurnEnded:
		p := gs.Players[ev.Seat]
		p.NormalSummonedThisTurn = false
		for _, bc := range p.Board {
			bc.HasAttackedThisTurn = false
			bc.ChangedPositionThisTurn = false
			bc.CanAttack = true
		}
		gs.EffectsUsedThisTurn = map[string]bool{}
		gs.TemporaryModifiers = expireModifiers(gs.TemporaryModifiers, gs.TurnNumber)
		gs.TurnRestrictions = expireRestrictions(gs.TurnRestrictions, gs.TurnNumber)
		gs.CostModifiers = expireCosts(gs.CostModifiers, gs.TurnNumber)

	case EventPhaseChanged:
		gs.CurrentPhase = ev.Phase

	case EventCardDrawn:
		p := gs.Players[ev.Seat]
		if removeFromList(&p.Deck, ev.CardID) {
			p.Hand = append(p.Hand, ev.CardID)
		}

	case EventCardSummoned:
		p := gs.Players[ev.Seat]
		if p.removeFromHand(ev.CardID) && len(p.Board) < MaxBoardSlots {
			p.Board = append(p.Board, &BoardCard{
				InstanceID:   ev.CardID,
				DefinitionID: gs.Cards[ev.CardID],
				Position:     ev.Position,
				CanAttack:    true,
				TurnSummoned: gs.TurnNumber,
			})
			p.NormalSummonedThisTurn = true
		}

	case EventCardTributed:
		p := gs.Players[ev.Seat]
		if p.removeFromBoard(ev.CardID) {
			p.Graveyard = append(p.Graveyard, ev.CardID)
			dropCardModifiers(gs, ev.CardID)
		}

	case EventCardSet:
		p := gs.Players[ev.Seat]
		switch ev.Zone {
		case "board":
			if p.removeFromHand(ev.CardID) && len(p.Board) < MaxBoardSlots {
				p.Board = append(p.Board, &BoardCard{
					InstanceID:   ev.CardID,
					DefinitionID: gs.Cards[ev.CardID],
					Position:     PositionDefense,
					FaceDown:     true,
					TurnSummoned: gs.TurnNumber,
				})
				p.NormalSummonedThisTurn = true
			}
		case "field":
			if p.removeFromHand(ev.CardID) {
				p.FieldSpell = &SpellTrapCard{
					InstanceID:   ev.CardID,
					DefinitionID: gs.Cards[ev.CardID],
					FaceDown:     true,
					FieldSpell:   true,
					TurnSet:      gs.TurnNumber,
				}
			}
		default: // spell/trap zone
			if p.removeFromHand(ev.CardID) && len(p.SpellTraps) < MaxSpellTrapSlots {
				p.SpellTraps = append(p.SpellTraps, &SpellTrapCard{
					InstanceID:   ev.CardID,
					DefinitionID: gs.Cards[ev.CardID],
					FaceDown:     true,
					TurnSet:      gs.TurnNumber,
				})
			}
		}

	case EventCardFlipped:
		if bc := gs.Players[ev.Seat].boardCard(ev.CardID); bc != nil {
			bc.FaceDown = false
			bc.Position = PositionAttack
		}

	case EventPositionChange:
		if bc := gs.Players[ev.Seat].boardCard(ev.CardID); bc != nil {
			bc.Position = ev.Position
			bc.ChangedPositionThisTurn = true
		}

	case EventAttackDeclared:
		if bc := gs.Players[ev.Seat].boardCard(ev.CardID); bc != nil {
			bc.HasAttackedThisTurn = true
		}

	case EventDamageDealt:
		gs.Players[ev.Seat].LifePoints -= ev.Amount

	case EventLifeGained:
		gs.Players[ev.Seat].LifePoints += ev.Amount

	case EventCardDestroyed:
		p := gs.Players[ev.Seat]
		if !p.removeFromBoard(ev.CardID) {
			p.removeFromSpellTraps(ev.CardID)
		}
		dropCardModifiers(gs, ev.CardID)

	case EventCardToGrave:
		p := gs.Players[ev.Seat]
		removeEverywhere(gs, ev.Seat, ev.CardID)
		p.Graveyard = append(p.Graveyard, ev.CardID)

	case EventCardBanished:
		p := gs.Players[ev.Seat]
		removeEverywhere(gs, ev.Seat, ev.CardID)
		p.Banished = append(p.Banished, ev.CardID)
		dropCardModifiers(gs, ev.CardID)

	case EventCardToHand:
		p := gs.Players[ev.Seat]
		removeEverywhere(gs, ev.Seat, ev.CardID)
		p.Hand = append(p.Hand, ev.CardID)
		dropCardModifiers(gs, ev.CardID)

	case EventCardDiscarded:
		p := gs.Players[ev.Seat]
		if p.removeFromHand(ev.CardID) {
			p.Graveyard = append(p.Graveyard, ev.CardID)
		}

	case EventSpecialSummon:
		p := gs.Players[ev.Seat]
		removeEverywhere(gs, ev.Seat, ev.CardID)
		if len(p.Board) < MaxBoardSlots {
			pos := ev.Position
			if pos == "" {
				pos = PositionAttack
			}
			p.Board = append(p.Board, &BoardCard{
				InstanceID:   ev.CardID,
				DefinitionID: gs.Cards[ev.CardID],
				Position:     pos,
				CanAttack:    true,
				TurnSummoned: gs.TurnNumber,
			})
		}

	case EventSpellActivated:
		p := gs.Players[ev.Seat]
		if st, seat := gs.FindSpellTrap(ev.CardID); st != nil && seat == ev.Seat {
			st.FaceDown = false
			st.Activated = true
		} else if p.removeFromHand(ev.CardID) {
			def := gs.Definition(ev.CardID)
			card := &SpellTrapCard{
				InstanceID:   ev.CardID,
				DefinitionID: gs.Cards[ev.CardID],
				Activated:    true,
			}
			if def != nil && def.Spell == SpellField {
				card.FieldSpell = true
				p.FieldSpell = card
			} else if len(p.SpellTraps) < MaxSpellTrapSlots {
				p.SpellTraps = append(p.SpellTraps, card)
			}
		}

	case EventChainLinkAdded:
		if len(gs.CurrentChain) == 0 {
			gs.PhaseBeforeChain = gs.CurrentPhase
		}
		gs.CurrentChain = append(gs.CurrentChain, &ChainLink{
			Index:     ev.LinkIndex,
			Seat:      ev.Seat,
			CardID:    ev.CardID,
			EffectID:  ev.EffectID,
			TargetIDs: append([]string(nil), ev.CardIDs...),
			FromHand:  ev.Zone == "hand",
		})
		gs.CurrentPriorityPlayer = ev.Seat.Opponent()
		gs.CurrentChainPasser = ""

	case EventChainPassed:
		gs.CurrentChainPasser = ev.Passer
		gs.CurrentPriorityPlayer = ev.Passer.Opponent()

	case EventChainResolved:
		if n := len(gs.CurrentChain); n > 0 {
			gs.CurrentChain = gs.CurrentChain[:n-1]
		}
		gs.CurrentChainPasser = ""
		if n := len(gs.CurrentChain); n > 0 {
			gs.CurrentPriorityPlayer = gs.CurrentChain[n-1].Seat.Opponent()
		}

	case EventChainNegated:
		for _, link := range gs.CurrentChain {
			if link.Index == ev.LinkIndex {
				link.Negated = true
			}
		}

	case EventChainEnded:
		gs.CurrentChain = nil
		gs.CurrentPriorityPlayer = ""
		gs.CurrentChainPasser = ""
		if gs.PhaseBeforeChain != "" {
			gs.CurrentPhase = gs.PhaseBeforeChain
			gs.PhaseBeforeChain = ""
		}

	case EventStatBoosted:
		bc, _ := gs.FindBoardCard(ev.CardID)
		if bc == nil {
			return
		}
		if ev.Duration == "turn" {
			gs.TemporaryModifiers = append(gs.TemporaryModifiers, TemporaryModifier{
				CardID:       ev.CardID,
				Stat:         ev.Stat,
				Amount:       ev.Amount,
				ExpiresAfter: gs.TurnNumber,
			})
			return
		}
		if ev.Stat == "defense" {
			bc.BoostDefense += ev.Amount
		} else {
			bc.BoostAttack += ev.Amount
		}

	case EventViceChanged:
		if bc, _ := gs.FindBoardCard(ev.CardID); bc != nil {
			bc.ViceCounters = ev.Amount
		}

	case EventBreakdown:
		gs.Players[ev.CreditedTo].BreakdownsCaused++

	case EventRestriction:
		gs.TurnRestrictions = append(gs.TurnRestrictions, TurnRestriction{
			Seat:         ev.Seat,
			Kind:         ev.Kind,
			Amount:       ev.Amount,
			ExpiresAfter: gs.TurnNumber,
		})

	case EventCostModified:
		gs.CostModifiers = append(gs.CostModifiers, CostModifier{
			Seat:         ev.Seat,
			Kind:         ev.Kind,
			Amount:       ev.Amount,
			ExpiresAfter: gs.TurnNumber,
		})

	case EventTopViewed:
		// Informational only.

	case EventDeckRearranged:
		p := gs.Players[ev.Seat]
		if len(ev.CardIDs) <= len(p.Deck) {
			copy(p.Deck, ev.CardIDs)
		}

	case EventEffectUsed:
		key := effectKey(ev.CardID, ev.EffectID)
		gs.EffectsUsedThisTurn[key] = true
		gs.EffectsUsedThisDuel[key] = true

	case EventGameEnded:
		gs.GameOver = true
		gs.Winner = ev.Winner
		gs.WinReason = ev.Reason
	}
}

// removeEverywhere pulls a card out of whatever zone of the seat currently
// holds it (hand, graveyard, banished, board, spell/trap). Decks are left
// alone so zone-crossing actions skip decked cards.
func removeEverywhere(gs *GameState, seat Seat, instanceID string) {
	p := gs.Players[seat]
	if p.removeFromHand(instanceID) {
		return
	}
	if removeFromList(&p.Graveyard, instanceID) {
		return
	}
	if removeFromList(&p.Banished, instanceID) {
		return
	}
	if p.removeFromBoard(instanceID) {
		return
	}
	p.removeFromSpellTraps(instanceID)
}

// dropCardModifiers discards temporary modifiers attached to a card that
// left the board.
func dropCardModifiers(gs *GameState, instanceID string) {
	kept := gs.TemporaryModifiers[:0]
	for _, m := range gs.TemporaryModifiers {
		if m.CardID != instanceID {
			kept = append(kept, m)
		}
	}
	gs.TemporaryModifiers = kept
}

func expireModifiers(mods []TemporaryModifier, turn int) []TemporaryModifier {
	kept := mods[:0]
	for _, m := range mods {
		if m.ExpiresAfter > turn {
			kept = append(kept, m)
		}
	}
	return kept
}

func expireRestrictions(rs []TurnRestriction, turn int) []TurnRestriction {
	kept := rs[:0]
	for _, r := range rs {
		if r.ExpiresAfter > turn {
			kept = append(kept, r)
		}
	}
	return kept
}

func expireCosts(cs []CostModifier, turn int) []CostModifier {
	kept := cs[:0]
	for _, c := range cs {
		if c.ExpiresAfter > turn {
			kept = append(kept, c)
		}
	}
	return kept
}
