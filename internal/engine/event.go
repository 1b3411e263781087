package engine

import "fmt"

// EventType enumerates every immutable fact the engine can emit.
type EventType string

const (
	EventTurnStarted    EventType = "turn_started"
	EventTurnEnded      EventType = "turn_ended"
	EventPhaseChanged   EventType = "phase_changed"
	EventCardDrawn      EventType = "card_drawn"
	EventCardSummoned   EventType = "card_summoned"
	EventCardTributed   EventType = "card_tributed"
	EventCardSet        EventType = "card_set"
	EventCardFlipped    EventType = "card_flipped"
	EventPositionChange EventType = "position_changed"
	EventAttackDeclared EventType = "attack_declared"
	EventDamageDealt    EventType = "damage_dealt"
	EventLifeGained     EventType = "life_gained"
	EventCardDestroyed  EventType = "card_destroyed"
	EventCardToGrave    EventType = "card_sent_to_graveyard"
	EventCardBanished   EventType = "card_banished"
	EventCardToHand     EventType = "card_returned_to_hand"
	EventCardDiscarded  EventType = "card_discarded"
	EventSpecialSummon  EventType = "card_special_summoned"
	EventSpellActivated EventType = "spell_activated"
	EventChainLinkAdded EventType = "chain_link_added"
	EventChainPassed    EventType = "chain_passed"
	EventChainResolved  EventType = "chain_link_resolved"
	EventChainNegated   EventType = "chain_link_negated"
	EventChainEnded     EventType = "chain_ended"
	EventStatBoosted    EventType = "stat_boosted"
	EventViceChanged    EventType = "vice_counters_changed"
	EventBreakdown      EventType = "breakdown"
	EventRestriction    EventType = "restriction_applied"
	EventCostModified   EventType = "cost_modified"
	EventTopViewed      EventType = "top_cards_viewed"
	EventDeckRearranged EventType = "deck_rearranged"
	EventEffectUsed     EventType = "effect_used"
	EventGameEnded      EventType = "game_ended"
)

// Event is one immutable fact. Events are never mutated after emission;
// folding them with Apply produces the next snapshot.
type Event struct {
	Type EventType `json:"type"`

	// Seat the fact belongs to (acting seat, or the owner of the affected
	// card, depending on the event type).
	Seat Seat `json:"seat,omitempty"`

	CardID   string   `json:"cardId,omitempty"`
	TargetID string   `json:"targetId,omitempty"`
	CardIDs  []string `json:"cardIds,omitempty"`

	Amount   int      `json:"amount,omitempty"`
	Phase    Phase    `json:"phase,omitempty"`
	Turn     int      `json:"turn,omitempty"`
	Position Position `json:"position,omitempty"`
	Zone     string   `json:"zone,omitempty"`
	Stat     string   `json:"stat,omitempty"`
	Duration string   `json:"duration,omitempty"`
	Kind     string   `json:"kind,omitempty"`

	// Chain bookkeeping.
	LinkIndex int  `json:"linkIndex,omitempty"`
	Passer    Seat `json:"passer,omitempty"`

	// Effect usage (OPT/HOPT tracking).
	EffectID string `json:"effectId,omitempty"`

	// Breakdown credit and game end.
	CreditedTo Seat   `json:"creditedTo,omitempty"`
	Winner     Seat   `json:"winner,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

func (e Event) String() string {
	switch e.Type {
	case EventPhaseChanged:
		return fmt.Sprintf("phase -> %s", e.Phase)
	case EventTurnStarted:
		return fmt.Sprintf("turn %d (%s)", e.Turn, e.Seat)
	case EventDamageDealt:
		return fmt.Sprintf("%s takes %d damage", e.Seat, e.Amount)
	case EventGameEnded:
		return fmt.Sprintf("game over: %s wins (%s)", e.Winner, e.Reason)
	case EventBreakdown:
		return fmt.Sprintf("breakdown: %s (credited to %s)", e.CardID, e.CreditedTo)
	default:
		if e.CardID != "" {
			return fmt.Sprintf("%s %s", e.Type, e.CardID)
		}
		return string(e.Type)
	}
}
