package engine

// --- Effect model ---

// EffectType categorizes when a card effect may be used.
type EffectType string

const (
	EffectOnSummon   EffectType = "on_summon"
	EffectIgnition   EffectType = "ignition"
	EffectTrigger    EffectType = "trigger"
	EffectQuick      EffectType = "quick"
	EffectContinuous EffectType = "continuous"
)

// Speed returns the chain speed of an effect type. Quick effects (and trap
// effects, which carry speed via their card type) are speed 2; everything
// else is speed 1.
func (t EffectType) Speed() int {
	if t == EffectQuick {
		return 2
	}
	return 1
}

// TargetFilter narrows which cards an effect may select.
type TargetFilter struct {
	Owner    string   `json:"owner"` // "self", "opponent", "any"
	Zone     string   `json:"zone,omitempty"`
	CardType CardType `json:"cardType,omitempty"`
}

// EffectDefinition is one structured, executable effect on a card.
type EffectDefinition struct {
	ID          string         `json:"id"`
	Type        EffectType     `json:"type"`
	OncePerTurn bool           `json:"oncePerTurn,omitempty"`
	OncePerDuel bool           `json:"oncePerDuel,omitempty"`
	Filter      *TargetFilter  `json:"targetFilter,omitempty"`
	TargetCount int            `json:"targetCount,omitempty"`
	Actions     []EffectAction `json:"actions"`
	Description string         `json:"description,omitempty"`
}

// ActionType enumerates every executable effect action. The interpreter in
// operations.go must carry a case for each; unknown types resolve to no
// events.
type ActionType string

const (
	ActionBoostAttack      ActionType = "boost_attack"
	ActionBoostDefense     ActionType = "boost_defense"
	ActionDamage           ActionType = "damage"
	ActionHeal             ActionType = "heal"
	ActionDraw             ActionType = "draw"
	ActionDiscard          ActionType = "discard"
	ActionDestroy          ActionType = "destroy"
	ActionNegate           ActionType = "negate"
	ActionReturnToHand     ActionType = "return_to_hand"
	ActionBanish           ActionType = "banish"
	ActionSpecialSummon    ActionType = "special_summon"
	ActionChangePosition   ActionType = "change_position"
	ActionAddVice          ActionType = "add_vice"
	ActionRemoveVice       ActionType = "remove_vice"
	ActionApplyRestriction ActionType = "apply_restriction"
	ActionModifyCost       ActionType = "modify_cost"
	ActionViewTopCards     ActionType = "view_top_cards"
	ActionRearrangeTop     ActionType = "rearrange_top_cards"
)

// DiscardAll is the sentinel count meaning "discard the whole hand".
const DiscardAll = 99

// EffectAction is a single executable step of an effect. Which fields are
// meaningful depends on Type.
type EffectAction struct {
	Type     ActionType `json:"type"`
	Amount   int        `json:"amount,omitempty"`
	Count    int        `json:"count,omitempty"`
	Duration string     `json:"duration,omitempty"` // "permanent" or "turn"
	Target   string     `json:"target,omitempty"`
	From     string     `json:"from,omitempty"` // zone, for special_summon
	Position Position   `json:"position,omitempty"`
	Kind     string     `json:"kind,omitempty"` // restriction / cost modifier kind
}

// Action targets shared with the compiler.
const (
	TargetSelected            = "selected"
	TargetOpponent            = "opponent"
	TargetSelf                = "self"
	TargetAllSpellsTraps      = "all_spells_traps"
	TargetAllOpponentMonsters = "all_opponent_monsters"
	TargetLastChainLink       = "last_chain_link"
)

// --- Card definitions ---

// CardDefinition is the static, registry-supplied rules data for one card.
// The engine never mutates definitions.
type CardDefinition struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Type    CardType           `json:"type"`
	Rarity  string             `json:"rarity,omitempty"`
	Level   int                `json:"level,omitempty"`
	Attack  int                `json:"attack,omitempty"`
	Defense int                `json:"defense,omitempty"`
	Spell   SpellSubtype       `json:"spellType,omitempty"`
	Effects []EffectDefinition `json:"effects,omitempty"`
}

// Speed returns the chain speed this card activates at.
func (d *CardDefinition) Speed() int {
	switch d.Type {
	case CardTypeTrap:
		return 2
	case CardTypeSpell:
		if d.Spell == SpellQuickPlay {
			return 2
		}
	}
	return 1
}

// EffectAt returns the effect at index i, or nil when out of range.
func (d *CardDefinition) EffectAt(i int) *EffectDefinition {
	if i < 0 || i >= len(d.Effects) {
		return nil
	}
	return &d.Effects[i]
}

// Registry maps definition ids to card definitions. Supplied once at duel
// creation and treated as read-only.
type Registry map[string]*CardDefinition

// Lookup returns the definition for id, or nil.
func (r Registry) Lookup(id string) *CardDefinition {
	return r[id]
}
