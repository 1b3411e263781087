package engine

import (
	"fmt"
	"math/rand"
)

// BoardCard is a monster occupying a board slot.
type BoardCard struct {
	InstanceID              string   `json:"instanceId"`
	DefinitionID            string   `json:"definitionId"`
	Position                Position `json:"position"`
	FaceDown                bool     `json:"faceDown,omitempty"`
	CanAttack               bool     `json:"canAttack"`
	HasAttackedThisTurn     bool     `json:"hasAttackedThisTurn,omitempty"`
	ChangedPositionThisTurn bool     `json:"changedPositionThisTurn,omitempty"`
	ViceCounters            int      `json:"viceCounters,omitempty"`
	BoostAttack             int      `json:"boostAttack,omitempty"`
	BoostDefense            int      `json:"boostDefense,omitempty"`
	EquippedCardIDs         []string `json:"equippedCardIds,omitempty"`
	TurnSummoned            int      `json:"turnSummoned"`
}

// SpellTrapCard is a card occupying a spell/trap slot (or the field slot).
type SpellTrapCard struct {
	InstanceID   string `json:"instanceId"`
	DefinitionID string `json:"definitionId"`
	FaceDown     bool   `json:"faceDown,omitempty"`
	Activated    bool   `json:"activated,omitempty"`
	FieldSpell   bool   `json:"fieldSpell,omitempty"`
	TurnSet      int    `json:"turnSet,omitempty"`
}

// TemporaryModifier is an expiring stat delta on a board card.
type TemporaryModifier struct {
	CardID       string `json:"cardId"`
	Stat         string `json:"stat"` // "attack" or "defense"
	Amount       int    `json:"amount"`
	ExpiresAfter int    `json:"expiresAfter"` // turn number it survives through
}

// TurnRestriction is an active play restriction applied by an effect.
type TurnRestriction struct {
	Seat         Seat   `json:"seat"`
	Kind         string `json:"kind"`
	Amount       int    `json:"amount,omitempty"`
	ExpiresAfter int    `json:"expiresAfter"`
}

// CostModifier adjusts an effect or summon cost for a seat.
type CostModifier struct {
	Seat         Seat   `json:"seat"`
	Kind         string `json:"kind"`
	Amount       int    `json:"amount"`
	ExpiresAfter int    `json:"expiresAfter"`
}

// PlayerState is everything owned by one seat.
type PlayerState struct {
	Hand                   []string         `json:"hand"`
	Board                  []*BoardCard     `json:"board"`
	SpellTraps             []*SpellTrapCard `json:"spellTraps"`
	FieldSpell             *SpellTrapCard   `json:"fieldSpell,omitempty"`
	Deck                   []string         `json:"deck"` // index 0 = top
	Graveyard              []string         `json:"graveyard"`
	Banished               []string         `json:"banished"`
	LifePoints             int              `json:"lifePoints"`
	BreakdownsCaused       int              `json:"breakdownsCaused"`
	NormalSummonedThisTurn bool             `json:"normalSummonedThisTurn,omitempty"`
}

// ChainLink is one activated effect awaiting LIFO resolution.
type ChainLink struct {
	Index      int      `json:"index"` // 1-based activation order
	Seat       Seat     `json:"seat"`
	CardID     string   `json:"cardId"`
	EffectID   string   `json:"effectId,omitempty"`
	TargetIDs  []string `json:"targetIds,omitempty"`
	Negated    bool     `json:"negated,omitempty"`
	FromHand   bool     `json:"fromHand,omitempty"`
	EffectIdx  int      `json:"effectIdx"`
	SpeedLevel int      `json:"speed"`
}

// GameState is a single immutable duel snapshot. Folding events produces a
// new snapshot; an existing snapshot is never mutated after it is returned
// to a caller.
type GameState struct {
	Players map[Seat]*PlayerState `json:"players"`

	TurnNumber        int   `json:"turnNumber"`
	CurrentTurnPlayer Seat  `json:"currentTurnPlayer"`
	CurrentPhase      Phase `json:"currentPhase"`

	CurrentChain          []*ChainLink `json:"currentChain,omitempty"`
	CurrentPriorityPlayer Seat         `json:"currentPriorityPlayer,omitempty"`
	CurrentChainPasser    Seat         `json:"currentChainPasser,omitempty"`
	PhaseBeforeChain      Phase        `json:"phaseBeforeChain,omitempty"`

	TemporaryModifiers []TemporaryModifier `json:"temporaryModifiers,omitempty"`
	TurnRestrictions   []TurnRestriction   `json:"turnRestrictions,omitempty"`
	CostModifiers      []CostModifier      `json:"costModifiers,omitempty"`

	// Effect-usage trackers, keyed "<instanceId>/<effectId>".
	EffectsUsedThisTurn map[string]bool `json:"effectsUsedThisTurn,omitempty"`
	EffectsUsedThisDuel map[string]bool `json:"effectsUsedThisDuel,omitempty"`

	GameOver  bool   `json:"gameOver,omitempty"`
	Winner    Seat   `json:"winner,omitempty"`
	WinReason string `json:"winReason,omitempty"`

	// Instance id → definition id for every card in the duel.
	Cards map[string]string `json:"cards"`

	// Read-only card registry shared by all snapshots of a duel.
	Defs Registry `json:"-"`
}

// DuelConfig describes a new duel.
type DuelConfig struct {
	Defs      Registry
	HostDeck  []string // definition ids, in list order
	AwayDeck  []string
	Seed      int64 // shuffle seed; 0 keeps list order (deterministic tests)
	FirstSeat Seat  // defaults to host
}

// NewDuel builds the opening snapshot: decks instantiated and shuffled,
// opening hands drawn, turn 1 draw phase for the first seat (turn-player
// draw included).
func NewDuel(cfg DuelConfig) (*GameState, error) {
	first := cfg.FirstSeat
	if first == "" {
		first = SeatHost
	}
	if !first.Valid() {
		return nil, fmt.Errorf("invalid first seat %q", first)
	}

	gs := &GameState{
		Players: map[Seat]*PlayerState{
			SeatHost: {LifePoints: StartingLifePoints},
			SeatAway: {LifePoints: StartingLifePoints},
		},
		TurnNumber:          1,
		CurrentTurnPlayer:   first,
		CurrentPhase:        PhaseDraw,
		EffectsUsedThisTurn: map[string]bool{},
		EffectsUsedThisDuel: map[string]bool{},
		Cards:               map[string]string{},
		Defs:                cfg.Defs,
	}

	next := 0
	build := func(seat Seat, defIDs []string) error {
		p := gs.Players[seat]
		for _, defID := range defIDs {
			if cfg.Defs.Lookup(defID) == nil {
				return fmt.Errorf("unknown card definition %q in %s deck", defID, seat)
			}
			next++
			id := fmt.Sprintf("c%d", next)
			gs.Cards[id] = defID
			p.Deck = append(p.Deck, id)
		}
		return nil
	}
	if err := build(SeatHost, cfg.HostDeck); err != nil {
		return nil, err
	}
	if err := build(SeatAway, cfg.AwayDeck); err != nil {
		return nil, err
	}

	if cfg.Seed != 0 {
		rng := rand.New(rand.NewSource(cfg.Seed))
		for _, seat := range Seats() {
			deck := gs.Players[seat].Deck
			rng.Shuffle(len(deck), func(i, j int) {
				deck[i], deck[j] = deck[j], deck[i]
			})
		}
	}

	// Opening hands, then the first turn's draw.
	for i := 0; i < InitialHandSize; i++ {
		for _, seat := range Seats() {
			if !gs.drawTop(seat) {
				return nil, fmt.Errorf("%s deck too small for opening hand", seat)
			}
		}
	}
	if !gs.drawTop(first) {
		return nil, fmt.Errorf("%s deck too small for first draw", first)
	}

	return gs, nil
}

// drawTop moves the top deck card to the hand. Setup-only mutation.
func (gs *GameState) drawTop(seat Seat) bool {
	p := gs.Players[seat]
	if len(p.Deck) == 0 {
		return false
	}
	p.Hand = append(p.Hand, p.Deck[0])
	p.Deck = p.Deck[1:]
	return true
}

// Clone deep-copies the snapshot. The registry is shared (read-only).
func (gs *GameState) Clone() *GameState {
	cp := *gs
	cp.Players = make(map[Seat]*PlayerState, 2)
	for seat, p := range gs.Players {
		np := *p
		np.Hand = append([]string(nil), p.Hand...)
		np.Deck = append([]string(nil), p.Deck...)
		np.Graveyard = append([]string(nil), p.Graveyard...)
		np.Banished = append([]string(nil), p.Banished...)
		np.Board = make([]*BoardCard, len(p.Board))
		for i, bc := range p.Board {
			nb := *bc
			nb.EquippedCardIDs = append([]string(nil), bc.EquippedCardIDs...)
			np.Board[i] = &nb
		}
		np.SpellTraps = make([]*SpellTrapCard, len(p.SpellTraps))
		for i, st := range p.SpellTraps {
			ns := *st
			np.SpellTraps[i] = &ns
		}
		if p.FieldSpell != nil {
			fs := *p.FieldSpell
			np.FieldSpell = &fs
		}
		cp.Players[seat] = &np
	}
	cp.CurrentChain = make([]*ChainLink, len(gs.CurrentChain))
	for i, l := range gs.CurrentChain {
		nl := *l
		nl.TargetIDs = append([]string(nil), l.TargetIDs...)
		cp.CurrentChain[i] = &nl
	}
	cp.TemporaryModifiers = append([]TemporaryModifier(nil), gs.TemporaryModifiers...)
	cp.TurnRestrictions = append([]TurnRestriction(nil), gs.TurnRestrictions...)
	cp.CostModifiers = append([]CostModifier(nil), gs.CostModifiers...)
	cp.EffectsUsedThisTurn = make(map[string]bool, len(gs.EffectsUsedThisTurn))
	for k, v := range gs.EffectsUsedThisTurn {
		cp.EffectsUsedThisTurn[k] = v
	}
	cp.EffectsUsedThisDuel = make(map[string]bool, len(gs.EffectsUsedThisDuel))
	for k, v := range gs.EffectsUsedThisDuel {
		cp.EffectsUsedThisDuel[k] = v
	}
	cp.Cards = make(map[string]string, len(gs.Cards))
	for k, v := range gs.Cards {
		cp.Cards[k] = v
	}
	return &cp
}

// --- Lookups ---

// Definition returns the registry definition behind an instance id, or nil.
func (gs *GameState) Definition(instanceID string) *CardDefinition {
	defID, ok := gs.Cards[instanceID]
	if !ok {
		return nil
	}
	return gs.Defs.Lookup(defID)
}

// FindBoardCard searches both boards, host then away.
func (gs *GameState) FindBoardCard(instanceID string) (*BoardCard, Seat) {
	for _, seat := range Seats() {
		for _, bc := range gs.Players[seat].Board {
			if bc.InstanceID == instanceID {
				return bc, seat
			}
		}
	}
	return nil, ""
}

// FindSpellTrap searches both spell/trap zones (and field slots), host
// then away.
func (gs *GameState) FindSpellTrap(instanceID string) (*SpellTrapCard, Seat) {
	for _, seat := range Seats() {
		for _, st := range gs.Players[seat].SpellTraps {
			if st.InstanceID == instanceID {
				return st, seat
			}
		}
		if fs := gs.Players[seat].FieldSpell; fs != nil && fs.InstanceID == instanceID {
			return fs, seat
		}
	}
	return nil, ""
}

// HandContains reports whether the seat's hand holds the instance.
func (gs *GameState) HandContains(seat Seat, instanceID string) bool {
	for _, id := range gs.Players[seat].Hand {
		if id == instanceID {
			return true
		}
	}
	return false
}

// FaceUpMonsters returns the seat's face-up board cards in board order.
func (p *PlayerState) FaceUpMonsters() []*BoardCard {
	var out []*BoardCard
	for _, bc := range p.Board {
		if !bc.FaceDown {
			out = append(out, bc)
		}
	}
	return out
}

// boardCard returns the seat's board card with the given id, or nil.
func (p *PlayerState) boardCard(instanceID string) *BoardCard {
	for _, bc := range p.Board {
		if bc.InstanceID == instanceID {
			return bc
		}
	}
	return nil
}

// removeFromHand deletes an instance id from the hand, reporting success.
func (p *PlayerState) removeFromHand(instanceID string) bool {
	for i, id := range p.Hand {
		if id == instanceID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// removeFromBoard deletes a board card by id, reporting success.
func (p *PlayerState) removeFromBoard(instanceID string) bool {
	for i, bc := range p.Board {
		if bc.InstanceID == instanceID {
			p.Board = append(p.Board[:i], p.Board[i+1:]...)
			return true
		}
	}
	return false
}

// removeFromSpellTraps deletes a spell/trap card by id (including the field
// slot), reporting success.
func (p *PlayerState) removeFromSpellTraps(instanceID string) bool {
	for i, st := range p.SpellTraps {
		if st.InstanceID == instanceID {
			p.SpellTraps = append(p.SpellTraps[:i], p.SpellTraps[i+1:]...)
			return true
		}
	}
	if p.FieldSpell != nil && p.FieldSpell.InstanceID == instanceID {
		p.FieldSpell = nil
		return true
	}
	return false
}

// removeFromList deletes id from a zone list, reporting success.
func removeFromList(list *[]string, id string) bool {
	for i, v := range *list {
		if v == id {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return true
		}
	}
	return false
}

// EffectATK returns a board card's attack after boosts and temporary
// modifiers.
func (gs *GameState) EffectATK(bc *BoardCard) int {
	def := gs.Definition(bc.InstanceID)
	if def == nil {
		return 0
	}
	atk := def.Attack + bc.BoostAttack
	for _, m := range gs.TemporaryModifiers {
		if m.CardID == bc.InstanceID && m.Stat == "attack" {
			atk += m.Amount
		}
	}
	if atk < 0 {
		atk = 0
	}
	return atk
}

// EffectDEF returns a board card's defense after boosts and temporary
// modifiers.
func (gs *GameState) EffectDEF(bc *BoardCard) int {
	def := gs.Definition(bc.InstanceID)
	if def == nil {
		return 0
	}
	dfn := def.Defense + bc.BoostDefense
	for _, m := range gs.TemporaryModifiers {
		if m.CardID == bc.InstanceID && m.Stat == "defense" {
			dfn += m.Amount
		}
	}
	if dfn < 0 {
		dfn = 0
	}
	return dfn
}

// effectKey builds the usage-tracker key for an effect on an instance.
func effectKey(instanceID, effectID string) string {
	return instanceID + "/" + effectID
}
