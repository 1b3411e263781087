package engine

// Seat-scoped and spectator projections of a snapshot. These are the only
// shapes the boundary should ship to clients: the opponent's hand contents
// and deck order never leave the engine.

// CardView is a visible card.
type CardView struct {
	InstanceID string `json:"instanceId"`
	Name       string `json:"name"`
	Type       string `json:"type,omitempty"`
	Level      int    `json:"level,omitempty"`
	Attack     int    `json:"attack,omitempty"`
	Defense    int    `json:"defense,omitempty"`
}

// BoardCardView is one board slot. Face-down opposing cards are redacted
// to shape only.
type BoardCardView struct {
	InstanceID   string   `json:"instanceId"`
	Name         string   `json:"name,omitempty"`
	Position     Position `json:"position"`
	FaceDown     bool     `json:"faceDown,omitempty"`
	Attack       int      `json:"attack,omitempty"`
	Defense      int      `json:"defense,omitempty"`
	ViceCounters int      `json:"viceCounters,omitempty"`
	CanAttack    bool     `json:"canAttack,omitempty"`
}

// SpellTrapView is one spell/trap slot, redacted when face-down and owned
// by the other seat.
type SpellTrapView struct {
	InstanceID string `json:"instanceId"`
	Name       string `json:"name,omitempty"`
	FaceDown   bool   `json:"faceDown,omitempty"`
	Activated  bool   `json:"activated,omitempty"`
}

// SideView is one seat's visible half of the duel.
type SideView struct {
	LifePoints       int             `json:"lifePoints"`
	Hand             []CardView      `json:"hand,omitempty"`
	HandCount        int             `json:"handCount"`
	DeckCount        int             `json:"deckCount"`
	Board            []BoardCardView `json:"board"`
	SpellTraps       []SpellTrapView `json:"spellTraps"`
	FieldSpell       *SpellTrapView  `json:"fieldSpell,omitempty"`
	GraveyardCount   int             `json:"graveyardCount"`
	BanishedCount    int             `json:"banishedCount"`
	BreakdownsCaused int             `json:"breakdownsCaused"`
}

// PlayerView is the duel from one seat's perspective.
type PlayerView struct {
	Seat       Seat     `json:"seat"`
	You        SideView `json:"you"`
	Opponent   SideView `json:"opponent"`
	TurnNumber int      `json:"turnNumber"`
	TurnPlayer Seat     `json:"turnPlayer"`
	Phase      Phase    `json:"phase"`
	ChainDepth int      `json:"chainDepth"`
	Priority   Seat     `json:"priority,omitempty"`
	GameOver   bool     `json:"gameOver,omitempty"`
	Winner     Seat     `json:"winner,omitempty"`
	WinReason  string   `json:"winReason,omitempty"`
}

// BuildPlayerView projects a snapshot for one seat, hiding the opponent's
// hidden information.
func BuildPlayerView(gs *GameState, seat Seat) PlayerView {
	return PlayerView{
		Seat:       seat,
		You:        buildSide(gs, seat, true),
		Opponent:   buildSide(gs, seat.Opponent(), false),
		TurnNumber: gs.TurnNumber,
		TurnPlayer: gs.CurrentTurnPlayer,
		Phase:      gs.CurrentPhase,
		ChainDepth: len(gs.CurrentChain),
		Priority:   gs.CurrentPriorityPlayer,
		GameOver:   gs.GameOver,
		Winner:     gs.Winner,
		WinReason:  gs.WinReason,
	}
}

// BuildSpectatorView projects a snapshot with both hands hidden.
type SpectatorView struct {
	Host       SideView `json:"host"`
	Away       SideView `json:"away"`
	TurnNumber int      `json:"turnNumber"`
	TurnPlayer Seat     `json:"turnPlayer"`
	Phase      Phase    `json:"phase"`
	ChainDepth int      `json:"chainDepth"`
	GameOver   bool     `json:"gameOver,omitempty"`
	Winner     Seat     `json:"winner,omitempty"`
	WinReason  string   `json:"winReason,omitempty"`
}

func BuildSpectatorView(gs *GameState) SpectatorView {
	return SpectatorView{
		Host:       buildSide(gs, SeatHost, false),
		Away:       buildSide(gs, SeatAway, false),
		TurnNumber: gs.TurnNumber,
		TurnPlayer: gs.CurrentTurnPlayer,
		Phase:      gs.CurrentPhase,
		ChainDepth: len(gs.CurrentChain),
		GameOver:   gs.GameOver,
		Winner:     gs.Winner,
		WinReason:  gs.WinReason,
	}
}

func buildSide(gs *GameState, seat Seat, own bool) SideView {
	p := gs.Players[seat]
	side := SideView{
		LifePoints:       p.LifePoints,
		HandCount:        len(p.Hand),
		DeckCount:        len(p.Deck),
		GraveyardCount:   len(p.Graveyard),
		BanishedCount:    len(p.Banished),
		BreakdownsCaused: p.BreakdownsCaused,
	}
	if own {
		for _, id := range p.Hand {
			side.Hand = append(side.Hand, cardView(gs, id))
		}
	}
	for _, bc := range p.Board {
		v := BoardCardView{
			InstanceID:   bc.InstanceID,
			Position:     bc.Position,
			FaceDown:     bc.FaceDown,
			ViceCounters: bc.ViceCounters,
		}
		if own || !bc.FaceDown {
			if def := gs.Definition(bc.InstanceID); def != nil {
				v.Name = def.Name
				v.Attack = gs.EffectATK(bc)
				v.Defense = gs.EffectDEF(bc)
			}
			v.CanAttack = bc.CanAttack && !bc.HasAttackedThisTurn
		}
		side.Board = append(side.Board, v)
	}
	for _, st := range p.SpellTraps {
		side.SpellTraps = append(side.SpellTraps, spellTrapView(gs, st, own))
	}
	if p.FieldSpell != nil {
		v := spellTrapView(gs, p.FieldSpell, own)
		side.FieldSpell = &v
	}
	return side
}

func spellTrapView(gs *GameState, st *SpellTrapCard, own bool) SpellTrapView {
	v := SpellTrapView{
		InstanceID: st.InstanceID,
		FaceDown:   st.FaceDown,
		Activated:  st.Activated,
	}
	if own || !st.FaceDown {
		if def := gs.Definition(st.InstanceID); def != nil {
			v.Name = def.Name
		}
	}
	return v
}

func cardView(gs *GameState, instanceID string) CardView {
	v := CardView{InstanceID: instanceID}
	if def := gs.Definition(instanceID); def != nil {
		v.Name = def.Name
		v.Type = string(def.Type)
		v.Level = def.Level
		v.Attack = def.Attack
		v.Defense = def.Defense
	}
	return v
}
