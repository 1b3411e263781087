package engine

// --- Seats ---

// Seat identifies one of the two fixed duel participants.
type Seat string

const (
	SeatHost Seat = "host"
	SeatAway Seat = "away"
)

// Opponent returns the other seat.
func (s Seat) Opponent() Seat {
	if s == SeatHost {
		return SeatAway
	}
	return SeatHost
}

// Valid reports whether s is one of the two duel seats.
func (s Seat) Valid() bool {
	return s == SeatHost || s == SeatAway
}

// Seats lists both seats in board order (host first).
func Seats() [2]Seat {
	return [2]Seat{SeatHost, SeatAway}
}

// --- Phases ---

// Phase is one step of the per-turn cycle.
type Phase string

const (
	PhaseDraw           Phase = "draw"
	PhaseStandby        Phase = "standby"
	PhaseMain           Phase = "main"
	PhaseCombat         Phase = "combat"
	PhaseMain2          Phase = "main2"
	PhaseBreakdownCheck Phase = "breakdown_check"
	PhaseEnd            Phase = "end"
)

// nextPhase returns the phase that follows p within a turn.
// PhaseEnd wraps to PhaseDraw (the turn flip itself is handled by the
// advance-phase decision).
func nextPhase(p Phase) Phase {
	switch p {
	case PhaseDraw:
		return PhaseStandby
	case PhaseStandby:
		return PhaseMain
	case PhaseMain:
		return PhaseCombat
	case PhaseCombat:
		return PhaseMain2
	case PhaseMain2:
		return PhaseBreakdownCheck
	case PhaseBreakdownCheck:
		return PhaseEnd
	default:
		return PhaseDraw
	}
}

// IsMainPhase reports whether p is a main phase (main or main2).
func (p Phase) IsMainPhase() bool {
	return p == PhaseMain || p == PhaseMain2
}

// --- Positions ---

// Position is a board card's battle position.
type Position string

const (
	PositionAttack  Position = "attack"
	PositionDefense Position = "defense"
)

// --- Card types ---

// CardType is the broad class of a card definition.
type CardType string

const (
	CardTypeMonster CardType = "monster"
	CardTypeSpell   CardType = "spell"
	CardTypeTrap    CardType = "trap"
)

// SpellSubtype distinguishes spell timing rules.
type SpellSubtype string

const (
	SpellNormal     SpellSubtype = "normal"
	SpellQuickPlay  SpellSubtype = "quick-play"
	SpellContinuous SpellSubtype = "continuous"
	SpellField      SpellSubtype = "field"
)

// --- Rule constants ---

const (
	StartingLifePoints = 8000
	InitialHandSize    = 5
	MaxBoardSlots      = 5
	MaxSpellTrapSlots  = 5

	// Monsters of this level or higher require tributes to normal summon.
	TributeLevelThreshold = 5
	// Levels 7+ require a second tribute.
	DoubleTributeLevel = 7

	// Vice counters at or above this destroy the monster and credit the
	// opponent with a breakdown.
	BreakdownThreshold = 3
	// Breakdowns credited to a seat that win the duel outright.
	MaxBreakdownsToWin = 3
)

// TributesRequired returns the tribute count to normal summon a monster of
// the given level.
func TributesRequired(level int) int {
	if level < TributeLevelThreshold {
		return 0
	}
	if level < DoubleTributeLevel {
		return 1
	}
	return 2
}

// --- Win reasons ---

const (
	WinReasonLifePoints = "life_points"
	WinReasonBreakdown  = "breakdown"
	WinReasonSurrender  = "surrender"
	WinReasonDeckOut    = "deck_out"
)
