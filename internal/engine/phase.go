package engine

// Phase machine. ADVANCE_PHASE is the only way out of non-interactive
// phases; END_TURN shortcuts from main2 through breakdown_check and end to
// the opponent's draw phase.

// emitTurnFlip hands the turn to the other seat: per-turn trackers reset,
// turn number increments, and the new turn player draws (or loses to
// deck-out).
func emitTurnFlip(e *emitter) {
	finishing := e.gs.CurrentTurnPlayer
	next := finishing.Opponent()

	e.emit(Event{Type: EventTurnEnded, Seat: finishing})
	e.emit(Event{Type: EventTurnStarted, Seat: next, Turn: e.gs.TurnNumber + 1})
	e.emit(Event{Type: EventPhaseChanged, Phase: PhaseDraw})

	p := e.gs.Players[next]
	if len(p.Deck) == 0 {
		e.emit(Event{Type: EventGameEnded, Winner: finishing, Reason: WinReasonDeckOut})
		return
	}
	e.emit(Event{Type: EventCardDrawn, Seat: next, CardID: p.Deck[0]})
}

// decideAdvancePhase moves the turn player to the next phase. Entering
// breakdown_check immediately evaluates the vice subsystem; advancing out
// of the end phase flips the turn.
func decideAdvancePhase(gs *GameState, seat Seat, cmd Command) []Event {
	if len(gs.CurrentChain) > 0 || seat != gs.CurrentTurnPlayer {
		return nil
	}

	e := newEmitter(gs)
	switch gs.CurrentPhase {
	case PhaseEnd:
		emitTurnFlip(e)
	case PhaseMain2:
		e.emit(Event{Type: EventPhaseChanged, Phase: PhaseBreakdownCheck})
		sweepBreakdowns(e)
	default:
		e.emit(Event{Type: EventPhaseChanged, Phase: nextPhase(gs.CurrentPhase)})
	}
	return e.events
}

// decideEndTurn ends the turn from main2, running the breakdown check and
// end phase on the way out.
func decideEndTurn(gs *GameState, seat Seat, cmd Command) []Event {
	if len(gs.CurrentChain) > 0 || seat != gs.CurrentTurnPlayer {
		return nil
	}
	if gs.CurrentPhase != PhaseMain2 {
		return nil
	}

	e := newEmitter(gs)
	e.emit(Event{Type: EventPhaseChanged, Phase: PhaseBreakdownCheck})
	sweepBreakdowns(e)
	if e.gs.GameOver {
		return e.events
	}
	e.emit(Event{Type: EventPhaseChanged, Phase: PhaseEnd})
	emitTurnFlip(e)
	return e.events
}

// decideSurrender concedes the duel for the acting seat.
func decideSurrender(gs *GameState, seat Seat, cmd Command) []Event {
	e := newEmitter(gs)
	e.emit(Event{Type: EventGameEnded, Winner: seat.Opponent(), Reason: WinReasonSurrender})
	return e.events
}
