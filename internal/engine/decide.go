package engine

// Decide validates a command for a seat against a snapshot and returns the
// resulting events. Illegal, malformed, or out-of-turn commands return an
// empty list; the reducer is total and never panics on well-typed input.
//
// The same predicates drive LegalMoves: a command is accepted here iff it
// appears in the seat's legal-move enumeration.
func Decide(gs *GameState, seat Seat, cmd Command) []Event {
	if gs == nil || gs.GameOver || !seat.Valid() {
		return nil
	}

	// While a chain is open, priority is the only currency: everything
	// except chain responses (and conceding) waits.
	if len(gs.CurrentChain) > 0 && cmd.Type != CommandChainResponse && cmd.Type != CommandSurrender {
		return nil
	}

	switch cmd.Type {
	case CommandSummon:
		return decideSummon(gs, seat, cmd)
	case CommandSetMonster:
		return decideSetMonster(gs, seat, cmd)
	case CommandSetSpellTrap:
		return decideSetSpellTrap(gs, seat, cmd)
	case CommandFlipSummon:
		return decideFlipSummon(gs, seat, cmd)
	case CommandChangePosition:
		return decideChangePosition(gs, seat, cmd)
	case CommandActivateSpell:
		return decideActivateSpell(gs, seat, cmd)
	case CommandActivateSet:
		return decideActivateSet(gs, seat, cmd)
	case CommandActivateIgnition:
		return decideActivateIgnition(gs, seat, cmd)
	case CommandDeclareAttack:
		return decideDeclareAttack(gs, seat, cmd)
	case CommandAdvancePhase:
		return decideAdvancePhase(gs, seat, cmd)
	case CommandEndTurn:
		return decideEndTurn(gs, seat, cmd)
	case CommandChainResponse:
		return decideChainResponse(gs, seat, cmd)
	case CommandSurrender:
		return decideSurrender(gs, seat, cmd)
	default:
		return nil
	}
}
