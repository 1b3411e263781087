package engine

// LegalMoves enumerates every command a seat could currently submit, by
// generating candidates and filtering each one through Decide. Keeping the
// filter on Decide itself is what guarantees the legality/enumeration
// symmetry the engine promises its callers.
func LegalMoves(gs *GameState, seat Seat) []Command {
	if gs == nil || gs.GameOver || !seat.Valid() {
		return nil
	}

	var out []Command
	keep := func(c Command) {
		if len(Decide(gs, seat, c)) > 0 {
			out = append(out, c)
		}
	}

	keep(Command{Type: CommandSurrender})

	if len(gs.CurrentChain) > 0 {
		if seat != gs.CurrentPriorityPlayer {
			return out
		}
		keep(Command{Type: CommandChainResponse, Pass: true})
		enumerateResponses(gs, seat, keep)
		return out
	}

	if seat != gs.CurrentTurnPlayer {
		return out
	}

	keep(Command{Type: CommandAdvancePhase})
	keep(Command{Type: CommandEndTurn})

	p := gs.Players[seat]

	for _, id := range p.Hand {
		def := gs.Definition(id)
		if def == nil {
			continue
		}
		switch def.Type {
		case CardTypeMonster:
			need := TributesRequired(def.Level)
			if need == 0 {
				keep(Command{Type: CommandSummon, CardID: id})
				keep(Command{Type: CommandSetMonster, CardID: id})
				continue
			}
			for _, combo := range tributeCombos(p, need) {
				keep(Command{Type: CommandSummon, CardID: id, TributeIDs: combo})
				keep(Command{Type: CommandSetMonster, CardID: id, TributeIDs: combo})
			}
		case CardTypeSpell:
			keep(Command{Type: CommandSetSpellTrap, CardID: id})
			for ei := range def.Effects {
				for _, targets := range targetOptions(gs, seat, &def.Effects[ei]) {
					keep(Command{Type: CommandActivateSpell, CardID: id, EffectIndex: ei, TargetIDs: targets})
				}
			}
		case CardTypeTrap:
			keep(Command{Type: CommandSetSpellTrap, CardID: id})
		}
	}

	opp := gs.Players[seat.Opponent()]
	for _, bc := range p.Board {
		keep(Command{Type: CommandFlipSummon, CardID: bc.InstanceID})
		keep(Command{Type: CommandChangePosition, CardID: bc.InstanceID})

		if !bc.FaceDown {
			if def := gs.Definition(bc.InstanceID); def != nil {
				for ei := range def.Effects {
					if def.Effects[ei].Type != EffectIgnition {
						continue
					}
					for _, targets := range targetOptions(gs, seat, &def.Effects[ei]) {
						keep(Command{Type: CommandActivateIgnition, CardID: bc.InstanceID, EffectIndex: ei, TargetIDs: targets})
					}
				}
			}
		}

		for _, target := range opp.FaceUpMonsters() {
			keep(Command{Type: CommandDeclareAttack, CardID: bc.InstanceID, TargetID: target.InstanceID})
		}
		// Direct attack candidate; Decide rejects it while face-up
		// opposition remains.
		keep(Command{Type: CommandDeclareAttack, CardID: bc.InstanceID, TargetID: ""})
	}

	for _, st := range p.SpellTraps {
		if !st.FaceDown {
			continue
		}
		def := gs.Definition(st.InstanceID)
		if def == nil {
			continue
		}
		for ei := range def.Effects {
			for _, targets := range targetOptions(gs, seat, &def.Effects[ei]) {
				keep(Command{Type: CommandActivateSet, CardID: st.InstanceID, EffectIndex: ei, TargetIDs: targets})
			}
		}
	}

	return out
}

// enumerateResponses generates chain-response candidates: set traps, set
// quick-plays, and board quick effects.
func enumerateResponses(gs *GameState, seat Seat, keep func(Command)) {
	p := gs.Players[seat]
	for _, st := range p.SpellTraps {
		if !st.FaceDown {
			continue
		}
		def := gs.Definition(st.InstanceID)
		if def == nil {
			continue
		}
		for ei := range def.Effects {
			for _, targets := range targetOptions(gs, seat, &def.Effects[ei]) {
				keep(Command{Type: CommandChainResponse, CardID: st.InstanceID, EffectIndex: ei, TargetIDs: targets})
			}
		}
	}
	for _, bc := range p.FaceUpMonsters() {
		def := gs.Definition(bc.InstanceID)
		if def == nil {
			continue
		}
		for ei := range def.Effects {
			if def.Effects[ei].Type != EffectQuick {
				continue
			}
			for _, targets := range targetOptions(gs, seat, &def.Effects[ei]) {
				keep(Command{Type: CommandChainResponse, CardID: bc.InstanceID, EffectIndex: ei, TargetIDs: targets})
			}
		}
	}
}

// tributeCombos lists the distinct tribute payments of the required size
// from a seat's face-up monsters.
func tributeCombos(p *PlayerState, need int) [][]string {
	ups := p.FaceUpMonsters()
	var out [][]string
	switch need {
	case 1:
		for _, bc := range ups {
			out = append(out, []string{bc.InstanceID})
		}
	case 2:
		for i := 0; i < len(ups); i++ {
			for j := i + 1; j < len(ups); j++ {
				out = append(out, []string{ups[i].InstanceID, ups[j].InstanceID})
			}
		}
	}
	return out
}

// targetOptions enumerates target selections for an effect. Untargeted
// effects yield a single empty selection; single-target effects yield one
// option per eligible candidate; wider selections take the first eligible
// candidates in board order.
func targetOptions(gs *GameState, seat Seat, eff *EffectDefinition) [][]string {
	if eff.TargetCount <= 0 {
		return [][]string{nil}
	}
	var candidates []string
	for _, s := range Seats() {
		for _, bc := range gs.Players[s].Board {
			if matchesFilter(gs, seat, eff.Filter, bc.InstanceID) {
				candidates = append(candidates, bc.InstanceID)
			}
		}
	}
	for _, s := range Seats() {
		for _, st := range gs.Players[s].SpellTraps {
			if matchesFilter(gs, seat, eff.Filter, st.InstanceID) {
				candidates = append(candidates, st.InstanceID)
			}
		}
	}
	if len(candidates) < eff.TargetCount {
		return nil
	}
	if eff.TargetCount == 1 {
		out := make([][]string, 0, len(candidates))
		for _, id := range candidates {
			out = append(out, []string{id})
		}
		return out
	}
	return [][]string{candidates[:eff.TargetCount]}
}
