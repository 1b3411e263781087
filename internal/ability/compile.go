// Package ability compiles author-facing ability records — a trigger
// keyword, an optional speed override, target keywords, and ordered
// operation strings — into the structured effect definitions the engine
// interprets. Authoring stays close to prose; everything executable is
// produced here.
package ability

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/peterkuimelis/vicegrid/internal/engine"
)

// Record is one authored ability as it appears in the card catalog.
type Record struct {
	Trigger    string   `yaml:"trigger" json:"trigger"`
	Speed      any      `yaml:"speed,omitempty" json:"speed,omitempty"`
	Targets    []string `yaml:"targets,omitempty" json:"targets,omitempty"`
	Operations []string `yaml:"operations,omitempty" json:"operations,omitempty"`
}

// archetypeTargets are the monster archetype keywords the card pool uses;
// they behave like alliedStereotypes.
var archetypeTargets = map[string]bool{
	"syntheticStereotypes": true,
	"wraithStereotypes":    true,
	"enforcerStereotypes":  true,
	"oracleStereotypes":    true,
	"alliedStereotypes":    true,
}

// Compile turns one ability record into an effect definition with id
// eff_<index>. Records whose operations all compile to nothing are
// dropped: the second return is false.
func Compile(rec Record, index int) (engine.EffectDefinition, bool) {
	var actions []engine.EffectAction
	for _, op := range rec.Operations {
		if a, ok := compileOperation(op); ok {
			actions = append(actions, a)
		}
	}
	if len(actions) == 0 {
		return engine.EffectDefinition{}, false
	}

	def := engine.EffectDefinition{
		ID:          fmt.Sprintf("eff_%d", index),
		Type:        effectType(rec.Trigger, rec.Speed),
		OncePerTurn: rec.Trigger == "OnMainPhase" || rec.Trigger == "OnSummon",
		Actions:     actions,
		Description: strings.Join(rec.Operations, "; "),
	}
	def.Filter, def.TargetCount = targetFilter(rec.Targets)
	return def, true
}

// CompileAll compiles a card's ability list. A nil result means "no
// effects" — callers that serialize card definitions treat that as no
// effects field at all, which is distinct from an empty list.
func CompileAll(recs []Record) []engine.EffectDefinition {
	var out []engine.EffectDefinition
	for i, rec := range recs {
		if def, ok := Compile(rec, i); ok {
			out = append(out, def)
		}
	}
	return out
}

// effectType maps the trigger keyword to an effect type, then lets an
// explicit speed override win.
func effectType(trigger string, speed any) engine.EffectType {
	t := engine.EffectTrigger
	switch trigger {
	case "OnSummon":
		t = engine.EffectOnSummon
	case "OnMainPhase":
		t = engine.EffectIgnition
	case "OnTrapTargetingYou":
		t = engine.EffectQuick
	case "OnTurnStart", "OnGameStart":
		t = engine.EffectContinuous
	case "OnSpellActivation", "OnSpellPlayed", "OnTrapActivation",
		"OnAttackDeclaration", "OnDestroy":
		t = engine.EffectTrigger
	}

	switch v := speed.(type) {
	case int:
		if v == 2 {
			return engine.EffectQuick
		}
	case float64:
		if v == 2 {
			return engine.EffectQuick
		}
	case string:
		switch v {
		case "2", "quick":
			return engine.EffectQuick
		case "ignition":
			return engine.EffectIgnition
		}
	}
	return t
}

// targetFilter maps the first target keyword to a filter; later keywords
// are ignored.
func targetFilter(targets []string) (*engine.TargetFilter, int) {
	if len(targets) == 0 {
		return nil, 0
	}
	kw := targets[0]
	switch kw {
	case "self":
		return &engine.TargetFilter{Owner: "self"}, 0
	case "opponent":
		return &engine.TargetFilter{Owner: "opponent"}, 0
	case "bothPlayers", "allPlayers":
		return &engine.TargetFilter{Owner: "any"}, 0
	case "allStereotypes":
		return &engine.TargetFilter{Owner: "any", CardType: engine.CardTypeMonster}, 0
	case "spells":
		return &engine.TargetFilter{Owner: "any", CardType: engine.CardTypeSpell}, 0
	case "traps":
		return &engine.TargetFilter{Owner: "any", CardType: engine.CardTypeTrap}, 0
	case "attacker", "opponentCard", "targetCard", "destroyedCard":
		return &engine.TargetFilter{Owner: "opponent"}, 1
	}
	if archetypeTargets[kw] {
		return &engine.TargetFilter{Owner: "self", CardType: engine.CardTypeMonster}, 0
	}
	if strings.EqualFold(kw, "field") || strings.EqualFold(kw, "environment") {
		return &engine.TargetFilter{Owner: "any", Zone: "board"}, 0
	}
	return nil, 0
}

var (
	amountRe = regexp.MustCompile(`-?\d+`)
	multRe   = regexp.MustCompile(`\*\s*(\d+)`)
)

// firstAmount extracts the first signed integer literal, reporting whether
// one was present. Variable amounts ("equal to graveyard count") compile
// to 0 by design; resolving them at runtime is an interpreter extension
// point, not a compiler concern.
func firstAmount(text string) (int, bool) {
	m := amountRe.FindString(text)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// compileOperation translates one "KEYWORD: free-text" operation string.
// Unrecognized keywords compile to nothing and are silently dropped.
func compileOperation(op string) (engine.EffectAction, bool) {
	op = strings.TrimSpace(op)
	keyword, text, _ := strings.Cut(op, ":")
	keyword = strings.TrimSpace(keyword)
	text = strings.TrimSpace(text)
	lower := strings.ToLower(text)

	switch keyword {
	case "DRAW":
		count, ok := firstAmount(text)
		if !ok || count <= 0 {
			count = 1
		}
		return engine.EffectAction{Type: engine.ActionDraw, Count: count}, true

	case "DISCARD":
		if strings.HasPrefix(lower, "all") {
			return engine.EffectAction{Type: engine.ActionDiscard, Count: engine.DiscardAll, Target: engine.TargetOpponent}, true
		}
		count, ok := firstAmount(text)
		if !ok || count <= 0 {
			count = 1
		}
		target := engine.TargetSelf
		if strings.Contains(lower, "opponent") {
			target = engine.TargetOpponent
		}
		return engine.EffectAction{Type: engine.ActionDiscard, Count: count, Target: target}, true

	case "MODIFY_STAT", "CONDITIONAL_MODIFY_STAT", "RANDOM_MODIFY_STAT":
		return compileStatChange(text, lower)

	case "SET_STAT":
		amount, ok := firstAmount(text)
		if !ok {
			amount = 1000
		}
		typ := engine.ActionBoostAttack
		if strings.Contains(lower, "stability") {
			typ = engine.ActionBoostDefense
		}
		return engine.EffectAction{Type: typ, Amount: amount, Duration: "permanent"}, true

	case "RANDOM_GAIN":
		amount, ok := firstAmount(text)
		if !ok || amount <= 0 {
			amount = 500
		}
		return engine.EffectAction{Type: engine.ActionHeal, Amount: amount}, true

	case "REDUCE_DAMAGE":
		// Percentages land on a 0-1000 scale; the default halves damage.
		amount := 500
		if n, ok := firstAmount(text); ok && strings.Contains(text, "%") {
			amount = n * 10
		} else if ok {
			amount = n
		}
		return engine.EffectAction{Type: engine.ActionApplyRestriction, Kind: "reduce_damage", Amount: amount, Target: engine.TargetSelf}, true

	case "DESTROY":
		switch {
		case strings.Contains(lower, "spell") || strings.Contains(lower, "trap"):
			return engine.EffectAction{Type: engine.ActionDestroy, Target: engine.TargetAllSpellsTraps}, true
		case strings.Contains(lower, "all") && strings.Contains(lower, "opponent"):
			return engine.EffectAction{Type: engine.ActionDestroy, Target: engine.TargetAllOpponentMonsters}, true
		default:
			return engine.EffectAction{Type: engine.ActionDestroy, Target: engine.TargetSelected}, true
		}

	case "NEGATE":
		return engine.EffectAction{Type: engine.ActionNegate, Target: engine.TargetLastChainLink}, true

	case "MOVE_TO_ZONE":
		switch {
		case strings.Contains(lower, "to hand"):
			return engine.EffectAction{Type: engine.ActionReturnToHand}, true
		case strings.Contains(lower, "to deck"):
			return engine.EffectAction{Type: engine.ActionBanish}, true
		default:
			return engine.EffectAction{Type: engine.ActionReturnToHand}, true
		}

	case "SPECIAL_SUMMON":
		from := "graveyard"
		if strings.Contains(lower, "hand") {
			from = "hand"
		} else if strings.Contains(lower, "banish") {
			from = "banished"
		}
		return engine.EffectAction{Type: engine.ActionSpecialSummon, From: from}, true

	case "CHANGE_POSITION":
		var pos engine.Position
		if strings.Contains(lower, "attack") {
			pos = engine.PositionAttack
		} else if strings.Contains(lower, "defense") {
			pos = engine.PositionDefense
		}
		return engine.EffectAction{Type: engine.ActionChangePosition, Position: pos}, true

	case "ADD_VICE", "REMOVE_VICE":
		amount, ok := firstAmount(text)
		if !ok || amount <= 0 {
			amount = 1
		}
		typ := engine.ActionAddVice
		if keyword == "REMOVE_VICE" {
			typ = engine.ActionRemoveVice
		}
		return engine.EffectAction{Type: typ, Amount: amount}, true

	case "APPLY_RESTRICTION":
		kind := "no_attack"
		if strings.Contains(lower, "summon") {
			kind = "no_summon"
		}
		return engine.EffectAction{Type: engine.ActionApplyRestriction, Kind: kind}, true

	case "MODIFY_COST":
		amount, _ := firstAmount(text)
		return engine.EffectAction{Type: engine.ActionModifyCost, Kind: "activation", Amount: amount}, true

	case "VIEW_TOP_CARDS":
		count, ok := firstAmount(text)
		if !ok || count <= 0 {
			count = 1
		}
		return engine.EffectAction{Type: engine.ActionViewTopCards, Count: count}, true

	case "REARRANGE_TOP_CARDS":
		count, ok := firstAmount(text)
		if !ok || count <= 0 {
			count = 1
		}
		return engine.EffectAction{Type: engine.ActionRearrangeTop, Count: count}, true
	}

	return engine.EffectAction{}, false
}

// compileStatChange handles the MODIFY_STAT family: reputation is the
// attack stat, stability the defense stat. Positive literals boost;
// negative literals become damage to the opponent; multiplicative forms
// boost by the multiplier.
func compileStatChange(text, lower string) (engine.EffectAction, bool) {
	boost := engine.ActionBoostAttack
	if strings.Contains(lower, "stability") {
		boost = engine.ActionBoostDefense
	}

	if m := multRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return engine.EffectAction{Type: boost, Amount: n, Duration: "permanent"}, true
	}

	amount, ok := firstAmount(text)
	if !ok {
		// Variable amount; compiles to a zero boost.
		return engine.EffectAction{Type: boost, Amount: 0, Duration: "permanent"}, true
	}
	if amount < 0 {
		return engine.EffectAction{Type: engine.ActionDamage, Amount: -amount, Target: engine.TargetOpponent}, true
	}
	duration := "permanent"
	if strings.Contains(lower, "this turn") || strings.Contains(lower, "until end") {
		duration = "turn"
	}
	return engine.EffectAction{Type: boost, Amount: amount, Duration: duration}, true
}
