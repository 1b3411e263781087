package engine

import "fmt"

// CommandType enumerates every player intent the engine understands.
type CommandType string

const (
	CommandSummon           CommandType = "summon"
	CommandSetMonster       CommandType = "set_monster"
	CommandSetSpellTrap     CommandType = "set_spell_trap"
	CommandFlipSummon       CommandType = "flip_summon"
	CommandChangePosition   CommandType = "change_position"
	CommandActivateSpell    CommandType = "activate_spell"    // spell from hand
	CommandActivateSet      CommandType = "activate_set"      // set trap/quick-play
	CommandActivateIgnition CommandType = "activate_ignition" // board monster effect
	CommandDeclareAttack    CommandType = "declare_attack"
	CommandAdvancePhase     CommandType = "advance_phase"
	CommandEndTurn          CommandType = "end_turn"
	CommandChainResponse    CommandType = "chain_response"
	CommandSurrender        CommandType = "surrender"
)

// Command is a player intent. Illegal or malformed commands decide to an
// empty event list; they never error.
type Command struct {
	Type CommandType `json:"type"`

	// Card being summoned, set, flipped, activated, or attacking.
	CardID string `json:"cardId,omitempty"`

	// Tribute payments for a high-level summon.
	TributeIDs []string `json:"tributeIds,omitempty"`

	// Attack target; empty string declares a direct attack.
	TargetID string `json:"targetId,omitempty"`

	// Explicit effect targets.
	TargetIDs []string `json:"targetIds,omitempty"`

	// Which effect on the card is being activated.
	EffectIndex int `json:"effectIndex,omitempty"`

	// Chain response: relinquish priority instead of activating.
	Pass bool `json:"pass,omitempty"`
}

func (c Command) String() string {
	switch c.Type {
	case CommandDeclareAttack:
		if c.TargetID == "" {
			return fmt.Sprintf("%s %s (direct)", c.Type, c.CardID)
		}
		return fmt.Sprintf("%s %s -> %s", c.Type, c.CardID, c.TargetID)
	case CommandChainResponse:
		if c.Pass {
			return "chain_response pass"
		}
		return fmt.Sprintf("chain_response activate %s", c.CardID)
	case CommandAdvancePhase, CommandEndTurn, CommandSurrender:
		return string(c.Type)
	default:
		return fmt.Sprintf("%s %s", c.Type, c.CardID)
	}
}

// Signature is a stable identity for legality comparisons: two commands
// with the same signature are the same move.
func (c Command) Signature() string {
	return fmt.Sprintf("%s|%s|%v|%s|%v|%d|%v",
		c.Type, c.CardID, c.TributeIDs, c.TargetID, c.TargetIDs, c.EffectIndex, c.Pass)
}
