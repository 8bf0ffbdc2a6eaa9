package game

import (
	"fmt"

	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
)

// ActionState tracks a submitted action through validation
type ActionState int

const (
	ActionIdle ActionState = iota
	ActionValidating
	ActionApplied
	ActionRejected
)

func (s ActionState) String() string {
	switch s {
	case ActionIdle:
		return "idle"
	case ActionValidating:
		return "validating"
	case ActionApplied:
		return "applied"
	case ActionRejected:
		return "rejected"
	default:
		return fmt.Sprintf("ActionState(%d)", int(s))
	}
}

// ActionOutcome reports what happened to one submitted action
type ActionOutcome struct {
	Action core.Action
	State  ActionState
	// Rejection is set when State is ActionRejected
	Rejection *core.Impossible
	// TurnAdvanced is true when the end-of-turn sequence ran
	TurnAdvanced bool
	// Turn is the turn counter after the action resolved
	Turn int
}
