package states

import "fmt"

// GamePhase represents the current phase of a session
type GamePhase int

const (
	// PhaseInitializing - map generation, ship placement
	PhaseInitializing GamePhase = iota

	// PhaseSailing - turns advance, the player is at sea
	PhaseSailing

	// PhaseDocked - moored at a port; only menu actions
	PhaseDocked

	// PhaseEnding - outcome decided, final bookkeeping
	PhaseEnding

	// PhaseEnded - final state
	PhaseEnded

	// PhaseError - an invariant broke; the session is over
	PhaseError
)

var phaseNames = map[GamePhase]string{
	PhaseInitializing: "Initializing",
	PhaseSailing:      "Sailing",
	PhaseDocked:       "Docked",
	PhaseEnding:       "Ending",
	PhaseEnded:        "Ended",
	PhaseError:        "Error",
}

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", int(p))
}

// IsTerminal returns true if the phase represents a terminal state
func (p GamePhase) IsTerminal() bool {
	return p == PhaseEnded || p == PhaseError
}

// CanReceiveActions returns true if the session accepts any player action in this phase
func (p GamePhase) CanReceiveActions() bool {
	return p == PhaseSailing || p == PhaseDocked
}

// CanAdvanceTurn returns true if turn-advancing actions are allowed
func (p GamePhase) CanAdvanceTurn() bool {
	return p == PhaseSailing
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseInitializing:
		return []GamePhase{PhaseSailing, PhaseError}
	case PhaseSailing:
		return []GamePhase{PhaseDocked, PhaseEnding, PhaseError}
	case PhaseDocked:
		return []GamePhase{PhaseSailing, PhaseEnding, PhaseError}
	case PhaseEnding:
		return []GamePhase{PhaseEnded, PhaseError}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a GamePhase
func ParsePhase(s string) (GamePhase, error) {
	for p, name := range phaseNames {
		if name == s {
			return p, nil
		}
	}
	return PhaseInitializing, fmt.Errorf("unknown phase %q", s)
}
