package states

import (
	"fmt"
	"sync"
	"time"

	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
	"github.com/mitchelldurbincs/Archipelago/internal/game/events"
)

// State represents a session state with lifecycle callbacks
type State interface {
	// Phase returns the GamePhase this state represents
	Phase() GamePhase

	// Enter is called when transitioning into this state
	Enter(ctx *GameContext) error

	// Exit is called when transitioning out of this state
	Exit(ctx *GameContext) error

	// Validate checks if the state is valid given the context
	Validate(ctx *GameContext) error
}

// Transition is one entry in the voyage logbook
type Transition struct {
	From      GamePhase
	To        GamePhase
	Timestamp time.Time
	Reason    string
}

// logbookSize bounds the logbook; a long voyage mostly adds dock visits
const logbookSize = 256

// StateMachine walks one session from setup to its end. Sessions are never
// restarted: a new voyage gets a new machine.
type StateMachine struct {
	mu       sync.RWMutex
	current  GamePhase
	states   map[GamePhase]State
	context  *GameContext
	logbook  []Transition
	eventBus events.Publisher
}

// NewStateMachine creates a machine in PhaseInitializing. eventBus may be nil.
func NewStateMachine(ctx *GameContext, eventBus events.Publisher) *StateMachine {
	sm := &StateMachine{
		current:  PhaseInitializing,
		states:   make(map[GamePhase]State),
		context:  ctx,
		eventBus: eventBus,
	}
	for _, s := range []State{
		NewInitializingState(),
		NewSailingState(),
		NewDockedState(),
		NewEndingState(),
		NewEndedState(),
		NewErrorState(),
	} {
		sm.states[s.Phase()] = s
	}
	return sm
}

// RegisterState replaces the implementation behind a phase
func (sm *StateMachine) RegisterState(state State) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.states[state.Phase()] = state
}

func (sm *StateMachine) CurrentPhase() GamePhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.current
}

// GetContext returns the session context
func (sm *StateMachine) GetContext() *GameContext {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.context
}

func (sm *StateMachine) CanTransitionTo(target GamePhase) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.current.CanTransitionTo(target)
}

// TransitionTo moves to target if the phase table allows it and the target
// state accepts the context
func (sm *StateMachine) TransitionTo(target GamePhase, reason string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.transitionLocked(target, reason)
}

// Moor records the port and docks there
func (sm *StateMachine) Moor(port core.Coordinate) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	prevPort, prevHas := sm.context.Port, sm.context.HasPort
	sm.context.Port, sm.context.HasPort = port, true
	if err := sm.transitionLocked(PhaseDocked, fmt.Sprintf("moored at %s", port)); err != nil {
		sm.context.Port, sm.context.HasPort = prevPort, prevHas
		return err
	}
	return nil
}

// CastOff leaves port and returns to sea
func (sm *StateMachine) CastOff() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.current != PhaseDocked {
		return fmt.Errorf("cannot cast off while %s", sm.current)
	}
	return sm.transitionLocked(PhaseSailing, fmt.Sprintf("cast off from %s", sm.context.Port))
}

// Finish records the outcome and closes the session through Ending
func (sm *StateMachine) Finish(outcome, reason string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	prev := sm.context.Outcome
	sm.context.Outcome = outcome
	if err := sm.transitionLocked(PhaseEnding, reason); err != nil {
		sm.context.Outcome = prev
		return fmt.Errorf("ending session: %w", err)
	}
	if err := sm.transitionLocked(PhaseEnded, "session closed"); err != nil {
		return fmt.Errorf("closing session: %w", err)
	}
	return nil
}

// Fail records err on the context and moves to PhaseError
func (sm *StateMachine) Fail(err error) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.context.Error = err
	return sm.transitionLocked(PhaseError, err.Error())
}

// Logbook returns a copy of the most recent transitions, oldest first
func (sm *StateMachine) Logbook() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	out := make([]Transition, len(sm.logbook))
	copy(out, sm.logbook)
	return out
}

func (sm *StateMachine) transitionLocked(target GamePhase, reason string) error {
	from := sm.current
	if !from.CanTransitionTo(target) {
		return fmt.Errorf("invalid transition from %s to %s", from, target)
	}
	next, ok := sm.states[target]
	if !ok {
		return fmt.Errorf("no state implementation for phase %s", target)
	}
	if err := next.Validate(sm.context); err != nil {
		return fmt.Errorf("target state validation failed: %w", err)
	}

	if prev, ok := sm.states[from]; ok {
		if err := prev.Exit(sm.context); err != nil {
			sm.context.Logger.Error().
				Err(err).
				Str("from_phase", from.String()).
				Str("to_phase", target.String()).
				Msg("Error exiting state")
		}
	}

	sm.current = target
	if err := next.Enter(sm.context); err != nil {
		sm.current = from
		return fmt.Errorf("failed to enter state %s: %w", target, err)
	}

	sm.logbook = append(sm.logbook, Transition{From: from, To: target, Timestamp: time.Now(), Reason: reason})
	if over := len(sm.logbook) - logbookSize; over > 0 {
		sm.logbook = append(sm.logbook[:0], sm.logbook[over:]...)
	}

	if sm.eventBus != nil {
		sm.eventBus.Publish(events.NewStateTransitionEvent(sm.context.SessionID, from.String(), target.String(), reason))
	}
	sm.context.Logger.Info().
		Str("from_phase", from.String()).
		Str("to_phase", target.String()).
		Str("reason", reason).
		Msg("Phase changed")
	return nil
}
