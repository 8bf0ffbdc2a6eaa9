package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidDirection   = errors.New("invalid direction")
	ErrUnknownProfile     = errors.New("unknown movement profile")
	ErrInvalidEntity      = errors.New("invalid entity ID")
	ErrGameOver           = errors.New("game is over")
)

// ReasonCode classifies why an action was rejected
type ReasonCode string

const (
	ReasonNoAmmo            ReasonCode = "no_ammo"
	ReasonNoTarget          ReasonCode = "no_target"
	ReasonSailsDamaged      ReasonCode = "sails_damaged"
	ReasonBlocked           ReasonCode = "blocked"
	ReasonAtMax             ReasonCode = "at_max"
	ReasonInsufficientFunds ReasonCode = "insufficient_funds"
	ReasonInvalidState      ReasonCode = "invalid_state"
	ReasonCooldown          ReasonCode = "cooldown"
	ReasonNoCrew            ReasonCode = "no_crew"
	ReasonCargoFull         ReasonCode = "cargo_full"
	ReasonNothingToSalvage  ReasonCode = "nothing_to_salvage"
	ReasonNotAtPort         ReasonCode = "not_at_port"
	ReasonUnknownItem       ReasonCode = "unknown_item"
)

// Impossible is the recoverable rejection of an action. It is returned by
// validation before any state has been touched.
type Impossible struct {
	Code   ReasonCode
	Reason string
}

// NewImpossible creates a rejection with a formatted reason
func NewImpossible(code ReasonCode, format string, args ...any) *Impossible {
	return &Impossible{Code: code, Reason: fmt.Sprintf(format, args...)}
}

func (e *Impossible) Error() string {
	return e.Reason
}

// Is matches any Impossible with the same code
func (e *Impossible) Is(target error) bool {
	var other *Impossible
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code
}

// IsImpossible reports whether err carries an Impossible rejection
func IsImpossible(err error) bool {
	var imp *Impossible
	return errors.As(err, &imp)
}

// AsImpossible extracts the Impossible from err, if any
func AsImpossible(err error) (*Impossible, bool) {
	var imp *Impossible
	ok := errors.As(err, &imp)
	return imp, ok
}

// WrapActionError adds the acting entity and action description to an error
func WrapActionError(action Action, err error) error {
	if err == nil {
		return nil
	}
	if action == nil {
		return fmt.Errorf("entity action: %w", err)
	}
	return fmt.Errorf("entity %d: %s: %w", action.ActorID(), DescribeAction(action), err)
}

// WrapGameStateError adds the turn and phase to an error
func WrapGameStateError(turn int, phase string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("game turn %d [%s]: %w", turn, phase, err)
}

// WrapEntityError adds entity context to an error
func WrapEntityError(id EntityID, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("entity %d %s: %w", id, operation, err)
}

// GameError is a structured error carrying turn and entity context
type GameError struct {
	Turn      int
	EntityID  EntityID
	Operation string
	Err       error
}

func NewGameError(turn int, id EntityID, operation string, err error) *GameError {
	return &GameError{Turn: turn, EntityID: id, Operation: operation, Err: err}
}

func (e *GameError) Error() string {
	if e.EntityID > 0 {
		return fmt.Sprintf("turn %d: entity %d %s: %v", e.Turn, e.EntityID, e.Operation, e.Err)
	}
	return fmt.Sprintf("turn %d: %s: %v", e.Turn, e.Operation, e.Err)
}

func (e *GameError) Unwrap() error { return e.Err }
