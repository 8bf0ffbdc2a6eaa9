package states

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
)

// GameContext provides session information to states for making decisions
type GameContext struct {
	// SessionID uniquely identifies this session
	SessionID string

	Logger zerolog.Logger

	// Seed drives map generation and every random roll
	Seed int64

	// StartTime is when the session first set sail
	StartTime time.Time

	// Port is where the player is moored while docked
	Port    core.Coordinate
	HasPort bool

	// Outcome is set by the game-over check; empty while the session runs
	Outcome string

	// Error holds any error that caused transition to PhaseError
	Error error

	Metadata map[string]interface{}
}

// NewGameContext creates a new session context
func NewGameContext(sessionID string, seed int64, logger zerolog.Logger) *GameContext {
	return &GameContext{
		SessionID: sessionID,
		Seed:      seed,
		Logger:    logger.With().Str("session_id", sessionID).Logger(),
		Metadata:  make(map[string]interface{}),
	}
}

// GetElapsedTime returns the time elapsed since the session set sail
func (gc *GameContext) GetElapsedTime() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	return time.Since(gc.StartTime)
}

// SetMetadata stores custom data for states
func (gc *GameContext) SetMetadata(key string, value interface{}) {
	gc.Metadata[key] = value
}

// GetMetadata retrieves custom data stored by states
func (gc *GameContext) GetMetadata(key string) (interface{}, bool) {
	val, exists := gc.Metadata[key]
	return val, exists
}
