package states

import (
	"fmt"
	"time"
)

// InitializingState represents session setup
type InitializingState struct{}

func NewInitializingState() State {
	return &InitializingState{}
}

func (s *InitializingState) Phase() GamePhase {
	return PhaseInitializing
}

func (s *InitializingState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Int64("seed", ctx.Seed).Msg("Entering Initializing state")
	return nil
}

func (s *InitializingState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Exiting Initializing state")
	return nil
}

func (s *InitializingState) Validate(ctx *GameContext) error {
	return nil
}

// SailingState represents turns advancing at sea
type SailingState struct{}

func NewSailingState() State {
	return &SailingState{}
}

func (s *SailingState) Phase() GamePhase {
	return PhaseSailing
}

func (s *SailingState) Enter(ctx *GameContext) error {
	if ctx.StartTime.IsZero() {
		ctx.StartTime = time.Now()
		ctx.Logger.Info().Time("start_time", ctx.StartTime).Msg("Session set sail")
	}
	ctx.HasPort = false
	return nil
}

func (s *SailingState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Dur("elapsed", ctx.GetElapsedTime()).Msg("Leaving open water")
	return nil
}

func (s *SailingState) Validate(ctx *GameContext) error {
	if ctx.Outcome != "" {
		return fmt.Errorf("cannot sail after the session ended (%s)", ctx.Outcome)
	}
	return nil
}

// DockedState represents a ship moored at a port
type DockedState struct{}

func NewDockedState() State {
	return &DockedState{}
}

func (s *DockedState) Phase() GamePhase {
	return PhaseDocked
}

func (s *DockedState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().Str("port", ctx.Port.String()).Msg("Docked")
	return nil
}

func (s *DockedState) Exit(ctx *GameContext) error {
	ctx.Logger.Info().Str("port", ctx.Port.String()).Msg("Cast off")
	return nil
}

func (s *DockedState) Validate(ctx *GameContext) error {
	if !ctx.HasPort {
		return fmt.Errorf("docked state requires a port")
	}
	return nil
}

// EndingState represents outcome bookkeeping
type EndingState struct{}

func NewEndingState() State {
	return &EndingState{}
}

func (s *EndingState) Phase() GamePhase {
	return PhaseEnding
}

func (s *EndingState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().Str("outcome", ctx.Outcome).Msg("Session ending")
	return nil
}

func (s *EndingState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Session ending phase complete")
	return nil
}

func (s *EndingState) Validate(ctx *GameContext) error {
	if ctx.Outcome == "" && ctx.Error == nil {
		return fmt.Errorf("ending state requires either an outcome or an error")
	}
	return nil
}

// EndedState represents a finished session
type EndedState struct{}

func NewEndedState() State {
	return &EndedState{}
}

func (s *EndedState) Phase() GamePhase {
	return PhaseEnded
}

func (s *EndedState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().
		Str("outcome", ctx.Outcome).
		Dur("session_duration", ctx.GetElapsedTime()).
		Msg("Session ended")
	return nil
}

func (s *EndedState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Exiting ended state")
	return nil
}

func (s *EndedState) Validate(ctx *GameContext) error {
	return nil
}

// ErrorState represents an error condition
type ErrorState struct{}

func NewErrorState() State {
	return &ErrorState{}
}

func (s *ErrorState) Phase() GamePhase {
	return PhaseError
}

func (s *ErrorState) Enter(ctx *GameContext) error {
	ctx.Logger.Error().
		Err(ctx.Error).
		Msg("Session entered error state")
	return nil
}

func (s *ErrorState) Exit(ctx *GameContext) error {
	return nil
}

func (s *ErrorState) Validate(ctx *GameContext) error {
	if ctx.Error == nil {
		return fmt.Errorf("error state requires an error in context")
	}
	return nil
}
