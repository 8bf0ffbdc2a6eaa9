package rules

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/Archipelago/internal/game/entity"
)

// Outcome is how a session ended
type Outcome string

const (
	OutcomeNone      Outcome = ""
	OutcomeSunk      Outcome = "sunk"
	OutcomeVictory   Outcome = "victory"
	OutcomeAbandoned Outcome = "abandoned"
)

// GameOverChecker decides when a session is finished
type GameOverChecker struct {
	logger zerolog.Logger
	// VictoryWhenCleared ends the session once no hostile is left afloat
	VictoryWhenCleared bool
}

// NewGameOverChecker creates a new game over checker
func NewGameOverChecker(logger zerolog.Logger, victoryWhenCleared bool) *GameOverChecker {
	return &GameOverChecker{
		logger:             logger.With().Str("component", "GameOverChecker").Logger(),
		VictoryWhenCleared: victoryWhenCleared,
	}
}

// CheckGameOver inspects the world after a turn
func (gc *GameOverChecker) CheckGameOver(w *entity.World) (bool, Outcome) {
	player := w.Player()
	if player == nil || !player.Alive {
		gc.logger.Info().Msg("Player ship lost")
		return true, OutcomeSunk
	}

	hostiles := 0
	for _, e := range w.Living() {
		if entity.Hostile(player, e) {
			hostiles++
		}
	}
	gc.logger.Debug().Int("hostiles_afloat", hostiles).Msg("Game over check complete")

	if gc.VictoryWhenCleared && hostiles == 0 {
		gc.logger.Info().Msg("All hostiles sunk")
		return true, OutcomeVictory
	}
	return false, OutcomeNone
}
