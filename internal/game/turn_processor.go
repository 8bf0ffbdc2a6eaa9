package game

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/Archipelago/internal/game/ai"
	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
	"github.com/mitchelldurbincs/Archipelago/internal/game/entity"
	"github.com/mitchelldurbincs/Archipelago/internal/game/events"
)

// TurnProcessor runs the end-of-turn sequence after a turn-advancing action
type TurnProcessor struct {
	engine *Engine
	logger zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(engine *Engine) *TurnProcessor {
	return &TurnProcessor{
		engine: engine,
		logger: engine.logger,
	}
}

// EndTurn resolves the world in a fixed order: the actor's sight, weapon
// reloads, crew and effect timers, AI moves, weather, everyone's sight, then
// hazards under every hull, the turn counter and the game-over check. A turn
// that has started always runs to the end.
func (tp *TurnProcessor) EndTurn(actor *entity.Entity) error {
	e := tp.engine
	turn := e.gs.Turn
	turnLogger := tp.logger.With().Int("turn", turn).Logger()
	turnStart := time.Now()

	e.publish(events.NewTurnStartedEvent(e.gs.SessionID, turn))
	turnLogger.Debug().Msg("Resolving end of turn")

	e.updateFOV(actor)
	tp.tickWeapons()
	tp.tickCrew()

	aiActions, err := tp.runAI(turnLogger)
	if err != nil {
		return e.fail(core.WrapGameStateError(turn, "ai", err))
	}

	tp.advanceWeather(turnLogger)
	e.updateAllFOV()

	for _, ent := range e.gs.World.Living() {
		if err := e.applyHazards(ent); err != nil {
			return e.fail(core.WrapGameStateError(turn, "hazards", err))
		}
	}

	e.gs.Turn++
	e.stats.TurnsPlayed++
	if err := e.checkGameOver(turnLogger); err != nil {
		return err
	}

	e.publish(events.NewTurnEndedEvent(e.gs.SessionID, turn, aiActions, time.Since(turnStart)))
	turnLogger.Debug().Int("ai_actions", aiActions).Msg("Turn finished")
	return nil
}

func (tp *TurnProcessor) tickWeapons() {
	for _, ent := range tp.engine.gs.World.Living() {
		if ent.Broadsides != nil {
			ent.Broadsides.Tick()
		}
	}
}

func (tp *TurnProcessor) tickCrew() {
	for _, ent := range tp.engine.gs.World.Living() {
		if ent.Crew != nil {
			ent.Crew.Tick()
		}
		ent.TickEffects()
	}
}

// runAI lets every living AI entity take one action in ID order. A decision
// the rules refuse becomes a wait.
func (tp *TurnProcessor) runAI(logger zerolog.Logger) (int, error) {
	e := tp.engine
	actx := &ai.Context{
		Grid:        e.gs.Grid,
		World:       e.gs.World,
		Rng:         e.rng,
		Logger:      logger,
		ForgetAfter: e.settings.ForgetAfter,
	}

	applied := 0
	for _, npc := range e.gs.World.Living() {
		if npc.AI == nil || !npc.Alive {
			continue
		}
		action := ai.Decide(actx, npc)
		if err := e.validate(npc, action); err != nil {
			if !core.IsImpossible(err) {
				return applied, core.WrapActionError(action, err)
			}
			logger.Debug().
				Int("entity_id", int(npc.ID)).
				Str("action", core.DescribeAction(action)).
				Str("reason", err.Error()).
				Msg("AI action refused, waiting")
			continue
		}
		if err := e.perform(npc, action); err != nil {
			return applied, core.WrapActionError(action, err)
		}
		applied++
	}
	e.stats.AIActions += applied
	return applied, nil
}

func (tp *TurnProcessor) advanceWeather(logger zerolog.Logger) {
	e := tp.engine
	w := e.gs.Weather
	ch := w.Advance(e.gs.Grid, e.rng)
	if ch.ConditionChanged() || ch.WindShifted {
		e.publish(events.NewWeatherChangedEvent(e.gs.SessionID, e.gs.Turn, ch.From.String(), ch.To.String(), w.WindDirection.String(), w.WindForce))
	}
	logger.Debug().
		Str("condition", w.Condition.String()).
		Int("mist_moved", ch.MistMoved).
		Int("mist_lost", ch.MistLost).
		Int("mist_seeded", ch.MistSeeded).
		Int("mist_cleared", ch.MistCleared).
		Msg("Weather advanced")
}
