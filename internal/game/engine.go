package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
	"github.com/mitchelldurbincs/Archipelago/internal/game/entity"
	"github.com/mitchelldurbincs/Archipelago/internal/game/events"
	"github.com/mitchelldurbincs/Archipelago/internal/game/fov"
	"github.com/mitchelldurbincs/Archipelago/internal/game/rules"
	"github.com/mitchelldurbincs/Archipelago/internal/game/states"
	"github.com/mitchelldurbincs/Archipelago/internal/game/weather"
	"github.com/mitchelldurbincs/Archipelago/internal/items"
)

// ErrNotPlayer is returned when Submit receives an action for an entity the player does not command
var ErrNotPlayer = errors.New("only the player's ship takes submitted actions")

// Engine runs one session. It validates and applies the player's actions and
// resolves the rest of the world after every turn-advancing action. An Engine
// is single-threaded; callers serialize Submit.
type Engine struct {
	gs            *GameState
	settings      Settings
	items         *items.Table
	rng           *rand.Rand
	logger        zerolog.Logger
	fov           *fov.Calculator
	eventBus      *events.EventBus
	stateMachine  *states.StateMachine
	winCondition  *rules.GameOverChecker
	legalMoves    *rules.LegalActionCalculator
	turnProcessor *TurnProcessor
	stats         Stats
	gameOver      bool
	outcome       rules.Outcome
}

// GameConfig holds everything needed to start a session
type GameConfig struct {
	Settings  Settings
	Items     *items.Table
	Seed      int64
	Rng       *rand.Rand
	Logger    zerolog.Logger
	SessionID string
	// EventBus is created when nil
	EventBus *events.EventBus

	// Grid and World skip map generation when both are set
	Grid    *core.Grid
	World   *entity.World
	Weather *weather.Weather
}

// NewEngine generates (or adopts) a map, places the ships and starts the session
func NewEngine(ctx context.Context, cfg GameConfig) (*Engine, error) {
	return NewEngineInitializer(cfg).Initialize(ctx)
}

// Submit validates and applies one player action. Rejections are not errors:
// they come back in the outcome with the state untouched. Errors are reserved
// for misuse and broken invariants. ctx is only checked before validation;
// once an action is applied its turn resolves completely.
func (e *Engine) Submit(ctx context.Context, action core.Action) (ActionOutcome, error) {
	out := ActionOutcome{Action: action, State: ActionIdle, Turn: e.gs.Turn}
	if action == nil {
		return out, fmt.Errorf("submit: nil action")
	}

	select {
	case <-ctx.Done():
		return out, ctx.Err()
	default:
	}

	if e.gameOver {
		return out, core.WrapGameStateError(e.gs.Turn, "submit", core.ErrGameOver)
	}
	phase := e.stateMachine.CurrentPhase()
	if !phase.CanReceiveActions() {
		return out, core.WrapGameStateError(e.gs.Turn, phase.String(), fmt.Errorf("session cannot receive actions"))
	}

	actor, err := e.gs.World.Get(action.ActorID())
	if err != nil {
		return out, core.WrapActionError(action, err)
	}
	if !actor.IsPlayer() {
		return out, core.WrapActionError(action, ErrNotPlayer)
	}

	out.State = ActionValidating
	if err := e.validate(actor, action); err != nil {
		imp, ok := core.AsImpossible(err)
		if !ok {
			return out, core.WrapActionError(action, err)
		}
		e.reject(actor, action, imp)
		out.State = ActionRejected
		out.Rejection = imp
		return out, nil
	}

	if err := e.perform(actor, action); err != nil {
		return out, e.fail(core.WrapActionError(action, err))
	}
	out.State = ActionApplied

	if action.AdvancesTurn() {
		if err := e.turnProcessor.EndTurn(actor); err != nil {
			return out, err
		}
		out.TurnAdvanced = true
	}
	out.Turn = e.gs.Turn
	return out, nil
}

// Validate checks an action without applying it
func (e *Engine) Validate(action core.Action) error {
	actor, err := e.gs.World.Get(action.ActorID())
	if err != nil {
		return err
	}
	return e.validate(actor, action)
}

// LegalActions lists the player's actions that would currently be accepted
func (e *Engine) LegalActions() []core.Action {
	player := e.gs.Player()
	if player == nil || e.gameOver {
		return nil
	}
	return e.legalMoves.LegalActions(e, player)
}

// ActionMask validates the player's candidate actions in a stable order
func (e *Engine) ActionMask() ([]core.Action, []bool) {
	player := e.gs.Player()
	if player == nil {
		return nil, nil
	}
	candidates := e.legalMoves.Candidates(player)
	return candidates, e.legalMoves.GetLegalActionMask(e, candidates)
}

// perform applies a validated action and announces it
func (e *Engine) perform(actor *entity.Entity, action core.Action) error {
	if err := e.apply(actor, action); err != nil {
		return err
	}
	e.publish(events.NewActionAppliedEvent(e.gs.SessionID, int(actor.ID), e.gs.Turn, action.Kind(), core.DescribeAction(action)))
	return nil
}

func (e *Engine) reject(actor *entity.Entity, action core.Action, imp *core.Impossible) {
	e.stats.ActionsRejected++
	e.logger.Debug().
		Int("entity_id", int(actor.ID)).
		Int("turn", e.gs.Turn).
		Str("action", core.DescribeAction(action)).
		Str("code", string(imp.Code)).
		Str("reason", imp.Reason).
		Msg("Action rejected")
	e.publish(events.NewActionRejectedEvent(e.gs.SessionID, int(actor.ID), e.gs.Turn, action.Kind(), string(imp.Code), imp.Reason))
}

// fail moves the session to the error phase and returns err
func (e *Engine) fail(err error) error {
	e.logger.Error().Err(err).Int("turn", e.gs.Turn).Msg("Session failed")
	if tErr := e.stateMachine.Fail(err); tErr != nil {
		e.logger.Error().Err(tErr).Msg("Failed to enter error phase")
	}
	return err
}

// checkGameOver ends the session when the player is lost or the seas are cleared
func (e *Engine) checkGameOver(logger zerolog.Logger) error {
	if e.gameOver {
		return nil
	}
	over, outcome := e.winCondition.CheckGameOver(e.gs.World)
	if !over {
		return nil
	}
	logger.Info().Str("outcome", string(outcome)).Msg("Game over")
	return e.endSession(outcome, "game over: "+string(outcome))
}

// Abandon ends a running session without a decisive outcome
func (e *Engine) Abandon(reason string) error {
	if e.gameOver {
		return core.WrapGameStateError(e.gs.Turn, "abandon", core.ErrGameOver)
	}
	return e.endSession(rules.OutcomeAbandoned, reason)
}

func (e *Engine) endSession(outcome rules.Outcome, reason string) error {
	e.gameOver = true
	e.outcome = outcome

	if err := e.stateMachine.Finish(string(outcome), reason); err != nil {
		return e.fail(err)
	}
	e.publish(events.NewSessionEndedEvent(e.gs.SessionID, string(outcome), e.gs.Turn, e.stateMachine.GetContext().GetElapsedTime()))
	return nil
}

func (e *Engine) publish(ev events.Event) {
	e.eventBus.Publish(ev)
}

// Public accessors
func (e *Engine) SessionID() string                  { return e.gs.SessionID }
func (e *Engine) Turn() int                          { return e.gs.Turn }
func (e *Engine) Grid() *core.Grid                   { return e.gs.Grid }
func (e *Engine) World() *entity.World               { return e.gs.World }
func (e *Engine) Player() *entity.Entity             { return e.gs.Player() }
func (e *Engine) Weather() *weather.Weather          { return e.gs.Weather }
func (e *Engine) Phase() states.GamePhase            { return e.stateMachine.CurrentPhase() }
func (e *Engine) IsGameOver() bool                   { return e.gameOver }
func (e *Engine) Outcome() rules.Outcome             { return e.outcome }
func (e *Engine) Stats() Stats                       { return e.stats }
func (e *Engine) EventBus() *events.EventBus         { return e.eventBus }
func (e *Engine) Settings() Settings                 { return e.settings }
func (e *Engine) Items() *items.Table                { return e.items }
func (e *Engine) StateMachine() *states.StateMachine { return e.stateMachine }
