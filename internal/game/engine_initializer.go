package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
	"github.com/mitchelldurbincs/Archipelago/internal/game/entity"
	"github.com/mitchelldurbincs/Archipelago/internal/game/events"
	"github.com/mitchelldurbincs/Archipelago/internal/game/fov"
	"github.com/mitchelldurbincs/Archipelago/internal/game/mapgen"
	"github.com/mitchelldurbincs/Archipelago/internal/game/rules"
	"github.com/mitchelldurbincs/Archipelago/internal/game/states"
	"github.com/mitchelldurbincs/Archipelago/internal/game/weather"
	"github.com/mitchelldurbincs/Archipelago/internal/items"
)

// EngineInitializer handles the complex initialization of a game engine
type EngineInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg GameConfig) *EngineInitializer {
	logger := cfg.Logger.With().Str("component", "GameEngine").Logger()
	return &EngineInitializer{
		config: cfg,
		logger: logger,
	}
}

// Initialize creates and initializes a new game engine
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled or timed out during initial phase")
		return nil, ctx.Err()
	default:
	}

	ei.setupDefaults()

	gs, err := ei.buildState()
	if err != nil {
		return nil, err
	}

	engine := ei.createEngine(gs)
	ei.performInitialSetup(engine)

	if err := ei.initializeStateMachine(engine); err != nil {
		return nil, fmt.Errorf("state machine initialization failed: %w", err)
	}

	engine.publish(events.NewSessionStartedEvent(gs.SessionID, gs.Grid.W, gs.Grid.H, gs.Seed, gs.World.Len()))

	ei.logger.Info().
		Str("session_id", gs.SessionID).
		Int("width", gs.Grid.W).
		Int("height", gs.Grid.H).
		Int64("seed", gs.Seed).
		Int("entities", gs.World.Len()).
		Msg("Engine created successfully")

	return engine, nil
}

// setupDefaults sets up default values for missing configuration
func (ei *EngineInitializer) setupDefaults() {
	cfg := &ei.config
	if cfg.Seed == 0 {
		cfg.Seed = cfg.Settings.Map.Seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
		ei.logger.Debug().Int64("seed", cfg.Seed).Msg("No seed provided, using clock")
	}
	if cfg.Rng == nil {
		cfg.Rng = rand.New(rand.NewSource(cfg.Seed))
	}
	if cfg.SessionID == "" {
		cfg.SessionID = uuid.NewString()
	}
	if cfg.Items == nil {
		cfg.Items = items.Default()
	}
	if cfg.Settings.Profiles == nil {
		cfg.Settings.Profiles = core.DefaultProfiles()
	}
}

// buildState adopts a provided grid and world or generates a fresh archipelago
func (ei *EngineInitializer) buildState() (*GameState, error) {
	cfg := ei.config
	gs := &GameState{SessionID: cfg.SessionID, Seed: cfg.Seed, Grid: cfg.Grid, World: cfg.World, Weather: cfg.Weather}

	if gs.Grid == nil || gs.World == nil {
		grid, world, err := ei.generate()
		if err != nil {
			return nil, err
		}
		gs.Grid, gs.World = grid, world
	}
	if gs.World.Player() == nil {
		return nil, fmt.Errorf("world has no player ship: %w", core.ErrInvalidEntity)
	}
	if gs.Weather == nil {
		gs.Weather = weather.New(cfg.Settings.Weather, cfg.Rng)
	}
	return gs, nil
}

// generate builds the map and spawns the player, monsters and rivals on it
func (ei *EngineInitializer) generate() (*core.Grid, *entity.World, error) {
	cfg := ei.config
	m, err := mapgen.NewGenerator(cfg.Settings.mapConfig(cfg.Seed), cfg.Rng).GenerateMap()
	if err != nil {
		return nil, nil, fmt.Errorf("map generation failed: %w", err)
	}

	factory := newShipFactory(cfg.Settings, cfg.Items)
	world := entity.NewWorld()
	player, err := factory.Player(m.PlayerStart)
	if err != nil {
		return nil, nil, err
	}
	world.Spawn(player)

	for i, at := range m.Spawns {
		var npc *entity.Entity
		if i < cfg.Settings.Monsters {
			npc, err = factory.Monster(at, m.Grid, cfg.Rng)
		} else {
			npc, err = factory.Rival(at, cfg.Rng)
		}
		if err != nil {
			return nil, nil, err
		}
		world.Spawn(npc)
	}
	if len(m.Spawns) < cfg.Settings.Monsters+cfg.Settings.Rivals {
		ei.logger.Warn().
			Int("wanted", cfg.Settings.Monsters+cfg.Settings.Rivals).
			Int("placed", len(m.Spawns)).
			Msg("Not enough open water for every spawn")
	}
	return m.Grid, world, nil
}

// createEngine creates the engine with all its components
func (ei *EngineInitializer) createEngine(gs *GameState) *Engine {
	cfg := ei.config
	eventBus := cfg.EventBus
	if eventBus == nil {
		eventBus = events.NewEventBus(ei.logger)
	}

	gameContext := states.NewGameContext(gs.SessionID, gs.Seed, ei.logger)
	stateMachine := states.NewStateMachine(gameContext, eventBus)

	engine := &Engine{
		gs:           gs,
		settings:     cfg.Settings,
		items:        cfg.Items,
		rng:          cfg.Rng,
		logger:       ei.logger,
		fov:          fov.NewCalculator(cfg.Settings.MistViewDistance),
		eventBus:     eventBus,
		stateMachine: stateMachine,
		winCondition: rules.NewGameOverChecker(ei.logger, cfg.Settings.VictoryWhenCleared),
		legalMoves:   rules.NewLegalActionCalculator(),
	}
	engine.turnProcessor = NewTurnProcessor(engine)
	return engine
}

// performInitialSetup gives every entity its first field of view
func (ei *EngineInitializer) performInitialSetup(engine *Engine) {
	engine.updateAllFOV()
}

// initializeStateMachine moves the new session out to sea
func (ei *EngineInitializer) initializeStateMachine(engine *Engine) error {
	if err := engine.stateMachine.TransitionTo(states.PhaseSailing, "Session setup complete"); err != nil {
		ei.logger.Error().Err(err).Msg("Failed to transition to Sailing state")
		return err
	}
	return nil
}
