package game

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
	"github.com/mitchelldurbincs/Archipelago/internal/game/entity"
	"github.com/mitchelldurbincs/Archipelago/internal/game/states"
	"github.com/mitchelldurbincs/Archipelago/internal/game/weather"
)

// Snapshot is the plain, serializable form of a running session. Fields of
// view and the RNG stream are not stored; restoring recomputes sight and
// reseeds from the seed and turn.
type Snapshot struct {
	SessionID string                `json:"session_id"`
	Seed      int64                 `json:"seed"`
	Turn      int                   `json:"turn"`
	Phase     string                `json:"phase"`
	Port      *core.CoordRecord     `json:"port,omitempty"`
	Grid      core.GridRecord       `json:"grid"`
	Entities  []entity.EntityRecord `json:"entities"`
	Weather   weather.Record        `json:"weather"`
	Stats     Stats                 `json:"stats"`
}

// Snapshot captures the session
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		SessionID: e.gs.SessionID,
		Seed:      e.gs.Seed,
		Turn:      e.gs.Turn,
		Phase:     e.stateMachine.CurrentPhase().String(),
		Grid:      e.gs.Grid.ToRecord(),
		Entities:  e.gs.World.Records(),
		Weather:   e.gs.Weather.ToRecord(),
		Stats:     e.stats,
	}
	if sctx := e.stateMachine.GetContext(); sctx.HasPort {
		port := sctx.Port.ToRecord()
		snap.Port = &port
	}
	return snap
}

// Restore rebuilds an engine from a snapshot. Only sessions still at sea or
// in port can be resumed.
func Restore(ctx context.Context, cfg GameConfig, snap Snapshot) (*Engine, error) {
	phase, err := states.ParsePhase(snap.Phase)
	if err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	if phase != states.PhaseSailing && phase != states.PhaseDocked {
		return nil, fmt.Errorf("restore session in phase %s: %w", phase, core.ErrGameOver)
	}
	if phase == states.PhaseDocked && snap.Port == nil {
		return nil, fmt.Errorf("restore: docked snapshot has no port")
	}

	if cfg.Settings.Profiles == nil {
		cfg.Settings.Profiles = core.DefaultProfiles()
	}
	grid, err := core.GridFromRecord(snap.Grid)
	if err != nil {
		return nil, fmt.Errorf("restore grid: %w", err)
	}
	world, err := entity.Restore(snap.Entities, cfg.Settings.Profiles)
	if err != nil {
		return nil, fmt.Errorf("restore entities: %w", err)
	}
	w, err := weather.FromRecord(snap.Weather, cfg.Settings.Weather)
	if err != nil {
		return nil, fmt.Errorf("restore weather: %w", err)
	}

	cfg.SessionID = snap.SessionID
	cfg.Seed = snap.Seed
	cfg.Grid, cfg.World, cfg.Weather = grid, world, w
	if cfg.Rng == nil {
		cfg.Rng = rand.New(rand.NewSource(snap.Seed + int64(snap.Turn)))
	}

	engine, err := NewEngine(ctx, cfg)
	if err != nil {
		return nil, err
	}
	engine.gs.Turn = snap.Turn
	engine.stats = snap.Stats

	if phase == states.PhaseDocked {
		if err := engine.stateMachine.Moor(core.CoordinateFromRecord(*snap.Port)); err != nil {
			return nil, err
		}
	}
	return engine, nil
}
