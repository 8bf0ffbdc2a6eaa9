package game

import (
	"fmt"

	"github.com/mitchelldurbincs/Archipelago/internal/config"
	"github.com/mitchelldurbincs/Archipelago/internal/game/core"
	"github.com/mitchelldurbincs/Archipelago/internal/game/mapgen"
	"github.com/mitchelldurbincs/Archipelago/internal/game/weather"
)

// MinefieldMode decides whether a minefield survives its first detonation
type MinefieldMode string

const (
	MinefieldOneShot    MinefieldMode = "one_shot"
	MinefieldPersistent MinefieldMode = "persistent"
)

// Salvage from a wreck decoration
const (
	wreckWood  = 3
	wreckCoins = 15
)

// Settings is the resolved game tuning a session runs with. It is built once
// from configuration so the engine never reads the global config mid-turn.
type Settings struct {
	Map      config.MapConfig
	Monsters int
	Rivals   int

	SurfaceBlock     core.Elevation
	FlyingBlock      core.Elevation
	MistViewDistance int

	ArrowRange   int
	CrewPerArrow int
	CrewPerGun   int

	ForgetAfter int
	Weather     weather.Config

	MinefieldDamage int
	ReefDamage      int
	StormBonus      int
	MinefieldMode   MinefieldMode

	RepairWoodCost int
	RepairAmount   int

	Crew   config.CrewConfig
	Player config.PlayerConfig

	Profiles           *core.ProfileTable
	VictoryWhenCleared bool
}

// SettingsFromConfig resolves names in the configuration into game values
func SettingsFromConfig(c *config.Config) (Settings, error) {
	g := c.Game
	surface, err := core.ParseElevation(g.FOV.SurfaceBlockElevation)
	if err != nil {
		return Settings{}, fmt.Errorf("fov surface block elevation: %w", err)
	}
	flying, err := core.ParseElevation(g.FOV.FlyingBlockElevation)
	if err != nil {
		return Settings{}, fmt.Errorf("fov flying block elevation: %w", err)
	}
	profiles, err := core.NewProfileTable(g.MovementProfiles)
	if err != nil {
		return Settings{}, fmt.Errorf("movement profiles: %w", err)
	}
	mode := MinefieldMode(g.Hazards.MinefieldMode)
	if mode != MinefieldOneShot && mode != MinefieldPersistent {
		return Settings{}, fmt.Errorf("unknown minefield mode %q", g.Hazards.MinefieldMode)
	}

	return Settings{
		Map:              g.Map,
		Monsters:         g.Map.Monsters,
		Rivals:           g.Map.Rivals,
		SurfaceBlock:     surface,
		FlyingBlock:      flying,
		MistViewDistance: g.FOV.MistViewDistance,
		ArrowRange:       g.Combat.ArrowRange,
		CrewPerArrow:     g.Combat.CrewPerArrow,
		CrewPerGun:       g.Combat.CrewPerGun,
		ForgetAfter:      g.AI.ForgetAfter,
		Weather: weather.Config{
			MinDuration:     g.Weather.MinDuration,
			MaxDuration:     g.Weather.MaxDuration,
			FogMistSeeds:    g.Weather.FogMistSeeds,
			CalmClearChance: g.Weather.CalmClearChance,
		},
		MinefieldDamage:    g.Hazards.MinefieldDamage,
		ReefDamage:         g.Hazards.ReefDamage,
		StormBonus:         g.Hazards.StormBonus,
		MinefieldMode:      mode,
		RepairWoodCost:     g.Repair.WoodCost,
		RepairAmount:       g.Repair.Amount,
		Crew:               g.Crew,
		Player:             g.Player,
		Profiles:           profiles,
		VictoryWhenCleared: g.VictoryWhenCleared,
	}, nil
}

// DefaultSettings resolves the built-in configuration defaults
func DefaultSettings() Settings {
	s, err := SettingsFromConfig(config.Get())
	if err != nil {
		panic("default configuration does not resolve: " + err.Error())
	}
	return s
}

// mapConfig translates map settings for the generator
func (s Settings) mapConfig(seed int64) mapgen.MapConfig {
	mc := mapgen.DefaultMapConfig(s.Map.Width, s.Map.Height, seed)
	if s.Map.Frequency > 0 {
		mc.Frequency = s.Map.Frequency
	}
	if s.Map.Octaves > 0 {
		mc.Octaves = s.Map.Octaves
	}
	if s.Map.Persistence > 0 {
		mc.Persistence = s.Map.Persistence
	}
	mc.Border = s.Map.Border
	mc.Ports = s.Map.Ports
	mc.Minefields = s.Map.Minefields
	mc.Reefs = s.Map.Reefs
	mc.Wrecks = s.Map.Wrecks
	mc.MistPatches = s.Map.MistPatches
	mc.Spawns = s.Monsters + s.Rivals
	mc.MinSpawnSpacing = s.Map.MinSpawnSpacing
	return mc
}

// blockElevation is the occluding elevation for a viewer
func (s Settings) blockElevation(flying bool) core.Elevation {
	if flying {
		return s.FlyingBlock
	}
	return s.SurfaceBlock
}
