package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Game    GameConfig    `mapstructure:"game"`
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Items   ItemsConfig   `mapstructure:"items"`
	Sim     SimConfig     `mapstructure:"sim"`
}

// GameConfig holds game mechanics configuration
type GameConfig struct {
	Map     MapConfig     `mapstructure:"map"`
	FOV     FOVConfig     `mapstructure:"fov"`
	Combat  CombatConfig  `mapstructure:"combat"`
	AI      AIConfig      `mapstructure:"ai"`
	Weather WeatherConfig `mapstructure:"weather"`
	Hazards HazardsConfig `mapstructure:"hazards"`
	Repair  RepairConfig  `mapstructure:"repair"`
	Crew    CrewConfig    `mapstructure:"crew"`
	Player  PlayerConfig  `mapstructure:"player"`

	// MovementProfiles overrides or extends the built-in profile table: name -> elevation names
	MovementProfiles map[string][]string `mapstructure:"movement_profiles"`
	// VictoryWhenCleared ends the session once no hostile ship or monster survives
	VictoryWhenCleared bool `mapstructure:"victory_when_cleared"`
}

// MapConfig holds map generation settings
type MapConfig struct {
	Width           int     `mapstructure:"width"`
	Height          int     `mapstructure:"height"`
	Seed            int64   `mapstructure:"seed"`
	Frequency       float64 `mapstructure:"frequency"`
	Octaves         int     `mapstructure:"octaves"`
	Persistence     float64 `mapstructure:"persistence"`
	Border          int     `mapstructure:"border"`
	Ports           int     `mapstructure:"ports"`
	Minefields      int     `mapstructure:"minefields"`
	Reefs           int     `mapstructure:"reefs"`
	Wrecks          int     `mapstructure:"wrecks"`
	MistPatches     int     `mapstructure:"mist_patches"`
	Monsters        int     `mapstructure:"monsters"`
	Rivals          int     `mapstructure:"rivals"`
	MinSpawnSpacing int     `mapstructure:"min_spawn_spacing"`
}

// FOVConfig holds line-of-sight settings
type FOVConfig struct {
	SurfaceBlockElevation string `mapstructure:"surface_block_elevation"`
	FlyingBlockElevation  string `mapstructure:"flying_block_elevation"`
	MistViewDistance      int    `mapstructure:"mist_view_distance"`
}

// CombatConfig holds combat tuning
type CombatConfig struct {
	ArrowRange   int `mapstructure:"arrow_range"`
	CrewPerArrow int `mapstructure:"crew_per_arrow"`
	CrewPerGun   int `mapstructure:"crew_per_gun"`
}

// AIConfig holds AI behaviour settings
type AIConfig struct {
	// ForgetAfter drops a remembered target after this many turns unseen; 0 never forgets
	ForgetAfter int `mapstructure:"forget_after"`
}

// WeatherConfig holds weather tuning
type WeatherConfig struct {
	MinDuration     int     `mapstructure:"min_duration"`
	MaxDuration     int     `mapstructure:"max_duration"`
	FogMistSeeds    int     `mapstructure:"fog_mist_seeds"`
	CalmClearChance float64 `mapstructure:"calm_clear_chance"`
}

// HazardsConfig holds tile hazard settings
type HazardsConfig struct {
	MinefieldDamage int    `mapstructure:"minefield_damage"`
	ReefDamage      int    `mapstructure:"reef_damage"`
	StormBonus      int    `mapstructure:"storm_bonus"`
	MinefieldMode   string `mapstructure:"minefield_mode"`
}

// RepairConfig holds repair costs
type RepairConfig struct {
	WoodCost int `mapstructure:"wood_cost"`
	Amount   int `mapstructure:"amount"`
}

// CrewConfig holds officer ability tuning
type CrewConfig struct {
	ScryTurns       int `mapstructure:"scry_turns"`
	ScryBonus       int `mapstructure:"scry_bonus"`
	LookoutTurns    int `mapstructure:"lookout_turns"`
	LookoutBonus    int `mapstructure:"lookout_bonus"`
	CarpenterAmount int `mapstructure:"carpenter_amount"`
	Cooldown        int `mapstructure:"cooldown"`
}

// PlayerConfig describes the ship the player starts with
type PlayerConfig struct {
	Name          string   `mapstructure:"name"`
	Profile       string   `mapstructure:"profile"`
	HP            int      `mapstructure:"hp"`
	Defense       int      `mapstructure:"defense"`
	Power         int      `mapstructure:"power"`
	Sails         int      `mapstructure:"sails"`
	Crew          int      `mapstructure:"crew"`
	CrewMax       int      `mapstructure:"crew_max"`
	ViewDistance  int      `mapstructure:"view_distance"`
	Coins         int      `mapstructure:"coins"`
	Arrows        int      `mapstructure:"arrows"`
	Cannonballs   int      `mapstructure:"cannonballs"`
	Wood          int      `mapstructure:"wood"`
	MaxWeight     int      `mapstructure:"max_weight"`
	MaxVolume     int      `mapstructure:"max_volume"`
	PortGuns      []string `mapstructure:"port_guns"`
	StarboardGuns []string `mapstructure:"starboard_guns"`
	Officers      []string `mapstructure:"officers"`
}

// ServerConfig holds process-level settings
type ServerConfig struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// StorageConfig holds snapshot persistence settings
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// ItemsConfig points at the item statistics table
type ItemsConfig struct {
	Path string `mapstructure:"path"`
}

// SimConfig drives the headless simulator
type SimConfig struct {
	Turns    int    `mapstructure:"turns"`
	SaveSlot string `mapstructure:"save_slot"`
}

var (
	// current is swapped whole on reload; readers keep the snapshot they loaded
	current atomic.Pointer[Config]
	v       *viper.Viper
	// overlay is the environment merged over the base file, reapplied on reload
	overlay string
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Map defaults
	v.SetDefault("game.map.width", 48)
	v.SetDefault("game.map.height", 36)
	v.SetDefault("game.map.seed", 0)
	v.SetDefault("game.map.frequency", 0.09)
	v.SetDefault("game.map.octaves", 4)
	v.SetDefault("game.map.persistence", 0.5)
	v.SetDefault("game.map.border", 1)
	v.SetDefault("game.map.ports", 6)
	v.SetDefault("game.map.minefields", 8)
	v.SetDefault("game.map.reefs", 10)
	v.SetDefault("game.map.wrecks", 4)
	v.SetDefault("game.map.mist_patches", 12)
	v.SetDefault("game.map.monsters", 3)
	v.SetDefault("game.map.rivals", 1)
	v.SetDefault("game.map.min_spawn_spacing", 6)

	v.SetDefault("game.fov.surface_block_elevation", "jungle")
	v.SetDefault("game.fov.flying_block_elevation", "volcano")
	v.SetDefault("game.fov.mist_view_distance", 1)

	v.SetDefault("game.combat.arrow_range", 4)
	v.SetDefault("game.combat.crew_per_arrow", 4)
	v.SetDefault("game.combat.crew_per_gun", 2)

	v.SetDefault("game.ai.forget_after", 0)

	v.SetDefault("game.weather.min_duration", 3)
	v.SetDefault("game.weather.max_duration", 8)
	v.SetDefault("game.weather.fog_mist_seeds", 3)
	v.SetDefault("game.weather.calm_clear_chance", 0.25)

	v.SetDefault("game.hazards.minefield_damage", 6)
	v.SetDefault("game.hazards.reef_damage", 3)
	v.SetDefault("game.hazards.storm_bonus", 2)
	v.SetDefault("game.hazards.minefield_mode", "one_shot")

	v.SetDefault("game.repair.wood_cost", 2)
	v.SetDefault("game.repair.amount", 5)

	v.SetDefault("game.crew.scry_turns", 5)
	v.SetDefault("game.crew.scry_bonus", 3)
	v.SetDefault("game.crew.lookout_turns", 5)
	v.SetDefault("game.crew.lookout_bonus", 2)
	v.SetDefault("game.crew.carpenter_amount", 4)
	v.SetDefault("game.crew.cooldown", 10)

	// Player ship defaults
	v.SetDefault("game.player.name", "Wayfarer")
	v.SetDefault("game.player.profile", "water")
	v.SetDefault("game.player.hp", 30)
	v.SetDefault("game.player.defense", 1)
	v.SetDefault("game.player.power", 3)
	v.SetDefault("game.player.sails", 10)
	v.SetDefault("game.player.crew", 12)
	v.SetDefault("game.player.crew_max", 16)
	v.SetDefault("game.player.view_distance", 5)
	v.SetDefault("game.player.coins", 100)
	v.SetDefault("game.player.arrows", 20)
	v.SetDefault("game.player.cannonballs", 12)
	v.SetDefault("game.player.wood", 6)
	v.SetDefault("game.player.max_weight", 200)
	v.SetDefault("game.player.max_volume", 150)
	v.SetDefault("game.player.port_guns", []string{"carronade", "long_gun"})
	v.SetDefault("game.player.starboard_guns", []string{"carronade", "long_gun"})
	v.SetDefault("game.player.officers", []string{"scry", "lookout", "carpenter", "gunner"})

	v.SetDefault("game.victory_when_cleared", false)

	// Process defaults
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "console")

	v.SetDefault("storage.path", "archipelago.db")
	v.SetDefault("items.path", "")

	v.SetDefault("sim.turns", 200)
	v.SetDefault("sim.save_slot", "")
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()
	overlay = ""

	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/archipelago")
	}

	v.SetEnvPrefix("ARCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A specific file that does not exist falls back to defaults; for the
		// search paths only a missing file is tolerated
		if configPath == "" {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	next, err := decode()
	if err != nil {
		return err
	}
	current.Store(next)
	return nil
}

func decode() (*Config, error) {
	next := &Config{}
	if err := v.Unmarshal(next); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(next); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return next, nil
}

// Get returns the global config instance
func Get() *Config {
	if c := current.Load(); c != nil {
		return c
	}
	if err := Init(""); err != nil {
		panic("failed to initialize config with defaults: " + err.Error())
	}
	return current.Load()
}

// LoadEnvironmentConfig merges config.<env>.yaml, found next to the loaded
// config file or in the working directory, over the current values. A
// missing overlay file is not an error.
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}
	if err := mergeOverlay(env); err != nil {
		return err
	}
	next, err := decode()
	if err != nil {
		return err
	}
	overlay = env
	current.Store(next)
	return nil
}

func mergeOverlay(env string) error {
	base := v.ConfigFileUsed()
	envFile := fmt.Sprintf("config.%s.yaml", env)
	if base != "" {
		envFile = filepath.Join(filepath.Dir(base), envFile)
	}
	if _, err := os.Stat(envFile); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	v.SetConfigFile(envFile)
	err := v.MergeInConfig()
	if base != "" {
		v.SetConfigFile(base)
	}
	if err != nil {
		return fmt.Errorf("error merging environment config %s: %w", envFile, err)
	}
	return nil
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file. onChange receives the
// validation error when the new file is rejected; the previous values stay.
func WatchConfig(onChange func(error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		var err error
		if overlay != "" {
			err = mergeOverlay(overlay)
		}
		var next *Config
		if err == nil {
			next, err = decode()
		}
		if err == nil {
			current.Store(next)
		}
		if onChange != nil {
			onChange(err)
		}
	})
	v.WatchConfig()
}

var minefieldModes = map[string]bool{"one_shot": true, "persistent": true}

var logLevels = map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true, "disabled": true}

// Validate validates the configuration values
func Validate(c *Config) error {
	m := c.Game.Map
	if m.Width < 3 || m.Height < 3 {
		return fmt.Errorf("game.map dimensions must be at least 3x3")
	}
	if m.Frequency <= 0 {
		return fmt.Errorf("game.map.frequency must be positive")
	}
	if m.Octaves < 1 {
		return fmt.Errorf("game.map.octaves must be at least 1")
	}
	if m.Persistence <= 0 || m.Persistence > 1 {
		return fmt.Errorf("game.map.persistence must be in (0, 1]")
	}
	if m.Border < 0 || 2*m.Border >= min(m.Width, m.Height) {
		return fmt.Errorf("game.map.border must leave room inside the map")
	}
	if m.Ports < 0 || m.Minefields < 0 || m.Reefs < 0 || m.Wrecks < 0 || m.MistPatches < 0 {
		return fmt.Errorf("game.map decoration counts must be non-negative")
	}
	if m.Monsters < 0 || m.Rivals < 0 {
		return fmt.Errorf("game.map spawn counts must be non-negative")
	}
	if m.MinSpawnSpacing < 1 {
		return fmt.Errorf("game.map.min_spawn_spacing must be at least 1")
	}

	if c.Game.FOV.SurfaceBlockElevation == "" || c.Game.FOV.FlyingBlockElevation == "" {
		return fmt.Errorf("game.fov block elevations must be set")
	}
	if c.Game.FOV.MistViewDistance < 0 {
		return fmt.Errorf("game.fov.mist_view_distance must be non-negative")
	}

	if c.Game.Combat.ArrowRange < 1 {
		return fmt.Errorf("game.combat.arrow_range must be at least 1")
	}
	if c.Game.Combat.CrewPerArrow < 1 || c.Game.Combat.CrewPerGun < 1 {
		return fmt.Errorf("game.combat crew ratios must be at least 1")
	}

	if c.Game.AI.ForgetAfter < 0 {
		return fmt.Errorf("game.ai.forget_after must be non-negative")
	}

	w := c.Game.Weather
	if w.MinDuration < 1 || w.MaxDuration < w.MinDuration {
		return fmt.Errorf("game.weather durations must satisfy 1 <= min_duration <= max_duration")
	}
	if w.FogMistSeeds < 0 {
		return fmt.Errorf("game.weather.fog_mist_seeds must be non-negative")
	}
	if w.CalmClearChance < 0 || w.CalmClearChance > 1 {
		return fmt.Errorf("game.weather.calm_clear_chance must be between 0 and 1")
	}

	h := c.Game.Hazards
	if h.MinefieldDamage < 0 || h.ReefDamage < 0 || h.StormBonus < 0 {
		return fmt.Errorf("game.hazards damage values must be non-negative")
	}
	if !minefieldModes[h.MinefieldMode] {
		return fmt.Errorf("game.hazards.minefield_mode must be one_shot or persistent, got %q", h.MinefieldMode)
	}

	if c.Game.Repair.WoodCost < 0 || c.Game.Repair.Amount < 1 {
		return fmt.Errorf("game.repair needs wood_cost >= 0 and amount >= 1")
	}

	cr := c.Game.Crew
	if cr.ScryTurns < 0 || cr.ScryBonus < 0 || cr.LookoutTurns < 0 || cr.LookoutBonus < 0 || cr.CarpenterAmount < 0 || cr.Cooldown < 0 {
		return fmt.Errorf("game.crew values must be non-negative")
	}

	p := c.Game.Player
	if p.HP < 1 || p.Sails < 1 {
		return fmt.Errorf("game.player.hp and game.player.sails must be positive")
	}
	if p.Crew < 0 || p.CrewMax < p.Crew {
		return fmt.Errorf("game.player.crew must be between 0 and crew_max")
	}
	if p.ViewDistance < 0 {
		return fmt.Errorf("game.player.view_distance must be non-negative")
	}
	if p.Coins < 0 || p.Arrows < 0 || p.Cannonballs < 0 || p.Wood < 0 {
		return fmt.Errorf("game.player stores must be non-negative")
	}

	if !logLevels[strings.ToLower(c.Server.LogLevel)] {
		return fmt.Errorf("server.log_level %q is not a known level", c.Server.LogLevel)
	}
	if c.Server.LogFormat != "console" && c.Server.LogFormat != "json" {
		return fmt.Errorf("server.log_format must be console or json")
	}

	if c.Sim.Turns < 0 {
		return fmt.Errorf("sim.turns must be non-negative")
	}

	return nil
}
