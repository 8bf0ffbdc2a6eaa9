// Command sim plays headless sessions with a scripted captain. It is the
// quickest way to watch the engine run end to end.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/Archipelago/internal/config"
	"github.com/mitchelldurbincs/Archipelago/internal/game"
	"github.com/mitchelldurbincs/Archipelago/internal/game/events"
	"github.com/mitchelldurbincs/Archipelago/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/Archipelago/internal/items"
	"github.com/mitchelldurbincs/Archipelago/internal/monitoring"
	"github.com/mitchelldurbincs/Archipelago/internal/storage"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	turns := flag.Int("turns", -1, "Turn limit (-1 to use config default)")
	seed := flag.Int64("seed", 0, "Map seed (0 to use config, then the clock)")
	render := flag.Bool("render", false, "Print the map after every turn")
	color := flag.Bool("color", true, "Use ANSI colors when rendering")
	saveSlot := flag.String("save", "", "Save the session to this slot when the turn limit is reached (empty to use config default)")
	resume := flag.String("resume", "", "Resume the session saved in this slot")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	watch := flag.Bool("watch-config", false, "Reload the config file when it changes")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	env := os.Getenv("APP_ENV")
	if err := config.LoadEnvironmentConfig(env); err != nil {
		log.Fatal().Err(err).Str("env", env).Msg("Failed to load environment config")
	}
	cfg := config.Get()

	if *turns == -1 {
		*turns = cfg.Sim.Turns
	}
	if *saveSlot == "" {
		*saveSlot = cfg.Sim.SaveSlot
	}
	if *logLevel == "" {
		*logLevel = cfg.Server.LogLevel
	}
	setupLogging(*logLevel, cfg.Server.LogFormat)
	log.Debug().Str("file", config.ConfigFilePath()).Str("env", env).Msg("Configuration loaded")

	if *watch {
		config.WatchConfig(func(err error) {
			if err != nil {
				log.Warn().Err(err).Msg("Config change rejected")
				return
			}
			log.Info().Str("file", config.ConfigFilePath()).Msg("Config reloaded; changes apply to the next session")
		})
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, options{
		turns:    *turns,
		seed:     *seed,
		render:   *render,
		color:    *color,
		saveSlot: *saveSlot,
		resume:   *resume,
	}); err != nil {
		log.Fatal().Err(err).Msg("Simulation failed")
	}
}

type options struct {
	turns    int
	seed     int64
	render   bool
	color    bool
	saveSlot string
	resume   string
}

func run(ctx context.Context, cfg *config.Config, opts options) error {
	settings, err := game.SettingsFromConfig(cfg)
	if err != nil {
		return err
	}
	table, err := items.Load(cfg.Items.Path)
	if err != nil {
		return err
	}

	bus := events.NewEventBus(log.Logger)
	bus.Subscribe(subscribers.NewLoggerSubscriber("sim-log", log.Logger, zerolog.DebugLevel))
	recorder := events.NewRecorder("sim-recorder")
	bus.Subscribe(recorder)
	monitor := monitoring.NewTurnMonitor(50*time.Millisecond, 50)
	bus.Subscribe(monitor)

	var store *storage.Store
	if opts.saveSlot != "" || opts.resume != "" {
		store, err = storage.Open(cfg.Storage.Path, log.Logger)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	gcfg := game.GameConfig{
		Settings: settings,
		Items:    table,
		Seed:     opts.seed,
		Logger:   log.Logger,
		EventBus: bus,
	}
	var engine *game.Engine
	if opts.resume != "" {
		var snap game.Snapshot
		info, err := store.Load(ctx, opts.resume, &snap)
		if err != nil {
			return fmt.Errorf("resume %q: %w", opts.resume, err)
		}
		log.Info().Str("slot", info.Slot).Int("turn", info.Turn).Time("saved_at", info.SavedAt).Msg("Resuming session")
		engine, err = game.Restore(ctx, gcfg, snap)
		if err != nil {
			return err
		}
	} else {
		engine, err = game.NewEngine(ctx, gcfg)
		if err != nil {
			return err
		}
	}

	if opts.render {
		fmt.Println(engine.Render(opts.color))
	}

	skipper := newCaptain(rand.New(rand.NewSource(engine.Snapshot().Seed)))
	limit := engine.Turn() + opts.turns
	for !engine.IsGameOver() && engine.Turn() < limit {
		out, err := engine.Submit(ctx, skipper.next(engine))
		if errors.Is(err, context.Canceled) {
			log.Info().Int("turn", engine.Turn()).Msg("Interrupted")
			break
		}
		if err != nil {
			return err
		}
		if opts.render && out.TurnAdvanced {
			fmt.Println(engine.Render(opts.color))
		}
	}

	suspended := false
	if !engine.IsGameOver() {
		if store != nil && opts.saveSlot != "" {
			snap := engine.Snapshot()
			if err := store.Save(context.Background(), opts.saveSlot, snap.SessionID, snap.Turn, snap); err != nil {
				return err
			}
			log.Info().Str("slot", opts.saveSlot).Int("turn", snap.Turn).Msg("Session saved")
			suspended = true
		} else if err := engine.Abandon("turn limit reached"); err != nil {
			return err
		}
	}

	if store != nil {
		if err := store.AppendEvents(context.Background(), recorder.Events()); err != nil {
			return err
		}
	}

	printSummary(engine, monitor.GetMetrics(), suspended)
	return nil
}

func printSummary(e *game.Engine, m monitoring.TurnMetrics, suspended bool) {
	s := e.Stats()
	outcome := string(e.Outcome())
	if suspended {
		outcome = "saved"
	}
	fmt.Printf("Session %s ended %s after %s turns\n", e.SessionID(), outcome, humanize.Comma(int64(e.Turn())))
	fmt.Printf("  sunk %d, dealt %s damage, took %s\n", s.Kills, humanize.Comma(int64(s.DamageDealt)), humanize.Comma(int64(s.DamageTaken)))
	fmt.Printf("  earned %s coins, spent %s, hit %d hazards\n", humanize.Comma(int64(s.CoinsEarned)), humanize.Comma(int64(s.CoinsSpent)), s.HazardsHit)
	if p := e.Player(); p != nil && p.Cargo != nil {
		fmt.Printf("  %s holds %s coins\n", p.Name, humanize.Comma(int64(p.Cargo.Coins)))
	}
	fmt.Printf("  %s rejected orders, %s AI actions, peak turn %s on the %s\n",
		humanize.Comma(int64(s.ActionsRejected)), humanize.Comma(int64(s.AIActions)), m.Peak, humanize.Ordinal(m.PeakTurn+1))
}

func setupLogging(level, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if format == "json" || os.Getenv("APP_ENV") == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
