package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/farwind/engine/internal/config"
	"github.com/farwind/engine/internal/data"
	"github.com/farwind/engine/internal/engine"
	"github.com/farwind/engine/internal/metrics"
	"github.com/farwind/engine/internal/phrase"
	"github.com/farwind/engine/internal/system"
	"github.com/farwind/engine/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "farwind:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "config/farwind.toml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		cfg = config.Default()
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	seed := cfg.Engine.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	logger.Info("starting", zap.Int64("seed", seed))

	catalog, err := data.LoadCatalog(cfg.Data.Dir)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	nGovs, nShips, nWeapons, nFleets, nPersons, nSystems := catalog.Counts()
	logger.Info("catalog loaded",
		zap.Int("governments", nGovs), zap.Int("ships", nShips),
		zap.Int("weapons", nWeapons), zap.Int("fleets", nFleets),
		zap.Int("persons", nPersons), zap.Int("systems", nSystems))

	govs := world.BuildGovernments(catalog.Governments())
	var playerGov *world.Government
	for _, g := range govs {
		if g.IsPlayer() {
			playerGov = g
			break
		}
	}
	if playerGov == nil {
		return fmt.Errorf("no government is marked as the player's")
	}

	start := catalog.System(cfg.Data.StartSystem)
	if start == nil {
		return fmt.Errorf("unknown start system %q", cfg.Data.StartSystem)
	}
	player := world.NewPlayer(playerGov)
	player.System = start
	player.Visit(start)
	if model := catalog.Ship(cfg.Data.StartShip); model != nil {
		flagship := world.NewShip(model, playerGov)
		flagship.Name = "Flagship"
		player.Flagship = flagship
		player.Ships = append(player.Ships, flagship)
	}

	phrases, err := phrase.New(cfg.Data.ScriptsDir, logger)
	if err != nil {
		return err
	}
	defer phrases.Close()

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.New(nil)
		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				logger.Warn("metrics server stopped", zap.Error(err))
			}
		}()
		logger.Info("metrics listening", zap.String("addr", cfg.Metrics.Addr))
	}

	ws := world.NewState(catalog)
	pipe := system.New(&system.Deps{
		World:    ws,
		Player:   player,
		Catalog:  catalog,
		Govs:     govs,
		Pilot:    &driftPilot{},
		Messages: &logMessages{logger},
		Phrases:  phrases,
		Rand:     rng,
		Log:      logger,
		Cfg:      cfg,
		Metrics:  collector,
	})

	e := engine.New(engine.Options{
		Pipeline: pipe,
		World:    ws,
		TickRate: cfg.Engine.TickRate.Std(),
		Log:      logger,
	})
	e.Place()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(cfg.Engine.TickRate.Std())
	defer ticker.Stop()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
		}
		e.Wait()
		events := e.Step(true)
		e.Go()
		for _, ev := range events {
			fields := []zap.Field{zap.String("kind", ev.Kind.String())}
			if ev.ActorGov != nil {
				fields = append(fields, zap.String("actor", ev.ActorGov.Name))
			}
			if ev.Target != nil {
				fields = append(fields, zap.String("target", ev.Target.DisplayName()))
			}
			logger.Info("event", fields...)
		}
	}

	logger.Info("shutting down")
	e.Stop()
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}
	var zcfg zap.Config
	if cfg.Format == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zcfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zcfg.EncoderConfig.ConsoleSeparator = "  "
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.DisableCaller = true
	zcfg.DisableStacktrace = true
	return zcfg.Build()
}

// driftPilot is the built-in stand-in for a real AI: ships coast on their
// velocity with drag and cooling, and jump countdowns resolve. It issues
// no commands, so the demo world is peaceful unless the data says
// otherwise.
type driftPilot struct{}

func (driftPilot) Step(ws *world.State, player *world.Player) {}

func (driftPilot) Move(s *world.Ship, ws *world.State) {
	if s.Hyperspace > 0 {
		s.Hyperspace--
		if s.Hyperspace == 0 && s.TargetSystem != nil {
			s.System = s.TargetSystem
			s.TargetSystem = nil
		}
	}
	if s.Model.Drag > 0 {
		s.Velocity = s.Velocity.Mul(1 - s.Model.Drag)
	}
	s.Position = s.Position.Add(s.Velocity)
	s.Heat *= 0.999
}

// logMessages routes player-facing text to the log.
type logMessages struct{ log *zap.Logger }

func (m *logMessages) Message(text string, important bool) {
	if important {
		m.log.Warn(text)
		return
	}
	m.log.Info(text)
}
