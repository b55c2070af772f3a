// Package main provides the Charter game server: a Telnet frontend,
// campaign persistence, and the in-process action engine.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/charter/internal/config"
	"github.com/cory-johannsen/charter/internal/frontend/handlers"
	"github.com/cory-johannsen/charter/internal/frontend/telnet"
	"github.com/cory-johannsen/charter/internal/game/action"
	"github.com/cory-johannsen/charter/internal/game/dice"
	"github.com/cory-johannsen/charter/internal/game/session"
	"github.com/cory-johannsen/charter/internal/narrative"
	"github.com/cory-johannsen/charter/internal/observability"
	"github.com/cory-johannsen/charter/internal/server"
	"github.com/cory-johannsen/charter/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting charterd",
		zap.String("telnet_addr", cfg.Telnet.Addr()),
		zap.String("content_dir", cfg.Game.ContentDir),
		zap.String("scenario_dir", cfg.Game.ScenarioDir),
	)

	// Connect to PostgreSQL
	ctx := context.Background()
	dbStart := time.Now()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	logger.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("database", cfg.Database.Name),
		zap.Duration("elapsed", time.Since(dbStart)),
	)

	// Load action content
	specs, err := action.LoadSpecs(cfg.Game.ContentDir)
	if err != nil {
		logger.Fatal("loading action specs", zap.Error(err))
	}
	registry := action.NewRegistry()
	for _, spec := range specs {
		if err := spec.Validate(cfg.Game.DieSize); err != nil {
			logger.Fatal("invalid action spec", zap.Error(err))
		}
		registry.Register(spec)
	}
	logger.Info("action content loaded", zap.Int("actions", len(specs)))

	// Build services
	accounts := postgres.NewAccountRepository(pool.DB())
	campaigns := postgres.NewCampaignRepository(pool.DB())
	audit := postgres.NewRollAuditRepository(pool.DB())
	narrator := narrative.NewWriter(cfg.Narrative, logger)
	if narrator.Enabled() {
		logger.Info("narrative dispatches enabled", zap.String("model", cfg.Narrative.Model))
	}

	gameHandler := handlers.NewGameHandler(
		campaigns, audit,
		session.NewManager(), registry,
		dice.NewCryptoSource(), narrator,
		cfg.Game, logger,
	)
	authHandler := handlers.NewAuthHandler(accounts, gameHandler, logger)
	telnetAcceptor := telnet.NewAcceptor(cfg.Telnet, authHandler, logger)

	// Wire lifecycle
	lifecycle := server.NewLifecycle(logger)

	lifecycle.Add("postgres", &server.FuncService{
		StartFn: func() error {
			for {
				time.Sleep(30 * time.Second)
				if err := pool.Health(ctx, 5*time.Second); err != nil {
					logger.Warn("database health check failed", zap.Error(err))
				}
			}
		},
		StopFn: func() {
			pool.Close()
		},
	})

	lifecycle.Add("telnet", &server.FuncService{
		StartFn: func() error {
			return telnetAcceptor.ListenAndServe()
		},
		StopFn: func() {
			telnetAcceptor.Stop()
		},
	})

	logger.Info("charterd initialized",
		zap.Duration("startup", time.Since(start)),
		zap.String("telnet_addr", cfg.Telnet.Addr()),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
