package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/zoombee/equation-api/internal/config"
	"github.com/zoombee/equation-api/internal/engine"
	"github.com/zoombee/equation-api/internal/notation"
	"github.com/zoombee/equation-api/internal/platform/logger"
	"github.com/zoombee/equation-api/internal/service"
)

// application holds the composed dependencies of the running server.
type application struct {
	config       *config.Config
	logger       *slog.Logger
	solveService service.SolveService
}

// initializeApp loads configuration and wires up application components.
// Returns the composed application and any initialization error.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)
	slog.Debug("Solver configuration",
		"timeout_seconds", cfg.Solver.TimeoutSeconds,
		"search_range", cfg.Solver.SearchRange,
		"max_iterations", cfg.Solver.MaxIterations)

	return buildApplication(cfg, log)
}

// buildApplication wires the solve pipeline from an already-loaded config.
// Split out from initializeApp so tests can compose the application without
// touching process environment or global logging.
func buildApplication(cfg *config.Config, log *slog.Logger) (*application, error) {
	eng := engine.New(engine.Config{
		SearchRange:   cfg.Solver.SearchRange,
		MaxIterations: cfg.Solver.MaxIterations,
	})

	solveService, err := service.NewSolveService(
		notation.DefaultRules(),
		eng,
		log,
		time.Duration(cfg.Solver.TimeoutSeconds)*time.Second,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create solve service: %w", err)
	}

	return &application{
		config:       cfg,
		logger:       log,
		solveService: solveService,
	}, nil
}
