package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/connectn/internal/config"
	"github.com/mcoot/connectn/internal/dependencies/clock"
	"github.com/mcoot/connectn/internal/dependencies/random"
	"github.com/mcoot/connectn/internal/model"
	"github.com/mcoot/connectn/internal/services/game"
	"github.com/mcoot/connectn/internal/services/history"
	"github.com/mcoot/connectn/internal/services/match"
	"github.com/mcoot/connectn/internal/storage"
	"github.com/mcoot/connectn/internal/storage/memory"
	redisstorage "github.com/mcoot/connectn/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = config.StorageTypeMemory
	StorageTypeRedis  = config.StorageTypeRedis
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random
	Logger *slog.Logger

	// Services
	HistoryService *history.Service

	closer io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	var closer io.Closer
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
		closer = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	app := newWithDependencies(store, clock.New(), random.New(), logger)
	app.closer = closer
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		Logger:         logger,
		HistoryService: history.New(store, logger),
	}
}

// NewMatch creates a match controller for a fresh engine bound to rules
func (a *App) NewMatch(rules model.Rules, input match.InputProvider, renderer match.Renderer) (*match.Controller, error) {
	engine, err := game.New(rules)
	if err != nil {
		return nil, err
	}
	return match.NewController(engine, input, renderer, a.HistoryService, a.Clock, a.Random, a.Logger), nil
}

// RandomFirstPlayer returns rules with the first player drawn at random
func (a *App) RandomFirstPlayer(rules model.Rules) model.Rules {
	rules.FirstPlayer = a.Random.Intn(rules.Players)
	return rules
}

// Close releases the storage connection, if any
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
