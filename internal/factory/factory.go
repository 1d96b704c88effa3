package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/sendagame/progress/internal/dependencies/clock"
	"github.com/sendagame/progress/internal/dependencies/random"
	"github.com/sendagame/progress/internal/levels"
	"github.com/sendagame/progress/internal/services/choice"
	"github.com/sendagame/progress/internal/services/lifecycle"
	"github.com/sendagame/progress/internal/services/player"
	"github.com/sendagame/progress/internal/services/stats"
	"github.com/sendagame/progress/internal/services/timing"
	"github.com/sendagame/progress/internal/storage"
	"github.com/sendagame/progress/internal/storage/memory"
	redisstorage "github.com/sendagame/progress/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Domain
	Catalog *levels.Catalog

	// Services
	TimingService       *timing.Service
	ChoiceValidator     *choice.Validator
	StatsAggregator     *stats.Aggregator
	PlayerService       *player.Service
	LifecycleController *lifecycle.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// Catalog is the level catalog (optional)
	// If nil, levels.Default() is used
	Catalog *levels.Catalog
	// TimingConfig holds the duration clamp bounds (optional)
	// If zero value, defaults to timing.DefaultConfig()
	TimingConfig timing.Config
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
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
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
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	catalog := cfg.Catalog
	if catalog == nil {
		catalog = levels.Default()
	}

	timingCfg := cfg.TimingConfig
	if timingCfg.CeilingSeconds == 0 {
		timingCfg = timing.DefaultConfig()
	}

	return newWithDependencies(store, catalog, timingCfg, clk, rnd, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	catalog *levels.Catalog,
	timingCfg timing.Config,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *App {
	timingService := timing.New(timingCfg)
	choiceValidator := choice.New(catalog)
	statsAggregator := stats.New(choiceValidator, logger)
	playerService := player.New(store, clk, rnd, logger)
	lifecycleController := lifecycle.NewController(
		store, catalog, timingService, choiceValidator, statsAggregator, clk, rnd, logger,
	)

	return &App{
		Storage:             store,
		Clock:               clk,
		Random:              rnd,
		Catalog:             catalog,
		TimingService:       timingService,
		ChoiceValidator:     choiceValidator,
		StatsAggregator:     statsAggregator,
		PlayerService:       playerService,
		LifecycleController: lifecycleController,
	}
}
