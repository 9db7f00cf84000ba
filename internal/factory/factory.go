package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/pixelquest/accounts/internal/dependencies/clock"
	"github.com/pixelquest/accounts/internal/dependencies/random"
	"github.com/pixelquest/accounts/internal/identity"
	"github.com/pixelquest/accounts/internal/services/account"
	"github.com/pixelquest/accounts/internal/services/nickname"
	"github.com/pixelquest/accounts/internal/storage"
	"github.com/pixelquest/accounts/internal/storage/memory"
	pgstorage "github.com/pixelquest/accounts/internal/storage/postgres"
	redisstorage "github.com/pixelquest/accounts/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock    clock.Clock
	Random   random.Random
	Verifier identity.Verifier

	// Services
	NicknameService *nickname.Service
	AccountService  *account.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Verifier validates ID tokens (required)
	Verifier identity.Verifier
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "postgres")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// PostgresConfig holds Postgres connection settings (required if StorageType is "postgres")
	PostgresConfig *pgstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	if cfg.Verifier == nil {
		return nil, errors.New("Verifier is required")
	}

	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
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
	case StorageTypePostgres:
		if cfg.PostgresConfig == nil {
			return nil, errors.New("PostgresConfig required when StorageType is postgres")
		}
		pgStore, err := pgstorage.New(*cfg.PostgresConfig)
		if err != nil {
			return nil, err
		}
		store = pgStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'postgres'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, cfg.Verifier, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, verifier identity.Verifier, logger *slog.Logger) *App {
	// Create services
	nicknameService := nickname.New(rnd)
	accountService := account.New(store, verifier, nicknameService, clk, logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		Verifier:        verifier,
		NicknameService: nicknameService,
		AccountService:  accountService,
	}
}
