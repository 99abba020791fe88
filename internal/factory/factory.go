package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/gamevault/internal/config"
	"github.com/mcoot/gamevault/internal/dependencies/catalog"
	"github.com/mcoot/gamevault/internal/dependencies/clock"
	"github.com/mcoot/gamevault/internal/dependencies/ids"
	"github.com/mcoot/gamevault/internal/ratelimit"
	"github.com/mcoot/gamevault/internal/seed"
	"github.com/mcoot/gamevault/internal/services/auth"
	"github.com/mcoot/gamevault/internal/services/games"
	"github.com/mcoot/gamevault/internal/services/search"
	"github.com/mcoot/gamevault/internal/services/token"
	"github.com/mcoot/gamevault/internal/storage"
	"github.com/mcoot/gamevault/internal/storage/memory"
	mongostorage "github.com/mcoot/gamevault/internal/storage/mongo"
	redisstorage "github.com/mcoot/gamevault/internal/storage/redis"
	sqlitestorage "github.com/mcoot/gamevault/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = config.StorageMemory
	StorageTypeRedis  = config.StorageRedis
	StorageTypeSQLite = config.StorageSQLite
	StorageTypeMongo  = config.StorageMongo
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock   clock.Clock
	IDs     ids.Generator
	Catalog catalog.Catalog
	Limiter ratelimit.Limiter

	// Services
	AuthService   *auth.Service
	TokenService  *token.Service
	GamesService  *games.Service
	SearchService *search.Service
	Seeder        *seed.Seeder

	closers []func() error
}

// Close releases storage connections and stops background work
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend
	// If empty, defaults to "memory"
	StorageType string
	// Backend settings, required for the matching StorageType
	RedisConfig  *redisstorage.Config
	SQLiteConfig *sqlitestorage.Config
	MongoConfig  *mongostorage.Config

	// TokenConfig must carry a secret
	TokenConfig token.Config
	// AuthConfig, CatalogConfig and RateLimitConfig default when zero
	AuthConfig      auth.Config
	CatalogConfig   catalog.Config
	RateLimitConfig ratelimit.Config
}

// ConfigFrom maps loaded server settings onto a factory Config
func ConfigFrom(cfg *config.Config, logger *slog.Logger) Config {
	return Config{
		Logger:          logger,
		StorageType:     cfg.Storage.Type,
		RedisConfig:     &cfg.Storage.Redis,
		SQLiteConfig:    &cfg.Storage.SQLite,
		MongoConfig:     &cfg.Storage.Mongo,
		TokenConfig:     cfg.Token,
		AuthConfig:      cfg.Auth,
		CatalogConfig:   cfg.Catalog,
		RateLimitConfig: cfg.RateLimit,
	}
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := clock.New()

	// Create storage based on type
	var store storage.Storage
	var redisClient *redis.Client
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
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		store = redisStore
		redisClient = redisStore.Client()
	case StorageTypeSQLite:
		if cfg.SQLiteConfig == nil {
			return nil, errors.New("SQLiteConfig required when StorageType is sqlite")
		}
		sqliteStore, err := sqlitestorage.New(ctx, *cfg.SQLiteConfig)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		store = sqliteStore
	case StorageTypeMongo:
		if cfg.MongoConfig == nil {
			return nil, errors.New("MongoConfig required when StorageType is mongo")
		}
		mongoStore, err := mongostorage.New(ctx, *cfg.MongoConfig)
		if err != nil {
			return nil, fmt.Errorf("connect to mongo: %w", err)
		}
		store = mongoStore
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be memory, redis, sqlite or mongo", storageType)
	}

	// Redis deployments share rate limit counters across instances
	var limiter ratelimit.Limiter
	var stopLimiter func() error
	if redisClient != nil {
		limiter = ratelimit.NewRedisLimiter(cfg.RateLimitConfig, redisClient, clk)
	} else {
		memLimiter := ratelimit.NewMemoryLimiter(cfg.RateLimitConfig, clk)
		limiter = memLimiter
		stopLimiter = func() error { memLimiter.Stop(); return nil }
	}

	catalogCfg := cfg.CatalogConfig
	if catalogCfg == (catalog.Config{}) {
		catalogCfg = catalog.DefaultConfig()
	}
	if catalogCfg.APIKey == "" {
		logger.Warn("no external catalog API key configured; searches will return custom games only")
	}
	rawg := catalog.NewRAWGClient(catalogCfg, logger)

	app, err := newWithDependencies(store, clk, ids.New(), rawg, limiter, cfg.AuthConfig, cfg.TokenConfig, logger)
	if err != nil {
		if stopLimiter != nil {
			_ = stopLimiter()
		}
		_ = store.Close()
		return nil, err
	}
	if stopLimiter != nil {
		app.closers = append(app.closers, stopLimiter)
	}
	app.closers = append(app.closers, store.Close)
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	idGen ids.Generator,
	cat catalog.Catalog,
	limiter ratelimit.Limiter,
	authCfg auth.Config,
	tokenCfg token.Config,
	logger *slog.Logger,
) (*App, error) {
	authService, err := auth.New(store, clk, idGen, authCfg)
	if err != nil {
		return nil, fmt.Errorf("create auth service: %w", err)
	}
	tokenService, err := token.New(clk, idGen, tokenCfg)
	if err != nil {
		return nil, fmt.Errorf("create token service: %w", err)
	}
	gamesService := games.New(store, clk, idGen, logger)
	searchService := search.New(gamesService, cat, logger)
	seeder := seed.New(store, authService, gamesService, logger)

	return &App{
		Storage:       store,
		Clock:         clk,
		IDs:           idGen,
		Catalog:       cat,
		Limiter:       limiter,
		AuthService:   authService,
		TokenService:  tokenService,
		GamesService:  gamesService,
		SearchService: searchService,
		Seeder:        seeder,
	}, nil
}
