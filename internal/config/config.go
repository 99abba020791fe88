// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mcoot/gamevault/internal/dependencies/catalog"
	"github.com/mcoot/gamevault/internal/ratelimit"
	"github.com/mcoot/gamevault/internal/services/auth"
	"github.com/mcoot/gamevault/internal/services/token"
	mongostorage "github.com/mcoot/gamevault/internal/storage/mongo"
	redisstorage "github.com/mcoot/gamevault/internal/storage/redis"
	sqlitestorage "github.com/mcoot/gamevault/internal/storage/sqlite"
)

// Environments
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Storage backends
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
	StorageMongo  = "mongo"
)

// Config holds all server configuration
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Token     token.Config
	Auth      auth.Config
	Catalog   catalog.Config
	RateLimit ratelimit.Config
	LogLevel  slog.Level
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Env         string
	Port        int
	FrontendURL string
}

// StorageConfig selects and configures the storage backend
type StorageConfig struct {
	Type   string
	Mongo  mongostorage.Config
	Redis  redisstorage.Config
	SQLite sqlitestorage.Config
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == EnvProduction
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// Load reads an optional .env file, then the environment, and validates the result
func Load() (*Config, error) {
	// A missing .env file is fine; variables may come from the real environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables only
func FromEnv() (*Config, error) {
	p := &parser{}

	mongoCfg := mongostorage.DefaultConfig()
	mongoCfg.URI = getEnv("MONGO_URI", mongoCfg.URI)
	mongoCfg.Database = getEnv("MONGO_DATABASE", mongoCfg.Database)

	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = getEnv("REDIS_URL", redisCfg.URL)

	sqliteCfg := sqlitestorage.DefaultConfig()
	sqliteCfg.Path = getEnv("SQLITE_PATH", sqliteCfg.Path)

	tokenCfg := token.DefaultConfig()
	tokenCfg.Secret = os.Getenv("JWT_SECRET")
	tokenCfg.TTL = p.getDuration("TOKEN_TTL", tokenCfg.TTL)

	authCfg := auth.DefaultConfig()
	authCfg.BcryptCost = p.getInt("BCRYPT_COST", authCfg.BcryptCost)

	catalogCfg := catalog.DefaultConfig()
	catalogCfg.BaseURL = strings.TrimRight(getEnv("RAWG_BASE_URL", catalogCfg.BaseURL), "/")
	catalogCfg.APIKey = os.Getenv("RAWG_API_KEY")
	catalogCfg.Timeout = p.getDuration("RAWG_TIMEOUT", catalogCfg.Timeout)
	catalogCfg.Retries = p.getInt("RAWG_RETRIES", catalogCfg.Retries)

	limitCfg := ratelimit.DefaultConfig()
	limitCfg.Requests = p.getInt("RATE_LIMIT_REQUESTS", limitCfg.Requests)
	limitCfg.Window = p.getDuration("RATE_LIMIT_WINDOW", limitCfg.Window)

	cfg := &Config{
		Server: ServerConfig{
			Env:         getEnv("APP_ENV", EnvDevelopment),
			Port:        p.getInt("PORT", 3000),
			FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		},
		Storage: StorageConfig{
			Type:   strings.ToLower(getEnv("STORAGE_TYPE", StorageMemory)),
			Mongo:  mongoCfg,
			Redis:  redisCfg,
			SQLite: sqliteCfg,
		},
		Token:     tokenCfg,
		Auth:      authCfg,
		Catalog:   catalogCfg,
		RateLimit: limitCfg,
		LogLevel:  p.getLevel("LOG_LEVEL", slog.LevelInfo),
	}

	if err := errors.Join(p.errs...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required values and ranges, reporting every failure
func (c *Config) Validate() error {
	var errs []error

	switch c.Server.Env {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		errs = append(errs, fmt.Errorf("APP_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.FrontendURL == "" {
		errs = append(errs, errors.New("FRONTEND_URL is required"))
	}

	switch c.Storage.Type {
	case StorageMemory:
	case StorageRedis:
		if c.Storage.Redis.URL == "" {
			errs = append(errs, errors.New("REDIS_URL is required when STORAGE_TYPE=redis"))
		}
	case StorageSQLite:
		if c.Storage.SQLite.Path == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required when STORAGE_TYPE=sqlite"))
		}
	case StorageMongo:
		if c.Storage.Mongo.URI == "" {
			errs = append(errs, errors.New("MONGO_URI is required when STORAGE_TYPE=mongo"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_TYPE must be one of memory, redis, sqlite, mongo, got '%s'", c.Storage.Type))
	}

	if c.Token.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.Token.TTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.Auth.BcryptCost))
	}

	if c.Catalog.Timeout <= 0 {
		errs = append(errs, errors.New("RAWG_TIMEOUT must be positive"))
	}
	if c.Catalog.Retries < 0 {
		errs = append(errs, errors.New("RAWG_RETRIES must not be negative"))
	}

	if c.RateLimit.Requests <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_REQUESTS must be positive"))
	}
	if c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_WINDOW must be positive"))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parser collects conversion errors so Load can report all of them at once
type parser struct {
	errs []error
}

func (p *parser) getInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: invalid integer %q", key, raw))
		return defaultValue
	}
	return v
}

func (p *parser) getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: invalid duration %q", key, raw))
		return defaultValue
	}
	return v
}

func (p *parser) getLevel(key string, defaultValue slog.Level) slog.Level {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: invalid level %q", key, raw))
		return defaultValue
	}
	return level
}
