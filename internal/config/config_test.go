package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable FromEnv reads so host settings do not leak into tests
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "PORT", "FRONTEND_URL", "JWT_SECRET", "TOKEN_TTL", "BCRYPT_COST",
		"STORAGE_TYPE", "MONGO_URI", "MONGO_DATABASE", "REDIS_URL", "SQLITE_PATH",
		"RAWG_API_KEY", "RAWG_BASE_URL", "RAWG_TIMEOUT", "RAWG_RETRIES",
		"RATE_LIMIT_REQUESTS", "RATE_LIMIT_WINDOW", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Server.Env)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, "http://localhost:5173", cfg.Server.FrontendURL)
	assert.Equal(t, StorageMemory, cfg.Storage.Type)
	assert.Equal(t, time.Hour, cfg.Token.TTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "https://api.rawg.io/api", cfg.Catalog.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 1, cfg.Catalog.Retries)
	assert.Equal(t, 100, cfg.RateLimit.Requests)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, uint64(2), cfg.Storage.Mongo.MinPoolSize)
	assert.Equal(t, uint64(10), cfg.Storage.Mongo.MaxPoolSize)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "8080")
	t.Setenv("FRONTEND_URL", "https://games.example.com")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("STORAGE_TYPE", "Mongo")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("MONGO_DATABASE", "vault")
	t.Setenv("RAWG_API_KEY", "key")
	t.Setenv("RAWG_BASE_URL", "http://rawg.local/api/")
	t.Setenv("RAWG_TIMEOUT", "2s")
	t.Setenv("RAWG_RETRIES", "0")
	t.Setenv("RATE_LIMIT_REQUESTS", "5")
	t.Setenv("RATE_LIMIT_WINDOW", "1m")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://games.example.com", cfg.Server.FrontendURL)
	assert.Equal(t, 30*time.Minute, cfg.Token.TTL)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, StorageMongo, cfg.Storage.Type)
	assert.Equal(t, "mongodb://db:27017", cfg.Storage.Mongo.URI)
	assert.Equal(t, "vault", cfg.Storage.Mongo.Database)
	assert.Equal(t, "key", cfg.Catalog.APIKey)
	assert.Equal(t, "http://rawg.local/api", cfg.Catalog.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 0, cfg.Catalog.Retries)
	assert.Equal(t, 5, cfg.RateLimit.Requests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestFromEnvRequiresSecret(t *testing.T) {
	clearEnv(t)

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestFromEnvReportsEveryParseError(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "abc")
	t.Setenv("TOKEN_TTL", "forever")
	t.Setenv("LOG_LEVEL", "loud")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
	assert.Contains(t, err.Error(), "TOKEN_TTL")
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Env: EnvTest, Port: 3000, FrontendURL: "http://localhost:5173"},
		Storage: StorageConfig{Type: StorageMemory},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"unknown env", func(c *Config) { c.Server.Env = "staging" }, "APP_ENV"},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "PORT"},
		{"unknown storage", func(c *Config) { c.Storage.Type = "postgres" }, "STORAGE_TYPE"},
		{"redis without url", func(c *Config) { c.Storage.Type = StorageRedis }, "REDIS_URL"},
		{"sqlite without path", func(c *Config) { c.Storage.Type = StorageSQLite }, "SQLITE_PATH"},
		{"mongo without uri", func(c *Config) { c.Storage.Type = StorageMongo }, "MONGO_URI"},
		{"bcrypt cost too low", func(c *Config) { c.Auth.BcryptCost = 2 }, "BCRYPT_COST"},
		{"negative retries", func(c *Config) { c.Catalog.Retries = -1 }, "RAWG_RETRIES"},
		{"zero window", func(c *Config) { c.RateLimit.Window = 0 }, "RATE_LIMIT_WINDOW"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Token.Secret = "secret"
			cfg.Token.TTL = time.Hour
			cfg.Auth.BcryptCost = 10
			cfg.Catalog.Timeout = time.Second
			cfg.RateLimit.Requests = 100
			cfg.RateLimit.Window = time.Minute
			require.NoError(t, cfg.Validate())

			tt.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
