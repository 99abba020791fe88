package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/mcoot/gamevault/internal/config"
	"github.com/mcoot/gamevault/internal/factory"
	"github.com/mcoot/gamevault/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	app, err := factory.New(ctx, factory.ConfigFrom(cfg, logger))
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	seedCfg := seed.DefaultConfig()
	if v := os.Getenv("SEED_USERNAME"); v != "" {
		seedCfg.Username = v
	}
	if v := os.Getenv("SEED_PASSWORD"); v != "" {
		seedCfg.Password = v
	}

	summary, err := app.Seeder.Run(ctx, seedCfg)
	if err != nil {
		return err
	}

	logger.Info("seed complete",
		slog.String("username", summary.User.Username),
		slog.Bool("user_created", summary.UserCreated),
		slog.String("game_id", string(summary.Game.ID)),
		slog.Bool("game_created", summary.GameCreated),
	)
	return nil
}
