// Package seed loads a demo account and game so a fresh install has something to show.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mcoot/gamevault/internal/model"
	"github.com/mcoot/gamevault/internal/services/auth"
	"github.com/mcoot/gamevault/internal/services/games"
	"github.com/mcoot/gamevault/internal/storage"
)

// Config holds the demo account credentials
type Config struct {
	Username string
	Password string
}

// DefaultConfig returns the demo account used in the README
func DefaultConfig() Config {
	return Config{
		Username: "testuser",
		Password: "123456",
	}
}

// DemoGame is inserted for the demo account
var DemoGame = model.NewCustomGame{
	Name:            "A Lenda de Andirá",
	Released:        ptr(time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC)),
	Rating:          ptr(4.8),
	Description:     "Classic RPG with full-stack challenges.",
	BackgroundImage: "https://via.placeholder.com/400x200?text=GAMEVAULT+CUSTOM",
}

// Summary reports what Run created
type Summary struct {
	User        *model.User
	UserCreated bool
	Game        *model.CustomGame
	GameCreated bool
}

// Seeder creates the demo data
type Seeder struct {
	storage storage.Storage
	auth    *auth.Service
	games   *games.Service
	logger  *slog.Logger
}

// New creates a Seeder
func New(storage storage.Storage, auth *auth.Service, games *games.Service, logger *slog.Logger) *Seeder {
	return &Seeder{
		storage: storage,
		auth:    auth,
		games:   games,
		logger:  logger,
	}
}

// Run creates the demo user and game. Existing records are reused, so Run can be repeated.
func (s *Seeder) Run(ctx context.Context, cfg Config) (*Summary, error) {
	summary := &Summary{}

	user, err := s.storage.GetUserByUsername(ctx, cfg.Username)
	switch {
	case err == nil:
		s.logger.Info("demo user already exists", slog.String("username", cfg.Username))
	case errors.Is(err, model.ErrUserNotFound):
		user, err = s.auth.Register(ctx, cfg.Username, cfg.Password)
		if err != nil {
			return nil, fmt.Errorf("create demo user: %w", err)
		}
		summary.UserCreated = true
		s.logger.Info("demo user created", slog.String("username", cfg.Username))
	default:
		return nil, fmt.Errorf("look up demo user: %w", err)
	}
	summary.User = user

	existing, err := s.games.Search(ctx, DemoGame.Name)
	if err != nil {
		return nil, fmt.Errorf("look up demo game: %w", err)
	}
	for _, g := range existing {
		if g.Name == DemoGame.Name {
			summary.Game = g
			s.logger.Info("demo game already exists", slog.String("game_id", string(g.ID)))
			return summary, nil
		}
	}

	game, err := s.games.Create(ctx, DemoGame, user.ID)
	if err != nil {
		return nil, fmt.Errorf("create demo game: %w", err)
	}
	summary.Game = game
	summary.GameCreated = true

	return summary, nil
}

func ptr[T any](v T) *T {
	return &v
}
