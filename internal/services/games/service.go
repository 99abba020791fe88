// Package games manages the custom games our users create.
package games

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/gamevault/internal/dependencies/clock"
	"github.com/mcoot/gamevault/internal/dependencies/ids"
	"github.com/mcoot/gamevault/internal/model"
	"github.com/mcoot/gamevault/internal/storage"
)

// Service creates and looks up custom games
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	ids     ids.Generator
	logger  *slog.Logger
}

// New creates a games Service
func New(storage storage.Storage, clock clock.Clock, idGen ids.Generator, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		ids:     idGen,
		logger:  logger,
	}
}

// Create validates and stores a new game owned by ownerID
func (s *Service) Create(ctx context.Context, input model.NewCustomGame, ownerID model.UserID) (*model.CustomGame, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.storage.GetUser(ctx, ownerID); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrOwnerNotFound
		}
		return nil, fmt.Errorf("look up owner: %w", err)
	}

	now := s.clock.Now()
	game := &model.CustomGame{
		ID:              s.ids.GameID(now),
		Name:            input.Name,
		Released:        input.Released,
		Rating:          *input.Rating,
		Description:     input.Description,
		BackgroundImage: input.BackgroundImage,
		OwnerID:         ownerID,
		CreatedAt:       now,
	}

	if err := s.storage.SaveGame(ctx, game); err != nil {
		s.logger.Error("failed to save game",
			slog.String("name", game.Name),
			slog.String("owner_id", string(ownerID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("custom game created",
		slog.String("game_id", string(game.ID)),
		slog.String("name", game.Name),
		slog.String("owner_id", string(ownerID)),
	)

	return game, nil
}

// FindByID returns the game with the given id.
// Ids not in our own format return model.ErrNotNativeID without a storage lookup.
func (s *Service) FindByID(ctx context.Context, id string) (*model.CustomGame, error) {
	if !model.IsGameID(id) {
		return nil, model.ErrNotNativeID
	}
	return s.storage.GetGame(ctx, model.GameID(id))
}

// Search returns games whose name contains substring, ignoring case
func (s *Service) Search(ctx context.Context, substring string) ([]*model.CustomGame, error) {
	return s.storage.SearchGames(ctx, substring)
}

// ListRecent returns all games, newest first
func (s *Service) ListRecent(ctx context.Context) ([]*model.CustomGame, error) {
	return s.storage.ListGames(ctx)
}
