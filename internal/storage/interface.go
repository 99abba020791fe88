package storage

import (
	"context"

	"github.com/mcoot/gamevault/internal/model"
)

// Storage defines the interface for data persistence.
// Implementations must be safe for concurrent use.
type Storage interface {
	// User operations

	// CreateUser stores a new user; returns model.ErrUsernameExists if the username is taken
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// Custom game operations

	SaveGame(ctx context.Context, game *model.CustomGame) error
	GetGame(ctx context.Context, id model.GameID) (*model.CustomGame, error)
	// SearchGames returns games whose name contains substring, ignoring case.
	// Backends may leave out fields a summary does not show.
	SearchGames(ctx context.Context, substring string) ([]*model.CustomGame, error)
	// ListGames returns all games, most recently created first
	ListGames(ctx context.Context) ([]*model.CustomGame, error)

	// Close releases the underlying connections
	Close() error
}
