package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/mcoot/gamevault/internal/model"
	"github.com/mcoot/gamevault/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users         map[model.UserID]*model.User
	usernameIndex map[string]model.UserID
	games         map[model.GameID]*model.CustomGame
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:         make(map[model.UserID]*model.User),
		usernameIndex: make(map[string]model.UserID),
		games:         make(map[model.GameID]*model.CustomGame),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.usernameIndex[user.Username]; exists {
		return model.ErrUsernameExists
	}
	u := *user
	s.users[user.ID] = &u
	s.usernameIndex[user.Username] = user.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	id, ok := s.usernameIndex[username]
	s.mu.RUnlock()
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return s.GetUser(ctx, id)
}

// Custom game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.CustomGame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := *game
	s.games[game.ID] = &g
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.CustomGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	g := *game
	return &g, nil
}

func (s *Storage) SearchGames(ctx context.Context, substring string) ([]*model.CustomGame, error) {
	needle := strings.ToLower(substring)

	s.mu.RLock()
	defer s.mu.RUnlock()
	games := make([]*model.CustomGame, 0)
	for _, game := range s.games {
		if strings.Contains(strings.ToLower(game.Name), needle) {
			g := *game
			games = append(games, &g)
		}
	}
	return games, nil
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.CustomGame, error) {
	s.mu.RLock()
	games := make([]*model.CustomGame, 0, len(s.games))
	for _, game := range s.games {
		g := *game
		games = append(games, &g)
	}
	s.mu.RUnlock()

	storage.SortNewestFirst(games)
	return games, nil
}

// Close is a no-op for in-memory storage
func (s *Storage) Close() error {
	return nil
}
