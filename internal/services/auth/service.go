package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/gamevault/internal/dependencies/clock"
	"github.com/mcoot/gamevault/internal/dependencies/ids"
	"github.com/mcoot/gamevault/internal/model"
	"github.com/mcoot/gamevault/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service verifies and creates user credentials
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	ids     ids.Generator

	cost int
	// dummyHash is compared against when the username is unknown, so both
	// failure paths spend the same bcrypt time
	dummyHash []byte
}

// Config holds configuration for the auth service
type Config struct {
	BcryptCost int
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		BcryptCost: bcrypt.DefaultCost,
	}
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, idGen ids.Generator, cfg Config) (*Service, error) {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = DefaultConfig().BcryptCost
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cfg.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("gamevault-dummy-password"), cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("generate dummy hash: %w", err)
	}

	return &Service{
		storage:   storage,
		clock:     clock,
		ids:       idGen,
		cost:      cfg.BcryptCost,
		dummyHash: dummy,
	}, nil
}

// Register creates a user with a hashed password
func (s *Service) Register(ctx context.Context, username, password string) (*model.User, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           s.ids.UserID(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}

	// The backend's unique index decides races between concurrent registrations
	if err := s.storage.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login returns the user if the password matches the stored hash
func (s *Service) Login(ctx context.Context, username, password string) (*model.User, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func validateCredentials(username, password string) error {
	if username == "" {
		return model.NewValidationError("username", "is required")
	}
	if password == "" {
		return model.NewValidationError("password", "is required")
	}
	return nil
}
