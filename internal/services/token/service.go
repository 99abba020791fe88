// Package token issues and verifies the bearer tokens handed out at login.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mcoot/gamevault/internal/dependencies/clock"
	"github.com/mcoot/gamevault/internal/dependencies/ids"
	"github.com/mcoot/gamevault/internal/model"
)

// Errors
var (
	ErrMissingToken     = errors.New("token not provided")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrExpired          = errors.New("token expired")
	ErrInvalidToken     = errors.New("invalid token")
)

// Claims is the token payload
type Claims struct {
	UserID   model.UserID `json:"id"`
	Username string       `json:"username"`
	jwt.RegisteredClaims
}

// Config holds configuration for the token service
type Config struct {
	Secret string
	TTL    time.Duration
}

// DefaultConfig returns default token configuration. Secret has no default.
func DefaultConfig() Config {
	return Config{
		TTL: time.Hour,
	}
}

// Service signs and verifies HS256 tokens
type Service struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
	ids    ids.Generator
	parser *jwt.Parser
}

// New creates a token Service; the secret must not be empty
func New(clock clock.Clock, idGen ids.Generator, cfg Config) (*Service, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultConfig().TTL
	}

	return &Service{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		clock:  clock,
		ids:    idGen,
		parser: jwt.NewParser(
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
			jwt.WithTimeFunc(clock.Now),
		),
	}, nil
}

// TTL returns how long issued tokens stay valid
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for user
func (s *Service) Issue(user *model.User) (string, *Claims, error) {
	now := s.clock.Now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ids.TokenID(),
			Subject:   string(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims, nil
}

// Verify checks the signature and expiry of raw and returns its claims
func (s *Service) Verify(raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	_, err := s.parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrInvalidSignature
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidToken)
	}
	return claims, nil
}
