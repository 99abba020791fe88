package ids

import (
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/gamevault/internal/model"
)

// Generator creates identifiers and can be mocked for testing
type Generator interface {
	// UserID returns a new opaque user id
	UserID() model.UserID

	// GameID returns a new game id whose ordering follows t
	GameID(t time.Time) model.GameID

	// TokenID returns a new unique session token id
	TokenID() string
}

// RandomGenerator implements Generator with random UUIDs and ObjectIDs
type RandomGenerator struct{}

// New creates a new RandomGenerator
func New() *RandomGenerator {
	return &RandomGenerator{}
}

// UserID returns a random UUID
func (g *RandomGenerator) UserID() model.UserID {
	return model.UserID(uuid.NewString())
}

// GameID returns a new ObjectID stamped with t
func (g *RandomGenerator) GameID(t time.Time) model.GameID {
	return model.NewGameID(t)
}

// TokenID returns a random UUID
func (g *RandomGenerator) TokenID() string {
	return uuid.NewString()
}
