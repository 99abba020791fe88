package mocks

import (
	"time"

	"github.com/mcoot/gamevault/internal/dependencies/ids"
	"github.com/mcoot/gamevault/internal/model"
)

// MockIDs is a mock implementation of ids.Generator for testing.
// Queued values are returned first, then it falls back to real generation.
type MockIDs struct {
	UserIDs  []model.UserID
	GameIDs  []model.GameID
	TokenIDs []string

	fallback *ids.RandomGenerator
}

// Ensure MockIDs implements Generator
var _ ids.Generator = (*MockIDs)(nil)

// NewMockIDs creates a new MockIDs
func NewMockIDs() *MockIDs {
	return &MockIDs{fallback: ids.New()}
}

// UserID returns the next queued user id
func (m *MockIDs) UserID() model.UserID {
	if len(m.UserIDs) == 0 {
		return m.fallback.UserID()
	}
	id := m.UserIDs[0]
	m.UserIDs = m.UserIDs[1:]
	return id
}

// GameID returns the next queued game id
func (m *MockIDs) GameID(t time.Time) model.GameID {
	if len(m.GameIDs) == 0 {
		return m.fallback.GameID(t)
	}
	id := m.GameIDs[0]
	m.GameIDs = m.GameIDs[1:]
	return id
}

// TokenID returns the next queued token id
func (m *MockIDs) TokenID() string {
	if len(m.TokenIDs) == 0 {
		return m.fallback.TokenID()
	}
	id := m.TokenIDs[0]
	m.TokenIDs = m.TokenIDs[1:]
	return id
}

// QueueUserIDs adds values to the user id queue
func (m *MockIDs) QueueUserIDs(values ...model.UserID) {
	m.UserIDs = append(m.UserIDs, values...)
}

// QueueGameIDs adds values to the game id queue
func (m *MockIDs) QueueGameIDs(values ...model.GameID) {
	m.GameIDs = append(m.GameIDs, values...)
}
