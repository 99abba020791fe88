package mocks

import (
	"context"
	"sync"

	"github.com/mcoot/gamevault/internal/dependencies/catalog"
	"github.com/mcoot/gamevault/internal/model"
)

// MockCatalog is an in-memory external catalog that records how often it was called
type MockCatalog struct {
	mu sync.Mutex

	// SearchResults is returned by every Search call
	SearchResults []model.ExternalGame
	// Games is looked up by GetByID
	Games map[string]*model.ExternalGame

	// SearchErr and GetErr, when set, are returned instead of results
	SearchErr error
	GetErr    error

	searchCalls int
	getCalls    int
	lastQuery   string
}

// Ensure MockCatalog implements Catalog
var _ catalog.Catalog = (*MockCatalog)(nil)

// NewMockCatalog creates an empty MockCatalog
func NewMockCatalog() *MockCatalog {
	return &MockCatalog{Games: make(map[string]*model.ExternalGame)}
}

// Search returns SearchResults or SearchErr
func (m *MockCatalog) Search(_ context.Context, query string) ([]model.ExternalGame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchCalls++
	m.lastQuery = query
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	out := make([]model.ExternalGame, len(m.SearchResults))
	copy(out, m.SearchResults)
	return out, nil
}

// GetByID returns the stored game, GetErr, or model.ErrGameNotFound
func (m *MockCatalog) GetByID(_ context.Context, id string) (*model.ExternalGame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	game, ok := m.Games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	g := *game
	return &g, nil
}

// AddGame registers a game for GetByID
func (m *MockCatalog) AddGame(g model.ExternalGame) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Games[g.ID] = &g
}

// FailWith makes both operations fail with err
func (m *MockCatalog) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SearchErr = err
	m.GetErr = err
}

// SearchCalls returns the number of Search calls
func (m *MockCatalog) SearchCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.searchCalls
}

// GetCalls returns the number of GetByID calls
func (m *MockCatalog) GetCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getCalls
}

// LastQuery returns the query of the most recent Search call
func (m *MockCatalog) LastQuery() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastQuery
}
