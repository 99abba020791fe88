package factory

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/gamevault/internal/dependencies/mocks"
	"github.com/mcoot/gamevault/internal/ratelimit"
	"github.com/mcoot/gamevault/internal/services/auth"
	"github.com/mcoot/gamevault/internal/services/token"
	"github.com/mcoot/gamevault/internal/storage/memory"
	"github.com/mcoot/gamevault/internal/testutil"
)

// TestTokenSecret signs tokens issued by a TestApp
const TestTokenSecret = "test-secret"

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MemoryStorage *memory.Storage
	MockClock     *mocks.MockClock
	MockIDs       *mocks.MockIDs
	MockCatalog   *mocks.MockCatalog
	MemoryLimiter *ratelimit.MemoryLimiter
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	return NewTestAppWithLimit(ratelimit.DefaultConfig())
}

// NewTestAppWithLimit is NewTestApp with a custom rate limit
func NewTestAppWithLimit(limitCfg ratelimit.Config) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 12, 5, 12, 0, 0, 0, time.UTC))
	mockIDs := mocks.NewMockIDs()
	mockCatalog := mocks.NewMockCatalog()
	limiter := ratelimit.NewMemoryLimiter(limitCfg, mockClock)

	app, err := newWithDependencies(
		store,
		mockClock,
		mockIDs,
		mockCatalog,
		limiter,
		authMinCost(),
		token.Config{Secret: TestTokenSecret, TTL: time.Hour},
		testutil.NopLogger(),
	)
	if err != nil {
		panic(err)
	}
	app.closers = append(app.closers, func() error { limiter.Stop(); return nil })

	return &TestApp{
		App:           app,
		MemoryStorage: store,
		MockClock:     mockClock,
		MockIDs:       mockIDs,
		MockCatalog:   mockCatalog,
		MemoryLimiter: limiter,
	}
}

func authMinCost() auth.Config {
	return auth.Config{BcryptCost: bcrypt.MinCost}
}
