package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/gamevault/internal/model"
	"github.com/mcoot/gamevault/internal/testutil"
)

const searchBody = `{
  "count": 2,
  "results": [
    {"id": 3498, "slug": "gta-v", "name": "Grand Theft Auto V", "released": "2013-09-17",
     "background_image": "https://img/gta.jpg", "rating": 4.47, "rating_top": 5, "metacritic": 92,
     "genres": [{"name": "Action"}], "platforms": [{"platform": {"name": "PC"}}]},
    {"id": 42, "slug": "unreleased", "name": "Unreleased", "released": null,
     "background_image": null, "rating": 0, "metacritic": null}
  ]
}`

const detailBody = `{
  "id": 3498, "slug": "gta-v", "name": "Grand Theft Auto V", "released": "2013-09-17",
  "description": "<p>Heists</p>", "description_raw": "Heists", "website": "https://rockstar",
  "developers": [{"name": "Rockstar North"}], "publishers": [{"name": "Rockstar Games"}]
}`

type RAWGClientSuite struct {
	suite.Suite
	server   *httptest.Server
	mu       sync.Mutex
	handler  http.HandlerFunc
	requests atomic.Int32
	client   *RAWGClient
	ctx      context.Context
}

func TestRAWGClientSuite(t *testing.T) {
	suite.Run(t, new(RAWGClientSuite))
}

func (s *RAWGClientSuite) SetupTest() {
	s.requests.Store(0)
	s.handle(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		s.mu.Lock()
		h := s.handler
		s.mu.Unlock()
		h(w, r)
	}))

	cfg := DefaultConfig()
	cfg.BaseURL = s.server.URL + "/api/"
	cfg.APIKey = "secret-key"
	cfg.Timeout = time.Second
	s.client = NewRAWGClient(cfg, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *RAWGClientSuite) TearDownTest() {
	s.server.Close()
}

func (s *RAWGClientSuite) handle(h http.HandlerFunc) {
	s.mu.Lock()
	s.handler = h
	s.mu.Unlock()
}

func (s *RAWGClientSuite) TestSearchSendsQueryAndKey() {
	s.handle(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/api/games", r.URL.Path)
		s.Equal("zelda breath", r.URL.Query().Get("search"))
		s.Equal("secret-key", r.URL.Query().Get("key"))
		s.Equal("20", r.URL.Query().Get("page_size"))
		_, _ = w.Write([]byte(`{"count":0,"results":[]}`))
	})

	games, err := s.client.Search(s.ctx, "zelda breath")
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *RAWGClientSuite) TestSearchMapsResults() {
	s.handle(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(searchBody))
	})

	games, err := s.client.Search(s.ctx, "gta")
	s.Require().NoError(err)
	s.Require().Len(games, 2)

	gta := games[0]
	s.Equal("3498", gta.ID)
	s.Equal("Grand Theft Auto V", gta.Name)
	s.Equal("2013-09-17", gta.Released)
	s.Equal("https://img/gta.jpg", gta.BackgroundImage)
	s.InDelta(4.47, gta.Rating, 0.001)
	s.Require().NotNil(gta.Metacritic)
	s.Equal(92, *gta.Metacritic)
	s.Equal([]string{"Action"}, gta.Genres)
	s.Equal([]string{"PC"}, gta.Platforms)

	s.Empty(games[1].Released)
	s.Empty(games[1].BackgroundImage)
	s.Nil(games[1].Metacritic)
}

func (s *RAWGClientSuite) TestSearchClientErrorIsUpstreamErrorWithoutRetry() {
	s.handle(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := s.client.Search(s.ctx, "gta")
	var ue *UpstreamError
	s.Require().ErrorAs(err, &ue)
	s.Equal(http.StatusUnauthorized, ue.StatusCode)
	s.Equal(int32(1), s.requests.Load())
}

func (s *RAWGClientSuite) TestSearchRetriesOnceOnServerError() {
	s.handle(func(w http.ResponseWriter, _ *http.Request) {
		if s.requests.Load() == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(searchBody))
	})

	games, err := s.client.Search(s.ctx, "gta")
	s.Require().NoError(err)
	s.Len(games, 2)
	s.Equal(int32(2), s.requests.Load())
}

func (s *RAWGClientSuite) TestSearchGivesUpAfterRetryBudget() {
	s.handle(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := s.client.Search(s.ctx, "gta")
	var ue *UpstreamError
	s.Require().ErrorAs(err, &ue)
	s.Equal(http.StatusServiceUnavailable, ue.StatusCode)
	s.Equal(int32(2), s.requests.Load())
}

func (s *RAWGClientSuite) TestSearchMalformedBody() {
	s.handle(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>rate limited</html>`))
	})

	_, err := s.client.Search(s.ctx, "gta")
	var ue *UpstreamError
	s.ErrorAs(err, &ue)
}

func (s *RAWGClientSuite) TestNetworkFailureIsUpstreamErrorWithoutKey() {
	s.server.Close()

	_, err := s.client.Search(s.ctx, "gta")
	var ue *UpstreamError
	s.Require().ErrorAs(err, &ue)
	s.Zero(ue.StatusCode)
	s.NotContains(err.Error(), "secret-key")
}

func (s *RAWGClientSuite) TestGetByIDMapsDetail() {
	s.handle(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("/api/games/3498", r.URL.Path)
		_, _ = w.Write([]byte(detailBody))
	})

	game, err := s.client.GetByID(s.ctx, "3498")
	s.Require().NoError(err)
	s.Equal("3498", game.ID)
	s.Equal("Heists", game.Description)
	s.Equal("https://rockstar", game.Website)
	s.Equal([]string{"Rockstar North"}, game.Developers)
	s.Equal([]string{"Rockstar Games"}, game.Publishers)
}

func (s *RAWGClientSuite) TestGetByIDNotFound() {
	s.handle(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := s.client.GetByID(s.ctx, "999999")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *RAWGClientSuite) TestGetByIDOtherStatusIsUpstreamError() {
	s.handle(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := s.client.GetByID(s.ctx, "3498")
	s.NotErrorIs(err, model.ErrGameNotFound)
	var ue *UpstreamError
	s.Require().ErrorAs(err, &ue)
	s.Equal(http.StatusForbidden, ue.StatusCode)
}

func (s *RAWGClientSuite) TestGetByIDEmptyID() {
	_, err := s.client.GetByID(s.ctx, "")
	s.ErrorIs(err, model.ErrGameNotFound)
	s.Equal(int32(0), s.requests.Load())
}

func TestNewRAWGClientFillsOnlyMissingSettings(t *testing.T) {
	c := NewRAWGClient(Config{APIKey: "rawg-key", Retries: 3, PageSize: 5}, testutil.NopLogger())

	assert.Equal(t, DefaultConfig().BaseURL, c.baseURL)
	assert.Equal(t, DefaultConfig().Timeout, c.httpClient.Timeout)
	assert.Equal(t, "rawg-key", c.apiKey)
	assert.Equal(t, 3, c.retries)
	assert.Equal(t, 5, c.pageSize)
}
