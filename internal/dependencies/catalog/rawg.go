package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mcoot/gamevault/internal/model"
)

// RAWGClient implements Catalog against the RAWG video games database API
type RAWGClient struct {
	baseURL    string
	apiKey     string
	retries    int
	pageSize   int
	httpClient *http.Client
	logger     *slog.Logger
}

// Ensure RAWGClient implements Catalog
var _ Catalog = (*RAWGClient)(nil)

// NewRAWGClient creates a new RAWG client
func NewRAWGClient(cfg Config, logger *slog.Logger) *RAWGClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultConfig().BaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	return &RAWGClient{
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		retries:  cfg.Retries,
		pageSize: cfg.PageSize,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// Search queries GET /games?search=...
func (c *RAWGClient) Search(ctx context.Context, query string) ([]model.ExternalGame, error) {
	params := url.Values{}
	params.Set("search", query)
	if c.pageSize > 0 {
		params.Set("page_size", strconv.Itoa(c.pageSize))
	}

	var page rawgPage
	if err := c.get(ctx, "search", "/games", params, &page); err != nil {
		return nil, err
	}

	games := make([]model.ExternalGame, 0, len(page.Results))
	for i := range page.Results {
		games = append(games, page.Results[i].toModel())
	}
	return games, nil
}

// GetByID queries GET /games/{id}
func (c *RAWGClient) GetByID(ctx context.Context, id string) (*model.ExternalGame, error) {
	if id == "" {
		return nil, model.ErrGameNotFound
	}

	var game rawgGame
	err := c.get(ctx, "detail", "/games/"+url.PathEscape(id), nil, &game)
	if err != nil {
		var ue *UpstreamError
		if errors.As(err, &ue) && ue.StatusCode == http.StatusNotFound {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	result := game.toModel()
	return &result, nil
}

// get performs a GET with the configured retry budget and decodes the JSON body into out
func (c *RAWGClient) get(ctx context.Context, op, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("key", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		retryable, err := c.do(ctx, op, endpoint, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable || ctx.Err() != nil {
			break
		}
		if attempt < c.retries {
			c.logger.Warn("external catalog request failed, retrying",
				slog.String("op", op),
				slog.String("path", path),
				slog.Int("attempt", attempt+1),
				slog.String("error", err.Error()),
			)
		}
	}
	return lastErr
}

func (c *RAWGClient) do(ctx context.Context, op, endpoint string, out any) (retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, &UpstreamError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Strip the URL from the error; it carries the API key
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return true, &UpstreamError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode >= 500, &UpstreamError{Op: op, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, &UpstreamError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return false, nil
}

// Wire types for the RAWG API

type rawgPage struct {
	Count   int        `json:"count"`
	Results []rawgGame `json:"results"`
}

type rawgNamed struct {
	Name string `json:"name"`
}

type rawgPlatformEntry struct {
	Platform rawgNamed `json:"platform"`
}

type rawgGame struct {
	ID              int64               `json:"id"`
	Slug            string              `json:"slug"`
	Name            string              `json:"name"`
	Released        *string             `json:"released"`
	BackgroundImage *string             `json:"background_image"`
	Rating          float64             `json:"rating"`
	RatingTop       int                 `json:"rating_top"`
	Metacritic      *int                `json:"metacritic"`
	Playtime        int                 `json:"playtime"`
	Description     string              `json:"description"`
	DescriptionRaw  string              `json:"description_raw"`
	Website         string              `json:"website"`
	Genres          []rawgNamed         `json:"genres"`
	Platforms       []rawgPlatformEntry `json:"platforms"`
	Developers      []rawgNamed         `json:"developers"`
	Publishers      []rawgNamed         `json:"publishers"`
}

func (g *rawgGame) toModel() model.ExternalGame {
	description := g.DescriptionRaw
	if description == "" {
		description = g.Description
	}

	platforms := make([]string, 0, len(g.Platforms))
	for _, p := range g.Platforms {
		platforms = append(platforms, p.Platform.Name)
	}

	return model.ExternalGame{
		ID:              strconv.FormatInt(g.ID, 10),
		Slug:            g.Slug,
		Name:            g.Name,
		Released:        deref(g.Released),
		BackgroundImage: deref(g.BackgroundImage),
		Rating:          g.Rating,
		RatingTop:       g.RatingTop,
		Metacritic:      g.Metacritic,
		Playtime:        g.Playtime,
		Description:     description,
		Website:         g.Website,
		Genres:          names(g.Genres),
		Platforms:       platforms,
		Developers:      names(g.Developers),
		Publishers:      names(g.Publishers),
	}
}

func names(items []rawgNamed) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
