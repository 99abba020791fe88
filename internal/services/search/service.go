// Package search merges our custom games with the external catalog.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mcoot/gamevault/internal/dependencies/catalog"
	"github.com/mcoot/gamevault/internal/model"
	"github.com/mcoot/gamevault/internal/services/games"
)

// ExternalUnavailableWarning is attached to results served without the external catalog
const ExternalUnavailableWarning = "External catalog unavailable; only custom games were returned."

// Query is a search request. Platform, Genre and Year are accepted but not yet applied.
type Query struct {
	Text     string
	Platform string
	Genre    string
	Year     string
}

func (q Query) hasFilters() bool {
	return q.Platform != "" || q.Genre != "" || q.Year != ""
}

// Result is the merged list of matches
type Result struct {
	Total   int
	Games   []model.GameSummary
	Warning string
}

// Service answers searches and detail lookups across both sources
type Service struct {
	games   *games.Service
	catalog catalog.Catalog
	logger  *slog.Logger
}

// New creates a search Service
func New(games *games.Service, catalog catalog.Catalog, logger *slog.Logger) *Service {
	return &Service{
		games:   games,
		catalog: catalog,
		logger:  logger,
	}
}

// Search returns local matches followed by external matches.
// If the external catalog fails, local matches are returned with a warning.
func (s *Service) Search(ctx context.Context, q Query) (*Result, error) {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return nil, model.NewValidationError("q", "is required")
	}

	if q.hasFilters() {
		s.logger.Debug("search filters are not applied",
			slog.String("platform", q.Platform),
			slog.String("genre", q.Genre),
			slog.String("year", q.Year),
		)
	}

	local, err := s.games.Search(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("search custom games: %w", err)
	}

	summaries := make([]model.GameSummary, 0, len(local))
	for _, g := range local {
		summaries = append(summaries, model.SummaryFromCustom(g))
	}

	result := &Result{}
	external, err := s.catalog.Search(ctx, text)
	if err != nil {
		s.logger.Warn("external catalog search failed",
			slog.String("query", text),
			slog.String("error", err.Error()),
		)
		result.Warning = ExternalUnavailableWarning
	} else {
		for i := range external {
			summaries = append(summaries, model.SummaryFromExternal(&external[i]))
		}
	}

	result.Games = summaries
	result.Total = len(summaries)
	return result, nil
}

// Detail returns a custom game when id is one of ours, otherwise the external record
func (s *Service) Detail(ctx context.Context, id string) (*model.GameDetail, error) {
	local, err := s.games.FindByID(ctx, id)
	switch {
	case err == nil:
		return &model.GameDetail{Source: model.SourceLocal, Local: local}, nil
	case errors.Is(err, model.ErrNotNativeID), errors.Is(err, model.ErrGameNotFound):
	default:
		return nil, fmt.Errorf("find custom game: %w", err)
	}

	external, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, model.ErrGameNotFound) {
			s.logger.Error("external catalog lookup failed",
				slog.String("game_id", id),
				slog.String("error", err.Error()),
			)
		}
		return nil, err
	}

	return &model.GameDetail{Source: model.SourceExternal, External: external}, nil
}
