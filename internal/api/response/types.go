package response

import (
	"time"

	"github.com/mcoot/gamevault/internal/model"
	"github.com/mcoot/gamevault/internal/services/search"
)

// MessageResponse carries only a human-readable message
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResponse is the response for a successful login
type LoginResponse struct {
	Token     string    `json:"token"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreatedGame is the short form of a game returned after creation
type CreatedGame struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateGameResponse is the response for creating a custom game
type CreateGameResponse struct {
	Message string      `json:"message"`
	Game    CreatedGame `json:"game"`
}

// GameSummary is one entry in a search or listing
type GameSummary struct {
	Source          string  `json:"source"`
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Released        string  `json:"released,omitempty"`
	BackgroundImage string  `json:"background_image,omitempty"`
	Rating          float64 `json:"rating"`
	RatingTop       int     `json:"rating_top,omitempty"`
}

// GameSummaryFromModel converts a model.GameSummary
func GameSummaryFromModel(g model.GameSummary) GameSummary {
	return GameSummary{
		Source:          string(g.Source),
		ID:              g.ID,
		Name:            g.Name,
		Released:        g.Released,
		BackgroundImage: g.BackgroundImage,
		Rating:          g.Rating,
		RatingTop:       g.RatingTop,
	}
}

// ListResponse is the response for search and listing endpoints
type ListResponse struct {
	Total   int           `json:"total"`
	Results []GameSummary `json:"results"`
	Warning string        `json:"warning,omitempty"`
}

// ListFromSearch converts a search result
func ListFromSearch(r *search.Result) ListResponse {
	results := make([]GameSummary, 0, len(r.Games))
	for _, g := range r.Games {
		results = append(results, GameSummaryFromModel(g))
	}
	return ListResponse{
		Total:   r.Total,
		Results: results,
		Warning: r.Warning,
	}
}

// ListFromCustom converts a list of custom games
func ListFromCustom(games []*model.CustomGame) ListResponse {
	results := make([]GameSummary, 0, len(games))
	for _, g := range games {
		results = append(results, GameSummaryFromModel(model.SummaryFromCustom(g)))
	}
	return ListResponse{
		Total:   len(results),
		Results: results,
	}
}

// LocalGameDetail is the detail view of a custom game
type LocalGameDetail struct {
	Source          string    `json:"source"`
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Released        string    `json:"released,omitempty"`
	Rating          float64   `json:"rating"`
	Description     string    `json:"description,omitempty"`
	BackgroundImage string    `json:"background_image,omitempty"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
}

// ExternalGameDetail is the detail view of an external catalog record
type ExternalGameDetail struct {
	Source          string   `json:"source"`
	ID              string   `json:"id"`
	Slug            string   `json:"slug,omitempty"`
	Name            string   `json:"name"`
	Released        string   `json:"released,omitempty"`
	BackgroundImage string   `json:"background_image,omitempty"`
	Rating          float64  `json:"rating"`
	RatingTop       int      `json:"rating_top,omitempty"`
	Metacritic      *int     `json:"metacritic,omitempty"`
	Playtime        int      `json:"playtime,omitempty"`
	Description     string   `json:"description,omitempty"`
	Website         string   `json:"website,omitempty"`
	Genres          []string `json:"genres,omitempty"`
	Platforms       []string `json:"platforms,omitempty"`
	Developers      []string `json:"developers,omitempty"`
	Publishers      []string `json:"publishers,omitempty"`
}

// GameDetailFromModel returns the detail body for whichever source produced d
func GameDetailFromModel(d *model.GameDetail) any {
	if d.Source == model.SourceLocal {
		g := d.Local
		return LocalGameDetail{
			Source:          string(model.SourceLocal),
			ID:              string(g.ID),
			Name:            g.Name,
			Released:        g.ReleasedString(),
			Rating:          g.Rating,
			Description:     g.Description,
			BackgroundImage: g.BackgroundImage,
			CreatedBy:       string(g.OwnerID),
			CreatedAt:       g.CreatedAt,
		}
	}

	g := d.External
	return ExternalGameDetail{
		Source:          string(model.SourceExternal),
		ID:              g.ID,
		Slug:            g.Slug,
		Name:            g.Name,
		Released:        g.Released,
		BackgroundImage: g.BackgroundImage,
		Rating:          g.Rating,
		RatingTop:       g.RatingTop,
		Metacritic:      g.Metacritic,
		Playtime:        g.Playtime,
		Description:     g.Description,
		Website:         g.Website,
		Genres:          g.Genres,
		Platforms:       g.Platforms,
		Developers:      g.Developers,
		Publishers:      g.Publishers,
	}
}

// HealthResponse is the response for the health check
type HealthResponse struct {
	Status string `json:"status"`
}
