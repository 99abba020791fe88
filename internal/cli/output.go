package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case LoginResult:
		o.printLoginResult(v)
	case GameList:
		o.printGameList(v)
	case GameDetail:
		o.printGameDetail(v)
	case CreateResult:
		o.printCreateResult(v)
	case StatusResult:
		o.printf("%s\n", v.Message)
	case HealthResult:
		o.printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}

// LoginResult response type (matches API)
type LoginResult struct {
	Token     string    `json:"token"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

// GameSummary is one search or listing entry
type GameSummary struct {
	Source          string  `json:"source"`
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Released        string  `json:"released,omitempty"`
	BackgroundImage string  `json:"background_image,omitempty"`
	Rating          float64 `json:"rating"`
	RatingTop       int     `json:"rating_top,omitempty"`
}

// GameList response type
type GameList struct {
	Total   int           `json:"total"`
	Results []GameSummary `json:"results"`
	Warning string        `json:"warning,omitempty"`
}

// GameDetail holds the fields of either detail shape; Source tells which
type GameDetail struct {
	Source          string     `json:"source"`
	ID              string     `json:"id"`
	Slug            string     `json:"slug,omitempty"`
	Name            string     `json:"name"`
	Released        string     `json:"released,omitempty"`
	Rating          float64    `json:"rating"`
	Metacritic      *int       `json:"metacritic,omitempty"`
	Description     string     `json:"description,omitempty"`
	BackgroundImage string     `json:"background_image,omitempty"`
	Website         string     `json:"website,omitempty"`
	Genres          []string   `json:"genres,omitempty"`
	Platforms       []string   `json:"platforms,omitempty"`
	Developers      []string   `json:"developers,omitempty"`
	Publishers      []string   `json:"publishers,omitempty"`
	CreatedBy       string     `json:"created_by,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
}

// CreatedGame is the short game form returned on creation
type CreatedGame struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateResult response type
type CreateResult struct {
	Message string      `json:"message"`
	Game    CreatedGame `json:"game"`
}

// StatusResult response type
type StatusResult struct {
	Message string `json:"message"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printLoginResult(r LoginResult) {
	o.printf("%s\n", r.Message)
	o.printf("Token expires: %s\n", r.ExpiresAt.Local().Format(time.DateTime))
}

func (o *Output) printGameList(l GameList) {
	if l.Warning != "" {
		o.printf("Warning: %s\n", l.Warning)
	}
	o.printf("%d game(s)\n", l.Total)
	for _, g := range l.Results {
		released := g.Released
		if released == "" {
			released = "unknown"
		}
		o.printf("  [%-8s] %-26s %s  (released %s, rating %.1f)\n", g.Source, g.ID, g.Name, released, g.Rating)
	}
}

func (o *Output) printGameDetail(d GameDetail) {
	o.printf("%s\n", d.Name)
	o.printf("ID: %s (%s)\n", d.ID, d.Source)
	if d.Released != "" {
		o.printf("Released: %s\n", d.Released)
	}
	o.printf("Rating: %.2f\n", d.Rating)
	if d.Metacritic != nil {
		o.printf("Metacritic: %d\n", *d.Metacritic)
	}
	if len(d.Genres) > 0 {
		o.printf("Genres: %s\n", strings.Join(d.Genres, ", "))
	}
	if len(d.Platforms) > 0 {
		o.printf("Platforms: %s\n", strings.Join(d.Platforms, ", "))
	}
	if len(d.Developers) > 0 {
		o.printf("Developers: %s\n", strings.Join(d.Developers, ", "))
	}
	if len(d.Publishers) > 0 {
		o.printf("Publishers: %s\n", strings.Join(d.Publishers, ", "))
	}
	if d.Website != "" {
		o.printf("Website: %s\n", d.Website)
	}
	if d.CreatedBy != "" {
		o.printf("Added by: %s\n", d.CreatedBy)
	}
	if d.Description != "" {
		o.printf("\n%s\n", d.Description)
	}
}

func (o *Output) printCreateResult(r CreateResult) {
	o.printf("%s: %s (%s)\n", r.Message, r.Game.Name, r.Game.ID)
}
