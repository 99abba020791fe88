package model

// GameSource tags where a game record came from
type GameSource string

const (
	SourceLocal    GameSource = "local"
	SourceExternal GameSource = "external"
)

// GameSummary is one entry in a search or listing result
type GameSummary struct {
	Source          GameSource
	ID              string
	Name            string
	Released        string
	BackgroundImage string
	Rating          float64
	RatingTop       int
}

// SummaryFromCustom projects a custom game to the listing fields
func SummaryFromCustom(g *CustomGame) GameSummary {
	return GameSummary{
		Source:          SourceLocal,
		ID:              string(g.ID),
		Name:            g.Name,
		Released:        g.ReleasedString(),
		BackgroundImage: g.BackgroundImage,
		Rating:          g.Rating,
	}
}

// SummaryFromExternal projects an external record to the listing fields
func SummaryFromExternal(g *ExternalGame) GameSummary {
	return GameSummary{
		Source:          SourceExternal,
		ID:              g.ID,
		Name:            g.Name,
		Released:        g.Released,
		BackgroundImage: g.BackgroundImage,
		Rating:          g.Rating,
		RatingTop:       g.RatingTop,
	}
}

// GameDetail is a single game from exactly one of the two sources
type GameDetail struct {
	Source   GameSource
	Local    *CustomGame
	External *ExternalGame
}
