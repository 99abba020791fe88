package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rating bounds for custom games
const (
	MinRating = 0.0
	MaxRating = 5.0
)

// DateLayout is the wire format for release dates
const DateLayout = "2006-01-02"

// GameID identifies a custom game. It is a hex-encoded ObjectID, so ids sort by creation time.
type GameID string

// NewGameID creates a GameID whose timestamp portion is t
func NewGameID(t time.Time) GameID {
	return GameID(primitive.NewObjectIDFromTimestamp(t).Hex())
}

// IsGameID reports whether s is in the local store's native id format
func IsGameID(s string) bool {
	return primitive.IsValidObjectID(s)
}

// CustomGame is a game record created by one of our users
type CustomGame struct {
	ID              GameID
	Name            string
	Released        *time.Time
	Rating          float64
	Description     string
	BackgroundImage string
	OwnerID         UserID
	CreatedAt       time.Time
}

// NewCustomGame holds the user-supplied fields for inserting a custom game.
// A nil Rating means the field was not provided.
type NewCustomGame struct {
	Name            string
	Released        *time.Time
	Rating          *float64
	Description     string
	BackgroundImage string
}

// Validate checks the required fields and the rating range
func (g NewCustomGame) Validate() error {
	if g.Name == "" {
		return NewValidationError("name", "is required")
	}
	if g.Rating == nil {
		return NewValidationError("rating", "is required")
	}
	if *g.Rating < MinRating || *g.Rating > MaxRating {
		return NewValidationError("rating", "must be between 0 and 5")
	}
	return nil
}

// ReleasedString formats the release date, or returns "" if unknown
func (g *CustomGame) ReleasedString() string {
	if g.Released == nil {
		return ""
	}
	return g.Released.Format(DateLayout)
}
