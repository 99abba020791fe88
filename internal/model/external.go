package model

// ExternalGame is a read-only record fetched from the external catalog for one request.
// Its fields follow the catalog's schema, not ours.
type ExternalGame struct {
	ID              string
	Slug            string
	Name            string
	Released        string
	BackgroundImage string
	Rating          float64
	RatingTop       int
	Metacritic      *int
	Playtime        int
	Description     string
	Website         string
	Genres          []string
	Platforms       []string
	Developers      []string
	Publishers      []string
}
