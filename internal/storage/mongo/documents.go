package mongo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mcoot/gamevault/internal/model"
)

const (
	usersCollection = "users"
	gamesCollection = "customgames"
)

type userDocument struct {
	ID           string    `bson:"_id"`
	Username     string    `bson:"username"`
	PasswordHash string    `bson:"password"`
	CreatedAt    time.Time `bson:"createdAt"`
}

func userDocumentFromModel(u *model.User) userDocument {
	return userDocument{
		ID:           string(u.ID),
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func (d userDocument) toModel() *model.User {
	return &model.User{
		ID:           model.UserID(d.ID),
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

type gameDocument struct {
	ID              primitive.ObjectID `bson:"_id"`
	Name            string             `bson:"name"`
	Released        *time.Time         `bson:"released,omitempty"`
	Rating          float64            `bson:"rating"`
	Description     string             `bson:"description"`
	BackgroundImage string             `bson:"background_image"`
	CreatedBy       string             `bson:"createdBy"`
	CreatedAt       time.Time          `bson:"createdAt"`
}

func gameDocumentFromModel(g *model.CustomGame) (gameDocument, error) {
	oid, err := primitive.ObjectIDFromHex(string(g.ID))
	if err != nil {
		return gameDocument{}, fmt.Errorf("game id %q: %w", g.ID, err)
	}
	return gameDocument{
		ID:              oid,
		Name:            g.Name,
		Released:        g.Released,
		Rating:          g.Rating,
		Description:     g.Description,
		BackgroundImage: g.BackgroundImage,
		CreatedBy:       string(g.OwnerID),
		CreatedAt:       g.CreatedAt,
	}, nil
}

func (d gameDocument) toModel() *model.CustomGame {
	game := &model.CustomGame{
		ID:              model.GameID(d.ID.Hex()),
		Name:            d.Name,
		Rating:          d.Rating,
		Description:     d.Description,
		BackgroundImage: d.BackgroundImage,
		OwnerID:         model.UserID(d.CreatedBy),
		CreatedAt:       d.CreatedAt.UTC(),
	}
	if d.Released != nil {
		released := d.Released.UTC()
		game.Released = &released
	}
	return game
}
