// Package mongo stores users and custom games in MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mcoot/gamevault/internal/model"
	"github.com/mcoot/gamevault/internal/storage"
)

// Storage is a MongoDB implementation of the storage interface
type Storage struct {
	client *mongo.Client
	users  *mongo.Collection
	games  *mongo.Collection
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// New connects to MongoDB and ensures the indexes exist
func New(ctx context.Context, cfg Config) (*Storage, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetConnectTimeout(cfg.ConnectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	db := client.Database(cfg.Database)
	s := &Storage{
		client: client,
		users:  db.Collection(usersCollection),
		games:  db.Collection(gamesCollection),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return s, nil
}

func (s *Storage) ensureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users index: %w", err)
	}

	_, err = s.games.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create games indexes: %w", err)
	}
	return nil
}

// Close disconnects the client
func (s *Storage) Close() error {
	return s.client.Disconnect(context.Background())
}

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	if _, err := s.users.InsertOne(ctx, userDocumentFromModel(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.ErrUsernameExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	return s.findUser(ctx, bson.M{"_id": string(id)})
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.findUser(ctx, bson.M{"username": username})
}

func (s *Storage) findUser(ctx context.Context, filter bson.M) (*model.User, error) {
	var doc userDocument
	if err := s.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toModel(), nil
}

// Custom game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.CustomGame) error {
	doc, err := gameDocumentFromModel(game)
	if err != nil {
		return err
	}
	if _, err := s.games.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.CustomGame, error) {
	oid, err := primitive.ObjectIDFromHex(string(id))
	if err != nil {
		return nil, model.ErrGameNotFound
	}

	var doc gameDocument
	if err := s.games.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrGameNotFound
		}
		return nil, fmt.Errorf("find game: %w", err)
	}
	return doc.toModel(), nil
}

// summaryProjection limits search results to the fields a summary needs
var summaryProjection = bson.D{
	{Key: "name", Value: 1},
	{Key: "background_image", Value: 1},
	{Key: "released", Value: 1},
	{Key: "rating", Value: 1},
	{Key: "createdAt", Value: 1},
}

func (s *Storage) SearchGames(ctx context.Context, substring string) ([]*model.CustomGame, error) {
	filter := bson.M{"name": primitive.Regex{Pattern: regexp.QuoteMeta(substring), Options: "i"}}
	opts := options.Find().
		SetProjection(summaryProjection).
		SetSort(bson.D{{Key: "_id", Value: -1}})
	return s.findGames(ctx, filter, opts)
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.CustomGame, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	return s.findGames(ctx, bson.M{}, opts)
}

func (s *Storage) findGames(ctx context.Context, filter any, opts *options.FindOptions) ([]*model.CustomGame, error) {
	cursor, err := s.games.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find games: %w", err)
	}

	var docs []gameDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode games: %w", err)
	}

	games := make([]*model.CustomGame, 0, len(docs))
	for _, doc := range docs {
		games = append(games, doc.toModel())
	}
	return games, nil
}
