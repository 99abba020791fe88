// Package sqlite stores users and custom games in an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mcoot/gamevault/internal/model"
	"github.com/mcoot/gamevault/internal/storage"
)

// Config holds SQLite settings
type Config struct {
	// Path is the database file, or ":memory:" for a private in-memory database
	Path string
}

// DefaultConfig returns the default SQLite configuration
func DefaultConfig() Config {
	return Config{Path: "var/gamevault.db"}
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT    PRIMARY KEY,
	username      TEXT    UNIQUE NOT NULL,
	password_hash TEXT    NOT NULL,
	created_at    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS custom_games (
	id               TEXT    PRIMARY KEY,
	name             TEXT    NOT NULL,
	name_folded      TEXT    NOT NULL DEFAULT '',
	released         INTEGER,
	rating           REAL    NOT NULL,
	description      TEXT    NOT NULL DEFAULT '',
	background_image TEXT    NOT NULL DEFAULT '',
	owner_id         TEXT    NOT NULL REFERENCES users(id),
	created_at       INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS custom_games_created_at ON custom_games(created_at);
`

// SQLite's LIKE only folds ASCII letters, so names are stored lowercased alongside the original
const foldedNameIndex = `CREATE INDEX IF NOT EXISTS custom_games_name_folded ON custom_games(name_folded)`

// Storage is a SQLite implementation of the storage interface
type Storage struct {
	db *sqlx.DB
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// New opens the database and creates the schema if needed
func New(ctx context.Context, cfg Config) (*Storage, error) {
	db, err := sqlx.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// modernc sqlite does not support concurrent writers, and every
	// connection to ":memory:" would otherwise see its own empty database
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	if err := migrateFoldedNames(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate folded names: %w", err)
	}

	return &Storage{db: db}, nil
}

// migrateFoldedNames adds and fills name_folded on databases created before the column existed
func migrateFoldedNames(ctx context.Context, db *sqlx.DB) error {
	var columns []struct {
		Name string `db:"name"`
	}
	if err := db.SelectContext(ctx, &columns, "SELECT name FROM pragma_table_info('custom_games')"); err != nil {
		return fmt.Errorf("read columns: %w", err)
	}

	hasColumn := false
	for _, c := range columns {
		if c.Name == "name_folded" {
			hasColumn = true
			break
		}
	}
	if !hasColumn {
		if _, err := db.ExecContext(ctx, "ALTER TABLE custom_games ADD COLUMN name_folded TEXT NOT NULL DEFAULT ''"); err != nil {
			return fmt.Errorf("add column: %w", err)
		}
	}

	var stale []struct {
		ID   string `db:"id"`
		Name string `db:"name"`
	}
	if err := db.SelectContext(ctx, &stale, "SELECT id, name FROM custom_games WHERE name_folded = '' AND name != ''"); err != nil {
		return fmt.Errorf("read names: %w", err)
	}
	for _, g := range stale {
		if _, err := db.ExecContext(ctx, "UPDATE custom_games SET name_folded = ? WHERE id = ?", foldName(g.Name), g.ID); err != nil {
			return fmt.Errorf("fold name of %s: %w", g.ID, err)
		}
	}

	if _, err := db.ExecContext(ctx, foldedNameIndex); err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

func foldName(s string) string {
	return strings.ToLower(s)
}

// Close closes the database
func (s *Storage) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}
	return nil
}

type userRow struct {
	ID           string `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	CreatedAt    int64  `db:"created_at"`
}

func (r userRow) toModel() *model.User {
	return &model.User{
		ID:           model.UserID(r.ID),
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		CreatedAt:    time.UnixMilli(r.CreatedAt).UTC(),
	}
}

type gameRow struct {
	ID              string        `db:"id"`
	Name            string        `db:"name"`
	NameFolded      string        `db:"name_folded"`
	Released        sql.NullInt64 `db:"released"`
	Rating          float64       `db:"rating"`
	Description     string        `db:"description"`
	BackgroundImage string        `db:"background_image"`
	OwnerID         string        `db:"owner_id"`
	CreatedAt       int64         `db:"created_at"`
}

func gameRowFromModel(g *model.CustomGame) gameRow {
	row := gameRow{
		ID:              string(g.ID),
		Name:            g.Name,
		NameFolded:      foldName(g.Name),
		Rating:          g.Rating,
		Description:     g.Description,
		BackgroundImage: g.BackgroundImage,
		OwnerID:         string(g.OwnerID),
		CreatedAt:       g.CreatedAt.UnixMilli(),
	}
	if g.Released != nil {
		row.Released = sql.NullInt64{Int64: g.Released.Unix(), Valid: true}
	}
	return row
}

func (r gameRow) toModel() *model.CustomGame {
	game := &model.CustomGame{
		ID:              model.GameID(r.ID),
		Name:            r.Name,
		Rating:          r.Rating,
		Description:     r.Description,
		BackgroundImage: r.BackgroundImage,
		OwnerID:         model.UserID(r.OwnerID),
		CreatedAt:       time.UnixMilli(r.CreatedAt).UTC(),
	}
	if r.Released.Valid {
		released := time.Unix(r.Released.Int64, 0).UTC()
		game.Released = &released
	}
	return game
}

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	_, err := s.db.NamedExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at)
		 VALUES (:id, :username, :password_hash, :created_at)`,
		userRow{
			ID:           string(user.ID),
			Username:     user.Username,
			PasswordHash: user.PasswordHash,
			CreatedAt:    user.CreatedAt.UnixMilli(),
		},
	)
	if err != nil {
		var liteErr *sqlite.Error
		if errors.As(err, &liteErr) && liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return model.ErrUsernameExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	return s.getUser(ctx, "SELECT * FROM users WHERE id = ?", string(id))
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.getUser(ctx, "SELECT * FROM users WHERE username = ?", username)
}

func (s *Storage) getUser(ctx context.Context, query string, arg any) (*model.User, error) {
	var row userRow
	if err := s.db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return row.toModel(), nil
}

// Custom game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.CustomGame) error {
	_, err := s.db.NamedExecContext(ctx,
		`INSERT INTO custom_games (id, name, name_folded, released, rating, description, background_image, owner_id, created_at)
		 VALUES (:id, :name, :name_folded, :released, :rating, :description, :background_image, :owner_id, :created_at)`,
		gameRowFromModel(game),
	)
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.CustomGame, error) {
	var row gameRow
	if err := s.db.GetContext(ctx, &row, "SELECT * FROM custom_games WHERE id = ?", string(id)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrGameNotFound
		}
		return nil, fmt.Errorf("query game: %w", err)
	}
	return row.toModel(), nil
}

// likeEscaper escapes LIKE wildcards so the search term matches literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (s *Storage) SearchGames(ctx context.Context, substring string) ([]*model.CustomGame, error) {
	pattern := "%" + likeEscaper.Replace(foldName(substring)) + "%"
	return s.selectGames(ctx,
		`SELECT * FROM custom_games WHERE name_folded LIKE ? ESCAPE '\'`, pattern)
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.CustomGame, error) {
	return s.selectGames(ctx, "SELECT * FROM custom_games ORDER BY created_at DESC, id DESC")
}

func (s *Storage) selectGames(ctx context.Context, query string, args ...any) ([]*model.CustomGame, error) {
	var rows []gameRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}

	games := make([]*model.CustomGame, 0, len(rows))
	for _, row := range rows {
		games = append(games, row.toModel())
	}
	return games, nil
}
