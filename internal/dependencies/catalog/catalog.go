// Package catalog talks to the third-party game catalog that supplements our own custom games.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/mcoot/gamevault/internal/model"
)

// Catalog is a read-only external source of game records
type Catalog interface {
	// Search returns records whose name matches query
	Search(ctx context.Context, query string) ([]model.ExternalGame, error)

	// GetByID returns a single record, or model.ErrGameNotFound
	GetByID(ctx context.Context, id string) (*model.ExternalGame, error)
}

// Config holds settings for the external catalog client
type Config struct {
	// BaseURL is the catalog API root, without a trailing slash
	BaseURL string
	// APIKey is sent with every request
	APIKey string
	// Timeout bounds each HTTP attempt
	Timeout time.Duration
	// Retries is the number of extra attempts after a network error or 5xx response
	Retries int
	// PageSize caps the number of search results requested (0 = catalog default)
	PageSize int
}

// DefaultConfig returns defaults for the RAWG API
func DefaultConfig() Config {
	return Config{
		BaseURL:  "https://api.rawg.io/api",
		Timeout:  10 * time.Second,
		Retries:  1,
		PageSize: 20,
	}
}

// UpstreamError is returned when the catalog is unreachable or answers with a non-success status
type UpstreamError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("external catalog %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("external catalog %s: status %d", e.Op, e.StatusCode)
	default:
		return fmt.Sprintf("external catalog %s: %v", e.Op, e.Err)
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
