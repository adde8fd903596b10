// Package session provides keyed, lazily-created conversation session
// storage for tenantpipe.
//
// Backends: an in-memory map (default), SQLite, Postgres, and Redis. The
// engine mutates a copy of the session and writes it back with Update;
// callers must guarantee at most one in-flight turn per session ID. Sweep
// may run concurrently with turns and uses the same access discipline.
package session

import (
	"context"
	"strings"
	"time"

	"github.com/propdesk/tenantpipe/internal/models"
)

// Store is the injected session-store abstraction.
type Store interface {
	// GetOrCreate returns the session for the given ID, creating a fresh
	// one in the start state when none exists.
	GetOrCreate(ctx context.Context, sessionID, userID string) (*models.Session, error)

	// Get returns the session for the given ID, or nil when none exists.
	Get(ctx context.Context, sessionID string) (*models.Session, error)

	// Update persists the session and refreshes its UpdatedAt timestamp.
	Update(ctx context.Context, s *models.Session) error

	// Sweep removes every session whose last update is older than maxAge
	// and returns the number removed. Calling it again immediately with no
	// intervening turns removes nothing.
	Sweep(ctx context.Context, maxAge time.Duration) (int, error)

	// List returns all sessions, for admin and debugging use.
	List(ctx context.Context) ([]*models.Session, error)

	// Close releases backend resources.
	Close() error
}

// Opts holds configuration options for store backends.
type Opts struct {
	// DSN is the database connection string (SQLite path, Postgres URL, or
	// Redis address depending on the backend).
	DSN string
}

// Option defines a configuration option for store construction.
type Option func(*Opts)

// WithDSN sets the backend connection string.
func WithDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// DetectDSNType classifies a connection string as "postgres", "redis", or
// "sqlite" (the fallback for bare file paths).
func DetectDSNType(dsn string) string {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"), strings.Contains(dsn, "host="):
		return "postgres"
	case strings.HasPrefix(dsn, "redis://"), strings.HasPrefix(dsn, "rediss://"):
		return "redis"
	default:
		return "sqlite"
	}
}
