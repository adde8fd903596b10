// Package session provides storage backends for tenantpipe sessions.
//
// This file implements the Postgres-backed store.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "embed"

	_ "github.com/lib/pq"
	"github.com/propdesk/tenantpipe/internal/models"
)

//go:embed migrations_postgres.sql
var postgresMigrations string

// PostgresStore persists sessions in Postgres.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new Postgres store with the given DSN.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.DSN == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		slog.Error("PostgresStore failed to open connection", "error", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		slog.Error("PostgresStore ping failed", "error", err)
		return nil, err
	}
	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("PostgresStore failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("PostgresStore ready")
	return &PostgresStore{db: db}, nil
}

// GetOrCreate returns the session for the given ID, creating one if needed.
func (p *PostgresStore) GetOrCreate(ctx context.Context, sessionID, userID string) (*models.Session, error) {
	existing, err := p.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	sess := models.NewSession(sessionID, userID)
	if err := p.save(ctx, sess); err != nil {
		return nil, err
	}
	slog.Debug("PostgresStore.GetOrCreate: created session", "sessionID", sessionID)
	return sess, nil
}

// Get returns the session for the given ID, or nil when none exists.
func (p *PostgresStore) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT id, user_id, current_state, language, context, collected_data, active_form, created_at, updated_at
		FROM sessions WHERE id = $1`, sessionID)
	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		slog.Error("PostgresStore.Get failed", "error", err, "sessionID", sessionID)
		return nil, fmt.Errorf("failed to query session %s: %w", sessionID, err)
	}
	return sess, nil
}

// Update persists the session and refreshes its UpdatedAt timestamp.
func (p *PostgresStore) Update(ctx context.Context, sess *models.Session) error {
	sess.UpdatedAt = time.Now().UTC()
	if err := p.save(ctx, sess); err != nil {
		slog.Error("PostgresStore.Update failed", "error", err, "sessionID", sess.ID)
		return err
	}
	slog.Debug("PostgresStore.Update succeeded", "sessionID", sess.ID, "state", sess.CurrentState)
	return nil
}

// Sweep removes sessions whose last update is older than maxAge.
func (p *PostgresStore) Sweep(ctx context.Context, maxAge time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-maxAge)
	res, err := p.db.ExecContext(ctx, `DELETE FROM sessions WHERE updated_at < $1`, cutoff)
	if err != nil {
		slog.Error("PostgresStore.Sweep failed", "error", err)
		return 0, fmt.Errorf("failed to sweep sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		slog.Info("PostgresStore.Sweep: removed stale sessions", "removed", n, "maxAge", maxAge)
	}
	return int(n), nil
}

// List returns all sessions.
func (p *PostgresStore) List(ctx context.Context) ([]*models.Session, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, user_id, current_state, language, context, collected_data, active_form, created_at, updated_at
		FROM sessions ORDER BY updated_at DESC`)
	if err != nil {
		slog.Error("PostgresStore.List query failed", "error", err)
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var out []*models.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			slog.Error("PostgresStore.List scan failed", "error", err)
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		out = append(out, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session rows: %w", err)
	}
	return out, nil
}

// Close closes the database connection.
func (p *PostgresStore) Close() error {
	return p.db.Close()
}

func (p *PostgresStore) save(ctx context.Context, sess *models.Session) error {
	contextJSON, err := json.Marshal(sess.Context)
	if err != nil {
		return fmt.Errorf("failed to encode session context: %w", err)
	}
	dataJSON, err := json.Marshal(sess.CollectedData)
	if err != nil {
		return fmt.Errorf("failed to encode collected data: %w", err)
	}
	var formJSON any
	if sess.ActiveForm != nil {
		b, err := json.Marshal(sess.ActiveForm)
		if err != nil {
			return fmt.Errorf("failed to encode active form: %w", err)
		}
		formJSON = string(b)
	}
	_, err = p.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, current_state, language, context, collected_data, active_form, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			current_state = EXCLUDED.current_state,
			language = EXCLUDED.language,
			context = EXCLUDED.context,
			collected_data = EXCLUDED.collected_data,
			active_form = EXCLUDED.active_form,
			updated_at = EXCLUDED.updated_at`,
		sess.ID, nilIfEmpty(sess.UserID), string(sess.CurrentState), string(sess.Language),
		string(contextJSON), string(dataJSON), formJSON, sess.CreatedAt, sess.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save session %s: %w", sess.ID, err)
	}
	return nil
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
