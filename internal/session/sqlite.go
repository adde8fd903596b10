// Package session provides storage backends for tenantpipe sessions.
//
// This file implements the SQLite-backed store.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "embed"

	"github.com/propdesk/tenantpipe/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultDirPermissions defines the default permissions for database directories.
const DefaultDirPermissions = 0755

//go:embed migrations_sqlite.sql
var sqliteMigrations string

// SQLiteStore persists sessions in a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store with the given DSN (a file
// path). The parent directory is created if missing.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.DSN == "" {
		slog.Error("SQLiteStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	dir := filepath.Dir(cfg.DSN)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("SQLiteStore failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		slog.Error("SQLiteStore failed to open connection", "error", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		slog.Error("SQLiteStore ping failed", "error", err)
		return nil, err
	}
	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("SQLiteStore failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLiteStore ready", "path", cfg.DSN)
	return &SQLiteStore{db: db}, nil
}

// GetOrCreate returns the session for the given ID, creating one if needed.
func (s *SQLiteStore) GetOrCreate(ctx context.Context, sessionID, userID string) (*models.Session, error) {
	existing, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	sess := models.NewSession(sessionID, userID)
	if err := s.insert(ctx, sess); err != nil {
		return nil, err
	}
	slog.Debug("SQLiteStore.GetOrCreate: created session", "sessionID", sessionID)
	return sess, nil
}

// Get returns the session for the given ID, or nil when none exists.
func (s *SQLiteStore) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, current_state, language, context, collected_data, active_form, created_at, updated_at
		FROM sessions WHERE id = ?`, sessionID)
	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		slog.Error("SQLiteStore.Get failed", "error", err, "sessionID", sessionID)
		return nil, fmt.Errorf("failed to query session %s: %w", sessionID, err)
	}
	return sess, nil
}

// Update persists the session and refreshes its UpdatedAt timestamp.
func (s *SQLiteStore) Update(ctx context.Context, sess *models.Session) error {
	sess.UpdatedAt = time.Now().UTC()
	contextJSON, dataJSON, formJSON, err := encodeSessionBlobs(sess)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, current_state, language, context, collected_data, active_form, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			current_state = excluded.current_state,
			language = excluded.language,
			context = excluded.context,
			collected_data = excluded.collected_data,
			active_form = excluded.active_form,
			updated_at = excluded.updated_at`,
		sess.ID, sess.UserID, string(sess.CurrentState), string(sess.Language),
		contextJSON, dataJSON, formJSON, sess.CreatedAt, sess.UpdatedAt)
	if err != nil {
		slog.Error("SQLiteStore.Update failed", "error", err, "sessionID", sess.ID)
		return fmt.Errorf("failed to save session %s: %w", sess.ID, err)
	}
	slog.Debug("SQLiteStore.Update succeeded", "sessionID", sess.ID, "state", sess.CurrentState)
	return nil
}

// Sweep removes sessions whose last update is older than maxAge.
func (s *SQLiteStore) Sweep(ctx context.Context, maxAge time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-maxAge)
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE updated_at < ?`, cutoff)
	if err != nil {
		slog.Error("SQLiteStore.Sweep failed", "error", err)
		return 0, fmt.Errorf("failed to sweep sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		slog.Info("SQLiteStore.Sweep: removed stale sessions", "removed", n, "maxAge", maxAge)
	}
	return int(n), nil
}

// List returns all sessions.
func (s *SQLiteStore) List(ctx context.Context) ([]*models.Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, current_state, language, context, collected_data, active_form, created_at, updated_at
		FROM sessions ORDER BY updated_at DESC`)
	if err != nil {
		slog.Error("SQLiteStore.List query failed", "error", err)
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var out []*models.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			slog.Error("SQLiteStore.List scan failed", "error", err)
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
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) insert(ctx context.Context, sess *models.Session) error {
	contextJSON, dataJSON, formJSON, err := encodeSessionBlobs(sess)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, current_state, language, context, collected_data, active_form, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.UserID, string(sess.CurrentState), string(sess.Language),
		contextJSON, dataJSON, formJSON, sess.CreatedAt, sess.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert session %s: %w", sess.ID, err)
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*models.Session, error) {
	var (
		sess        models.Session
		userID      sql.NullString
		state, lang string
		contextJSON string
		dataJSON    string
		formJSON    sql.NullString
	)
	err := row.Scan(&sess.ID, &userID, &state, &lang, &contextJSON, &dataJSON, &formJSON, &sess.CreatedAt, &sess.UpdatedAt)
	if err != nil {
		return nil, err
	}
	sess.UserID = userID.String
	sess.CurrentState = models.StateType(state)
	sess.Language = models.Language(lang)
	if err := json.Unmarshal([]byte(contextJSON), &sess.Context); err != nil {
		return nil, fmt.Errorf("failed to decode session context: %w", err)
	}
	if err := json.Unmarshal([]byte(dataJSON), &sess.CollectedData); err != nil {
		return nil, fmt.Errorf("failed to decode collected data: %w", err)
	}
	if formJSON.Valid && formJSON.String != "" {
		var af models.ActiveForm
		if err := json.Unmarshal([]byte(formJSON.String), &af); err != nil {
			return nil, fmt.Errorf("failed to decode active form: %w", err)
		}
		sess.ActiveForm = &af
	}
	return &sess, nil
}

func encodeSessionBlobs(sess *models.Session) (contextJSON, dataJSON string, formJSON any, err error) {
	ctxBytes, err := json.Marshal(sess.Context)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to encode session context: %w", err)
	}
	dataBytes, err := json.Marshal(sess.CollectedData)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to encode collected data: %w", err)
	}
	if sess.ActiveForm != nil {
		formBytes, err := json.Marshal(sess.ActiveForm)
		if err != nil {
			return "", "", nil, fmt.Errorf("failed to encode active form: %w", err)
		}
		return string(ctxBytes), string(dataBytes), string(formBytes), nil
	}
	return string(ctxBytes), string(dataBytes), nil, nil
}
