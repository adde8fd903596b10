package session

import (
	"context"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/propdesk/tenantpipe/internal/models"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "sessions.db")
	s, err := NewSQLiteStore(WithDSN(dsn))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	sess, err := s.GetOrCreate(ctx, "s_1", "u_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.CurrentState != models.StateStart {
		t.Errorf("fresh session state = %s, want start", sess.CurrentState)
	}

	sess.CurrentState = models.StateMaintIntro
	sess.Language = models.LangFR
	sess.CollectedData["unit"] = "101"
	sess.ActiveForm = &models.ActiveForm{FormName: "maintenance_request", SlotIndex: 2}
	if err := s.Update(ctx, sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := s.Get(ctx, "s_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("session not found after update")
	}
	if got.CurrentState != models.StateMaintIntro || got.Language != models.LangFR {
		t.Errorf("round-trip lost state/language: %s %s", got.CurrentState, got.Language)
	}
	if got.CollectedData["unit"] != "101" {
		t.Errorf("collected data = %v", got.CollectedData)
	}
	if got.ActiveForm == nil || got.ActiveForm.FormName != "maintenance_request" || got.ActiveForm.SlotIndex != 2 {
		t.Errorf("active form = %+v", got.ActiveForm)
	}
}

func TestSQLiteStoreGetMissing(t *testing.T) {
	s, err := NewSQLiteStore(WithDSN(filepath.Join(t.TempDir(), "sessions.db")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	got, err := s.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing session, got %+v", got)
	}
}

func TestSQLiteStoreSweepAndList(t *testing.T) {
	s, err := NewSQLiteStore(WithDSN(filepath.Join(t.TempDir(), "sessions.db")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	stale, _ := s.GetOrCreate(ctx, "stale", "u_1")
	if err := s.Update(ctx, stale); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Backdate the stale row past any reasonable maxAge.
	old := time.Now().UTC().Add(-48 * time.Hour)
	if _, err := s.db.Exec(`UPDATE sessions SET updated_at = ? WHERE id = ?`, old, "stale"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fresh, _ := s.GetOrCreate(ctx, "fresh", "u_2")
	if err := s.Update(ctx, fresh); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	removed, err := s.Sweep(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 || list[0].ID != "fresh" {
		t.Errorf("list = %+v, want only the fresh session", list)
	}

	removed, err = s.Sweep(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 0 {
		t.Errorf("second sweep removed = %d, want 0", removed)
	}
}

func TestSQLiteStoreRequiresDSN(t *testing.T) {
	if _, err := NewSQLiteStore(); err == nil {
		t.Error("expected error for empty DSN")
	}
}

func TestPostgresStore(t *testing.T) {
	// This test requires a running PostgreSQL instance. Set the
	// TEST_DATABASE_URL environment variable for the connection string.
	connStr := getenvOrSkip(t, "TEST_DATABASE_URL")
	s, err := NewPostgresStore(WithDSN(connStr))
	if err != nil {
		t.Skipf("Postgres not available: %v", err)
	}
	defer s.Close()
	s.db.Exec("DELETE FROM sessions")

	ctx := context.Background()
	sess, err := s.GetOrCreate(ctx, "s_pg", "u_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sess.CurrentState = models.StateMainMenu
	if err := s.Update(ctx, sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := s.Get(ctx, "s_pg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.CurrentState != models.StateMainMenu {
		t.Errorf("session not stored or retrieved correctly in Postgres: %+v", got)
	}
}

func TestRedisStore(t *testing.T) {
	// Set TEST_REDIS_ADDR (host:port) to run against a live Redis.
	addr := getenvOrSkip(t, "TEST_REDIS_ADDR")
	s, err := NewRedisStore(WithDSN(addr))
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	sess, err := s.GetOrCreate(ctx, "s_rd", "u_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sess.Language = models.LangFR
	if err := s.Update(ctx, sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := s.Get(ctx, "s_rd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.Language != models.LangFR {
		t.Errorf("session not stored or retrieved correctly in Redis: %+v", got)
	}
}

func getenvOrSkip(t *testing.T, key string) string {
	v := ""
	if val, ok := syscall.Getenv(key); ok {
		v = val
	}
	if v == "" {
		t.Skipf("env %s not set", key)
	}
	return v
}
