package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/propdesk/tenantpipe/internal/catalog"
	"github.com/propdesk/tenantpipe/internal/engine"
	"github.com/propdesk/tenantpipe/internal/hours"
	"github.com/propdesk/tenantpipe/internal/models"
	"github.com/propdesk/tenantpipe/internal/session"
)

func newTestServer(t *testing.T) (*Server, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore()
	gate, err := hours.NewGate(hours.DefaultSchedule())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	eng := engine.New(store, catalog.Default(), gate)
	return NewServer(eng, store, gate, nil), store
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) models.APIResponse {
	t.Helper()
	var env models.APIResponse
	if err := json.NewDecoder(w.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestChatHandler(t *testing.T) {
	srv, _ := newTestServer(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"Hello"}`))
	srv.chatHandler(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp models.TurnResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode turn response: %v", err)
	}
	if resp.SessionID == "" {
		t.Error("response should carry a session ID")
	}
	if resp.NextState != models.StateStart {
		t.Errorf("next state = %s, want start", resp.NextState)
	}
	if len(resp.QuickReplies) == 0 {
		t.Error("fresh turn should offer quick replies")
	}
}

func TestChatHandlerRejections(t *testing.T) {
	srv, _ := newTestServer(t)
	long := strings.Repeat("a", models.MaxInputLength+1)

	tests := []struct {
		name   string
		method string
		body   string
		want   int
	}{
		{"method not allowed", http.MethodGet, "", http.StatusMethodNotAllowed},
		{"bad JSON", http.MethodPost, "{not json", http.StatusBadRequest},
		{"empty message", http.MethodPost, `{"message":"   "}`, http.StatusBadRequest},
		{"oversized message", http.MethodPost, `{"message":"` + long + `"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(tt.method, "/chat", strings.NewReader(tt.body))
			srv.chatHandler(w, r)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
			if env := decodeEnvelope(t, w); env.Status != "error" {
				t.Errorf("envelope status = %q, want error", env.Status)
			}
		})
	}
}

func TestAssistantHandlerUnconfigured(t *testing.T) {
	srv, _ := newTestServer(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/assistant", strings.NewReader(`{"question":"What are your hours?"}`))
	srv.assistantHandler(w, r)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestHoursHandlerGetAndPatch(t *testing.T) {
	srv, _ := newTestServer(t)

	w := httptest.NewRecorder()
	srv.hoursHandler(w, httptest.NewRequest(http.MethodGet, "/hours", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET status = %d", w.Code)
	}
	if env := decodeEnvelope(t, w); env.Status != "ok" {
		t.Errorf("GET envelope status = %q", env.Status)
	}

	// Weekday map keys marshal as their integer values; 6 is Saturday.
	w = httptest.NewRecorder()
	patch := `{"days":{"6":{"open":"09:00","close":"12:00"}}}`
	srv.hoursHandler(w, httptest.NewRequest(http.MethodPatch, "/hours", strings.NewReader(patch)))
	if w.Code != http.StatusOK {
		t.Fatalf("PATCH status = %d: %s", w.Code, w.Body.String())
	}

	sched := srv.gate.Schedule()
	if day, ok := sched.Days[time.Saturday]; !ok || day.Open != "09:00" {
		t.Errorf("schedule not patched: %+v", sched.Days)
	}
}

func TestHoursHandlerRejectsBadPatch(t *testing.T) {
	srv, _ := newTestServer(t)

	w := httptest.NewRecorder()
	patch := `{"timezone":"Not/AZone"}`
	srv.hoursHandler(w, httptest.NewRequest(http.MethodPatch, "/hours", strings.NewReader(patch)))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSessionsHandler(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := httptest.NewRequest(http.MethodGet, "/admin/sessions", nil).Context()
	if _, err := store.GetOrCreate(ctx, "s_list", "u_1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w := httptest.NewRecorder()
	srv.sessionsHandler(w, httptest.NewRequest(http.MethodGet, "/admin/sessions", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	env := decodeEnvelope(t, w)
	list, ok := env.Result.([]any)
	if !ok || len(list) != 1 {
		t.Errorf("result = %v, want one session", env.Result)
	}
}

func TestSweepHandler(t *testing.T) {
	srv, _ := newTestServer(t)

	w := httptest.NewRecorder()
	srv.sweepHandler(w, httptest.NewRequest(http.MethodPost, "/admin/sessions/sweep?maxAge=1h", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	result, ok := env.Result.(map[string]any)
	if !ok || result["maxAge"] != time.Hour.String() {
		t.Errorf("result = %v", env.Result)
	}

	w = httptest.NewRecorder()
	srv.sweepHandler(w, httptest.NewRequest(http.MethodPost, "/admin/sessions/sweep?maxAge=nope", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid duration status = %d, want 400", w.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	srv, _ := newTestServer(t)

	w := httptest.NewRecorder()
	srv.healthHandler(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var health healthResponse
	if err := json.NewDecoder(w.Body).Decode(&health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health.Status != "ok" {
		t.Errorf("health status = %q", health.Status)
	}
}
