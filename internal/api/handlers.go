package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/propdesk/tenantpipe/internal/hours"
	"github.com/propdesk/tenantpipe/internal/models"
)

// chatHandler processes one conversation turn.
func (s *Server) chatHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONResponse(w, http.StatusMethodNotAllowed, models.Error("Method not allowed"))
		return
	}
	var req models.TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Message is required"))
		return
	}
	if len(req.Message) > models.MaxInputLength {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Message is too long"))
		return
	}

	resp := s.engine.ProcessTurn(r.Context(), req)
	writeJSONResponse(w, http.StatusOK, resp)
}

type assistantRequest struct {
	Question string `json:"question"`
	Language string `json:"language,omitempty"`
}

type assistantResponse struct {
	Answer string `json:"answer"`
}

// assistantHandler proxies free-form questions to the assistant model.
func (s *Server) assistantHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONResponse(w, http.StatusMethodNotAllowed, models.Error("Method not allowed"))
		return
	}
	if s.assistant == nil {
		writeJSONResponse(w, http.StatusServiceUnavailable, models.Error("Assistant is not configured"))
		return
	}
	var req assistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Question is required"))
		return
	}
	lang := models.LangEN
	if models.Language(req.Language) == models.LangFR {
		lang = models.LangFR
	}

	answer, err := s.assistant.Answer(r.Context(), req.Question, lang)
	if err != nil {
		slog.Error("Server.assistantHandler: assistant call failed", "error", err)
		writeJSONResponse(w, http.StatusBadGateway, models.Error("Assistant is temporarily unavailable"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(assistantResponse{Answer: answer}))
}

// hoursHandler reads or patches the business-hours schedule.
func (s *Server) hoursHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSONResponse(w, http.StatusOK, models.Success(s.gate.Schedule()))
	case http.MethodPatch:
		var patch hours.SchedulePatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
			return
		}
		if err := s.gate.Update(patch); err != nil {
			writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
			return
		}
		writeJSONResponse(w, http.StatusOK, models.Success(s.gate.Schedule()))
	default:
		writeJSONResponse(w, http.StatusMethodNotAllowed, models.Error("Method not allowed"))
	}
}

// sessionsHandler lists sessions for debugging.
func (s *Server) sessionsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSONResponse(w, http.StatusMethodNotAllowed, models.Error("Method not allowed"))
		return
	}
	sessions, err := s.store.List(r.Context())
	if err != nil {
		slog.Error("Server.sessionsHandler: list failed", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to list sessions"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(sessions))
}

type sweepResponse struct {
	Removed int    `json:"removed"`
	MaxAge  string `json:"maxAge"`
}

// sweepHandler removes stale sessions on demand.
func (s *Server) sweepHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONResponse(w, http.StatusMethodNotAllowed, models.Error("Method not allowed"))
		return
	}
	maxAge := s.sweepMaxAge
	if raw := r.URL.Query().Get("maxAge"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid maxAge duration"))
			return
		}
		maxAge = d
	}

	removed, err := s.store.Sweep(r.Context(), maxAge)
	if err != nil {
		slog.Error("Server.sweepHandler: sweep failed", "error", err)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to sweep sessions"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(sweepResponse{Removed: removed, MaxAge: maxAge.String()}))
}

type healthResponse struct {
	Status string `json:"status"`
	Open   bool   `json:"businessOpen"`
}

// healthHandler reports liveness plus whether the business is open now.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSONResponse(w, http.StatusMethodNotAllowed, models.Error("Method not allowed"))
		return
	}
	writeJSONResponse(w, http.StatusOK, healthResponse{Status: "ok", Open: s.gate.IsOpen(time.Now())})
}
