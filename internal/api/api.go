// Package api exposes the tenantpipe HTTP surface: the chat turn endpoint,
// the free-form assistant proxy, business-hours configuration, and session
// administration.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/propdesk/tenantpipe/internal/engine"
	"github.com/propdesk/tenantpipe/internal/genai"
	"github.com/propdesk/tenantpipe/internal/hours"
	"github.com/propdesk/tenantpipe/internal/session"
)

// Opts holds configuration options for the API server.
type Opts struct {
	// Addr is the listen address, host:port.
	Addr string
	// SweepMaxAge is the idle threshold used by the admin sweep endpoint.
	SweepMaxAge time.Duration
}

// Option defines a configuration option for the server.
type Option func(*Opts)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) { o.Addr = addr }
}

// WithSweepMaxAge sets the idle threshold for the admin sweep endpoint.
func WithSweepMaxAge(d time.Duration) Option {
	return func(o *Opts) { o.SweepMaxAge = d }
}

// Server wires the dialogue engine and its supporting modules to HTTP.
type Server struct {
	engine      *engine.Engine
	store       session.Store
	gate        *hours.Gate
	assistant   *genai.Client
	addr        string
	sweepMaxAge time.Duration
	httpServer  *http.Server
}

// NewServer builds the API server. The assistant client may be nil; the
// assistant endpoint then reports unavailable.
func NewServer(eng *engine.Engine, store session.Store, gate *hours.Gate, assistant *genai.Client, opts ...Option) *Server {
	cfg := Opts{
		Addr:        ":8080",
		SweepMaxAge: 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		engine:      eng,
		store:       store,
		gate:        gate,
		assistant:   assistant,
		addr:        cfg.Addr,
		sweepMaxAge: cfg.SweepMaxAge,
	}
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/chat", s.chatHandler)
	mux.HandleFunc("/assistant", s.assistantHandler)
	mux.HandleFunc("/hours", s.hoursHandler)
	mux.HandleFunc("/admin/sessions", s.sessionsHandler)
	mux.HandleFunc("/admin/sessions/sweep", s.sweepHandler)
	mux.HandleFunc("/health", s.healthHandler)

	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("Server.Run: tenantpipe API listening", "addr", s.addr)
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
