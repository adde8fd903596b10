// Package engine implements the per-turn dialogue orchestration: session
// load, language detection, state routing, slot filling, business-hours
// interception, and action dispatch.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/propdesk/tenantpipe/internal/catalog"
	"github.com/propdesk/tenantpipe/internal/hours"
	"github.com/propdesk/tenantpipe/internal/models"
	"github.com/propdesk/tenantpipe/internal/session"
	"github.com/propdesk/tenantpipe/internal/util"
)

// Dispatcher executes an action payload against the downstream business
// system. Implementations must return a failed result rather than panic or
// hang; the engine treats every dispatch as best-effort.
type Dispatcher interface {
	Dispatch(ctx context.Context, payload models.ActionPayload) models.DispatchResult
}

// Engine drives one conversation turn at a time. It is safe for concurrent
// use across distinct session IDs.
type Engine struct {
	store    session.Store
	catalog  *catalog.Catalog
	gate     *hours.Gate
	dispatch Dispatcher
	now      func() time.Time
}

// Option defines a configuration option for the engine.
type Option func(*Engine)

// WithDispatcher wires the downstream action dispatcher. Without one, form
// completions still confirm but no external call is made.
func WithDispatcher(d Dispatcher) Option {
	return func(e *Engine) { e.dispatch = d }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New builds an engine over the given session store, catalog and hours gate.
func New(store session.Store, cat *catalog.Catalog, gate *hours.Gate, opts ...Option) *Engine {
	e := &Engine{
		store:   store,
		catalog: cat,
		gate:    gate,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// turnResult is the engine-internal outcome of one turn before response
// assembly.
type turnResult struct {
	message       string
	replies       []models.ReplyOption
	requiresInput bool
	inputType     string
	action        *models.ActionPayload
}

// ProcessTurn handles one inbound user turn. It never returns an error: any
// internal fault degrades to a localized fallback response so the
// conversation always answers.
func (e *Engine) ProcessTurn(ctx context.Context, req models.TurnRequest) models.TurnResponse {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = util.GenerateSessionID()
	}

	sess := e.loadSession(ctx, sessionID, req.UserID)
	prevState := sess.CurrentState
	applyLanguageHeuristic(sess, req.Message)

	var (
		res turnResult
		err error
	)
	if sess.ActiveForm != nil {
		res, err = e.handleFormInput(sess, req.Message)
	} else {
		res, err = e.routeTurn(sess, req.Message)
	}
	if err != nil {
		slog.Error("Engine.ProcessTurn: turn degraded to fallback",
			"session_id", sess.ID, "state", prevState, "error", err)
		res = e.fallbackResult(sess)
	}

	// State is committed before dispatch so a downstream failure never
	// loses the completed form.
	e.saveSession(ctx, sess)

	if res.action != nil {
		result := e.dispatchAction(ctx, *res.action)
		if result.Success {
			res.message = Interpolate(res.message, placeholderValuesFor(result, res.action), sess.Language)
		} else {
			slog.Error("Engine.ProcessTurn: dispatch failed",
				"session_id", sess.ID, "endpoint", res.action.Endpoint, "error", result.Err)
		}
	}

	return models.TurnResponse{
		Message:         res.message,
		QuickReplies:    res.replies,
		RequiresInput:   res.requiresInput,
		InputType:       res.inputType,
		SessionID:       sess.ID,
		NextState:       sess.CurrentState,
		EndConversation: prevState == models.StateEndOrMore && sess.CurrentState == models.StateStart,
	}
}

// routeTurn resolves the next state off free input and renders it, starting
// a form or intercepting after-hours handoffs where required. Input that
// resolves nothing re-renders the current state's template unchanged.
func (e *Engine) routeTurn(sess *models.Session, input string) (turnResult, error) {
	next, err := e.resolveNextState(sess.CurrentState, sess.Language, input)
	if err != nil {
		return turnResult{}, err
	}
	if next == "" {
		return e.renderState(sess)
	}
	sess.CurrentState = next

	if next == models.StateHandoffIntro && !e.gate.IsOpen(e.now()) {
		return e.afterHoursTurn(sess)
	}

	if formName, ok := formForState[next]; ok {
		res, err := e.startForm(sess, formName)
		if err != nil {
			return turnResult{}, err
		}
		if entry, terr := e.catalog.Template(next); terr == nil && entry.Text.Get(sess.Language) != "" {
			res.message = entry.Text.Get(sess.Language) + "\n\n" + res.message
		}
		return res, nil
	}
	return e.renderState(sess)
}

// renderState emits the current state's template without routing.
func (e *Engine) renderState(sess *models.Session) (turnResult, error) {
	entry, err := e.catalog.Template(sess.CurrentState)
	if err != nil {
		return turnResult{}, err
	}
	return turnResult{
		message:       entry.Text.Get(sess.Language),
		replies:       localizedReplies(entry, sess.Language),
		requiresInput: entry.RequiresInput,
		inputType:     entry.InputType,
	}, nil
}

// afterHoursTurn replaces the handoff form with the after-hours and
// emergency-contact messages and parks the session at end_or_more.
func (e *Engine) afterHoursTurn(sess *models.Session) (turnResult, error) {
	sess.CurrentState = models.StateEndOrMore
	entry, err := e.catalog.Template(models.StateEndOrMore)
	if err != nil {
		return turnResult{}, err
	}
	msg := e.gate.AfterHoursMessage(sess.Language, e.now()) + "\n\n" +
		e.gate.EmergencyContactMessage(sess.Language)
	return turnResult{
		message: msg,
		replies: localizedReplies(entry, sess.Language),
	}, nil
}

// fallbackResult is the universal degradation path: an apology plus the
// human emergency contact. Any in-progress form is abandoned.
func (e *Engine) fallbackResult(sess *models.Session) turnResult {
	sess.ActiveForm = nil
	sess.CurrentState = models.StateFallback

	res := turnResult{
		message: "Sorry, something went wrong on our side. Please try again.",
	}
	if sess.Language == models.LangFR {
		res.message = "Désolé, une erreur est survenue de notre côté. Veuillez réessayer."
	}
	if entry, err := e.catalog.Template(models.StateFallback); err == nil {
		res.message = entry.Text.Get(sess.Language)
		res.replies = localizedReplies(entry, sess.Language)
	}
	res.message += "\n\n" + e.gate.EmergencyContactMessage(sess.Language)
	return res
}

// loadSession fetches or lazily creates the session. A store failure falls
// back to an ephemeral session so the turn still answers.
func (e *Engine) loadSession(ctx context.Context, sessionID, userID string) *models.Session {
	sess, err := e.store.GetOrCreate(ctx, sessionID, userID)
	if err != nil {
		slog.Error("Engine.loadSession: store unavailable, using ephemeral session",
			"session_id", sessionID, "error", err)
		return models.NewSession(sessionID, userID)
	}
	return sess
}

func (e *Engine) saveSession(ctx context.Context, sess *models.Session) {
	if err := e.store.Update(ctx, sess); err != nil {
		slog.Error("Engine.saveSession: session update failed", "session_id", sess.ID, "error", err)
	}
}

// dispatchAction runs the payload through the configured dispatcher.
func (e *Engine) dispatchAction(ctx context.Context, payload models.ActionPayload) models.DispatchResult {
	if e.dispatch == nil {
		return models.DispatchResult{Endpoint: payload.Endpoint, Success: true}
	}
	return e.dispatch.Dispatch(ctx, payload)
}

func localizedReplies(entry models.TemplateEntry, lang models.Language) []models.ReplyOption {
	if len(entry.QuickReplies) == 0 {
		return nil
	}
	replies := make([]models.ReplyOption, 0, len(entry.QuickReplies))
	for _, qr := range entry.QuickReplies {
		replies = append(replies, models.ReplyOption{Label: qr.Label.Get(lang), Value: qr.Value})
	}
	return replies
}
