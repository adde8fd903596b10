// Package notify sends SMS alerts to the on-call line when an emergency
// dispatch succeeds.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/propdesk/tenantpipe/internal/models"
)

// Opts holds configuration options for the Twilio notifier.
type Opts struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	ToNumber   string
}

// Option defines a configuration option for the notifier.
type Option func(*Opts)

// WithAccountSID sets the Twilio account SID.
func WithAccountSID(sid string) Option {
	return func(o *Opts) { o.AccountSID = sid }
}

// WithAuthToken sets the Twilio auth token.
func WithAuthToken(token string) Option {
	return func(o *Opts) { o.AuthToken = token }
}

// WithFromNumber sets the sending phone number.
func WithFromNumber(number string) Option {
	return func(o *Opts) { o.FromNumber = number }
}

// WithToNumber sets the on-call phone number.
func WithToNumber(number string) Option {
	return func(o *Opts) { o.ToNumber = number }
}

// Notifier sends SMS via Twilio.
type Notifier struct {
	client *twilio.RestClient
	from   string
	to     string
}

// New builds a notifier. All four options are required.
func New(opts ...Option) (*Notifier, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.AccountSID == "" || cfg.AuthToken == "" {
		return nil, fmt.Errorf("notify: Twilio credentials are required")
	}
	if cfg.FromNumber == "" || cfg.ToNumber == "" {
		return nil, fmt.Errorf("notify: from and to numbers are required")
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &Notifier{client: client, from: cfg.FromNumber, to: cfg.ToNumber}, nil
}

// SendEmergencySMS alerts the on-call line about a new emergency.
func (n *Notifier) SendEmergencySMS(alertID, summary string) error {
	body := "EMERGENCY alert"
	if alertID != "" {
		body += " " + alertID
	}
	if summary != "" {
		body += ": " + summary
	}
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(n.to)
	params.SetFrom(n.from)
	params.SetBody(body)
	if _, err := n.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("Notifier.SendEmergencySMS: %w", err)
	}
	return nil
}

// Dispatcher matches the engine's dispatcher contract.
type Dispatcher interface {
	Dispatch(ctx context.Context, payload models.ActionPayload) models.DispatchResult
}

type hookedDispatcher struct {
	inner    Dispatcher
	notifier *Notifier
}

// WrapDispatcher decorates a dispatcher so successful emergency-alert
// dispatches also page the on-call line. Notification failures are logged
// and never affect the dispatch result.
func WrapDispatcher(inner Dispatcher, n *Notifier) Dispatcher {
	if n == nil {
		return inner
	}
	return &hookedDispatcher{inner: inner, notifier: n}
}

func (h *hookedDispatcher) Dispatch(ctx context.Context, payload models.ActionPayload) models.DispatchResult {
	res := h.inner.Dispatch(ctx, payload)
	if payload.Endpoint == models.EndpointEmergencyAlert && res.Success {
		summary := ""
		if v, ok := payload.Data["summary"].(string); ok {
			summary = v
		}
		alertID := ""
		if res.EmergencyAlert != nil {
			alertID = res.EmergencyAlert.AlertID
		}
		if err := h.notifier.SendEmergencySMS(alertID, summary); err != nil {
			slog.Error("hookedDispatcher.Dispatch: emergency SMS failed", "error", err)
		}
	}
	return res
}
