// Package dispatch executes action payloads against the downstream
// property-management system over HTTP.
//
// Each catalog endpoint has a named builder that enriches the form data
// with derived fields and decodes the typed receipt; unrecognized
// endpoints go through a generic executor. Every failure is converted to a
// failed result, never a fault.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/propdesk/tenantpipe/internal/models"
)

const maxResponseBytes = 1 << 20

// Opts holds configuration options for the dispatch client.
type Opts struct {
	// BaseURL is the root of the downstream business API.
	BaseURL string
	// APIKey, when set, is sent as a bearer credential.
	APIKey string
	// Timeout bounds each dispatch call.
	Timeout time.Duration
	// HTTPClient overrides the default client, for tests.
	HTTPClient *http.Client
}

// Option defines a configuration option for the client.
type Option func(*Opts)

// WithBaseURL sets the downstream API root.
func WithBaseURL(u string) Option {
	return func(o *Opts) { o.BaseURL = u }
}

// WithAPIKey sets the bearer credential.
func WithAPIKey(key string) Option {
	return func(o *Opts) { o.APIKey = key }
}

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *Opts) { o.Timeout = d }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *Opts) { o.HTTPClient = c }
}

// Client dispatches action payloads. Safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	now     func() time.Time
}

// NewClient builds a dispatch client.
func NewClient(opts ...Option) *Client {
	cfg := Opts{Timeout: 15 * time.Second}
	for _, opt := range opts {
		opt(&cfg)
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    hc,
		now:     time.Now,
	}
}

// Dispatch resolves the payload's endpoint to a named builder, or to the
// generic executor, and performs the call. All errors come back as a failed
// result.
func (c *Client) Dispatch(ctx context.Context, payload models.ActionPayload) models.DispatchResult {
	b, ok := builders[payload.Endpoint]
	if !ok {
		slog.Warn("Client.Dispatch: no builder for endpoint, using generic executor",
			"endpoint", payload.Endpoint)
		return c.dispatchGeneric(ctx, payload)
	}

	data := cloneData(payload.Data)
	if b.enrich != nil {
		b.enrich(c.now().UTC(), data)
	}
	method := payload.Method
	if b.method != "" {
		method = b.method
	}

	body, err := c.call(ctx, method, payload.Endpoint, data, payload.Headers, b.query)
	if err != nil {
		return models.Failure(payload.Endpoint, err)
	}

	res := models.DispatchResult{Endpoint: payload.Endpoint, Success: true}
	if err := b.decode(body, &res); err != nil {
		return models.Failure(payload.Endpoint, fmt.Errorf("decode receipt: %w", err))
	}
	return res
}

// dispatchGeneric performs the call as-is and keeps the raw response map.
func (c *Client) dispatchGeneric(ctx context.Context, payload models.ActionPayload) models.DispatchResult {
	body, err := c.call(ctx, payload.Method, payload.Endpoint, payload.Data, payload.Headers, nil)
	if err != nil {
		return models.Failure(payload.Endpoint, err)
	}
	res := models.DispatchResult{Endpoint: payload.Endpoint, Success: true}
	if len(body) > 0 {
		generic := map[string]any{}
		if err := json.Unmarshal(body, &generic); err != nil {
			return models.Failure(payload.Endpoint, fmt.Errorf("decode response: %w", err))
		}
		res.Generic = generic
	}
	return res
}

// call executes one HTTP request and returns the response body. GET-style
// builders move their data into query parameters via toQuery.
func (c *Client) call(ctx context.Context, method, endpoint string, data map[string]any, headers map[string]string, toQuery func(map[string]any) url.Values) ([]byte, error) {
	if method == "" {
		method = http.MethodPost
	}
	target := c.baseURL + endpoint

	var reqBody io.Reader
	if toQuery != nil {
		q := toQuery(data)
		if len(q) > 0 {
			target += "?" + q.Encode()
		}
	} else if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encode payload: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("X-Correlation-ID", uuid.NewString())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%s %s: status %d: %s", method, endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

func cloneData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data)+4)
	for k, v := range data {
		out[k] = v
	}
	return out
}
