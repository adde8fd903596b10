// Package genai answers open-ended tenant questions that fall outside the
// scripted dialogue flows, using the OpenAI Chat Completions API.
package genai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/propdesk/tenantpipe/internal/models"
)

const systemPromptEN = `You are a helpful assistant for Elite Immobilier, a property management company in Québec. Answer tenant questions briefly and accurately. For maintenance requests, billing, lease changes, parking, or emergencies, direct the tenant back to the structured chat menu. For true emergencies, tell the tenant to call 873.660.1498 immediately. If you do not know an answer, say so and suggest contacting the office during business hours (Mon-Fri 8:00-16:00 EST).`

const systemPromptFR = `Vous êtes un assistant pour Elite Immobilier, une société de gestion immobilière au Québec. Répondez brièvement et précisément aux questions des locataires. Pour les demandes d'entretien, la facturation, les changements de bail, le stationnement ou les urgences, redirigez le locataire vers le menu structuré. Pour une véritable urgence, dites au locataire d'appeler immédiatement le 873.660.1498. Si vous ne connaissez pas la réponse, dites-le et suggérez de contacter le bureau pendant les heures d'affaires (Lun-Ven 8h00-16h00 EST).`

// Opts holds configuration options for the assistant client.
type Opts struct {
	APIKey string
	Model  string
}

// Option defines a configuration option for the assistant client.
type Option func(*Opts)

// WithAPIKey sets the OpenAI API key.
func WithAPIKey(key string) Option {
	return func(o *Opts) { o.APIKey = key }
}

// WithModel overrides the completion model.
func WithModel(model string) Option {
	return func(o *Opts) { o.Model = model }
}

// Client is the assistant proxy. Safe for concurrent use.
type Client struct {
	client openai.Client
	model  string
}

// NewClient builds an assistant client.
func NewClient(opts ...Option) (*Client, error) {
	cfg := Opts{Model: openai.ChatModelGPT4oMini}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("genai: API key is required")
	}
	client := openai.NewClient(option.WithAPIKey(cfg.APIKey))
	return &Client{client: client, model: cfg.Model}, nil
}

// Answer generates a reply to a free-form tenant question in the session's
// language.
func (c *Client) Answer(ctx context.Context, question string, lang models.Language) (string, error) {
	systemPrompt := systemPromptEN
	if lang == models.LangFR {
		systemPrompt = systemPromptFR
	}
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(question),
		},
	})
	if err != nil {
		return "", fmt.Errorf("Client.Answer: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("Client.Answer: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
