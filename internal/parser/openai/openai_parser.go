package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"docorch/internal/config"
	"docorch/internal/metrics"
	"docorch/internal/parser"
	"docorch/internal/port"
)

// Temperature is kept low so extractions are close to deterministic.
const Temperature = 0.2

// Provider describes an OpenAI-compatible chat-completions service.
type Provider struct {
	Name         string
	Endpoint     string
	DefaultModel string
}

var (
	Groq = Provider{
		Name:         "groq",
		Endpoint:     "https://api.groq.com/openai/v1/chat/completions",
		DefaultModel: "llama-3.1-8b-instant",
	}
	OpenAI = Provider{
		Name:         "openai",
		Endpoint:     "https://api.openai.com/v1/chat/completions",
		DefaultModel: "gpt-4o-mini",
	}
)

// Client implements port.CompletionClient using the Chat Completions API in JSON mode.
type Client struct {
	provider string
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
	metrics  *metrics.Metrics
}

// Option customizes a Client.
type Option func(*Client)

// WithMetrics records request outcomes and parse modes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// NewClient creates a client for provider p. Empty model or endpoint in cfg fall back to
// the provider defaults. A zero TimeoutSecs leaves the request without an explicit timeout.
func NewClient(cfg *config.LLMConfig, p Provider, opts ...Option) *Client {
	model := cfg.Model
	if model == "" {
		model = p.DefaultModel
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = p.Endpoint
	}
	c := &Client{
		provider: p.Name,
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: time.Duration(cfg.TimeoutSecs) * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register adds the groq and openai providers to the parser factory.
func Register(m *metrics.Metrics) {
	for _, p := range []Provider{Groq, OpenAI} {
		p := p
		parser.RegisterProvider(p.Name, func(cfg *config.LLMConfig) (port.CompletionClient, error) {
			return NewClient(cfg, p, WithMetrics(m)), nil
		})
	}
}

// Model returns the model identifier sent with each request.
func (c *Client) Model() string {
	return c.model
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
}

// apiResponse models the Chat Completions API response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// CompleteJSON sends the instruction pair and decodes the first choice leniently.
func (c *Client) CompleteJSON(ctx context.Context, system, user string) (*port.Completion, error) {
	start := time.Now()
	content, err := c.complete(ctx, system, user)
	if err != nil {
		c.metrics.ObserveLLM("error", time.Since(start))
		return nil, err
	}
	c.metrics.ObserveLLM("ok", time.Since(start))

	result, mode := parser.DecodeLenient(content)
	c.metrics.IncParseMode(string(mode))

	return &port.Completion{
		Result:  result,
		Content: content,
		Mode:    mode,
		Model:   c.model,
	}, nil
}

func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    Temperature,
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling %s API: %w", c.provider, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		baseErr := fmt.Errorf("%s API error (status %d): %s", c.provider, resp.StatusCode, truncate(string(respBody), 500))
		if resp.StatusCode == http.StatusTooManyRequests {
			return "", parser.NewRateLimitError(c.provider, parser.RetryAfter(resp.Header, time.Now()), baseErr)
		}
		return "", baseErr
	}

	var parsed apiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty response from %s API: no choices", c.provider)
	}

	content := parsed.Choices[0].Message.Content
	if content == nil {
		return "", nil
	}
	return *content, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return strings.TrimSpace(s[:maxLen]) + "..."
}
