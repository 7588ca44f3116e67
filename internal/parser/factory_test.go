package parser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"docorch/internal/config"
	"docorch/internal/parser"
	"docorch/internal/port"
)

func TestFactory_RegisterAndCreate(t *testing.T) {
	parser.RegisterProvider("Test-Provider", func(cfg *config.LLMConfig) (port.CompletionClient, error) {
		return &stubClient{model: cfg.Model}, nil
	})

	c, err := parser.NewClient(&config.LLMConfig{
		Provider: "test-provider",
		Model:    "test-model",
	})

	assert.NoError(t, err)
	if assert.NotNil(t, c) {
		out, err := c.CompleteJSON(context.Background(), "s", "u")
		assert.NoError(t, err)
		assert.Equal(t, "test-model", out.Model)
	}
}

func TestFactory_UnknownProvider(t *testing.T) {
	c, err := parser.NewClient(&config.LLMConfig{
		Provider: "nonexistent-provider-xyz",
	})

	assert.Nil(t, c)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown llm provider")
}

// stubClient is a minimal CompletionClient for testing the factory.
type stubClient struct {
	model string
}

func (s *stubClient) CompleteJSON(_ context.Context, _, _ string) (*port.Completion, error) {
	return &port.Completion{Model: s.model}, nil
}
