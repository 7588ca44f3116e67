package parser_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"docorch/internal/parser"
)

func TestRateLimitError_WrapsAndUnwraps(t *testing.T) {
	underlying := errors.New("status 429")
	rlErr := parser.NewRateLimitError("groq", 30*time.Second, underlying)

	wrapped := fmt.Errorf("completion failed: %w", rlErr)

	var target *parser.RateLimitError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "groq", target.Provider)
	assert.Equal(t, 30*time.Second, target.RetryAfter)
	assert.ErrorIs(t, wrapped, underlying)
	assert.Contains(t, rlErr.Error(), "retry in 30s")
}

func TestNewRateLimitError_DefaultsWait(t *testing.T) {
	rlErr := parser.NewRateLimitError("openai", 0, errors.New("429"))

	assert.Equal(t, parser.DefaultRetryAfter, rlErr.RetryAfter)
}

func TestRetryAfter(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"missing", "", 0},
		{"seconds", "30", 30 * time.Second},
		{"padded seconds", " 12 ", 12 * time.Second},
		{"negative", "-5", 0},
		{"garbage", "soon", 0},
		{"http date", now.Add(90 * time.Second).Format(http.TimeFormat), 90 * time.Second},
		{"date in the past", now.Add(-time.Hour).Format(http.TimeFormat), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			if tt.value != "" {
				h.Set("Retry-After", tt.value)
			}
			assert.Equal(t, tt.want, parser.RetryAfter(h, now))
		})
	}
}
