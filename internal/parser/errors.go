package parser

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultRetryAfter is reported when a 429 carries no usable Retry-After header.
const DefaultRetryAfter = time.Minute

// RateLimitError is returned when the completion provider answers 429.
// Nothing retries on it; RetryAfter is passed through to the caller as a hint.
type RateLimitError struct {
	Provider   string
	RetryAfter time.Duration
	Err        error
}

// NewRateLimitError builds a RateLimitError. A non-positive wait becomes DefaultRetryAfter.
func NewRateLimitError(provider string, retryAfter time.Duration, err error) *RateLimitError {
	if retryAfter <= 0 {
		retryAfter = DefaultRetryAfter
	}
	return &RateLimitError{Provider: provider, RetryAfter: retryAfter, Err: err}
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited, retry in %s: %v", e.Provider, e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// RetryAfter reads the Retry-After header as delay-seconds or an HTTP date relative to now.
// It returns 0 when the header is missing, malformed or already in the past.
func RetryAfter(h http.Header, now time.Time) time.Duration {
	val := strings.TrimSpace(h.Get("Retry-After"))
	if val == "" {
		return 0
	}
	if secs, err := strconv.Atoi(val); err == nil {
		if secs <= 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(val); err == nil && at.After(now) {
		return at.Sub(now).Round(time.Second)
	}
	return 0
}
