package domain

import "errors"

var (
	ErrMissingAPIKey     = errors.New("llm api key is not configured")
	ErrQuestionRequired  = errors.New("question is required")
	ErrEmptyDocument     = errors.New("document is empty")
	ErrFileTooLarge      = errors.New("file exceeds maximum allowed size")
	ErrExtractionFailed  = errors.New("extraction failed")
	ErrLLMUnavailable    = errors.New("llm request failed")
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionEmpty      = errors.New("session has no extraction yet")
	ErrSessionBusy       = errors.New("session action already in progress")
	ErrRecipientRequired = errors.New("recipient email is required")
	ErrWebhookFailed     = errors.New("webhook call failed")
	ErrUnsupportedExport = errors.New("unsupported export format")
)
