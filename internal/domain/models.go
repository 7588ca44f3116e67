package domain

import (
	"time"

	"github.com/google/uuid"
)

// StructuredResult is the loosely-typed JSON value returned by the model.
// The expected shape is {key_points, risk_level, confidence} but it is never enforced,
// so it may hold any decoded JSON value (map[string]any, []any, string, float64, bool, nil).
type StructuredResult = any

// SessionState is the snapshot written by a successful extraction.
type SessionState struct {
	Filename  string           `json:"filename"`
	Question  string           `json:"question"`
	RawText   string           `json:"raw_text"`
	Result    StructuredResult `json:"extracted_json"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// SessionInfo describes a session for API responses.
type SessionInfo struct {
	ID        uuid.UUID     `json:"id"`
	Populated bool          `json:"populated"`
	CreatedAt time.Time     `json:"created_at"`
	State     *SessionState `json:"state,omitempty"`
}

// ExtractionResult is returned by the extract action.
type ExtractionResult struct {
	Result            StructuredResult `json:"extracted_json"`
	Kind              DocumentKind     `json:"kind"`
	TextChars         int              `json:"text_chars"`
	PromptTruncated   bool             `json:"prompt_truncated"`
	RetainedTruncated bool             `json:"retained_truncated"`
	ParseMode         ParseMode        `json:"parse_mode"`
	Model             string           `json:"model"`
	ShapeWarnings     []string         `json:"shape_warnings,omitempty"`
}

// AlertPayload is the JSON body posted to the automation webhook.
type AlertPayload struct {
	Question       string           `json:"question"`
	RawText        string           `json:"raw_text"`
	ExtractedJSON  StructuredResult `json:"extracted_json"`
	RecipientEmail string           `json:"recipient_email"`
}

// DispatchResult is what the alert dispatcher observed.
// Configured is false when no webhook URL is set and no call was made.
type DispatchResult struct {
	Configured bool           `json:"configured"`
	HTTPStatus int            `json:"http_status,omitempty"`
	Response   map[string]any `json:"response,omitempty"`
}

// AlertView is the rendered outcome of the alert action.
type AlertView struct {
	FinalAnswer string         `json:"final_answer"`
	EmailBody   string         `json:"email_body"`
	Status      string         `json:"status"`
	Skipped     bool           `json:"skipped"`
	Warning     string         `json:"warning,omitempty"`
	Raw         map[string]any `json:"raw,omitempty"`
}

// KeyPoint is one {key, value} entry of a structured result.
type KeyPoint struct {
	Key   string
	Value string
}
