package handler

import (
	"time"

	"github.com/google/uuid"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// AlertRequest represents the send alert request body.
type AlertRequest struct {
	RecipientEmail string `json:"recipient_email" binding:"required" example:"ops@example.com"`
}

// --- Response Types ---

// CreateSessionResponse represents a newly created session.
type CreateSessionResponse struct {
	ID uuid.UUID `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// KeyPointDoc documents one entry of key_points.
type KeyPointDoc struct {
	Key   string `json:"key" example:"skills"`
	Value string `json:"value" example:"Python, Go"`
}

// ExtractedJSONDoc documents the expected shape of extracted_json. The model output is
// not enforced; a result that could not be decoded is returned as {"raw": "..."}.
type ExtractedJSONDoc struct {
	KeyPoints  []KeyPointDoc `json:"key_points"`
	RiskLevel  string        `json:"risk_level" example:"Low" enums:"Low,Medium,High"`
	Confidence float64       `json:"confidence" example:"0.85"`
}

// ExtractionResultDoc documents the extract action response.
type ExtractionResultDoc struct {
	ExtractedJSON     ExtractedJSONDoc `json:"extracted_json"`
	Kind              string           `json:"kind" example:"pdf" enums:"pdf,text"`
	TextChars         int              `json:"text_chars" example:"1843"`
	PromptTruncated   bool             `json:"prompt_truncated" example:"false"`
	RetainedTruncated bool             `json:"retained_truncated" example:"false"`
	ParseMode         string           `json:"parse_mode" example:"strict" enums:"strict,span,raw"`
	Model             string           `json:"model" example:"llama-3.1-8b-instant"`
	ShapeWarnings     []string         `json:"shape_warnings,omitempty"`
}

// SessionStateDoc documents a populated session snapshot.
type SessionStateDoc struct {
	Filename      string           `json:"filename" example:"cv.pdf"`
	Question      string           `json:"question" example:"List the skills mentioned."`
	RawText       string           `json:"raw_text" example:"Alice has Python and Go skills."`
	ExtractedJSON ExtractedJSONDoc `json:"extracted_json"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// SessionInfoDoc documents the session lookup response.
type SessionInfoDoc struct {
	ID        uuid.UUID        `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Populated bool             `json:"populated" example:"true"`
	CreatedAt time.Time        `json:"created_at"`
	State     *SessionStateDoc `json:"state,omitempty"`
}

// AlertViewDoc documents the alert action response.
type AlertViewDoc struct {
	FinalAnswer string                 `json:"final_answer" example:"Alice lists Python and Go."`
	EmailBody   string                 `json:"email_body" example:"_No email body returned_"`
	Status      string                 `json:"status" example:"queued"`
	Skipped     bool                   `json:"skipped" example:"false"`
	Warning     string                 `json:"warning,omitempty"`
	Raw         map[string]interface{} `json:"raw,omitempty"`
}

// --- Generic Response Wrappers ---

// Response is the generic success envelope.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponseBody is the generic error envelope.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
