package port

import (
	"context"

	"docorch/internal/domain"
)

// Completion is a decoded chat-completion response.
type Completion struct {
	Result  domain.StructuredResult
	Content string
	Mode    domain.ParseMode
	Model   string
}

// CompletionClient sends a system/user instruction pair to a hosted model in
// JSON-object mode and decodes the reply. Transport failures are returned as errors;
// undecodable content is not an error.
type CompletionClient interface {
	CompleteJSON(ctx context.Context, system, user string) (*Completion, error)
}
