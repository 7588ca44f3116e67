package port

import (
	"context"

	"docorch/internal/domain"
)

// AlertDispatcher forwards an extraction to the alert automation webhook.
type AlertDispatcher interface {
	Dispatch(ctx context.Context, payload domain.AlertPayload) (*domain.DispatchResult, error)
}
