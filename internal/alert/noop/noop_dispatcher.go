package noop

import (
	"context"

	"go.uber.org/zap"

	"docorch/internal/domain"
	"docorch/internal/port"
)

type noopDispatcher struct {
	logger *zap.Logger
}

// NewDispatcher creates an AlertDispatcher used when no webhook URL is configured.
// It makes no network call and reports Configured=false.
func NewDispatcher(logger *zap.Logger) port.AlertDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &noopDispatcher{logger: logger}
}

func (d *noopDispatcher) Dispatch(_ context.Context, payload domain.AlertPayload) (*domain.DispatchResult, error) {
	d.logger.Warn("[NOOP ALERT] webhook URL is not set; skipping call",
		zap.String("recipient", payload.RecipientEmail))
	return &domain.DispatchResult{Configured: false}, nil
}
