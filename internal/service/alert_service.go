package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"docorch/internal/alert"
	"docorch/internal/domain"
	"docorch/internal/port"
	"docorch/internal/session"
)

// AlertService defines the alert action contract.
type AlertService interface {
	Send(ctx context.Context, sess *session.Session, recipient string) (*domain.AlertView, error)
}

type alertService struct {
	dispatcher port.AlertDispatcher
	logger     *zap.Logger
}

// NewAlertService creates a new AlertService implementation.
func NewAlertService(dispatcher port.AlertDispatcher, logger *zap.Logger) AlertService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &alertService{dispatcher: dispatcher, logger: logger}
}

// Send posts the session snapshot and recipient to the automation webhook and renders the
// reply. It requires a populated session.
func (s *alertService) Send(ctx context.Context, sess *session.Session, recipient string) (*domain.AlertView, error) {
	state, ok := sess.Get()
	if !ok {
		return nil, domain.ErrSessionEmpty
	}
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return nil, domain.ErrRecipientRequired
	}
	if err := sess.TryBegin(session.ActionAlert); err != nil {
		return nil, err
	}
	defer sess.End(session.ActionAlert)

	res, err := s.dispatcher.Dispatch(ctx, domain.AlertPayload{
		Question:       state.Question,
		RawText:        state.RawText,
		ExtractedJSON:  state.Result,
		RecipientEmail: recipient,
	})
	if err != nil {
		s.logger.Error("alertService.Send: dispatch failed",
			zap.String("session_id", sess.ID().String()),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrWebhookFailed, err)
	}

	view := alert.Render(res)
	if view.Skipped {
		s.logger.Warn("alertService.Send: " + view.Warning)
	} else {
		s.logger.Info("alertService.Send: alert dispatched",
			zap.String("session_id", sess.ID().String()),
			zap.Int("http_status", res.HTTPStatus),
			zap.String("status", view.Status))
	}
	return view, nil
}
