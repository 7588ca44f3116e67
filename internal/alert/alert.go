// Package alert selects the alert dispatcher and renders webhook replies.
package alert

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"docorch/internal/alert/noop"
	"docorch/internal/alert/webhook"
	"docorch/internal/config"
	"docorch/internal/domain"
	"docorch/internal/metrics"
	"docorch/internal/port"
)

// NotConfiguredWarning is shown when the alert action runs without a webhook URL.
const NotConfiguredWarning = "webhook URL is not configured; skipping call"

// NewDispatcher returns the webhook dispatcher, or the no-op one when cfg.URL is empty.
func NewDispatcher(cfg *config.WebhookConfig, logger *zap.Logger, m *metrics.Metrics) port.AlertDispatcher {
	if cfg.URL == "" {
		return noop.NewDispatcher(logger)
	}
	return webhook.NewDispatcher(cfg.URL, cfg.Timeout(), logger, m)
}

// Render reads final_answer, email_body and status from a dispatch result,
// substituting placeholders for absent or null fields.
func Render(res *domain.DispatchResult) *domain.AlertView {
	if res == nil || !res.Configured {
		return &domain.AlertView{
			FinalAnswer: domain.PlaceholderFinalAnswer,
			EmailBody:   domain.PlaceholderEmailBody,
			Status:      domain.PlaceholderStatus,
			Skipped:     true,
			Warning:     NotConfiguredWarning,
		}
	}
	return &domain.AlertView{
		FinalAnswer: field(res.Response, "final_answer", domain.PlaceholderFinalAnswer),
		EmailBody:   field(res.Response, "email_body", domain.PlaceholderEmailBody),
		Status:      field(res.Response, "status", domain.PlaceholderStatus),
		Raw:         res.Response,
	}
}

func field(m map[string]any, key, placeholder string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return placeholder
	}
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
