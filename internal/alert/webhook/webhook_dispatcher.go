package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"docorch/internal/domain"
	"docorch/internal/metrics"
	"docorch/internal/port"
)

type dispatcher struct {
	url     string
	client  *http.Client
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewDispatcher creates an AlertDispatcher that POSTs the payload as JSON to url.
func NewDispatcher(url string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) port.AlertDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &dispatcher{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
		metrics: m,
	}
}

// Dispatch posts the payload and decodes the reply. A body that is not a JSON object is
// reported as {"status": "HTTP <code>", "body": <text>}; only transport failures are errors.
func (d *dispatcher) Dispatch(ctx context.Context, payload domain.AlertPayload) (*domain.DispatchResult, error) {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := d.client.Do(req)
	if err != nil {
		d.metrics.ObserveWebhook("error", time.Since(start))
		return nil, fmt.Errorf("calling webhook: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		d.metrics.ObserveWebhook("error", time.Since(start))
		return nil, fmt.Errorf("reading webhook response: %w", err)
	}
	d.metrics.ObserveWebhook(fmt.Sprintf("%dxx", resp.StatusCode/100), time.Since(start))

	d.logger.Info("webhook.Dispatch: webhook responded",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(respBody)),
		zap.Duration("latency", time.Since(start)))

	return &domain.DispatchResult{
		Configured: true,
		HTTPStatus: resp.StatusCode,
		Response:   decodeResponse(resp.StatusCode, respBody),
	}, nil
}

func decodeResponse(status int, body []byte) map[string]any {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err == nil && obj != nil {
		return obj
	}
	return map[string]any{
		"status": fmt.Sprintf("HTTP %d", status),
		"body":   string(body),
	}
}
