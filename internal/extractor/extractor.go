// Package extractor turns uploaded document bytes into plain text.
package extractor

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"docorch/internal/domain"
	"docorch/internal/metrics"
)

// PDFMethod extracts the text of a whole PDF, one page per line group.
type PDFMethod func(data []byte) (string, error)

// Extractor implements port.TextExtractor. PDFs go through a layout-aware method first
// and fall back to content-stream text when it fails.
type Extractor struct {
	layout   PDFMethod
	fallback PDFMethod
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// Option customizes an Extractor.
type Option func(*Extractor)

// WithPDFMethods replaces the primary and fallback PDF methods.
func WithPDFMethods(layout, fallback PDFMethod) Option {
	return func(e *Extractor) {
		e.layout = layout
		e.fallback = fallback
	}
}

// WithMetrics records fallbacks on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Extractor) { e.metrics = m }
}

// New creates an Extractor. A nil logger is replaced with a no-op logger.
func New(logger *zap.Logger, opts ...Option) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Extractor{
		layout:   ExtractLayoutText,
		fallback: ExtractContentStreamText,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the text of data. Only a PDF on which both methods fail yields an error.
func (e *Extractor) Extract(data []byte, kind domain.DocumentKind) (string, error) {
	if kind != domain.DocumentKindPDF {
		return DecodeText(data), nil
	}

	text, layoutErr := e.layout(data)
	if layoutErr == nil {
		return text, nil
	}

	e.logger.Warn("extractor.Extract: layout extraction failed, falling back to content streams",
		zap.Error(layoutErr), zap.Int("bytes", len(data)))
	e.metrics.IncPDFFallback()

	text, fallbackErr := e.fallback(data)
	if fallbackErr != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrExtractionFailed, errors.Join(
			fmt.Errorf("layout: %w", layoutErr),
			fmt.Errorf("content streams: %w", fallbackErr),
		))
	}
	return text, nil
}
