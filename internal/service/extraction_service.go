package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"docorch/internal/domain"
	"docorch/internal/metrics"
	"docorch/internal/parser"
	"docorch/internal/port"
	"docorch/internal/session"
)

// ExtractInput is the DTO for one extract action.
type ExtractInput struct {
	Filename string
	Data     []byte
	Question string
}

// ExtractionService defines the extract action contract.
type ExtractionService interface {
	Extract(ctx context.Context, sess *session.Session, input ExtractInput) (*domain.ExtractionResult, error)
}

type extractionService struct {
	extractor port.TextExtractor
	client    port.CompletionClient
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// NewExtractionService creates a new ExtractionService implementation.
func NewExtractionService(
	extractor port.TextExtractor,
	client port.CompletionClient,
	logger *zap.Logger,
	m *metrics.Metrics,
) ExtractionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &extractionService{
		extractor: extractor,
		client:    client,
		logger:    logger,
		metrics:   m,
	}
}

// Extract runs text extraction, prompt building and the model call, then replaces the
// session snapshot. The session is left untouched on any error.
func (s *extractionService) Extract(ctx context.Context, sess *session.Session, input ExtractInput) (*domain.ExtractionResult, error) {
	if strings.TrimSpace(input.Question) == "" {
		return nil, domain.ErrQuestionRequired
	}
	if len(input.Data) == 0 {
		return nil, domain.ErrEmptyDocument
	}
	if err := sess.TryBegin(session.ActionExtract); err != nil {
		return nil, err
	}
	defer sess.End(session.ActionExtract)

	kind := domain.KindFromFilename(input.Filename)
	start := time.Now()

	text, err := s.extractor.Extract(input.Data, kind)
	if err != nil {
		s.metrics.ObserveExtraction(string(kind), "extract_error")
		s.logger.Warn("extractionService.Extract: text extraction failed",
			zap.String("session_id", sess.ID().String()),
			zap.String("filename", input.Filename),
			zap.Error(err))
		return nil, fmt.Errorf("extracting %s: %w", input.Filename, err)
	}

	system, user := parser.BuildPrompt(input.Question, text)
	_, promptTruncated := parser.TruncateChars(text, domain.PromptTextLimit)

	completion, err := s.client.CompleteJSON(ctx, system, user)
	if err != nil {
		s.metrics.ObserveExtraction(string(kind), "llm_error")
		s.logger.Error("extractionService.Extract: completion failed",
			zap.String("session_id", sess.ID().String()),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}

	retained, retainedTruncated := parser.TruncateChars(text, domain.RetainedTextLimit)
	sess.Set(input.Filename, input.Question, retained, completion.Result)

	warnings := parser.CheckShape(completion.Result)
	s.metrics.ObserveExtraction(string(kind), "ok")
	s.logger.Info("extractionService.Extract: extraction stored",
		zap.String("session_id", sess.ID().String()),
		zap.String("kind", string(kind)),
		zap.Int("text_chars", len([]rune(text))),
		zap.String("parse_mode", string(completion.Mode)),
		zap.Int("shape_warnings", len(warnings)),
		zap.Duration("latency", time.Since(start)))

	return &domain.ExtractionResult{
		Result:            completion.Result,
		Kind:              kind,
		TextChars:         len([]rune(text)),
		PromptTruncated:   promptTruncated,
		RetainedTruncated: retainedTruncated,
		ParseMode:         completion.Mode,
		Model:             completion.Model,
		ShapeWarnings:     warnings,
	}, nil
}
