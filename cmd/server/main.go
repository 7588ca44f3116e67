package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"docorch/internal/alert"
	"docorch/internal/config"
	"docorch/internal/extractor"
	"docorch/internal/handler"
	"docorch/internal/logger"
	"docorch/internal/metrics"
	"docorch/internal/parser"
	"docorch/internal/parser/openai"
	"docorch/internal/router"
	"docorch/internal/service"
	"docorch/internal/session"
)

// @title docorch API
// @version 1.0
// @description Ask a question about a PDF or text document, get structured JSON back, and forward it to an alert automation webhook.
// @BasePath /api/v1
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()
	zap.ReplaceGlobals(zl)

	m := metrics.New()

	// Initialize LLM client
	openai.Register(m)
	client, err := parser.NewClient(&cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to create llm client: %w", err)
	}

	ext := extractor.New(zl, extractor.WithMetrics(m))
	dispatcher := alert.NewDispatcher(&cfg.Webhook, zl, m)
	if cfg.Webhook.URL == "" {
		zl.Warn("server: " + alert.NotConfiguredWarning)
	}
	store := session.NewStore(cfg.Session.IdleTTL)

	// Initialize services
	extractSvc := service.NewExtractionService(ext, client, zl, m)
	alertSvc := service.NewAlertService(dispatcher, zl)

	// Initialize handlers
	sessionH := handler.NewSessionHandler(store, extractSvc, alertSvc, cfg.Upload.MaxBytes())
	healthH := handler.NewHealthHandler(nil)

	// Setup router
	r := router.Setup(cfg, zl, m, sessionH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server starting",
			zap.String("addr", cfg.Server.Port),
			zap.String("environment", cfg.Server.Environment),
			zap.String("llm_provider", cfg.LLM.Provider))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		zl.Info("server shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
