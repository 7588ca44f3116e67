package main

import (
	"fmt"
	"os"

	"docorch/internal/alert"
	"docorch/internal/cli"
	"docorch/internal/config"
	"docorch/internal/extractor"
	"docorch/internal/logger"
	"docorch/internal/parser"
	"docorch/internal/parser/openai"
	"docorch/internal/service"
)

func main() {
	cli.SetServiceFactory(buildServices)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildServices() (*cli.Services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	openai.Register(nil)
	client, err := parser.NewClient(&cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create llm client: %w", err)
	}

	return &cli.Services{
		Extract: service.NewExtractionService(extractor.New(zl), client, zl, nil),
		Alert:   service.NewAlertService(alert.NewDispatcher(&cfg.Webhook, zl, nil), zl),
	}, nil
}
