package parser

import (
	"fmt"
	"strings"
	"sync"

	"docorch/internal/config"
	"docorch/internal/port"
)

// ProviderFactory creates a CompletionClient from the LLM config.
type ProviderFactory func(cfg *config.LLMConfig) (port.CompletionClient, error)

var (
	providersMu sync.RWMutex
	providers   = map[string]ProviderFactory{}
)

// RegisterProvider registers a completion provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providersMu.Lock()
	defer providersMu.Unlock()
	providers[strings.ToLower(name)] = factory
}

// NewClient creates a CompletionClient for cfg.Provider using the registered factory.
func NewClient(cfg *config.LLMConfig) (port.CompletionClient, error) {
	providersMu.RLock()
	factory, ok := providers[strings.ToLower(cfg.Provider)]
	providersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
