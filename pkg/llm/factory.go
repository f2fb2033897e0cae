package llm

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/doctorew/pocket-morties/pkg/metrics"
)

// Default models per provider when none is configured.
const (
	DefaultOpenAIModel    = "gpt-3.5-turbo"
	DefaultAnthropicModel = "claude-3-5-haiku-latest"
	DefaultMaxTokens      = 150
)

// NewCompleter builds the completer selected by cfg.Provider. It returns
// ErrNotConfigured when no API key is set and no endpoint override points
// at a keyless local server.
func NewCompleter(cfg *Config, m *metrics.Metrics, logger *zap.Logger) (Completer, error) {
	if cfg.APIKey == "" && cfg.Endpoint == "" {
		return nil, ErrNotConfigured
	}

	resolved := *cfg
	if resolved.MaxTokens <= 0 {
		resolved.MaxTokens = DefaultMaxTokens
	}

	switch strings.ToLower(resolved.Provider) {
	case "", ProviderOpenAI:
		if resolved.Model == "" {
			resolved.Model = DefaultOpenAIModel
		}
		return NewOpenAICompleter(&resolved, m, logger)
	case ProviderAnthropic:
		if resolved.Model == "" {
			resolved.Model = DefaultAnthropicModel
		}
		return NewAnthropicCompleter(&resolved, m, logger)
	default:
		return nil, fmt.Errorf("unknown completion provider %q", cfg.Provider)
	}
}
