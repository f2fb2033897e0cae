// Package llm streams text completions from an external model provider.
package llm

import (
	"context"
	"iter"
)

// Provider names accepted by NewCompleter.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Completer streams a completion for a system prompt and a user message.
// Use this interface for dependency injection to enable mocking in tests.
type Completer interface {
	// StreamCompletion yields text fragments in arrival order. A failure is
	// yielded once as the final element. Stopping the range loop early
	// cancels the upstream request.
	StreamCompletion(ctx context.Context, system, user string) iter.Seq2[string, error]

	// Provider returns the provider name, e.g. "openai".
	Provider() string

	// GetModel returns the configured model name.
	GetModel() string
}

var (
	_ Completer = (*OpenAICompleter)(nil)
	_ Completer = (*AnthropicCompleter)(nil)
	_ Completer = (*MockCompleter)(nil)
)
