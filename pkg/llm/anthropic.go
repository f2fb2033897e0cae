package llm

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"time"

	"github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"

	"github.com/doctorew/pocket-morties/pkg/logging"
	"github.com/doctorew/pocket-morties/pkg/metrics"
)

// AnthropicCompleter streams completions from the Anthropic Messages API.
type AnthropicCompleter struct {
	client    *anthropic.Client
	endpoint  string
	model     string
	maxTokens int
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewAnthropicCompleter creates a completer for the Anthropic Messages API.
func NewAnthropicCompleter(cfg *Config, m *metrics.Metrics, logger *zap.Logger) (*AnthropicCompleter, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	opts := []anthropic.ClientOption{
		anthropic.WithHTTPClient(&http.Client{
			Transport: &requestIDTransport{base: http.DefaultTransport},
		}),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.Endpoint))
	}

	return &AnthropicCompleter{
		client:    anthropic.NewClient(cfg.APIKey, opts...),
		endpoint:  cfg.Endpoint,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		metrics:   m,
		logger:    logger.Named("llm.anthropic"),
	}, nil
}

// StreamCompletion implements Completer. Deltas are delivered from the
// client's event callback on the calling goroutine.
func (c *AnthropicCompleter) StreamCompletion(ctx context.Context, system, user string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		logger := logging.WithContext(ctx, c.logger)
		start := time.Now()
		stopped := false

		logger.Debug("Completion request",
			zap.String("model", c.model),
			zap.Int("prompt_len", len(user)),
			zap.Int("max_tokens", c.maxTokens))

		_, err := c.client.CreateMessagesStream(ctx, anthropic.MessagesStreamRequest{
			MessagesRequest: anthropic.MessagesRequest{
				Model:     anthropic.Model(c.model),
				System:    system,
				Messages:  []anthropic.Message{anthropic.NewUserTextMessage(user)},
				MaxTokens: c.maxTokens,
			},
			OnContentBlockDelta: func(data anthropic.MessagesEventContentBlockDeltaData) {
				if stopped || data.Delta.Text == nil || *data.Delta.Text == "" {
					return
				}
				if !yield(*data.Delta.Text, nil) {
					stopped = true
					cancel()
				}
			},
		})
		if stopped {
			return
		}
		if err != nil {
			c.metrics.ObserveCompletion(ProviderAnthropic, err)
			logger.Error("Completion stream failed",
				zap.Duration("elapsed", time.Since(start)),
				zap.String("error", logging.SanitizeError(err)))

			llmErr := ClassifyError(err)
			llmErr.Provider = ProviderAnthropic
			llmErr.Model = c.model
			llmErr.Endpoint = c.endpoint
			yield("", llmErr)
			return
		}

		c.metrics.ObserveCompletion(ProviderAnthropic, nil)
		logger.Info("Completion finished", zap.Duration("elapsed", time.Since(start)))
	}
}

// Provider implements Completer.
func (c *AnthropicCompleter) Provider() string {
	return ProviderAnthropic
}

// GetModel returns the configured model name.
func (c *AnthropicCompleter) GetModel() string {
	return c.model
}
