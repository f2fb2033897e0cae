package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/doctorew/pocket-morties/pkg/logging"
	"github.com/doctorew/pocket-morties/pkg/metrics"
)

// Config holds configuration for creating a completer.
type Config struct {
	Provider  string // "openai" or "anthropic"
	Endpoint  string // Optional base URL override, e.g. "https://api.openai.com/v1"
	Model     string // Model name; a provider default is used when empty
	APIKey    string
	MaxTokens int
}

// OpenAICompleter streams chat completions from an OpenAI-compatible endpoint.
type OpenAICompleter struct {
	client    *openai.Client
	endpoint  string
	model     string
	maxTokens int
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewOpenAICompleter creates a completer for OpenAI-compatible endpoints.
func NewOpenAICompleter(cfg *Config, m *metrics.Metrics, logger *zap.Logger) (*OpenAICompleter, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = strings.TrimSuffix(cfg.Endpoint, "/")
	}
	clientConfig.HTTPClient = &http.Client{
		Transport: &requestIDTransport{base: http.DefaultTransport},
	}

	return &OpenAICompleter{
		client:    openai.NewClientWithConfig(clientConfig),
		endpoint:  clientConfig.BaseURL,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		metrics:   m,
		logger:    logger.Named("llm.openai"),
	}, nil
}

// StreamCompletion implements Completer.
func (c *OpenAICompleter) StreamCompletion(ctx context.Context, system, user string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		logger := logging.WithContext(ctx, c.logger)
		start := time.Now()

		logger.Debug("Completion request",
			zap.String("model", c.model),
			zap.Int("prompt_len", len(user)),
			zap.Int("max_tokens", c.maxTokens))

		stream, err := c.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: system},
				{Role: openai.ChatMessageRoleUser, Content: user},
			},
			MaxTokens: c.maxTokens,
			Stream:    true,
		})
		if err != nil {
			yield("", c.fail(logger, "Failed to create stream", start, err))
			return
		}
		defer stream.Close()

		for {
			response, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				yield("", c.fail(logger, "Stream receive error", start, err))
				return
			}

			if len(response.Choices) == 0 {
				continue
			}
			if content := response.Choices[0].Delta.Content; content != "" {
				if !yield(content, nil) {
					return
				}
			}
		}

		c.metrics.ObserveCompletion(ProviderOpenAI, nil)
		logger.Info("Completion finished", zap.Duration("elapsed", time.Since(start)))
	}
}

func (c *OpenAICompleter) fail(logger *zap.Logger, msg string, start time.Time, err error) error {
	c.metrics.ObserveCompletion(ProviderOpenAI, err)
	logger.Error(msg,
		zap.Duration("elapsed", time.Since(start)),
		zap.String("error", logging.SanitizeError(err)))

	llmErr := ClassifyError(err)
	llmErr.Provider = ProviderOpenAI
	llmErr.Model = c.model
	llmErr.Endpoint = c.endpoint
	return llmErr
}

// Provider implements Completer.
func (c *OpenAICompleter) Provider() string {
	return ProviderOpenAI
}

// GetModel returns the configured model name.
func (c *OpenAICompleter) GetModel() string {
	return c.model
}
