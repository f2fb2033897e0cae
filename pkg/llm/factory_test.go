package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewCompleter(t *testing.T) {
	tests := []struct {
		name         string
		cfg          Config
		wantProvider string
		wantModel    string
	}{
		{
			name:         "openai default",
			cfg:          Config{APIKey: "sk-test"},
			wantProvider: ProviderOpenAI,
			wantModel:    DefaultOpenAIModel,
		},
		{
			name:         "openai explicit model",
			cfg:          Config{Provider: "openai", APIKey: "sk-test", Model: "gpt-4o-mini"},
			wantProvider: ProviderOpenAI,
			wantModel:    "gpt-4o-mini",
		},
		{
			name:         "anthropic default",
			cfg:          Config{Provider: "Anthropic", APIKey: "sk-ant-test"},
			wantProvider: ProviderAnthropic,
			wantModel:    DefaultAnthropicModel,
		},
		{
			name:         "keyless local endpoint",
			cfg:          Config{Endpoint: "http://localhost:11434/v1"},
			wantProvider: ProviderOpenAI,
			wantModel:    DefaultOpenAIModel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCompleter(&tt.cfg, nil, zap.NewNop())
			require.NoError(t, err)
			assert.Equal(t, tt.wantProvider, c.Provider())
			assert.Equal(t, tt.wantModel, c.GetModel())
		})
	}
}

func TestNewCompleter_NotConfigured(t *testing.T) {
	_, err := NewCompleter(&Config{Provider: ProviderOpenAI}, nil, zap.NewNop())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewCompleter_UnknownProvider(t *testing.T) {
	_, err := NewCompleter(&Config{Provider: "palm", APIKey: "x"}, nil, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "palm")
}

func TestNewCompleter_DefaultsMaxTokens(t *testing.T) {
	c, err := NewCompleter(&Config{APIKey: "sk-test"}, nil, zap.NewNop())
	require.NoError(t, err)

	openAI, ok := c.(*OpenAICompleter)
	require.True(t, ok)
	assert.Equal(t, DefaultMaxTokens, openAI.maxTokens)
}
