package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var envKeys = []string{
	"BIND_ADDR", "PORT", "ENVIRONMENT", "LOG_LEVEL",
	"GRAPHQL_PATH", "GRAPHQL_PLAYGROUND", "GRAPHQL_ENDPOINT", "API_CHAT_PATH",
	"DATASET_URL", "DATASET_LOCAL_PATH", "DATASET_FETCH_TIMEOUT",
	"LLM_PROVIDER", "LLM_BASE_URL", "LLM_MODEL", "LLM_MAX_TOKENS",
	"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "CORS_ALLOWED_ORIGINS", "MCP_ENABLED",
}

// clearEnv unsets every config variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func writeYAML(t *testing.T, doc map[string]any) string {
	t.Helper()
	data, err := yaml.Marshal(doc)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadFile_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), "test-version")
	require.NoError(t, err)

	assert.Equal(t, "test-version", cfg.Version)
	assert.Equal(t, "0.0.0.0", cfg.BindAddr)
	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "0.0.0.0:4000", cfg.Addr())
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "/rickmorty", cfg.GraphQL.Path)
	assert.True(t, cfg.GraphQL.Playground)
	assert.Empty(t, cfg.GraphQL.Endpoint)
	assert.Equal(t, "/api/chat", cfg.Chat.Path)
	assert.Equal(t, "https://www.doctorew.com/shuttlebay/cleaned_pocket_morties.json", cfg.Dataset.URL)
	assert.Equal(t, "cleaned_pocket_morties.json", cfg.Dataset.LocalPath)
	assert.Equal(t, time.Duration(0), cfg.Dataset.FetchTimeout)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 150, cfg.LLM.MaxTokens)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.MCP.Enabled)
}

func TestLoadFile_EnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	path := writeYAML(t, map[string]any{
		"port": "5000",
		"env":  "staging",
		"graphql": map[string]any{
			"path":       "/graphql",
			"playground": false,
		},
		"dataset": map[string]any{
			"url":           "https://data.example.com/morties.json",
			"fetch_timeout": "3s",
		},
		"llm": map[string]any{
			"provider": "anthropic",
			"model":    "claude-test",
		},
	})

	t.Setenv("PORT", "6000")
	t.Setenv("LLM_MAX_TOKENS", "300")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg, err := LoadFile(path, "v1")
	require.NoError(t, err)

	// env wins
	assert.Equal(t, "6000", cfg.Port)
	assert.Equal(t, 300, cfg.LLM.MaxTokens)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)

	// yaml used where env is unset
	assert.Equal(t, "staging", cfg.Env)
	assert.Equal(t, "/graphql", cfg.GraphQL.Path)
	assert.False(t, cfg.GraphQL.Playground)
	assert.Equal(t, "https://data.example.com/morties.json", cfg.Dataset.URL)
	assert.Equal(t, 3*time.Second, cfg.Dataset.FetchTimeout)

	llmCfg := cfg.LLM.CompleterConfig()
	assert.Equal(t, "anthropic", llmCfg.Provider)
	assert.Equal(t, "claude-test", llmCfg.Model)
	assert.Equal(t, "sk-ant-test", llmCfg.APIKey)
	assert.Equal(t, 300, llmCfg.MaxTokens)
}

func TestLoadFile_SecretsIgnoredInYAML(t *testing.T) {
	clearEnv(t)
	path := writeYAML(t, map[string]any{
		"llm": map[string]any{
			"OpenAIAPIKey":   "from-yaml",
			"openai_api_key": "from-yaml",
		},
	})

	cfg, err := LoadFile(path, "v1")
	require.NoError(t, err)
	assert.Empty(t, cfg.LLM.OpenAIAPIKey)
	assert.Empty(t, cfg.LLM.APIKey())
}

func TestLoadFile_ProviderIsNormalised(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", " OpenAI ")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), "v1")
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey())
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"port not a number", map[string]string{"PORT": "http"}, "port must be a number"},
		{"port out of range", map[string]string{"PORT": "70000"}, "port must be a number"},
		{"relative graphql path", map[string]string{"GRAPHQL_PATH": "rickmorty"}, "graphql path must start with /"},
		{"same paths", map[string]string{"GRAPHQL_PATH": "/api", "API_CHAT_PATH": "/api"}, "must differ"},
		{"unknown provider", map[string]string{"LLM_PROVIDER": "mistral"}, `unknown llm provider "mistral"`},
		{"zero max tokens", map[string]string{"LLM_MAX_TOKENS": "0"}, "max tokens must be positive"},
		{"negative timeout", map[string]string{"DATASET_FETCH_TIMEOUT": "-1s"}, "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), "v1")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFile_MalformedDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATASET_FETCH_TIMEOUT", "soon")

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), "v1")
	require.Error(t, err)
}

func TestLoad_ReadsWorkingDirectory(t *testing.T) {
	clearEnv(t)
	path := writeYAML(t, map[string]any{"port": "4100"})
	t.Chdir(filepath.Dir(path))

	cfg, err := Load("v1")
	require.NoError(t, err)
	assert.Equal(t, "4100", cfg.Port)
}
