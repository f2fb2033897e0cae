package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/doctorew/pocket-morties/pkg/llm"
)

// DefaultConfigFile is read when present; otherwise configuration comes from
// the environment alone.
const DefaultConfigFile = "config.yaml"

// Config holds all configuration for the Pocket Morties API.
// Configuration can come from a YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (API keys) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"0.0.0.0"`
	Port     string `yaml:"port" env:"PORT" env-default:"4000"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:""`
	Version  string `yaml:"-"` // Set at load time, not from config

	GraphQL GraphQLConfig `yaml:"graphql"`
	Chat    ChatConfig    `yaml:"chat"`
	Dataset DatasetConfig `yaml:"dataset"`
	LLM     LLMConfig     `yaml:"llm"`
	CORS    CORSConfig    `yaml:"cors"`
	MCP     MCPConfig     `yaml:"mcp"`
}

// GraphQLConfig controls the GraphQL endpoint and the executor used by the
// chat passthrough.
type GraphQLConfig struct {
	Path       string `yaml:"path" env:"GRAPHQL_PATH" env-default:"/rickmorty"`
	Playground bool   `yaml:"playground" env:"GRAPHQL_PLAYGROUND" env-default:"true"`
	// Endpoint sends passthrough queries to a remote server instead of
	// executing them in process.
	Endpoint string `yaml:"endpoint" env:"GRAPHQL_ENDPOINT" env-default:""`
}

// ChatConfig holds the REST chat route.
type ChatConfig struct {
	Path string `yaml:"path" env:"API_CHAT_PATH" env-default:"/api/chat"`
}

// DatasetConfig locates the upstream dataset and its local copy.
type DatasetConfig struct {
	URL       string `yaml:"url" env:"DATASET_URL" env-default:"https://www.doctorew.com/shuttlebay/cleaned_pocket_morties.json"`
	// LocalPath backs the JSON analysis. When the file is absent the upstream
	// URL is used instead.
	LocalPath string `yaml:"local_path" env:"DATASET_LOCAL_PATH" env-default:"cleaned_pocket_morties.json"`
	// FetchTimeout bounds one upstream download. Zero means no timeout.
	FetchTimeout time.Duration `yaml:"fetch_timeout" env:"DATASET_FETCH_TIMEOUT" env-default:"0s"`
}

// LLMConfig selects the completion provider.
type LLMConfig struct {
	Provider  string `yaml:"provider" env:"LLM_PROVIDER" env-default:"openai"`
	BaseURL   string `yaml:"base_url" env:"LLM_BASE_URL" env-default:""`
	Model     string `yaml:"model" env:"LLM_MODEL" env-default:""`
	MaxTokens int    `yaml:"max_tokens" env:"LLM_MAX_TOKENS" env-default:"150"`

	OpenAIAPIKey    string `yaml:"-" env:"OPENAI_API_KEY"`    // Secret - not in YAML
	AnthropicAPIKey string `yaml:"-" env:"ANTHROPIC_API_KEY"` // Secret - not in YAML
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
}

// MCPConfig toggles the MCP tool server.
type MCPConfig struct {
	Enabled bool `yaml:"enabled" env:"MCP_ENABLED" env-default:"true"`
}

// Load reads configuration from config.yaml, when it exists, with environment
// variable overrides. The version parameter is injected at build time and set
// on the returned Config.
func Load(version string) (*Config, error) {
	return LoadFile(DefaultConfigFile, version)
}

// LoadFile is Load with an explicit config file path. A missing file is not
// an error.
func LoadFile(path, version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else if errors.Is(err, os.ErrNotExist) {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	} else {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	cfg.GraphQL.Endpoint = ResolveURLForDocker(cfg.GraphQL.Endpoint)
	cfg.LLM.BaseURL = ResolveURLForDocker(cfg.LLM.BaseURL)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks values cleanenv cannot check by type alone.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("port must be a number between 1 and 65535, got %q", c.Port)
	}

	for name, path := range map[string]string{
		"graphql path": c.GraphQL.Path,
		"chat path":    c.Chat.Path,
	} {
		if !strings.HasPrefix(path, "/") {
			return fmt.Errorf("%s must start with /, got %q", name, path)
		}
	}
	if c.GraphQL.Path == c.Chat.Path {
		return fmt.Errorf("graphql path and chat path must differ, both are %q", c.Chat.Path)
	}

	switch c.LLM.Provider {
	case llm.ProviderOpenAI, llm.ProviderAnthropic:
	default:
		return fmt.Errorf("unknown llm provider %q", c.LLM.Provider)
	}
	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm max tokens must be positive, got %d", c.LLM.MaxTokens)
	}

	if c.Dataset.URL == "" {
		return fmt.Errorf("dataset url is required")
	}
	if c.Dataset.FetchTimeout < 0 {
		return fmt.Errorf("dataset fetch timeout must not be negative, got %s", c.Dataset.FetchTimeout)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.BindAddr, c.Port)
}

// APIKey returns the key for the configured provider.
func (c *LLMConfig) APIKey() string {
	if c.Provider == llm.ProviderAnthropic {
		return c.AnthropicAPIKey
	}
	return c.OpenAIAPIKey
}

// CompleterConfig converts the settings into an llm.Config.
func (c *LLMConfig) CompleterConfig() *llm.Config {
	return &llm.Config{
		Provider:  c.Provider,
		Endpoint:  c.BaseURL,
		Model:     c.Model,
		APIKey:    c.APIKey(),
		MaxTokens: c.MaxTokens,
	}
}
