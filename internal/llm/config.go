package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures one provider.
type Config struct {
	Provider string // empty disables the LLM features

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig has every model set and no provider selected.
func DefaultConfig() Config {
	return Config{
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// LoadConfig reads OPCLASS_LLM_* variables. When OPCLASS_LLM_PROVIDER is
// unset the standard vendor key variables are probed with DiscoverConfig.
// The returned Config has an empty Provider when nothing is configured.
func LoadConfig() Config {
	cfg := DefaultConfig()

	setIf := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setIf(&cfg.Provider, "OPCLASS_LLM_PROVIDER")
	setIf(&cfg.Anthropic.APIKey, "OPCLASS_LLM_ANTHROPIC_API_KEY")
	setIf(&cfg.Anthropic.Model, "OPCLASS_LLM_ANTHROPIC_MODEL")
	setIf(&cfg.OpenAI.APIKey, "OPCLASS_LLM_OPENAI_API_KEY")
	setIf(&cfg.OpenAI.Model, "OPCLASS_LLM_OPENAI_MODEL")
	setIf(&cfg.OpenAI.BaseURL, "OPCLASS_LLM_OPENAI_BASE_URL")
	setIf(&cfg.Gemini.APIKey, "OPCLASS_LLM_GEMINI_API_KEY")
	setIf(&cfg.Gemini.Model, "OPCLASS_LLM_GEMINI_MODEL")
	setIf(&cfg.OpenRouter.APIKey, "OPCLASS_LLM_OPENROUTER_API_KEY")
	setIf(&cfg.OpenRouter.Model, "OPCLASS_LLM_OPENROUTER_MODEL")

	if v := os.Getenv("OPCLASS_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if cfg.Provider != "" {
		return cfg
	}
	if found, ok := DiscoverConfig(); ok {
		found.Timeout = cfg.Timeout
		return found
	}
	return cfg
}

// DiscoverConfig probes GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY
// and OPENROUTER_API_KEY in that order and selects the first provider with
// a key.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	switch {
	case os.Getenv("GEMINI_API_KEY") != "":
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	case os.Getenv("OPENAI_API_KEY") != "":
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	case os.Getenv("ANTHROPIC_API_KEY") != "":
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case os.Getenv("OPENROUTER_API_KEY") != "":
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")
	default:
		return Config{}, false
	}
	return cfg, true
}

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool {
	return c.Provider != ""
}

// Validate checks that the selected provider has a key.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case "":
		return ErrNotConfigured
	case ProviderMock:
		return nil
	case ProviderAnthropic:
		key = c.Anthropic.APIKey
	case ProviderOpenAI:
		key = c.OpenAI.APIKey
	case ProviderGemini:
		key = c.Gemini.APIKey
	case ProviderOpenRouter:
		key = c.OpenRouter.APIKey
	default:
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("an API key is required for the %s provider", c.Provider)
	}
	return nil
}
