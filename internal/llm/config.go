package llm

import (
	"errors"
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

// Providers lists every provider name in display order.
var Providers = []string{ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter, ProviderMock}

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// Config selects and configures the content-authoring model.
type Config struct {
	Provider string `mapstructure:"provider" yaml:"provider" validate:"omitempty,oneof=anthropic openai gemini openrouter mock"`

	Anthropic  ProviderConfig `mapstructure:"anthropic" yaml:"anthropic"`
	OpenAI     ProviderConfig `mapstructure:"openai" yaml:"openai"`
	Gemini     ProviderConfig `mapstructure:"gemini" yaml:"gemini"`
	OpenRouter ProviderConfig `mapstructure:"openrouter" yaml:"openrouter"`

	Retry RetryConfig `mapstructure:"retry" yaml:"retry"`

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// ProviderConfig holds credentials and model choice for one provider.
// BaseURL is only honoured by OpenAI-compatible providers.
type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key" yaml:"api_key"`
	Model   string `mapstructure:"model" yaml:"model"`
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts" yaml:"max_attempts" validate:"gte=1"`
	InitialWait time.Duration `mapstructure:"initial_wait" yaml:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait" yaml:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier" yaml:"multiplier" validate:"gte=1"`
}

// DefaultConfig returns the built-in defaults. No provider is selected.
func DefaultConfig() Config {
	return Config{
		Anthropic:  ProviderConfig{Model: "claude-haiku"},
		OpenAI:     ProviderConfig{Model: "gpt-4o-mini"},
		Gemini:     ProviderConfig{Model: "gemini-flash"},
		OpenRouter: ProviderConfig{Model: "google/gemini-2.0-flash-exp", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 60 * time.Second,
	}
}

// Discover fills in a provider from the vendors' standard API key
// variables when none is configured. Gemini is tried first, then OpenAI,
// Anthropic and OpenRouter. It reports whether a provider is now set.
func (c *Config) Discover() bool {
	if c.Provider != "" {
		return true
	}
	probes := []struct {
		env      string
		provider string
		target   *ProviderConfig
	}{
		{"GEMINI_API_KEY", ProviderGemini, &c.Gemini},
		{"OPENAI_API_KEY", ProviderOpenAI, &c.OpenAI},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &c.Anthropic},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &c.OpenRouter},
	}
	for _, p := range probes {
		if k := os.Getenv(p.env); k != "" {
			c.Provider = p.provider
			if p.target.APIKey == "" {
				p.target.APIKey = k
			}
			return true
		}
	}
	return false
}

// Selected returns the settings of the chosen provider.
func (c Config) Selected() (ProviderConfig, error) {
	switch c.Provider {
	case ProviderAnthropic:
		return c.Anthropic, nil
	case ProviderOpenAI:
		return c.OpenAI, nil
	case ProviderGemini:
		return c.Gemini, nil
	case ProviderOpenRouter:
		pc := c.OpenRouter
		if pc.BaseURL == "" {
			pc.BaseURL = defaultOpenRouterBaseURL
		}
		return pc, nil
	case ProviderMock:
		return ProviderConfig{Model: "mock"}, nil
	case "":
		return ProviderConfig{}, errors.New("no LLM provider configured")
	}
	return ProviderConfig{}, fmt.Errorf("unknown LLM provider %q", c.Provider)
}

// Validate checks that the chosen provider has an API key.
func (c Config) Validate() error {
	pc, err := c.Selected()
	if err != nil {
		return err
	}
	if c.Provider != ProviderMock && pc.APIKey == "" {
		return fmt.Errorf("llm.%s.api_key is required for the %s provider", c.Provider, c.Provider)
	}
	return nil
}
