package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/abhisek/lessonloop/internal/llm"
)

// EnvPrefix prefixes every environment override, e.g.
// LESSONLOOP_DATABASE_DRIVER for database.driver.
const EnvPrefix = "LESSONLOOP"

var validate = validator.New()

// Load reads configuration. path may be empty, in which case only defaults
// and the environment are used.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct constraints and the time zone.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := c.Unlock.Location(); err != nil {
		return fmt.Errorf("invalid configuration: unlock.timezone: %w", err)
	}
	return nil
}

// RequireServer checks the settings only the HTTP server needs.
func (c *Config) RequireServer() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret (LESSONLOOP_AUTH_JWT_SECRET) is required to serve the API")
	}
	return nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		// Defaults are static and always valid.
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "")

	v.SetDefault("lock.backend", "memory")
	v.SetDefault("lock.redis_addr", "")
	v.SetDefault("lock.redis_db", 0)
	v.SetDefault("lock.ttl", 10*time.Second)
	v.SetDefault("lock.retry_delay", 25*time.Millisecond)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_lifetime", 30*24*time.Hour)

	v.SetDefault("log.mode", "dev")
	v.SetDefault("log.level", "info")

	v.SetDefault("catalog.path", "")

	v.SetDefault("unlock.policy", "")
	v.SetDefault("unlock.timezone", "Local")

	l := llm.DefaultConfig()
	v.SetDefault("llm.provider", l.Provider)
	v.SetDefault("llm.timeout", l.Timeout)
	v.SetDefault("llm.retry.max_attempts", l.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", l.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", l.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", l.Retry.Multiplier)
	for name, pc := range map[string]llm.ProviderConfig{
		"anthropic":  l.Anthropic,
		"openai":     l.OpenAI,
		"gemini":     l.Gemini,
		"openrouter": l.OpenRouter,
	} {
		v.SetDefault("llm."+name+".api_key", pc.APIKey)
		v.SetDefault("llm."+name+".model", pc.Model)
		v.SetDefault("llm."+name+".base_url", pc.BaseURL)
	}
}
