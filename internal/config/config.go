// Package config loads lessonloop settings from defaults, an optional YAML
// file and LESSONLOOP_* environment variables, in increasing precedence.
package config

import (
	"time"

	"github.com/abhisek/lessonloop/internal/llm"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Lock     LockConfig     `mapstructure:"lock"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Unlock   UnlockConfig   `mapstructure:"unlock"`
	LLM      llm.Config     `mapstructure:"llm"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr" validate:"required"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig selects the store. An empty SQLite DSN resolves to the
// per-user data directory.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=sqlite postgres"`
	DSN    string `mapstructure:"dsn" validate:"required_if=Driver postgres"`
}

// LockConfig selects how per-learner operations are serialized. The redis
// backend is required when more than one server shares a database.
type LockConfig struct {
	Backend    string        `mapstructure:"backend" validate:"oneof=memory redis"`
	RedisAddr  string        `mapstructure:"redis_addr" validate:"required_if=Backend redis"`
	RedisDB    int           `mapstructure:"redis_db" validate:"gte=0"`
	TTL        time.Duration `mapstructure:"ttl" validate:"gt=0"`
	RetryDelay time.Duration `mapstructure:"retry_delay" validate:"gt=0"`
}

type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret" validate:"omitempty,min=32"`
	TokenLifetime time.Duration `mapstructure:"token_lifetime" validate:"gt=0"`
}

type LogConfig struct {
	Mode  string `mapstructure:"mode" validate:"oneof=dev prod"`
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

// CatalogConfig points at a YAML catalog. Empty uses the built-in one.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// UnlockConfig overrides the catalog's unlock policy and sets the time
// zone used for midnight boundaries.
type UnlockConfig struct {
	Policy   string `mapstructure:"policy" validate:"omitempty,oneof=static chained"`
	Timezone string `mapstructure:"timezone" validate:"required"`
}

// Location resolves the configured time zone.
func (u UnlockConfig) Location() (*time.Location, error) {
	return time.LoadLocation(u.Timezone)
}
