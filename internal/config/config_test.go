package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "memory", cfg.Lock.Backend)
	assert.Equal(t, 10*time.Second, cfg.Lock.TTL)
	assert.Equal(t, 30*24*time.Hour, cfg.Auth.TokenLifetime)
	assert.Equal(t, "", cfg.Unlock.Policy)
	assert.Equal(t, "claude-haiku", cfg.LLM.Anthropic.Model)
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts)
	assert.Error(t, cfg.RequireServer(), "serving without a secret must fail")
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lessonloop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9000"
database:
  driver: postgres
  dsn: postgres://localhost/lessonloop
unlock:
  policy: static
  timezone: Europe/Berlin
llm:
  provider: openai
  openai:
    api_key: from-file
`), 0o600))

	t.Setenv("LESSONLOOP_SERVER_ADDR", ":9100")
	t.Setenv("LESSONLOOP_AUTH_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("LESSONLOOP_LOCK_TTL", "3s")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9100", cfg.Server.Addr, "env beats file")
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/lessonloop", cfg.Database.DSN)
	assert.Equal(t, "static", cfg.Unlock.Policy)
	assert.Equal(t, 3*time.Second, cfg.Lock.TTL)
	assert.Equal(t, "from-file", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.OpenAI.Model, "unset nested keys keep defaults")
	assert.NoError(t, cfg.RequireServer())

	loc, err := cfg.Unlock.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"LESSONLOOP_DATABASE_DRIVER": "oracle"}},
		{"postgres without dsn", map[string]string{"LESSONLOOP_DATABASE_DRIVER": "postgres"}},
		{"redis without addr", map[string]string{"LESSONLOOP_LOCK_BACKEND": "redis"}},
		{"short secret", map[string]string{"LESSONLOOP_AUTH_JWT_SECRET": "short"}},
		{"bad policy", map[string]string{"LESSONLOOP_UNLOCK_POLICY": "weekly"}},
		{"bad timezone", map[string]string{"LESSONLOOP_UNLOCK_TIMEZONE": "Mars/Olympus"}},
		{"bad log level", map[string]string{"LESSONLOOP_LOG_LEVEL": "loud"}},
		{"bad llm provider", map[string]string{"LESSONLOOP_LLM_PROVIDER": "eliza"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
