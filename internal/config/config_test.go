package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docorch/internal/config"
	"docorch/internal/domain"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DOCORCH_CONFIG_FILE", "DOCORCH_SERVER_PORT", "DOCORCH_LLM_API_KEY",
		"DOCORCH_LLM_PROVIDER", "DOCORCH_WEBHOOK_URL", "DOCORCH_CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 120*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "groq", cfg.LLM.Provider)
	assert.Empty(t, cfg.LLM.APIKey)
	assert.Equal(t, 0, cfg.LLM.TimeoutSecs)
	assert.Empty(t, cfg.Webhook.URL)
	assert.Equal(t, 60*time.Second, cfg.Webhook.Timeout())
	assert.Equal(t, int64(25*1024*1024), cfg.Upload.MaxBytes())
	assert.Equal(t, 24*time.Hour, cfg.Session.IdleTTL)
	assert.Equal(t, float64(0), cfg.RateLimit.RPS)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:8501")
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOCORCH_LLM_API_KEY", "gsk-test")
	t.Setenv("DOCORCH_LLM_PROVIDER", "openai")
	t.Setenv("DOCORCH_WEBHOOK_URL", "  https://n8n.example.com/webhook/alert  ")
	t.Setenv("DOCORCH_CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "gsk-test", cfg.LLM.APIKey)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "https://n8n.example.com/webhook/alert", cfg.Webhook.URL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_PortFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Port)

	t.Setenv("DOCORCH_SERVER_PORT", ":7000")
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Port)
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "docorch.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[llm]
api_key = "from-file"
model = "llama-3.3-70b-versatile"

[webhook]
url = "http://localhost:5678/webhook/doc"
timeout_secs = 15
`), 0o600))
	t.Setenv("DOCORCH_CONFIG_FILE", path)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.LLM.APIKey)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.LLM.Model)
	assert.Equal(t, "http://localhost:5678/webhook/doc", cfg.Webhook.URL)
	assert.Equal(t, 15*time.Second, cfg.Webhook.Timeout())
}

func TestLoad_MissingConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOCORCH_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	_, err := config.Load()
	assert.Error(t, err)
}

func TestValidate_MissingAPIKey(t *testing.T) {
	cfg := &config.Config{LLM: config.LLMConfig{APIKey: "   "}}

	err := cfg.Validate()

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingAPIKey))
	assert.Contains(t, err.Error(), "DOCORCH_LLM_API_KEY")
}

func TestLoad_TrimsAPIKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOCORCH_LLM_API_KEY", "  gsk-test\n")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "gsk-test", cfg.LLM.APIKey)
	assert.NoError(t, cfg.Validate())
}
