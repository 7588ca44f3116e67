package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"docorch/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	LLM       LLMConfig
	Webhook   WebhookConfig
	Upload    UploadConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LLMConfig holds chat-completion provider settings.
// Model and Endpoint fall back to the provider defaults when empty.
type LLMConfig struct {
	Provider    string `mapstructure:"provider"`
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	Endpoint    string `mapstructure:"endpoint"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// WebhookConfig holds the alert automation webhook settings.
// An empty URL disables the network call.
type WebhookConfig struct {
	URL         string `mapstructure:"url"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// Timeout returns the webhook timeout, defaulting to 60s.
func (w *WebhookConfig) Timeout() time.Duration {
	if w.TimeoutSecs <= 0 {
		return 60 * time.Second
	}
	return time.Duration(w.TimeoutSecs) * time.Second
}

// UploadConfig holds document upload limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// MaxBytes returns the upload limit in bytes.
func (u *UploadConfig) MaxBytes() int64 {
	return u.MaxFileSizeMB * 1024 * 1024
}

// SessionConfig holds session store settings.
type SessionConfig struct {
	IdleTTL time.Duration `mapstructure:"idle_ttl"`
}

// RateLimitConfig holds request rate limiting settings. RPS of 0 disables limiting.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Validate checks required settings. A missing API key must stop startup.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return fmt.Errorf("set DOCORCH_LLM_API_KEY: %w", domain.ErrMissingAPIKey)
	}
	return nil
}

// Load reads configuration from environment variables with the DOCORCH_ prefix,
// optionally layered over a config file named by DOCORCH_CONFIG_FILE.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCORCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")

	// LLM defaults
	v.SetDefault("llm.provider", "groq")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.endpoint", "")
	v.SetDefault("llm.timeout_secs", 0)

	// Webhook defaults
	v.SetDefault("webhook.url", "")
	v.SetDefault("webhook.timeout_secs", 60)

	v.SetDefault("upload.max_file_size_mb", 25)
	v.SetDefault("session.idle_ttl", "24h")
	v.SetDefault("rate_limit.rps", 0)
	v.SetDefault("rate_limit.burst", 10)

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:8501,http://127.0.0.1:8501")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "DOCORCH_SERVER_PORT",
		"server.read_timeout":     "DOCORCH_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "DOCORCH_SERVER_WRITE_TIMEOUT",
		"server.environment":      "DOCORCH_SERVER_ENVIRONMENT",
		"llm.provider":            "DOCORCH_LLM_PROVIDER",
		"llm.api_key":             "DOCORCH_LLM_API_KEY",
		"llm.model":               "DOCORCH_LLM_MODEL",
		"llm.endpoint":            "DOCORCH_LLM_ENDPOINT",
		"llm.timeout_secs":        "DOCORCH_LLM_TIMEOUT_SECS",
		"webhook.url":             "DOCORCH_WEBHOOK_URL",
		"webhook.timeout_secs":    "DOCORCH_WEBHOOK_TIMEOUT_SECS",
		"upload.max_file_size_mb": "DOCORCH_UPLOAD_MAX_FILE_SIZE_MB",
		"session.idle_ttl":        "DOCORCH_SESSION_IDLE_TTL",
		"rate_limit.rps":          "DOCORCH_RATE_LIMIT_RPS",
		"rate_limit.burst":        "DOCORCH_RATE_LIMIT_BURST",
		"cors.allowed_origins":    "DOCORCH_CORS_ALLOWED_ORIGINS",
		"log.level":               "DOCORCH_LOG_LEVEL",
		"log.format":              "DOCORCH_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	if path := os.Getenv("DOCORCH_CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it if DOCORCH_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DOCORCH_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.LLM = LLMConfig{
		Provider:    v.GetString("llm.provider"),
		APIKey:      strings.TrimSpace(v.GetString("llm.api_key")),
		Model:       v.GetString("llm.model"),
		Endpoint:    v.GetString("llm.endpoint"),
		TimeoutSecs: v.GetInt("llm.timeout_secs"),
	}
	cfg.Webhook = WebhookConfig{
		URL:         strings.TrimSpace(v.GetString("webhook.url")),
		TimeoutSecs: v.GetInt("webhook.timeout_secs"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.Session = SessionConfig{
		IdleTTL: v.GetDuration("session.idle_ttl"),
	}
	cfg.RateLimit = RateLimitConfig{
		RPS:   v.GetFloat64("rate_limit.rps"),
		Burst: v.GetInt("rate_limit.burst"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	return cfg, nil
}
