package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GO_ENV", "test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "memory", cfg.Storage)
	assert.Equal(t, "noop", cfg.Mail.Provider)
	assert.Equal(t, 5*time.Second, cfg.UseCaseTimeout)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Empty(t, cfg.RedisURL)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE", "postgres")
	t.Setenv("EMAIL_PROVIDER", " SES ")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("USECASE_TIMEOUT", "2s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres", cfg.Storage)
	assert.Equal(t, "ses", cfg.Mail.Provider)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 2*time.Second, cfg.UseCaseTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown storage", map[string]string{"STORAGE": "sqlite"}},
		{"production without secret", map[string]string{"GO_ENV": "production"}},
		{"zero timeout", map[string]string{"USECASE_TIMEOUT": "0s"}},
		{"malformed duration", map[string]string{"JWT_EXPIRY": "tomorrow"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GO_ENV", "test")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestNewLogger_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "production", "warn")

	logger.Info("dropped")
	logger.Warn("kept", "webinar_id", "w1")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, "w1", line["webinar_id"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("WARN"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}
