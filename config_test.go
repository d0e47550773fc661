package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "GIN_MODE", "CONTENT_PATH", "IMAGES_DIR", "DATABASE_PATH", "DEFAULT_LANG",
		"SHUTDOWN_TIMEOUT", "VISITOR_RETENTION", "ADMIN_USERNAME", "ADMIN_PASSWORD",
		"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS", "TO_EMAIL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./images", cfg.ImagesDir)
	assert.Equal(t, "./data/portfolio.db", cfg.DatabasePath)
	assert.Equal(t, LangArabic, cfg.DefaultLang)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 365*24*time.Hour, cfg.VisitorRetention)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	assert.False(t, cfg.SMTPConfigured())
}

func TestLoadConfigOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DEFAULT_LANG", " EN ")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("SMTP_USER", "bot@example.com")
	t.Setenv("SMTP_PASS", "secret")
	t.Setenv("TO_EMAIL", "agent@example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, LangEnglish, cfg.DefaultLang)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.SMTPConfigured())
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := map[string][2]string{
		"port":      {"PORT", "eighty"},
		"language":  {"DEFAULT_LANG", "fr"},
		"timeout":   {"SHUTDOWN_TIMEOUT", "soon"},
		"retention": {"VISITOR_RETENTION", "-1h"},
	}
	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv(kv[0], kv[1])
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigUnsupportedLanguageIsSentinel(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("DEFAULT_LANG", "de")
	_, err := LoadConfig()
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}
