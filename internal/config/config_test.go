package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unset clears keys for the duration of the test. t.Setenv first so the
// original value is restored afterwards.
func unset(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	unset(t, "PORT", "LOG_LEVEL", "DATABASE_PATH", "JWT_EXPIRES_DAYS",
		"COOKIE_NAME", "WORDLIST_DIR", "DEFAULT_MAX_WRONG", "OPENAI_MODEL", "OFFLINE_MODE")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "./data/hangman.db", cfg.DatabasePath)
	assert.Equal(t, 14, cfg.JWTExpiresDays)
	assert.Equal(t, "hangman_token", cfg.CookieName)
	assert.Equal(t, "", cfg.WordlistDir)
	assert.Equal(t, 6, cfg.DefaultMaxWrong)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.True(t, cfg.OfflineMode)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("JWT_EXPIRES_DAYS", "30")
	t.Setenv("OFFLINE_MODE", "false")
	t.Setenv("WORDLIST_DIR", "/srv/words")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, 30, cfg.JWTExpiresDays)
	assert.False(t, cfg.OfflineMode)
	assert.Equal(t, "/srv/words", cfg.WordlistDir)
}

func TestLoad_BadValue(t *testing.T) {
	t.Setenv("JWT_EXPIRES_DAYS", "two weeks")
	_, err := Load()
	assert.Error(t, err)
}

func TestLLMEnabled(t *testing.T) {
	assert.False(t, Config{OfflineMode: true, OpenAIAPIKey: "sk-x"}.LLMEnabled())
	assert.False(t, Config{OfflineMode: false, OpenAIAPIKey: ""}.LLMEnabled())
	assert.True(t, Config{OfflineMode: false, OpenAIAPIKey: "sk-x"}.LLMEnabled())
}
