package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FIREBASE_CREDENTIALS_PATH", "/tmp/creds.json")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "console", cfg.App.LogFormat)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "gemini-3-flash-preview", cfg.Gemini.Model)
	assert.Contains(t, cfg.Gemini.BaseURL, "generativelanguage.googleapis.com")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FIREBASE_CREDENTIALS_PATH", "/tmp/creds.json")
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("APP_URL", "https://namelime.app")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "https://namelime.app", cfg.App.AppURL)
}

func TestValidateRequiresFirebaseCredentials(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Port: "8080"}}

	err := cfg.Validate()

	assert.ErrorContains(t, err, "FIREBASE_CREDENTIALS_PATH")
}

func TestGetEnvAsIntRejectsGarbage(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	assert.Equal(t, 0, getEnvAsInt("REDIS_DB", 0))
}
