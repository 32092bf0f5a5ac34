package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "gh-token")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "https://api.github.com/", cfg.GitHub.APIEndpoint)
	assert.Equal(t, 786432, cfg.GitHub.MaxSourceBytes)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, "openai", cfg.OpenAI.Provider)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "gh-token")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("GITHUB_MAX_SOURCE_BYTES", "1024")
	t.Setenv("OPENAI_MODEL", "gpt-4o")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, 1024, cfg.GitHub.MaxSourceBytes)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
}

func TestLoadConfigRequiresGitHubToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRequiresOpenAIKey(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "gh-token")
	t.Setenv("OPENAI_API_KEY", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}
