package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/clai-go/internal/domain"
)

func TestLoaderDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := NewLoader(filepath.Join(t.TempDir(), "missing.yaml")).WithEnvFiles().Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultModel, cfg.DefaultModel)
	assert.Equal(t, domain.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, domain.DefaultRequestTimeout, cfg.Timeout)
	assert.Equal(t, domain.DefaultMaxCommandLength, cfg.Validation.MaxLength)
	assert.Empty(t, cfg.APIKey)
}

func TestLoaderFileThenEnvironment(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
default_model: openai/gpt-4o-mini
timeout: 30s
delivery:
  prefer_history: true
  cmd_strict: true
validation:
  max_length: 500
`), 0o600))

	t.Setenv(domain.EnvAPIKey, "sk-env")
	t.Setenv(domain.EnvTimeout, "45s")

	cfg, err := NewLoader(path).WithEnvFiles().Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "sk-env", cfg.APIKey)
	assert.Equal(t, "openai/gpt-4o-mini", cfg.DefaultModel)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.True(t, cfg.Delivery.PreferHistory)
	assert.True(t, cfg.Delivery.CmdStrict)
	assert.Equal(t, 500, cfg.Validation.MaxLength)
}

func TestLoaderDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("OPENROUTER_API_KEY=sk-dotenv\nDEFAULT_MODEL=meta/llama\n"), 0o600))
	t.Setenv(domain.EnvDefaultModel, "google/gemini-2.5-pro")

	cfg, err := NewLoader(filepath.Join(dir, "none.yaml")).WithEnvFiles(envFile).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "sk-dotenv", cfg.APIKey)
	assert.Equal(t, "google/gemini-2.5-pro", cfg.DefaultModel)
}

func TestLoaderRejectsBrokenYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeout: [\n"), 0o600))

	_, err := NewLoader(path).WithEnvFiles().Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, domain.KindConfiguration, domain.KindOf(err))
}

func TestLoaderPathFromEnvironment(t *testing.T) {
	t.Setenv(domain.EnvConfigPath, "/etc/clai/config.yaml")
	assert.Equal(t, "/etc/clai/config.yaml", NewLoader("").Path())
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefault(path, domain.DefaultConfig(), false))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "default_model: "+domain.DefaultModel)
	assert.NotContains(t, string(data), "api_key")

	assert.Error(t, WriteDefault(path, domain.DefaultConfig(), false))
	assert.NoError(t, WriteDefault(path, domain.DefaultConfig(), true))
}

// clearEnv unsets the variables the loader binds and restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		domain.EnvAPIKey, domain.EnvAnthropicAPIKey, domain.EnvDefaultModel,
		domain.EnvBaseURL, domain.EnvTimeout, domain.EnvConfigPath,
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}
