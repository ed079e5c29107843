package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 7378, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "sqlite", cfg.Storage.Engine)
	assert.Equal(t, "ollama", cfg.AI.Provider)
	assert.Equal(t, "llava:7b", cfg.AI.OllamaModel)
	assert.Equal(t, 60*time.Second, cfg.AI.RequestTimeout)
	assert.Equal(t, "development", cfg.Security.Mode)
	assert.Equal(t, 10.0, cfg.Security.RateLimit)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("FACELAB_PORT", "9000")
	t.Setenv("FACELAB_AI_PROVIDER", "openai")
	t.Setenv("FACELAB_OPENAI_API_KEY", "sk-test")
	t.Setenv("FACELAB_AI_TIMEOUT", "30s")
	t.Setenv("FACELAB_RATE_LIMIT", "2.5")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, "sk-test", cfg.AI.OpenAIAPIKey)
	assert.Equal(t, 30*time.Second, cfg.AI.RequestTimeout)
	assert.Equal(t, 2.5, cfg.Security.RateLimit)
}

func TestLoadConfig_InvalidEnvFallsBackToDefault(t *testing.T) {
	t.Setenv("FACELAB_PORT", "not-a-number")
	t.Setenv("FACELAB_AI_TIMEOUT", "soon")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 7378, cfg.Server.Port)
	assert.Equal(t, 60*time.Second, cfg.AI.RequestTimeout)
}

func TestLoadConfig_YAMLFileThenEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facelab.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 8080
ai:
  provider: openai
  openai_model: gpt-4o
`), 0o600))

	t.Setenv("FACELAB_CONFIG_FILE", path)
	t.Setenv("FACELAB_PORT", "9090") // env wins over yaml

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, "gpt-4o", cfg.AI.OpenAIModel)
}

func TestLoadConfig_MissingYAMLFileFails(t *testing.T) {
	t.Setenv("FACELAB_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_ProductionRequiresToken(t *testing.T) {
	t.Setenv("FACELAB_SECURITY_MODE", "production")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("FACELAB_API_TOKEN", "secret")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Security.APIToken)
}

func TestLoadConfig_PostgresRequiresURL(t *testing.T) {
	t.Setenv("FACELAB_STORAGE_ENGINE", "postgres")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("FACELAB_POSTGRES_URL", "postgres://localhost/facelab")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Storage.Engine)
}
