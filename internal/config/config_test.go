package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "en-US", cfg.Grammar.Language)
	assert.True(t, cfg.POV.Enabled)
	assert.Equal(t, 64, cfg.Cache.Capacity)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
grammar:
  enabled: true
  base_url: http://grammar.internal:8010
  timeout: 3s
cache:
  capacity: 8
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Grammar.Enabled)
	assert.Equal(t, "http://grammar.internal:8010", cfg.Grammar.BaseURL)
	assert.Equal(t, 8, cfg.Cache.Capacity)
	// Untouched sections keep their defaults.
	assert.Equal(t, "en-US", cfg.Grammar.Language)
	assert.Equal(t, "gemini", cfg.AI.Provider)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grammar: ["), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GRAMMAR_SERVICE_URL", "http://lt:8010")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.AI.APIKey)
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.True(t, cfg.Grammar.Enabled)
	assert.Equal(t, "http://lt:8010", cfg.Grammar.BaseURL)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Grammar.Enabled = true
	cfg.Cache.Capacity = 16
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, loaded.Grammar.Enabled)
	assert.Equal(t, 16, loaded.Cache.Capacity)
}

func TestTimeoutFallbacks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Grammar.Timeout = "not-a-duration"
	assert.Equal(t, "10s", cfg.GetGrammarTimeout().String())
	cfg.AI.Timeout = "5s"
	assert.Equal(t, "5s", cfg.GetAITimeout().String())
}
