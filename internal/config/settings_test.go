package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	t.Setenv("FMP_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	s, err := LoadSettings(NewViper(""))
	require.NoError(t, err)

	assert.False(t, s.Debug)
	assert.Equal(t, AdvisorAnthropic, s.AdvisorProvider)
	assert.Equal(t, YieldFMP, s.YieldProvider)
	assert.Equal(t, ":5001", s.ServerAddr)
	assert.Equal(t, 4, s.BatchConcurrency)
	assert.Equal(t, 30*time.Second, s.RequestTimeout)
	assert.NotEmpty(t, s.StorePath)
}

func TestLoadSettings_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fiplan.toml")
	content := "debug = true\n" +
		"advisor = \"gemini\"\n" +
		"yield_provider = \"Finnhub\"\n" +
		"server_addr = \":9090\"\n" +
		"request_timeout = \"5s\"\n" +
		"api_base_url = \"http://localhost:5001/api/\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("FINNHUB_API_KEY", "fh-key")
	t.Setenv("FIPLAN_BATCH_CONCURRENCY", "8")

	s, err := LoadSettings(NewViper(path))
	require.NoError(t, err)

	assert.True(t, s.Debug)
	assert.Equal(t, AdvisorGemini, s.AdvisorProvider)
	assert.Equal(t, ":9090", s.ServerAddr)
	assert.Equal(t, 5*time.Second, s.RequestTimeout)
	assert.Equal(t, "http://localhost:5001/api", s.APIBaseURL)
	assert.Equal(t, "gem-key", s.GeminiAPIKey)
	assert.Equal(t, YieldFinnhub, s.YieldProvider)
	assert.Equal(t, "fh-key", s.FinnhubAPIKey)
	assert.Equal(t, 8, s.BatchConcurrency)
}

func TestLoadSettings_Errors(t *testing.T) {
	_, err := LoadSettings(NewViper(filepath.Join(t.TempDir(), "nope.yaml")))
	assert.ErrorContains(t, err, "failed to read config file")

	path := filepath.Join(t.TempDir(), "fiplan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("advisor: openai\n"), 0o644))
	_, err = LoadSettings(NewViper(path))
	assert.ErrorContains(t, err, "advisor must be one of")

	require.NoError(t, os.WriteFile(path, []byte("yield_provider: yahoo\n"), 0o644))
	_, err = LoadSettings(NewViper(path))
	assert.ErrorContains(t, err, "yield_provider must be")

	require.NoError(t, os.WriteFile(path, []byte("advisor: api\n"), 0o644))
	_, err = LoadSettings(NewViper(path))
	assert.ErrorContains(t, err, "api_base_url is required")
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("FMP_API_KEY=from-dotenv\n"), 0o644))

	t.Setenv("FMP_API_KEY", "")
	require.NoError(t, os.Unsetenv("FMP_API_KEY"))
	require.NoError(t, LoadEnvFile(path))

	s, err := LoadSettings(NewViper(""))
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", s.FMPAPIKey)

	assert.Error(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
	assert.NoError(t, LoadEnvFile(""))
}
