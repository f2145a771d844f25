package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	require.NoError(t, LoadConfig(""))

	assert.Equal(t, "9999", AppConfig.APIPort)
	assert.Equal(t, "http://localhost:4566", AppConfig.LocalStackURL)
	assert.Equal(t, "info", AppConfig.LogLevel)
	assert.Equal(t, 100, AppConfig.LogTailLines)
	assert.Equal(t, 30*time.Second, AppConfig.LogFetchTimeout)
	assert.Equal(t, 10*time.Second, AppConfig.ListTimeout)
	assert.Equal(t, 60*time.Second, AppConfig.SeedTimeout)
	assert.Empty(t, AppConfig.ContainerRuntime)

	assert.Equal(t, []string{
		"localstack-main",
		"localstack-demo-localstack-1",
		"localstack_main",
		"localstack",
	}, AppConfig.LogSourceCandidates())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("API_PORT", "8080")
	t.Setenv("LOG_CONTAINERS", " my-localstack , other ")
	t.Setenv("LOG_FETCH_TIMEOUT", "5s")

	require.NoError(t, LoadConfig(""))

	assert.Equal(t, "8080", AppConfig.APIPort)
	assert.Equal(t, 5*time.Second, AppConfig.LogFetchTimeout)
	// Candidate entries are trimmed
	assert.Equal(t, []string{"my-localstack", "other"}, AppConfig.LogSourceCandidates())
}

func TestLoadConfigMissingFile(t *testing.T) {
	err := LoadConfig("does-not-exist.env")
	require.Error(t, err)
}

func TestLogSourceCandidatesSkipsEmptyEntries(t *testing.T) {
	cfg := Config{LogContainers: "a,,b, ,c"}
	assert.Equal(t, []string{"a", "b", "c"}, cfg.LogSourceCandidates())
}
