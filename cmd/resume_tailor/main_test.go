package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/config"
)

func TestModelConfig(t *testing.T) {
	cfg := config.Config{
		OllamaBaseURL: "http://model-host:11434",
		OllamaModel:   "mistral",
	}
	mc := modelConfig(cfg)
	assert.Equal(t, "http://model-host:11434", mc.BaseURL)
	assert.Equal(t, "mistral", mc.Model)

	// Empty config falls through to defaults.
	mc = modelConfig(config.Config{})
	assert.NotEmpty(t, mc.BaseURL)
	assert.NotEmpty(t, mc.Model)
}

func TestAppConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"output_dir": "custom_out", "port": 9000}`), 0644))

	configPath = path
	t.Cleanup(func() { configPath = "" })

	cfg, err := appConfig()
	require.NoError(t, err)
	assert.Equal(t, "custom_out", cfg.OutputDir)
	assert.Equal(t, 9000, cfg.Port)
	// Unset fields fall back to defaults.
	assert.Equal(t, "data", cfg.DataDir)
}

func TestAppConfigRejectsBadPort(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"port": 99999}`), 0644))

	configPath = path
	t.Cleanup(func() { configPath = "" })

	_, err := appConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config error")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 20))
	assert.Equal(t, "a ver…", truncate("a very long company name", 6))
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "generate", "score", "fit", "parse", "compare", "variants", "stats"} {
		assert.True(t, names[want], "command %s not registered", want)
	}
}
