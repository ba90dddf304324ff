package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("COHERE_API_KEY", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultHistory.Weather, cfg.History.Weather)
	assert.Equal(t, 100, cfg.History.Pomodoro)
	assert.Equal(t, 25*time.Minute, cfg.Pomodoro.Work)
	assert.Equal(t, 4, cfg.Pomodoro.Cycles)
	assert.Equal(t, []string{"cohere", "huggingface", "anthropic"}, cfg.Providers.Order)
	assert.Equal(t, "command", cfg.Providers.Cohere.Model)
	assert.Empty(t, cfg.Providers.Cohere.APIKey)
	assert.Equal(t, DefaultServe.Addr, cfg.Serve.Addr)
	assert.True(t, strings.HasSuffix(cfg.DBPath, DefaultDBName))
	assert.False(t, strings.HasPrefix(cfg.DBPath, "~"))
}

func TestLoad_FileOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	path := writeConfig(t, `
location:
  lat: 59.91
  lon: 10.75
  name: Oslo
pomodoro:
  work: 50m
  cycles: 2
history:
  weather: 10
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Oslo", cfg.Location.Name)
	assert.Equal(t, 50*time.Minute, cfg.Pomodoro.Work)
	assert.Equal(t, 5*time.Minute, cfg.Pomodoro.ShortBreak)
	assert.Equal(t, 2, cfg.Pomodoro.Cycles)
	assert.Equal(t, 10, cfg.History.Weather)
	assert.Equal(t, 30, cfg.History.Productivity)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("WEATHERFOCUS_SERVE_ADDR", ":9999")
	t.Setenv("COHERE_API_KEY", "legacy-key")
	t.Setenv("WEATHERFOCUS_PROVIDERS_ANTHROPIC_API_KEY", "prefixed-key")

	cfg, err := Load(writeConfig(t, "serve:\n  addr: \":1234\"\n"))
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Serve.Addr)
	assert.Equal(t, "legacy-key", cfg.Providers.Cohere.APIKey)
	assert.Equal(t, "prefixed-key", cfg.Providers.Anthropic.APIKey)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HF_API_KEY", "")
	os.Unsetenv("HF_API_KEY")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HF_API_KEY=from-dotenv\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("HF_API_KEY") })

	cfg, err := Load(writeConfig(t, "{}\n"))
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Providers.HuggingFace.APIKey)
}

func TestLoad_Invalid(t *testing.T) {
	chdir(t, t.TempDir())
	path := writeConfig(t, `
pomodoro:
  cycles: 0
log:
  level: loud
providers:
  order: [cohere, openai]
`)

	_, err := Load(path)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "pomodoro.cycles")
	assert.Contains(t, msg, "log.level")
	assert.Contains(t, msg, `"openai"`)
}

func TestLoad_MalformedFile(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := Load(writeConfig(t, "pomodoro: [unclosed\n"))
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x/y"), expandPath("~/x/y"))
	assert.Equal(t, "/abs/path", expandPath("/abs/path"))
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (stand-in for testing.T.Chdir on older toolchains).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
