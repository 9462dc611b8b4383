package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv(EnvToken, "")
	path := writeConfig(t, `
telegram:
  token: "123:abc"
allowlist:
  - 42
  - 7
spam:
  cooldown: 2s
files:
  max_size_mb: 5
shortener:
  endpoint: "https://short.example/api"
commands:
  sticker_id: "yay"
  sticker_replies:
    uniq-1: "reply-1"
timeout: 10s
log_file: "/tmp/test.log"
debug: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, []int64{42, 7}, cfg.Allowlist)
	assert.Equal(t, 2*time.Second, cfg.Spam.Cooldown)
	assert.Equal(t, int64(5<<20), cfg.Files.MaxBytes())
	assert.Equal(t, "https://short.example/api", cfg.Shortener.Endpoint)
	assert.Equal(t, "yay", cfg.Commands.StickerID)
	assert.Equal(t, map[string]string{"uniq-1": "reply-1"}, cfg.Commands.StickerReplies)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "/tmp/test.log", cfg.LogFile)
	assert.True(t, cfg.Debug)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvToken, "")
	cfg, err := Load(writeConfig(t, "telegram:\n  token: t\n"))
	require.NoError(t, err)

	assert.Equal(t, time.Second, cfg.Spam.Cooldown)
	assert.Equal(t, int64(10), cfg.Files.MaxSizeMB)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.NotEmpty(t, cfg.Shortener.Endpoint)
	assert.Empty(t, cfg.Allowlist)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvToken, "from-env")
	t.Setenv(EnvDebug, "true")
	t.Setenv(EnvLogFile, "/var/log/mimic.log")

	cfg, err := Load(writeConfig(t, "telegram:\n  token: from-file\n"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Telegram.Token)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "/var/log/mimic.log", cfg.LogFile)

	t.Setenv(EnvDebug, "maybe")
	_, err = Load("")
	assert.Error(t, err)
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv(EnvToken, "env-only")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env-only", cfg.Telegram.Token)
}

func TestLoadMissingToken(t *testing.T) {
	t.Setenv(EnvToken, "")
	_, err := Load(writeConfig(t, "debug: true\n"))
	assert.Error(t, err)

	cfg, err := Read(writeConfig(t, "debug: true\n"))
	require.NoError(t, err, "Read does not need a token")
	assert.True(t, cfg.Debug)
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv(EnvToken, "t")

	tests := map[string]string{
		"negative cooldown": "spam:\n  cooldown: -1s\n",
		"zero file size":    "files:\n  max_size_mb: 0\n",
		"zero timeout":      "timeout: 0s\n",
		"bad yaml":          "allowlist: [1, 2\n",
		"bad duration":      "timeout: soon\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("MIMIC_TEST_DOTENV=loaded\n"), 0644))

	t.Setenv("MIMIC_TEST_DOTENV", "")
	os.Unsetenv("MIMIC_TEST_DOTENV")

	require.NoError(t, LoadDotEnv(envFile, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "loaded", os.Getenv("MIMIC_TEST_DOTENV"))
}

func TestIsAllowed(t *testing.T) {
	cfg := &Config{Allowlist: []int64{42, 7}}

	tests := []struct {
		user int64
		want bool
	}{
		{42, true},
		{7, true},
		{8, false},
		{0, false},
	}
	for _, tt := range tests {
		if got := cfg.IsAllowed(tt.user); got != tt.want {
			t.Errorf("IsAllowed(%d) = %v, want %v", tt.user, got, tt.want)
		}
	}

	open := &Config{}
	assert.True(t, open.IsAllowed(12345), "empty allowlist allows everyone")
}
