package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	p := writeConfig(t, `theme: neon
log:
  file: /tmp/todo.log
todo:
  reject_empty: true
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "neon", cfg.Theme)
	assert.Equal(t, "/tmp/todo.log", cfg.Log.File)
	assert.Equal(t, "info", cfg.Log.Level, "unset keys keep their default")
	assert.True(t, cfg.Todo.RejectEmpty)
}

func TestEnvOverridesFile(t *testing.T) {
	p := writeConfig(t, "log:\n  level: warn\n")
	t.Setenv("TODO_LOG_LEVEL", "debug")
	t.Setenv("TODO_UI_FILE", "custom.yaml")
	t.Setenv("TODO_TODO_REJECT_EMPTY", "true")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "custom.yaml", cfg.UI.File)
	assert.True(t, cfg.Todo.RejectEmpty)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "stat config")
}

func TestLoadDirectory(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorContains(t, err, "is a directory")
}

func TestLoadBadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "theme: [unterminated"))
	assert.ErrorContains(t, err, "parse config")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Theme = "MONO"
	assert.NoError(t, cfg.Validate())

	cfg.Theme = "plaid"
	cfg.Log.Level = "loud"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `theme "plaid"`)
	assert.Contains(t, err.Error(), `log.level "loud"`)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "log.level", envKey("TODO_LOG_LEVEL"))
	assert.Equal(t, "todo.reject_empty", envKey("TODO_TODO_REJECT_EMPTY"))
	assert.Equal(t, "theme", envKey("TODO_THEME"))
}
