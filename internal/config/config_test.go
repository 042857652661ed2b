package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/claudius/internal/agent"
	claudiuserrors "github.com/thoreinstein/claudius/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ExplicitPath(t *testing.T) {
	path := writeConfig(t, `
[secret-manager]
type = "1password"

[default]
agent = "codex"
context-file = "NOTES.md"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	sm, ok := cfg.SecretManagerConfig()
	require.True(t, ok)
	assert.Equal(t, SecretManagerOnePassword, sm.Type)

	a, ok := cfg.DefaultAgent()
	require.True(t, ok)
	assert.Equal(t, agent.Codex, a)

	ctx, ok := cfg.ContextFile()
	require.True(t, ok)
	assert.Equal(t, "NOTES.md", ctx)
}

func TestLoad_MissingExplicitPathFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoad_MissingImplicitConfigIsEmpty(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	_, ok := cfg.SecretManagerConfig()
	assert.False(t, ok)
	_, ok = cfg.DefaultAgent()
	assert.False(t, ok)
}

func TestLoad_ImplicitConfigDir(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	dir := filepath.Join(base, "claudius")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[default]
agent = "gemini"
`), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)

	a, ok := cfg.DefaultAgent()
	require.True(t, ok)
	assert.Equal(t, agent.Gemini, a)
}

func TestLoad_InvalidSecretManager(t *testing.T) {
	path := writeConfig(t, `
[secret-manager]
type = "keychain"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSecretManager)
	assert.ErrorIs(t, err, claudiuserrors.ErrInvalidConfig)
}

func TestLoad_InvalidDefaultAgent(t *testing.T) {
	path := writeConfig(t, `
[default]
agent = "copilot"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, agent.ErrUnknownAgent)
	assert.ErrorIs(t, err, claudiuserrors.ErrUnknownAgent)
}

func TestValidate_NilSectionsOK(t *testing.T) {
	var cfg Config
	assert.NoError(t, cfg.Validate())
}
