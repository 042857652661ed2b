package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	t.Run("copies aside with timestamp suffix", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, ".claude.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"a": 1}`), 0o600))

		backupPath, err := Create(path)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(backupPath, path+".backup."))
		suffix := strings.TrimPrefix(backupPath, path+".backup.")
		require.Len(t, suffix, len(TimestampFormat))
		assert.Equal(t, byte('_'), suffix[8])

		data, err := os.ReadFile(backupPath)
		require.NoError(t, err)
		assert.Equal(t, `{"a": 1}`, string(data))

		info, err := os.Stat(backupPath)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("missing source is not an error", func(t *testing.T) {
		backupPath, err := Create(filepath.Join(t.TempDir(), "absent.json"))
		require.NoError(t, err)
		assert.Empty(t, backupPath)
	})

	t.Run("original is untouched", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("model = 'x'\n"), 0o644))

		_, err := Create(path)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "model = 'x'\n", string(data))
	})
}
