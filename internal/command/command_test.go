package command

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"review.md", "review"},
		{"my-command.md", "my-command"},
		{"/path/to/review.md", "review"},
		{"review", "review"},
		{"file.test.md", "file.test"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InferName(tt.path))
	}
}

func TestSync(t *testing.T) {
	t.Run("missing source syncs nothing", func(t *testing.T) {
		dir := t.TempDir()
		targetDir := filepath.Join(dir, "target")

		synced, err := Sync(filepath.Join(dir, "absent"), targetDir)
		require.NoError(t, err)
		assert.Empty(t, synced)
		assert.DirExists(t, targetDir)
	})

	t.Run("copies markdown files without extension", func(t *testing.T) {
		dir := t.TempDir()
		sourceDir := filepath.Join(dir, "source")
		targetDir := filepath.Join(dir, "target")
		require.NoError(t, os.MkdirAll(sourceDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "review.md"), []byte("# Review"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "deploy.md"), []byte("# Deploy"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "notes.txt"), []byte("skip"), 0o644))

		synced, err := Sync(sourceDir, targetDir)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"review", "deploy"}, synced)

		data, err := os.ReadFile(filepath.Join(targetDir, "review"))
		require.NoError(t, err)
		assert.Equal(t, "# Review", string(data))
		assert.NoFileExists(t, filepath.Join(targetDir, "review.md"))
		assert.NoFileExists(t, filepath.Join(targetDir, "notes.txt"))
	})

	t.Run("overwrites existing target", func(t *testing.T) {
		dir := t.TempDir()
		sourceDir := filepath.Join(dir, "source")
		targetDir := filepath.Join(dir, "target")
		require.NoError(t, os.MkdirAll(sourceDir, 0o755))
		require.NoError(t, os.MkdirAll(targetDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(targetDir, "review"), []byte("old"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "review.md"), []byte("new"), 0o644))

		_, err := Sync(sourceDir, targetDir)
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(targetDir, "review"))
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})

	t.Run("creates nested target", func(t *testing.T) {
		dir := t.TempDir()
		sourceDir := filepath.Join(dir, "source")
		targetDir := filepath.Join(dir, "nested", "deep", "target")
		require.NoError(t, os.MkdirAll(sourceDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "test.md"), []byte("x"), 0o644))

		synced, err := Sync(sourceDir, targetDir)
		require.NoError(t, err)
		assert.Equal(t, []string{"test"}, synced)
	})
}

func TestList(t *testing.T) {
	t.Run("missing directory is empty", func(t *testing.T) {
		names, err := List(filepath.Join(t.TempDir(), "absent"))
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("sorted top-level markdown only", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "subdir"), 0o755))
		for _, name := range []string{"zebra.md", "apple.md", "banana.md"} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, "subdir", "nested.md"), nil, 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "not-md.txt"), nil, 0o644))

		names, err := List(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"apple", "banana", "zebra"}, names)
	})
}
