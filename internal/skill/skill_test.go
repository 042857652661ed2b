package skill

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSync(t *testing.T) {
	t.Run("missing source syncs nothing", func(t *testing.T) {
		dir := t.TempDir()
		targetDir := filepath.Join(dir, "target")

		synced, err := Sync(filepath.Join(dir, "absent"), targetDir)
		require.NoError(t, err)
		assert.Empty(t, synced)
		assert.DirExists(t, targetDir)
	})

	t.Run("copies skill directories recursively", func(t *testing.T) {
		dir := t.TempDir()
		sourceDir := filepath.Join(dir, "source")
		targetDir := filepath.Join(dir, "target")

		skillDir := filepath.Join(sourceDir, "review")
		require.NoError(t, os.MkdirAll(filepath.Join(skillDir, "assets"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(skillDir, FileName), []byte("# Review Skill"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(skillDir, "assets", "prompt.txt"), []byte("extra"), 0o644))

		synced, err := Sync(sourceDir, targetDir)
		require.NoError(t, err)
		assert.Equal(t, []string{"review"}, synced)

		assert.FileExists(t, filepath.Join(targetDir, "review", FileName))
		assert.FileExists(t, filepath.Join(targetDir, "review", "assets", "prompt.txt"))
	})

	t.Run("converts legacy markdown files", func(t *testing.T) {
		dir := t.TempDir()
		sourceDir := filepath.Join(dir, "source")
		targetDir := filepath.Join(dir, "target")
		require.NoError(t, os.MkdirAll(sourceDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "deploy.md"), []byte("# Deploy"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "ignore.txt"), []byte("skip"), 0o644))

		synced, err := Sync(sourceDir, targetDir)
		require.NoError(t, err)
		assert.Equal(t, []string{"deploy"}, synced)

		data, err := os.ReadFile(filepath.Join(targetDir, "deploy", FileName))
		require.NoError(t, err)
		assert.Equal(t, "# Deploy", string(data))
		assert.NoFileExists(t, filepath.Join(targetDir, "ignore.txt"))
	})

	t.Run("mixed sources are sorted and deduplicated", func(t *testing.T) {
		dir := t.TempDir()
		sourceDir := filepath.Join(dir, "source")
		targetDir := filepath.Join(dir, "target")
		require.NoError(t, os.MkdirAll(filepath.Join(sourceDir, "bravo"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "bravo", FileName), []byte("b"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "alpha.md"), []byte("a"), 0o644))

		synced, err := Sync(sourceDir, targetDir)
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "bravo"}, synced)
	})
}

func TestList(t *testing.T) {
	t.Run("missing directory is empty", func(t *testing.T) {
		names, err := List(filepath.Join(t.TempDir(), "absent"))
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("directories and legacy files", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "alpha"), 0o755))
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "bravo"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "legacy.md"), []byte("x"), 0o644))

		names, err := List(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "bravo", "legacy"}, names)
	})
}
