// Package command syncs custom slash command files from the claudius
// config directory into an agent's command directory.
package command

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/thoreinstein/claudius/internal/errors"
)

// InferName derives a command name from a file path by stripping the
// directory and the .md extension.
//
//   - review.md -> review
//   - /path/to/review.md -> review
//   - file.test.md -> file.test
func InferName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".md")
}

// Sync copies every top-level .md file from sourceDir into targetDir,
// named by command without the extension. The target directory is
// created; a missing source directory syncs nothing. Returns the
// synced command names.
func Sync(sourceDir, targetDir string) ([]string, error) {
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating target directory %s", targetDir)
	}

	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading commands directory %s", sourceDir)
	}

	var synced []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}

		name := InferName(entry.Name())
		data, err := os.ReadFile(filepath.Join(sourceDir, entry.Name()))
		if err != nil {
			return nil, errors.Wrapf(err, "reading command %s", entry.Name())
		}
		if err := os.WriteFile(filepath.Join(targetDir, name), data, 0o644); err != nil {
			return nil, errors.Wrapf(err, "copying command %s", name)
		}
		synced = append(synced, name)
	}

	return synced, nil
}

// List returns the sorted command names in dir, top level only. A
// missing directory yields an empty list.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading commands directory %s", dir)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".md" {
			continue
		}
		names = append(names, InferName(entry.Name()))
	}

	sort.Strings(names)
	return names, nil
}
