package settings

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/thoreinstein/claudius/internal/errors"
	"github.com/thoreinstein/claudius/pkg/fileutil"
)

// ReadSettings loads a Claude-flavored JSON settings file. A missing
// file yields (nil, nil).
func ReadSettings(path string) (*Settings, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return &s, nil
}

// WriteSettings writes a Claude-flavored JSON settings file atomically,
// creating parent directories as needed.
func WriteSettings(path string, s *Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "creating directory for %s", path)
	}
	return fileutil.AtomicWriteJSON(path, s)
}

// ReadCodexSettings loads a Codex TOML settings file. A missing file
// yields (nil, nil).
func ReadCodexSettings(path string) (*CodexSettings, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return ParseCodexSettings(data)
}

// WriteCodexSettings writes a Codex TOML settings file atomically,
// creating parent directories as needed.
func WriteCodexSettings(path string, c *CodexSettings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "creating directory for %s", path)
	}
	return fileutil.AtomicWriteTOML(path, c.toMap())
}
