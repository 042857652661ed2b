// Package skill syncs skill definitions from the claudius config
// directory into an agent's skills directory.
//
// Two source layouts are supported: skills/<name>/ directories copied
// recursively, and legacy commands-style <name>.md files converted to
// skills/<name>/SKILL.md.
package skill

import (
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/thoreinstein/claudius/internal/errors"
)

// FileName is the entrypoint file of a directory-based skill.
const FileName = "SKILL.md"

// Sync copies every skill from sourceDir into targetDir and returns the
// synced skill names, sorted. A missing source directory syncs nothing.
func Sync(sourceDir, targetDir string) ([]string, error) {
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating target directory %s", targetDir)
	}

	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading skills directory %s", sourceDir)
	}

	seen := map[string]bool{}
	for _, entry := range entries {
		path := filepath.Join(sourceDir, entry.Name())

		if entry.IsDir() {
			if err := copyDirRecursive(path, filepath.Join(targetDir, entry.Name())); err != nil {
				return nil, err
			}
			seen[entry.Name()] = true
			continue
		}

		if filepath.Ext(entry.Name()) != ".md" {
			continue
		}

		name := entry.Name()[:len(entry.Name())-len(".md")]
		skillDir := filepath.Join(targetDir, name)
		if err := os.MkdirAll(skillDir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "creating skill directory %s", skillDir)
		}
		if err := copyFile(path, filepath.Join(skillDir, FileName)); err != nil {
			return nil, err
		}
		seen[name] = true
	}

	synced := make([]string, 0, len(seen))
	for name := range seen {
		synced = append(synced, name)
	}
	sort.Strings(synced)
	return synced, nil
}

// List returns the sorted skill names in dir, counting both skill
// directories and legacy .md files. A missing directory yields an
// empty list.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading skills directory %s", dir)
	}

	seen := map[string]bool{}
	for _, entry := range entries {
		if entry.IsDir() {
			seen[entry.Name()] = true
			continue
		}
		if filepath.Ext(entry.Name()) == ".md" {
			seen[entry.Name()[:len(entry.Name())-len(".md")]] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func copyDirRecursive(source, target string) error {
	if err := os.MkdirAll(target, 0o755); err != nil {
		return errors.Wrapf(err, "creating directory %s", target)
	}

	entries, err := os.ReadDir(source)
	if err != nil {
		return errors.Wrapf(err, "reading directory %s", source)
	}

	for _, entry := range entries {
		sourcePath := filepath.Join(source, entry.Name())
		targetPath := filepath.Join(target, entry.Name())

		if entry.IsDir() {
			if err := copyDirRecursive(sourcePath, targetPath); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(sourcePath, targetPath); err != nil {
			return err
		}
	}

	return nil
}

func copyFile(source, target string) error {
	in, err := os.Open(source)
	if err != nil {
		return errors.Wrapf(err, "opening %s", source)
	}
	defer in.Close()

	out, err := os.Create(target)
	if err != nil {
		return errors.Wrapf(err, "creating %s", target)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Wrapf(err, "copying to %s", target)
	}
	return errors.Wrapf(out.Close(), "closing %s", target)
}
