// Package rules manages the named rule files under the claudius config
// directory and projects them into agent context files such as
// CLAUDE.md and AGENTS.md.
package rules

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/thoreinstein/claudius/internal/errors"
	"github.com/thoreinstein/claudius/internal/paths"
	"github.com/thoreinstein/claudius/pkg/frontmatter"
)

// ErrNoRules indicates that none of the requested rules exist.
var ErrNoRules = errors.New("no valid rules found")

// Rule is a named rule file. Description is taken from the optional
// YAML frontmatter of the rule file.
type Rule struct {
	Name        string
	Description string
}

type ruleHeader struct {
	Description string `yaml:"description"`
}

// EnsureDir creates the rules directory under the claudius config
// directory if needed and returns its path.
func EnsureDir() (string, error) {
	dir, err := paths.RulesDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "creating rules directory %s", dir)
	}
	return dir, nil
}

// List returns every rule under dir, recursing into subdirectories.
// Names are relative paths without the .md extension, using forward
// slashes, sorted. A missing directory yields an empty list.
func List(dir string) ([]Rule, error) {
	var rules []Rule
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel))
		rules = append(rules, Rule{Name: name, Description: readDescription(path)})
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "reading rules directory %s", dir)
	}

	sort.Slice(rules, func(i, j int) bool { return rules[i].Name < rules[j].Name })
	return rules, nil
}

// Names returns the sorted rule names under dir.
func Names(dir string) ([]string, error) {
	list, err := List(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(list))
	for i, rule := range list {
		names[i] = rule.Name
	}
	return names, nil
}

// readDescription parses the optional frontmatter of a rule file. Rules
// without frontmatter, or with unreadable content, have no description.
func readDescription(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	var header ruleHeader
	if _, err := frontmatter.Parse(f, &header); err != nil {
		return ""
	}
	return strings.TrimSpace(header.Description)
}

// collectContents reads the named rules from dir and joins their
// contents with blank lines. Missing rules are skipped with a warning.
func collectContents(dir string, names []string, logger *slog.Logger) (string, []string) {
	var builder strings.Builder
	var found []string

	for _, name := range names {
		path := filepath.Join(dir, name+".md")
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("rule not found", "rule", name, "path", path)
			continue
		}
		if builder.Len() > 0 {
			builder.WriteString("\n\n")
		}
		builder.Write(data)
		found = append(found, name)
	}

	return builder.String(), found
}

// AppendRules appends the named rules to the context file at
// contextPath, creating it and any parent directories as needed.
// Returns ErrNoRules when none of the names resolve to a rule file.
func AppendRules(names []string, contextPath string, logger *slog.Logger) error {
	dir, err := EnsureDir()
	if err != nil {
		return err
	}

	content, _ := collectContents(dir, names, logger)
	if content == "" {
		return ErrNoRules
	}

	if err := ensureParentDir(contextPath); err != nil {
		return err
	}
	return appendToFile(contextPath, content, "\n\n")
}

// ensureParentDir creates the parent directory of path if needed.
func ensureParentDir(path string) error {
	parent := filepath.Dir(path)
	if parent == "" || parent == "." {
		return nil
	}
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return errors.Wrapf(err, "creating directory %s", parent)
	}
	return nil
}

// appendToFile appends content to the file at path, separated from the
// trimmed existing content, or creates the file when it is absent.
func appendToFile(path, content, separator string) error {
	existing, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return errors.Wrapf(err, "reading %s", path)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return errors.Wrapf(err, "creating %s", path)
		}
		return nil
	}

	combined := strings.TrimRight(string(existing), " \t\r\n") + separator + content
	if err := os.WriteFile(path, []byte(combined), 0o644); err != nil {
		return errors.Wrapf(err, "updating %s", path)
	}
	return nil
}
