package rules

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/claudius/internal/errors"
)

// Markers delimiting the managed rule reference section in a context
// file. Everything between them is rewritten on each install.
const (
	SectionStart = "<!-- CLAUDIUS_RULES_START -->"
	SectionEnd   = "<!-- CLAUDIUS_RULES_END -->"
)

// DefaultInstallDir is where installed rules land, relative to the
// project directory.
const DefaultInstallDir = ".agents/rules"

// InstallOptions configures an Install run.
type InstallOptions struct {
	// Names are the rules to install. Ignored when All is set.
	Names []string

	// All installs every rule in the source directory, including
	// subdirectories.
	All bool

	// TargetDir is the project directory receiving the rules.
	TargetDir string

	// InstallDir overrides DefaultInstallDir. A relative path is
	// resolved against TargetDir.
	InstallDir string

	// ContextFileName is the context file updated with the reference
	// directive, e.g. CLAUDE.md.
	ContextFileName string
}

// Install copies rules from the claudius config directory into the
// project's install directory and maintains a reference section in the
// context file pointing at them. It returns the installed rule names.
func Install(opts InstallOptions, logger *slog.Logger) ([]string, error) {
	installDir := opts.InstallDir
	if installDir == "" {
		installDir = DefaultInstallDir
	}
	rulesDir := installDir
	if !filepath.IsAbs(rulesDir) {
		rulesDir = filepath.Join(opts.TargetDir, rulesDir)
	}
	if err := os.MkdirAll(rulesDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating directory %s", rulesDir)
	}

	sourceDir, err := EnsureDir()
	if err != nil {
		return nil, err
	}

	names := opts.Names
	if opts.All {
		names, err = Names(sourceDir)
		if err != nil {
			return nil, err
		}
		if len(names) == 0 {
			return nil, errors.Newf("no rules found in %s", sourceDir)
		}
	}

	installed, err := copyRules(names, sourceDir, rulesDir, logger)
	if err != nil {
		return nil, err
	}

	if err := writeReferenceSection(opts.TargetDir, rulesDir, opts.ContextFileName, installed); err != nil {
		return nil, err
	}

	return installed, nil
}

// copyRules copies each named rule file, creating subdirectories as
// needed. Missing rules are skipped with a warning; an empty result is
// ErrNoRules.
func copyRules(names []string, sourceDir, rulesDir string, logger *slog.Logger) ([]string, error) {
	var installed []string
	for _, name := range names {
		sourcePath := filepath.Join(sourceDir, name+".md")
		destPath := filepath.Join(rulesDir, name+".md")

		data, err := os.ReadFile(sourcePath)
		if err != nil {
			logger.Warn("rule not found", "rule", name, "path", sourcePath)
			continue
		}

		if err := ensureParentDir(destPath); err != nil {
			return nil, err
		}
		if err := os.WriteFile(destPath, data, 0o644); err != nil {
			return nil, errors.Wrapf(err, "copying rule to %s", destPath)
		}
		installed = append(installed, name)
	}

	if len(installed) == 0 {
		return nil, ErrNoRules
	}
	return installed, nil
}

// writeReferenceSection adds or replaces the managed reference section
// in the context file under targetDir.
func writeReferenceSection(targetDir, rulesDir, contextFileName string, installed []string) error {
	contextPath := filepath.Join(targetDir, contextFileName)

	// Prefer a path relative to the project so the directive survives
	// checkouts at other locations.
	relRulesDir, err := filepath.Rel(targetDir, rulesDir)
	if err != nil || strings.HasPrefix(relRulesDir, "..") {
		relRulesDir = rulesDir
	}

	directive := buildReferenceDirective(relRulesDir, installed)

	existing, err := os.ReadFile(contextPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "reading %s", contextPath)
	}

	content := string(existing)
	if strings.Contains(content, SectionStart) {
		replaced, err := replaceReferenceSection(content, directive)
		if err != nil {
			return errors.Wrapf(err, "updating %s", contextPath)
		}
		return errors.Wrapf(os.WriteFile(contextPath, []byte(replaced), 0o644), "updating %s", contextPath)
	}

	return errors.Wrapf(os.WriteFile(contextPath, []byte(content+directive), 0o644), "updating %s", contextPath)
}

// buildReferenceDirective renders the managed section listing the
// installed rules.
func buildReferenceDirective(rulesDir string, installed []string) string {
	var list strings.Builder
	for _, name := range installed {
		path := filepath.ToSlash(filepath.Join(rulesDir, name+".md"))
		list.WriteString("- `" + path + "`: " + strings.ReplaceAll(name, "/", " / ") + "\n")
	}

	return "\n" + SectionStart + "\n" +
		"# External Rule References\n\n" +
		"The following rules from `" + filepath.ToSlash(rulesDir) + "` are installed:\n\n" +
		list.String() +
		"\nRead these files to understand the project conventions and guidelines.\n" +
		SectionEnd + "\n"
}

// replaceReferenceSection swaps the existing managed section for the
// new directive, leaving surrounding content untouched.
func replaceReferenceSection(content, directive string) (string, error) {
	start := strings.Index(content, SectionStart)
	if start < 0 {
		return content, nil
	}

	endRel := strings.Index(content[start:], SectionEnd)
	if endRel < 0 {
		return "", errors.New("found section start marker but no end marker")
	}
	end := start + endRel + len(SectionEnd)

	return content[:start] + strings.TrimLeft(directive, "\n") + content[end:], nil
}
