package syncer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/claudius/internal/agent"
	"github.com/thoreinstein/claudius/internal/errors"
	"github.com/thoreinstein/claudius/internal/mcp"
	"github.com/thoreinstein/claudius/internal/mcp/parser"
	"github.com/thoreinstein/claudius/internal/settings"
	"github.com/thoreinstein/claudius/internal/translate"
	"github.com/thoreinstein/claudius/pkg/fileutil"
)

// Codex system file sources inside the claudius config directory. The
// prefixed names are preferred, the bare ones honored for existing
// setups.
const (
	codexRequirementsFile        = "codex.requirements.toml"
	legacyCodexRequirementsFile  = "requirements.toml"
	codexManagedConfigFile       = "codex.managed_config.toml"
	legacyCodexManagedConfigFile = "managed_config.toml"
)

// write lands the merged document and any companion files on disk.
func (s *Syncer) write(doc *mcp.Document, src *sources, target string, layout agent.Layout, ctx agentContext, opts Options) error {
	if opts.Global {
		return s.writeGlobal(doc, src, target, ctx, opts)
	}
	return s.writeProject(doc, src, target, layout, ctx)
}

func (s *Syncer) writeGlobal(doc *mcp.Document, src *sources, target string, ctx agentContext, opts Options) error {
	switch {
	case ctx.isClaudeCode:
		return s.writeClaudeCodeGlobal(doc, src.settings, target, ctx.scope)

	case ctx.isCodex:
		built, err := s.buildCodexGlobal(target, doc, src.codex)
		if err != nil {
			return err
		}
		s.logger.Info("writing codex settings", "path", target)
		if err := settings.WriteCodexSettings(target, built); err != nil {
			return err
		}
		if opts.CodexRequirements {
			if err := s.writeCodexSystemFile("requirements", codexRequirementsFile, legacyCodexRequirementsFile, agent.CodexRequirementsPath()); err != nil {
				return err
			}
		}
		if opts.CodexManagedConfig {
			if err := s.writeCodexSystemFile("managed_config", codexManagedConfigFile, legacyCodexManagedConfigFile, agent.CodexManagedConfigPath()); err != nil {
				return err
			}
		}
		return nil

	default:
		s.logger.Info("writing updated configuration", "path", target)
		return parser.WriteDocument(target, doc)
	}
}

func (s *Syncer) writeClaudeCodeGlobal(doc *mcp.Document, src *settings.Settings, target string, scope agent.Scope) error {
	settingsPath := s.claudeCodeSettingsPath(scope)
	built, err := buildClaudeCodeSettings(settingsPath, src)
	if err != nil {
		return err
	}

	s.logger.Info("writing MCP servers", "path", target)
	if err := parser.WriteDocument(target, doc); err != nil {
		return err
	}

	s.logger.Info("writing settings", "path", settingsPath)
	return settings.WriteSettings(settingsPath, built)
}

func (s *Syncer) writeProject(doc *mcp.Document, src *sources, target string, layout agent.Layout, ctx agentContext) error {
	switch {
	case ctx.isClaudeCode && ctx.scope == agent.ScopeLocal:
		return s.writeClaudeCodeLocal(doc, src.settings, target)

	case ctx.isClaude:
		return s.writeClaudeProject(doc, src.settings, target, layout)

	case ctx.isGemini:
		s.logger.Info("writing gemini settings", "path", target)
		return parser.WriteDocument(target, doc)

	case ctx.isCodex:
		built := buildCodexProject(doc, src.codex)
		s.logger.Info("writing merged settings and MCP servers", "path", layout.ProjectSettings)
		return settings.WriteCodexSettings(layout.ProjectSettings, built)

	default:
		s.logger.Info("writing MCP servers", "path", target)
		sf := &mcp.ServersFile{Servers: doc.EnsureServers()}
		if err := parser.WriteServersFile(target, sf); err != nil {
			return err
		}
		if src.settings != nil && layout.ProjectSettings != "" {
			s.logger.Info("writing settings", "path", layout.ProjectSettings)
			return settings.WriteSettings(layout.ProjectSettings, src.settings.WithoutServers())
		}
		return nil
	}
}

// writeClaudeCodeLocal writes the per-project servers into
// ~/.claude.json and, when the source carries settings, merges them
// into .claude/settings.local.json.
func (s *Syncer) writeClaudeCodeLocal(doc *mcp.Document, src *settings.Settings, target string) error {
	s.logger.Info("writing local-scoped MCP servers", "path", target)
	if err := parser.WriteDocument(target, doc); err != nil {
		return err
	}

	if !src.HasContent() {
		return nil
	}

	localPath := s.claudeCodeLocalSettingsPath()
	built, err := buildClaudeCodeSettings(localPath, src.WithoutServers())
	if err != nil {
		return err
	}
	s.logger.Info("writing settings", "path", localPath)
	return settings.WriteSettings(localPath, built)
}

// writeClaudeProject writes .mcp.json when servers are present and
// merges the source settings into the project settings file.
func (s *Syncer) writeClaudeProject(doc *mcp.Document, src *settings.Settings, target string, layout agent.Layout) error {
	if doc.Servers != nil {
		s.logger.Info("writing MCP servers", "path", target)
		sf := &mcp.ServersFile{Servers: doc.Servers}
		if err := parser.WriteServersFile(target, sf); err != nil {
			return err
		}
	}

	if layout.ProjectSettings == "" || !src.HasContent() {
		return nil
	}

	built, err := buildClaudeCodeSettings(layout.ProjectSettings, src.WithoutServers())
	if err != nil {
		return err
	}
	s.logger.Info("writing settings", "path", layout.ProjectSettings)
	return settings.WriteSettings(layout.ProjectSettings, built)
}

// buildClaudeCodeSettings merges the source settings into whatever the
// settings file already holds. Servers never land in settings files.
func buildClaudeCodeSettings(path string, source *settings.Settings) (*settings.Settings, error) {
	existing, err := settings.ReadSettings(path)
	if err != nil {
		return nil, err
	}

	out := existing
	if out == nil {
		out = &settings.Settings{}
	}
	out.MergeFrom(source)
	out.Servers = nil
	return out, nil
}

// buildCodexGlobal layers the existing target TOML, the source Codex
// settings, and the converted MCP servers into one settings value. The
// server maps merge with later sources winning per key.
func (s *Syncer) buildCodexGlobal(target string, doc *mcp.Document, source *settings.CodexSettings) (*settings.CodexSettings, error) {
	existing, err := settings.ReadCodexSettings(target)
	if err != nil {
		return nil, err
	}

	out := existing
	if out == nil {
		out = &settings.CodexSettings{}
	}
	out.MergeFrom(source)

	merged := out.Servers
	if merged == nil {
		merged = make(map[string]map[string]any)
	}
	if source != nil {
		overlayServerTables(merged, cloneServerTables(source.Servers))
	}
	if doc.Servers != nil {
		overlayServerTables(merged, settings.ConvertServers(doc.Servers))
	}
	if len(merged) == 0 {
		merged = nil
	}
	out.Servers = merged
	return out, nil
}

// buildCodexProject renders the project-local Codex config: the source
// settings with the converted MCP servers merged over their server map.
func buildCodexProject(doc *mcp.Document, source *settings.CodexSettings) *settings.CodexSettings {
	out := &settings.CodexSettings{}
	out.MergeFrom(source)
	if source != nil {
		out.Servers = cloneServerTables(source.Servers)
	}

	if doc.Servers != nil {
		merged := out.Servers
		if merged == nil {
			merged = make(map[string]map[string]any)
		}
		overlayServerTables(merged, settings.ConvertServers(doc.Servers))
		out.Servers = merged
	}
	if len(out.Servers) == 0 {
		out.Servers = nil
	}
	return out
}

// overlayServerTables merges overlay server tables into target, deep
// merging same-name tables.
func overlayServerTables(target, overlay map[string]map[string]any) {
	for name, table := range overlay {
		existing, ok := target[name]
		if !ok {
			target[name] = table
			continue
		}
		translate.DeepMergeMaps(existing, table)
	}
}

func cloneServerTables(in map[string]map[string]any) map[string]map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]map[string]any, len(in))
	for name, table := range in {
		clone := make(map[string]any, len(table))
		for k, v := range table {
			clone[k] = v
		}
		out[name] = clone
	}
	return out
}

// readCodexSystemFile locates and parses a Codex system file source in
// the config directory, preferring the codex-prefixed name.
func (s *Syncer) readCodexSystemFile(kind, preferred, legacy string) (string, map[string]any, error) {
	preferredPath := filepath.Join(s.configDir, preferred)
	legacyPath := filepath.Join(s.configDir, legacy)

	path := preferredPath
	if !fileExists(preferredPath) && fileExists(legacyPath) {
		path = legacyPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, errors.Newf("Codex %s file not found. Create %s (preferred) or %s", kind, preferredPath, legacyPath)
		}
		return "", nil, errors.Wrapf(err, "reading %s", path)
	}

	value, err := translate.TOMLToJSONValue(data)
	if err != nil {
		return "", nil, errors.Wrapf(err, "parsing %s", path)
	}
	return path, value, nil
}

// writeCodexSystemFile copies a Codex system file from the config
// directory to its system-wide location.
func (s *Syncer) writeCodexSystemFile(kind, preferred, legacy, target string) error {
	source, value, err := s.readCodexSystemFile(kind, preferred, legacy)
	if err != nil {
		return err
	}

	s.logger.Info("writing codex "+kind, "source", source, "target", target)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errors.Wrapf(err, "creating directory for %s", target)
	}
	return fileutil.AtomicWriteTOML(target, value)
}

// printDryRun renders what a write would have produced.
func (s *Syncer) printDryRun(doc *mcp.Document, src *sources, target string, ctx agentContext, opts Options) error {
	s.logger.Info("dry run mode, not writing changes")

	if opts.Global {
		return s.printGlobalDryRun(doc, src, target, ctx, opts)
	}
	if ctx.isClaudeCode && ctx.scope == agent.ScopeLocal {
		return s.printClaudeCodeSections(doc, src.settings, target, s.claudeCodeLocalSettingsPath())
	}
	return s.printProjectDryRun(doc, src, ctx)
}

func (s *Syncer) printGlobalDryRun(doc *mcp.Document, src *sources, target string, ctx agentContext, opts Options) error {
	if ctx.isCodex {
		return s.printCodexGlobalDryRun(doc, src.codex, target, opts)
	}
	if ctx.isClaudeCode {
		return s.printClaudeCodeSections(doc, src.settings, target, s.claudeCodeSettingsPath(ctx.scope))
	}

	s.printHeader("\n--- Result (dry run): %s ---\n", target)
	return s.printJSON(doc)
}

func (s *Syncer) printProjectDryRun(doc *mcp.Document, src *sources, ctx agentContext) error {
	switch {
	case ctx.isCodex:
		s.printHeader("\n--- Settings with MCP servers (%s) ---\n", filepath.Join(".codex", "config.toml"))
		return s.printTOML(buildCodexProject(doc, src.codex).ToMap())

	case ctx.isGemini:
		s.printHeader("\n--- Gemini settings (%s) ---\n", filepath.Join(".gemini", "settings.json"))
		return s.printJSON(doc)

	default:
		s.printHeader("\n--- MCP servers (.mcp.json) ---\n")
		sf := &mcp.ServersFile{Servers: doc.Servers}
		if sf.Servers == nil {
			sf.Servers = make(map[string]*mcp.Server)
		}
		if err := s.printJSON(sf); err != nil {
			return err
		}

		if src.settings != nil {
			s.printHeader("\n--- Settings (%s) ---\n", filepath.Join(".claude", "settings.json"))
			return s.printJSON(src.settings.WithoutServers())
		}
		return nil
	}
}

func (s *Syncer) printClaudeCodeSections(doc *mcp.Document, src *settings.Settings, target, settingsPath string) error {
	built, err := buildClaudeCodeSettings(settingsPath, src)
	if err != nil {
		return err
	}

	s.printHeader("\n--- MCP servers (%s) ---\n", target)
	if err := s.printJSON(doc); err != nil {
		return err
	}

	s.printHeader("\n--- Settings (%s) ---\n", settingsPath)
	return s.printJSON(built)
}

func (s *Syncer) printCodexGlobalDryRun(doc *mcp.Document, source *settings.CodexSettings, target string, opts Options) error {
	s.printHeader("\n--- Settings with MCP servers (%s) ---\n", target)
	built, err := s.buildCodexGlobal(target, doc, source)
	if err != nil {
		return err
	}
	if err := s.printTOML(built.ToMap()); err != nil {
		return err
	}

	if opts.CodexRequirements {
		_, value, err := s.readCodexSystemFile("requirements", codexRequirementsFile, legacyCodexRequirementsFile)
		if err != nil {
			return err
		}
		s.printHeader("\n--- requirements.toml (%s) ---\n", agent.CodexRequirementsPath())
		if err := s.printTOML(value); err != nil {
			return err
		}
	}

	if opts.CodexManagedConfig {
		_, value, err := s.readCodexSystemFile("managed_config", codexManagedConfigFile, legacyCodexManagedConfigFile)
		if err != nil {
			return err
		}
		s.printHeader("\n--- managed_config.toml (%s) ---\n", agent.CodexManagedConfigPath())
		if err := s.printTOML(value); err != nil {
			return err
		}
	}
	return nil
}

// headerColor styles the dry-run section headers. Disabled
// automatically when stdout is not a terminal.
var headerColor = color.New(color.FgCyan)

func (s *Syncer) printHeader(format string, args ...any) {
	headerColor.Fprintf(s.out, format, args...)
}

func (s *Syncer) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding dry run output")
	}
	fmt.Fprintln(s.out, string(data))
	return nil
}

func (s *Syncer) printTOML(v any) error {
	data, err := toml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "encoding dry run output")
	}
	fmt.Fprintln(s.out, string(data))
	return nil
}
