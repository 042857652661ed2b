package syncer

import (
	"github.com/thoreinstein/claudius/internal/agent"
	"github.com/thoreinstein/claudius/internal/backup"
	"github.com/thoreinstein/claudius/internal/errors"
	"github.com/thoreinstein/claudius/internal/mcp"
	"github.com/thoreinstein/claudius/internal/mcp/parser"
	"github.com/thoreinstein/claudius/internal/settings"
	"github.com/thoreinstein/claudius/internal/validator"
)

// sources holds everything read from the claudius config directory for
// one sync. Codex syncs carry TOML settings, Claude Code and Gemini
// carry JSON settings, and the Claude desktop carries servers only.
type sources struct {
	servers  *mcp.ServersFile
	settings *settings.Settings
	codex    *settings.CodexSettings
}

// readSources loads the server definitions and the agent's settings
// source. Settings files are validated first; warnings are logged and
// never block the sync.
func (s *Syncer) readSources(serversPath, settingsPath string, ctx agentContext) (*sources, error) {
	s.logger.Debug("reading MCP servers configuration", "path", serversPath)
	sf, err := parser.ReadServersFile(serversPath)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("found MCP servers to sync", "count", len(sf.Servers))

	src := &sources{servers: sf}

	switch {
	case ctx.isCodex:
		cs, err := settings.ReadCodexSettings(settingsPath)
		if err != nil {
			return nil, err
		}
		src.codex = cs

	case ctx.isClaudeDesktop:
		// The desktop config carries MCP servers only.

	default:
		if err := s.logValidationWarnings(settingsPath); err != nil {
			return nil, err
		}
		st, err := settings.ReadSettings(settingsPath)
		if err != nil {
			return nil, err
		}
		src.settings = st
	}

	return src, nil
}

// logValidationWarnings runs pre-sync validation on a settings file and
// logs any findings.
func (s *Syncer) logValidationWarnings(path string) error {
	result, err := validator.PreValidate(path)
	if err != nil {
		return err
	}
	if result.HasWarnings() {
		s.logger.Warn("configuration validation warnings", "path", path)
		for _, warning := range result.Warnings {
			s.logger.Warn("  - " + warning)
		}
	}
	return nil
}

// readTarget loads the target document. A global Codex sync starts from
// an empty document since its target is TOML and read separately.
func (s *Syncer) readTarget(target string, ctx agentContext, global bool) (*mcp.Document, error) {
	if global && ctx.isCodex {
		return mcp.NewDocument(), nil
	}
	return parser.ReadDocument(target)
}

// handleBackup creates timestamped copies of every file the sync may
// overwrite. A failed backup prompts before continuing.
func (s *Syncer) handleBackup(target string, layout agent.Layout, ctx agentContext, opts Options, src *sources) error {
	for _, path := range s.collectBackupPaths(target, layout, ctx, opts, src) {
		if !fileExists(path) {
			continue
		}

		s.logger.Debug("creating backup", "path", path)
		backupPath, err := backup.Create(path)
		if err != nil {
			s.logger.Warn("failed to create backup", "path", path, "error", err)
			ok, perr := s.prompter.Confirm("Continue anyway?")
			if perr != nil {
				return perr
			}
			if !ok {
				return errors.ErrCancelled
			}
			continue
		}
		s.logger.Debug("backup created", "path", backupPath)
	}
	return nil
}

// collectBackupPaths lists the files this sync can overwrite.
func (s *Syncer) collectBackupPaths(target string, layout agent.Layout, ctx agentContext, opts Options, src *sources) []string {
	// A project-local Codex sync writes only its TOML settings file.
	if ctx.isCodex && !opts.Global {
		if layout.ProjectSettings == "" {
			return nil
		}
		return []string{layout.ProjectSettings}
	}

	backupPaths := []string{target}

	if ctx.isCodex && opts.Global {
		if opts.CodexRequirements {
			backupPaths = append(backupPaths, agent.CodexRequirementsPath())
		}
		if opts.CodexManagedConfig {
			backupPaths = append(backupPaths, agent.CodexManagedConfigPath())
		}
	}

	if ctx.isClaudeCode && opts.Global {
		return append(backupPaths, s.claudeCodeSettingsPath(ctx.scope))
	}

	if ctx.isClaudeCode && !opts.Global && ctx.scope == agent.ScopeLocal && src.settings.HasContent() {
		return append(backupPaths, s.claudeCodeLocalSettingsPath())
	}

	if ctx.isClaude && !opts.Global && src.settings.HasContent() && layout.ProjectSettings != "" {
		backupPaths = append(backupPaths, layout.ProjectSettings)
	}

	return backupPaths
}
