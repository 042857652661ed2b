// Package syncer orchestrates the read, merge, and write pipeline that
// projects claudius source configuration into agent target files. It
// supports global and project-local targets for every agent, Claude Code
// settings scopes, and system-wide Codex and Gemini files.
package syncer

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/claudius/internal/agent"
	"github.com/thoreinstein/claudius/internal/cli/prompt"
	"github.com/thoreinstein/claudius/internal/config"
	"github.com/thoreinstein/claudius/internal/errors"
	"github.com/thoreinstein/claudius/internal/paths"
)

// Options controls one sync invocation.
type Options struct {
	// ConfigPath overrides the source mcpServers.json location.
	ConfigPath string

	// TargetConfigPath overrides the target config file location.
	TargetConfigPath string

	// DryRun prints the merged results without writing anything.
	DryRun bool

	// Backup creates timestamped copies of target files before writing.
	Backup bool

	// Global targets the user-level config instead of the project.
	Global bool

	// Agent explicitly selects the agent, empty to use the configured
	// default.
	Agent agent.Agent

	// Scope selects the Claude Code settings file written. Only valid
	// with the claude-code agent.
	Scope agent.Scope

	// CodexRequirements also syncs the system-wide Codex requirements
	// file. Requires the codex agent in global mode.
	CodexRequirements bool

	// CodexManagedConfig also syncs the system-wide Codex managed
	// config. Requires the codex agent in global mode.
	CodexManagedConfig bool

	// GeminiSystem targets the system-wide Gemini settings file.
	// Requires the gemini agent in global mode.
	GeminiSystem bool
}

// Syncer runs sync operations against a fixed filesystem layout.
type Syncer struct {
	cfg      *config.Config
	logger   *slog.Logger
	prompter *prompt.Prompter
	out      io.Writer

	configDir  string
	homeDir    string
	projectDir string
}

// New builds a Syncer rooted at the claudius config directory, the
// user's home directory, and the current working directory.
func New(cfg *config.Config, logger *slog.Logger, prompter *prompt.Prompter, out io.Writer) (*Syncer, error) {
	configDir, err := paths.ConfigDir()
	if err != nil {
		return nil, err
	}
	homeDir, err := paths.ResolveHome()
	if err != nil {
		return nil, err
	}
	projectDir, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "determining current directory")
	}

	return &Syncer{
		cfg:        cfg,
		logger:     logger,
		prompter:   prompter,
		out:        out,
		configDir:  configDir,
		homeDir:    homeDir,
		projectDir: projectDir,
	}, nil
}

// Run executes a sync. In global mode with no agent selection it syncs
// every agent that has a settings source file; otherwise it syncs the
// selected or configured agent.
func (s *Syncer) Run(opts Options) error {
	if err := s.normalizeOptions(&opts); err != nil {
		return err
	}

	if s.shouldSyncAll(opts) {
		return s.syncAll(opts)
	}

	a := s.effectiveAgent(opts.Agent)
	if err := s.syncOne(a, opts); err != nil {
		return err
	}
	if !opts.DryRun {
		s.syncCommands(opts.Global)
		s.syncSkills(a, opts.Global)
	}
	return nil
}

// normalizeOptions validates flag combinations and applies the scope's
// implied global mode and the Gemini system target.
func (s *Syncer) normalizeOptions(opts *Options) error {
	effective := s.effectiveAgent(opts.Agent)

	if opts.Scope != "" {
		if effective != agent.ClaudeCode {
			return errors.New("--scope is only supported with --agent claude-code")
		}
		switch opts.Scope {
		case agent.ScopeManaged, agent.ScopeUser:
			opts.Global = true
		case agent.ScopeProject, agent.ScopeLocal:
			opts.Global = false
		}
	}

	if opts.CodexRequirements {
		if effective != agent.Codex {
			return errors.New("--codex-requirements is only supported with --agent codex")
		}
		if !opts.Global {
			return errors.New("--codex-requirements requires --global (Codex requirements are system-wide)")
		}
	}
	if opts.CodexManagedConfig {
		if effective != agent.Codex {
			return errors.New("--codex-managed-config is only supported with --agent codex")
		}
		if !opts.Global {
			return errors.New("--codex-managed-config requires --global (Codex managed_config.toml is system-wide)")
		}
	}
	if opts.GeminiSystem {
		if effective != agent.Gemini {
			return errors.New("--gemini-system is only supported with --agent gemini")
		}
		if !opts.Global {
			return errors.New("--gemini-system requires --global (Gemini system settings are system-wide)")
		}
		if opts.TargetConfigPath == "" {
			opts.TargetConfigPath = agent.GeminiSystemSettingsPath()
		}
	}

	return nil
}

// shouldSyncAll reports whether this invocation is a plain global sync
// with nothing narrowing it to a single agent.
func (s *Syncer) shouldSyncAll(opts Options) bool {
	if !opts.Global || opts.Agent != "" || opts.Scope != "" {
		return false
	}
	if opts.ConfigPath != "" || opts.TargetConfigPath != "" {
		return false
	}
	if opts.CodexRequirements || opts.CodexManagedConfig || opts.GeminiSystem {
		return false
	}
	if s.cfg != nil {
		if _, ok := s.cfg.DefaultAgent(); ok {
			return false
		}
	}
	return true
}

// effectiveAgent resolves the agent for a single sync: the explicit
// selection wins, then the configured default, then the built-in Claude
// default.
func (s *Syncer) effectiveAgent(override agent.Agent) agent.Agent {
	if override != "" {
		return override
	}
	if s.cfg != nil {
		if a, ok := s.cfg.DefaultAgent(); ok {
			return a
		}
	}
	return agent.Claude
}

// syncAll syncs every agent detected in the config directory.
func (s *Syncer) syncAll(opts Options) error {
	available := agent.DetectAvailable(s.configDir)
	if len(available) == 0 {
		s.logger.Warn("no agent configuration files found in config directory")
		if !opts.DryRun {
			s.syncCommands(opts.Global)
		}
		return nil
	}

	names := make([]string, len(available))
	for i, a := range available {
		names[i] = displayName(a)
	}
	fmt.Fprintf(s.out, "Found configurations for %d agent(s): %s\n", len(available), strings.Join(names, ", "))

	for _, a := range available {
		fmt.Fprintf(s.out, "\nSyncing agent: %s\n", displayName(a))
		fmt.Fprintln(s.out, strings.Repeat("=", 47))

		if err := s.syncOne(a, opts); err != nil {
			return errors.Wrapf(err, "syncing agent %s", a)
		}
		if !opts.DryRun {
			s.syncSkills(a, opts.Global)
		}
	}

	if !opts.DryRun {
		s.syncCommands(opts.Global)
	}
	fmt.Fprintln(s.out, "\nAll agent configurations synced successfully")
	return nil
}

// syncOne runs the read, backup, merge, and write pipeline for a single
// agent.
func (s *Syncer) syncOne(a agent.Agent, opts Options) error {
	ctx := newAgentContext(a, opts.Scope)
	layout := agent.Resolve(a, opts.Global, s.configDir, s.homeDir, s.projectDir)
	target := s.targetPath(ctx, layout, opts)

	serversPath := opts.ConfigPath
	if serversPath == "" {
		serversPath = filepath.Join(s.configDir, paths.MCPServersFile)
	}

	src, err := s.readSources(serversPath, layout.SettingsSource, ctx)
	if err != nil {
		return err
	}

	doc, err := s.readTarget(target, ctx, opts.Global)
	if err != nil {
		return err
	}

	if opts.Backup {
		if err := s.handleBackup(target, layout, ctx, opts, src); err != nil {
			return err
		}
	}

	if err := s.mergeAll(doc, src, ctx, opts.Global); err != nil {
		return err
	}

	if opts.DryRun {
		return s.printDryRun(doc, src, target, ctx, opts)
	}
	if err := s.write(doc, src, target, layout, ctx, opts); err != nil {
		return err
	}
	s.logger.Info("configuration updated", "target", target)
	return nil
}

// agentContext caches the agent classification a sync branches on.
type agentContext struct {
	agent agent.Agent
	scope agent.Scope

	isCodex         bool
	isGemini        bool
	isClaudeDesktop bool
	isClaudeCode    bool
	isClaude        bool
}

// newAgentContext classifies an agent. The scope only takes effect for
// Claude Code.
func newAgentContext(a agent.Agent, scope agent.Scope) agentContext {
	ctx := agentContext{
		agent:           a,
		isCodex:         a == agent.Codex,
		isGemini:        a == agent.Gemini,
		isClaudeDesktop: a == agent.Claude || a == "",
		isClaudeCode:    a == agent.ClaudeCode,
	}
	ctx.isClaude = ctx.isClaudeDesktop || ctx.isClaudeCode
	if ctx.isClaudeCode {
		ctx.scope = scope
	}
	return ctx
}

// targetPath picks the file the merged document lands in, honoring the
// explicit override and the Claude Code scope targets.
func (s *Syncer) targetPath(ctx agentContext, layout agent.Layout, opts Options) string {
	if opts.TargetConfigPath != "" {
		return opts.TargetConfigPath
	}
	if ctx.isClaudeCode && opts.Global && ctx.scope == agent.ScopeManaged {
		return agent.ClaudeCodeManagedMCPPath()
	}
	if ctx.isClaudeCode && !opts.Global && ctx.scope == agent.ScopeLocal {
		return filepath.Join(s.homeDir, ".claude.json")
	}
	return layout.Target
}

// claudeCodeSettingsPath is where a global Claude Code sync writes its
// settings for the given scope.
func (s *Syncer) claudeCodeSettingsPath(scope agent.Scope) string {
	if scope == agent.ScopeManaged {
		return agent.ClaudeCodeManagedSettingsPath()
	}
	return filepath.Join(s.homeDir, ".claude", "settings.json")
}

// claudeCodeLocalSettingsPath is where a local-scoped Claude Code sync
// writes project settings.
func (s *Syncer) claudeCodeLocalSettingsPath() string {
	return filepath.Join(s.projectDir, ".claude", "settings.local.json")
}

// displayName renders an agent for user-facing output.
func displayName(a agent.Agent) string {
	switch a {
	case agent.Claude:
		return "Claude"
	case agent.ClaudeCode:
		return "Claude Code"
	case agent.Codex:
		return "Codex"
	case agent.Gemini:
		return "Gemini"
	default:
		return string(a)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
