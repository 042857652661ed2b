package agent

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/thoreinstein/claudius/internal/paths"
)

// Environment variables that override managed file locations.
const (
	EnvClaudeCodeManagedDir   = "CLAUDIUS_CLAUDE_CODE_MANAGED_DIR"
	EnvCodexRequirementsPath  = "CLAUDIUS_CODEX_REQUIREMENTS_PATH"
	EnvCodexManagedConfigPath = "CLAUDIUS_CODEX_MANAGED_CONFIG_PATH"
	EnvGeminiSystemSettings   = "GEMINI_CLI_SYSTEM_SETTINGS_PATH"
)

// Layout describes where a sync operation reads from and writes to for a
// given agent and scope.
type Layout struct {
	// Target is the primary config file the sync writes.
	Target string

	// ProjectSettings is the secondary settings file written in
	// project-local mode, empty when the agent has none.
	ProjectSettings string

	// SettingsSource is the settings file read from the claudius
	// config directory.
	SettingsSource string
}

// Resolve computes the file layout for an agent. An empty agent means no
// explicit selection was made and follows the Claude Code defaults.
//
// In global mode an explicitly selected Claude targets the desktop
// application config, while the default targets ~/.claude.json.
func Resolve(a Agent, global bool, configDir, homeDir, projectDir string) Layout {
	if global {
		return resolveGlobal(a, configDir, homeDir)
	}
	return resolveProject(a, configDir, projectDir)
}

func resolveGlobal(a Agent, configDir, homeDir string) Layout {
	switch a {
	case Claude:
		return Layout{
			Target:         filepath.Join(systemConfigDir(homeDir), "Claude", "claude_desktop_config.json"),
			SettingsSource: ClaudeSettingsSource(configDir),
		}
	case Gemini:
		return Layout{
			Target:         filepath.Join(homeDir, ".gemini", "settings.json"),
			SettingsSource: filepath.Join(configDir, paths.GeminiSettingsFile),
		}
	case Codex:
		return Layout{
			Target:         filepath.Join(homeDir, ".codex", "config.toml"),
			SettingsSource: filepath.Join(configDir, paths.CodexSettingsFile),
		}
	default:
		return Layout{
			Target:         filepath.Join(homeDir, ".claude.json"),
			SettingsSource: ClaudeSettingsSource(configDir),
		}
	}
}

func resolveProject(a Agent, configDir, projectDir string) Layout {
	mcpPath := filepath.Join(projectDir, ".mcp.json")

	switch a {
	case Gemini:
		return Layout{
			Target:         filepath.Join(projectDir, ".gemini", "settings.json"),
			SettingsSource: filepath.Join(configDir, paths.GeminiSettingsFile),
		}
	case Codex:
		return Layout{
			Target:          mcpPath,
			ProjectSettings: filepath.Join(projectDir, ".codex", "config.toml"),
			SettingsSource:  filepath.Join(configDir, paths.CodexSettingsFile),
		}
	default:
		return Layout{
			Target:          mcpPath,
			ProjectSettings: filepath.Join(projectDir, ".claude", "settings.json"),
			SettingsSource:  ClaudeSettingsSource(configDir),
		}
	}
}

// ClaudeSettingsSource picks the Claude settings input file. The modern
// claude.settings.json wins; the legacy settings.json is honored when it
// is the only one present.
func ClaudeSettingsSource(configDir string) string {
	preferred := filepath.Join(configDir, paths.ClaudeSettingsFile)
	if fileExists(preferred) {
		return preferred
	}

	legacy := filepath.Join(configDir, paths.LegacySettingsFile)
	if fileExists(legacy) {
		return legacy
	}

	return preferred
}

// SkillsTargetDir returns where synced skills land for an agent.
func SkillsTargetDir(a Agent, global bool, homeDir, projectDir string) string {
	base := projectDir
	if global || base == "" {
		base = homeDir
	}

	switch a {
	case Gemini:
		return filepath.Join(base, ".gemini", "skills")
	case Codex:
		return filepath.Join(base, ".codex", "skills")
	default:
		return filepath.Join(base, ".claude", "skills")
	}
}

// ClaudeCodeManagedSettingsPath returns the system-wide managed settings
// file for Claude Code, honoring the override env var.
func ClaudeCodeManagedSettingsPath() string {
	return filepath.Join(claudeCodeManagedDir(), "managed-settings.json")
}

// ClaudeCodeManagedMCPPath returns the system-wide managed MCP servers
// file for Claude Code, honoring the override env var.
func ClaudeCodeManagedMCPPath() string {
	return filepath.Join(claudeCodeManagedDir(), "managed-mcp.json")
}

func claudeCodeManagedDir() string {
	if dir := envOverride(EnvClaudeCodeManagedDir); dir != "" {
		return dir
	}
	if runtime.GOOS == "darwin" {
		return "/Library/Application Support/ClaudeCode"
	}
	return "/etc/claude-code"
}

// CodexRequirementsPath returns the system-wide Codex requirements file,
// honoring the override env var.
func CodexRequirementsPath() string {
	if p := envOverride(EnvCodexRequirementsPath); p != "" {
		return p
	}
	return "/etc/codex/requirements.toml"
}

// CodexManagedConfigPath returns the system-wide Codex managed config
// file, honoring the override env var.
func CodexManagedConfigPath() string {
	if p := envOverride(EnvCodexManagedConfigPath); p != "" {
		return p
	}
	return "/etc/codex/managed_config.toml"
}

// GeminiSystemSettingsPath returns the system-wide Gemini CLI settings
// file, honoring the override env var.
func GeminiSystemSettingsPath() string {
	if p := envOverride(EnvGeminiSystemSettings); p != "" {
		return p
	}
	if runtime.GOOS == "darwin" {
		return "/Library/Application Support/GeminiCli/settings.json"
	}
	return "/etc/gemini-cli/settings.json"
}

// envOverride reads an override variable, ignoring empty or
// whitespace-only values.
func envOverride(name string) string {
	return strings.TrimSpace(os.Getenv(name))
}

// systemConfigDir mirrors the per-OS user configuration root used by
// desktop applications.
func systemConfigDir(homeDir string) string {
	if runtime.GOOS == "darwin" {
		return filepath.Join(homeDir, "Library", "Application Support")
	}
	if dir := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); dir != "" {
		return dir
	}
	return filepath.Join(homeDir, ".config")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
