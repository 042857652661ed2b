package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/thoreinstein/claudius/internal/errors"
)

// Source file names inside the claudius config directory.
const (
	// MCPServersFile holds MCP server definitions.
	MCPServersFile = "mcpServers.json"

	// ClaudeSettingsFile holds Claude settings.
	ClaudeSettingsFile = "claude.settings.json"

	// LegacySettingsFile is the pre-rename Claude settings file, still read
	// when ClaudeSettingsFile is absent.
	LegacySettingsFile = "settings.json"

	// CodexSettingsFile holds Codex settings (TOML).
	CodexSettingsFile = "codex.settings.toml"

	// GeminiSettingsFile holds Gemini settings.
	GeminiSettingsFile = "gemini.settings.json"

	// AppConfigFile configures claudius itself.
	AppConfigFile = "config.toml"
)

// Sentinel errors for path resolution, chained to errors.ErrNotFound
// so callers can match the broad condition.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.Wrap(errors.ErrNotFound, "home directory")

	// ErrConfigDirNotFound indicates the claudius config directory could not be determined.
	ErrConfigDirNotFound = errors.Wrap(errors.ErrNotFound, "config directory")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory.
// This is a thin wrapper around os.UserHomeDir for consistency.
// Note: It returns an empty string on error.
// Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// $XDG_CONFIG_HOME is honored when set; otherwise the platform default from
// the xdg library is used (~/.config on Linux).
func ConfigHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	return xdg.ConfigHome
}

// ConfigDir returns the claudius configuration directory:
// $XDG_CONFIG_HOME/claudius, falling back to ~/.config/claudius.
func ConfigDir() (string, error) {
	base := ConfigHome()
	if base == "" {
		return "", ErrConfigDirNotFound
	}
	return filepath.Join(base, "claudius"), nil
}

// MCPServersPath returns the path to the MCP server definitions file.
func MCPServersPath() (string, error) {
	return configFile(MCPServersFile)
}

// ClaudeSettingsPath returns the path to the Claude settings source file.
func ClaudeSettingsPath() (string, error) {
	return configFile(ClaudeSettingsFile)
}

// LegacySettingsPath returns the path to the legacy settings.json source file.
func LegacySettingsPath() (string, error) {
	return configFile(LegacySettingsFile)
}

// CodexSettingsPath returns the path to the Codex settings source file.
func CodexSettingsPath() (string, error) {
	return configFile(CodexSettingsFile)
}

// GeminiSettingsPath returns the path to the Gemini settings source file.
func GeminiSettingsPath() (string, error) {
	return configFile(GeminiSettingsFile)
}

// AppConfigPath returns the path to the claudius app config file.
func AppConfigPath() (string, error) {
	return configFile(AppConfigFile)
}

// CommandsDir returns the directory holding custom slash command files.
func CommandsDir() (string, error) {
	return configFile("commands")
}

// RulesDir returns the directory holding context rule files.
func RulesDir() (string, error) {
	return configFile("rules")
}

// SkillsDir returns the directory holding skill definitions.
func SkillsDir() (string, error) {
	return configFile("skills")
}

func configFile(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
