package agent

import (
	"path/filepath"
)

// DetectAvailable reports which agents have a settings source file in the
// claudius config directory. ClaudeCode shares the Claude sources and is
// never reported separately.
func DetectAvailable(configDir string) []Agent {
	var available []Agent

	if fileExists(filepath.Join(configDir, "claude.settings.json")) ||
		fileExists(filepath.Join(configDir, "settings.json")) {
		available = append(available, Claude)
	}
	if fileExists(filepath.Join(configDir, "codex.settings.toml")) {
		available = append(available, Codex)
	}
	if fileExists(filepath.Join(configDir, "gemini.settings.json")) {
		available = append(available, Gemini)
	}

	return available
}
