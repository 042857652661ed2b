package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setupConfigDir points the claudius config directory at a temp
// directory and returns it.
func setupConfigDir(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	dir := filepath.Join(tmp, "claudius")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("creating config dir: %v", err)
	}
	return dir
}

func writeConfigFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

// executeValidate runs the validate command body with the given flag
// values and returns its output.
func executeValidate(t *testing.T, agentFlag string, strict bool) (string, error) {
	t.Helper()

	origAgent, origStrict, origConfig := validateAgent, validateStrict, appConfig
	defer func() {
		validateAgent, validateStrict, appConfig = origAgent, origStrict, origConfig
	}()
	validateAgent = agentFlag
	validateStrict = strict
	appConfig = nil

	var buf bytes.Buffer
	configValidateCmd.SetOut(&buf)
	defer configValidateCmd.SetOut(nil)

	err := runConfigValidate(configValidateCmd, nil)
	return buf.String(), err
}

func TestRunConfigValidate_Passes(t *testing.T) {
	dir := setupConfigDir(t)
	writeConfigFile(t, dir, "mcpServers.json",
		`{"mcpServers": {"fs": {"command": "npx", "args": ["-y", "server-filesystem"]}}}`)

	out, err := executeValidate(t, "", false)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out, "Configuration validation passed") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestRunConfigValidate_MissingServersFile(t *testing.T) {
	setupConfigDir(t)

	_, err := executeValidate(t, "", false)
	if err == nil {
		t.Fatal("expected an error for a missing mcpServers.json")
	}
	if !strings.Contains(err.Error(), "mcpServers.json not found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunConfigValidate_ServerWithoutTransport(t *testing.T) {
	dir := setupConfigDir(t)
	writeConfigFile(t, dir, "mcpServers.json",
		`{"mcpServers": {"broken": {"env": {"KEY": "value"}}}}`)

	out, err := executeValidate(t, "", false)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out, "Configuration validation warnings (1):") {
		t.Errorf("expected a warning header, got %q", out)
	}
	if !strings.Contains(out, "mcpServers.broken must define either command or url") {
		t.Errorf("expected a transport warning, got %q", out)
	}
}

func TestRunConfigValidate_Strict(t *testing.T) {
	dir := setupConfigDir(t)
	writeConfigFile(t, dir, "mcpServers.json",
		`{"mcpServers": {"broken": {}}}`)

	_, err := executeValidate(t, "", true)
	if err == nil {
		t.Fatal("expected --strict to fail on warnings")
	}
	if !strings.Contains(err.Error(), "Validation failed due to warnings (--strict)") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunConfigValidate_LegacySettingsWarning(t *testing.T) {
	dir := setupConfigDir(t)
	writeConfigFile(t, dir, "mcpServers.json",
		`{"mcpServers": {"fs": {"command": "npx"}}}`)
	writeConfigFile(t, dir, "settings.json",
		`{"model": "claude-sonnet-4-5"}`)

	out, err := executeValidate(t, "claude", false)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out, "Using legacy settings.json (consider migrating to claude.settings.json)") {
		t.Errorf("expected a legacy settings warning, got %q", out)
	}
}

func TestRunConfigValidate_LegacyManagedConfigWarning(t *testing.T) {
	dir := setupConfigDir(t)
	writeConfigFile(t, dir, "mcpServers.json",
		`{"mcpServers": {"fs": {"command": "npx"}}}`)
	writeConfigFile(t, dir, "managed_config.toml",
		"approval_policy = \"never\"\n")

	out, err := executeValidate(t, "codex", false)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out, "Using legacy managed_config.toml (consider migrating to codex.managed_config.toml)") {
		t.Errorf("expected a legacy managed_config warning, got %q", out)
	}
}

func TestRunConfigValidate_UnknownClaudeField(t *testing.T) {
	dir := setupConfigDir(t)
	writeConfigFile(t, dir, "mcpServers.json",
		`{"mcpServers": {"fs": {"command": "npx"}}}`)
	writeConfigFile(t, dir, "claude.settings.json",
		`{"model": "claude-sonnet-4-5", "permisions": {"allow": ["Bash"]}}`)

	out, err := executeValidate(t, "claude", false)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out, "Configuration validation warnings") {
		t.Errorf("expected a warning for the misspelled field, got %q", out)
	}
}
