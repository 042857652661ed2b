package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/claudius/internal/logging"
)

func executeConfigInit(t *testing.T, force bool) string {
	t.Helper()

	origForce := initForce
	defer func() { initForce = origForce }()
	initForce = force

	var buf bytes.Buffer
	configInitCmd.SetOut(&buf)
	defer configInitCmd.SetOut(nil)
	configInitCmd.SetContext(logging.NewContext(t.Context(), logging.ForTest(t)))

	if err := runConfigInit(configInitCmd, nil); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	return buf.String()
}

func TestRunConfigInit(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	out := executeConfigInit(t, false)
	if !strings.Contains(out, "Bootstrapping Claudius configuration at:") {
		t.Errorf("expected the bootstrap header, got %q", out)
	}
	if !strings.Contains(out, "Claudius configuration bootstrapped successfully!") {
		t.Errorf("expected the success message, got %q", out)
	}
	if !strings.Contains(out, "Next steps:") {
		t.Errorf("expected next steps, got %q", out)
	}

	configDir := filepath.Join(tmp, "claudius")
	for _, name := range []string{"mcpServers.json", "claude.settings.json", "config.toml"} {
		if _, err := os.Stat(filepath.Join(configDir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
}

func TestRunConfigInit_PreservesExistingFiles(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	configDir := filepath.Join(tmp, "claudius")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("creating config dir: %v", err)
	}

	custom := `{"mcpServers": {"mine": {"command": "run"}}}`
	serversPath := filepath.Join(configDir, "mcpServers.json")
	if err := os.WriteFile(serversPath, []byte(custom), 0o644); err != nil {
		t.Fatalf("seeding servers file: %v", err)
	}

	executeConfigInit(t, false)

	data, err := os.ReadFile(serversPath)
	if err != nil {
		t.Fatalf("reading servers file: %v", err)
	}
	if string(data) != custom {
		t.Error("expected an existing file to be left untouched without --force")
	}
}
