package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeRule(t *testing.T, configDir, name, content string) {
	t.Helper()
	path := filepath.Join(configDir, "rules", name+".md")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating rules dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing rule %s: %v", name, err)
	}
}

func executeContextList(t *testing.T, tree bool) string {
	t.Helper()

	origTree := listTree
	defer func() { listTree = origTree }()
	listTree = tree

	var buf bytes.Buffer
	contextListCmd.SetOut(&buf)
	defer contextListCmd.SetOut(nil)

	if err := runContextList(contextListCmd, nil); err != nil {
		t.Fatalf("context list failed: %v", err)
	}
	return buf.String()
}

func TestRunContextList_Empty(t *testing.T) {
	setupConfigDir(t)

	out := executeContextList(t, false)
	if !strings.Contains(out, "No rules found in") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestRunContextList_Flat(t *testing.T) {
	dir := setupConfigDir(t)
	writeRule(t, dir, "style", "# Style\n")
	writeRule(t, dir, "testing/unit", "# Unit testing\n")

	out := executeContextList(t, false)
	if !strings.Contains(out, "Rules directory:") {
		t.Errorf("expected the rules directory header, got %q", out)
	}
	if !strings.Contains(out, "Available rules (2):") {
		t.Errorf("expected two rules, got %q", out)
	}
	if !strings.Contains(out, "  - style") || !strings.Contains(out, "  - testing/unit") {
		t.Errorf("expected both rule names, got %q", out)
	}
}

func TestRunContextList_ShowsDescriptions(t *testing.T) {
	dir := setupConfigDir(t)
	writeRule(t, dir, "documented", "---\ndescription: Coding style rules\n---\n# Style\n")

	out := executeContextList(t, false)
	if !strings.Contains(out, "  - documented: Coding style rules") {
		t.Errorf("expected the rule description, got %q", out)
	}
}

func TestRunContextList_Tree(t *testing.T) {
	dir := setupConfigDir(t)
	writeRule(t, dir, "style", "# Style\n")
	writeRule(t, dir, "testing/unit", "# Unit testing\n")

	out := executeContextList(t, true)
	if !strings.Contains(out, "testing/") {
		t.Errorf("expected the testing directory in the tree, got %q", out)
	}
	if !strings.Contains(out, "unit.md") || !strings.Contains(out, "style.md") {
		t.Errorf("expected rule files in the tree, got %q", out)
	}
}
