package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/claudius/internal/cli/prompt"
	"github.com/thoreinstein/claudius/internal/errors"
	"github.com/thoreinstein/claudius/internal/logging"
	"github.com/thoreinstein/claudius/internal/rules"
)

var (
	appendTemplatePath string
	appendPath         string
	appendGlobal       bool
	appendAgent        string
)

func init() {
	f := contextAppendCmd.Flags()
	f.StringVar(&appendTemplatePath, "template-path", "",
		"append a template file instead of a rule")
	f.StringVar(&appendPath, "path", "",
		"target directory for the context file (default: current directory)")
	f.BoolVarP(&appendGlobal, "global", "g", false,
		"append to the context file in the home directory")
	f.StringVarP(&appendAgent, "agent", "a", "",
		"agent whose context file to use: claude, claude-code, codex, gemini")
	contextCmd.AddCommand(contextAppendCmd)
}

var contextAppendCmd = &cobra.Command{
	Use:   "append [RULE]",
	Short: "Append a rule or template to the agent context file",
	Long: `Append a rule from the claudius rules directory, or a template
file, to the agent context file (CLAUDE.md for Claude and Claude Code,
AGENTS.md for Codex and Gemini).

Without a rule argument an interactive fuzzy finder offers the
available rules when stdin is a terminal.`,
	Example: `  # Append a rule to ./CLAUDE.md
  claudius context append my-rule

  # Pick a rule interactively
  claudius context append

  # Append the MCP servers template to ~/CLAUDE.md
  claudius context append --template-path ./template.md --global

  # Append to AGENTS.md for Codex
  claudius context append my-rule --agent codex

  See Also: claudius context install, claudius context list`,
	Args: cobra.MaximumNArgs(1),
	RunE: runContextAppend,
}

func runContextAppend(cmd *cobra.Command, args []string) error {
	a, overridden, err := resolveContextAgent(appendAgent)
	if err != nil {
		return err
	}
	fileName := contextFileName(a, overridden)

	targetDir, err := contextTargetDir(appendGlobal, appendPath)
	if err != nil {
		return err
	}
	contextPath := filepath.Join(targetDir, fileName)

	logger := logging.FromContext(cmd.Context())
	logger.Debug("appending to context file", "path", contextPath, "agent", a)

	out := cmd.OutOrStdout()

	if appendTemplatePath != "" {
		if err := rules.AppendTemplate(appendTemplatePath, contextPath, logger); err != nil {
			return err
		}
		fmt.Fprintf(out, "Template appended successfully to %s\n", fileName)
		return nil
	}

	var rule string
	if len(args) > 0 {
		rule = args[0]
	} else {
		rule, err = pickRule()
		if err != nil {
			return err
		}
	}

	if err := rules.AppendRules([]string{rule}, contextPath, logger); err != nil {
		return err
	}
	fmt.Fprintf(out, "Rule appended successfully to %s\n", fileName)
	return nil
}

// pickRule offers the available rules in a fuzzy finder. Without a
// terminal there is nothing to pick from.
func pickRule() (string, error) {
	if !prompt.IsInteractive() {
		return "", errors.New("No rule or template specified")
	}

	dir, err := rules.EnsureDir()
	if err != nil {
		return "", err
	}
	names, err := rules.Names(dir)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", errors.Newf("No rules found in %s", dir)
	}
	return prompt.SelectRule(names)
}
