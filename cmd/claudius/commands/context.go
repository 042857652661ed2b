package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/claudius/internal/agent"
	"github.com/thoreinstein/claudius/internal/paths"
)

func init() {
	rootCmd.AddCommand(contextCmd)
}

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Manage agent context files and rules",
	Long: `Manage the Markdown rules kept in the claudius rules directory and
the agent context files they feed (CLAUDE.md, AGENTS.md).`,
	Example: `  # Append a rule to the context file
  claudius context append my-rule

  # Install rules into the project and reference them
  claudius context install --all

  # List available rules
  claudius context list

  See Also: claudius config sync`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// resolveContextAgent picks the agent a context command writes for: the
// explicit override, then the configured default, then Claude.
func resolveContextAgent(override string) (agent.Agent, bool, error) {
	if override != "" {
		a, err := agent.Parse(override)
		if err != nil {
			return "", false, err
		}
		return a, true, nil
	}
	if appConfig != nil {
		if a, ok := appConfig.DefaultAgent(); ok {
			return a, false, nil
		}
	}
	return agent.Claude, false, nil
}

// contextFileName resolves which context file to write. An explicit
// agent override always uses that agent's file; otherwise a configured
// context-file wins over the agent default.
func contextFileName(a agent.Agent, overridden bool) string {
	if overridden {
		return a.ContextFileName()
	}
	if appConfig != nil {
		if name, ok := appConfig.ContextFile(); ok {
			return name
		}
	}
	return a.ContextFileName()
}

// contextTargetDir resolves the directory holding the context file:
// the home directory with global, the given path resolved against the
// working directory, or the working directory itself.
func contextTargetDir(global bool, path string) (string, error) {
	if global {
		return paths.ResolveHome()
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if path == "" {
		return cwd, nil
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	return filepath.Join(cwd, path), nil
}
