package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/claudius/internal/agent"
	"github.com/thoreinstein/claudius/internal/cli/prompt"
	"github.com/thoreinstein/claudius/internal/logging"
	"github.com/thoreinstein/claudius/internal/syncer"
)

var (
	syncConfigPath         string
	syncTargetPath         string
	syncDryRun             bool
	syncBackup             bool
	syncGlobal             bool
	syncAgent              string
	syncScope              string
	syncCodexRequirements  bool
	syncCodexManagedConfig bool
	syncGeminiSystem       bool
)

func init() {
	f := configSyncCmd.Flags()
	f.StringVarP(&syncConfigPath, "config", "c", "",
		"path to the source mcpServers.json (env: CLAUDIUS_CONFIG)")
	f.StringVarP(&syncTargetPath, "target-config", "T", "",
		"path to the target config file (env: TARGET_CONFIG_PATH)")
	f.BoolVarP(&syncDryRun, "dry-run", "d", false,
		"print the merged result without writing")
	f.BoolVarP(&syncBackup, "backup", "b", false,
		"create timestamped backups of target files before writing")
	f.BoolVarP(&syncGlobal, "global", "g", false,
		"sync the user-level configuration instead of the project")
	f.StringVarP(&syncAgent, "agent", "a", "",
		"target agent: claude, claude-code, codex, gemini")
	f.StringVar(&syncScope, "scope", "",
		"Claude Code settings scope: managed, user, project, local")
	f.BoolVar(&syncCodexRequirements, "codex-requirements", false,
		"also sync the system-wide Codex requirements file")
	f.BoolVar(&syncCodexManagedConfig, "codex-managed-config", false,
		"also sync the system-wide Codex managed_config.toml")
	f.BoolVar(&syncGeminiSystem, "gemini-system", false,
		"target the system-wide Gemini settings file")
	configCmd.AddCommand(configSyncCmd)
}

var configSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Project the source configuration into agent target files",
	Long: `Read the source configuration, merge it into the target config
files, and write the result. Existing target content is preserved:
unknown fields survive the round trip and server definitions merge by
name with interactive conflict resolution.

Without --agent the configured default agent is used, falling back to
Claude. A plain --global sync with no agent selection syncs every agent
that has a settings source file.`,
	Example: `  # Sync into the current project
  claudius config sync

  # Preview the merge without writing
  claudius config sync --dry-run

  # Sync every detected agent's user-level config
  claudius config sync --global

  # Sync Codex system-wide, including requirements
  claudius config sync --global --agent codex --codex-requirements

  # Write the Claude Code managed settings scope
  claudius config sync --agent claude-code --scope managed

  See Also: claudius config validate, claudius config init`,
	RunE: runConfigSync,
}

func runConfigSync(cmd *cobra.Command, _ []string) error {
	opts := syncer.Options{
		ConfigPath:         syncConfigPath,
		TargetConfigPath:   syncTargetPath,
		DryRun:             syncDryRun,
		Backup:             syncBackup,
		Global:             syncGlobal,
		CodexRequirements:  syncCodexRequirements,
		CodexManagedConfig: syncCodexManagedConfig,
		GeminiSystem:       syncGeminiSystem,
	}

	if opts.ConfigPath == "" {
		opts.ConfigPath = os.Getenv("CLAUDIUS_CONFIG")
	}
	if opts.TargetConfigPath == "" {
		opts.TargetConfigPath = os.Getenv("TARGET_CONFIG_PATH")
	}

	if syncAgent != "" {
		a, err := agent.Parse(syncAgent)
		if err != nil {
			return err
		}
		opts.Agent = a
	}
	if syncScope != "" {
		scope, err := agent.ParseScope(syncScope)
		if err != nil {
			return err
		}
		opts.Scope = scope
	}

	logger := logging.FromContext(cmd.Context())
	s, err := syncer.New(appConfig, logger, prompt.New(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return s.Run(opts)
}
