package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/claudius/internal/command"
	"github.com/thoreinstein/claudius/internal/paths"
)

var commandsSyncGlobal bool

func init() {
	commandsSyncCmd.Flags().BoolVarP(&commandsSyncGlobal, "global", "g", false,
		"sync into ~/.claude/commands instead of the project")
	commandsCmd.AddCommand(commandsSyncCmd)
	rootCmd.AddCommand(commandsCmd)
}

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "Manage custom slash commands",
	Long: `Manage the custom slash commands kept in the claudius commands
directory.`,
	Example: `  # Publish commands into the current project
  claudius commands sync

  # Publish commands user-wide
  claudius commands sync --global

  See Also: claudius config sync`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var commandsSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Copy custom slash commands into the Claude commands directory",
	Long: `Copy every command definition from the claudius commands directory
into .claude/commands, project-local by default or under the home
directory with --global.`,
	Example: `  # Sync commands into the current project
  claudius commands sync

  # Sync commands user-wide
  claudius commands sync --global

  See Also: claudius config sync`,
	RunE: runCommandsSync,
}

func runCommandsSync(cmd *cobra.Command, _ []string) error {
	sourceDir, err := paths.CommandsDir()
	if err != nil {
		return err
	}

	var base string
	if commandsSyncGlobal {
		base, err = paths.ResolveHome()
	} else {
		base, err = os.Getwd()
	}
	if err != nil {
		return err
	}
	targetDir := filepath.Join(base, ".claude", "commands")

	synced, err := command.Sync(sourceDir, targetDir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(synced) == 0 {
		fmt.Fprintln(out, "No commands to sync")
		return nil
	}

	fmt.Fprintf(out, "Successfully synced %d command(s):\n", len(synced))
	for _, name := range synced {
		fmt.Fprintf(out, "  - %s\n", name)
	}
	return nil
}
