package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage claudius configuration",
	Long: `Manage the claudius source configuration and project it into
agent target files.`,
	Example: `  # Bootstrap the source directory with starter files
  claudius config init

  # Sync the configuration into the current project
  claudius config sync

  # Validate the source files without writing anything
  claudius config validate

  See Also: claudius context, claudius commands`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}
