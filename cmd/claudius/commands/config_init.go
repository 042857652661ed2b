package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/claudius/internal/bootstrap"
	"github.com/thoreinstein/claudius/internal/logging"
	"github.com/thoreinstein/claudius/internal/paths"
)

var initForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&initForce, "force", "f", false,
		"overwrite existing configuration files")
	configCmd.AddCommand(configInitCmd)
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Bootstrap the claudius configuration directory",
	Long: `Create the claudius configuration directory with starter files:
mcpServers.json, per-agent settings files, an example config.toml, and
seeded commands and rules directories.

Existing files are left untouched unless --force is given.`,
	Example: `  # Create the starter configuration
  claudius config init

  # Recreate starter files over existing ones
  claudius config init --force

  See Also: claudius config sync, claudius config validate`,
	RunE: runConfigInit,
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	configDir, err := paths.ConfigDir()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Bootstrapping Claudius configuration at: %s\n", configDir)

	logger := logging.FromContext(cmd.Context())
	if err := bootstrap.Run(configDir, initForce, logger); err != nil {
		return err
	}

	fmt.Fprintln(out, "Claudius configuration bootstrapped successfully!")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintf(out, "  1. Edit configuration files in: %s\n", configDir)
	fmt.Fprintln(out, "  2. Run 'claudius config sync' to apply your configuration")
	fmt.Fprintln(out, "  3. Run 'claudius commands sync' to publish custom commands")
	return nil
}
