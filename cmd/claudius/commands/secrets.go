package commands

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/claudius/internal/errors"
	"github.com/thoreinstein/claudius/internal/logging"
)

func init() {
	secretsCmd.AddCommand(secretsRunCmd)
	rootCmd.AddCommand(secretsCmd)
}

var secretsCmd = &cobra.Command{
	Use:   "secrets",
	Short: "Work with resolved secret references",
	Long: `Work with the CLAUDIUS_SECRET_* environment variables. Secret
references (op:// URIs and secret manager lookups) are resolved before
every command, so subcommands see plain values.`,
	Example: `  # Run a command with resolved secrets in its environment
  claudius secrets run -- npx my-mcp-server

  See Also: claudius config sync`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var secretsRunCmd = &cobra.Command{
	Use:   "run -- COMMAND [ARGS...]",
	Short: "Run a command with resolved secrets in its environment",
	Long: `Run the given command with all CLAUDIUS_SECRET_* references
resolved and injected into its environment, with the prefix stripped.
The child's stdin, stdout, and stderr are inherited and its exit code
is propagated.`,
	Example: `  # Start a server that needs an API key from 1Password
  CLAUDIUS_SECRET_API_KEY="op://vault/item/field" \
    claudius secrets run -- npx my-mcp-server

  See Also: claudius config sync`,
	Args: cobra.ArbitraryArgs,
	RunE: runSecretsRun,
}

func runSecretsRun(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errors.New("No command specified")
	}

	logger := logging.FromContext(cmd.Context())
	logger.Debug("running command with resolved secrets", "command", args[0])

	child := exec.Command(args[0], args[1:]...)
	child.Stdin = cmd.InOrStdin()
	child.Stdout = cmd.OutOrStdout()
	child.Stderr = cmd.ErrOrStderr()

	err := child.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// Killed by a signal, report it shell-style.
			code = 1
			if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
				code = 128 + int(status.Signal())
			}
		}
		os.Exit(code)
	}
	return errors.Wrapf(err, "running %s", args[0])
}
