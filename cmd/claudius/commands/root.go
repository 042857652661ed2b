// Package commands implements the CLI commands for claudius.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/claudius/cmd"
	"github.com/thoreinstein/claudius/internal/config"
	"github.com/thoreinstein/claudius/internal/errors"
	"github.com/thoreinstein/claudius/internal/logging"
	"github.com/thoreinstein/claudius/internal/secrets"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// appConfig is the loaded application configuration, nil until
// initConfig runs.
var appConfig *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("claudius version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	appConfig, configLoadErr = config.Load("")
}

var rootCmd = &cobra.Command{
	Use:   "claudius",
	Short: "Manage AI agent configurations from a single source",
	Long: `claudius keeps AI agent configurations in a single source directory
($XDG_CONFIG_HOME/claudius) and projects them into the native config
files of Claude, Claude Code, Codex, and Gemini.

Source files are merged into the target files rather than copied over
them, so settings the agents write themselves are preserved. Secret
references in CLAUDIUS_SECRET_* environment variables are resolved
before any command runs.`,
	Example: `  # Bootstrap the source directory
  claudius config init

  # Project the configuration into the current project
  claudius config sync

  # Sync every agent's user-level configuration
  claudius config sync --global

  # Append a rule to the context file
  claudius context append my-rule

  See Also: claudius config, claudius context, claudius secrets`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return prepareEnvironment(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("CLAUDIUS_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// prepareEnvironment surfaces config load failures and resolves secret
// references into the process environment before any command runs, so
// spawned processes and server configs see the resolved values.
func prepareEnvironment(cmd *cobra.Command) error {
	switch cmd.Name() {
	case "help", "version", "init":
		// These must work without a valid configuration.
		return nil
	}

	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}

	logger := logging.FromContext(cmd.Context())

	var manager *config.SecretManager
	if appConfig != nil {
		manager, _ = appConfig.SecretManagerConfig()
	}

	resolved, err := secrets.NewResolver(manager, logger).ResolveEnvVars()
	if err != nil {
		return errors.Wrap(err, "resolving secret references")
	}
	if len(resolved) > 0 {
		secrets.InjectEnvVars(resolved)
		logger.Debug("injected resolved secrets", "count", len(resolved))
	}

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
