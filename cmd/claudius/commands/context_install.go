package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/claudius/internal/errors"
	"github.com/thoreinstein/claudius/internal/logging"
	"github.com/thoreinstein/claudius/internal/paths"
	"github.com/thoreinstein/claudius/internal/rules"
)

var (
	installAll        bool
	installPath       string
	installInstallDir string
	installAgent      string
)

func init() {
	f := contextInstallCmd.Flags()
	f.BoolVar(&installAll, "all", false,
		"install every rule, including subdirectories")
	f.StringVar(&installPath, "path", "",
		"target project directory (default: current directory)")
	f.StringVar(&installInstallDir, "install-dir", "",
		"directory receiving the rules (default: .agents/rules)")
	f.StringVarP(&installAgent, "agent", "a", "",
		"agent whose context file to reference: claude, claude-code, codex, gemini")
	contextCmd.AddCommand(contextInstallCmd)
}

var contextInstallCmd = &cobra.Command{
	Use:   "install [RULES...]",
	Short: "Install rules into the project and reference them",
	Long: `Copy rules from the claudius rules directory into the project's
rules directory (.agents/rules by default) and maintain a managed
reference section in the context file pointing at them. The section is
rewritten on every install, so repeated runs stay idempotent.`,
	Example: `  # Install two rules
  claudius context install style testing

  # Install every rule, including subdirectories
  claudius context install --all

  # Install into a custom directory
  claudius context install --all --install-dir docs/rules

  See Also: claudius context append, claudius context list`,
	RunE: runContextInstall,
}

func runContextInstall(cmd *cobra.Command, args []string) error {
	if !installAll && len(args) == 0 {
		return errors.New("No rule or template specified")
	}

	a, overridden, err := resolveContextAgent(installAgent)
	if err != nil {
		return err
	}
	fileName := contextFileName(a, overridden)

	targetDir, err := contextTargetDir(false, installPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if installAll {
		sourceDir, err := paths.RulesDir()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Installing ALL rules from %s (including subdirectories)\n", sourceDir)
	}

	logger := logging.FromContext(cmd.Context())
	installed, err := rules.Install(rules.InstallOptions{
		Names:           args,
		All:             installAll,
		TargetDir:       targetDir,
		InstallDir:      installInstallDir,
		ContextFileName: fileName,
	}, logger)
	if err != nil {
		return err
	}

	rulesDir := installInstallDir
	if rulesDir == "" {
		rulesDir = rules.DefaultInstallDir
	}
	if !filepath.IsAbs(rulesDir) {
		rulesDir = filepath.Join(targetDir, rulesDir)
	}
	fmt.Fprintf(out, "Successfully installed %d rule(s) to %s\n", len(installed), rulesDir)
	return nil
}
