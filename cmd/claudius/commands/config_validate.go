package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/claudius/internal/agent"
	"github.com/thoreinstein/claudius/internal/errors"
	"github.com/thoreinstein/claudius/internal/mcp/parser"
	"github.com/thoreinstein/claudius/internal/paths"
	"github.com/thoreinstein/claudius/internal/settings"
	"github.com/thoreinstein/claudius/internal/translate"
	"github.com/thoreinstein/claudius/internal/validator"
)

var (
	validateAgent  string
	validateStrict bool
)

func init() {
	configValidateCmd.Flags().StringVarP(&validateAgent, "agent", "a", "",
		"validate sources for a single agent: claude, claude-code, codex, gemini")
	configValidateCmd.Flags().BoolVar(&validateStrict, "strict", false,
		"treat warnings as errors")
	configCmd.AddCommand(configValidateCmd)
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the source configuration files",
	Long: `Check the source configuration for problems without writing
anything. mcpServers.json must exist and parse; per-agent settings
files are checked when present. Unknown fields and other suspicious
content produce warnings, which only fail the command with --strict.`,
	Example: `  # Validate everything
  claudius config validate

  # Validate only the Codex sources
  claudius config validate --agent codex

  # Fail on warnings (for CI)
  claudius config validate --strict

  See Also: claudius config sync`,
	RunE: runConfigValidate,
}

func runConfigValidate(cmd *cobra.Command, _ []string) error {
	configDir, err := paths.ConfigDir()
	if err != nil {
		return err
	}

	var effective agent.Agent
	if validateAgent != "" {
		a, err := agent.Parse(validateAgent)
		if err != nil {
			return err
		}
		effective = a
	} else if appConfig != nil {
		if a, ok := appConfig.DefaultAgent(); ok {
			effective = a
		}
	}

	warnings, err := validateServers(configDir)
	if err != nil {
		return err
	}

	switch effective {
	case agent.Claude, agent.ClaudeCode:
		more, err := validateClaudeSources(configDir)
		if err != nil {
			return err
		}
		warnings = append(warnings, more...)
	case agent.Codex:
		more, err := validateCodexSources(configDir)
		if err != nil {
			return err
		}
		warnings = append(warnings, more...)
	case agent.Gemini:
		more, err := validateGeminiSources(configDir)
		if err != nil {
			return err
		}
		warnings = append(warnings, more...)
	default:
		for _, validate := range []func(string) ([]string, error){
			validateClaudeSources, validateCodexSources, validateGeminiSources,
		} {
			more, err := validate(configDir)
			if err != nil {
				return err
			}
			warnings = append(warnings, more...)
		}
	}

	out := cmd.OutOrStdout()
	if len(warnings) == 0 {
		fmt.Fprintln(out, "Configuration validation passed")
		return nil
	}

	fmt.Fprintf(out, "Configuration validation warnings (%d):\n", len(warnings))
	for _, warning := range warnings {
		fmt.Fprintf(out, "  - %s\n", warning)
	}

	if validateStrict {
		return errors.New("Validation failed due to warnings (--strict)")
	}
	return nil
}

// validateServers checks the required mcpServers.json. Each server must
// carry a transport: a command for local servers or a url for remote
// ones.
func validateServers(configDir string) ([]string, error) {
	path := filepath.Join(configDir, paths.MCPServersFile)
	sf, err := parser.ReadServersFile(path)
	if err != nil {
		return nil, err
	}

	var warnings []string
	for name, server := range sf.Servers {
		if server.Command == "" && server.URL == "" {
			warnings = append(warnings,
				fmt.Sprintf("%s: mcpServers.%s must define either command or url", path, name))
		}
	}
	return warnings, nil
}

// validateClaudeSources checks the Claude settings source, preferring
// claude.settings.json and falling back to the legacy settings.json.
func validateClaudeSources(configDir string) ([]string, error) {
	path := filepath.Join(configDir, paths.ClaudeSettingsFile)
	legacy := false
	if !sourceExists(path) {
		path = filepath.Join(configDir, paths.LegacySettingsFile)
		if !sourceExists(path) {
			return nil, nil
		}
		legacy = true
	}

	_, result, err := validator.ValidateJSONFile(path)
	if err != nil {
		return nil, err
	}

	// Settings must also deserialize; unknown fields are preserved, so
	// this only rejects structurally invalid content.
	if _, err := settings.ReadSettings(path); err != nil {
		return nil, err
	}

	warnings := make([]string, 0, len(result.Warnings))
	for _, w := range result.Warnings {
		warnings = append(warnings, fmt.Sprintf("%s: %s", path, w))
	}
	if legacy {
		warnings = append(warnings,
			fmt.Sprintf("%s: Using legacy settings.json (consider migrating to claude.settings.json)", path))
	}
	return warnings, nil
}

// validateCodexSources parse-checks the Codex TOML sources. The managed
// config may live under its legacy name, which draws a warning.
func validateCodexSources(configDir string) ([]string, error) {
	var warnings []string

	settingsPath := filepath.Join(configDir, paths.CodexSettingsFile)
	if sourceExists(settingsPath) {
		more, err := validateCodexFile(settingsPath)
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, more...)
	}

	requirementsPath := filepath.Join(configDir, "codex.requirements.toml")
	if sourceExists(requirementsPath) {
		if err := parseTOMLFile(requirementsPath); err != nil {
			return nil, err
		}
	}

	managedPath := filepath.Join(configDir, "codex.managed_config.toml")
	legacyManaged := false
	if !sourceExists(managedPath) {
		managedPath = filepath.Join(configDir, "managed_config.toml")
		legacyManaged = sourceExists(managedPath)
	}
	if sourceExists(managedPath) {
		more, err := validateCodexFile(managedPath)
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, more...)
		if legacyManaged {
			warnings = append(warnings,
				fmt.Sprintf("%s: Using legacy managed_config.toml (consider migrating to codex.managed_config.toml)", managedPath))
		}
	}

	return warnings, nil
}

// validateGeminiSources parse-checks the Gemini settings source.
func validateGeminiSources(configDir string) ([]string, error) {
	path := filepath.Join(configDir, paths.GeminiSettingsFile)
	if !sourceExists(path) {
		return nil, nil
	}
	if _, err := settings.ReadSettings(path); err != nil {
		return nil, err
	}
	return nil, nil
}

// validateCodexFile checks a Codex-shaped TOML file for unknown fields
// and structural problems, prefixing each warning with the path.
func validateCodexFile(path string) ([]string, error) {
	result, err := validator.ValidateCodexFile(path)
	if err != nil {
		return nil, err
	}
	// The settings type preserves unknown fields, so this only rejects
	// structurally invalid content.
	if _, err := settings.ReadCodexSettings(path); err != nil {
		return nil, err
	}

	warnings := make([]string, 0, len(result.Warnings))
	for _, w := range result.Warnings {
		warnings = append(warnings, fmt.Sprintf("%s: %s", path, w))
	}
	return warnings, nil
}

func parseTOMLFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	if _, err := translate.TOMLToJSONValue(data); err != nil {
		return errors.Wrapf(err, "parsing %s", path)
	}
	return nil
}

func sourceExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
