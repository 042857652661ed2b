// Package bootstrap seeds the claudius config directory with default
// source files and example content.
package bootstrap

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/thoreinstein/claudius/internal/errors"
	"github.com/thoreinstein/claudius/internal/paths"
)

const defaultMCPServers = `{
  "mcpServers": {
    "filesystem": {
      "command": "npx",
      "args": ["-y", "@modelcontextprotocol/server-filesystem"],
      "env": {}
    }
  }
}
`

const defaultClaudeSettings = `{
  "apiKeyHelper": null,
  "cleanupPeriodDays": 30,
  "env": {},
  "includeCoAuthoredBy": true,
  "permissions": {
    "allow": [],
    "deny": [],
    "defaultMode": null
  },
  "preferredNotifChannel": null
}
`

const defaultGeminiSettings = `{
  "contextFileName": "GEMINI.md",
  "autoAccept": false,
  "theme": "Default",
  "sandbox": false,
  "checkpointing": {
    "enabled": false
  },
  "telemetry": {
    "enabled": false
  },
  "usageStatisticsEnabled": true,
  "hideTips": false
}
`

const defaultCodexSettings = `# Codex Settings
# Configure your Codex CLI settings here

# The default model to use
# model = "gpt-5"

# The model provider to use if not specified in the model name
# model_provider = "openai"

# Approval policy for commands
# approval_policy = "never"

# Whether to disable response storage
# disable_response_storage = false

# List of notification channels
# notify = ["desktop"]

# Model provider configurations
# [model_providers.openai]
# base_url = "https://api.openai.com"
# env_key = "OPENAI_API_KEY"

# Shell environment policy
# [shell_environment_policy]
# inherit = "all"
# ignore_default_excludes = false
# exclude = ["SECRET_*", "PASSWORD_*"]

# Sandbox configuration
# [sandbox]
# mode = "none"
# writable_roots = ["/tmp"]
# network_access = true

# History configuration
# [history]
# persistence = "save-all"

# MCP servers will be merged from mcpServers.json
`

const exampleAppConfig = `# Claudius Configuration File
# This file configures the Claudius application itself

# [default]
# Default settings that can be overridden by command-line arguments
# agent = "claude"  # Options: "claude", "claude-code", "codex", "gemini"
# context-file = "CONTEXT.md"  # Custom context file name (overrides agent defaults)

# [secret-manager]
# Configure a secret manager to resolve environment variables
# Supported types: "vault", "1password"
#
# Example for 1Password:
# type = "1password"
#
# When using 1Password, environment variables starting with CLAUDIUS_SECRET_*
# that contain values starting with op:// will be resolved using the 1Password CLI.
# For example:
#   CLAUDIUS_SECRET_API_KEY=op://vault/item/field
# Will be resolved and made available as API_KEY environment variable.
#
# Example for HashiCorp Vault (not yet implemented):
# type = "vault"
`

const exampleCommand = `# Example Command

This is an example custom slash command for Claude.

## Usage

Type ` + "`/example`" + ` in Claude to use this command.

## Implementation

Replace this content with your actual command implementation.
`

const exampleRule = `# Example Rule

This is an example rule template for CLAUDE.md.

## Guidelines

- Always follow project conventions
- Write clear, maintainable code
- Document your changes

## Project-Specific Instructions

Add your project-specific instructions here.
`

// Run creates the claudius config directory and seeds it with default
// files. Existing files are preserved unless force is set, in which
// case files are overwritten and the commands and rules directories
// are recreated from scratch.
func Run(configDir string, force bool, logger *slog.Logger) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return errors.Wrapf(err, "creating config directory %s", configDir)
	}

	files := []struct {
		name    string
		content string
	}{
		{paths.MCPServersFile, defaultMCPServers},
		{paths.ClaudeSettingsFile, defaultClaudeSettings},
		{paths.CodexSettingsFile, defaultCodexSettings},
		{paths.GeminiSettingsFile, defaultGeminiSettings},
		{paths.AppConfigFile, exampleAppConfig},
	}
	for _, file := range files {
		if err := createFile(filepath.Join(configDir, file.name), file.content, force, logger); err != nil {
			return err
		}
	}

	if err := createLegacySettings(configDir, force, logger); err != nil {
		return err
	}

	if err := seedDirectory(filepath.Join(configDir, "commands"), "example.md", exampleCommand, force, logger); err != nil {
		return err
	}
	if err := seedDirectory(filepath.Join(configDir, "rules"), "example.md", exampleRule, force, logger); err != nil {
		return err
	}

	logger.Info("bootstrap complete", "dir", configDir)
	return nil
}

// createFile writes content to path unless the file already exists and
// force is unset.
func createFile(path, content string, force bool, logger *slog.Logger) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			logger.Info("already exists, skipping", "path", path)
			return nil
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	logger.Info("created", "path", path)
	return nil
}

// createLegacySettings copies claude.settings.json to the legacy
// settings.json name for older tooling that still reads it.
func createLegacySettings(configDir string, force bool, logger *slog.Logger) error {
	legacyPath := filepath.Join(configDir, paths.LegacySettingsFile)
	claudePath := filepath.Join(configDir, paths.ClaudeSettingsFile)

	if !force {
		if _, err := os.Stat(legacyPath); err == nil {
			return nil
		}
	}
	data, err := os.ReadFile(claudePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "reading %s", claudePath)
	}
	if err := os.WriteFile(legacyPath, data, 0o644); err != nil {
		return errors.Wrapf(err, "creating %s", legacyPath)
	}
	logger.Info("created legacy settings.json for backward compatibility")
	return nil
}

// seedDirectory creates dir with one example file. With force the
// directory is removed first, dropping any user content in it.
func seedDirectory(dir, exampleName, exampleContent string, force bool, logger *slog.Logger) error {
	if force {
		if err := os.RemoveAll(dir); err != nil {
			return errors.Wrapf(err, "removing directory %s", dir)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating directory %s", dir)
	}
	return createFile(filepath.Join(dir, exampleName), exampleContent, force, logger)
}
