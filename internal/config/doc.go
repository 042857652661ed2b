// Package config provides configuration management for the claudius CLI.
//
// This package handles loading and validating the claudius tool's own
// configuration file. It is distinct from the agent configurations that
// claudius projects; those are handled by the settings and syncer packages.
//
// # Configuration File
//
// The default configuration file location is ~/.config/claudius/config.toml.
// The configuration file uses TOML format with the following structure:
//
//	[secret-manager]
//	type = "1password"   # or "vault"
//
//	[default]
//	agent = "claude-code"       # claude | claude-code | codex | gemini
//	context-file = "AGENTS.md"  # optional override
//
// # Loading Configuration
//
// Use [Load] with an empty path to load from the default location with
// graceful fallback to an empty configuration:
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return fmt.Errorf("loading config: %w", err)
//	}
//
// Passing an explicit path makes a missing file an error.
//
// All loaded configurations are validated automatically; an unknown
// secret manager type or default agent fails the load.
package config
