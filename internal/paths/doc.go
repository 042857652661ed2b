// Package paths resolves file system locations for claudius.
//
// All source configuration lives in the claudius config directory,
// $XDG_CONFIG_HOME/claudius (falling back to ~/.config/claudius via the
// github.com/adrg/xdg library). This package knows the canonical file names
// inside that directory:
//
//	| File                 | Purpose                         |
//	|----------------------|---------------------------------|
//	| mcpServers.json      | MCP server definitions          |
//	| claude.settings.json | Claude settings                 |
//	| settings.json        | legacy Claude settings fallback |
//	| codex.settings.toml  | Codex settings                  |
//	| gemini.settings.json | Gemini settings                 |
//	| config.toml          | claudius app configuration      |
//	| commands/            | custom slash commands           |
//	| rules/               | context rule templates          |
//	| skills/              | skill definitions               |
//
// Per-agent target locations (where sync writes) are modeled by the agent
// package instead.
package paths
