// Package agent defines the supported AI coding assistants and the
// filesystem layout each one expects its configuration in.
package agent

import (
	"github.com/thoreinstein/claudius/internal/errors"
)

// Agent identifies a supported AI coding assistant.
type Agent string

// Supported agents.
const (
	// Claude is the Claude desktop application.
	Claude Agent = "claude"

	// ClaudeCode is the Claude Code CLI.
	ClaudeCode Agent = "claude-code"

	// Codex is the Codex CLI, configured via TOML.
	Codex Agent = "codex"

	// Gemini is the Gemini CLI.
	Gemini Agent = "gemini"
)

// ErrUnknownAgent indicates an agent name that is not recognized.
var ErrUnknownAgent = errors.ErrUnknownAgent

// Parse converts a user-supplied agent name into an Agent.
func Parse(name string) (Agent, error) {
	switch Agent(name) {
	case Claude, ClaudeCode, Codex, Gemini:
		return Agent(name), nil
	default:
		return "", errors.Wrapf(ErrUnknownAgent, "%q (expected one of: claude, claude-code, codex, gemini)", name)
	}
}

// All returns every supported agent in display order.
func All() []Agent {
	return []Agent{Claude, ClaudeCode, Codex, Gemini}
}

// String returns the canonical lowercase name.
func (a Agent) String() string {
	return string(a)
}

// ContextFileName returns the context file each agent reads from a
// project root. Claude variants use CLAUDE.md, everything else reads
// the cross-agent AGENTS.md convention.
func (a Agent) ContextFileName() string {
	switch a {
	case Claude, ClaudeCode:
		return "CLAUDE.md"
	default:
		return "AGENTS.md"
	}
}

// Scope selects which Claude Code settings file a global sync writes.
type Scope string

// Claude Code settings scopes.
const (
	ScopeManaged Scope = "managed"
	ScopeUser    Scope = "user"
	ScopeProject Scope = "project"
	ScopeLocal   Scope = "local"
)

// ParseScope converts a user-supplied scope name into a Scope.
func ParseScope(name string) (Scope, error) {
	switch Scope(name) {
	case ScopeManaged, ScopeUser, ScopeProject, ScopeLocal:
		return Scope(name), nil
	default:
		return "", errors.Newf("unknown scope %q (expected one of: managed, user, project, local)", name)
	}
}
