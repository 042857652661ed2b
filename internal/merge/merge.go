// Package merge combines MCP server definitions and settings into target
// configuration documents under a selectable strategy.
package merge

import (
	"encoding/json"
	"reflect"
	"sort"

	"github.com/thoreinstein/claudius/internal/mcp"
	"github.com/thoreinstein/claudius/internal/settings"
)

// Strategy selects how incoming servers interact with what a target
// already has.
type Strategy int

const (
	// Replace discards all existing servers in favor of the new set.
	Replace Strategy = iota
	// Merge overlays new servers, overwriting same-name entries.
	Merge
	// MergePreserveExisting overlays new servers but keeps same-name
	// entries the target already has.
	MergePreserveExisting
	// InteractiveMerge prompts on each same-name entry that differs.
	InteractiveMerge
)

// DefaultStrategy is used when the caller expresses no preference.
const DefaultStrategy = InteractiveMerge

// Conflict describes one field whose existing and incoming values
// disagree.
type Conflict struct {
	Field    string
	Existing string
	Proposed string
}

// Resolver decides whether a conflicting field should be overwritten.
// Implementations typically prompt the user.
type Resolver interface {
	ResolveConflict(c Conflict) (bool, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(c Conflict) (bool, error)

// ResolveConflict calls f.
func (f ResolverFunc) ResolveConflict(c Conflict) (bool, error) {
	return f(c)
}

// DetectServerConflicts returns the server names, sorted, present in
// both maps with differing definitions.
func DetectServerConflicts(existing, incoming map[string]*mcp.Server) []string {
	var names []string
	for name, server := range incoming {
		current, ok := existing[name]
		if ok && !current.Equal(server) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Servers merges the source server set into the document under the
// given strategy. The resolver is consulted only for InteractiveMerge.
func Servers(doc *mcp.Document, source *mcp.ServersFile, strategy Strategy, resolver Resolver) error {
	incoming := source.Servers

	switch strategy {
	case Replace:
		replacement := make(map[string]*mcp.Server, len(incoming))
		for name, server := range incoming {
			replacement[name] = server
		}
		doc.Servers = replacement

	case Merge:
		existing := doc.EnsureServers()
		for name, server := range incoming {
			existing[name] = server
		}

	case MergePreserveExisting:
		existing := doc.EnsureServers()
		for name, server := range incoming {
			if _, ok := existing[name]; !ok {
				existing[name] = server
			}
		}

	case InteractiveMerge:
		existing := doc.EnsureServers()

		for _, name := range DetectServerConflicts(existing, incoming) {
			overwrite, err := resolver.ResolveConflict(Conflict{
				Field:    "mcpServers." + name,
				Existing: formatValue(normalize(existing[name])),
				Proposed: formatValue(normalize(incoming[name])),
			})
			if err != nil {
				return err
			}
			if overwrite {
				existing[name] = incoming[name]
			}
		}

		for name, server := range incoming {
			if _, ok := existing[name]; !ok {
				existing[name] = server
			}
		}
	}

	return nil
}

// settingsFields lists the settings keys projected into a document, in
// the order they are merged and prompted.
var settingsFields = []struct {
	name  string
	value func(s *settings.Settings) (any, bool)
}{
	{"apiKeyHelper", func(s *settings.Settings) (any, bool) {
		if s.APIKeyHelper == nil {
			return nil, false
		}
		return *s.APIKeyHelper, true
	}},
	{"cleanupPeriodDays", func(s *settings.Settings) (any, bool) {
		if s.CleanupPeriodDays == nil {
			return nil, false
		}
		return *s.CleanupPeriodDays, true
	}},
	{"env", func(s *settings.Settings) (any, bool) {
		if s.Env == nil {
			return nil, false
		}
		return s.Env, true
	}},
	{"includeCoAuthoredBy", func(s *settings.Settings) (any, bool) {
		if s.IncludeCoAuthoredBy == nil {
			return nil, false
		}
		return *s.IncludeCoAuthoredBy, true
	}},
	{"permissions", func(s *settings.Settings) (any, bool) {
		if s.Permissions == nil {
			return nil, false
		}
		return s.Permissions, true
	}},
	{"preferredNotifChannel", func(s *settings.Settings) (any, bool) {
		if s.PreferredNotifChannel == nil {
			return nil, false
		}
		return *s.PreferredNotifChannel, true
	}},
}

// Settings merges the populated settings fields into the document's
// top-level keys. Under InteractiveMerge, fields whose existing value
// differs are prompted first and declined fields are left untouched.
func Settings(doc *mcp.Document, s *settings.Settings, strategy Strategy, resolver Resolver) error {
	if s == nil {
		return nil
	}

	skip := make(map[string]bool)
	if strategy == InteractiveMerge {
		for _, field := range settingsFields {
			raw, ok := field.value(s)
			if !ok {
				continue
			}
			incoming := normalize(raw)

			current, present := doc.Extra[field.name]
			if !present || reflect.DeepEqual(normalize(current), incoming) {
				continue
			}

			overwrite, err := resolver.ResolveConflict(Conflict{
				Field:    field.name,
				Existing: formatValue(normalize(current)),
				Proposed: formatValue(incoming),
			})
			if err != nil {
				return err
			}
			if !overwrite {
				skip[field.name] = true
			}
		}
	}

	for _, field := range settingsFields {
		raw, ok := field.value(s)
		if !ok || skip[field.name] {
			continue
		}
		if doc.Extra == nil {
			doc.Extra = make(map[string]any)
		}
		doc.Extra[field.name] = normalize(raw)
	}

	return nil
}

// normalize passes a value through JSON so comparisons and stored
// document values use the same generic types.
func normalize(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}

// formatValue renders a value for conflict display. Scalars print
// compactly, composites as indented JSON.
func formatValue(v any) string {
	switch v.(type) {
	case string, float64, bool, nil:
		data, err := json.Marshal(v)
		if err != nil {
			return "<unprintable>"
		}
		return string(data)
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "<unprintable>"
		}
		return string(data)
	}
}
