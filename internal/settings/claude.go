// Package settings models the per-agent settings files claudius reads
// from its config directory and projects into agent targets.
package settings

import (
	"encoding/json"

	"github.com/thoreinstein/claudius/internal/mcp"
	"github.com/thoreinstein/claudius/internal/translate"
)

// Permissions is the Claude permissions block.
type Permissions struct {
	Allow       []string `json:"allow,omitempty"`
	Deny        []string `json:"deny,omitempty"`
	DefaultMode *string  `json:"defaultMode,omitempty"`

	// Extra holds permission fields this version doesn't know about.
	Extra map[string]any `json:"-"`
}

// MarshalJSON implements json.Marshaler to include unknown fields in output.
func (p *Permissions) MarshalJSON() ([]byte, error) {
	result := make(map[string]any)
	for k, v := range p.Extra {
		result[k] = v
	}

	if len(p.Allow) > 0 {
		result["allow"] = p.Allow
	}
	if len(p.Deny) > 0 {
		result["deny"] = p.Deny
	}
	if p.DefaultMode != nil {
		result["defaultMode"] = *p.DefaultMode
	}

	return json.Marshal(result)
}

// UnmarshalJSON implements json.Unmarshaler to capture unknown fields.
func (p *Permissions) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["allow"]; ok {
		if err := json.Unmarshal(v, &p.Allow); err != nil {
			return err
		}
		delete(raw, "allow")
	}
	if v, ok := raw["deny"]; ok {
		if err := json.Unmarshal(v, &p.Deny); err != nil {
			return err
		}
		delete(raw, "deny")
	}
	if v, ok := raw["defaultMode"]; ok {
		if err := json.Unmarshal(v, &p.DefaultMode); err != nil {
			return err
		}
		delete(raw, "defaultMode")
	}

	if len(raw) > 0 {
		p.Extra = make(map[string]any, len(raw))
		for k, v := range raw {
			var val any
			if err := json.Unmarshal(v, &val); err != nil {
				return err
			}
			p.Extra[k] = val
		}
	}

	return nil
}

// Settings is the Claude-flavored settings file (claude.settings.json,
// gemini.settings.json, and the target .claude/settings.json). Unknown
// top-level fields are preserved in Extra.
type Settings struct {
	APIKeyHelper          *string                `json:"apiKeyHelper,omitempty"`
	CleanupPeriodDays     *uint32                `json:"cleanupPeriodDays,omitempty"`
	Env                   map[string]string      `json:"env,omitempty"`
	IncludeCoAuthoredBy   *bool                  `json:"includeCoAuthoredBy,omitempty"`
	Permissions           *Permissions           `json:"permissions,omitempty"`
	PreferredNotifChannel *string                `json:"preferredNotifChannel,omitempty"`
	Servers               map[string]*mcp.Server `json:"mcpServers,omitempty"`

	// Extra holds top-level fields this version doesn't know about.
	Extra map[string]any `json:"-"`
}

// MarshalJSON implements json.Marshaler to include unknown fields in output.
func (s *Settings) MarshalJSON() ([]byte, error) {
	result := make(map[string]any)
	for k, v := range s.Extra {
		result[k] = v
	}

	if s.APIKeyHelper != nil {
		result["apiKeyHelper"] = *s.APIKeyHelper
	}
	if s.CleanupPeriodDays != nil {
		result["cleanupPeriodDays"] = *s.CleanupPeriodDays
	}
	if s.Env != nil {
		result["env"] = s.Env
	}
	if s.IncludeCoAuthoredBy != nil {
		result["includeCoAuthoredBy"] = *s.IncludeCoAuthoredBy
	}
	if s.Permissions != nil {
		result["permissions"] = s.Permissions
	}
	if s.PreferredNotifChannel != nil {
		result["preferredNotifChannel"] = *s.PreferredNotifChannel
	}
	if s.Servers != nil {
		result["mcpServers"] = s.Servers
	}

	return json.Marshal(result)
}

// UnmarshalJSON implements json.Unmarshaler to capture unknown fields.
func (s *Settings) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["apiKeyHelper"]; ok {
		if err := json.Unmarshal(v, &s.APIKeyHelper); err != nil {
			return err
		}
		delete(raw, "apiKeyHelper")
	}
	if v, ok := raw["cleanupPeriodDays"]; ok {
		if err := json.Unmarshal(v, &s.CleanupPeriodDays); err != nil {
			return err
		}
		delete(raw, "cleanupPeriodDays")
	}
	if v, ok := raw["env"]; ok {
		if err := json.Unmarshal(v, &s.Env); err != nil {
			return err
		}
		delete(raw, "env")
	}
	if v, ok := raw["includeCoAuthoredBy"]; ok {
		if err := json.Unmarshal(v, &s.IncludeCoAuthoredBy); err != nil {
			return err
		}
		delete(raw, "includeCoAuthoredBy")
	}
	if v, ok := raw["permissions"]; ok {
		if err := json.Unmarshal(v, &s.Permissions); err != nil {
			return err
		}
		delete(raw, "permissions")
	}
	if v, ok := raw["preferredNotifChannel"]; ok {
		if err := json.Unmarshal(v, &s.PreferredNotifChannel); err != nil {
			return err
		}
		delete(raw, "preferredNotifChannel")
	}
	if v, ok := raw["mcpServers"]; ok {
		if err := json.Unmarshal(v, &s.Servers); err != nil {
			return err
		}
		delete(raw, "mcpServers")
	}

	if len(raw) > 0 {
		s.Extra = make(map[string]any, len(raw))
		for k, v := range raw {
			var val any
			if err := json.Unmarshal(v, &val); err != nil {
				return err
			}
			s.Extra[k] = val
		}
	}

	return nil
}

// HasContent reports whether the settings carry anything worth writing
// once the server map is stripped.
func (s *Settings) HasContent() bool {
	if s == nil {
		return false
	}
	return s.APIKeyHelper != nil ||
		s.CleanupPeriodDays != nil ||
		s.Env != nil ||
		s.IncludeCoAuthoredBy != nil ||
		s.Permissions != nil ||
		s.PreferredNotifChannel != nil ||
		len(s.Extra) > 0
}

// WithoutServers returns a copy with the mcpServers map removed.
// Servers are projected into dedicated files, never into settings.
func (s *Settings) WithoutServers() *Settings {
	if s == nil {
		return nil
	}
	clone := *s
	clone.Servers = nil
	return &clone
}

// MergeFrom overlays non-nil fields of source onto s. Unknown fields are
// deep-merged so nested state from either side survives.
func (s *Settings) MergeFrom(source *Settings) {
	if source == nil {
		return
	}

	if source.APIKeyHelper != nil {
		s.APIKeyHelper = source.APIKeyHelper
	}
	if source.CleanupPeriodDays != nil {
		s.CleanupPeriodDays = source.CleanupPeriodDays
	}
	if source.Env != nil {
		s.Env = source.Env
	}
	if source.IncludeCoAuthoredBy != nil {
		s.IncludeCoAuthoredBy = source.IncludeCoAuthoredBy
	}
	if source.Permissions != nil {
		s.Permissions = source.Permissions
	}
	if source.PreferredNotifChannel != nil {
		s.PreferredNotifChannel = source.PreferredNotifChannel
	}

	if len(source.Extra) > 0 {
		if s.Extra == nil {
			s.Extra = make(map[string]any, len(source.Extra))
		}
		translate.DeepMergeMaps(s.Extra, source.Extra)
	}
}

// ToMap renders the settings as a generic JSON value tree.
func (s *Settings) ToMap() (map[string]any, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
