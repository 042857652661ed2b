package mcp

import (
	"encoding/json"
	"reflect"
)

// Server transport type constants.
const (
	// TransportStdio indicates local process communication via stdin/stdout.
	// This is the default transport when a Command is specified.
	TransportStdio = "stdio"

	// TransportSSE indicates remote server communication via Server-Sent Events.
	TransportSSE = "sse"

	// TransportHTTP indicates remote server communication via streamable HTTP.
	TransportHTTP = "http"
)

// Server represents a single MCP server definition as it appears in
// mcpServers.json and in agent target files.
type Server struct {
	// Command is the executable path for local (stdio) servers.
	Command string `json:"command,omitempty"`

	// Args are command-line arguments passed to the Command executable.
	Args []string `json:"args,omitempty"`

	// Env contains environment variables passed to the server process.
	Env map[string]string `json:"env,omitempty"`

	// Type is the declared transport: "stdio", "sse" or "http".
	// Empty means the transport is inferred from Command/URL.
	Type string `json:"type,omitempty"`

	// URL is the server endpoint for remote servers.
	URL string `json:"url,omitempty"`

	// Headers contains HTTP headers for remote transports.
	Headers map[string]string `json:"headers,omitempty"`

	// Extra holds JSON fields not explicitly defined in this struct.
	// They survive a read-merge-write round trip untouched.
	Extra map[string]any `json:"-"`
}

// IsLocal returns true if this server uses local (stdio) transport.
func (s *Server) IsLocal() bool {
	if s.Type == TransportStdio {
		return true
	}
	return s.Type == "" && s.Command != ""
}

// IsRemote returns true if this server uses a remote transport.
func (s *Server) IsRemote() bool {
	if s.Type == TransportSSE || s.Type == TransportHTTP {
		return true
	}
	return s.Type == "" && s.URL != "" && s.Command == ""
}

// Equal reports whether two server definitions are semantically identical,
// including their unknown fields.
func (s *Server) Equal(other *Server) bool {
	if s == nil || other == nil {
		return s == other
	}
	return reflect.DeepEqual(s, other)
}

// MarshalJSON implements json.Marshaler to include unknown fields in output.
func (s *Server) MarshalJSON() ([]byte, error) {
	result := make(map[string]any)

	// Unknown fields first so known fields take precedence.
	for k, v := range s.Extra {
		result[k] = v
	}

	if s.Command != "" {
		result["command"] = s.Command
	}
	if len(s.Args) > 0 {
		result["args"] = s.Args
	}
	if len(s.Env) > 0 {
		result["env"] = s.Env
	}
	if s.Type != "" {
		result["type"] = s.Type
	}
	if s.URL != "" {
		result["url"] = s.URL
	}
	if len(s.Headers) > 0 {
		result["headers"] = s.Headers
	}

	return json.Marshal(result)
}

// UnmarshalJSON implements json.Unmarshaler to capture unknown fields.
func (s *Server) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["command"]; ok {
		if err := json.Unmarshal(v, &s.Command); err != nil {
			return err
		}
		delete(raw, "command")
	}
	if v, ok := raw["args"]; ok {
		if err := json.Unmarshal(v, &s.Args); err != nil {
			return err
		}
		delete(raw, "args")
	}
	if v, ok := raw["env"]; ok {
		if err := json.Unmarshal(v, &s.Env); err != nil {
			return err
		}
		delete(raw, "env")
	}
	if v, ok := raw["type"]; ok {
		if err := json.Unmarshal(v, &s.Type); err != nil {
			return err
		}
		delete(raw, "type")
	}
	if v, ok := raw["url"]; ok {
		if err := json.Unmarshal(v, &s.URL); err != nil {
			return err
		}
		delete(raw, "url")
	}
	if v, ok := raw["headers"]; ok {
		if err := json.Unmarshal(v, &s.Headers); err != nil {
			return err
		}
		delete(raw, "headers")
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

// ServersFile represents the source mcpServers.json file, whose only
// content is the mcpServers map.
type ServersFile struct {
	// Servers maps server names to their definitions.
	Servers map[string]*Server `json:"mcpServers"`
}

// NewServersFile creates a ServersFile with an initialized map.
func NewServersFile() *ServersFile {
	return &ServersFile{Servers: make(map[string]*Server)}
}

// Document represents an agent target config file: an optional mcpServers
// map plus arbitrary top-level settings that must be preserved verbatim.
//
// A nil Servers map means the file had no mcpServers key at all, which is
// different from an empty map and must survive a round trip.
type Document struct {
	// Servers maps server names to their definitions.
	Servers map[string]*Server

	// Extra holds every other top-level key in the file.
	Extra map[string]any
}

// NewDocument creates a Document with no servers and an initialized
// extras map.
func NewDocument() *Document {
	return &Document{Extra: make(map[string]any)}
}

// EnsureServers initializes the servers map in place if absent and
// returns it.
func (d *Document) EnsureServers() map[string]*Server {
	if d.Servers == nil {
		d.Servers = make(map[string]*Server)
	}
	return d.Servers
}

// MarshalJSON implements json.Marshaler to include unknown fields in output.
func (d *Document) MarshalJSON() ([]byte, error) {
	result := make(map[string]any)

	for k, v := range d.Extra {
		result[k] = v
	}

	if d.Servers != nil {
		result["mcpServers"] = d.Servers
	}

	return json.Marshal(result)
}

// UnmarshalJSON implements json.Unmarshaler to capture unknown fields.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["mcpServers"]; ok {
		if err := json.Unmarshal(v, &d.Servers); err != nil {
			return err
		}
		delete(raw, "mcpServers")
	}

	d.Extra = make(map[string]any, len(raw))
	for k, v := range raw {
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return err
		}
		d.Extra[k] = val
	}

	return nil
}
