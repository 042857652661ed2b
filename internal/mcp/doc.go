// Package mcp provides the MCP (Model Context Protocol) server
// configuration types claudius works with.
//
// Two file shapes exist. The source [ServersFile] is the user-maintained
// mcpServers.json under the claudius config directory. The [Document] is
// an agent target config file (~/.claude.json, .mcp.json,
// .gemini/settings.json) that carries an optional mcpServers map plus
// arbitrary other settings.
//
// # Server Configuration
//
// The [Server] type represents a single MCP server with support for both
// local (stdio) and remote (sse/http) transports:
//
//	// Local stdio server
//	server := &mcp.Server{
//	    Command: "npx",
//	    Args:    []string{"-y", "@modelcontextprotocol/server-github"},
//	    Env:     map[string]string{"GITHUB_TOKEN": "${GITHUB_TOKEN}"},
//	}
//
//	// Remote server
//	server := &mcp.Server{
//	    URL:     "https://api.example.com/mcp",
//	    Type:    mcp.TransportSSE,
//	    Headers: map[string]string{"Authorization": "Bearer ${API_KEY}"},
//	}
//
// Use the [Server.IsLocal] and [Server.IsRemote] helpers to determine the
// transport type.
//
// # Unknown Field Preservation
//
// All types preserve unknown JSON fields through a marshal/unmarshal
// cycle. Agents keep adding new keys to their config files, and a sync
// must never destroy state it does not understand:
//
//	data := []byte(`{"mcpServers": {...}, "futureField": "value"}`)
//	var doc mcp.Document
//	json.Unmarshal(data, &doc)
//	output, _ := json.Marshal(&doc)
//	// output still contains futureField
//
// A [Document] additionally distinguishes a missing mcpServers key from an
// empty one; a file that never mentioned mcpServers stays that way.
package mcp
