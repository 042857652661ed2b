// Package parser provides JSON parsing and writing for MCP configuration
// files. It handles the source mcpServers.json as well as agent target
// documents, writing them back with stable formatting and atomic file
// operations.
package parser

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/thoreinstein/claudius/internal/errors"
	"github.com/thoreinstein/claudius/internal/mcp"
	"github.com/thoreinstein/claudius/pkg/fileutil"
)

// Sentinel errors for parser operations.
var (
	// ErrInvalidJSON indicates the input is not valid JSON.
	ErrInvalidJSON = errors.New("invalid JSON")

	// ErrMissingSource indicates the source mcpServers.json does not exist.
	ErrMissingSource = errors.New("mcpServers.json not found")
)

// ParseError wraps errors that occur during parsing with path context.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("parsing MCP config: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseServersFile reads the source server definitions from JSON bytes.
func ParseServersFile(data []byte) (*mcp.ServersFile, error) {
	var sf mcp.ServersFile
	if err := json.Unmarshal(data, &sf); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, fmt.Errorf("%w: %v at offset %d", ErrInvalidJSON, err, syntaxErr.Offset)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	if sf.Servers == nil {
		sf.Servers = make(map[string]*mcp.Server)
	}

	return &sf, nil
}

// ReadServersFile reads mcpServers.json from disk. A missing file is an
// error, since a sync without server definitions has nothing to do.
func ReadServersFile(path string) (*mcp.ServersFile, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ParseError{Path: path, Err: ErrMissingSource}
		}
		return nil, &ParseError{Path: path, Err: err}
	}

	sf, err := ParseServersFile(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	return sf, nil
}

// ParseDocument reads an agent target document from JSON bytes.
func ParseDocument(data []byte) (*mcp.Document, error) {
	if len(data) == 0 {
		return mcp.NewDocument(), nil
	}

	var doc mcp.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, fmt.Errorf("%w: %v at offset %d", ErrInvalidJSON, err, syntaxErr.Offset)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	return &doc, nil
}

// ReadDocument reads an agent target document from a file path.
// Returns an empty document (not an error) if the file doesn't exist,
// following the principle that a missing target means "nothing configured
// yet".
func ReadDocument(path string) (*mcp.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return mcp.NewDocument(), nil
		}
		return nil, &ParseError{Path: path, Err: err}
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	return doc, nil
}

// WriteDocument writes an agent target document to a file using an atomic
// write. Creates parent directories if they don't exist.
func WriteDocument(path string, doc *mcp.Document) error {
	if doc == nil {
		doc = mcp.NewDocument()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &ParseError{Path: path, Err: fmt.Errorf("creating directory: %w", err)}
	}

	if err := fileutil.AtomicWriteJSON(path, doc); err != nil {
		return &ParseError{Path: path, Err: err}
	}

	return nil
}

// WriteServersFile writes server definitions to a file using an atomic
// write. Creates parent directories if they don't exist.
func WriteServersFile(path string, sf *mcp.ServersFile) error {
	if sf == nil {
		sf = mcp.NewServersFile()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &ParseError{Path: path, Err: fmt.Errorf("creating directory: %w", err)}
	}

	if err := fileutil.AtomicWriteJSON(path, sf); err != nil {
		return &ParseError{Path: path, Err: err}
	}

	return nil
}
