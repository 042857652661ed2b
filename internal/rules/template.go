package rules

import (
	"log/slog"
	"os"
	"strings"

	"github.com/thoreinstein/claudius/internal/errors"
)

// TemplateMarker is the heading used to detect that the default
// template has already been appended to a context file.
const TemplateMarker = "## MCP Servers Configuration"

// DefaultTemplate is appended to a context file when no custom
// template is given.
const DefaultTemplate = `
## MCP Servers Configuration

This project uses the following MCP servers:

### Available Servers

Check ` + "`~/.config/claudius/mcpServers.json`" + ` for the complete list of configured MCP servers.

### Sync Configuration

To sync MCP server configuration to this project:

` + "```bash\nclaudius config sync\n```" + `

To sync to global configuration:

` + "```bash\nclaudius config sync --global\n```" + `

### Custom Configuration

You can override the default MCP servers by creating a local ` + "`mcpServers.json`" + ` file:

` + "```bash\nclaudius config sync --config ./mcpServers.json\n```" + `
`

// AppendTemplate appends a template to the context file at contextPath.
// An empty templatePath selects DefaultTemplate, whose append is
// idempotent: it is skipped when TemplateMarker is already present.
func AppendTemplate(templatePath, contextPath string, logger *slog.Logger) error {
	content := DefaultTemplate
	if templatePath != "" {
		data, err := os.ReadFile(templatePath)
		if err != nil {
			return errors.Wrapf(err, "reading template file %s", templatePath)
		}
		content = string(data)
	}

	if err := ensureParentDir(contextPath); err != nil {
		return err
	}

	if templatePath == "" {
		existing, err := os.ReadFile(contextPath)
		if err == nil && strings.Contains(string(existing), TemplateMarker) {
			logger.Info("MCP servers section already present", "path", contextPath)
			return nil
		}
	}

	return appendToFile(contextPath, content, "\n")
}
