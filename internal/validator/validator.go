// Package validator checks agent settings files for unknown fields.
//
// Validation never blocks a sync. Every finding is a warning the user
// can read and choose to ignore; only unreadable or syntactically
// invalid files are errors.
package validator

import (
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/thoreinstein/claudius/internal/errors"
	"github.com/thoreinstein/claudius/pkg/fileutil"
)

// Result aggregates validation warnings for one file.
type Result struct {
	Warnings []string
}

// HasWarnings reports whether any warnings were found.
func (r *Result) HasWarnings() bool {
	return r != nil && len(r.Warnings) > 0
}

// knownClaudeFields covers Claude settings plus the Codex aliases that
// show up in JSON settings files.
var knownClaudeFields = []string{
	"apiKeyHelper",
	"cleanupPeriodDays",
	"env",
	"includeCoAuthoredBy",
	"permissions",
	"preferredNotifChannel",
	"mcpServers",
	"mcp_servers",
	"extra",
	"model",
	"modelProvider",
	"model_provider",
	"approvalPolicy",
	"approval_policy",
	"disableResponseStorage",
	"disable_response_storage",
	"notify",
	"modelProviders",
	"model_providers",
	"shellEnvironmentPolicy",
	"shell_environment_policy",
	"sandbox",
	"history",
}

var knownPermissionFields = []string{"allow", "deny", "defaultMode"}

// ValidateClaudeSettings returns warnings for unknown top-level and
// permission fields in a Claude or Codex JSON settings value.
func ValidateClaudeSettings(value any) []string {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil
	}

	var warnings []string
	for _, key := range sortedKeys(obj) {
		if !containsField(knownClaudeFields, key) {
			warnings = append(warnings, "Unknown setting '"+key+"' found in Claude/Codex configuration")
		}
		if key == "permissions" {
			warnings = append(warnings, validateObjectFields(obj[key], knownPermissionFields, "permissions")...)
		}
	}
	return warnings
}

// ValidateJSONFile parses a settings file and validates it according to
// its filename. Files mentioning gemini get the Gemini schema, claude
// or codex the Claude schema, anything else no field validation.
func ValidateJSONFile(path string) (any, *Result, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading %s", path)
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, nil, errors.Wrapf(err, "parsing %s: invalid JSON syntax", path)
	}

	var warnings []string
	switch {
	case strings.Contains(path, "gemini"):
		warnings = ValidateGeminiSettings(value)
	case strings.Contains(path, "claude"), strings.Contains(path, "codex"):
		warnings = ValidateClaudeSettings(value)
	}

	return value, &Result{Warnings: warnings}, nil
}

// PreValidate checks a settings file before a sync reads it. A missing
// file is fine and produces no warnings.
func PreValidate(path string) (*Result, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Result{}, nil
		}
		return nil, errors.Wrapf(err, "checking %s", path)
	}

	_, result, err := ValidateJSONFile(path)
	return result, err
}

func validateObjectFields(value any, known []string, section string) []string {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil
	}

	var warnings []string
	for _, key := range sortedKeys(obj) {
		if !containsField(known, key) {
			warnings = append(warnings, "Unknown field '"+key+"' in "+section)
		}
	}
	return warnings
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func containsField(fields []string, key string) bool {
	for _, f := range fields {
		if f == key {
			return true
		}
	}
	return false
}
