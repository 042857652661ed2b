package validator

import (
	"io/fs"

	"github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/claudius/internal/errors"
	"github.com/thoreinstein/claudius/pkg/fileutil"
)

// knownCodexFields is non-exhaustive for newer Codex CLI releases; the
// tail entries only suppress spurious warnings.
var knownCodexFields = []string{
	"model",
	"review_model",
	"model_provider",
	"model_context_window",
	"approval_policy",
	"notify",
	"model_providers",
	"shell_environment_policy",
	"sandbox_mode",
	"sandbox_workspace_write",
	"sandbox",
	"history",
	"mcp_servers",
	"check_for_update_on_startup",
	"instructions",
	"developer_instructions",
	"features",
	"profile",
	"profiles",
	"projects",
	"project_root_markers",
	"project_doc_max_bytes",
	"project_doc_fallback_filenames",
	"tool_output_token_limit",
	"tui",
	"hide_agent_reasoning",
	"show_raw_agent_reasoning",
	"file_opener",
	"cli_auth_credentials_store",
	"forced_chatgpt_workspace_id",
	"forced_login_method",
	"chatgpt_base_url",
	"otel",
	"oss_provider",
	"disable_response_storage",
}

var knownShellEnvFields = []string{
	"inherit",
	"ignore_default_excludes",
	"exclude",
	"set",
	"include_only",
	"experimental_use_profile",
}

var knownSandboxFields = []string{"mode", "writable_roots", "network_access"}

var knownSandboxWorkspaceWriteFields = []string{
	"writable_roots",
	"network_access",
	"exclude_tmpdir_env_var",
	"exclude_slash_tmp",
}

var knownHistoryFields = []string{"persistence", "max_bytes"}

// ValidateCodexSettings returns warnings for unknown fields in a
// decoded Codex TOML value. Model providers are skipped since they
// carry arbitrary extra fields.
func ValidateCodexSettings(value any) []string {
	table, ok := value.(map[string]any)
	if !ok {
		return nil
	}

	var warnings []string
	for _, key := range sortedKeys(table) {
		if !containsField(knownCodexFields, key) {
			warnings = append(warnings, "Unknown setting '"+key+"' found in Codex configuration")
		}

		switch key {
		case "shell_environment_policy":
			warnings = append(warnings, validateObjectFields(table[key], knownShellEnvFields, "shell_environment_policy")...)
		case "sandbox_workspace_write":
			warnings = append(warnings, validateObjectFields(table[key], knownSandboxWorkspaceWriteFields, "sandbox_workspace_write")...)
		case "sandbox":
			warnings = append(warnings, validateObjectFields(table[key], knownSandboxFields, "sandbox")...)
		case "history":
			warnings = append(warnings, validateObjectFields(table[key], knownHistoryFields, "history")...)
		}
	}
	return warnings
}

// ValidateCodexFile parses a Codex TOML file and validates it. A
// missing file produces no warnings.
func ValidateCodexFile(path string) (*Result, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Result{}, nil
		}
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	var value map[string]any
	if err := toml.Unmarshal(data, &value); err != nil {
		return nil, errors.Wrapf(err, "parsing %s: invalid TOML syntax", path)
	}

	return &Result{Warnings: ValidateCodexSettings(value)}, nil
}
