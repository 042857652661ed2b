package validator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateClaudeSettings(t *testing.T) {
	t.Run("known fields produce no warnings", func(t *testing.T) {
		warnings := ValidateClaudeSettings(map[string]any{
			"apiKeyHelper":      "/bin/helper",
			"cleanupPeriodDays": float64(30),
			"env":               map[string]any{"KEY": "value"},
			"permissions": map[string]any{
				"allow":       []any{"Read"},
				"deny":        []any{"Write"},
				"defaultMode": "allow",
			},
			"preferredNotifChannel": "email",
			"mcpServers":            map[string]any{},
			"model":                 "gpt-5",
		})
		assert.Empty(t, warnings)
	})

	t.Run("unknown fields warn", func(t *testing.T) {
		warnings := ValidateClaudeSettings(map[string]any{
			"apiKeyHelper":   "/bin/helper",
			"anotherUnknown": float64(123),
			"unknownField":   "value",
		})
		require.Len(t, warnings, 2)
		assert.Equal(t, "Unknown setting 'anotherUnknown' found in Claude/Codex configuration", warnings[0])
		assert.Equal(t, "Unknown setting 'unknownField' found in Claude/Codex configuration", warnings[1])
	})

	t.Run("unknown permission fields warn", func(t *testing.T) {
		warnings := ValidateClaudeSettings(map[string]any{
			"permissions": map[string]any{
				"allow":       []any{"Read"},
				"unknownPerm": "value",
			},
		})
		require.Len(t, warnings, 1)
		assert.Equal(t, "Unknown field 'unknownPerm' in permissions", warnings[0])
	})

	t.Run("non-object is ignored", func(t *testing.T) {
		assert.Empty(t, ValidateClaudeSettings("not an object"))
	})
}

func TestValidateGeminiSettings(t *testing.T) {
	t.Run("known fields produce no warnings", func(t *testing.T) {
		warnings := ValidateGeminiSettings(map[string]any{
			"$schema": "https://example.com/schema.json",
			"general": map[string]any{"preferredEditor": "code"},
			"ui":      map[string]any{"theme": "GitHub"},
			"mcpServers": map[string]any{
				"server": map[string]any{"command": "node", "args": []any{"server.js"}},
			},
			"telemetry": map[string]any{"enabled": false},
		})
		assert.Empty(t, warnings)
	})

	t.Run("unknown top-level field warns", func(t *testing.T) {
		warnings := ValidateGeminiSettings(map[string]any{"some_field": "value"})
		require.Len(t, warnings, 1)
		assert.Equal(t, "Unknown setting 'some_field' found in Gemini configuration", warnings[0])
	})

	t.Run("unknown server field warns", func(t *testing.T) {
		warnings := ValidateGeminiSettings(map[string]any{
			"mcpServers": map[string]any{
				"github": map[string]any{"command": "npx", "bogus": true},
			},
		})
		require.Len(t, warnings, 1)
		assert.Equal(t, "Unknown field 'bogus' in mcpServers.github", warnings[0])
	})

	t.Run("bad transport type warns", func(t *testing.T) {
		warnings := ValidateGeminiSettings(map[string]any{
			"mcpServers": map[string]any{
				"github": map[string]any{"type": "websocket"},
			},
		})
		require.Len(t, warnings, 1)
		assert.Equal(t, "Unknown mcpServers.github.type value 'websocket' (expected: stdio|sse|http)", warnings[0])
	})

	t.Run("unknown telemetry field warns", func(t *testing.T) {
		warnings := ValidateGeminiSettings(map[string]any{
			"telemetry": map[string]any{"enabled": true, "samplingRate": 0.5},
		})
		require.Len(t, warnings, 1)
		assert.Equal(t, "Unknown field 'samplingRate' in telemetry", warnings[0])
	})
}

func TestValidateCodexSettings(t *testing.T) {
	t.Run("known fields produce no warnings", func(t *testing.T) {
		warnings := ValidateCodexSettings(map[string]any{
			"model":           "gpt-5",
			"approval_policy": "never",
			"tui":             map[string]any{"anything": true},
			"sandbox_workspace_write": map[string]any{
				"network_access": true,
			},
			"model_providers": map[string]any{
				"openrouter": map[string]any{"arbitrary_field": "ok"},
			},
		})
		assert.Empty(t, warnings)
	})

	t.Run("unknown setting warns", func(t *testing.T) {
		warnings := ValidateCodexSettings(map[string]any{"bogus_setting": 1})
		require.Len(t, warnings, 1)
		assert.Equal(t, "Unknown setting 'bogus_setting' found in Codex configuration", warnings[0])
	})

	t.Run("nested section fields validate", func(t *testing.T) {
		warnings := ValidateCodexSettings(map[string]any{
			"shell_environment_policy": map[string]any{"inherit": "all", "bogus": true},
			"history":                  map[string]any{"persistence": "none", "retention": 7},
			"sandbox":                  map[string]any{"mode": "none", "level": 2},
		})
		assert.Contains(t, warnings, "Unknown field 'bogus' in shell_environment_policy")
		assert.Contains(t, warnings, "Unknown field 'retention' in history")
		assert.Contains(t, warnings, "Unknown field 'level' in sandbox")
	})
}

func TestValidateJSONFile(t *testing.T) {
	t.Run("claude file dispatch", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "claude.settings.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"unknownField": "x"}`), 0o644))

		_, result, err := ValidateJSONFile(path)
		require.NoError(t, err)
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "unknownField")
	})

	t.Run("gemini file dispatch", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gemini.settings.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"some_field": "x"}`), 0o644))

		_, result, err := ValidateJSONFile(path)
		require.NoError(t, err)
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "Gemini configuration")
	})

	t.Run("unknown file type skips field validation", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "unknown.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"someField": "x"}`), 0o644))

		_, result, err := ValidateJSONFile(path)
		require.NoError(t, err)
		assert.Empty(t, result.Warnings)
	})

	t.Run("invalid JSON is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "claude.json")
		require.NoError(t, os.WriteFile(path, []byte(`{ invalid json`), 0o644))

		_, _, err := ValidateJSONFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid JSON syntax")
	})
}

func TestPreValidate(t *testing.T) {
	t.Run("missing file has no warnings", func(t *testing.T) {
		result, err := PreValidate(filepath.Join(t.TempDir(), "claude.json"))
		require.NoError(t, err)
		assert.False(t, result.HasWarnings())
	})

	t.Run("file with unknown field warns", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "claude.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"unknownField": "x"}`), 0o644))

		result, err := PreValidate(path)
		require.NoError(t, err)
		assert.True(t, result.HasWarnings())
	})
}

func TestValidateCodexFile(t *testing.T) {
	t.Run("missing file has no warnings", func(t *testing.T) {
		result, err := ValidateCodexFile(filepath.Join(t.TempDir(), "config.toml"))
		require.NoError(t, err)
		assert.False(t, result.HasWarnings())
	})

	t.Run("unknown setting warns", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("bogus_setting = 1\n"), 0o644))

		result, err := ValidateCodexFile(path)
		require.NoError(t, err)
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "bogus_setting")
	})
}
