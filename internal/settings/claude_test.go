package settings

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/claudius/internal/mcp"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func i64Ptr(n int64) *int64   { return &n }

func TestSettingsUnknownFieldsRoundTrip(t *testing.T) {
	input := []byte(`{
		"apiKeyHelper": "/bin/helper",
		"permissions": {"allow": ["Read"], "futurePerm": true},
		"mcpServers": {"github": {"command": "npx"}},
		"hooks": {"PreToolUse": []},
		"statusLine": {"type": "command"}
	}`)

	var s Settings
	require.NoError(t, json.Unmarshal(input, &s))

	assert.Equal(t, "/bin/helper", *s.APIKeyHelper)
	require.NotNil(t, s.Permissions)
	assert.Equal(t, []string{"Read"}, s.Permissions.Allow)
	assert.Equal(t, true, s.Permissions.Extra["futurePerm"])
	require.Contains(t, s.Servers, "github")
	assert.Contains(t, s.Extra, "hooks")
	assert.Contains(t, s.Extra, "statusLine")

	out, err := json.Marshal(&s)
	require.NoError(t, err)

	var round map[string]any
	require.NoError(t, json.Unmarshal(out, &round))
	assert.Contains(t, round, "hooks")
	assert.Contains(t, round, "statusLine")
	perms := round["permissions"].(map[string]any)
	assert.Equal(t, true, perms["futurePerm"])
}

func TestSettingsHasContent(t *testing.T) {
	tests := []struct {
		name     string
		settings *Settings
		want     bool
	}{
		{"nil", nil, false},
		{"empty", &Settings{}, false},
		{"only servers", &Settings{Servers: map[string]*mcp.Server{"a": {Command: "x"}}}, false},
		{"env set", &Settings{Env: map[string]string{"A": "1"}}, true},
		{"permissions set", &Settings{Permissions: &Permissions{Allow: []string{"Read"}}}, true},
		{"unknown field set", &Settings{Extra: map[string]any{"hooks": map[string]any{}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.settings.HasContent())
		})
	}
}

func TestSettingsWithoutServers(t *testing.T) {
	s := &Settings{
		Env:     map[string]string{"A": "1"},
		Servers: map[string]*mcp.Server{"a": {Command: "x"}},
	}

	clone := s.WithoutServers()
	assert.Nil(t, clone.Servers)
	assert.Equal(t, s.Env, clone.Env)
	assert.NotNil(t, s.Servers)
}

func TestSettingsMergeFrom(t *testing.T) {
	target := &Settings{
		APIKeyHelper: strPtr("/old/helper"),
		Env:          map[string]string{"OLD": "1"},
		Extra: map[string]any{
			"hooks": map[string]any{"PreToolUse": "keep"},
			"local": true,
		},
	}
	source := &Settings{
		APIKeyHelper:        strPtr("/new/helper"),
		IncludeCoAuthoredBy: boolPtr(false),
		Extra: map[string]any{
			"hooks": map[string]any{"PostToolUse": "add"},
		},
	}

	target.MergeFrom(source)

	assert.Equal(t, "/new/helper", *target.APIKeyHelper)
	assert.Equal(t, false, *target.IncludeCoAuthoredBy)
	assert.Equal(t, map[string]string{"OLD": "1"}, target.Env)
	hooks := target.Extra["hooks"].(map[string]any)
	assert.Equal(t, "keep", hooks["PreToolUse"])
	assert.Equal(t, "add", hooks["PostToolUse"])
	assert.Equal(t, true, target.Extra["local"])
}

func TestMigrateLegacyGeminiKeys(t *testing.T) {
	t.Run("flat keys move into categories", func(t *testing.T) {
		m := map[string]any{
			"theme":           "dark",
			"contextFileName": "GEMINI.md",
			"autoAccept":      true,
		}

		MigrateLegacyGeminiKeys(m)

		assert.NotContains(t, m, "theme")
		assert.Equal(t, map[string]any{"theme": "dark"}, m["ui"])
		assert.Equal(t, map[string]any{"fileName": "GEMINI.md"}, m["context"])
		assert.Equal(t, map[string]any{"autoAccept": true}, m["tools"])
	})

	t.Run("merges into existing category", func(t *testing.T) {
		m := map[string]any{
			"ui":       map[string]any{"accessibility": true},
			"theme":    "light",
			"hideTips": true,
		}

		MigrateLegacyGeminiKeys(m)

		assert.Equal(t, map[string]any{
			"accessibility": true,
			"theme":         "light",
			"hideTips":      true,
		}, m["ui"])
	})

	t.Run("nested value wins over legacy", func(t *testing.T) {
		m := map[string]any{
			"ui":    map[string]any{"theme": "nested"},
			"theme": "flat",
		}

		MigrateLegacyGeminiKeys(m)

		assert.Equal(t, "nested", m["ui"].(map[string]any)["theme"])
		assert.NotContains(t, m, "theme")
	})

	t.Run("non-object category blocks migration", func(t *testing.T) {
		m := map[string]any{
			"ui":    "not-a-map",
			"theme": "dark",
		}

		MigrateLegacyGeminiKeys(m)

		assert.Equal(t, "dark", m["theme"])
		assert.Equal(t, "not-a-map", m["ui"])
	})
}
