package settings

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/claudius/internal/errors"
	"github.com/thoreinstein/claudius/internal/mcp"
	"github.com/thoreinstein/claudius/internal/translate"
)

// ModelProvider describes one entry of the Codex model_providers table.
type ModelProvider struct {
	Name               *string
	BaseURL            *string
	EnvKey             *string
	HTTPHeaders        map[string]string
	EnvHTTPHeaders     map[string]string
	QueryParams        map[string]string
	WireAPI            *string
	RequiresOpenAIAuth *bool

	Extra map[string]any
}

// CodexSettings is the Codex config.toml model. Sections this version
// doesn't interpret are carried as generic maps so nothing is dropped on
// rewrite.
type CodexSettings struct {
	Model                  *string
	ReviewModel            *string
	ModelProvider          *string
	ModelContextWindow     *int64
	ApprovalPolicy         *string
	DisableResponseStorage *bool
	Notify                 []string
	ModelProviders         map[string]*ModelProvider
	ShellEnvironmentPolicy map[string]any
	SandboxMode            *string
	SandboxWorkspaceWrite  map[string]any
	Sandbox                map[string]any
	History                map[string]any
	Servers                map[string]map[string]any

	Extra map[string]any
}

// ParseCodexSettings decodes Codex TOML data.
func ParseCodexSettings(data []byte) (*CodexSettings, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "parsing codex settings")
	}
	return codexFromMap(raw), nil
}

// MarshalTOML renders the settings back to TOML.
func (c *CodexSettings) MarshalTOML() ([]byte, error) {
	out, err := toml.Marshal(c.toMap())
	if err != nil {
		return nil, errors.Wrap(err, "encoding codex settings")
	}
	return out, nil
}

// ToMap renders the settings as a generic value tree.
func (c *CodexSettings) ToMap() map[string]any {
	return c.toMap()
}

func codexFromMap(raw map[string]any) *CodexSettings {
	c := &CodexSettings{}

	c.Model = takeString(raw, "model")
	c.ReviewModel = takeString(raw, "review_model")
	c.ModelProvider = takeString(raw, "model_provider")
	c.ModelContextWindow = takeInt(raw, "model_context_window")
	c.ApprovalPolicy = takeString(raw, "approval_policy")
	c.DisableResponseStorage = takeBool(raw, "disable_response_storage")
	c.Notify = takeStringSlice(raw, "notify")
	c.ShellEnvironmentPolicy = takeMap(raw, "shell_environment_policy")
	c.SandboxMode = takeString(raw, "sandbox_mode")
	c.SandboxWorkspaceWrite = takeMap(raw, "sandbox_workspace_write")
	c.Sandbox = takeMap(raw, "sandbox")
	c.History = takeMap(raw, "history")

	if providers := takeMap(raw, "model_providers"); providers != nil {
		c.ModelProviders = make(map[string]*ModelProvider, len(providers))
		for name, v := range providers {
			m, ok := v.(map[string]any)
			if !ok {
				continue
			}
			c.ModelProviders[name] = providerFromMap(m)
		}
	}

	if servers := takeMap(raw, "mcp_servers"); servers != nil {
		c.Servers = make(map[string]map[string]any, len(servers))
		for name, v := range servers {
			if m, ok := v.(map[string]any); ok {
				c.Servers[name] = m
			}
		}
	}

	if len(raw) > 0 {
		c.Extra = raw
	}
	return c
}

func (c *CodexSettings) toMap() map[string]any {
	out := make(map[string]any)
	for k, v := range c.Extra {
		out[k] = v
	}

	putString(out, "model", c.Model)
	putString(out, "review_model", c.ReviewModel)
	putString(out, "model_provider", c.ModelProvider)
	if c.ModelContextWindow != nil {
		out["model_context_window"] = *c.ModelContextWindow
	}
	putString(out, "approval_policy", c.ApprovalPolicy)
	if c.DisableResponseStorage != nil {
		out["disable_response_storage"] = *c.DisableResponseStorage
	}
	if c.Notify != nil {
		out["notify"] = c.Notify
	}
	if c.ModelProviders != nil {
		providers := make(map[string]any, len(c.ModelProviders))
		for name, p := range c.ModelProviders {
			providers[name] = p.toMap()
		}
		out["model_providers"] = providers
	}
	if c.ShellEnvironmentPolicy != nil {
		out["shell_environment_policy"] = c.ShellEnvironmentPolicy
	}
	putString(out, "sandbox_mode", c.SandboxMode)
	if c.SandboxWorkspaceWrite != nil {
		out["sandbox_workspace_write"] = c.SandboxWorkspaceWrite
	}
	if c.Sandbox != nil {
		out["sandbox"] = c.Sandbox
	}
	if c.History != nil {
		out["history"] = c.History
	}
	if c.Servers != nil {
		servers := make(map[string]any, len(c.Servers))
		for name, s := range c.Servers {
			servers[name] = s
		}
		out["mcp_servers"] = servers
	}
	return out
}

func providerFromMap(raw map[string]any) *ModelProvider {
	p := &ModelProvider{}
	p.Name = takeString(raw, "name")
	p.BaseURL = takeString(raw, "base_url")
	p.EnvKey = takeString(raw, "env_key")
	p.HTTPHeaders = takeStringMap(raw, "http_headers")
	p.EnvHTTPHeaders = takeStringMap(raw, "env_http_headers")
	p.QueryParams = takeStringMap(raw, "query_params")
	p.WireAPI = takeString(raw, "wire_api")
	p.RequiresOpenAIAuth = takeBool(raw, "requires_openai_auth")
	if len(raw) > 0 {
		p.Extra = raw
	}
	return p
}

func (p *ModelProvider) toMap() map[string]any {
	out := make(map[string]any)
	for k, v := range p.Extra {
		out[k] = v
	}
	putString(out, "name", p.Name)
	putString(out, "base_url", p.BaseURL)
	putString(out, "env_key", p.EnvKey)
	if p.HTTPHeaders != nil {
		out["http_headers"] = p.HTTPHeaders
	}
	if p.EnvHTTPHeaders != nil {
		out["env_http_headers"] = p.EnvHTTPHeaders
	}
	if p.QueryParams != nil {
		out["query_params"] = p.QueryParams
	}
	putString(out, "wire_api", p.WireAPI)
	if p.RequiresOpenAIAuth != nil {
		out["requires_openai_auth"] = *p.RequiresOpenAIAuth
	}
	return out
}

// MergeFrom overlays the populated fields of source onto c. Model
// providers merge field-wise per name and unknown sections deep-merge.
func (c *CodexSettings) MergeFrom(source *CodexSettings) {
	if source == nil {
		return
	}

	if source.Model != nil {
		c.Model = source.Model
	}
	if source.ReviewModel != nil {
		c.ReviewModel = source.ReviewModel
	}
	if source.ModelProvider != nil {
		c.ModelProvider = source.ModelProvider
	}
	if source.ModelContextWindow != nil {
		c.ModelContextWindow = source.ModelContextWindow
	}
	if source.ApprovalPolicy != nil {
		c.ApprovalPolicy = source.ApprovalPolicy
	}
	if source.DisableResponseStorage != nil {
		c.DisableResponseStorage = source.DisableResponseStorage
	}
	if source.Notify != nil {
		c.Notify = source.Notify
	}
	if source.ShellEnvironmentPolicy != nil {
		c.ShellEnvironmentPolicy = source.ShellEnvironmentPolicy
	}
	if source.SandboxMode != nil {
		c.SandboxMode = source.SandboxMode
	}
	if source.SandboxWorkspaceWrite != nil {
		c.SandboxWorkspaceWrite = source.SandboxWorkspaceWrite
	}
	if source.Sandbox != nil {
		c.Sandbox = source.Sandbox
	}
	if source.History != nil {
		c.History = source.History
	}

	if source.ModelProviders != nil {
		if c.ModelProviders == nil {
			c.ModelProviders = make(map[string]*ModelProvider, len(source.ModelProviders))
		}
		for name, sp := range source.ModelProviders {
			existing, ok := c.ModelProviders[name]
			if !ok {
				c.ModelProviders[name] = sp
				continue
			}
			existing.mergeFrom(sp)
		}
	}

	if len(source.Extra) > 0 {
		if c.Extra == nil {
			c.Extra = make(map[string]any, len(source.Extra))
		}
		translate.DeepMergeMaps(c.Extra, source.Extra)
	}
}

func (p *ModelProvider) mergeFrom(source *ModelProvider) {
	if source.Name != nil {
		p.Name = source.Name
	}
	if source.BaseURL != nil {
		p.BaseURL = source.BaseURL
	}
	if source.EnvKey != nil {
		p.EnvKey = source.EnvKey
	}
	if source.HTTPHeaders != nil {
		p.HTTPHeaders = source.HTTPHeaders
	}
	if source.EnvHTTPHeaders != nil {
		p.EnvHTTPHeaders = source.EnvHTTPHeaders
	}
	if source.QueryParams != nil {
		p.QueryParams = source.QueryParams
	}
	if source.WireAPI != nil {
		p.WireAPI = source.WireAPI
	}
	if source.RequiresOpenAIAuth != nil {
		p.RequiresOpenAIAuth = source.RequiresOpenAIAuth
	}
	if len(source.Extra) > 0 {
		if p.Extra == nil {
			p.Extra = make(map[string]any, len(source.Extra))
		}
		translate.DeepMergeMaps(p.Extra, source.Extra)
	}
}

// Fields a stdio server definition cannot carry in Codex TOML.
var stdioUnsupported = []string{"url", "bearer_token_env_var", "http_headers", "env_http_headers"}

// Fields a remote server definition cannot carry in Codex TOML.
var remoteUnsupported = []string{"command", "args", "env", "cwd"}

// ConvertServers renders MCP server definitions as Codex mcp_servers
// tables. Servers with neither a command nor a URL are skipped, and
// fields the transport cannot express are filtered out.
func ConvertServers(servers map[string]*mcp.Server) map[string]map[string]any {
	out := make(map[string]map[string]any, len(servers))
	for name, s := range servers {
		if s == nil {
			continue
		}

		entry := make(map[string]any)
		switch {
		case s.URL != "":
			entry["url"] = s.URL
			if len(s.Headers) > 0 {
				entry["http_headers"] = s.Headers
			}
			copyExtras(entry, s.Extra, remoteUnsupported)
		case s.Command != "":
			entry["command"] = s.Command
			if len(s.Args) > 0 {
				entry["args"] = s.Args
			}
			if len(s.Env) > 0 {
				entry["env"] = s.Env
			}
			copyExtras(entry, s.Extra, stdioUnsupported)
		default:
			continue
		}
		out[name] = entry
	}
	return out
}

func copyExtras(entry map[string]any, extra map[string]any, skip []string) {
	for k, v := range extra {
		if contains(skip, k) {
			continue
		}
		converted, ok := translate.Value(v)
		if !ok {
			continue
		}
		entry[k] = converted
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func takeString(m map[string]any, key string) *string {
	if v, ok := m[key].(string); ok {
		delete(m, key)
		return &v
	}
	return nil
}

func takeBool(m map[string]any, key string) *bool {
	if v, ok := m[key].(bool); ok {
		delete(m, key)
		return &v
	}
	return nil
}

func takeInt(m map[string]any, key string) *int64 {
	if v, ok := m[key].(int64); ok {
		delete(m, key)
		return &v
	}
	return nil
}

func takeStringSlice(m map[string]any, key string) []string {
	v, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(v))
	for _, item := range v {
		s, ok := item.(string)
		if !ok {
			return nil
		}
		out = append(out, s)
	}
	delete(m, key)
	return out
}

func takeMap(m map[string]any, key string) map[string]any {
	if v, ok := m[key].(map[string]any); ok {
		delete(m, key)
		return v
	}
	return nil
}

func takeStringMap(m map[string]any, key string) map[string]string {
	v, ok := m[key].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(v))
	for k, item := range v {
		s, ok := item.(string)
		if !ok {
			return nil
		}
		out[k] = s
	}
	delete(m, key)
	return out
}

func putString(m map[string]any, key string, v *string) {
	if v != nil {
		m[key] = *v
	}
}
