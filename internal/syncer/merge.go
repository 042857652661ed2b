package syncer

import (
	"encoding/json"

	"github.com/thoreinstein/claudius/internal/agent"
	"github.com/thoreinstein/claudius/internal/errors"
	"github.com/thoreinstein/claudius/internal/mcp"
	"github.com/thoreinstein/claudius/internal/mcp/parser"
	"github.com/thoreinstein/claudius/internal/merge"
	"github.com/thoreinstein/claudius/internal/settings"
	"github.com/thoreinstein/claudius/internal/translate"
)

// mergeAll folds the sources into the target document. A local-scoped
// Claude Code sync nests servers under the project path key, Gemini
// settings merge into the document body, and non-Claude agents in
// global mode receive the settings fields as top-level keys.
func (s *Syncer) mergeAll(doc *mcp.Document, src *sources, ctx agentContext, global bool) error {
	if ctx.isClaudeCode && !global && ctx.scope == agent.ScopeLocal {
		if err := s.mergeLocalServers(doc, src.servers); err != nil {
			return err
		}
	} else {
		before := len(doc.Servers)
		if err := merge.Servers(doc, src.servers, merge.DefaultStrategy, s.prompter); err != nil {
			return err
		}
		s.logger.Debug("merged servers", "before", before, "after", len(doc.Servers))
	}

	if ctx.isGemini && src.settings != nil {
		if err := s.mergeGeminiSettings(doc, src.settings); err != nil {
			return err
		}
	}

	// Claude variants keep settings in dedicated files and Codex keeps
	// them in its TOML; everything else gets them inline when global.
	if global && !ctx.isCodex && !ctx.isClaude {
		if err := merge.Settings(doc, src.settings, merge.DefaultStrategy, s.prompter); err != nil {
			return err
		}
	}

	return nil
}

// mergeLocalServers merges servers into the per-project section of
// ~/.claude.json, keyed by the absolute project directory.
func (s *Syncer) mergeLocalServers(doc *mcp.Document, sf *mcp.ServersFile) error {
	projectKey := s.projectDir

	var projectDoc *mcp.Document
	if raw, ok := doc.Extra[projectKey]; ok {
		if data, err := json.Marshal(raw); err == nil {
			if parsed, err := parser.ParseDocument(data); err == nil {
				projectDoc = parsed
			}
		}
	}
	if projectDoc == nil {
		projectDoc = mcp.NewDocument()
	}

	before := len(projectDoc.Servers)
	if err := merge.Servers(projectDoc, sf, merge.DefaultStrategy, s.prompter); err != nil {
		return err
	}
	s.logger.Debug("merged local servers", "project", projectKey, "before", before, "after", len(projectDoc.Servers))

	data, err := json.Marshal(projectDoc)
	if err != nil {
		return errors.Wrap(err, "encoding project servers")
	}
	var value map[string]any
	if err := json.Unmarshal(data, &value); err != nil {
		return errors.Wrap(err, "encoding project servers")
	}

	if doc.Extra == nil {
		doc.Extra = make(map[string]any)
	}
	doc.Extra[projectKey] = value
	return nil
}

// mergeGeminiSettings merges a Gemini settings source into the target
// document: its servers join the server map and everything else
// deep-merges into the document body after legacy flat keys are
// migrated to their nested categories.
func (s *Syncer) mergeGeminiSettings(doc *mcp.Document, st *settings.Settings) error {
	if st.Servers != nil {
		sf := &mcp.ServersFile{Servers: st.Servers}
		if err := merge.Servers(doc, sf, merge.DefaultStrategy, s.prompter); err != nil {
			return err
		}
	}

	m, err := st.ToMap()
	if err != nil {
		return errors.Wrap(err, "encoding gemini settings")
	}
	delete(m, "mcpServers")
	settings.MigrateLegacyGeminiKeys(m)

	if doc.Extra == nil {
		doc.Extra = make(map[string]any)
	}
	translate.DeepMergeMaps(doc.Extra, m)
	return nil
}
