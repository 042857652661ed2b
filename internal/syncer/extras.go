package syncer

import (
	"path/filepath"

	"github.com/thoreinstein/claudius/internal/agent"
	"github.com/thoreinstein/claudius/internal/command"
	"github.com/thoreinstein/claudius/internal/skill"
)

// syncCommands copies custom slash commands into the Claude commands
// directory. Failures are logged and never fail the sync.
func (s *Syncer) syncCommands(global bool) {
	sourceDir := filepath.Join(s.configDir, "commands")
	if !fileExists(sourceDir) {
		return
	}

	base := s.projectDir
	if global {
		base = s.homeDir
	}
	targetDir := filepath.Join(base, ".claude", "commands")

	s.logger.Debug("syncing custom slash commands", "source", sourceDir, "target", targetDir)
	synced, err := command.Sync(sourceDir, targetDir)
	if err != nil {
		s.logger.Warn("failed to sync commands", "error", err)
		return
	}
	if len(synced) > 0 {
		s.logger.Info("synced custom commands", "count", len(synced))
		for _, name := range synced {
			s.logger.Debug("  - " + name)
		}
	}
}

// syncSkills copies skill definitions into the agent's skills
// directory. Failures are logged and never fail the sync.
func (s *Syncer) syncSkills(a agent.Agent, global bool) {
	sourceDir := filepath.Join(s.configDir, "skills")
	if !fileExists(sourceDir) {
		return
	}

	targetDir := agent.SkillsTargetDir(a, global, s.homeDir, s.projectDir)

	s.logger.Debug("syncing skills", "source", sourceDir, "target", targetDir)
	synced, err := skill.Sync(sourceDir, targetDir)
	if err != nil {
		s.logger.Warn("failed to sync skills", "error", err)
		return
	}
	if len(synced) > 0 {
		s.logger.Info("synced skills", "count", len(synced))
	}
}
