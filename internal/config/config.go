// Package config loads the claudius application configuration using Viper.
//
// The config lives at $XDG_CONFIG_HOME/claudius/config.toml and controls
// behavior of claudius itself, not the agent configs it projects.
package config

import (
	"github.com/spf13/viper"

	"github.com/thoreinstein/claudius/internal/agent"
	"github.com/thoreinstein/claudius/internal/errors"
	"github.com/thoreinstein/claudius/internal/paths"
)

// AppName is the application name used for config directory naming.
const AppName = "claudius"

// SecretManagerType identifies a supported secret manager backend.
type SecretManagerType string

// Supported secret manager backends.
const (
	SecretManagerVault       SecretManagerType = "vault"
	SecretManagerOnePassword SecretManagerType = "1password"
)

// SecretManager configures the backend used to resolve secret references.
type SecretManager struct {
	Type SecretManagerType `mapstructure:"type" toml:"type"`
}

// Defaults holds fallback values applied when flags are omitted.
type Defaults struct {
	// Agent is the agent used when --agent is not given.
	Agent string `mapstructure:"agent" toml:"agent"`

	// ContextFile overrides the per-agent context file name
	// (CLAUDE.md or AGENTS.md).
	ContextFile string `mapstructure:"context-file" toml:"context-file,omitempty"`
}

// Config represents the top-level config.toml structure.
type Config struct {
	SecretManager *SecretManager `mapstructure:"secret-manager" toml:"secret-manager,omitempty"`
	Default       *Defaults      `mapstructure:"default" toml:"default,omitempty"`
}

// Load reads the application configuration.
// If path is provided, it reads from that specific file.
// If path is empty, it looks in the claudius config directory and returns
// an empty config when no file exists there.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		dir, err := paths.ConfigDir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName("config")
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix("CLAUDIUS")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && path == "" {
			// No config file is fine, everything has defaults.
			return &Config{}, nil
		}
		return nil, errors.Wrap(err, "reading config file")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DefaultAgent returns the configured default agent, if any.
func (c *Config) DefaultAgent() (agent.Agent, bool) {
	if c == nil || c.Default == nil || c.Default.Agent == "" {
		return "", false
	}
	a, err := agent.Parse(c.Default.Agent)
	if err != nil {
		return "", false
	}
	return a, true
}

// ContextFile returns the configured context file override, if any.
func (c *Config) ContextFile() (string, bool) {
	if c == nil || c.Default == nil || c.Default.ContextFile == "" {
		return "", false
	}
	return c.Default.ContextFile, true
}

// SecretManagerConfig returns the configured secret manager, if any.
func (c *Config) SecretManagerConfig() (*SecretManager, bool) {
	if c == nil || c.SecretManager == nil {
		return nil, false
	}
	return c.SecretManager, true
}
