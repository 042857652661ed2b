package config

import (
	"github.com/thoreinstein/claudius/internal/agent"
	"github.com/thoreinstein/claudius/internal/errors"
)

// Validation errors for configuration fields, chained to
// errors.ErrInvalidConfig so callers can match the broad condition.
var (
	// ErrInvalidSecretManager indicates an unrecognized secret manager type.
	ErrInvalidSecretManager = errors.Wrap(errors.ErrInvalidConfig, "invalid secret manager type")
)

// Validate checks the configuration for values claudius cannot act on.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}

	if c.SecretManager != nil {
		switch c.SecretManager.Type {
		case SecretManagerVault, SecretManagerOnePassword:
		default:
			return errors.Wrapf(ErrInvalidSecretManager, "%q (expected vault or 1password)", c.SecretManager.Type)
		}
	}

	if c.Default != nil && c.Default.Agent != "" {
		if _, err := agent.Parse(c.Default.Agent); err != nil {
			return err
		}
	}

	return nil
}
