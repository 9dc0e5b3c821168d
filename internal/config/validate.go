package config

import (
	"github.com/gitops-tools/autoresolve/internal/errors"
	"github.com/gitops-tools/autoresolve/internal/resolve"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - Git strategy must parse into the closed enum (ours, theirs)
//   - Git remote must not be empty
//   - Git commit message must not be empty
//   - Git command timeout must not be negative (zero disables it)
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if _, err := resolve.ParseStrategy(cfg.Git.Strategy); err != nil {
		return err
	}

	if cfg.Git.Remote == "" {
		return errors.Wrap(errors.ErrConfigInvalid, "git.remote must not be empty")
	}

	if cfg.Git.CommitMessage == "" {
		return errors.Wrap(errors.ErrConfigInvalid, "git.commit_message must not be empty")
	}

	if cfg.Git.CommandTimeout < 0 {
		return errors.Wrap(errors.ErrConfigInvalid, "git.command_timeout must not be negative")
	}

	return nil
}
