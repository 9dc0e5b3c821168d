package config

import (
	"time"

	"github.com/spf13/viper"
)

// Default configuration values.
const (
	// DefaultRemote is the standard git remote name.
	DefaultRemote = "origin"

	// DefaultStrategy keeps the local side on conflict. "ours" is the
	// conservative choice: an agent's own work survives a collision.
	DefaultStrategy = "ours"

	// DefaultCommitMessage marks the commit as automated and skips CI so the
	// resolution commit does not trigger another pipeline run.
	DefaultCommitMessage = "chore: auto-resolve conflicts [skip ci]"

	// DefaultCommandTimeout leaves git commands unbounded; operators opt in
	// to a per-command deadline.
	DefaultCommandTimeout time.Duration = 0
)

// DefaultConfig returns a new Config with the built-in default values.
// These defaults are the base layer that config files, environment variables,
// and CLI flags override.
func DefaultConfig() *Config {
	return &Config{
		Git: GitConfig{
			Remote:         DefaultRemote,
			Strategy:       DefaultStrategy,
			CommitMessage:  DefaultCommitMessage,
			CommandTimeout: DefaultCommandTimeout,
		},
	}
}

// setDefaults registers the built-in defaults on a viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("git.remote", DefaultRemote)
	v.SetDefault("git.strategy", DefaultStrategy)
	v.SetDefault("git.commit_message", DefaultCommitMessage)
	v.SetDefault("git.command_timeout", DefaultCommandTimeout)
}
