// Package config provides configuration management for autoresolve with
// layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (AUTORESOLVE_* prefix, plus the legacy GIT_REMOTE,
//     GIT_STRATEGY, and GIT_COMMIT_MESSAGE names used by agent harnesses)
//  3. Project config (.autoresolve.yaml in the repository)
//  4. Global config (~/.autoresolve/config.yaml)
//  5. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/errors and internal/resolve,
// but MUST NOT import internal/pipeline or internal/cli.
package config

import "time"

// Config is the root configuration structure for autoresolve.
type Config struct {
	// Git contains settings for the merge-resolution pipeline.
	Git GitConfig `yaml:"git" mapstructure:"git"`
}

// GitConfig contains settings for git operations and conflict resolution.
type GitConfig struct {
	// Remote is the fetch/push target.
	// Default: "origin"
	Remote string `yaml:"remote" mapstructure:"remote"`

	// Strategy selects which side wins on file-level conflict ("ours" or
	// "theirs"). Validated once at the boundary into a closed enum; every
	// downstream component consumes only the typed value.
	// Default: "ours"
	Strategy string `yaml:"strategy" mapstructure:"strategy"`

	// CommitMessage is used for the merge and/or conflict commit.
	// Default: "chore: auto-resolve conflicts [skip ci]"
	CommitMessage string `yaml:"commit_message" mapstructure:"commit_message"`

	// CommandTimeout bounds each individual git command. A fetch or push
	// against an unreachable remote otherwise hangs an unattended run
	// indefinitely. Zero disables the bound.
	// Default: 0
	CommandTimeout time.Duration `yaml:"command_timeout" mapstructure:"command_timeout"`
}
