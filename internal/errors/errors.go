// Package errors provides centralized error handling for autoresolve.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrInvalidStrategy indicates a conflict strategy value outside the
	// accepted set (ours, theirs). Detected during preflight before any
	// mutating repository command runs.
	ErrInvalidStrategy = errors.New("invalid conflict strategy")

	// ErrRemoteNotFound indicates the configured remote has no URL configured
	// in the repository.
	ErrRemoteNotFound = errors.New("remote not found")

	// ErrDetachedHead indicates the repository checkout points at a commit
	// rather than a named branch. The pipeline refuses to run in this state.
	ErrDetachedHead = errors.New("repository is in detached HEAD state")

	// ErrGitOperation indicates a git command failed during execution.
	ErrGitOperation = errors.New("git operation failed")

	// ErrFetchFailed indicates the fetch phase failed (network, auth, or a
	// missing remote that slipped past preflight).
	ErrFetchFailed = errors.New("fetch failed")

	// ErrResolveFailed indicates a conflicted file could not be restored to
	// one side or staged. The repository is left partially resolved.
	ErrResolveFailed = errors.New("conflict resolution failed")

	// ErrCommitFailed indicates the commit phase failed, typically a hook
	// rejection or a nothing-to-commit case not already filtered.
	ErrCommitFailed = errors.New("commit failed")

	// ErrPushFailed indicates the push phase failed (network, auth, or a
	// rejected non-fast-forward push).
	ErrPushFailed = errors.New("push failed")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrNotGitRepo indicates the path is not a git repository.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrRepoBusy indicates another autoresolve run holds the repository lock.
	ErrRepoBusy = errors.New("repository is locked by another run")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalid indicates an invalid configuration value.
	ErrConfigInvalid = errors.New("invalid configuration")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")
)
