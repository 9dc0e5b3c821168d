// Package git provides Git operations for autoresolve.
// This file defines the Runner interface for git CLI operations.
package git

import "context"

// Runner defines the version-control operations the pipeline depends on.
// All operations run in the runner's working directory and use context for
// cancellation. Any backend offering these operations can substitute for the
// git CLI; tests use a scripted fake.
type Runner interface {
	// CurrentBranch returns the name of the currently checked out branch.
	// Returns an error if in detached HEAD state.
	CurrentBranch(ctx context.Context) (string, error)

	// RemoteExists reports whether a URL is configured for the named remote.
	RemoteExists(ctx context.Context, name string) (bool, error)

	// RemoteRefExists reports whether the tracking reference
	// refs/remotes/<remote>/<branch> exists after a fetch.
	RemoteRefExists(ctx context.Context, remote, branch string) (bool, error)

	// Fetch downloads objects and refs from a remote repository without merging.
	Fetch(ctx context.Context, remote string) error

	// Merge merges ref into the current branch, applying side as a merge-level
	// content preference (-X ours / -X theirs) and message as the merge-commit
	// message. The raw result is returned so callers can distinguish a clean
	// merge (exit 0) from one that left conflicts in the index.
	Merge(ctx context.Context, ref, side, message string) RunResult

	// ConflictedFiles returns the paths currently in unmerged state, in the
	// order the diff listing reports them. Empty slice if none.
	ConflictedFiles(ctx context.Context) ([]string, error)

	// CheckoutSide overwrites path in the working tree with one side of a
	// conflict. Side is "ours" (local pre-merge version) or "theirs"
	// (incoming version).
	CheckoutSide(ctx context.Context, side, path string) error

	// Add stages files for commit. If paths is empty, stages all changes.
	Add(ctx context.Context, paths []string) error

	// IsWorkingTreeClean reports whether no staged or unstaged differences
	// exist. Untracked files do not count as dirt.
	IsWorkingTreeClean(ctx context.Context) (bool, error)

	// Commit creates a commit with the given message.
	Commit(ctx context.Context, message string) error

	// Push pushes the branch to the remote repository.
	// If setUpstream is true, sets the upstream tracking reference.
	Push(ctx context.Context, remote, branch string, setUpstream bool) error
}
