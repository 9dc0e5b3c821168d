// Package git provides Git operations for autoresolve.
// This file implements the CLIRunner which wraps git CLI commands.
package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gitops-tools/autoresolve/internal/ctxutil"
	arerrors "github.com/gitops-tools/autoresolve/internal/errors"
)

// Compile-time interface check.
var _ Runner = (*CLIRunner)(nil)

// CLIRunner implements Runner using the git CLI.
type CLIRunner struct {
	workDir string // Working directory for git commands
	gitDir  string // Resolved .git directory, absolute
	timeout time.Duration
}

// RunnerOption configures a CLIRunner.
type RunnerOption func(*CLIRunner)

// WithCommandTimeout bounds every git command the runner spawns. A fetch or
// push against an unreachable remote otherwise hangs an unattended run
// indefinitely. Zero or negative disables the bound.
func WithCommandTimeout(d time.Duration) RunnerOption {
	return func(r *CLIRunner) {
		r.timeout = d
	}
}

// NewRunner creates a new CLIRunner for the given working directory.
// Returns an error if the directory is not a git repository.
func NewRunner(ctx context.Context, workDir string, opts ...RunnerOption) (*CLIRunner, error) {
	if workDir == "" {
		return nil, fmt.Errorf("work directory cannot be empty: %w", arerrors.ErrEmptyValue)
	}

	r := &CLIRunner{workDir: workDir}
	for _, opt := range opts {
		opt(r)
	}

	// Verify this is a git repository. The same probe yields the git
	// directory, which holds the run lock.
	gitDir, err := r.runGitCommand(ctx, "rev-parse", "--git-dir")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", arerrors.ErrNotGitRepo, err)
	}
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(workDir, gitDir)
	}
	r.gitDir = gitDir

	return r, nil
}

// GitDir returns the absolute path of the repository's git directory.
func (r *CLIRunner) GitDir() string {
	return r.gitDir
}

// CurrentBranch returns the name of the currently checked out branch.
func (r *CLIRunner) CurrentBranch(ctx context.Context) (string, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return "", err
	}

	output, err := r.runGitCommand(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}

	// rev-parse reports the literal "HEAD" when detached. Never auto-fixed;
	// the pipeline must refuse to run.
	if output == "HEAD" {
		return "", arerrors.ErrDetachedHead
	}

	return output, nil
}

// RemoteExists reports whether a URL is configured for the named remote.
func (r *CLIRunner) RemoteExists(ctx context.Context, name string) (bool, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return false, err
	}

	if name == "" {
		return false, fmt.Errorf("remote name cannot be empty: %w", arerrors.ErrEmptyValue)
	}

	cctx, cancel := r.execCtx(ctx)
	defer cancel()
	res := Exec(cctx, r.workDir, "remote", "get-url", name)
	if cctx.Err() != nil {
		return false, cctx.Err()
	}
	return res.Ok(), nil
}

// RemoteRefExists reports whether refs/remotes/<remote>/<branch> exists.
func (r *CLIRunner) RemoteRefExists(ctx context.Context, remote, branch string) (bool, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return false, err
	}

	ref := fmt.Sprintf("refs/remotes/%s/%s", remote, branch)
	cctx, cancel := r.execCtx(ctx)
	defer cancel()
	res := Exec(cctx, r.workDir, "rev-parse", "--verify", "--quiet", ref)
	if cctx.Err() != nil {
		return false, cctx.Err()
	}
	return res.Ok(), nil
}

// Fetch downloads objects and refs from a remote repository.
func (r *CLIRunner) Fetch(ctx context.Context, remote string) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	if remote == "" {
		remote = "origin"
	}

	_, err := r.runGitCommand(ctx, "fetch", remote)
	if err != nil {
		return fmt.Errorf("failed to fetch from %s: %w", remote, err)
	}

	return nil
}

// Merge merges ref into the current branch with a merge-level side preference
// and commit message. A trivial, non-conflicting merge completes in one step
// with the correct message; conflicts leave the index unmerged and a non-zero
// exit code in the result.
func (r *CLIRunner) Merge(ctx context.Context, ref, side, message string) RunResult {
	cctx, cancel := r.execCtx(ctx)
	defer cancel()
	return Exec(cctx, r.workDir, "merge", ref, "-X", side, "-m", message)
}

// ConflictedFiles returns the paths currently in unmerged state.
func (r *CLIRunner) ConflictedFiles(ctx context.Context) ([]string, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	output, err := r.runGitCommand(ctx, "diff", "--name-only", "--diff-filter=U")
	if err != nil {
		return nil, fmt.Errorf("failed to list conflicted files: %w", err)
	}

	if output == "" {
		return []string{}, nil
	}

	// One path per line, in diff listing order. Order is preserved so a single
	// run resolves files deterministically.
	lines := strings.Split(output, "\n")
	files := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			files = append(files, trimmed)
		}
	}
	return files, nil
}

// CheckoutSide overwrites path with one side of a conflict. This is a
// full-file overwrite, not a hunk-level merge.
func (r *CLIRunner) CheckoutSide(ctx context.Context, side, path string) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	if side != "ours" && side != "theirs" {
		return fmt.Errorf("checkout side must be ours or theirs, got %q: %w", side, arerrors.ErrInvalidStrategy)
	}
	if path == "" {
		return fmt.Errorf("path cannot be empty: %w", arerrors.ErrEmptyValue)
	}

	_, err := r.runGitCommand(ctx, "checkout", "--"+side, "--", path)
	if err != nil {
		return fmt.Errorf("failed to checkout %s side of %s: %w", side, path, err)
	}

	return nil
}

// Add stages files for commit.
func (r *CLIRunner) Add(ctx context.Context, paths []string) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	args := []string{"add"}
	if len(paths) == 0 {
		// Stage all changes
		args = append(args, "-A")
	} else {
		args = append(args, "--")
		args = append(args, paths...)
	}

	_, err := r.runGitCommand(ctx, args...)
	if err != nil {
		return fmt.Errorf("failed to add files: %w", err)
	}

	return nil
}

// IsWorkingTreeClean reports whether no staged or unstaged differences exist.
func (r *CLIRunner) IsWorkingTreeClean(ctx context.Context) (bool, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return false, err
	}

	output, err := r.runGitCommand(ctx, "status", "--porcelain", "--untracked-files=no")
	if err != nil {
		return false, fmt.Errorf("failed to get status: %w", err)
	}

	return output == "", nil
}

// Commit creates a commit with the given message.
func (r *CLIRunner) Commit(ctx context.Context, message string) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	if message == "" {
		return fmt.Errorf("commit message cannot be empty: %w", arerrors.ErrEmptyValue)
	}

	// Use --cleanup=strip to handle formatting (removes trailing whitespace, leading/trailing blank lines)
	_, err := r.runGitCommand(ctx, "commit", "-m", message, "--cleanup=strip")
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}

// Push pushes the branch to the remote repository.
func (r *CLIRunner) Push(ctx context.Context, remote, branch string, setUpstream bool) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	args := []string{"push"}
	if setUpstream {
		args = append(args, "--set-upstream")
	}
	args = append(args, remote, branch)

	_, err := r.runGitCommand(ctx, args...)
	if err != nil {
		return fmt.Errorf("failed to push: %w", err)
	}

	return nil
}

// runGitCommand executes a git command and returns its output.
// This is a convenience wrapper around RunCommand that uses the runner's
// workDir and applies the per-command timeout.
func (r *CLIRunner) runGitCommand(ctx context.Context, args ...string) (string, error) {
	cctx, cancel := r.execCtx(ctx)
	defer cancel()
	return RunCommand(cctx, r.workDir, args...)
}

// execCtx derives the context a single git command runs under. With no
// timeout configured the parent context passes through untouched.
func (r *CLIRunner) execCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}
