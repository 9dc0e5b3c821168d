package git

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gitops-tools/autoresolve/internal/errors"
	"github.com/gitops-tools/autoresolve/internal/flock"
)

// lockFileName lives inside the repository's git directory so clones never
// see it and worktrees of the same repository share one lock.
const lockFileName = "autoresolve.lock"

// Lock guards a repository against concurrent runs. Two processes rewriting
// the same index at once would corrupt a half-resolved merge, so the second
// run fails fast instead of queuing.
type Lock struct {
	file *os.File
}

// AcquireLock takes an exclusive, non-blocking advisory lock inside gitDir.
// Returns ErrRepoBusy when another run already holds the lock.
func AcquireLock(gitDir string) (*Lock, error) {
	if gitDir == "" {
		return nil, fmt.Errorf("git directory cannot be empty: %w", errors.ErrEmptyValue)
	}

	path := filepath.Join(gitDir, lockFileName)
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600) // #nosec G304 -- path derives from rev-parse --git-dir
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file %s: %w", path, err)
	}

	if err := flock.Exclusive(file.Fd()); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w: %s", errors.ErrRepoBusy, path)
	}

	return &Lock{file: file}, nil
}

// Release unlocks and closes the lock file. Safe to call on a nil or
// already-released lock.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}

	unlockErr := flock.Unlock(l.file.Fd())
	closeErr := l.file.Close()
	l.file = nil

	if unlockErr != nil {
		return fmt.Errorf("failed to release repository lock: %w", unlockErr)
	}
	return closeErr
}
