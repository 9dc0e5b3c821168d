//go:build integration

package pipeline

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitops-tools/autoresolve/internal/git"
	"github.com/gitops-tools/autoresolve/internal/resolve"
)

const testCommitMessage = "chore: auto-resolve conflicts [skip ci]"

// gitRun runs a raw git command in dir, failing the test on error.
func gitRun(t *testing.T, dir string, args ...string) {
	t.Helper()

	cmd := exec.CommandContext(context.Background(), "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, out)
}

// gitOut runs a raw git command in dir and returns its trimmed output.
func gitOut(t *testing.T, dir string, args ...string) string {
	t.Helper()

	out, err := git.RunCommand(context.Background(), dir, args...)
	require.NoError(t, err)
	return out
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

// setupRepos creates a local repo on branch feature with one committed file,
// a bare origin it has been pushed to, and a second clone for producing
// remote-side changes. Returns local, bare, and clone paths.
func setupRepos(t *testing.T) (local, bare, clone string) {
	t.Helper()

	local = t.TempDir()
	gitRun(t, local, "init", "-b", "feature")
	gitRun(t, local, "config", "user.email", "test@autoresolve.local")
	gitRun(t, local, "config", "user.name", "autoresolve test")
	gitRun(t, local, "config", "commit.gpgsign", "false")

	bare = filepath.Join(t.TempDir(), "remote.git")
	gitRun(t, filepath.Dir(bare), "init", "--bare", bare)

	writeFile(t, local, "a.txt", "base\n")
	gitRun(t, local, "add", "-A")
	gitRun(t, local, "commit", "-m", "initial commit")
	gitRun(t, local, "remote", "add", "origin", bare)
	gitRun(t, local, "push", "-u", "origin", "feature")

	clone = filepath.Join(t.TempDir(), "clone")
	gitRun(t, filepath.Dir(clone), "clone", bare, clone)
	gitRun(t, clone, "config", "user.email", "other@autoresolve.local")
	gitRun(t, clone, "config", "user.name", "autoresolve other")
	gitRun(t, clone, "config", "commit.gpgsign", "false")

	return local, bare, clone
}

func newPipeline(t *testing.T, workDir string, strategy resolve.Strategy) *Pipeline {
	t.Helper()

	runner, err := git.NewRunner(context.Background(), workDir)
	require.NoError(t, err)

	return New(runner, Config{
		Remote:        "origin",
		Strategy:      strategy,
		CommitMessage: testCommitMessage,
	}, WithOutput(&bytes.Buffer{}))
}

func TestIntegration_ConflictingContent_TheirsWins(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	local, bare, clone := setupRepos(t)

	// Incoming content "B" on the remote, local content "A".
	writeFile(t, clone, "a.txt", "B")
	gitRun(t, clone, "add", "-A")
	gitRun(t, clone, "commit", "-m", "remote change")
	gitRun(t, clone, "push", "origin", "feature")

	writeFile(t, local, "a.txt", "A")
	gitRun(t, local, "add", "-A")
	gitRun(t, local, "commit", "-m", "local change")

	res, err := newPipeline(t, local, resolve.StrategyTheirs).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PhaseDone, res.Phase)
	assert.Equal(t, "feature", res.Branch)

	// The incoming version wins bit-identically and the result is committed
	// with the configured message and pushed.
	assert.Equal(t, "B", readFile(t, local, "a.txt"))
	assert.Equal(t, testCommitMessage, gitOut(t, local, "log", "-1", "--format=%s"))
	assert.Equal(t,
		gitOut(t, local, "rev-parse", "HEAD"),
		gitOut(t, bare, "rev-parse", "feature"))
}

func TestIntegration_ModifyDelete_OursWins(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	local, bare, clone := setupRepos(t)

	// Remote deletes the file; local modifies it. A merge-level preference
	// cannot settle modify/delete, so this exercises the resolver path.
	gitRun(t, clone, "rm", "a.txt")
	gitRun(t, clone, "commit", "-m", "delete a.txt")
	gitRun(t, clone, "push", "origin", "feature")

	writeFile(t, local, "a.txt", "local\n")
	gitRun(t, local, "add", "-A")
	gitRun(t, local, "commit", "-m", "local change")

	res, err := newPipeline(t, local, resolve.StrategyOurs).Run(context.Background())
	require.NoError(t, err)

	assert.False(t, res.CleanMerge)
	assert.Equal(t, []string{"a.txt"}, res.ResolvedFiles)
	assert.True(t, res.Committed)
	assert.Equal(t, "local\n", readFile(t, local, "a.txt"))
	assert.Equal(t, testCommitMessage, gitOut(t, local, "log", "-1", "--format=%s"))
	assert.Equal(t,
		gitOut(t, local, "rev-parse", "HEAD"),
		gitOut(t, bare, "rev-parse", "feature"))
}

func TestIntegration_FirstPublish(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	local, bare, _ := setupRepos(t)

	// A branch the remote has never seen: push only, no merge.
	gitRun(t, local, "checkout", "-b", "feature-next")

	res, err := newPipeline(t, local, resolve.StrategyOurs).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, res.FirstPublish)
	assert.Equal(t, "feature-next", res.Branch)
	assert.False(t, res.CleanMerge)
	assert.Empty(t, res.ResolvedFiles)
	assert.Equal(t,
		gitOut(t, local, "rev-parse", "HEAD"),
		gitOut(t, bare, "rev-parse", "feature-next"))
}

func TestIntegration_Idempotence(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	local, _, clone := setupRepos(t)

	writeFile(t, clone, "a.txt", "B")
	gitRun(t, clone, "add", "-A")
	gitRun(t, clone, "commit", "-m", "remote change")
	gitRun(t, clone, "push", "origin", "feature")

	writeFile(t, local, "a.txt", "A")
	gitRun(t, local, "add", "-A")
	gitRun(t, local, "commit", "-m", "local change")

	first, err := newPipeline(t, local, resolve.StrategyTheirs).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PhaseDone, first.Phase)

	// No new remote change: the second run takes the fast path and resolves
	// nothing.
	second, err := newPipeline(t, local, resolve.StrategyTheirs).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PhaseDone, second.Phase)
	assert.True(t, second.CleanMerge)
	assert.Empty(t, second.ResolvedFiles)
	assert.False(t, second.Committed)
}

func TestIntegration_UnconfiguredRemote(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	local, _, _ := setupRepos(t)

	runner, err := git.NewRunner(context.Background(), local)
	require.NoError(t, err)

	headBefore := gitOut(t, local, "rev-parse", "HEAD")

	p := New(runner, Config{
		Remote:        "upstream",
		Strategy:      resolve.StrategyOurs,
		CommitMessage: testCommitMessage,
	}, WithOutput(&bytes.Buffer{}))

	_, err = p.Run(context.Background())
	require.Error(t, err)

	// Repository untouched.
	assert.Equal(t, headBefore, gitOut(t, local, "rev-parse", "HEAD"))
}
