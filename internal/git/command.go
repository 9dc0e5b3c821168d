// Package git provides Git operations for autoresolve.
// This file provides shared git command execution utilities.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	arerrors "github.com/gitops-tools/autoresolve/internal/errors"
)

// RunResult captures the outcome of a single external command invocation.
// ExitCode 0 means the command succeeded and Output holds its stdout;
// otherwise Output holds stderr or the spawn error text. Output is trimmed
// of surrounding whitespace for easy comparison and logging.
type RunResult struct {
	Output   string
	ExitCode int
}

// Ok reports whether the command exited successfully.
func (r RunResult) Ok() bool {
	return r.ExitCode == 0
}

// spawnFailureCode is reported when the command could not be started at all
// (missing binary, bad working directory). Mirrors the shell convention for
// "command not found".
const spawnFailureCode = 127

// Exec runs a git command in the specified directory and captures the result.
// It never returns an error: non-zero exit status, a missing git binary, and
// I/O failures all land in the returned RunResult.
func Exec(ctx context.Context, workDir string, args ...string) RunResult {
	cmd := exec.CommandContext(ctx, "git", args...) //#nosec G204 -- args are constructed internally, not user input
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return RunResult{Output: strings.TrimSpace(stdout.String())}
	}

	code := spawnFailureCode
	if exitErr, ok := err.(*exec.ExitError); ok {
		code = exitErr.ExitCode()
	}

	out := strings.TrimSpace(stderr.String())
	if out == "" {
		out = strings.TrimSpace(err.Error())
	}
	return RunResult{Output: out, ExitCode: code}
}

// RunCommand executes a git command in the specified directory and returns its
// output. All errors are wrapped with ErrGitOperation and include stderr for
// debugging. This is the error-returning convenience wrapper around Exec used
// by the typed runner methods.
func RunCommand(ctx context.Context, workDir string, args ...string) (string, error) {
	res := Exec(ctx, workDir, args...)
	if !res.Ok() {
		// Check for context cancellation
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if res.Output != "" {
			return "", fmt.Errorf("git %s failed: %s: %w", args[0], res.Output, arerrors.ErrGitOperation)
		}
		return "", fmt.Errorf("git %s failed: %w", args[0], arerrors.ErrGitOperation)
	}

	return res.Output, nil
}
