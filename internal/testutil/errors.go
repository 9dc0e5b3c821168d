// Package testutil provides testing utilities for autoresolve.
//
// This package contains mock errors shared across test files. It should only
// be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for simulating git failures in tests.
var (
	// ErrMockNetwork simulates a fetch that cannot reach the remote.
	ErrMockNetwork = errors.New("could not resolve host")

	// ErrMockRemoteRejected simulates a push rejected by the remote.
	ErrMockRemoteRejected = errors.New("remote rejected")

	// ErrMockNonFastForward simulates a push refused as non-fast-forward.
	ErrMockNonFastForward = errors.New("non-fast-forward")

	// ErrMockIndexLocked simulates a concurrent git process holding index.lock.
	ErrMockIndexLocked = errors.New("index.lock exists")

	// ErrMockHookRejected simulates a commit refused by a local hook.
	ErrMockHookRejected = errors.New("hook rejected commit")

	// ErrMockPathspec simulates a pathspec that matches no files.
	ErrMockPathspec = errors.New("pathspec did not match any files")
)
