// Package flock provides cross-platform file locking utilities.
//
// autoresolve uses a single advisory lock per repository so two runs never
// rewrite the same index concurrently. The lock is exclusive and
// non-blocking: a second run fails fast instead of queuing behind the first.
//
// Usage:
//
//	file, _ := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
//	if err := flock.Exclusive(file.Fd()); err != nil {
//	    // Lock not acquired - another run owns the repository
//	}
//	defer flock.Unlock(file.Fd())
package flock
