//go:build windows

package flock

import "golang.org/x/sys/windows"

// LockFileEx byte-range parameters. Locking a single byte at offset zero is
// enough: every holder locks the same range, so any overlap conflicts.
// See: https://learn.microsoft.com/en-us/windows/win32/api/fileapi/nf-fileapi-lockfileex
const (
	lockReserved  = 0 // Reserved parameter, must be zero
	lockBytesLow  = 1 // Low-order 32 bits of the byte range
	lockBytesHigh = 0 // High-order 32 bits of the byte range
)

// Exclusive takes an exclusive lock on the file handle without blocking.
// LOCKFILE_FAIL_IMMEDIATELY mirrors the unix LOCK_NB behavior: an error
// comes back at once when another run holds the lock.
func Exclusive(fd uintptr) error {
	return windows.LockFileEx(
		windows.Handle(fd),
		windows.LOCKFILE_EXCLUSIVE_LOCK|windows.LOCKFILE_FAIL_IMMEDIATELY,
		lockReserved,
		lockBytesLow,
		lockBytesHigh,
		&windows.Overlapped{},
	)
}

// Unlock releases the lock held on the file handle.
func Unlock(fd uintptr) error {
	return windows.UnlockFileEx(
		windows.Handle(fd),
		lockReserved,
		lockBytesLow,
		lockBytesHigh,
		&windows.Overlapped{},
	)
}
