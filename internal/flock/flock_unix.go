//go:build unix

package flock

import "syscall"

// Exclusive takes an exclusive lock on fd via flock(2) without blocking.
// flock locks attach to the open file description, so a second descriptor
// on the same lock file conflicts even within one process. Returns an error
// immediately when the lock is held elsewhere; a run never queues behind
// another one.
func Exclusive(fd uintptr) error {
	return syscall.Flock(int(fd), syscall.LOCK_EX|syscall.LOCK_NB)
}

// Unlock releases the lock held on fd.
func Unlock(fd uintptr) error {
	return syscall.Flock(int(fd), syscall.LOCK_UN)
}
