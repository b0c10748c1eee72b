//go:build windows

package store

import (
	"os"

	"golang.org/x/sys/windows"
)

// The whole file is locked by locking the maximal byte range.
const allBytes = ^uint32(0)

func lockFile(f *os.File, flags uint32) error {
	ol := new(windows.Overlapped)
	return windows.LockFileEx(windows.Handle(f.Fd()), flags, 0, allBytes, allBytes, ol)
}

// lockShared blocks until a shared lock on f is held.
func lockShared(f *os.File) error { return lockFile(f, 0) }

// lockExclusive blocks until an exclusive lock on f is held.
func lockExclusive(f *os.File) error { return lockFile(f, windows.LOCKFILE_EXCLUSIVE_LOCK) }

func unlock(f *os.File) error {
	ol := new(windows.Overlapped)
	return windows.UnlockFileEx(windows.Handle(f.Fd()), 0, allBytes, allBytes, ol)
}
