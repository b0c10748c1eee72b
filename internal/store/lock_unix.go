//go:build !windows

package store

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

func flock(f *os.File, how int) error {
	for {
		err := unix.Flock(int(f.Fd()), how)
		if !errors.Is(err, unix.EINTR) {
			return err
		}
	}
}

// lockShared blocks until a shared lock on f is held.
func lockShared(f *os.File) error { return flock(f, unix.LOCK_SH) }

// lockExclusive blocks until an exclusive lock on f is held.
func lockExclusive(f *os.File) error { return flock(f, unix.LOCK_EX) }

func unlock(f *os.File) error { return flock(f, unix.LOCK_UN) }
