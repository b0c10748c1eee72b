package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/google/uuid"
)

// maxTempAttempts bounds the search for an unused temporary name.
const maxTempAttempts = 100

// writeFull writes all of data, retrying after short writes.
func writeFull(w io.Writer, data []byte) error {
	for len(data) > 0 {
		n, err := w.Write(data)
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
		data = data[n:]
	}
	return nil
}

// rewrite replaces the content of an open, locked file in place. The file is
// truncated only after every byte of data has been written.
func rewrite(f *os.File, data []byte) error {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	if err := writeFull(f, data); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := f.Truncate(int64(len(data))); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	return nil
}

// tempName returns a sibling of target named after the wall clock, its
// sub-second part and a random suffix.
func tempName(target string, now time.Time) string {
	id := uuid.New()
	return fmt.Sprintf("%s.%d%03d%x", target, now.Unix(), now.Nanosecond()/int(time.Millisecond), id[:4])
}

// writeAtomic writes data to a fresh temporary file next to target and
// renames it over target.
func writeAtomic(target string, data []byte, now time.Time) error {
	var (
		f   *os.File
		tmp string
		err error
	)
	for range maxTempAttempts {
		tmp = tempName(target, now)
		f, err = os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o666)
		if !errors.Is(err, fs.ErrExist) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if err := writeFull(f, data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", target, err)
	}
	return nil
}
