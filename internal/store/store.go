package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrNoDatabase is returned by Load when the data file does not exist yet.
	ErrNoDatabase = errors.New("no database")
	// ErrEmptyPath is returned when a visit is recorded for an empty path.
	ErrEmptyPath = errors.New("empty path")
)

// Store reads and updates one data file. It holds no state between calls;
// every operation works from what is on disk at that moment.
type Store struct {
	path     string
	log      *zap.Logger
	now      func() time.Time
	identity Identity
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIdentity overrides the platform path identity rule.
func WithIdentity(id Identity) Option {
	return func(s *Store) { s.identity = id }
}

// New returns a Store for the data file at path.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:     path,
		log:      zap.NewNop(),
		now:      time.Now,
		identity: PlatformIdentity(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the data file location.
func (s *Store) Path() string { return s.path }

// Load reads the data file under a shared lock held only for the read.
// It returns ErrNoDatabase if the file does not exist.
func (s *Store) Load() (Database, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoDatabase
	}
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	if err := lockShared(f); err != nil {
		return nil, fmt.Errorf("lock data file: %w", err)
	}
	content, err := io.ReadAll(f)
	unlock(f)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	return Decode(content), nil
}

// Query returns the entries matching keywords, best first under mode.
// Entries with equal scores keep their file order. A missing data file
// yields an empty result.
func (s *Store) Query(keywords []string, mode Mode) ([]Entry, error) {
	db, err := s.Load()
	if errors.Is(err, ErrNoDatabase) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	matched := db.Filter(keywords)
	slices.Reverse(matched)
	matched.Rank(mode, s.now())
	s.log.Debug("query",
		zap.Strings("keywords", keywords),
		zap.Stringer("mode", mode),
		zap.Int("entries", len(db)),
		zap.Int("matched", len(matched)))
	return matched, nil
}

// QueryAll returns every entry matching keywords ranked by frecency.
func (s *Store) QueryAll(keywords []string) ([]Entry, error) {
	return s.Query(keywords, ModeFrecent)
}

// QueryBest returns the highest ranked path matching keywords. The boolean
// is false when nothing matched.
func (s *Store) QueryBest(keywords []string) (string, bool, error) {
	entries, err := s.QueryAll(keywords)
	if err != nil || len(entries) == 0 {
		return "", false, err
	}
	return entries[0].Path, true, nil
}

// RecordVisit bumps path in the data file, creating the file if needed.
// The whole read, decay, bump and write sequence runs under one exclusive
// lock, so concurrent callers never lose each other's updates.
func (s *Store) RecordVisit(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if err := s.ensureDir(); err != nil {
		return err
	}
	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE, 0o666)
	if err != nil {
		return fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	if err := lockExclusive(f); err != nil {
		return fmt.Errorf("lock data file: %w", err)
	}
	defer unlock(f)

	content, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("read data file: %w", err)
	}
	db := Decode(content)
	if total := db.Total(); db.Decay() {
		s.log.Debug("decayed ranks", zap.Int64("total", total), zap.Int("kept", len(db)))
	}
	db.Bump(path, s.now(), s.identity)

	if err := rewrite(f, db.Encode()); err != nil {
		return fmt.Errorf("rewrite data file: %w", err)
	}
	return nil
}

// Add records a visit without holding a lock across the read. The current
// content is loaded, path is normalized and bumped, and the file is then
// rewritten under an exclusive lock. Decay is not applied. Concurrent
// writers may overwrite each other; RecordVisit is the safe variant.
func (s *Store) Add(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	db, err := s.Load()
	if err != nil && !errors.Is(err, ErrNoDatabase) {
		return err
	}
	db.Add(path, s.now(), s.identity)
	return s.write(db)
}

// Save replaces the data file with db through a temporary file and an
// atomic rename. It does not take the update lock.
func (s *Store) Save(db Database) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	if err := writeAtomic(s.path, db.Encode(), s.now()); err != nil {
		return fmt.Errorf("save data file: %w", err)
	}
	s.log.Debug("saved", zap.String("path", s.path), zap.Int("entries", len(db)))
	return nil
}

// Remove deletes the given paths and returns how many entries went away.
func (s *Store) Remove(paths ...string) (int, error) {
	return s.rewriteAll(func(db *Database) int {
		return db.Remove(s.identity, paths...)
	})
}

// Clean drops every entry for which exists reports false.
func (s *Store) Clean(exists func(path string) bool) (int, error) {
	return s.rewriteAll(func(db *Database) int {
		return db.filter(func(e Entry) bool { return exists(e.Path) })
	})
}

// Import merges the data file at src into the store and returns the number
// of entries read from src.
func (s *Store) Import(src string) (int, error) {
	other, err := New(src, WithIdentity(s.identity)).Load()
	if errors.Is(err, ErrNoDatabase) {
		return 0, fmt.Errorf("import %s: %w", src, fs.ErrNotExist)
	}
	if err != nil {
		return 0, fmt.Errorf("import %s: %w", src, err)
	}
	db, err := s.Load()
	if err != nil && !errors.Is(err, ErrNoDatabase) {
		return 0, err
	}
	db.Merge(other, s.identity)
	if err := s.Save(db); err != nil {
		return 0, err
	}
	return len(other), nil
}

// rewriteAll applies change to the current content and saves the result
// atomically when change reports a modification.
func (s *Store) rewriteAll(change func(*Database) int) (int, error) {
	db, err := s.Load()
	if errors.Is(err, ErrNoDatabase) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n := change(&db)
	if n == 0 {
		return 0, nil
	}
	if err := s.Save(db); err != nil {
		return 0, err
	}
	return n, nil
}

// write rewrites the data file in place under an exclusive lock.
func (s *Store) write(db Database) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE, 0o666)
	if err != nil {
		return fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	if err := lockExclusive(f); err != nil {
		return fmt.Errorf("lock data file: %w", err)
	}
	defer unlock(f)

	if err := rewrite(f, db.Encode()); err != nil {
		return fmt.Errorf("rewrite data file: %w", err)
	}
	return nil
}

func (s *Store) ensureDir() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}
