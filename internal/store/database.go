package store

import (
	"runtime"
	"time"
)

// Database is the in-memory content of one data file, in file order.
type Database []Entry

// DecayThreshold is the rank total at which every rank is scaled down.
const DecayThreshold = 5000

// Identity decides when two paths name the same directory.
type Identity int

const (
	// CaseSensitive compares paths byte for byte.
	CaseSensitive Identity = iota
	// CaseInsensitive ignores ASCII case and treats '/' as '\'.
	CaseInsensitive
)

// PlatformIdentity returns the identity rule of the host filesystem.
func PlatformIdentity() Identity {
	if runtime.GOOS == "windows" {
		return CaseInsensitive
	}
	return CaseSensitive
}

// Key returns the normalized form of path under id.
func (id Identity) Key(path string) string {
	if id != CaseInsensitive {
		return path
	}
	b := []byte(path)
	for i, c := range b {
		switch {
		case c == '/':
			b[i] = '\\'
		case c >= 'A' && c <= 'Z':
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// Same reports whether a and b identify the same path.
func (id Identity) Same(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	if id != CaseInsensitive {
		return a == b
	}
	return id.Key(a) == id.Key(b)
}

// Total sums all ranks.
func (d Database) Total() int64 {
	var total int64
	for _, e := range d {
		total += int64(e.Rank)
	}
	return total
}

// Decay scales every rank to 90% once the total reaches DecayThreshold and
// drops entries that fall to zero. Relative order is kept. It reports
// whether any scaling happened.
func (d *Database) Decay() bool {
	if d.Total() < DecayThreshold {
		return false
	}
	kept := (*d)[:0]
	for _, e := range *d {
		e.Rank = e.Rank * 9 / 10
		if e.Rank > 0 {
			kept = append(kept, e)
		}
	}
	clear((*d)[len(kept):])
	*d = kept
	return true
}

// Index returns the position of the first entry identified with path, or -1.
func (d Database) Index(path string, id Identity) int {
	for i, e := range d {
		if id.Same(e.Path, path) {
			return i
		}
	}
	return -1
}

// Bump records a visit: the first matching entry gains one rank and is
// stamped with now, otherwise path is appended with rank 1.
func (d *Database) Bump(path string, now time.Time, id Identity) {
	ts := now.Unix()
	if i := d.Index(path, id); i >= 0 {
		(*d)[i].Rank++
		(*d)[i].LastUsed = ts
		return
	}
	*d = append(*d, Entry{Path: path, Rank: 1, LastUsed: ts, Frecent: 1})
}

// Add records a visit the way the unlocked add path does: the path is
// normalized first and every entry identified with it is bumped.
func (d *Database) Add(path string, now time.Time, id Identity) {
	target := id.Key(path)
	ts := now.Unix()
	found := false
	for i := range *d {
		if id.Same((*d)[i].Path, target) {
			(*d)[i].Rank++
			(*d)[i].LastUsed = ts
			found = true
		}
	}
	if !found {
		*d = append(*d, Entry{Path: target, Rank: 1, LastUsed: ts, Frecent: 1})
	}
}

// Remove deletes every entry identified with one of paths and returns how
// many were removed.
func (d *Database) Remove(id Identity, paths ...string) int {
	return d.filter(func(e Entry) bool {
		for _, p := range paths {
			if id.Same(e.Path, p) {
				return false
			}
		}
		return true
	})
}

// Merge folds other into d. Ranks of shared paths are summed and the later
// timestamp wins.
func (d *Database) Merge(other Database, id Identity) {
	for _, o := range other {
		if i := d.Index(o.Path, id); i >= 0 {
			(*d)[i].Rank += o.Rank
			(*d)[i].LastUsed = max((*d)[i].LastUsed, o.LastUsed)
			continue
		}
		*d = append(*d, o)
	}
}

// Filter returns the entries whose path matches keywords.
func (d Database) Filter(keywords []string) Database {
	out := Database{}
	for _, e := range d {
		if Match(e.Path, keywords) {
			out = append(out, e)
		}
	}
	return out
}

func (d *Database) filter(keep func(Entry) bool) int {
	kept := (*d)[:0]
	for _, e := range *d {
		if keep(e) {
			kept = append(kept, e)
		}
	}
	removed := len(*d) - len(kept)
	clear((*d)[len(kept):])
	*d = kept
	return removed
}
