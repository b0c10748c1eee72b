package store

import (
	"fmt"
	"slices"
	"sort"
	"time"
)

// Mode selects how Frecent is derived for ranking.
type Mode int

const (
	// ModeFrecent weighs rank by how recently the path was used.
	ModeFrecent Mode = iota
	// ModeRank uses the raw visit rank.
	ModeRank
	// ModeRecent orders by last use only.
	ModeRecent
)

const (
	hour = 3600
	day  = 86400
	week = 604800
)

func (m Mode) String() string {
	switch m {
	case ModeFrecent:
		return "frecent"
	case ModeRank:
		return "rank"
	case ModeRecent:
		return "time"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts the names printed by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "frecent", "frecency", "":
		return ModeFrecent, nil
	case "rank":
		return ModeRank, nil
	case "time", "recent":
		return ModeRecent, nil
	}
	return 0, fmt.Errorf("unknown score mode %q", s)
}

// Frecency returns the score of e at now under mode.
// Timestamps in the future count as used just now in every mode, so
// ModeRecent scores them 0 rather than a positive value.
func Frecency(e Entry, mode Mode, now int64) float64 {
	age := max(now-e.LastUsed, 0)
	switch mode {
	case ModeRank:
		return float64(e.Rank)
	case ModeRecent:
		return -float64(age)
	}
	rank := float64(e.Rank)
	switch {
	case age < hour:
		return rank * 4
	case age < day:
		return rank * 2
	case age < week:
		return rank * 0.5
	default:
		return rank * 0.25
	}
}

// Score fills in Frecent for every entry.
func (d Database) Score(mode Mode, now time.Time) {
	ts := now.Unix()
	for i := range d {
		d[i].Frecent = Frecency(d[i], mode, ts)
	}
}

// Rank scores the entries and orders them best first. Ties end up in the
// reverse of their original relative order.
func (d Database) Rank(mode Mode, now time.Time) {
	d.Score(mode, now)
	sort.SliceStable(d, func(i, j int) bool { return d[i].Frecent < d[j].Frecent })
	slices.Reverse(d)
}
