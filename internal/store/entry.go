package store

import (
	"bytes"
	"math"
	"strconv"
	"strings"
)

// Entry is one visited path with its visit weight.
// Frecent is derived at query time and never written to disk.
type Entry struct {
	Path     string  `json:"path" yaml:"path" toml:"path"`
	Rank     int     `json:"rank" yaml:"rank" toml:"rank"`
	LastUsed int64   `json:"last_used" yaml:"last_used" toml:"last_used"`
	Frecent  float64 `json:"frecent" yaml:"frecent" toml:"frecent"`
}

// AppendEntry appends the record line for e, including the trailing newline.
// The path is written verbatim: a path containing '|' cannot be read back intact.
func AppendEntry(buf []byte, e Entry) []byte {
	buf = append(buf, e.Path...)
	buf = append(buf, '|')
	buf = strconv.AppendInt(buf, int64(max(e.Rank, 0)), 10)
	buf = append(buf, '|')
	buf = strconv.AppendInt(buf, max(e.LastUsed, 0), 10)
	return append(buf, '\n')
}

// ParseEntry decodes one record line. It reports false when the line does
// not carry two '|' delimiters. Numeric fields follow C prefix-parse rules:
// leading digits are used and anything unparsable reads as zero.
func ParseEntry(line string) (Entry, bool) {
	p1 := strings.IndexByte(line, '|')
	if p1 < 0 {
		return Entry{}, false
	}
	p2 := strings.IndexByte(line[p1+1:], '|')
	if p2 < 0 {
		return Entry{}, false
	}
	p2 += p1 + 1

	rank := atoi(line[p1+1 : p2])
	e := Entry{
		Path:     line[:p1],
		Rank:     max(rank, 0),
		LastUsed: atou(line[p2+1:]),
	}
	e.Frecent = float64(e.Rank)
	return e, true
}

// Decode parses a whole data file. Malformed lines are skipped.
func Decode(content []byte) Database {
	db := Database{}
	for len(content) > 0 {
		line := content
		if i := bytes.IndexByte(content, '\n'); i >= 0 {
			line, content = content[:i], content[i+1:]
		} else {
			content = nil
		}
		if e, ok := ParseEntry(string(line)); ok {
			db = append(db, e)
		}
	}
	return db
}

// Encode renders the database in file format.
func (d Database) Encode() []byte {
	buf := make([]byte, 0, len(d)*64)
	for _, e := range d {
		buf = AppendEntry(buf, e)
	}
	return buf
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// atoi parses an optionally signed decimal prefix, saturating at the int32 range.
func atoi(s string) int {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	var n int64
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int64(s[i]-'0')
		if n > math.MaxInt32 {
			n = math.MaxInt32
		}
	}
	if neg {
		return int(-n)
	}
	return int(n)
}

// atou parses an unsigned decimal prefix, saturating at the uint32 range.
// A leading '-' reads as zero.
func atou(s string) int64 {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	if i < len(s) && s[i] == '+' {
		i++
	}
	var n int64
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int64(s[i]-'0')
		if n > math.MaxUint32 {
			n = math.MaxUint32
		}
	}
	return n
}
