package store

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseEntry(t *testing.T) {
	tests := []struct {
		line string
		want Entry
		ok   bool
	}{
		{"/home/alice|12|1700000000", Entry{Path: "/home/alice", Rank: 12, LastUsed: 1700000000, Frecent: 12}, true},
		{"/tmp|0|0", Entry{Path: "/tmp", Rank: 0, LastUsed: 0}, true},
		{"/tmp|abc|xyz", Entry{Path: "/tmp"}, true},
		{"/tmp| 7x|  42\r", Entry{Path: "/tmp", Rank: 7, LastUsed: 42, Frecent: 7}, true},
		{"/tmp|-5|-9", Entry{Path: "/tmp"}, true},
		{"/tmp||", Entry{Path: "/tmp"}, true},
		{"|3|4", Entry{Path: "", Rank: 3, LastUsed: 4, Frecent: 3}, true},
		{"/only/one|3", Entry{}, false},
		{"no delimiters", Entry{}, false},
		{"", Entry{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseEntry(tt.line)
		if ok != tt.ok {
			t.Errorf("ParseEntry(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseEntry(%q) = %+v, want %+v", tt.line, got, tt.want)
		}
	}
}

func TestParseEntryPipeInPath(t *testing.T) {
	// Known format limitation: the path ends at the first '|'.
	e, ok := ParseEntry("/weird|dir|5|100")
	if !ok {
		t.Fatal("expected line to parse")
	}
	if e.Path != "/weird" {
		t.Errorf("Path = %q, want /weird", e.Path)
	}
	if e.Rank != 0 {
		t.Errorf("Rank = %d, want 0", e.Rank)
	}
	if e.LastUsed != 5 {
		t.Errorf("LastUsed = %d, want 5", e.LastUsed)
	}
}

func TestParseEntrySaturates(t *testing.T) {
	e, ok := ParseEntry("/x|99999999999|99999999999")
	if !ok {
		t.Fatal("expected line to parse")
	}
	if e.Rank != 2147483647 {
		t.Errorf("Rank = %d, want 2147483647", e.Rank)
	}
	if e.LastUsed != 4294967295 {
		t.Errorf("LastUsed = %d, want 4294967295", e.LastUsed)
	}
}

func TestEntryRoundTrip(t *testing.T) {
	entries := []Entry{
		{Path: "/home/alice/projects/zsh-tool", Rank: 42, LastUsed: 1700000123},
		{Path: `C:\Users\alice`, Rank: 1, LastUsed: 0},
		{Path: "/with space/and ünïcode", Rank: 4999, LastUsed: 4294967295},
	}
	for _, e := range entries {
		line := AppendEntry(nil, e)
		if line[len(line)-1] != '\n' {
			t.Fatalf("AppendEntry(%+v) missing newline: %q", e, line)
		}
		got, ok := ParseEntry(string(line[:len(line)-1]))
		if !ok {
			t.Fatalf("ParseEntry(%q) failed", line)
		}
		if got.Path != e.Path || got.Rank != e.Rank || got.LastUsed != e.LastUsed {
			t.Errorf("round trip = %+v, want %+v", got, e)
		}
	}
}

func TestAppendEntryFormat(t *testing.T) {
	got := string(AppendEntry(nil, Entry{Path: "/a", Rank: 3, LastUsed: 17, Frecent: 99}))
	if got != "/a|3|17\n" {
		t.Errorf("AppendEntry = %q, want %q", got, "/a|3|17\n")
	}
}

func TestDecodeSkipsMalformed(t *testing.T) {
	content := "/a|1|10\ngarbage\n/b|2\n/c|3|30\n\n"
	db := Decode([]byte(content))

	var paths []string
	for _, e := range db {
		paths = append(paths, e.Path)
	}
	if diff := cmp.Diff([]string{"/a", "/c"}, paths); diff != "" {
		t.Errorf("decoded paths mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeNoTrailingNewline(t *testing.T) {
	db := Decode([]byte("/a|1|10\n/b|2|20"))
	if len(db) != 2 {
		t.Fatalf("len = %d, want 2", len(db))
	}
	if db[1].Path != "/b" || db[1].LastUsed != 20 {
		t.Errorf("last entry = %+v", db[1])
	}
}

func TestDecodeEmpty(t *testing.T) {
	db := Decode(nil)
	if db == nil {
		t.Error("Decode(nil) = nil, want empty database")
	}
	if len(db) != 0 {
		t.Errorf("len = %d, want 0", len(db))
	}
}

func TestEncodeDecode(t *testing.T) {
	db := Database{
		{Path: "/a", Rank: 1, LastUsed: 10},
		{Path: "/b", Rank: 2, LastUsed: 20},
	}
	content := db.Encode()
	if string(content) != "/a|1|10\n/b|2|20\n" {
		t.Errorf("Encode = %q", content)
	}
	back := Decode(content)
	for i := range db {
		if back[i].Path != db[i].Path || back[i].Rank != db[i].Rank || back[i].LastUsed != db[i].LastUsed {
			t.Errorf("entry %d = %+v, want %+v", i, back[i], db[i])
		}
	}
}
