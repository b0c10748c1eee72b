package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/lazypower/zjump/internal/store"
)

var now = time.Unix(1_700_000_000, 0)

func ranked() []store.Entry {
	return []store.Entry{
		{Path: "/best", Rank: 10, LastUsed: now.Add(-2 * time.Hour).Unix(), Frecent: 20},
		{Path: "/middle", Rank: 4, LastUsed: now.Unix(), Frecent: 16},
		{Path: "/worst", Rank: 1, LastUsed: now.Add(-30 * 24 * time.Hour).Unix(), Frecent: 0.25},
	}
}

func TestListPlainBestLast(t *testing.T) {
	var buf bytes.Buffer
	if err := List(&buf, ranked(), ListOptions{Now: now}); err != nil {
		t.Fatalf("List: %v", err)
	}
	want := "0.25: /worst\n16.00: /middle\n20.00: /best\n"
	if buf.String() != want {
		t.Errorf("List =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestListBestFirstWithLimit(t *testing.T) {
	var buf bytes.Buffer
	if err := List(&buf, ranked(), ListOptions{BestFirst: true, Limit: 2, Now: now}); err != nil {
		t.Fatalf("List: %v", err)
	}
	want := "20.00: /best\n16.00: /middle\n"
	if buf.String() != want {
		t.Errorf("List =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestListLimitKeepsBest(t *testing.T) {
	var buf bytes.Buffer
	if err := List(&buf, ranked(), ListOptions{Limit: 1, Now: now}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if buf.String() != "20.00: /best\n" {
		t.Errorf("List = %q", buf.String())
	}
}

func TestListStyled(t *testing.T) {
	var buf bytes.Buffer
	if err := List(&buf, ranked(), ListOptions{Styled: true, BestFirst: true, Now: now}); err != nil {
		t.Fatalf("List: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if !strings.Contains(lines[0], "/best") || !strings.Contains(lines[0], "2 hours ago") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[0], "20.00") {
		t.Errorf("first line missing score: %q", lines[0])
	}
}

func TestListEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := List(&buf, nil, ListOptions{}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("List = %q, want empty", buf.String())
	}
}

func TestShouldStyleExplicit(t *testing.T) {
	if !ShouldStyle("always", nil) {
		t.Error("always should style")
	}
	if ShouldStyle("never", nil) {
		t.Error("never should not style")
	}
}

func TestExportText(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, FormatText, ranked()[:2]); err != nil {
		t.Fatalf("Export: %v", err)
	}
	want := "/best|10|1699992800\n/middle|4|1700000000\n"
	if buf.String() != want {
		t.Errorf("Export = %q, want %q", buf.String(), want)
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, FormatJSON, ranked()); err != nil {
		t.Fatalf("Export: %v", err)
	}
	var got []store.Entry
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 3 || got[0].Path != "/best" || got[0].Frecent != 20 {
		t.Errorf("decoded = %+v", got)
	}
	if !strings.Contains(buf.String(), `"last_used"`) {
		t.Errorf("missing last_used key: %s", buf.String())
	}
}

func TestExportJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, FormatJSON, nil); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("Export = %q, want []", buf.String())
	}
}

func TestExportYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, FormatYAML, ranked()[:1]); err != nil {
		t.Fatalf("Export: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"- path: /best", "rank: 10", "last_used: 1699992800"} {
		if !strings.Contains(out, want) {
			t.Errorf("yaml missing %q:\n%s", want, out)
		}
	}
}

func TestExportTOML(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, FormatTOML, ranked()[:1]); err != nil {
		t.Fatalf("Export: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"[[entries]]", "path = ", "/best", "rank = 10"} {
		if !strings.Contains(out, want) {
			t.Errorf("toml missing %q:\n%s", want, out)
		}
	}
}

func TestExportUnknown(t *testing.T) {
	if err := Export(&bytes.Buffer{}, "xml", nil); err == nil {
		t.Error("expected error for unknown format")
	}
}
