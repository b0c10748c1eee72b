package render

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/lazypower/zjump/internal/store"
)

// ListOptions controls how ranked entries are printed.
type ListOptions struct {
	Styled    bool      // colored columns with a relative last-used column
	BestFirst bool      // print the best match first instead of last
	Limit     int       // keep only the best Limit entries; 0 keeps all
	Now       time.Time // reference time for the last-used column
}

// Theme holds the styles used for terminal output.
type Theme struct {
	Score lipgloss.Style
	Path  lipgloss.Style
	Age   lipgloss.Style
}

// DefaultTheme returns the theme used on terminals.
func DefaultTheme() Theme {
	return Theme{
		Score: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Width(10).Align(lipgloss.Right), // Cyan
		Path:  lipgloss.NewStyle().Bold(true),
		Age:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")), // Gray
	}
}

// ShouldStyle resolves a color setting ("auto", "always", "never") for f.
func ShouldStyle(color string, f *os.File) bool {
	switch color {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// List prints ranked entries (best first, as returned by the store) as
// "score: path" lines. By default the best match is printed last so it
// ends up next to the prompt.
func List(w io.Writer, entries []store.Entry, opts ListOptions) error {
	if opts.Limit > 0 && len(entries) > opts.Limit {
		entries = entries[:opts.Limit]
	}
	theme := DefaultTheme()
	for i := range entries {
		e := entries[i]
		if !opts.BestFirst {
			e = entries[len(entries)-1-i]
		}
		var err error
		if opts.Styled {
			age := humanize.RelTime(time.Unix(e.LastUsed, 0), opts.Now, "ago", "from now")
			_, err = fmt.Fprintf(w, "%s  %s  %s\n",
				theme.Score.Render(fmt.Sprintf("%.2f", e.Frecent)),
				theme.Path.Render(e.Path),
				theme.Age.Render(age))
		} else {
			_, err = fmt.Fprintf(w, "%.2f: %s\n", e.Frecent, e.Path)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
