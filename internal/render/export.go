package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/lazypower/zjump/internal/store"
)

// Formats accepted by Export.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// tomlDocument wraps entries because a TOML document must be a table.
type tomlDocument struct {
	Entries []store.Entry `toml:"entries"`
}

// Export writes entries in the given format. The text format is the data
// file format itself.
func Export(w io.Writer, format string, entries []store.Entry) error {
	switch format {
	case FormatText:
		_, err := w.Write(store.Database(entries).Encode())
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(nonNil(entries))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(nonNil(entries)); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(tomlDocument{Entries: nonNil(entries)})
	}
	return fmt.Errorf("unknown export format %q", format)
}

func nonNil(entries []store.Entry) []store.Entry {
	if entries == nil {
		return []store.Entry{}
	}
	return entries
}
