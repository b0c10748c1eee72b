package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lazypower/zjump/internal/render"
	"github.com/lazypower/zjump/internal/snapshot"
	"github.com/lazypower/zjump/internal/store"
)

const formatSQLite = "sqlite"

var (
	exportFormat string
	exportOutput string
	exportMode   string
)

var exportCmd = &cobra.Command{
	Use:   "export [keyword...]",
	Short: "Dump the ranked database",
	Long: `Write the matching entries, best first, as text, json, yaml, toml or an
SQLite snapshot. The sqlite format requires --output and appends a new
export to the snapshot file.`,
	Args: cobra.ArbitraryArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", render.FormatText, "Output format: text, json, yaml, toml or sqlite")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to FILE instead of stdout")
	exportCmd.Flags().StringVarP(&exportMode, "mode", "m", "frecent", "Score by frecent, rank or time")
}

func runExport(cmd *cobra.Command, args []string) error {
	mode, err := store.ParseMode(exportMode)
	if err != nil {
		return err
	}
	s, err := openStore()
	if err != nil {
		return err
	}
	entries, err := s.Query(args, mode)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}

	if exportFormat == formatSQLite {
		if exportOutput == "" {
			return errors.New("--output is required for the sqlite format")
		}
		db, err := snapshot.Open(exportOutput)
		if err != nil {
			return fmt.Errorf("open snapshot: %w", err)
		}
		defer db.Close()
		if _, err := db.WriteExport(cmd.Context(), s.Path(), mode, entries); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "exported %s to %s\n", plural(len(entries), "entry", "entries"), exportOutput)
		return nil
	}

	if exportOutput == "" {
		return exportTo(cmd.OutOrStdout(), entries)
	}
	f, err := os.Create(exportOutput)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := exportTo(f, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func exportTo(w io.Writer, entries []store.Entry) error {
	if err := render.Export(w, exportFormat, entries); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
