package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove PATH...",
	Aliases: []string{"rm"},
	Short:   "Forget directories",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		n, err := s.Remove(args...)
		if err != nil {
			return fmt.Errorf("remove: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", plural(n, "entry", "entries"))
		return nil
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Forget directories that no longer exist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		n, err := s.Clean(isDir)
		if err != nil {
			return fmt.Errorf("clean: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", plural(n, "entry", "entries"))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Merge another data file into the database",
	Long: `Merge a data file in the same "path|rank|time" format, such as a z.lua
or z.sh database. Ranks of shared paths are added together and the most
recent time is kept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		n, err := s.Import(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %s from %s\n", plural(n, "entry", "entries"), args[0])
		return nil
	},
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
