package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	addFast   bool
	addStrict bool
)

var addCmd = &cobra.Command{
	Use:   "add PATH",
	Short: "Record a visit to a directory",
	Long: `Record a visit to PATH, bumping its rank and last-used time.

Failures are silent by default so a broken data file never disturbs the
shell prompt; pass --strict to report them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return recordVisit(args[0], addFast, addStrict)
	},
}

func init() {
	addCmd.Flags().BoolVar(&addFast, "fast", false, "Skip the decay pass and lock only for the write")
	addCmd.Flags().BoolVar(&addStrict, "strict", false, "Report failures instead of ignoring them")
}

func recordVisit(path string, fast, strict bool) error {
	s, err := openStore()
	if err == nil {
		if fast {
			err = s.Add(path)
		} else {
			err = s.RecordVisit(path)
		}
	}
	if err != nil {
		logger.Debug("record visit failed", zap.String("path", path), zap.Error(err))
		if strict {
			return fmt.Errorf("record visit: %w", err)
		}
	}
	return nil
}
