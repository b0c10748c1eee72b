package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lazypower/zjump/internal/render"
	"github.com/lazypower/zjump/internal/store"
)

var echoCmd = &cobra.Command{
	Use:     "echo [keyword...]",
	Aliases: []string{"e"},
	Short:   "Print the best matching directory",
	Long: `Print the highest ranked directory whose path contains the keywords in
order, with the last keyword inside the final path component. Prints
nothing when there is no match.`,
	Args: cobra.ArbitraryArgs,
	RunE: printBest,
}

func printBest(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		logger.Debug("open store", zap.Error(err))
		return nil
	}
	best, ok, err := s.QueryBest(args)
	if err != nil {
		logger.Debug("query failed", zap.Strings("keywords", args), zap.Error(err))
		return nil
	}
	if ok {
		fmt.Fprintln(cmd.OutOrStdout(), best)
	}
	return nil
}

// --- list command ---

var (
	listMode      string
	listBestFirst bool
	listLimit     int
	listColor     string
)

var listCmd = &cobra.Command{
	Use:     "list [keyword...]",
	Aliases: []string{"ls"},
	Short:   "List matching directories with their scores",
	Long: `List every directory matching the keywords as "score: path" lines.
The best match is printed last unless --best-first is given.`,
	Args: cobra.ArbitraryArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listMode, "mode", "m", "frecent", "Score by frecent, rank or time")
	listCmd.Flags().BoolVarP(&listBestFirst, "best-first", "r", false, "Print the best match first")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "Maximum number of results (default from config, 0 for all)")
	listCmd.Flags().StringVar(&listColor, "color", "", "Color output: auto, always or never (default from config)")
}

func runList(cmd *cobra.Command, args []string) error {
	mode, err := store.ParseMode(listMode)
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

	limit := cfg.List.Limit
	if cmd.Flags().Changed("limit") {
		limit = listLimit
	}
	color := cfg.List.Color
	if listColor != "" {
		color = listColor
	}

	return render.List(cmd.OutOrStdout(), entries, render.ListOptions{
		Styled:    styledOutput(cmd, color),
		BestFirst: listBestFirst,
		Limit:     limit,
		Now:       time.Now(),
	})
}

// styledOutput reports whether cmd writes to a terminal that should get styling.
func styledOutput(cmd *cobra.Command, color string) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return color == "always"
	}
	return render.ShouldStyle(color, f)
}
