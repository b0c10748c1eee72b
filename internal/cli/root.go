package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/lazypower/zjump/internal/config"
	"github.com/lazypower/zjump/internal/store"
)

var (
	flagConfig  string
	flagData    string
	flagVerbose bool

	// Legacy helper interface: `zjump --add PATH` and `zjump -e KEYWORD...`.
	flagAdd  string
	flagEcho bool

	cfg      = config.Default()
	logger   = zap.NewNop()
	resolver *config.Resolver
)

var rootCmd = &cobra.Command{
	Use:   "zjump",
	Short: "Jump to frecently used directories",
	Long: `zjump keeps a small database of the directories you visit, ranked by
how often and how recently you used them, and resolves keywords to the
best matching directory. Shell hooks call "zjump add $PWD" on every
directory change and "zjump echo KEYWORD..." to find a jump target.`,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runRoot,
}

func Execute() error {
	return execute(os.Args[1:])
}

func execute(args []string) error {
	defer func() { logger.Sync() }()
	rootCmd.SetArgs(legacyArgs(args))
	return rootCmd.Execute()
}

// legacyArgs ends flag and subcommand parsing right after a leading -e, so
// `zjump -e list` looks up the keyword "list" instead of running the list
// command. Only root flags before the first positional argument are scanned.
func legacyArgs(args []string) []string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--" || !strings.HasPrefix(a, "-"):
			return args
		case a == "-e" || a == "--echo":
			out := make([]string, 0, len(args)+1)
			out = append(out, args[:i+1]...)
			out = append(out, "--")
			return append(out, args[i+1:]...)
		case takesValue(a):
			i++
		}
	}
	return args
}

// takesValue reports whether the root flag a consumes the next argument.
func takesValue(a string) bool {
	if strings.Contains(a, "=") {
		return false
	}
	var f *pflag.Flag
	if name, ok := strings.CutPrefix(a, "--"); ok {
		f = rootCmd.Flags().Lookup(name)
		if f == nil {
			f = rootCmd.PersistentFlags().Lookup(name)
		}
	} else if len(a) == 2 {
		f = rootCmd.Flags().ShorthandLookup(a[1:])
		if f == nil {
			f = rootCmd.PersistentFlags().ShorthandLookup(a[1:])
		}
	}
	return f != nil && f.NoOptDefVal == ""
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file (default $ZJUMP_CONFIG or <config dir>/zjump/config.toml)")
	pf.StringVar(&flagData, "data", "", "Data file (overrides $_ZL_DATA2 and the config file)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.Flags().StringVar(&flagAdd, "add", "", "Record a visit to `PATH` (same as the add command)")
	rootCmd.Flags().BoolVarP(&flagEcho, "echo", "e", false, "Print the best match for the keywords in args")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(echoCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}

// setup loads configuration and the logger before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	path := flagConfig
	if path == "" {
		// Without a user config dir there is no config file; defaults apply.
		path, _ = config.DefaultConfigPath()
	}

	cfg = config.Default()
	var cfgErr error
	if path != "" {
		loaded, err := config.Load(path)
		switch {
		case err == nil:
			cfg = loaded
		case bestEffort(cmd):
			cfgErr = err
		default:
			return err
		}
	}

	l, err := newLogger(cfg.Log.Level, flagVerbose)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger = l
	if cfgErr != nil {
		logger.Debug("config ignored, using defaults", zap.String("config", path), zap.Error(cfgErr))
	}
	resolver = config.NewResolver(cfg)
	logger.Debug("starting",
		zap.String("version", VersionString()),
		zap.String("command", cmd.Name()),
		zap.String("config", path))
	return nil
}

// bestEffort reports whether cmd is a shell hook invocation that must not
// fail on a broken config file.
func bestEffort(cmd *cobra.Command) bool {
	if !cmd.HasParent() {
		return flagAdd != "" || flagEcho
	}
	switch cmd.Name() {
	case "add":
		return !addStrict
	case "echo":
		return true
	}
	return false
}

func runRoot(cmd *cobra.Command, args []string) error {
	switch {
	case flagAdd != "":
		return recordVisit(flagAdd, false, false)
	case flagEcho:
		return printBest(cmd, args)
	}
	return cmd.Help()
}

// openStore builds the Store for the resolved data file.
func openStore() (*store.Store, error) {
	path := flagData
	if path == "" {
		var err error
		path, err = resolver.DataFile()
		if err != nil {
			return nil, fmt.Errorf("resolve data file: %w", err)
		}
	}

	opts := []store.Option{store.WithLogger(logger.Named("store"))}
	if ic := cfg.Match.IgnoreCase; ic != nil {
		id := store.CaseSensitive
		if *ic {
			id = store.CaseInsensitive
		}
		opts = append(opts, store.WithIdentity(id))
	}
	return store.New(path, opts...), nil
}
