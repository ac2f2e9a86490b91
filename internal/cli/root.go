package cli

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fjglira/mkoptions/internal/config"
	"github.com/fjglira/mkoptions/internal/domain"
)

var (
	cfgFile string
	verbose bool
	dryRun  bool
	log     *logrus.Logger
	cfg     *config.Config
)

// rootCmd generates option sources and manuals from specification files.
var rootCmd = &cobra.Command{
	Use:   "mkoptions <templates-dir> <dest-dir> <docs-dir> <spec-file>...",
	Short: "Generate option handling code and manuals from option specifications",
	Long: `mkoptions reads option specification files (TOML or YAML), validates
them, resolves cross references between all files and fills the source
templates found in <templates-dir> and the manual templates found in
<docs-dir>.

Sources are written to <dest-dir>, manuals to <docs-dir>. Files whose
content did not change are left untouched.`,
	Args:          requireArgs(4),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadOrDefault(cfgFile)
		if err != nil {
			return err
		}
		if err := config.Validate(cfg); err != nil {
			return err
		}
		if dryRun {
			cfg.DryRun = true
		}
		log = newLogger(cfg.Logging.Level, verbose)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(args[0], args[1], args[2], args[3:])
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "render everything and show pending changes without writing files")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return domain.NewUsageError("%v", err)
	})

	// Initialize default logger (overridden in PersistentPreRunE)
	log = newLogger("info", false)
}

func newLogger(level string, verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	if verbose {
		lvl = logrus.DebugLevel
	}
	l.SetLevel(lvl)
	return l
}

// requireArgs rejects invocations with fewer than n positional arguments.
func requireArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return domain.NewUsageError("%s requires at least %d argument(s), got %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Usage returns the usage text of the root command.
func Usage() string {
	return rootCmd.UsageString()
}
