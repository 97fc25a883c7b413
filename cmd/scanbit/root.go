package scanbit

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/scanbit/scanbit/internal/config"
	"github.com/scanbit/scanbit/internal/ctxlog"
	"github.com/scanbit/scanbit/internal/report"
)

var (
	flagJSON      bool
	flagThreads   int
	flagNoColor   bool
	flagLogLevel  string
	flagLogFormat string
	flagMaxDepth  int
	flagMaxNodes  int

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the scanbit CLI.
var rootCmd = &cobra.Command{
	Use:           "scanbit",
	Short:         "Scan a likelihood over a parameter space",
	Long:          "scanbit converts a settings document into a configuration tree and scans a scoring function over the parameters it declares.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the scanbit CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		noColor := flagNoColor || !report.ColorEnabled(os.Stderr, false)
		_, _ = os.Stderr.WriteString(report.FormatError(err, noColor) + "\n")
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().IntVar(&flagThreads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "debug|info|warn|error (default warn)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "text|json (default text)")
	rootCmd.PersistentFlags().IntVar(&flagMaxDepth, "max-depth", 0, "maximum settings nesting depth (0 = 64)")
	rootCmd.PersistentFlags().IntVar(&flagMaxNodes, "max-nodes", 0, "maximum settings entries (0 = 1000000)")
}

// loadConfigs returns the local and global file configs; missing files
// yield empty configs.
func loadConfigs() (local, global config.FileConfig) {
	if c, err := config.LoadGlobal(); err == nil {
		global = c
	}
	wd, _ := os.Getwd()
	if c, err := config.LoadLocal(wd); err == nil {
		local = c
	}
	return local, global
}

// commandContext carries a logger built from flags and config.
func commandContext(cmd *cobra.Command, lcfg, gcfg config.FileConfig) context.Context {
	level := pickString(flagLogLevel, lcfg.LogLevel, gcfg.LogLevel)
	if level == "" {
		level = "warn"
	}
	format := pickString(flagLogFormat, lcfg.LogFormat, gcfg.LogFormat)
	logger := ctxlog.New(level, format, cmd.ErrOrStderr())
	return ctxlog.WithLogger(cmd.Context(), logger)
}

func colorOutput(lcfg, gcfg config.FileConfig) bool {
	return report.ColorEnabled(os.Stdout, pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor))
}
