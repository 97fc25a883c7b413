package scanbit

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scanbit/scanbit/internal/callback"
	"github.com/scanbit/scanbit/internal/config"
	"github.com/scanbit/scanbit/internal/convert"
	"github.com/scanbit/scanbit/internal/dynval"
	"github.com/scanbit/scanbit/internal/engine"
	"github.com/scanbit/scanbit/internal/report"
	"github.com/scanbit/scanbit/internal/scan"
	"github.com/scanbit/scanbit/internal/scanner/factory"
	"github.com/scanbit/scanbit/internal/settings"
	"github.com/scanbit/scanbit/internal/tree"
)

var (
	flagSettings     string
	flagParams       []string
	flagObjective    string
	flagObjectiveCmd string
	flagReentrant    bool
	flagScanner      string
	flagPoints       int
	flagSeed         int64
	flagOutput       string
	flagPrintTree    bool
	flagPrinter      string
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan an objective over the parameters of a settings document",
		Example: `
# Scan a builtin objective over two flat parameters
scanbit scan --param model::x=-5:5 --param model::y=-5:5 --objective gaussian

# Scan an external program with settings from a file
scanbit scan --settings scan.yaml --objective-cmd "python3 loglike.py" --scanner de
`,
		RunE: runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagSettings, "settings", "s", "", "settings document (YAML, JSON or HCL by extension)")
	cmd.Flags().StringArrayVar(&flagParams, "param", nil, "add a parameter: model::name=lo:hi[:flat|log] (repeatable)")
	cmd.Flags().StringVar(&flagScanner, "scanner", "", "scanner to use (overrides Scanner.use_scanner)")
	cmd.Flags().IntVar(&flagPoints, "points", 0, "number of points for the random scanner (0 = settings)")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output directory (default <default_output_path>/<scanner>_scan)")
	cmd.Flags().BoolVar(&flagPrintTree, "print-tree", false, "print the configuration tree to stderr before scanning")
	cmd.Flags().StringVar(&flagPrinter, "printer", "", "sample printer: jsonl|sqlite|none (overrides Printer.printer)")
	addRunFlags(cmd)
	_ = cmd.RegisterFlagCompletionFunc("scanner", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return factory.Plugins(), cobra.ShellCompDirectiveNoFileComp
	})

	fileCmd := &cobra.Command{
		Use:   "scan-file FILE",
		Short: "Run a settings file as-is; the engine loads and parses it",
		Args:  cobra.ExactArgs(1),
		RunE:  runScanFile,
	}
	rootCmd.AddCommand(fileCmd)
	addRunFlags(fileCmd)
}

// addRunFlags registers the objective and engine flags shared by scan and
// scan-file.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagObjective, "objective", "", "builtin objective: "+strings.Join(callback.BuiltinNames(), "|"))
	cmd.Flags().StringVar(&flagObjectiveCmd, "objective-cmd", "", "command reading JSON parameters on stdin and printing the log-likelihood")
	cmd.Flags().BoolVar(&flagReentrant, "reentrant", false, "allow concurrent objective calls")
	cmd.Flags().Int64Var(&flagSeed, "seed", 0, "seed for scanners without one in their settings")
	_ = cmd.RegisterFlagCompletionFunc("objective", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return callback.BuiltinNames(), cobra.ShellCompDirectiveNoFileComp
	})
}

func runScan(cmd *cobra.Command, _ []string) error {
	lcfg, gcfg := loadConfigs()
	ctx := commandContext(cmd, lcfg, gcfg)

	user := dynval.Map{}
	if flagSettings != "" {
		m, err := dynval.LoadFile(flagSettings)
		if err != nil {
			return err
		}
		user = m
	}
	for _, raw := range flagParams {
		p, err := parseParamFlag(raw)
		if err != nil {
			return err
		}
		spec := dynval.Map{
			{Key: "range", Value: []any{p.Lo, p.Hi}},
			{Key: "prior_type", Value: p.Prior},
		}
		if user, err = settings.SetPath(user, spec, "Parameters", p.Model, p.Name); err != nil {
			return err
		}
	}

	prepared, err := settings.Prepare(user, settings.Options{
		Scanner:    pickString(flagScanner, lcfg.Scanner, gcfg.Scanner),
		OutputPath: pickString(flagOutput, lcfg.OutputPath, gcfg.OutputPath),
	})
	if err != nil {
		return err
	}
	if flagPoints > 0 {
		if prepared, err = settings.SetPath(prepared, flagPoints, "Scanner", "scanners", settings.ScannerName(prepared), "points"); err != nil {
			return err
		}
	}

	if flagPrinter != "" {
		if prepared, err = applyPrinter(prepared, flagPrinter); err != nil {
			return err
		}
	}

	fn, opts, err := resolveObjective(lcfg, gcfg)
	if err != nil {
		return err
	}
	builder := convert.Builder{
		MaxDepth: pickInt(flagMaxDepth, lcfg.MaxDepth, gcfg.MaxDepth),
		MaxNodes: pickInt(flagMaxNodes, lcfg.MaxNodes, gcfg.MaxNodes),
	}
	opts = append(opts, scan.WithLimits(builder.MaxDepth, builder.MaxNodes))

	if flagPrintTree {
		root, err := builder.Build(prepared)
		if err != nil {
			return err
		}
		if err := printTree(cmd.ErrOrStderr(), root, colorOutput(lcfg, gcfg)); err != nil {
			return err
		}
	}

	res, err := scan.Run(ctx, newSampler(cmd, lcfg, gcfg), prepared, fn, opts...)
	if err != nil {
		return err
	}
	return printResult(cmd, res, lcfg, gcfg)
}

// applyPrinter sets Printer.printer. An sqlite printer left on the default
// samples.jsonl file name writes samples.db instead.
func applyPrinter(m dynval.Map, kind string) (dynval.Map, error) {
	m, err := settings.SetPath(m, kind, "Printer", "printer")
	if err != nil {
		return nil, err
	}
	if kind != "sqlite" {
		return m, nil
	}
	pr, _ := m.Get("Printer")
	prm, _ := pr.(dynval.Map)
	opts, _ := prm.Get("options")
	optm, _ := opts.(dynval.Map)
	if f, _ := optm.Get("output_file"); f == nil || f == settings.DefaultOutputFile {
		return settings.SetPath(m, "samples.db", "Printer", "options", "output_file")
	}
	return m, nil
}

func runScanFile(cmd *cobra.Command, args []string) error {
	lcfg, gcfg := loadConfigs()
	ctx := commandContext(cmd, lcfg, gcfg)

	fn, opts, err := resolveObjective(lcfg, gcfg)
	if err != nil {
		return err
	}
	res, err := scan.RunFile(ctx, newSampler(cmd, lcfg, gcfg), args[0], fn, opts...)
	if err != nil {
		return err
	}
	return printResult(cmd, res, lcfg, gcfg)
}

// resolveObjective picks the scoring callable: CLI flags first, then the
// local and global config files.
func resolveObjective(lcfg, gcfg config.FileConfig) (callback.HostFunc, []scan.Option, error) {
	var opts []scan.Option
	lobj, gobj := lcfg.GetObjective(), gcfg.GetObjective()
	if flagReentrant || lobj.IsReentrant() || (lcfg.Objective == nil && gobj.IsReentrant()) {
		opts = append(opts, scan.WithReentrantHost())
	}

	if flagObjective != "" && flagObjectiveCmd != "" {
		return nil, nil, fmt.Errorf("--objective and --objective-cmd are mutually exclusive")
	}
	argv := strings.Fields(flagObjectiveCmd)
	name := flagObjective
	if name == "" && len(argv) == 0 {
		for _, oc := range []config.ObjectiveConfig{lobj, gobj} {
			if oc.GetBuiltin() != "" || len(oc.Command) > 0 {
				name, argv = oc.GetBuiltin(), oc.Command
				break
			}
		}
	}

	switch {
	case len(argv) > 0 && name == "":
		fn, err := callback.Command(argv)
		return fn, opts, err
	case name != "":
		fn, ok := callback.Builtin(name)
		if !ok {
			return nil, nil, fmt.Errorf("unknown objective %q (available: %s)", name, strings.Join(callback.BuiltinNames(), ", "))
		}
		return fn, opts, nil
	default:
		return nil, nil, fmt.Errorf("no objective: pass --objective or --objective-cmd, or set objective in .scanbit.yml")
	}
}

func newSampler(cmd *cobra.Command, lcfg, gcfg config.FileConfig) *engine.Sampler {
	seed, _ := pickInt64(flagSeed, cmd.Flags().Changed("seed"), lcfg.Seed, gcfg.Seed)
	return &engine.Sampler{
		Threads: pickInt(flagThreads, lcfg.Threads, gcfg.Threads),
		Seed:    seed,
	}
}

func printResult(cmd *cobra.Command, res *engine.Result, lcfg, gcfg config.FileConfig) error {
	if flagJSON {
		return report.WriteJSON(cmd.OutOrStdout(), res)
	}
	return report.PrintSummary(cmd.OutOrStdout(), res, report.PrintOptions{NoColor: !colorOutput(lcfg, gcfg)})
}

func printTree(w io.Writer, root *tree.Node, color bool) error {
	out := root.String()
	if color {
		out = report.HighlightYAML(out)
	}
	_, err := io.WriteString(w, out)
	return err
}
