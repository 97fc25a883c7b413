package scanbit

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/scanbit/scanbit/internal/printer"
	"github.com/scanbit/scanbit/internal/report"
)

func init() {
	cmd := &cobra.Command{
		Use:   "runs DIR",
		Short: "List the scans recorded in an output directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := printer.NewHistory(args[0]).Load()
			if err != nil {
				return err
			}
			if flagJSON {
				return writeJSON(cmd.OutOrStdout(), runs)
			}
			return report.PrintHistory(cmd.OutOrStdout(), runs)
		},
	}
	rootCmd.AddCommand(cmd)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
