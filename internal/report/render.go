package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/scanbit/scanbit/internal/engine"
	"github.com/scanbit/scanbit/internal/printer"
)

type PrintOptions struct {
	NoColor bool
	// Top limits the parameter table to the first N names; 0 shows all.
	Top int
}

// PrintSummary writes the best point as a table followed by run totals.
func PrintSummary(w io.Writer, res *engine.Result, opts PrintOptions) error {
	st := newPalette(opts.NoColor)
	fmt.Fprintln(w, st.title.Render(fmt.Sprintf("Scan %s", res.Scanner)))

	if res.Best == nil {
		fmt.Fprintln(w, st.warn.Render("No valid samples"))
	} else {
		names := make([]string, 0, len(res.Best.Params))
		for name := range res.Best.Params {
			names = append(names, name)
		}
		sort.Strings(names)
		if opts.Top > 0 && len(names) > opts.Top {
			names = names[:opts.Top]
		}

		table := tablewriter.NewWriter(w)
		table.Header("Parameter", "Best value")
		for _, name := range names {
			if err := table.Append([]string{name, formatValue(res.Best.Params[name])}); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
		fmt.Fprintf(w, "Best log-likelihood: %s (sample %d)\n", st.value.Render(formatValue(res.Best.LogLike)), res.Best.ID)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Samples: %d (valid: %d, invalid: %d)\n", res.Samples, res.Valid, res.Samples-res.Valid)
	if res.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", res.Duration.Seconds())
	}
	if res.OutputFile != "" {
		fmt.Fprintf(w, "Samples written to: %s\n", res.OutputFile)
	}
	if res.Fingerprint != "" {
		fmt.Fprintf(w, "Settings fingerprint: %s\n", res.Fingerprint)
	}
	return nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 8, 64)
}

// PrintHistory lists recorded runs, newest first.
func PrintHistory(w io.Writer, runs []printer.RunRecord) error {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No recorded runs")
		return nil
	}
	table := tablewriter.NewWriter(w)
	table.Header("Run", "Time", "Scanner", "Samples", "Valid", "Best", "Fingerprint")
	for _, r := range runs {
		best := "-"
		if r.BestLogLike != nil {
			best = formatValue(*r.BestLogLike)
		}
		row := []string{
			r.RunID,
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.Scanner,
			strconv.Itoa(r.Samples),
			strconv.Itoa(r.Valid),
			best,
			r.Fingerprint,
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}
