package core

import (
	"io"

	"github.com/scanbit/scanbit/internal/printer"
	"github.com/scanbit/scanbit/internal/report"
)

// MarshalResult pretty-prints a scan result as JSON for humans or pipelines.
func MarshalResult(w io.Writer, res *Result) error {
	return report.WriteJSON(w, res)
}

// LoadSamples reads back the samples a jsonl or sqlite printer wrote.
func LoadSamples(path string) ([]Sample, error) {
	return printer.LoadSamples(path)
}
