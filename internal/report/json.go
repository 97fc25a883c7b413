package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/scanbit/scanbit/internal/engine"
)

// WriteJSON writes the result as an indented JSON object.
func WriteJSON(w io.Writer, res *engine.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(res))
}

// jsonResult is the machine-readable form of engine.Result.
type jsonResult struct {
	Scanner     string             `json:"scanner"`
	Parameters  []string           `json:"parameters"`
	Samples     int                `json:"samples"`
	Valid       int                `json:"valid"`
	BestLogLike *float64           `json:"best_loglike,omitempty"`
	BestParams  map[string]float64 `json:"best_params,omitempty"`
	Duration    string             `json:"duration"`
	OutputFile  string             `json:"output_file,omitempty"`
	Fingerprint string             `json:"fingerprint"`
}

func toJSON(res *engine.Result) jsonResult {
	out := jsonResult{
		Scanner:     res.Scanner,
		Parameters:  res.Parameters,
		Samples:     res.Samples,
		Valid:       res.Valid,
		Duration:    res.Duration.Round(time.Millisecond).String(),
		OutputFile:  res.OutputFile,
		Fingerprint: res.Fingerprint,
	}
	if out.Parameters == nil {
		out.Parameters = []string{}
	}
	if res.Best != nil {
		v := res.Best.LogLike
		out.BestLogLike = &v
		out.BestParams = res.Best.Params
	}
	return out
}
