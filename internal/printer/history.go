package printer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// RunRecord summarises one finished scan.
type RunRecord struct {
	Timestamp   time.Time          `json:"timestamp"`
	RunID       string             `json:"run_id"`
	Scanner     string             `json:"scanner"`
	Fingerprint string             `json:"fingerprint"`
	Samples     int                `json:"samples"`
	Valid       int                `json:"valid"`
	BestLogLike *float64           `json:"best_loglike,omitempty"`
	BestParams  map[string]float64 `json:"best_params,omitempty"`
	Duration    string             `json:"duration"`
	SampleFile  string             `json:"sample_file,omitempty"`
}

// History is the runs.jsonl log kept next to a run's samples.
type History struct {
	path string
}

func NewHistory(dir string) *History {
	return &History{path: filepath.Join(dir, "runs.jsonl")}
}

func (h *History) Path() string { return h.path }

// Append adds a record, filling RunID and Timestamp when unset.
func (h *History) Append(rec RunRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	if rec.RunID == "" {
		rec.RunID = fmt.Sprintf("run_%d", rec.Timestamp.Unix())
	}
	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.OpenFile(h.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open run history: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(rec); err != nil {
		return fmt.Errorf("failed to write run record: %w", err)
	}
	return nil
}

// Load returns the recorded runs, newest first.
func (h *History) Load() ([]RunRecord, error) {
	f, err := os.Open(h.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open run history: %w", err)
	}
	defer f.Close()

	var records []RunRecord
	dec := json.NewDecoder(f)
	for dec.More() {
		var rec RunRecord
		if err := dec.Decode(&rec); err != nil {
			break
		}
		records = append(records, rec)
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}
