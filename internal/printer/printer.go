// Package printer writes scan samples as JSON lines or into SQLite, and
// keeps the per-directory run history.
package printer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/scanbit/scanbit/internal/types"
)

// Printer receives samples in evaluation order.
type Printer interface {
	Print(types.Sample) error
	Close() error
	// Path is where samples go, empty when they are discarded.
	Path() string
}

// New returns the printer for a Printer.printer setting: "jsonl", "sqlite"
// or "none".
func New(kind, path string, truncate bool) (Printer, error) {
	switch kind {
	case "jsonl", "":
		return OpenJSONL(path, truncate)
	case "sqlite":
		return OpenSQLite(path, truncate)
	case "none":
		return Discard{}, nil
	default:
		return nil, fmt.Errorf("unsupported printer %q (available: jsonl, sqlite, none)", kind)
	}
}

// JSONL appends one JSON object per sample.
type JSONL struct {
	mu   sync.Mutex
	path string
	f    *os.File
	enc  *json.Encoder
}

// OpenJSONL opens path for appending, creating parent directories. With
// truncate set any earlier samples are discarded.
func OpenJSONL(path string, truncate bool) (*JSONL, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if truncate {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open sample file: %w", err)
	}
	return &JSONL{path: path, f: f, enc: json.NewEncoder(f)}, nil
}

func (p *JSONL) Print(s types.Sample) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.f == nil {
		return fmt.Errorf("printer closed")
	}
	if err := p.enc.Encode(s); err != nil {
		return fmt.Errorf("failed to write sample: %w", err)
	}
	return nil
}

func (p *JSONL) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.f == nil {
		return nil
	}
	err := p.f.Close()
	p.f = nil
	return err
}

func (p *JSONL) Path() string { return p.path }

// Discard drops every sample.
type Discard struct{}

func (Discard) Print(types.Sample) error { return nil }
func (Discard) Close() error             { return nil }
func (Discard) Path() string             { return "" }

// LoadSamples reads a sample file back. Files ending in .db or .sqlite are
// read as SQLite databases. A JSON line that fails to decode is an error
// naming its line number.
func LoadSamples(path string) ([]types.Sample, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite":
		return LoadSQLite(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sample file: %w", err)
	}
	defer f.Close()

	var out []types.Sample
	dec := json.NewDecoder(f)
	for line := 1; dec.More(); line++ {
		var s types.Sample
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", path, line, err)
		}
		out = append(out, s)
	}
	return out, nil
}
