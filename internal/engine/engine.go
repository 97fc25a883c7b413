package engine

import (
	"context"
	"time"

	"github.com/scanbit/scanbit/internal/callback"
	"github.com/scanbit/scanbit/internal/tree"
	"github.com/scanbit/scanbit/internal/types"
)

// Engine consumes a configuration tree and a scoring function. Both calls
// block until the scan is complete.
type Engine interface {
	Run(ctx context.Context, root *tree.Node, obj callback.Objective, opts RunOptions) (*Result, error)
	// RunFile loads and parses the settings file itself.
	RunFile(ctx context.Context, path string, obj callback.Objective, opts RunOptions) (*Result, error)
}

// RunOptions is the contract between the caller and the engine.
type RunOptions struct {
	// OwnsDistributedInit is false when the embedding host has already set
	// up the distributed runtime; the engine must then neither initialise
	// nor finalise it.
	OwnsDistributedInit bool
}

// Runtime is the distributed/parallel runtime an engine may own.
type Runtime interface {
	Init() error
	Finalize() error
}

// LocalRuntime is the single-process runtime; both calls are no-ops.
type LocalRuntime struct{}

func (LocalRuntime) Init() error     { return nil }
func (LocalRuntime) Finalize() error { return nil }

// Result summarises a finished scan.
type Result struct {
	Scanner     string
	Parameters  []string
	Samples     int
	Valid       int
	Best        *types.Sample
	Duration    time.Duration
	OutputFile  string
	Fingerprint string
}
