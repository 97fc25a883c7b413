package core

import (
	"context"

	"github.com/scanbit/scanbit/internal/callback"
	"github.com/scanbit/scanbit/internal/convert"
	"github.com/scanbit/scanbit/internal/dynval"
	"github.com/scanbit/scanbit/internal/engine"
	"github.com/scanbit/scanbit/internal/scan"
	"github.com/scanbit/scanbit/internal/settings"
	"github.com/scanbit/scanbit/internal/tree"
	"github.com/scanbit/scanbit/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type (
	Node           = tree.Node
	Map            = dynval.Map
	Entry          = dynval.Entry
	HostFunc       = callback.HostFunc
	Params         = callback.Params
	Objective      = callback.Objective
	Engine         = engine.Engine
	RunOptions     = engine.RunOptions
	Runtime        = engine.Runtime
	Result         = engine.Result
	Sampler        = engine.Sampler
	Sample         = types.Sample
	Option         = scan.Option
	PrepareOptions = settings.Options
)

// Error types, for errors.As.
type (
	UnsupportedTypeError = convert.UnsupportedTypeError
	MixedTypeError       = convert.MixedTypeError
	CastError            = convert.CastError
	DuplicateKeyError    = convert.DuplicateKeyError
	LimitError           = convert.LimitError
	CallbackError        = callback.CallbackError
)

var (
	WithLimits        = scan.WithLimits
	WithReentrantHost = scan.WithReentrantHost
)

// RunScan converts settings into a configuration tree and runs eng on it
// with fn as the scoring callable. Engine errors are returned unchanged.
func RunScan(ctx context.Context, eng Engine, settings any, fn HostFunc, opts ...Option) (*Result, error) {
	return scan.Run(ctx, eng, settings, fn, opts...)
}

// RunScanFromFile lets eng load the settings file at path itself.
func RunScanFromFile(ctx context.Context, eng Engine, path string, fn HostFunc, opts ...Option) (*Result, error) {
	return scan.RunFile(ctx, eng, path, fn, opts...)
}

// BuildTree converts settings without running anything.
func BuildTree(settings any) (*Node, error) { return convert.Build(settings) }

// NewSampler returns the built-in engine using threads workers (0 = all CPUs).
func NewSampler(threads int) *Sampler { return &engine.Sampler{Threads: threads} }

// LoadSettings reads a YAML, JSON or HCL settings document in document order.
func LoadSettings(path string) (Map, error) { return dynval.LoadFile(path) }

// PrepareSettings fills user settings from the defaults and shorthand.
func PrepareSettings(user Map, opts PrepareOptions) (Map, error) { return settings.Prepare(user, opts) }

// Positional adapts a function of positional arguments named model::name.
func Positional(model string, names []string, fn func(ctx context.Context, args []float64) (any, error)) HostFunc {
	return callback.Positional(model, names, fn)
}
