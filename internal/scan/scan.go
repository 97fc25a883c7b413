// Package scan is the entry point that turns a host's settings and scoring
// callable into an engine run.
package scan

import (
	"context"
	"log/slog"

	"github.com/scanbit/scanbit/internal/callback"
	"github.com/scanbit/scanbit/internal/convert"
	"github.com/scanbit/scanbit/internal/ctxlog"
	"github.com/scanbit/scanbit/internal/engine"
)

type options struct {
	builder   convert.Builder
	adapter   []callback.Option
	onAdapter func(*callback.Adapter)
}

// Option configures Run and RunFile.
type Option func(*options)

// WithLimits bounds the depth and size of the converted tree.
func WithLimits(maxDepth, maxNodes int) Option {
	return func(o *options) { o.builder = convert.Builder{MaxDepth: maxDepth, MaxNodes: maxNodes} }
}

// WithReentrantHost lets the engine's workers call fn concurrently.
func WithReentrantHost() Option {
	return func(o *options) { o.adapter = append(o.adapter, callback.WithReentrantHost()) }
}

// WithAdapter hands the scan's adapter to f before the engine starts, e.g.
// to read its call count afterwards.
func WithAdapter(f func(*callback.Adapter)) Option {
	return func(o *options) { o.onAdapter = f }
}

func newAdapter(fn callback.HostFunc, o *options) *callback.Adapter {
	a := callback.NewAdapter(nil, o.adapter...)
	a.Register(fn)
	if o.onAdapter != nil {
		o.onAdapter(a)
	}
	return a
}

func collect(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run registers fn, converts input into a configuration tree and runs eng
// on it. The host owns the distributed runtime. Conversion errors are the
// typed errors of package convert; engine errors are returned as they are.
func Run(ctx context.Context, eng engine.Engine, input any, fn callback.HostFunc, opts ...Option) (*engine.Result, error) {
	o := collect(opts)
	a := newAdapter(fn, o)

	root, err := o.builder.Build(input)
	if err != nil {
		return nil, err
	}
	log := ctxlog.FromContext(ctx)
	if log.Enabled(ctx, slog.LevelDebug) {
		log.Debug("constructed tree", "fingerprint", root.Fingerprint(), "tree", root.String())
	}
	return eng.Run(ctx, root, a.Objective(), engine.RunOptions{OwnsDistributedInit: false})
}

// RunFile registers fn and lets eng load the settings at path itself.
func RunFile(ctx context.Context, eng engine.Engine, path string, fn callback.HostFunc, opts ...Option) (*engine.Result, error) {
	o := collect(opts)
	a := newAdapter(fn, o)
	ctxlog.FromContext(ctx).Debug("running settings file", "path", path)
	return eng.RunFile(ctx, path, a.Objective(), engine.RunOptions{OwnsDistributedInit: false})
}
