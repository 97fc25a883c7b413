package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/scanbit/scanbit/internal/callback"
	"github.com/scanbit/scanbit/internal/ctxlog"
	"github.com/scanbit/scanbit/internal/printer"
	"github.com/scanbit/scanbit/internal/scanner"
	"github.com/scanbit/scanbit/internal/scanner/factory"
	"github.com/scanbit/scanbit/internal/tree"
	"github.com/scanbit/scanbit/internal/types"
)

// Sampler is the built-in engine.
type Sampler struct {
	// Threads bounds concurrent objective calls; <= 0 means GOMAXPROCS.
	Threads int
	// Seed is used when the scanner settings carry no seed.
	Seed int64
	// Runtime is initialised and finalised only when the caller hands over
	// ownership via RunOptions. Nil means LocalRuntime.
	Runtime Runtime
	// NoHistory skips appending to runs.jsonl in the output directory.
	NoHistory bool
}

var _ Engine = (*Sampler)(nil)

func determineBatchSize(threads int) int {
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	if threads < 2 {
		threads = 2
	}
	if threads > 32 {
		threads = 32
	}
	return threads * 4
}

// RunFile loads a YAML settings file and runs it.
func (s *Sampler) RunFile(ctx context.Context, path string, obj callback.Objective, opts RunOptions) (*Result, error) {
	root, err := tree.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx, root, obj, opts)
}

func (s *Sampler) Run(ctx context.Context, root *tree.Node, obj callback.Objective, opts RunOptions) (res *Result, err error) {
	if opts.OwnsDistributedInit {
		rt := s.Runtime
		if rt == nil {
			rt = LocalRuntime{}
		}
		if err := rt.Init(); err != nil {
			return nil, fmt.Errorf("failed to initialise runtime: %w", err)
		}
		defer func() {
			if ferr := rt.Finalize(); ferr != nil {
				err = errors.Join(err, fmt.Errorf("failed to finalise runtime: %w", ferr))
			}
		}()
	}

	p, err := parsePlan(root)
	if err != nil {
		return nil, err
	}
	seed := s.Seed
	if p.seed != nil {
		seed = *p.seed
	}
	scnr, err := factory.New(p.plugin, scanner.Options{Dim: len(p.free), Seed: seed, Settings: p.settings})
	if err != nil {
		return nil, err
	}
	prn, err := printer.New(p.printer, filepath.Join(p.outputDir, "samples", p.outputFile), p.truncate)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := prn.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close printer: %w", cerr)
		}
	}()

	threads := s.Threads
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	log := ctxlog.FromContext(ctx).With("scanner", p.scanner, "plugin", p.plugin)
	log.Info("scan started", "parameters", len(p.free), "fixed", len(p.fixed), "threads", threads)

	res = &Result{
		Scanner:     p.scanner,
		Parameters:  append([]string{}, p.free...),
		OutputFile:  prn.Path(),
		Fingerprint: root.Fingerprint(),
	}
	started := time.Now()
	batchSize := determineBatchSize(threads)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		batch := scnr.Ask(batchSize)
		if len(batch) == 0 {
			break
		}
		samples, err := evaluate(ctx, p, obj, batch, res.Samples, threads)
		if err != nil {
			return nil, err
		}
		values := make([]float64, len(samples))
		for i := range samples {
			values[i] = samples[i].LogLike
			if err := prn.Print(samples[i]); err != nil {
				return nil, err
			}
			res.record(samples[i])
		}
		scnr.Tell(batch, values)
		log.Debug("batch done", "size", len(batch), "samples", res.Samples)
	}
	res.Duration = time.Since(started)
	log.Info("scan finished", "samples", res.Samples, "valid", res.Valid, "duration", res.Duration)

	if !s.NoHistory {
		if err := printer.NewHistory(p.outputDir).Append(historyRecord(res)); err != nil {
			log.Warn("failed to record run", "error", err)
		}
	}
	return res, nil
}

// evaluate scores one batch with at most threads concurrent objective
// calls. The first failure aborts the batch.
func evaluate(ctx context.Context, p *plan, obj callback.Objective, batch [][]float64, firstID, threads int) ([]types.Sample, error) {
	out := make([]types.Sample, len(batch))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i, u := range batch {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			params := p.physical(u)
			v, err := obj(gctx, params)
			if err != nil {
				return fmt.Errorf("sample %d: %w", firstID+i, err)
			}
			status := types.StatusValid
			if math.IsNaN(v) || v < p.invalidBelow {
				status = types.StatusInvalid
			}
			v = finite(v)
			out[i] = types.Sample{ID: firstID + i, Params: params, LogLike: v, Status: status, Unit: u}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// finite keeps samples JSON-encodable: NaN and -Inf become the lowest
// float, +Inf the highest.
func finite(v float64) float64 {
	switch {
	case math.IsNaN(v), math.IsInf(v, -1):
		return -math.MaxFloat64
	case math.IsInf(v, 1):
		return math.MaxFloat64
	}
	return v
}

func (r *Result) record(s types.Sample) {
	r.Samples++
	if !s.Valid() {
		return
	}
	r.Valid++
	if r.Best == nil || s.LogLike > r.Best.LogLike {
		best := s
		r.Best = &best
	}
}

func historyRecord(r *Result) printer.RunRecord {
	rec := printer.RunRecord{
		Scanner:     r.Scanner,
		Fingerprint: r.Fingerprint,
		Samples:     r.Samples,
		Valid:       r.Valid,
		Duration:    r.Duration.String(),
		SampleFile:  r.OutputFile,
	}
	if r.Best != nil {
		v := r.Best.LogLike
		rec.BestLogLike = &v
		rec.BestParams = r.Best.Params
	}
	return rec
}
