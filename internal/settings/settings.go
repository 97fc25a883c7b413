// Package settings holds the default scan settings and fills a user's
// settings document from them before it is converted into a tree.
package settings

import (
	"errors"
	"fmt"
	"path"

	"github.com/scanbit/scanbit/internal/callback"
	"github.com/scanbit/scanbit/internal/dynval"
)

const (
	DefaultScanner    = "random"
	DefaultOutputPath = "scanbit_run_data/unnamed_run"
	DefaultModel      = "default"
	DefaultOutputFile = "samples.jsonl"
)

// Defaults returns a fresh copy of the default settings.
func Defaults() dynval.Map {
	return dynval.Map{
		{Key: "Printer", Value: dynval.Map{
			{Key: "printer", Value: "jsonl"},
			{Key: "options", Value: dynval.Map{
				{Key: "output_file", Value: DefaultOutputFile},
				{Key: "delete_file_on_restart", Value: true},
			}},
		}},
		{Key: "Scanner", Value: dynval.Map{
			{Key: "use_scanner", Value: DefaultScanner},
			{Key: "scanners", Value: dynval.Map{
				{Key: "random", Value: dynval.Map{
					{Key: "plugin", Value: "random"},
					{Key: "like", Value: "LogLike"},
					{Key: "points", Value: 1000},
				}},
				{Key: "grid", Value: dynval.Map{
					{Key: "plugin", Value: "grid"},
					{Key: "like", Value: "LogLike"},
					{Key: "points_per_dim", Value: 10},
				}},
				{Key: "de", Value: dynval.Map{
					{Key: "plugin", Value: "de"},
					{Key: "like", Value: "LogLike"},
					{Key: "NP", Value: 50},
					{Key: "generations", Value: 100},
				}},
			}},
		}},
		{Key: "KeyValues", Value: dynval.Map{
			{Key: "default_output_path", Value: DefaultOutputPath},
			{Key: "likelihood", Value: dynval.Map{
				{Key: "model_invalid_for_lnlike_below", Value: -1e6},
			}},
		}},
	}
}

// Merge returns user with every key of defaults it lacks filled in,
// recursing into mappings present on both sides. User values always win.
// Neither argument is modified.
func Merge(user, defaults dynval.Map) dynval.Map {
	out := make(dynval.Map, len(user), len(user)+len(defaults))
	copy(out, user)
	for _, d := range defaults {
		key, ok := d.Key.(string)
		if !ok {
			continue
		}
		cur, present := out.Get(key)
		if !present {
			out.Set(key, dynval.CloneValue(d.Value))
			continue
		}
		um, uok := asMap(cur)
		dm, dok := asMap(d.Value)
		if uok && dok {
			out.Set(key, Merge(um, dm))
		}
	}
	return out
}

func asMap(v any) (dynval.Map, bool) {
	entries, ok := dynval.Entries(v)
	return dynval.Map(entries), ok
}

// Options carries the shorthand a caller can give instead of writing the
// Parameters and Priors sections out in full.
type Options struct {
	// Scanner overrides Scanner.use_scanner.
	Scanner string
	// ModelName defaults to the first model under Parameters, else "default".
	ModelName string
	// ArgNames are the parameter names of the objective.
	ArgNames []string
	// Bounds per argument: [lo, hi] for range priors, [mean, variance] for
	// gaussian and cauchy. Defaults to [0, 1] each.
	Bounds [][2]float64
	// PriorTypes per argument, default flat.
	PriorTypes []string
	// OutputPath replaces KeyValues.default_output_path. When empty a
	// "<scanner>_scan" directory is appended to it.
	OutputPath string
}

// ErrNoPriors is returned when nothing describes the parameter space.
var ErrNoPriors = errors.New("no prior settings found: pass parameter names and bounds, or give Priors (or Parameters with ranges) in the settings")

// Prepare merges user with the defaults and fills in use_scanner, the
// output path, Parameters and Priors from opts.
func Prepare(user dynval.Map, opts Options) (dynval.Map, error) {
	s := Merge(user, Defaults())

	scannerSec, err := section(s, "Scanner")
	if err != nil {
		return nil, err
	}
	if opts.Scanner != "" {
		scannerSec.Set("use_scanner", opts.Scanner)
		s.Set("Scanner", scannerSec)
	}
	scanner, _ := scannerSec.Get("use_scanner")

	kv, err := section(s, "KeyValues")
	if err != nil {
		return nil, err
	}
	if opts.OutputPath != "" {
		kv.Set("default_output_path", opts.OutputPath)
	} else {
		base, _ := kv.Get("default_output_path")
		kv.Set("default_output_path", path.Join(fmt.Sprint(base), fmt.Sprintf("%v_scan", scanner)))
	}
	s.Set("KeyValues", kv)

	params, hasParams := s.Get("Parameters")
	model := opts.ModelName
	if model == "" {
		model = DefaultModel
		if m, ok := asMap(params); ok && len(m.Keys()) > 0 {
			model = m.Keys()[0]
		}
	}

	if !hasParams {
		if len(opts.ArgNames) == 0 {
			return nil, ErrNoPriors
		}
		pars := make(dynval.Map, 0, len(opts.ArgNames))
		for _, n := range opts.ArgNames {
			pars = append(pars, dynval.Entry{Key: n, Value: nil})
		}
		s.Set("Parameters", dynval.Map{{Key: model, Value: pars}})
	}

	if _, hasPriors := s.Get("Priors"); !hasPriors && len(opts.ArgNames) > 0 {
		priors, err := buildPriors(model, opts)
		if err != nil {
			return nil, err
		}
		s.Set("Priors", priors)
	}
	return s, nil
}

func section(s dynval.Map, key string) (dynval.Map, error) {
	v, _ := s.Get(key)
	m, ok := asMap(v)
	if !ok {
		return nil, fmt.Errorf("settings /%s: expected a mapping, got %s", key, dynval.TypeName(v))
	}
	return m, nil
}

func buildPriors(model string, opts Options) (dynval.Map, error) {
	n := len(opts.ArgNames)
	bounds := opts.Bounds
	if bounds == nil {
		bounds = make([][2]float64, n)
		for i := range bounds {
			bounds[i] = [2]float64{0, 1}
		}
	}
	kinds := opts.PriorTypes
	if kinds == nil {
		kinds = make([]string, n)
		for i := range kinds {
			kinds[i] = "flat"
		}
	}
	if len(bounds) != n || len(kinds) != n {
		return nil, fmt.Errorf("got %d parameter names, %d bounds and %d prior types", n, len(bounds), len(kinds))
	}

	priors := make(dynval.Map, 0, n)
	for i, name := range opts.ArgNames {
		b, t := bounds[i], kinds[i]
		prior := dynval.Map{
			{Key: "prior_type", Value: t},
			{Key: "parameters", Value: []any{callback.ParamName(model, name)}},
		}
		switch t {
		case "gaussian", "cauchy":
			prior.Set("mean", []any{b[0]})
			prior.Set("cov", []any{b[1]})
		default:
			prior.Set("range", []any{b[0], b[1]})
		}
		priors = append(priors, dynval.Entry{Key: name + "_prior", Value: prior})
	}
	return priors, nil
}

// SetPath returns m with value stored under the nested keys, creating
// mappings on the way. Go maps met on the path are replaced by ordered
// copies. m itself is not modified.
func SetPath(m dynval.Map, value any, keys ...string) (dynval.Map, error) {
	if len(keys) == 0 {
		return m, nil
	}
	out := make(dynval.Map, len(m))
	copy(out, m)
	if len(keys) == 1 {
		out.Set(keys[0], value)
		return out, nil
	}
	var child dynval.Map
	if cur, ok := out.Get(keys[0]); ok && cur != nil {
		c, isMap := asMap(cur)
		if !isMap {
			return nil, fmt.Errorf("settings: cannot set %s under %s: it holds a %s", keys[len(keys)-1], keys[0], dynval.TypeName(cur))
		}
		child = c
	}
	child, err := SetPath(child, value, keys[1:]...)
	if err != nil {
		return nil, err
	}
	out.Set(keys[0], child)
	return out, nil
}

// ScannerName returns Scanner.use_scanner, or "" when unset.
func ScannerName(m dynval.Map) string {
	sc, _ := m.Get("Scanner")
	sm, ok := asMap(sc)
	if !ok {
		return ""
	}
	v, _ := sm.Get("use_scanner")
	name, _ := v.(string)
	return name
}
