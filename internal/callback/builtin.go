package callback

import (
	"context"
	"fmt"
	"math"
	"sort"
)

var builtins = map[string]HostFunc{
	"gaussian":   gaussian,
	"rosenbrock": rosenbrock,
	"eggbox":     eggbox,
}

// Builtin returns a named test objective. All of them are log-likelihood
// style: larger is better.
func Builtin(name string) (HostFunc, bool) {
	fn, ok := builtins[name]
	return fn, ok
}

// BuiltinNames lists the available builtin objectives.
func BuiltinNames() []string {
	out := make([]string, 0, len(builtins))
	for k := range builtins {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ordered returns parameter values sorted by parameter name. A value that is
// not a number is an error naming the parameter.
func ordered(params map[string]any) ([]float64, error) {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]float64, 0, len(keys))
	for _, k := range keys {
		f, ok := ToFloat(params[k])
		if !ok {
			return nil, fmt.Errorf("parameter %s: not a number: %T", k, params[k])
		}
		out = append(out, f)
	}
	return out, nil
}

// gaussian is an isotropic unit gaussian centred on the origin.
func gaussian(_ context.Context, params map[string]any) (any, error) {
	xs, err := ordered(params)
	if err != nil {
		return nil, err
	}
	sum := 0.0
	for _, x := range xs {
		sum += x * x
	}
	return -0.5 * sum, nil
}

func rosenbrock(_ context.Context, params map[string]any) (any, error) {
	xs, err := ordered(params)
	if err != nil {
		return nil, err
	}
	sum := 0.0
	for i := 0; i+1 < len(xs); i++ {
		a := xs[i+1] - xs[i]*xs[i]
		b := 1 - xs[i]
		sum += 100*a*a + b*b
	}
	return -sum, nil
}

func eggbox(_ context.Context, params map[string]any) (any, error) {
	xs, err := ordered(params)
	if err != nil {
		return nil, err
	}
	prod := 1.0
	for _, x := range xs {
		prod *= math.Cos(x / 2)
	}
	return math.Pow(2+prod, 5), nil
}
