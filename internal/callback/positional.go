package callback

import (
	"context"
	"fmt"
)

// ParamName joins a model and parameter name the way engines key points.
func ParamName(model, name string) string {
	return model + "::" + name
}

// Positional wraps a function of ordered arguments. Each argument is read
// from the parameter map under model::name, in the order of names.
func Positional(model string, names []string, fn func(ctx context.Context, args []float64) (any, error)) HostFunc {
	keys := make([]string, len(names))
	for i, n := range names {
		keys[i] = ParamName(model, n)
	}
	return func(ctx context.Context, params map[string]any) (any, error) {
		args := make([]float64, len(keys))
		for i, k := range keys {
			v, ok := params[k]
			if !ok {
				return nil, fmt.Errorf("parameter %q missing from point", k)
			}
			f, ok := ToFloat(v)
			if !ok {
				return nil, fmt.Errorf("parameter %q is %T, not a number", k, v)
			}
			args[i] = f
		}
		return fn(ctx, args)
	}
}
