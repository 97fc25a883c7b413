package callback

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// Params is the parameter map of one point, keyed by "model::parameter".
type Params map[string]float64

// HostFunc is a scoring callable supplied by the host. It receives the
// parameters as a generic mapping and may return any value; the adapter
// decides whether the value is a number.
type HostFunc func(ctx context.Context, params map[string]any) (any, error)

// Objective is the fixed signature scan engines call for every point.
type Objective func(ctx context.Context, params Params) (float64, error)

// Adapter binds one HostFunc to the Objective signature.
type Adapter struct {
	mu        sync.RWMutex
	fn        HostFunc
	call      sync.Mutex
	reentrant bool
	calls     atomic.Int64
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithReentrantHost lets concurrent trampoline calls enter the host
// callable in parallel. Only use it when the callable is safe for
// concurrent use.
func WithReentrantHost() Option {
	return func(a *Adapter) { a.reentrant = true }
}

// NewAdapter returns an Adapter with fn registered. fn may be nil.
func NewAdapter(fn HostFunc, opts ...Option) *Adapter {
	a := &Adapter{fn: fn}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Register stores fn, replacing any previous callable. Calls already in
// flight finish with the callable they started with; calls that start
// afterwards use fn.
func (a *Adapter) Register(fn HostFunc) {
	a.mu.Lock()
	a.fn = fn
	a.mu.Unlock()
}

// Registered reports whether a callable is set.
func (a *Adapter) Registered() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.fn != nil
}

// Calls is the number of trampoline invocations that reached the host.
func (a *Adapter) Calls() int64 { return a.calls.Load() }

// Objective returns the trampoline as an Objective value.
func (a *Adapter) Objective() Objective { return a.Trampoline }

// Trampoline hands params to the registered callable as a map[string]any
// and converts its result to float64.
func (a *Adapter) Trampoline(ctx context.Context, params Params) (float64, error) {
	a.mu.RLock()
	fn := a.fn
	a.mu.RUnlock()
	if fn == nil {
		return 0, &CallbackError{Reason: ReasonNotRegistered, Err: ErrNotRegistered}
	}

	host := make(map[string]any, len(params))
	for k, v := range params {
		host[k] = v
	}

	if !a.reentrant {
		a.call.Lock()
		defer a.call.Unlock()
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	a.calls.Add(1)

	res, err := invoke(ctx, fn, host)
	if err != nil {
		return 0, &CallbackError{Reason: ReasonHostFailure, Err: err}
	}
	f, ok := ToFloat(res)
	if !ok {
		return 0, &CallbackError{Reason: ReasonNonNumeric, Result: res}
	}
	return f, nil
}

// invoke calls fn and turns a panic inside it into an error.
func invoke(ctx context.Context, fn HostFunc, params map[string]any) (res any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
	}()
	return fn(ctx, params)
}
