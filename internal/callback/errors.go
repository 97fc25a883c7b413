package callback

import (
	"errors"
	"fmt"
)

// ErrNotRegistered is wrapped by the CallbackError returned when a
// trampoline runs before any callable was registered.
var ErrNotRegistered = errors.New("no scoring callable registered")

// Reason classifies a CallbackError.
type Reason int

const (
	ReasonNotRegistered Reason = iota + 1
	ReasonHostFailure
	ReasonNonNumeric
)

func (r Reason) String() string {
	switch r {
	case ReasonNotRegistered:
		return "not registered"
	case ReasonHostFailure:
		return "host failure"
	case ReasonNonNumeric:
		return "non-numeric result"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// CallbackError reports a missing callable, a failure raised inside the
// host callable, or a result that is not a number.
type CallbackError struct {
	Reason Reason
	// Result is the offending value for ReasonNonNumeric.
	Result any
	Err    error
}

func (e *CallbackError) Error() string {
	switch e.Reason {
	case ReasonNotRegistered:
		return "callback: " + ErrNotRegistered.Error()
	case ReasonNonNumeric:
		return fmt.Sprintf("callback: result %v (%T) is not a number", e.Result, e.Result)
	default:
		return fmt.Sprintf("callback: scoring callable failed: %v", e.Err)
	}
}

func (e *CallbackError) Unwrap() error { return e.Err }
