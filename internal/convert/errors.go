package convert

import "fmt"

// UnsupportedTypeError reports a value, array element or mapping key whose
// runtime type is outside the accepted grammar.
type UnsupportedTypeError struct {
	Path string
	// What names the offending position: "value", "key", "array element"
	// or "root".
	What string
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("%s: unsupported %s type %s", displayPath(e.Path), e.What, e.Type)
}

// MixedTypeError reports a sequence whose elements do not share one type.
type MixedTypeError struct {
	Path  string
	Index int
	Want  string
	Got   string
}

func (e *MixedTypeError) Error() string {
	return fmt.Sprintf("%s: mixed types in sequence: prior elements were %s, element %d is %s", displayPath(e.Path), e.Want, e.Index, e.Got)
}

// CastError reports a value of an accepted kind that does not fit the
// target representation, such as an integer above math.MaxInt64.
type CastError struct {
	Path string
	Type string
	Err  error
}

func (e *CastError) Error() string {
	return fmt.Sprintf("%s: cannot convert %s: %v", displayPath(e.Path), e.Type, e.Err)
}

func (e *CastError) Unwrap() error { return e.Err }

// DuplicateKeyError reports a key that appears twice in one mapping.
type DuplicateKeyError struct {
	Path string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s: duplicate key", displayPath(e.Path))
}

// LimitError reports input that exceeds the depth or size bound, which is
// how self-referencing host structures are caught.
type LimitError struct {
	Path  string
	Limit string
	Max   int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s: %s limit of %d exceeded (is the input cyclic?)", displayPath(e.Path), e.Limit, e.Max)
}

func displayPath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
