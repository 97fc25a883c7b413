package dynval

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Kind is the closed set of shapes a host value can take.
type Kind int

const (
	KindUnsupported Kind = iota
	KindNull
	KindBool
	KindInt
	KindFloat
	KindString
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unsupported"
	}
}

// Classify reports the Kind of v. Named types are classified by their
// underlying kind, so `type Level int` is an int. Byte slices are treated
// as opaque binary data and are unsupported.
func Classify(v any) Kind {
	switch t := v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInt
	case float32, float64:
		return KindFloat
	case json.Number:
		if isIntegerLiteral(string(t)) {
			return KindInt
		}
		return KindFloat
	case string:
		return KindString
	case []byte:
		return KindUnsupported
	case []any:
		return KindSequence
	case Map, map[string]any:
		return KindMapping
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindInt
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.String:
		return KindString
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return KindUnsupported
		}
		return KindSequence
	case reflect.Map:
		return KindMapping
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return KindNull
		}
	}
	return KindUnsupported
}

// IsAllowedScalar reports whether v is null, a boolean, an integer, a
// floating-point number or a string.
func IsAllowedScalar(v any) bool {
	switch Classify(v) {
	case KindNull, KindBool, KindInt, KindFloat, KindString:
		return true
	default:
		return false
	}
}

// TypeName is the observed runtime type of v, used in diagnostics.
func TypeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// SameType reports whether a and b share exactly one runtime type.
func SameType(a, b any) bool {
	return reflect.TypeOf(a) == reflect.TypeOf(b)
}

func isIntegerLiteral(s string) bool {
	return s != "" && !strings.ContainsAny(s, ".eE") && !strings.EqualFold(s, "nan") && !strings.Contains(strings.ToLower(s), "inf")
}
