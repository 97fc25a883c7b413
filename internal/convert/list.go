package convert

import (
	"fmt"
	"reflect"

	"github.com/scanbit/scanbit/internal/dynval"
	"github.com/scanbit/scanbit/internal/tree"
)

// ToArray converts a homogeneous sequence of ints, floats or strings into
// an array node. Every element must have the runtime type of the first
// one. An empty sequence becomes an empty string array, which renders as
// [] and reads as an empty list of any element kind.
func ToArray(v any, path string) (*tree.Node, error) {
	items, ok := dynval.Elements(v)
	if !ok {
		return nil, &UnsupportedTypeError{Path: path, What: "value", Type: dynval.TypeName(v)}
	}
	if len(items) == 0 {
		return tree.Strings(nil), nil
	}

	first := items[0]
	kind := dynval.Classify(first)
	for i, item := range items[1:] {
		if !dynval.SameType(first, item) || dynval.Classify(item) != kind {
			return nil, &MixedTypeError{
				Path:  path,
				Index: i + 1,
				Want:  elemTypeName(first),
				Got:   elemTypeName(item),
			}
		}
	}

	switch kind {
	case dynval.KindInt:
		out := make([]int64, len(items))
		for i, item := range items {
			n, err := toInt64(item)
			if err != nil {
				return nil, &CastError{Path: indexPath(path, i), Type: dynval.TypeName(item), Err: err}
			}
			out[i] = n
		}
		return tree.Ints(out), nil
	case dynval.KindFloat:
		out := make([]float64, len(items))
		for i, item := range items {
			f, err := toFloat64(item)
			if err != nil {
				return nil, &CastError{Path: indexPath(path, i), Type: dynval.TypeName(item), Err: err}
			}
			out[i] = f
		}
		return tree.Floats(out), nil
	case dynval.KindString:
		out := make([]string, len(items))
		for i, item := range items {
			out[i] = reflect.ValueOf(item).String()
		}
		return tree.Strings(out), nil
	}
	return nil, &UnsupportedTypeError{Path: path, What: "array element", Type: dynval.TypeName(first)}
}

// elemTypeName distinguishes json.Number ints from floats, which share a
// Go type.
func elemTypeName(v any) string {
	name := dynval.TypeName(v)
	switch k := dynval.Classify(v); k {
	case dynval.KindInt, dynval.KindFloat:
		if name == "json.Number" {
			return name + "(" + k.String() + ")"
		}
	}
	return name
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
