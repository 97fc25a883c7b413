package convert

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/scanbit/scanbit/internal/dynval"
	"github.com/scanbit/scanbit/internal/tree"
)

// ToLeaf converts a single permitted scalar into a tree leaf. path locates
// the value for diagnostics.
func ToLeaf(v any, path string) (*tree.Node, error) {
	switch dynval.Classify(v) {
	case dynval.KindNull:
		return tree.Null(), nil
	case dynval.KindBool:
		return tree.Bool(reflect.ValueOf(v).Bool()), nil
	case dynval.KindInt:
		i, err := toInt64(v)
		if err != nil {
			return nil, &CastError{Path: path, Type: dynval.TypeName(v), Err: err}
		}
		return tree.Int(i), nil
	case dynval.KindFloat:
		f, err := toFloat64(v)
		if err != nil {
			return nil, &CastError{Path: path, Type: dynval.TypeName(v), Err: err}
		}
		return tree.Float(f), nil
	case dynval.KindString:
		return tree.String(reflect.ValueOf(v).String()), nil
	}
	return nil, &UnsupportedTypeError{Path: path, What: "value", Type: dynval.TypeName(v)}
}

func toInt64(v any) (int64, error) {
	if n, ok := v.(json.Number); ok {
		return strconv.ParseInt(string(n), 10, 64)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, fmt.Errorf("%d overflows int64", u)
		}
		return int64(u), nil
	}
	return 0, fmt.Errorf("%s is not an integer", dynval.TypeName(v))
}

func toFloat64(v any) (float64, error) {
	if n, ok := v.(json.Number); ok {
		return strconv.ParseFloat(string(n), 64)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	}
	return 0, fmt.Errorf("%s is not a float", dynval.TypeName(v))
}
