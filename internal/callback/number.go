package callback

import (
	"encoding/json"
	"reflect"

	"github.com/scanbit/scanbit/internal/dynval"
)

// ToFloat interprets a host result as a float64. Integers, floats,
// json.Number and booleans (as 1 and 0) are numbers; strings, nil and
// containers are not.
func ToFloat(v any) (float64, bool) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch dynval.Classify(v) {
	case dynval.KindFloat:
		return rv.Float(), true
	case dynval.KindInt:
		switch rv.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return float64(rv.Uint()), true
		}
		return float64(rv.Int()), true
	case dynval.KindBool:
		if rv.Bool() {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}
