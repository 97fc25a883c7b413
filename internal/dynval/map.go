package dynval

import (
	"fmt"
	"reflect"
	"sort"
)

// Entry is one key/value pair of a Map. Keys are usually strings but any
// value a host can produce is representable so that bad keys can be
// reported rather than lost.
type Entry struct {
	Key   any
	Value any
}

// Map is an insertion-ordered mapping.
type Map []Entry

// Get returns the value stored under the string key k.
func (m Map) Get(k string) (any, bool) {
	for _, e := range m {
		if s, ok := e.Key.(string); ok && s == k {
			return e.Value, true
		}
	}
	return nil, false
}

// Set replaces the value under k in place, or appends a new entry.
func (m *Map) Set(k string, v any) {
	for i, e := range *m {
		if s, ok := e.Key.(string); ok && s == k {
			(*m)[i].Value = v
			return
		}
	}
	*m = append(*m, Entry{Key: k, Value: v})
}

// Keys returns the string keys in order. Non-string keys are skipped.
func (m Map) Keys() []string {
	out := make([]string, 0, len(m))
	for _, e := range m {
		if s, ok := e.Key.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Clone deep-copies nested Maps and []any; scalars are shared.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for i, e := range m {
		out[i] = Entry{Key: e.Key, Value: cloneValue(e.Value)}
	}
	return out
}

// CloneValue deep-copies v the way Clone does.
func CloneValue(v any) any { return cloneValue(v) }

func cloneValue(v any) any {
	switch t := v.(type) {
	case Map:
		return t.Clone()
	case map[string]any:
		c := make(map[string]any, len(t))
		for k, x := range t {
			c[k] = cloneValue(x)
		}
		return c
	case []any:
		c := make([]any, len(t))
		for i, x := range t {
			c[i] = cloneValue(x)
		}
		return c
	default:
		return v
	}
}

// Entries returns the key/value pairs of a mapping value. Ordered Maps keep
// their order; Go maps are returned sorted by key so diagnostics are
// deterministic. ok is false when v is not a mapping.
func Entries(v any) (entries []Entry, ok bool) {
	switch t := v.(type) {
	case Map:
		return t, true
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]Entry, 0, len(t))
		for _, k := range keys {
			out = append(out, Entry{Key: k, Value: t[k]})
		}
		return out, true
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Map {
		return nil, false
	}
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})
	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		out = append(out, Entry{Key: k.Interface(), Value: rv.MapIndex(k).Interface()})
	}
	return out, true
}

// Elements returns the items of a sequence value in order. ok is false when
// v is not a sequence.
func Elements(v any) (items []any, ok bool) {
	if t, isAny := v.([]any); isAny {
		return t, true
	}
	if Classify(v) != KindSequence {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
