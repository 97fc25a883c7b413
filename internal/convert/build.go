package convert

import (
	"fmt"
	"reflect"

	"github.com/scanbit/scanbit/internal/dynval"
	"github.com/scanbit/scanbit/internal/tree"
)

const (
	DefaultMaxDepth = 64
	DefaultMaxNodes = 1_000_000
)

// Builder converts nested mappings into configuration trees. The zero
// value uses DefaultMaxDepth and DefaultMaxNodes. A Builder holds no state
// between calls and may be shared.
type Builder struct {
	MaxDepth int
	MaxNodes int
}

// Build converts input with the default limits.
func Build(input any) (*tree.Node, error) {
	return Builder{}.Build(input)
}

// Build converts a mapping into the root map node of a tree.
func (b Builder) Build(input any) (*tree.Node, error) {
	if dynval.Classify(input) != dynval.KindMapping {
		return nil, &UnsupportedTypeError{Path: "", What: "root", Type: dynval.TypeName(input)}
	}
	w := &walker{maxDepth: b.MaxDepth, maxNodes: b.MaxNodes}
	if w.maxDepth <= 0 {
		w.maxDepth = DefaultMaxDepth
	}
	if w.maxNodes <= 0 {
		w.maxNodes = DefaultMaxNodes
	}
	return w.mapping(input, "", 0)
}

type walker struct {
	maxDepth int
	maxNodes int
	nodes    int
}

func (w *walker) mapping(v any, path string, depth int) (*tree.Node, error) {
	if depth >= w.maxDepth {
		return nil, &LimitError{Path: path, Limit: "depth", Max: w.maxDepth}
	}
	entries, _ := dynval.Entries(v)
	out := tree.NewMap()
	for _, e := range entries {
		if dynval.Classify(e.Key) != dynval.KindString {
			return nil, &UnsupportedTypeError{
				Path: fmt.Sprintf("%s/%v", path, e.Key),
				What: "key",
				Type: dynval.TypeName(e.Key),
			}
		}
		key := reflect.ValueOf(e.Key).String()
		childPath := path + "/" + key
		if out.Has(key) {
			return nil, &DuplicateKeyError{Path: childPath}
		}
		w.nodes++
		if w.nodes > w.maxNodes {
			return nil, &LimitError{Path: childPath, Limit: "size", Max: w.maxNodes}
		}
		child, err := w.value(e.Value, childPath, depth)
		if err != nil {
			return nil, err
		}
		out.Set(key, child)
	}
	return out, nil
}

func (w *walker) value(v any, path string, depth int) (*tree.Node, error) {
	if dynval.IsAllowedScalar(v) {
		return ToLeaf(v, path)
	}
	switch dynval.Classify(v) {
	case dynval.KindSequence:
		return ToArray(v, path)
	case dynval.KindMapping:
		return w.mapping(v, path, depth+1)
	}
	return nil, &UnsupportedTypeError{Path: path, What: "value", Type: dynval.TypeName(v)}
}
