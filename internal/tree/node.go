package tree

import (
	"fmt"
	"strings"

	"github.com/scanbit/scanbit/internal/dynval"
)

// Kind identifies the variant held by a Node.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindIntArray
	KindFloatArray
	KindStringArray
	KindMap
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
	case KindIntArray:
		return "int array"
	case KindFloatArray:
		return "float array"
	case KindStringArray:
		return "string array"
	case KindMap:
		return "map"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Node is one node of a configuration tree. The zero value is a null node.
type Node struct {
	kind    Kind
	b       bool
	i       int64
	f       float64
	s       string
	ints    []int64
	floats  []float64
	strs    []string
	entries []Entry
}

// Entry is a key of a map node and the node stored under it.
type Entry struct {
	Key   string
	Value *Node
}

func Null() *Node              { return &Node{kind: KindNull} }
func Bool(v bool) *Node        { return &Node{kind: KindBool, b: v} }
func Int(v int64) *Node        { return &Node{kind: KindInt, i: v} }
func Float(v float64) *Node    { return &Node{kind: KindFloat, f: v} }
func String(v string) *Node    { return &Node{kind: KindString, s: v} }
func NewMap() *Node            { return &Node{kind: KindMap} }
func Ints(v []int64) *Node     { return &Node{kind: KindIntArray, ints: append([]int64{}, v...)} }
func Floats(v []float64) *Node { return &Node{kind: KindFloatArray, floats: append([]float64{}, v...)} }
func Strings(v []string) *Node { return &Node{kind: KindStringArray, strs: append([]string{}, v...)} }

// Kind returns the variant held by n. A nil node is null.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindNull
	}
	return n.kind
}

// IsArray reports whether n is one of the array variants.
func (n *Node) IsArray() bool {
	switch n.Kind() {
	case KindIntArray, KindFloatArray, KindStringArray:
		return true
	}
	return false
}

// AsBool returns the value of a bool node. ok is false for any other kind.
func (n *Node) AsBool() (v bool, ok bool) {
	if n.Kind() != KindBool {
		return false, false
	}
	return n.b, true
}

func (n *Node) AsInt() (int64, bool) {
	if n.Kind() != KindInt {
		return 0, false
	}
	return n.i, true
}

func (n *Node) AsFloat() (float64, bool) {
	if n.Kind() != KindFloat {
		return 0, false
	}
	return n.f, true
}

func (n *Node) AsString() (string, bool) {
	if n.Kind() != KindString {
		return "", false
	}
	return n.s, true
}

func (n *Node) AsInts() ([]int64, bool) {
	if n.Kind() != KindIntArray {
		return nil, false
	}
	return n.ints, true
}

func (n *Node) AsFloats() ([]float64, bool) {
	if n.Kind() != KindFloatArray {
		return nil, false
	}
	return n.floats, true
}

func (n *Node) AsStrings() ([]string, bool) {
	if n.Kind() != KindStringArray {
		return nil, false
	}
	return n.strs, true
}

// Number returns an int or float scalar as float64.
func (n *Node) Number() (float64, bool) {
	switch n.Kind() {
	case KindInt:
		return float64(n.i), true
	case KindFloat:
		return n.f, true
	}
	return 0, false
}

// Numbers returns an int or float array as float64 values. An empty array
// of any element kind yields an empty slice.
func (n *Node) Numbers() ([]float64, bool) {
	switch n.Kind() {
	case KindIntArray:
		out := make([]float64, len(n.ints))
		for i, v := range n.ints {
			out[i] = float64(v)
		}
		return out, true
	case KindFloatArray:
		return append([]float64{}, n.floats...), true
	case KindStringArray:
		if len(n.strs) == 0 {
			return []float64{}, true
		}
	}
	return nil, false
}

// Len is the number of array elements or map entries.
func (n *Node) Len() int {
	switch n.Kind() {
	case KindIntArray:
		return len(n.ints)
	case KindFloatArray:
		return len(n.floats)
	case KindStringArray:
		return len(n.strs)
	case KindMap:
		return len(n.entries)
	}
	return 0
}

// Entries returns the entries of a map node in insertion order.
func (n *Node) Entries() []Entry {
	if n.Kind() != KindMap {
		return nil
	}
	return n.entries
}

// Keys returns the keys of a map node in insertion order.
func (n *Node) Keys() []string {
	entries := n.Entries()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Key
	}
	return out
}

// Get returns the child stored under key, or nil.
func (n *Node) Get(key string) *Node {
	for _, e := range n.Entries() {
		if e.Key == key {
			return e.Value
		}
	}
	return nil
}

// Has reports whether a map node has key.
func (n *Node) Has(key string) bool {
	for _, e := range n.Entries() {
		if e.Key == key {
			return true
		}
	}
	return false
}

// Set stores child under key. An existing key keeps its position.
// Set panics when n is not a map node.
func (n *Node) Set(key string, child *Node) {
	if n.Kind() != KindMap {
		panic("tree: Set on " + n.Kind().String() + " node")
	}
	if child == nil {
		child = Null()
	}
	for i, e := range n.entries {
		if e.Key == key {
			n.entries[i].Value = child
			return
		}
	}
	n.entries = append(n.entries, Entry{Key: key, Value: child})
}

// Lookup resolves a slash separated path such as "/Scanner/use_scanner".
func (n *Node) Lookup(path string) (*Node, bool) {
	cur := n
	for _, part := range strings.Split(strings.Trim(path, "/"), "/") {
		if part == "" {
			continue
		}
		if !cur.Has(part) {
			return nil, false
		}
		cur = cur.Get(part)
	}
	return cur, true
}

// Interface converts n back into plain Go values: nil, bool, int64,
// float64, string, []int64, []float64, []string or dynval.Map.
func (n *Node) Interface() any {
	switch n.Kind() {
	case KindBool:
		return n.b
	case KindInt:
		return n.i
	case KindFloat:
		return n.f
	case KindString:
		return n.s
	case KindIntArray:
		return append([]int64{}, n.ints...)
	case KindFloatArray:
		return append([]float64{}, n.floats...)
	case KindStringArray:
		return append([]string{}, n.strs...)
	case KindMap:
		out := make(dynval.Map, 0, len(n.entries))
		for _, e := range n.entries {
			out = append(out, dynval.Entry{Key: e.Key, Value: e.Value.Interface()})
		}
		return out
	}
	return nil
}
