package tree

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	tagNull  = "!!null"
	tagBool  = "!!bool"
	tagInt   = "!!int"
	tagFloat = "!!float"
	tagStr   = "!!str"

	// maxLoadDepth bounds alias chains when loading documents.
	maxLoadDepth = 512
)

// YAML converts n into a yaml.v3 node. Arrays use flow style.
func (n *Node) YAML() *yaml.Node {
	switch n.Kind() {
	case KindBool:
		v := "false"
		if n.b {
			v = "true"
		}
		return scalar(tagBool, v)
	case KindInt:
		return scalar(tagInt, strconv.FormatInt(n.i, 10))
	case KindFloat:
		return scalar(tagFloat, formatFloat(n.f))
	case KindString:
		return scalar(tagStr, n.s)
	case KindIntArray:
		seq := flowSeq(len(n.ints))
		for _, v := range n.ints {
			seq.Content = append(seq.Content, scalar(tagInt, strconv.FormatInt(v, 10)))
		}
		return seq
	case KindFloatArray:
		seq := flowSeq(len(n.floats))
		for _, v := range n.floats {
			seq.Content = append(seq.Content, scalar(tagFloat, formatFloat(v)))
		}
		return seq
	case KindStringArray:
		seq := flowSeq(len(n.strs))
		for _, v := range n.strs {
			seq.Content = append(seq.Content, scalar(tagStr, v))
		}
		return seq
	case KindMap:
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, e := range n.entries {
			m.Content = append(m.Content, scalar(tagStr, e.Key), e.Value.YAML())
		}
		return m
	}
	return scalar(tagNull, "~")
}

// MarshalYAML lets a Node be embedded in values passed to yaml.Marshal.
func (n *Node) MarshalYAML() (any, error) {
	return n.YAML(), nil
}

// Encode writes n as a YAML document to w.
func (n *Node) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(n.YAML()); err != nil {
		return err
	}
	return enc.Close()
}

// String renders n as YAML.
func (n *Node) String() string {
	var buf bytes.Buffer
	if err := n.Encode(&buf); err != nil {
		return fmt.Sprintf("<tree: %v>", err)
	}
	return buf.String()
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func flowSeq(capacity int) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle, Content: make([]*yaml.Node, 0, capacity)}
}

// formatFloat renders f so that it reads back as a float, never as an int.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// LoadFile reads a YAML configuration tree from path.
func LoadFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	root, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

// Load decodes a YAML document into a tree. The document root must be a
// mapping; an empty document loads as an empty map.
func Load(r io.Reader) (*Node, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return NewMap(), nil
		}
		return nil, err
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: document root must be a mapping", root.Line)
	}
	return fromYAML(root, "", 0)
}

func fromYAML(y *yaml.Node, path string, depth int) (*Node, error) {
	if depth > maxLoadDepth {
		return nil, fmt.Errorf("%s: nested deeper than %d levels", pathOrRoot(path), maxLoadDepth)
	}
	switch y.Kind {
	case yaml.AliasNode:
		return fromYAML(y.Alias, path, depth+1)
	case yaml.MappingNode:
		m := NewMap()
		for i := 0; i+1 < len(y.Content); i += 2 {
			k := y.Content[i]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: %s: map keys must be scalars", k.Line, pathOrRoot(path))
			}
			child, err := fromYAML(y.Content[i+1], path+"/"+k.Value, depth+1)
			if err != nil {
				return nil, err
			}
			m.Set(k.Value, child)
		}
		return m, nil
	case yaml.SequenceNode:
		return seqFromYAML(y, path)
	case yaml.ScalarNode:
		return scalarFromYAML(y, path)
	}
	return nil, fmt.Errorf("line %d: %s: unexpected node", y.Line, pathOrRoot(path))
}

func scalarFromYAML(y *yaml.Node, path string) (*Node, error) {
	switch y.ShortTag() {
	case tagNull:
		return Null(), nil
	case tagBool:
		var b bool
		if err := y.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", y.Line, pathOrRoot(path), err)
		}
		return Bool(b), nil
	case tagInt:
		var i int64
		if err := y.Decode(&i); err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", y.Line, pathOrRoot(path), err)
		}
		return Int(i), nil
	case tagFloat:
		var f float64
		if err := y.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", y.Line, pathOrRoot(path), err)
		}
		return Float(f), nil
	}
	return String(y.Value), nil
}

// seqFromYAML loads a sequence of scalars. Ints mixed with floats widen to
// a float array; any other mix is rejected.
func seqFromYAML(y *yaml.Node, path string) (*Node, error) {
	var ints []int64
	var floats []float64
	var strs []string
	for idx, item := range y.Content {
		if item.Kind == yaml.AliasNode {
			item = item.Alias
		}
		if item.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: %s[%d]: arrays may only hold scalars", item.Line, pathOrRoot(path), idx)
		}
		leaf, err := scalarFromYAML(item, path)
		if err != nil {
			return nil, err
		}
		switch leaf.Kind() {
		case KindInt:
			ints = append(ints, leaf.i)
			floats = append(floats, float64(leaf.i))
		case KindFloat:
			floats = append(floats, leaf.f)
		case KindString:
			strs = append(strs, leaf.s)
		default:
			return nil, fmt.Errorf("line %d: %s[%d]: %s elements are not supported in arrays", item.Line, pathOrRoot(path), idx, leaf.Kind())
		}
	}
	n := len(y.Content)
	switch {
	case n == 0 || len(strs) == n:
		return Strings(strs), nil
	case len(ints) == n:
		return Ints(ints), nil
	case len(floats) == n:
		return Floats(floats), nil
	}
	return nil, fmt.Errorf("line %d: %s: arrays must not mix strings and numbers", y.Line, pathOrRoot(path))
}

func pathOrRoot(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
