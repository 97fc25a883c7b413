package dynval

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// maxDecodeDepth bounds alias expansion in YAML documents.
const maxDecodeDepth = 512

// LoadFile reads a settings document from disk. Files ending in .json are
// decoded as JSON, .hcl as HCL, everything else as YAML.
func LoadFile(path string) (Map, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return DecodeJSON(b)
	case ".hcl":
		return DecodeHCL(b, path)
	}
	return DecodeYAML(b)
}

// DecodeYAML decodes a YAML document whose root is a mapping. Mapping order
// is preserved; keys keep the type YAML resolves them to.
func DecodeYAML(b []byte) (Map, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		return Map{}, nil
	}
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return Map{}, nil
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("document root must be a mapping, got %s", yamlKindName(root.Kind))
	}
	v, err := fromYAML(root, 0)
	if err != nil {
		return nil, err
	}
	return v.(Map), nil
}

func fromYAML(n *yaml.Node, depth int) (any, error) {
	if depth > maxDecodeDepth {
		return nil, fmt.Errorf("line %d: document nested deeper than %d levels", n.Line, maxDecodeDepth)
	}
	switch n.Kind {
	case yaml.MappingNode:
		out := make(Map, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, err := fromYAML(n.Content[i], depth+1)
			if err != nil {
				return nil, err
			}
			v, err := fromYAML(n.Content[i+1], depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, Entry{Key: k, Value: v})
		}
		return out, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromYAML(c, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.AliasNode:
		return fromYAML(n.Alias, depth+1)
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("line %d: unexpected %s", n.Line, yamlKindName(n.Kind))
	}
}

func yamlKindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "empty node"
	}
}

// DecodeJSON decodes a JSON object preserving member order. Numbers are
// kept as json.Number so integers and floats stay distinguishable.
func DecodeJSON(b []byte) (Map, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	v, err := readJSON(dec)
	if err != nil {
		return nil, err
	}
	m, ok := v.(Map)
	if !ok {
		return nil, fmt.Errorf("document root must be an object, got %s", TypeName(v))
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level object")
	}
	return m, nil
}

func readJSON(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	d, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch d {
	case '{':
		out := Map{}
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			v, err := readJSON(dec)
			if err != nil {
				return nil, err
			}
			out = append(out, Entry{Key: kt, Value: v})
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return out, nil
	case '[':
		out := []any{}
		for dec.More() {
			v, err := readJSON(dec)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return out, nil
	}
	return nil, fmt.Errorf("unexpected delimiter %q", d)
}
