package dynval

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// DecodeHCL decodes an HCL settings document made of top-level attributes
// such as
//
//	Parameters = { demo = { x = { range = [0, 1] } } }
//
// Object constructors keep their source order. Number literals written with
// a fraction or exponent decode as float64, other integral numbers as int64.
func DecodeHCL(b []byte, filename string) (Map, error) {
	file, diags := hclparse.NewParser().ParseHCL(b, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	ordered := make([]*hcl.Attribute, 0, len(attrs))
	for _, a := range attrs {
		ordered = append(ordered, a)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Range.Start.Byte < ordered[j].Range.Start.Byte
	})

	d := hclDecoder{src: b}
	out := make(Map, 0, len(ordered))
	for _, a := range ordered {
		v, err := d.expr(a.Expr)
		if err != nil {
			return nil, fmt.Errorf("in attribute '%s': %w", a.Name, err)
		}
		out = append(out, Entry{Key: a.Name, Value: v})
	}
	return out, nil
}

type hclDecoder struct {
	src []byte
}

func (d hclDecoder) expr(e hcl.Expression) (any, error) {
	switch t := e.(type) {
	case *hclsyntax.ObjectConsExpr:
		out := make(Map, 0, len(t.Items))
		for _, item := range t.Items {
			kv, diags := item.KeyExpr.Value(nil)
			if diags.HasErrors() {
				return nil, diags
			}
			if kv.IsNull() || kv.Type() != cty.String {
				return nil, fmt.Errorf("%s: object key must be a string", item.KeyExpr.Range())
			}
			v, err := d.expr(item.ValueExpr)
			if err != nil {
				return nil, fmt.Errorf("in key '%s': %w", kv.AsString(), err)
			}
			out = append(out, Entry{Key: kv.AsString(), Value: v})
		}
		return out, nil
	case *hclsyntax.TupleConsExpr:
		out := make([]any, 0, len(t.Exprs))
		for _, x := range t.Exprs {
			v, err := d.expr(x)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}

	val, diags := e.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	return d.value(val, d.text(e.Range()))
}

func (d hclDecoder) text(r hcl.Range) string {
	if r.Start.Byte < 0 || r.End.Byte > len(d.src) || r.Start.Byte > r.End.Byte {
		return ""
	}
	return string(d.src[r.Start.Byte:r.End.Byte])
}

// value converts an evaluated cty value. text is the source of the
// expression and decides between int64 and float64 for numbers.
func (d hclDecoder) value(v cty.Value, text string) (any, error) {
	if !v.IsKnown() || v.IsNull() {
		return nil, nil
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() && !strings.ContainsAny(text, ".eE") {
			if i, acc := bf.Int64(); acc == big.Exact {
				return i, nil
			}
		}
		f, _ := bf.Float64()
		return f, nil
	case ty.IsObjectType() || ty.IsMapType():
		out := Map{}
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			x, err := d.value(ev, "")
			if err != nil {
				return nil, err
			}
			out = append(out, Entry{Key: k.AsString(), Value: x})
		}
		return out, nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		var out []any
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			x, err := d.value(ev, "")
			if err != nil {
				return nil, err
			}
			out = append(out, x)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported value of type %s", ty.FriendlyName())
}
