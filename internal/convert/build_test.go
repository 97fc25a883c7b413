package convert

import (
	"errors"
	"testing"

	"github.com/scanbit/scanbit/internal/dynval"
	"github.com/scanbit/scanbit/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_NestedMirrorsInput(t *testing.T) {
	in := map[string]any{
		"a": map[string]any{
			"b": 1,
			"c": []float64{1.0, 2.0},
		},
	}
	root, err := Build(in)
	require.NoError(t, err)

	assert.Equal(t, []string{"a"}, root.Keys())
	b, ok := root.Lookup("/a/b")
	require.True(t, ok)
	assert.Equal(t, int64(1), b.Interface())
	c, ok := root.Lookup("/a/c")
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2}, c.Interface())
	assert.Equal(t, "a:\n  b: 1\n  c: [1.0, 2.0]\n", root.String())
}

func TestBuild_InjectedErrorsNamePath(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]any
		path string
	}{
		{"bad scalar under b", map[string]any{"a": map[string]any{"b": struct{}{}, "c": []float64{1}}}, "/a/b"},
		{"mixed list under c", map[string]any{"a": map[string]any{"b": 1, "c": []any{1.0, "x"}}}, "/a/c"},
		{"deep", map[string]any{"group": map[string]any{"subgroup": map[string]any{"key": make(chan int)}}}, "/group/subgroup/key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.in)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.path+":")
		})
	}
}

func TestBuild_NonStringKey(t *testing.T) {
	in := dynval.Map{
		{Key: "ok", Value: 1},
		{Key: "nested", Value: map[any]any{7: "seven"}},
	}
	_, err := Build(in)
	var ute *UnsupportedTypeError
	require.True(t, errors.As(err, &ute))
	assert.Equal(t, "key", ute.What)
	assert.Equal(t, "/nested/7", ute.Path)
	assert.Equal(t, "int", ute.Type)
}

func TestBuild_PreservesInsertionOrder(t *testing.T) {
	in := dynval.Map{{Key: "z", Value: 1}, {Key: "a", Value: 2}, {Key: "m", Value: dynval.Map{{Key: "y", Value: nil}, {Key: "b", Value: true}}}}
	root, err := Build(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a", "m"}, root.Keys())
	assert.Equal(t, []string{"y", "b"}, root.Get("m").Keys())
	assert.Equal(t, "z: 1\na: 2\nm:\n  y: ~\n  b: true\n", root.String())
}

func TestBuild_FailFastReturnsFirstError(t *testing.T) {
	in := dynval.Map{
		{Key: "first", Value: []any{1, "x"}},
		{Key: "second", Value: struct{}{}},
	}
	_, err := Build(in)
	var mte *MixedTypeError
	require.True(t, errors.As(err, &mte))
	assert.Equal(t, "/first", mte.Path)
}

func TestBuild_DuplicateKey(t *testing.T) {
	_, err := Build(dynval.Map{{Key: "a", Value: 1}, {Key: "a", Value: 2}})
	var dke *DuplicateKeyError
	require.True(t, errors.As(err, &dke))
	assert.Equal(t, "/a", dke.Path)
}

func TestBuild_RootMustBeMapping(t *testing.T) {
	_, err := Build([]any{1})
	var ute *UnsupportedTypeError
	require.True(t, errors.As(err, &ute))
	assert.Equal(t, "root", ute.What)
	assert.Equal(t, "/: unsupported root type []interface {}", err.Error())
}

func TestBuild_CyclicInputHitsDepthLimit(t *testing.T) {
	m := map[string]any{}
	m["self"] = m
	_, err := Build(m)
	var le *LimitError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "depth", le.Limit)
	assert.Equal(t, DefaultMaxDepth, le.Max)
}

func TestBuilder_SizeLimit(t *testing.T) {
	in := map[string]any{"a": 1, "b": 2, "c": 3}
	_, err := Builder{MaxNodes: 2}.Build(in)
	var le *LimitError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "size", le.Limit)
	assert.Equal(t, "/c", le.Path)
}

func TestBuild_EmptyMapping(t *testing.T) {
	root, err := Build(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, tree.KindMap, root.Kind())
	assert.Equal(t, 0, root.Len())
}

func TestBuild_FromDecodedYAML(t *testing.T) {
	in, err := dynval.DecodeYAML([]byte("Parameters:\n  test_model:\n    x: 20\n    y:\n      range: [0, 5]\n    z: ~\n"))
	require.NoError(t, err)
	root, err := Build(in)
	require.NoError(t, err)
	r, ok := root.Lookup("/Parameters/test_model/y/range")
	require.True(t, ok)
	assert.Equal(t, []int64{0, 5}, r.Interface())
	z, ok := root.Lookup("/Parameters/test_model/z")
	require.True(t, ok)
	assert.Equal(t, tree.KindNull, z.Kind())
}
