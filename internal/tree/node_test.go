package tree

import (
	"testing"

	"github.com/scanbit/scanbit/internal/dynval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_SetKeepsPosition(t *testing.T) {
	m := NewMap()
	m.Set("b", Int(1))
	m.Set("a", Int(2))
	m.Set("b", String("x"))

	assert.Equal(t, []string{"b", "a"}, m.Keys())
	s, ok := m.Get("b").AsString()
	require.True(t, ok)
	assert.Equal(t, "x", s)
	assert.Nil(t, m.Get("missing"))
	assert.Equal(t, 2, m.Len())
}

func TestSet_NilChildIsNull(t *testing.T) {
	m := NewMap()
	m.Set("k", nil)
	assert.True(t, m.Has("k"))
	assert.Equal(t, KindNull, m.Get("k").Kind())
}

func TestSet_PanicsOnScalar(t *testing.T) {
	assert.Panics(t, func() { Int(1).Set("k", Null()) })
}

func TestAccessors_WrongKind(t *testing.T) {
	n := String("s")
	_, ok := n.AsInt()
	assert.False(t, ok)
	_, ok = n.AsBool()
	assert.False(t, ok)

	var missing *Node
	assert.Equal(t, KindNull, missing.Kind())
	_, ok = missing.AsString()
	assert.False(t, ok)
	assert.Nil(t, missing.Get("x"))
}

func TestNumbers(t *testing.T) {
	v, ok := Ints([]int64{1, 2}).Numbers()
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2}, v)

	v, ok = Strings(nil).Numbers()
	require.True(t, ok)
	assert.Empty(t, v)

	_, ok = Strings([]string{"a"}).Numbers()
	assert.False(t, ok)

	f, ok := Int(3).Number()
	require.True(t, ok)
	assert.Equal(t, 3.0, f)
}

func TestLookup(t *testing.T) {
	inner := NewMap()
	inner.Set("use_scanner", String("random"))
	root := NewMap()
	root.Set("Scanner", inner)

	n, ok := root.Lookup("/Scanner/use_scanner")
	require.True(t, ok)
	s, _ := n.AsString()
	assert.Equal(t, "random", s)

	_, ok = root.Lookup("/Scanner/missing")
	assert.False(t, ok)

	n, ok = root.Lookup("/")
	require.True(t, ok)
	assert.Same(t, root, n)
}

func TestInterface(t *testing.T) {
	inner := NewMap()
	inner.Set("b", Int(1))
	inner.Set("c", Floats([]float64{1, 2}))
	root := NewMap()
	root.Set("a", inner)
	root.Set("t", Bool(true))
	root.Set("n", Null())

	want := dynval.Map{
		{Key: "a", Value: dynval.Map{
			{Key: "b", Value: int64(1)},
			{Key: "c", Value: []float64{1, 2}},
		}},
		{Key: "t", Value: true},
		{Key: "n", Value: nil},
	}
	assert.Equal(t, want, root.Interface())
}

func TestArraysCopyInput(t *testing.T) {
	src := []int64{1, 2}
	n := Ints(src)
	src[0] = 9
	got, _ := n.AsInts()
	assert.Equal(t, []int64{1, 2}, got)
}
