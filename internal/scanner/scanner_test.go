package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scanbit/scanbit/internal/tree"
)

func TestOptionsReaders(t *testing.T) {
	s := tree.NewMap()
	s.Set("points", tree.Int(12))
	s.Set("whole", tree.Float(3))
	s.Set("frac", tree.Float(2.5))
	s.Set("grid_pts", tree.Ints([]int64{2, 3}))
	o := Options{Settings: s}

	assert.Equal(t, 12, o.Int("points", 1))
	assert.Equal(t, 3, o.Int("whole", 1))
	assert.Equal(t, 7, o.Int("frac", 7), "non-integral float falls back to default")
	assert.Equal(t, 7, o.Int("missing", 7))
	assert.Equal(t, 2.5, o.Float("frac", 0))
	assert.Equal(t, 12.0, o.Float("points", 0))
	assert.Equal(t, []int64{2, 3}, o.Ints("grid_pts"))
	assert.Nil(t, o.Ints("points"))
}

func TestOptionsNilSettings(t *testing.T) {
	o := Options{}
	assert.Equal(t, 5, o.Int("points", 5))
	assert.Equal(t, 0.5, o.Float("F", 0.5))
	assert.Nil(t, o.Ints("grid_pts"))
}
