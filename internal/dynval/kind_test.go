package dynval

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

type level int

func TestClassify(t *testing.T) {
	var nilPtr *int
	tests := []struct {
		name string
		in   any
		want Kind
	}{
		{"nil", nil, KindNull},
		{"nil pointer", nilPtr, KindNull},
		{"bool", true, KindBool},
		{"int", 3, KindInt},
		{"uint64", uint64(3), KindInt},
		{"named int", level(2), KindInt},
		{"float32", float32(1.5), KindFloat},
		{"float64", 1.5, KindFloat},
		{"json int", json.Number("12"), KindInt},
		{"json float", json.Number("1.2e3"), KindFloat},
		{"string", "x", KindString},
		{"any slice", []any{1}, KindSequence},
		{"typed slice", []float64{1}, KindSequence},
		{"array", [2]int{1, 2}, KindSequence},
		{"bytes", []byte("x"), KindUnsupported},
		{"map", map[string]any{}, KindMapping},
		{"any-keyed map", map[any]any{1: 2}, KindMapping},
		{"ordered map", Map{}, KindMapping},
		{"struct", struct{}{}, KindUnsupported},
		{"func", func() {}, KindUnsupported},
		{"complex", complex(1, 2), KindUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.in))
		})
	}
}

func TestIsAllowedScalar(t *testing.T) {
	for _, v := range []any{nil, false, 1, int8(-1), 2.5, "s"} {
		assert.True(t, IsAllowedScalar(v), "%#v", v)
	}
	for _, v := range []any{[]int{1}, map[string]any{}, struct{}{}, make(chan int)} {
		assert.False(t, IsAllowedScalar(v), "%#v", v)
	}
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "nil", TypeName(nil))
	assert.Equal(t, "int", TypeName(1))
	assert.Equal(t, "map[string]interface {}", TypeName(map[string]any{}))
	assert.Equal(t, "dynval.level", TypeName(level(1)))
}

func TestSameType(t *testing.T) {
	assert.True(t, SameType(1, 2))
	assert.False(t, SameType(1, int64(2)))
	assert.False(t, SameType(1, "1"))
	assert.True(t, SameType(nil, nil))
}
