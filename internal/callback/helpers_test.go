package callback

import (
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToFloat(t *testing.T) {
	f, ok := ToFloat(json.Number("2.5"))
	require.True(t, ok)
	assert.Equal(t, 2.5, f)

	f, ok = ToFloat(uint64(7))
	require.True(t, ok)
	assert.Equal(t, 7.0, f)

	_, ok = ToFloat(json.Number("x"))
	assert.False(t, ok)
	_, ok = ToFloat("3")
	assert.False(t, ok)
}

func TestPositional(t *testing.T) {
	fn := Positional("test_model", []string{"x", "y"}, func(_ context.Context, args []float64) (any, error) {
		return args[0] - args[1], nil
	})
	got, err := fn(context.Background(), map[string]any{"test_model::y": 3.0, "test_model::x": 10.0})
	require.NoError(t, err)
	assert.Equal(t, 7.0, got)

	_, err = fn(context.Background(), map[string]any{"test_model::x": 1.0})
	assert.ErrorContains(t, err, `"test_model::y" missing`)
}

func TestPositional_ThroughAdapter(t *testing.T) {
	a := NewAdapter(Positional("m", []string{"a"}, func(_ context.Context, args []float64) (any, error) {
		return args[0] * 2, nil
	}))
	got, err := a.Trampoline(context.Background(), Params{"m::a": 4})
	require.NoError(t, err)
	assert.Equal(t, 8.0, got)
}

func TestBuiltins(t *testing.T) {
	assert.Equal(t, []string{"eggbox", "gaussian", "rosenbrock"}, BuiltinNames())

	g, ok := Builtin("gaussian")
	require.True(t, ok)
	v, err := g(context.Background(), map[string]any{"m::x": 1.0, "m::y": 1.0})
	require.NoError(t, err)
	assert.Equal(t, -1.0, v)

	r, _ := Builtin("rosenbrock")
	v, err = r(context.Background(), map[string]any{"m::a": 1.0, "m::b": 1.0})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, v, 1e-12)

	e, _ := Builtin("eggbox")
	v, err = e(context.Background(), map[string]any{"m::x": 0.0})
	require.NoError(t, err)
	assert.InDelta(t, 243.0, v, 1e-9)

	_, ok = Builtin("nope")
	assert.False(t, ok)

	for _, name := range BuiltinNames() {
		fn, _ := Builtin(name)
		_, err := fn(context.Background(), map[string]any{"m::x": 1.0, "m::y": "two"})
		assert.ErrorContains(t, err, "parameter m::y: not a number", name)
	}
}

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestCommand_NumericOutput(t *testing.T) {
	requireShell(t)
	fn, err := Command([]string{"sh", "-c", `cat >/dev/null; echo 2.5`})
	require.NoError(t, err)
	got, err := NewAdapter(fn).Trampoline(context.Background(), Params{"m::x": 1})
	require.NoError(t, err)
	assert.Equal(t, 2.5, got)
}

func TestCommand_ReceivesParamsOnStdin(t *testing.T) {
	requireShell(t)
	fn, err := Command([]string{"sh", "-c", `cat`})
	require.NoError(t, err)
	out, err := fn(context.Background(), map[string]any{"m::x": 1.5})
	require.NoError(t, err)
	m, ok := out.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, json.Number("1.5"), m["m::x"])
}

func TestCommand_StringOutputIsNonNumeric(t *testing.T) {
	requireShell(t)
	fn, err := Command([]string{"sh", "-c", `echo '"oops"'`})
	require.NoError(t, err)
	_, err = NewAdapter(fn).Trampoline(context.Background(), Params{})
	var ce *CallbackError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, ReasonNonNumeric, ce.Reason)
}

func TestCommand_FailureCarriesStderr(t *testing.T) {
	requireShell(t)
	fn, err := Command([]string{"sh", "-c", `echo bad input >&2; exit 3`})
	require.NoError(t, err)
	_, err = NewAdapter(fn).Trampoline(context.Background(), Params{})
	var ce *CallbackError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, ReasonHostFailure, ce.Reason)
	assert.Contains(t, err.Error(), "bad input")
}

func TestCommand_Empty(t *testing.T) {
	_, err := Command(nil)
	assert.Error(t, err)
	_, err = Command([]string{"definitely-not-a-real-binary-xyz"})
	assert.Error(t, err)
}
