package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanbit/scanbit/internal/convert"
	"github.com/scanbit/scanbit/internal/dynval"
)

func get(t *testing.T, m dynval.Map, keys ...string) any {
	t.Helper()
	var cur any = m
	for _, k := range keys {
		mm, ok := asMap(cur)
		require.True(t, ok, "not a mapping at %q", k)
		v, ok := mm.Get(k)
		require.True(t, ok, "missing %q", k)
		cur = v
	}
	return cur
}

func TestDefaultsConvert(t *testing.T) {
	root, err := convert.Build(Defaults())
	require.NoError(t, err)
	assert.Equal(t, []string{"Printer", "Scanner", "KeyValues"}, root.Keys())
	v, ok := root.Lookup("/KeyValues/likelihood/model_invalid_for_lnlike_below")
	require.True(t, ok)
	f, _ := v.Number()
	assert.Equal(t, -1e6, f)
}

func TestDefaultsAreFresh(t *testing.T) {
	a := Defaults()
	a.Set("Printer", "changed")
	assert.NotEqual(t, "changed", get(t, Defaults(), "Printer"))
}

func TestMergeFillsMissingKeys(t *testing.T) {
	user := dynval.Map{
		{Key: "Scanner", Value: map[string]any{"use_scanner": "grid"}},
		{Key: "Extra", Value: 1},
	}
	out := Merge(user, Defaults())

	assert.Equal(t, "grid", get(t, out, "Scanner", "use_scanner"))
	assert.Equal(t, 1000, get(t, out, "Scanner", "scanners", "random", "points"))
	assert.Equal(t, "jsonl", get(t, out, "Printer", "printer"))
	assert.Equal(t, 1, get(t, out, "Extra"))
	assert.Equal(t, []string{"Scanner", "Extra", "Printer", "KeyValues"}, out.Keys())

	// user untouched
	sc, _ := user.Get("Scanner")
	assert.Len(t, sc, 1)
}

func TestMergeNeverOverwrites(t *testing.T) {
	user := dynval.Map{{Key: "Printer", Value: "custom"}}
	out := Merge(user, Defaults())
	assert.Equal(t, "custom", get(t, out, "Printer"))
}

func TestMergeClonesDefaults(t *testing.T) {
	defaults := dynval.Map{{Key: "list", Value: []any{1, 2}}}
	out := Merge(nil, defaults)
	out[0].Value.([]any)[0] = 99
	assert.Equal(t, 1, defaults[0].Value.([]any)[0])
}

func TestPrepareFromArgs(t *testing.T) {
	s, err := Prepare(nil, Options{
		Scanner:    "grid",
		ModelName:  "quad",
		ArgNames:   []string{"x", "y"},
		Bounds:     [][2]float64{{-5, 5}, {1, 0.25}},
		PriorTypes: []string{"flat", "gaussian"},
	})
	require.NoError(t, err)

	assert.Equal(t, "grid", get(t, s, "Scanner", "use_scanner"))
	assert.Equal(t, "scanbit_run_data/unnamed_run/grid_scan", get(t, s, "KeyValues", "default_output_path"))
	assert.Equal(t, []string{"x", "y"}, get(t, s, "Parameters", "quad").(dynval.Map).Keys())
	assert.Nil(t, get(t, s, "Parameters", "quad", "x"))

	assert.Equal(t, "flat", get(t, s, "Priors", "x_prior", "prior_type"))
	assert.Equal(t, []any{"quad::x"}, get(t, s, "Priors", "x_prior", "parameters"))
	assert.Equal(t, []any{-5.0, 5.0}, get(t, s, "Priors", "x_prior", "range"))
	assert.Equal(t, []any{1.0}, get(t, s, "Priors", "y_prior", "mean"))
	assert.Equal(t, []any{0.25}, get(t, s, "Priors", "y_prior", "cov"))

	_, err = convert.Build(s)
	assert.NoError(t, err)
}

func TestPrepareDefaultBoundsAndTypes(t *testing.T) {
	s, err := Prepare(nil, Options{ArgNames: []string{"a"}})
	require.NoError(t, err)
	assert.Equal(t, "flat", get(t, s, "Priors", "a_prior", "prior_type"))
	assert.Equal(t, []any{0.0, 1.0}, get(t, s, "Priors", "a_prior", "range"))
	assert.Equal(t, []any{"default::a"}, get(t, s, "Priors", "a_prior", "parameters"))
	assert.Equal(t, "scanbit_run_data/unnamed_run/random_scan", get(t, s, "KeyValues", "default_output_path"))
}

func TestPrepareKeepsUserSections(t *testing.T) {
	user := dynval.Map{
		{Key: "Parameters", Value: dynval.Map{
			{Key: "mymodel", Value: dynval.Map{{Key: "x", Value: dynval.Map{{Key: "range", Value: []any{0, 2}}}}}},
		}},
		{Key: "Priors", Value: dynval.Map{}},
	}
	s, err := Prepare(user, Options{ArgNames: []string{"x"}, OutputPath: "runs/mine"})
	require.NoError(t, err)

	assert.Equal(t, dynval.Map{}, get(t, s, "Priors"))
	assert.Equal(t, "runs/mine", get(t, s, "KeyValues", "default_output_path"))
	assert.Equal(t, []any{0, 2}, get(t, s, "Parameters", "mymodel", "x", "range"))
}

func TestPrepareModelFromParameters(t *testing.T) {
	user := dynval.Map{
		{Key: "Parameters", Value: dynval.Map{{Key: "m1", Value: dynval.Map{{Key: "x", Value: nil}}}}},
	}
	s, err := Prepare(user, Options{ArgNames: []string{"x"}})
	require.NoError(t, err)
	assert.Equal(t, []any{"m1::x"}, get(t, s, "Priors", "x_prior", "parameters"))
}

func TestPrepareErrors(t *testing.T) {
	_, err := Prepare(nil, Options{})
	assert.ErrorIs(t, err, ErrNoPriors)

	_, err = Prepare(nil, Options{ArgNames: []string{"a", "b"}, Bounds: [][2]float64{{0, 1}}})
	assert.ErrorContains(t, err, "got 2 parameter names, 1 bounds and 2 prior types")

	_, err = Prepare(dynval.Map{{Key: "KeyValues", Value: "oops"}}, Options{ArgNames: []string{"a"}})
	assert.ErrorContains(t, err, "settings /KeyValues: expected a mapping, got string")
}

func TestSetPath(t *testing.T) {
	m := dynval.Map{{Key: "Scanner", Value: map[string]any{"use_scanner": "grid"}}}
	out, err := SetPath(m, 50, "Scanner", "scanners", "grid", "points")
	require.NoError(t, err)

	assert.Equal(t, 50, get(t, out, "Scanner", "scanners", "grid", "points"))
	assert.Equal(t, "grid", get(t, out, "Scanner", "use_scanner"))
	_, isGoMap := get(t, m, "Scanner").(map[string]any)
	assert.True(t, isGoMap, "input left alone")

	out, err = SetPath(out, "x", "Top")
	require.NoError(t, err)
	assert.Equal(t, "x", get(t, out, "Top"))

	_, err = SetPath(out, 1, "Top", "inner")
	assert.ErrorContains(t, err, "cannot set inner under Top: it holds a string")
}

func TestScannerName(t *testing.T) {
	assert.Equal(t, DefaultScanner, ScannerName(Defaults()))
	assert.Equal(t, "de", ScannerName(dynval.Map{{Key: "Scanner", Value: map[string]any{"use_scanner": "de"}}}))
	assert.Empty(t, ScannerName(nil))
	assert.Empty(t, ScannerName(dynval.Map{{Key: "Scanner", Value: 3}}))
}
