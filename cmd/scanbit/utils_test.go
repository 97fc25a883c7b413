package scanbit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanbit/scanbit/internal/dynval"
	"github.com/scanbit/scanbit/internal/settings"
)

func TestParseParamFlag(t *testing.T) {
	p, err := parseParamFlag("demo::x=-1.5:2")
	require.NoError(t, err)
	assert.Equal(t, paramFlag{Model: "demo", Name: "x", Lo: -1.5, Hi: 2, Prior: "flat"}, p)

	p, err = parseParamFlag("demo::mass=1:1000:log")
	require.NoError(t, err)
	assert.Equal(t, "log", p.Prior)

	for _, bad := range []string{
		"demo::x",
		"x=0:1",
		"::x=0:1",
		"demo::x=0",
		"demo::x=0:1:2:3",
		"demo::x=a:1",
		"demo::x=0:b",
		"demo::x=0:1:gaussian",
	} {
		_, err := parseParamFlag(bad)
		assert.Error(t, err, bad)
	}
}

func TestPickPrecedence(t *testing.T) {
	s := func(v string) *string { return &v }
	i := func(v int) *int { return &v }
	i64 := func(v int64) *int64 { return &v }
	b := func(v bool) *bool { return &v }

	assert.Equal(t, "cli", pickString("cli", s("local"), s("global")))
	assert.Equal(t, "local", pickString("", s("local"), s("global")))
	assert.Equal(t, "global", pickString("", s(""), s("global")))
	assert.Equal(t, "", pickString("", nil, nil))

	assert.Equal(t, 4, pickInt(4, i(2), i(1)))
	assert.Equal(t, 1, pickInt(0, nil, i(1)))

	v, ok := pickInt64(0, true, i64(7), nil)
	assert.True(t, ok)
	assert.Equal(t, int64(0), v)
	v, ok = pickInt64(0, false, nil, i64(9))
	assert.True(t, ok)
	assert.Equal(t, int64(9), v)
	_, ok = pickInt64(0, false, nil, nil)
	assert.False(t, ok)

	assert.True(t, pickBool(true, b(false), nil))
	assert.False(t, pickBool(false, b(false), b(true)))
	assert.True(t, pickBool(false, nil, b(true)))
}

func TestBuildVersion(t *testing.T) {
	ver, _ := buildVersion()
	assert.Equal(t, version, ver.String())
}

func TestApplyPrinter(t *testing.T) {
	base := dynval.Map{{Key: "Printer", Value: dynval.Map{
		{Key: "printer", Value: "jsonl"},
		{Key: "options", Value: dynval.Map{{Key: "output_file", Value: settings.DefaultOutputFile}}},
	}}}

	m, err := applyPrinter(base, "sqlite")
	require.NoError(t, err)
	pr, _ := m.Get("Printer")
	kind, _ := pr.(dynval.Map).Get("printer")
	assert.Equal(t, "sqlite", kind)
	opts, _ := pr.(dynval.Map).Get("options")
	file, _ := opts.(dynval.Map).Get("output_file")
	assert.Equal(t, "samples.db", file)

	m, err = applyPrinter(base, "none")
	require.NoError(t, err)
	pr, _ = m.Get("Printer")
	opts, _ = pr.(dynval.Map).Get("options")
	file, _ = opts.(dynval.Map).Get("output_file")
	assert.Equal(t, settings.DefaultOutputFile, file)

	orig, _ := base.Get("Printer")
	kind, _ = orig.(dynval.Map).Get("printer")
	assert.Equal(t, "jsonl", kind, "input is not modified")
}

func TestSettingsFlagListsFormats(t *testing.T) {
	for _, name := range []string{"scan", "tree"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err)
		usage := cmd.Flags().Lookup("settings").Usage
		for _, format := range []string{"YAML", "JSON", "HCL"} {
			assert.Contains(t, usage, format, name)
		}
	}
}
