package printer

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scanbit/scanbit/internal/types"
)

func TestJSONLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run", "samples", "samples.jsonl")
	p, err := New("jsonl", path, true)
	require.NoError(t, err)
	assert.Equal(t, path, p.Path())

	for i := range 3 {
		require.NoError(t, p.Print(types.Sample{ID: i, Params: map[string]float64{"m::x": float64(i)}, Status: types.StatusValid}))
	}
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.Error(t, p.Print(types.Sample{}))

	got, err := LoadSamples(path)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 2.0, got[2].Params["m::x"])
}

func TestJSONLAppendAndTruncate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.jsonl")
	write := func(truncate bool) {
		p, err := OpenJSONL(path, truncate)
		require.NoError(t, err)
		require.NoError(t, p.Print(types.Sample{ID: 1}))
		require.NoError(t, p.Close())
	}
	write(true)
	write(false)
	got, err := LoadSamples(path)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	write(true)
	got, err = LoadSamples(path)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestJSONLConcurrentPrint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.jsonl")
	p, err := OpenJSONL(path, true)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, p.Print(types.Sample{ID: i}))
		}()
	}
	wg.Wait()
	require.NoError(t, p.Close())

	got, err := LoadSamples(path)
	require.NoError(t, err)
	assert.Len(t, got, 50)
}

func TestNewPrinterKinds(t *testing.T) {
	p, err := New("none", "", false)
	require.NoError(t, err)
	assert.NoError(t, p.Print(types.Sample{}))
	assert.Empty(t, p.Path())

	_, err = New("hdf5", "x", false)
	assert.ErrorContains(t, err, `unsupported printer "hdf5"`)
}

func TestLoadSamplesMissing(t *testing.T) {
	_, err := LoadSamples(filepath.Join(t.TempDir(), "nope.jsonl"))
	assert.Error(t, err)
}

func TestHistory(t *testing.T) {
	dir := t.TempDir()
	h := NewHistory(dir)
	best := -1.5
	require.NoError(t, h.Append(RunRecord{Scanner: "random", Samples: 10, Timestamp: time.Unix(100, 0)}))
	require.NoError(t, h.Append(RunRecord{Scanner: "grid", Samples: 4, BestLogLike: &best}))

	recs, err := h.Load()
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "grid", recs[0].Scanner, "newest first")
	assert.Equal(t, "run_100", recs[1].RunID)
	assert.Equal(t, -1.5, *recs[0].BestLogLike)

	_, err = os.Stat(filepath.Join(dir, "runs.jsonl"))
	assert.NoError(t, err)
}

func TestLoadSamplesCorruptLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.jsonl")
	body := `{"id":0,"params":{"m::x":1},"loglike":-1,"status":"valid"}
{"id":1,"params":{"m::x":2},"loglike":-2,"status":"valid"}
{"id":2,"params":{"m::x":
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	_, err := LoadSamples(path)
	assert.ErrorContains(t, err, "line 3")
}
