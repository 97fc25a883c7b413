// Package scanner defines the sampling plugins the built-in engine drives.
//
// A plugin works in the unit hypercube: it proposes batches of points
// (Ask), the engine maps them through the priors and scores them, and the
// plugin is told the results (Tell). Plugins that do not adapt ignore Tell.
package scanner

import (
	"math"

	"github.com/scanbit/scanbit/internal/tree"
)

// Scanner proposes points in [0,1)^dim.
type Scanner interface {
	// Name is the plugin name, e.g. "random".
	Name() string
	// Ask returns at most limit new points, or none when the scan is done.
	Ask(limit int) [][]float64
	// Tell reports the log-likelihood of every point of the last batch,
	// in the order Ask returned them.
	Tell(points [][]float64, values []float64)
}

// Options is what every plugin is built from.
type Options struct {
	// Dim is the number of free parameters.
	Dim int
	// Seed seeds the plugin's random source.
	Seed int64
	// Settings is the plugin's own section of the Scanner settings.
	Settings *tree.Node
}

// Int reads an integer option, accepting integral floats.
func (o Options) Int(key string, def int) int {
	n := o.Settings.Get(key)
	if i, ok := n.AsInt(); ok {
		return int(i)
	}
	if f, ok := n.AsFloat(); ok && f == math.Trunc(f) {
		return int(f)
	}
	return def
}

// Float reads a numeric option.
func (o Options) Float(key string, def float64) float64 {
	if f, ok := o.Settings.Get(key).Number(); ok {
		return f
	}
	return def
}

// Ints reads an integer array option.
func (o Options) Ints(key string) []int64 {
	v, _ := o.Settings.Get(key).AsInts()
	return v
}
