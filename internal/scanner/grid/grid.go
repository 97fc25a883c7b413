// Package grid walks a regular grid over the unit hypercube.
package grid

import (
	"fmt"

	"github.com/scanbit/scanbit/internal/scanner"
)

const defaultPointsPerDim = 10

type Scanner struct {
	pts  []int
	idx  []int
	done bool
}

// New builds a grid scanner. Settings: grid_pts, one point count per
// dimension, or points_per_dim applied to every dimension (default 10).
// Grid points are cell centres, so a single point sits at 0.5.
func New(opts scanner.Options) (*Scanner, error) {
	pts := make([]int, opts.Dim)
	if given := opts.Ints("grid_pts"); len(given) > 0 {
		if len(given) != opts.Dim {
			return nil, fmt.Errorf("grid: grid_pts has %d entries for %d parameters", len(given), opts.Dim)
		}
		for i, g := range given {
			pts[i] = int(g)
		}
	} else {
		per := opts.Int("points_per_dim", defaultPointsPerDim)
		for i := range pts {
			pts[i] = per
		}
	}
	for i, p := range pts {
		if p <= 0 {
			return nil, fmt.Errorf("grid: dimension %d needs at least one point, got %d", i, p)
		}
	}
	return &Scanner{pts: pts, idx: make([]int, len(pts)), done: len(pts) == 0}, nil
}

func (s *Scanner) Name() string { return "grid" }

func (s *Scanner) Ask(limit int) [][]float64 {
	var out [][]float64
	for len(out) < limit && !s.done {
		p := make([]float64, len(s.pts))
		for d, i := range s.idx {
			p[d] = (float64(i) + 0.5) / float64(s.pts[d])
		}
		out = append(out, p)
		s.advance()
	}
	return out
}

// advance steps the odometer, last dimension fastest.
func (s *Scanner) advance() {
	for d := len(s.idx) - 1; d >= 0; d-- {
		s.idx[d]++
		if s.idx[d] < s.pts[d] {
			return
		}
		s.idx[d] = 0
	}
	s.done = true
}

func (s *Scanner) Tell([][]float64, []float64) {}
