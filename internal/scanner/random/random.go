// Package random samples the unit hypercube uniformly.
package random

import (
	"math/rand"

	"github.com/scanbit/scanbit/internal/scanner"
)

const defaultPoints = 1000

type Scanner struct {
	dim       int
	remaining int
	rng       *rand.Rand
}

// New builds a uniform sampler. Settings: points (default 1000).
func New(opts scanner.Options) *Scanner {
	return &Scanner{
		dim:       opts.Dim,
		remaining: opts.Int("points", defaultPoints),
		rng:       rand.New(rand.NewSource(opts.Seed)),
	}
}

func (s *Scanner) Name() string { return "random" }

func (s *Scanner) Ask(limit int) [][]float64 {
	n := min(limit, s.remaining)
	if n <= 0 {
		return nil
	}
	s.remaining -= n
	out := make([][]float64, n)
	for i := range out {
		p := make([]float64, s.dim)
		for d := range p {
			p[d] = s.rng.Float64()
		}
		out[i] = p
	}
	return out
}

func (s *Scanner) Tell([][]float64, []float64) {}
