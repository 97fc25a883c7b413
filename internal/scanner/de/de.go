// Package de is a differential evolution scanner (rand/1/bin) that
// maximises the log-likelihood.
package de

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/scanbit/scanbit/internal/scanner"
)

const (
	defaultNP          = 50
	defaultF           = 0.6
	defaultCR          = 0.9
	defaultGenerations = 100
)

type Scanner struct {
	dim  int
	np   int
	gens int
	f    float64
	cr   float64
	rng  *rand.Rand

	pop [][]float64
	fit []float64

	// gen 0 fills the initial population.
	gen     int
	next    int
	pending []int
}

// New builds a DE scanner. Settings: NP (population, default 50), F
// (default 0.6), Cr (default 0.9), generations (default 100).
func New(opts scanner.Options) (*Scanner, error) {
	s := &Scanner{
		dim:  opts.Dim,
		np:   opts.Int("NP", defaultNP),
		gens: opts.Int("generations", defaultGenerations),
		f:    opts.Float("F", defaultF),
		cr:   opts.Float("Cr", defaultCR),
		rng:  rand.New(rand.NewSource(opts.Seed)),
	}
	if s.np < 4 {
		return nil, fmt.Errorf("de: NP must be at least 4, got %d", s.np)
	}
	if s.cr < 0 || s.cr > 1 {
		return nil, fmt.Errorf("de: Cr must be in [0,1], got %g", s.cr)
	}
	s.pop = make([][]float64, s.np)
	s.fit = make([]float64, s.np)
	return s, nil
}

func (s *Scanner) Name() string { return "de" }

func (s *Scanner) Ask(limit int) [][]float64 {
	s.pending = s.pending[:0]
	if s.gen > s.gens || s.dim == 0 {
		return nil
	}
	var out [][]float64
	for ; s.next < s.np && len(out) < limit; s.next++ {
		if s.gen == 0 {
			out = append(out, s.uniform())
		} else {
			out = append(out, s.trial(s.next))
		}
		s.pending = append(s.pending, s.next)
	}
	return out
}

func (s *Scanner) Tell(points [][]float64, values []float64) {
	for k, idx := range s.pending {
		if k >= len(points) || k >= len(values) {
			break
		}
		v := values[k]
		if math.IsNaN(v) {
			v = math.Inf(-1)
		}
		if s.gen == 0 || v >= s.fit[idx] {
			s.pop[idx] = points[k]
			s.fit[idx] = v
		}
	}
	if s.next >= s.np {
		s.gen++
		s.next = 0
	}
}

// Best returns the fittest member of the current population.
func (s *Scanner) Best() ([]float64, float64) {
	best := -1
	for i, p := range s.pop {
		if p != nil && (best < 0 || s.fit[i] > s.fit[best]) {
			best = i
		}
	}
	if best < 0 {
		return nil, math.Inf(-1)
	}
	return s.pop[best], s.fit[best]
}

func (s *Scanner) uniform() []float64 {
	p := make([]float64, s.dim)
	for d := range p {
		p[d] = s.rng.Float64()
	}
	return p
}

func (s *Scanner) trial(i int) []float64 {
	a, b, c := s.distinct(i)
	target := s.pop[i]
	jrand := s.rng.Intn(s.dim)
	out := make([]float64, s.dim)
	for d := range out {
		if d != jrand && s.rng.Float64() >= s.cr {
			out[d] = target[d]
			continue
		}
		v := s.pop[a][d] + s.f*(s.pop[b][d]-s.pop[c][d])
		// Out-of-range components are pulled back between the target and the bound.
		switch {
		case v < 0:
			v = target[d] * s.rng.Float64()
		case v >= 1:
			v = target[d] + (1-target[d])*s.rng.Float64()
		}
		out[d] = v
	}
	return out
}

func (s *Scanner) distinct(i int) (int, int, int) {
	pick := func(skip ...int) int {
		for {
			r := s.rng.Intn(s.np)
			clash := false
			for _, k := range skip {
				if r == k {
					clash = true
					break
				}
			}
			if !clash {
				return r
			}
		}
	}
	a := pick(i)
	b := pick(i, a)
	c := pick(i, a, b)
	return a, b, c
}
