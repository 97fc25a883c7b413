package engine

import (
	"fmt"
	"math"
)

// unitEps keeps transforms with unbounded support finite at the cube edges.
const unitEps = 1e-12

// transform maps a unit-interval coordinate to a physical value.
type transform func(u float64) float64

func flat(lo, hi float64) (transform, error) {
	if !(hi > lo) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, fmt.Errorf("flat range [%g, %g] is not a finite increasing interval", lo, hi)
	}
	return func(u float64) float64 { return lo + u*(hi-lo) }, nil
}

func logUniform(lo, hi float64) (transform, error) {
	if !(lo > 0) || !(hi > lo) || math.IsInf(hi, 0) {
		return nil, fmt.Errorf("log range [%g, %g] must be positive and increasing", lo, hi)
	}
	ratio := math.Log(hi / lo)
	return func(u float64) float64 { return lo * math.Exp(u*ratio) }, nil
}

// gaussian takes the variance, like the diagonal of a covariance matrix.
func gaussian(mean, variance float64) (transform, error) {
	if !(variance > 0) {
		return nil, fmt.Errorf("gaussian variance %g must be positive", variance)
	}
	sigma := math.Sqrt(variance)
	return func(u float64) float64 {
		return mean + sigma*math.Sqrt2*math.Erfinv(2*clampUnit(u)-1)
	}, nil
}

// cauchy uses the square root of cov as the scale.
func cauchy(loc, cov float64) (transform, error) {
	if !(cov > 0) {
		return nil, fmt.Errorf("cauchy scale %g must be positive", cov)
	}
	scale := math.Sqrt(cov)
	return func(u float64) float64 {
		return loc + scale*math.Tan(math.Pi*(clampUnit(u)-0.5))
	}, nil
}

func clampUnit(u float64) float64 {
	return math.Min(math.Max(u, unitEps), 1-unitEps)
}
