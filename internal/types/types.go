package types

// Status tells whether a sample's likelihood counts.
type Status string

const (
	StatusValid   Status = "valid"
	StatusInvalid Status = "invalid"
)

// Sample is one evaluated point: the physical parameter values the
// objective saw, its log-likelihood, and the unit-cube point the scanner
// proposed.
type Sample struct {
	ID      int                `json:"id"`
	Params  map[string]float64 `json:"params"`
	LogLike float64            `json:"loglike"`
	Status  Status             `json:"status"`
	Unit    []float64          `json:"unit,omitempty"`
}

// Valid reports whether the sample is above the invalid-model threshold.
func (s Sample) Valid() bool { return s.Status == StatusValid }
