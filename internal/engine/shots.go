package engine

import (
	"fmt"
	"math"
	"math/rand"
)

// ShotSimulator draws simulated single-qubit measurements. It stands in for
// transpiling the encoded circuit and running it N times on a backend: each
// shot is one Bernoulli trial at the encoded amplitude, and the returned
// frequency is what the counts dictionary would yield.
type ShotSimulator struct {
	rng *rand.Rand
}

// NewShotSimulator creates a simulator drawing from src. Each simulator owns
// its stream; concurrent per-instrument runs must use one simulator each.
func NewShotSimulator(src rand.Source) *ShotSimulator {
	return &ShotSimulator{rng: rand.New(src)}
}

// Run measures outcome 1 with probability sin^2(theta/2) across shots
// independent trials and returns the observed frequency. The result
// converges to the encoded probability at the usual 1/sqrt(N) rate.
func (s *ShotSimulator) Run(theta float64, shots int) (float64, error) {
	if shots <= 0 {
		return 0, fmt.Errorf("shot simulator: shots must be positive, got %d", shots)
	}
	if math.IsNaN(theta) || math.IsInf(theta, 0) {
		return 0, fmt.Errorf("shot simulator: non-finite angle")
	}

	p := DecodeAngle(theta)
	ones := 0
	for i := 0; i < shots; i++ {
		if s.rng.Float64() < p {
			ones++
		}
	}
	return float64(ones) / float64(shots), nil
}
