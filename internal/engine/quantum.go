package engine

import (
	"fmt"
	"math"
	"math/rand"
)

// DefaultShots is the shot count used when the caller supplies none.
const DefaultShots = 1024

// defaultNoiseSigma is the stddev of the Gaussian decoherence perturbation
// applied to measured frequencies.
const defaultNoiseSigma = 0.01

// QuantumConfig controls the simulated backend.
type QuantumConfig struct {
	// NoiseSigma is the decoherence noise stddev; <= 0 falls back to 0.01.
	NoiseSigma float64
	// Available reports whether the simulated backend can run. Resolved once
	// at startup and injected here rather than read from global state.
	Available bool
}

// QuantumEstimator estimates P(X > 0) by encoding the empirical probability
// as a single-qubit rotation and measuring it on the simulated backend. It
// either returns a value in [0,1] or signals failure; it never substitutes a
// clamped garbage value for an error.
type QuantumEstimator struct {
	sim       *ShotSimulator
	noise     *rand.Rand
	sigma     float64
	available bool
}

// NewQuantumEstimator builds an estimator with independent shot and noise
// streams. Pass distinct sources to each concurrently running instance.
func NewQuantumEstimator(cfg QuantumConfig, shotSrc, noiseSrc rand.Source) *QuantumEstimator {
	sigma := cfg.NoiseSigma
	if sigma <= 0 {
		sigma = defaultNoiseSigma
	}
	return &QuantumEstimator{
		sim:       NewShotSimulator(shotSrc),
		noise:     rand.New(noiseSrc),
		sigma:     sigma,
		available: cfg.Available,
	}
}

// Estimate runs the encode-measure-perturb pipeline over samples:
// classical baseline -> rotation angle -> shot simulation -> decoherence
// noise -> clamp to [0,1].
func (q *QuantumEstimator) Estimate(samples []float64, shots int) (float64, error) {
	if !q.available {
		return 0, fmt.Errorf("quantum estimate: %w", ErrBackendUnavailable)
	}
	if shots <= 0 {
		return 0, fmt.Errorf("quantum estimate: invalid shot count %d", shots)
	}

	pClassical := ClassicalPositiveProb(samples)
	theta := EncodeAngle(pClassical)

	p1, err := q.sim.Run(theta, shots)
	if err != nil {
		return 0, fmt.Errorf("quantum estimate: %w", err)
	}

	p1 += q.noise.NormFloat64() * q.sigma
	if math.IsNaN(p1) {
		return 0, fmt.Errorf("quantum estimate: non-finite measurement")
	}
	return math.Min(1, math.Max(0, p1)), nil
}
