package engine

import (
	"math"

	"QAmp/internal/domain/models"
	"QAmp/pkg/logger"
)

// PositiveProbEstimator is the quantum-slot estimator contract. The real
// quantum estimator satisfies it; tests substitute failing implementations
// to exercise the fallback transition.
type PositiveProbEstimator interface {
	Estimate(samples []float64, shots int) (float64, error)
}

// Orchestrator selects between the quantum-style and classical estimators
// for a single instrument and assembles the result record. It holds no
// per-call state; the same instance may serve sequential calls, but
// concurrent callers should own separate instances because the underlying
// quantum estimator owns its random streams.
type Orchestrator struct {
	quantum PositiveProbEstimator
	log     *logger.Logger
}

func NewOrchestrator(quantum PositiveProbEstimator, log *logger.Logger) *Orchestrator {
	if log == nil {
		log = logger.Nop()
	}
	return &Orchestrator{quantum: quantum, log: log}
}

// EstimateInstrument runs the per-instrument state machine: empty samples
// terminate with ErrNoData; otherwise the classical figures are always
// computed and the quantum slot is filled by the configured path, falling
// back to the classical estimator on any quantum failure. Quantum failures
// are logged and surfaced only through the method tag.
func (o *Orchestrator) EstimateInstrument(samples []float64, useQuantum bool, shots int) (models.EstimationResult, error) {
	clean := sanitize(samples)
	if len(clean) == 0 {
		return models.EstimationResult{}, ErrNoData
	}
	if shots <= 0 {
		shots = DefaultShots
	}

	res := models.EstimationResult{
		ClassicalMean:         ClassicalMean(clean),
		ClassicalPositiveProb: ClassicalPositiveProb(clean),
		NSamples:              len(clean),
	}

	value, method := o.quantumSlot(clean, useQuantum, shots)
	if math.IsNaN(value) {
		value = 0.0
	}
	res.QuantumPositiveProb = value
	res.Method = method
	return res, nil
}

// EstimatePositiveProb is the narrow entry point: only the quantum-slot
// value and the method that produced it.
func (o *Orchestrator) EstimatePositiveProb(samples []float64, useQuantum bool, shots int) (float64, models.Method, error) {
	res, err := o.EstimateInstrument(samples, useQuantum, shots)
	if err != nil {
		return 0, "", err
	}
	return res.QuantumPositiveProb, res.Method, nil
}

func (o *Orchestrator) quantumSlot(samples []float64, useQuantum bool, shots int) (float64, models.Method) {
	if !useQuantum {
		return ClassicalPositiveProb(samples), models.MethodClassical
	}

	v, err := o.quantum.Estimate(samples, shots)
	if err != nil {
		o.log.Warn("quantum estimator failed, using classical fallback", logger.Error(err))
		return ClassicalPositiveProb(samples), models.MethodClassicalFallback
	}
	return v, models.MethodQuantum
}

// sanitize coerces NaN samples to 0.0 so no NaN reaches downstream
// arithmetic. Upstream cleaning should already have removed them; this is
// the engine-side guarantee that none propagate into output.
func sanitize(samples []float64) []float64 {
	for _, v := range samples {
		if math.IsNaN(v) {
			out := make([]float64, len(samples))
			for i, w := range samples {
				if math.IsNaN(w) {
					w = 0.0
				}
				out[i] = w
			}
			return out
		}
	}
	return samples
}
