package models

// Method identifies which estimator produced the quantum-slot value.
type Method string

const (
	MethodQuantum           Method = "quantum"
	MethodClassical         Method = "classical"
	MethodClassicalFallback Method = "classical_fallback"
)

// EstimationResult is the per-instrument output of one estimation call.
// Constructed fresh per call and immutable once returned.
type EstimationResult struct {
	ClassicalMean         float64 `json:"classical_mean"`
	ClassicalPositiveProb float64 `json:"classical_positive_prob"`
	QuantumPositiveProb   float64 `json:"quantum_positive_prob"`
	Method                Method  `json:"method_used"`
	NSamples              int     `json:"n_samples"`
}

// InstrumentOutcome is one entry in a per-ticker result map. Exactly one of
// the embedded result or Error is populated; a failed instrument never drops
// out of the map silently.
type InstrumentOutcome struct {
	*EstimationResult
	Error string `json:"error,omitempty"`
}

// SeriesOutcome is one entry in a per-ticker timeseries map: either the
// daily return series or an error string.
type SeriesOutcome struct {
	Returns []float64 `json:"returns,omitempty"`
	Error   string    `json:"error,omitempty"`
}
