package engine

import "math"

// Clamp bounds for the amplitude encoding. Probabilities at the exact poles
// produce degenerate rotation angles, so inputs are pulled into (0,1).
const (
	probFloor = 1e-3
	probCeil  = 1 - 1e-3
)

// EncodeAngle maps a probability p to the Ry rotation angle of a single-qubit
// state whose outcome-1 measurement probability equals the clamped p:
// theta = 2*asin(sqrt(p)). Non-finite input is treated as p = 0.
func EncodeAngle(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		p = 0
	}
	p = clamp01(p, probFloor, probCeil)
	return 2 * math.Asin(math.Sqrt(p))
}

// DecodeAngle inverts EncodeAngle, recovering the outcome-1 probability
// sin^2(theta/2) encoded by a rotation angle.
func DecodeAngle(theta float64) float64 {
	s := math.Sin(theta / 2)
	return s * s
}

func clamp01(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
