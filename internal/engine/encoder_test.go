package engine

import (
	"math"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for p := probFloor; p <= probCeil; p += 0.0137 {
		theta := EncodeAngle(p)
		got := DecodeAngle(theta)
		if math.Abs(got-p) > 1e-9 {
			t.Fatalf("round trip failed for p=%v: got %v", p, got)
		}
	}
	// exact bounds
	for _, p := range []float64{probFloor, probCeil} {
		if got := DecodeAngle(EncodeAngle(p)); math.Abs(got-p) > 1e-9 {
			t.Fatalf("round trip failed at bound p=%v: got %v", p, got)
		}
	}
}

func TestEncodeAngleClamping(t *testing.T) {
	if got, want := EncodeAngle(0), EncodeAngle(probFloor); got != want {
		t.Fatalf("p=0 must clamp to floor: got %v want %v", got, want)
	}
	if got, want := EncodeAngle(1), EncodeAngle(probCeil); got != want {
		t.Fatalf("p=1 must clamp to ceiling: got %v want %v", got, want)
	}
	if got, want := EncodeAngle(-5), EncodeAngle(probFloor); got != want {
		t.Fatalf("negative input must clamp to floor: got %v want %v", got, want)
	}
	if got, want := EncodeAngle(7), EncodeAngle(probCeil); got != want {
		t.Fatalf("input > 1 must clamp to ceiling: got %v want %v", got, want)
	}
}

func TestEncodeAngleNonFinite(t *testing.T) {
	want := EncodeAngle(0)
	for _, p := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		got := EncodeAngle(p)
		if math.IsNaN(got) {
			t.Fatalf("angle must be finite for input %v", p)
		}
		if got != want {
			t.Fatalf("non-finite input treated as p=0: got %v want %v", got, want)
		}
	}
}
