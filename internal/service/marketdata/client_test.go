package marketdata

import (
	"math"
	"testing"
)

func TestPctChange(t *testing.T) {
	closes := []float64{100, 101, 99.99, 102}
	got := PctChange(closes)
	want := []float64{0.01, 99.99/101 - 1, 102/99.99 - 1}
	if len(got) != len(want) {
		t.Fatalf("expected %d returns, got %d", len(want), len(got))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("return %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestPctChangeShortSeries(t *testing.T) {
	if got := PctChange(nil); got != nil {
		t.Fatalf("expected nil for empty closes, got %v", got)
	}
	if got := PctChange([]float64{100}); got != nil {
		t.Fatalf("a single close has no return, got %v", got)
	}
}

func TestPctChangeSkipsBadBase(t *testing.T) {
	closes := []float64{100, 0, 50, 55}
	got := PctChange(closes)
	// 0 -> 50 is skipped (zero base); 100 -> 0 gives -1; 50 -> 55 gives 0.1.
	want := []float64{-1, 0.1}
	if len(got) != len(want) {
		t.Fatalf("expected %d returns, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("return %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}
