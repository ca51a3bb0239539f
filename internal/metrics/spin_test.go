package metrics

import (
	"math"
	"testing"
)

func TestLambda(t *testing.T) {
	tests := []struct {
		name     string
		netL     float64
		volume   int
		expected float64
	}{
		{"zero momentum", 0, 1000, 0},
		{"unit ratio", 1000, 1000, 0.04},
		{"sign independent", -1000, 1000, 0.04},
		{"eighth ratio", 125, 1000, 0.02},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lambda(tt.netL, tt.volume)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Lambda(%v, %d) = %v, want %v", tt.netL, tt.volume, got, tt.expected)
			}
		})
	}
}

func TestLambdaZeroVolume(t *testing.T) {
	for _, v := range []int{0, -8} {
		if _, err := Lambda(1.0, v); err == nil {
			t.Errorf("volume %d: expected error, got nil", v)
		}
	}
}

func TestLambdaMonotoneInAbsL(t *testing.T) {
	const volume = 512000
	prev := -1.0
	for _, l := range []float64{0, 0.5, 1, 10, 1e4, 1e8} {
		lam, err := Lambda(l, volume)
		if err != nil {
			t.Fatal(err)
		}
		if lam < prev {
			t.Fatalf("lambda decreased at |L|=%v", l)
		}
		prev = lam
	}
}

func TestVPeakCalibration(t *testing.T) {
	if got := VPeak(0.04); math.Abs(got-220) > 1e-12 {
		t.Errorf("VPeak(0.04) = %v, want 220", got)
	}
	if got := VPeak(0); got != 0 {
		t.Errorf("VPeak(0) = %v, want 0", got)
	}
	if got := VPeak(0.08); math.Abs(got-440) > 1e-12 {
		t.Errorf("VPeak(0.08) = %v, want 440", got)
	}
}

func TestHelicity(t *testing.T) {
	tests := []struct {
		netL     float64
		expected string
	}{
		{1.5, "+"},
		{-0.1, "-"},
		{0, "-"},
	}

	for _, tt := range tests {
		if got := Helicity(tt.netL); got != tt.expected {
			t.Errorf("Helicity(%v) = %q, want %q", tt.netL, got, tt.expected)
		}
	}
}

func TestMeanStd(t *testing.T) {
	xs := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	if got := Mean(xs); math.Abs(got-5) > 1e-12 {
		t.Errorf("Mean = %v, want 5", got)
	}
	if got := Std(xs); math.Abs(got-2) > 1e-12 {
		t.Errorf("Std = %v, want 2", got)
	}

	if Mean(nil) != 0 || Std(nil) != 0 {
		t.Error("empty input should reduce to 0")
	}
}
