package analysis

import (
	"math"
	"testing"
)

func TestPowerSpectrumLength(t *testing.T) {
	data := make([]float64, 50) // pads to 64
	ps := PowerSpectrum(data)
	if len(ps) != 32 {
		t.Errorf("spectrum length = %d, want 32", len(ps))
	}

	if PowerSpectrum(nil) != nil {
		t.Error("empty input should give nil spectrum")
	}
}

func TestPowerSpectrumPeak(t *testing.T) {
	// pure cosine with 8 full periods over 64 samples -> peak at bin 8
	n := 64
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Cos(2 * math.Pi * 8 * float64(i) / float64(n))
	}

	ps := PowerSpectrum(data)

	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > ps[maxIdx] {
			maxIdx = i
		}
	}
	if maxIdx != 8 {
		t.Errorf("peak at bin %d, want 8", maxIdx)
	}
}

func TestDominantFrequency(t *testing.T) {
	// 8 periods over 64 samples at dt=0.1: f = 8/(64*0.1) = 1.25
	n := 64
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Cos(2 * math.Pi * 8 * float64(i) / float64(n))
	}

	ps := PowerSpectrum(data)
	got := DominantFrequency(ps, 0.1)
	if math.Abs(got-1.25) > 1e-12 {
		t.Errorf("dominant frequency = %v, want 1.25", got)
	}
}

func TestDominantFrequencyDegenerate(t *testing.T) {
	if DominantFrequency(nil, 0.1) != 0 {
		t.Error("nil spectrum should give 0")
	}
	if DominantFrequency([]float64{1, 0, 0}, 0) != 0 {
		t.Error("zero dt should give 0")
	}
	if DominantFrequency([]float64{5, 0, 0, 0}, 0.1) != 0 {
		t.Error("flat spectrum should give 0")
	}
}
