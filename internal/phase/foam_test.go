package phase

import (
	"math"
	"math/rand"
	"testing"
)

func TestChiralityBias(t *testing.T) {
	tests := []struct {
		name     string
		delta    float64
		expected float64
	}{
		{"symmetric", 0, 0.5},
		{"fully right", 1, 1.0},
		{"fully left", -1, 0.0},
		{"tiny imbalance", 1e-8, 0.5 + 5e-9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ChiralityBias(tt.delta)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.expected) > 1e-15 {
				t.Errorf("ChiralityBias(%v) = %v, want %v", tt.delta, got, tt.expected)
			}
		})
	}
}

func TestChiralityBias_OutOfRange(t *testing.T) {
	for _, delta := range []float64{1.5, -1.1} {
		if _, err := ChiralityBias(delta); err == nil {
			t.Errorf("ChiralityBias(%v): expected error, got nil", delta)
		}
	}
}

func TestFoamShape(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := DefaultFoamParams()
	p.Size = 8
	p.Strings = 5

	f, err := Foam(rng, p)
	if err != nil {
		t.Fatalf("Foam failed: %v", err)
	}
	if f.Side() != 8 {
		t.Errorf("side = %d, want 8", f.Side())
	}
	if f.Volume() != 512 {
		t.Errorf("volume = %d, want 512", f.Volume())
	}
	if !f.IsFinite() {
		t.Error("foam field contains NaN/Inf")
	}
}

func TestFoamZeroStrings(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := DefaultFoamParams()
	p.Size = 6
	p.Strings = 0

	f, err := Foam(rng, p)
	if err != nil {
		t.Fatalf("Foam failed: %v", err)
	}
	if f.Sum() != 0 {
		t.Errorf("empty foam sum = %v, want 0", f.Sum())
	}
}

func TestFoamFullBiasIsPositive(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := DefaultFoamParams()
	p.Size = 10
	p.Strings = 20
	p.DeltaChi = 1 // every segment right-handed

	f, err := Foam(rng, p)
	if err != nil {
		t.Fatalf("Foam failed: %v", err)
	}
	if f.Sum() <= 0 {
		t.Errorf("fully biased foam sum = %v, want > 0", f.Sum())
	}
	for _, v := range f.Raw() {
		if v < 0 {
			t.Fatal("fully right-handed foam has a negative cell")
		}
	}
}

func TestFoamValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name   string
		mutate func(*FoamParams)
	}{
		{"zero size", func(p *FoamParams) { p.Size = 0 }},
		{"negative size", func(p *FoamParams) { p.Size = -3 }},
		{"asymmetry too large", func(p *FoamParams) { p.DeltaChi = 2 }},
		{"zero sigma", func(p *FoamParams) { p.Sigma = 0 }},
		{"one sample", func(p *FoamParams) { p.Samples = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultFoamParams()
			tt.mutate(&p)
			if _, err := Foam(rng, p); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestFoamReproducible(t *testing.T) {
	p := DefaultFoamParams()
	p.Size = 8
	p.Strings = 10

	f1, err := Foam(rand.New(rand.NewSource(42)), p)
	if err != nil {
		t.Fatal(err)
	}
	f2, err := Foam(rand.New(rand.NewSource(42)), p)
	if err != nil {
		t.Fatal(err)
	}

	a, b := f1.Raw(), f2.Raw()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("cell %d differs between identical seeded runs", i)
		}
	}
}

func TestClampRange(t *testing.T) {
	tests := []struct {
		center, reach float64
		size          int
		lo, hi        int
	}{
		{10, 3, 20, 7, 14},
		{1, 3, 20, 0, 5},    // truncated at lower boundary
		{18.5, 3, 20, 15, 20}, // truncated at upper boundary
		{10, 3, 8, 7, 8},
	}

	for _, tt := range tests {
		lo, hi := clampRange(tt.center, tt.reach, tt.size)
		if lo != tt.lo || hi != tt.hi {
			t.Errorf("clampRange(%v, %v, %d) = [%d,%d), want [%d,%d)",
				tt.center, tt.reach, tt.size, lo, hi, tt.lo, tt.hi)
		}
	}
}
