package geom

import (
	"math"
	"testing"
)

func TestDistToSegment(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{10, 0, 0}

	tests := []struct {
		name     string
		p        Vec3
		expected float64
	}{
		{"at endpoint a", Vec3{0, 0, 0}, 0},
		{"at endpoint b", Vec3{10, 0, 0}, 0},
		{"on interior", Vec3{5, 0, 0}, 0},
		{"above midpoint", Vec3{5, 3, 0}, 3},
		{"beyond a on line", Vec3{-4, 0, 0}, 4},
		{"beyond b on line", Vec3{13, 0, 0}, 3},
		{"beyond b off line", Vec3{13, 4, 0}, 5},
		{"off axis", Vec3{5, 3, 4}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistToSegment(tt.p, a, b)
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("DistToSegment(%v) = %v, want %v", tt.p, got, tt.expected)
			}
		})
	}
}

func TestDistToSegment_ZeroLength(t *testing.T) {
	a := Vec3{1, 2, 3}
	p := Vec3{4, 6, 3}

	got := DistToSegment(p, a, a)
	if math.Abs(got-5.0) > 1e-12 {
		t.Errorf("degenerate segment: got %v, want 5", got)
	}
	if math.IsNaN(got) {
		t.Error("degenerate segment produced NaN")
	}
}

func TestLerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{2, 4, 6}

	mid := Lerp(a, b, 0.5)
	if mid.X != 1 || mid.Y != 2 || mid.Z != 3 {
		t.Errorf("Lerp midpoint failed: got %v", mid)
	}

	if Lerp(a, b, 0) != a {
		t.Error("Lerp(0) should return a")
	}
	if Lerp(a, b, 1) != b {
		t.Error("Lerp(1) should return b")
	}
}

func TestVec3_Norm(t *testing.T) {
	tests := []struct {
		v        Vec3
		expected float64
	}{
		{Vec3{3, 4, 0}, 5},
		{Vec3{1, 0, 0}, 1},
		{Vec3{0, 0, 0}, 0},
		{Vec3{2, 3, 6}, 7},
	}

	for _, tt := range tests {
		if got := tt.v.Norm(); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Norm(%v) = %v, want %v", tt.v, got, tt.expected)
		}
	}
}
