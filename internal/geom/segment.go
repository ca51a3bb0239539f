package geom

import "math"

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Lerp returns a + t*(b-a).
func Lerp(a, b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Scale(t))
}

// DistToSegment returns the distance from p to the closest point on the
// closed segment ab. The projection is clamped to [0,1] so points beyond
// either endpoint measure against that endpoint, not the infinite line.
// A zero-length segment measures against a directly.
func DistToSegment(p, a, b Vec3) float64 {
	ab := b.Sub(a)
	ap := p.Sub(a)

	den := ab.Dot(ab)
	if den == 0 {
		return ap.Norm()
	}

	t := ap.Dot(ab) / den
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	closest := a.Add(ab.Scale(t))
	return p.Sub(closest).Norm()
}
