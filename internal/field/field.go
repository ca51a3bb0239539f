package field

import "math"

// Field is a dense cubic lattice of vorticity values, stored flat in
// row-major order (x slowest, z fastest).
type Field struct {
	side int
	data []float64
}

// New returns a zeroed side³ field. side must be positive; callers
// validate their grid size before constructing.
func New(side int) *Field {
	return &Field{
		side: side,
		data: make([]float64, side*side*side),
	}
}

func (f *Field) Side() int   { return f.side }
func (f *Field) Volume() int { return len(f.data) }

func (f *Field) index(i, j, k int) int {
	return (i*f.side+j)*f.side + k
}

func (f *Field) At(i, j, k int) float64 {
	return f.data[f.index(i, j, k)]
}

func (f *Field) Set(i, j, k int, v float64) {
	f.data[f.index(i, j, k)] = v
}

func (f *Field) Add(i, j, k int, v float64) {
	f.data[f.index(i, j, k)] += v
}

// Sum returns the aggregate value over all cells (the net angular
// momentum proxy L).
func (f *Field) Sum() float64 {
	sum := 0.0
	for _, v := range f.data {
		sum += v
	}
	return sum
}

func (f *Field) Clone() *Field {
	c := New(f.side)
	copy(c.data, f.data)
	return c
}

func (f *Field) IsFinite() bool {
	for _, v := range f.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Raw exposes the backing slice for bulk operations. Mutations through
// the returned slice are visible in the field.
func (f *Field) Raw() []float64 {
	return f.data
}

// SliceZ extracts the 2D plane at depth z as rows[i][j].
func (f *Field) SliceZ(z int) [][]float64 {
	rows := make([][]float64, f.side)
	for i := 0; i < f.side; i++ {
		rows[i] = make([]float64, f.side)
		for j := 0; j < f.side; j++ {
			rows[i][j] = f.At(i, j, z)
		}
	}
	return rows
}
