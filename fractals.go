// Package fractals computes escape-time divergence matrices for the Julia
// and Mandelbrot sets over a rectangular region of the complex plane.
package fractals

// Region of the complex plane sampled by a computation.
// Real axis spans Xmin..Xmax, imaginary axis Ymin..Ymax.
type Region struct {
	Xmin float64 `json:"xmin"`
	Xmax float64 `json:"xmax"`
	Ymin float64 `json:"ymin"`
	Ymax float64 `json:"ymax"`
}

// Grid is an n×n row-major matrix of sample points.
// Row index follows the imaginary axis, column index the real axis.
type Grid struct {
	N      int
	Points []complex128
}

// At returns the sample point at row i, column j.
func (g Grid) At(i, j int) complex128 {
	return g.Points[i*g.N+j]
}

// DivergenceMatrix is an n×n row-major matrix of first-divergence iterations.
// Entries equal to Cap never escaped.
type DivergenceMatrix struct {
	N      int
	Cap    int
	Counts []int
}

// At returns the divergence iteration at row i, column j.
func (m DivergenceMatrix) At(i, j int) int {
	return m.Counts[i*m.N+j]
}

// Row returns row i as a slice sharing the matrix storage.
func (m DivergenceMatrix) Row(i int) []int {
	return m.Counts[i*m.N : (i+1)*m.N]
}

// Bounds returns the smallest and largest entry. An empty matrix reports (0, 0).
func (m DivergenceMatrix) Bounds() (lo, hi int) {
	if len(m.Counts) == 0 {
		return 0, 0
	}
	lo, hi = m.Counts[0], m.Counts[0]
	for _, v := range m.Counts[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
