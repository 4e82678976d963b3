package fractals

import "math/cmplx"

// Escape radius. A point is diverged once |z| >= escapeRadius.
const escapeRadius = 2

// Julia computes the divergence matrix of z ← z² + c where every sample
// point of r is its own starting iterate.
func Julia(c complex128, r Region, n, k int) DivergenceMatrix {
	g := Sample(r, n)
	z := g.Points // the grid is consumed as the iterate
	return escape(z, func(int) complex128 { return c }, g.N, k)
}

// Mandelbrot computes the divergence matrix of z ← z² + p where p is the
// sample point and z starts at zero for every point.
func Mandelbrot(r Region, n int, k int) DivergenceMatrix {
	g := Sample(r, n)
	z := make([]complex128, len(g.Points))
	return escape(z, func(idx int) complex128 { return g.Points[idx] }, g.N, k)
}

// escape runs k iterations over z in place.
//
// Each iteration updates only points still inside the escape radius, then
// records the iteration index for every point that is outside it for the
// first time. Points that never escape end at k.
func escape(z []complex128, addend func(idx int) complex128, n, k int) DivergenceMatrix {
	counts := make([]int, len(z))
	recorded := make([]bool, len(z))

	for i := 0; i < k; i++ {
		for idx, v := range z {
			// points outside the radius stay frozen
			if cmplx.Abs(v) < escapeRadius {
				v = v*v + addend(idx)
				z[idx] = v
			}
			if !recorded[idx] && cmplx.Abs(v) >= escapeRadius {
				counts[idx] = i
				recorded[idx] = true
			}
		}
	}

	for idx := range counts {
		if !recorded[idx] {
			counts[idx] = k
		}
	}

	return DivergenceMatrix{N: n, Cap: k, Counts: counts}
}
