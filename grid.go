package fractals

// Sample builds the n×n grid of points linearly spaced over r, both ends inclusive.
// Entry (i,j) is complex(x_j, y_i).
//
// Inputs are not validated: n == 1 yields the single point (Xmin, Ymin),
// n <= 0 an empty grid and inverted bounds a descending axis.
func Sample(r Region, n int) Grid {
	if n <= 0 {
		return Grid{}
	}

	xs := linspace(r.Xmin, r.Xmax, n)
	ys := linspace(r.Ymin, r.Ymax, n)

	points := make([]complex128, n*n)
	for i, y := range ys {
		row := points[i*n : (i+1)*n]
		for j, x := range xs {
			row[j] = complex(x, y)
		}
	}
	return Grid{N: n, Points: points}
}

// linspace returns n evenly spaced values from start to stop.
// The last value is pinned to stop so the grid edge is exact.
func linspace(start, stop float64, n int) []float64 {
	vals := make([]float64, n)
	if n == 1 {
		vals[0] = start
		return vals
	}
	step := (stop - start) / float64(n-1)
	for i := range vals {
		vals[i] = start + float64(i)*step
	}
	vals[n-1] = stop
	return vals
}
