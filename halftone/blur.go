package halftone

import "math"

// BoxBlur returns a new grid where every cell is the mean of itself and its
// in-bounds neighbors. Edge cells average over fewer values.
func BoxBlur(g Grid) Grid {
	out := NewGrid(g.Cols, g.Rows)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			var sum float64
			var count int
			for r := max(row-1, 0); r <= min(row+1, g.Rows-1); r++ {
				for c := max(col-1, 0); c <= min(col+1, g.Cols-1); c++ {
					sum += g.At(c, r)
					count++
				}
			}
			out.Set(col, row, sum/float64(count))
		}
	}
	return out
}

// Smooth applies floor(strength) box blur passes. A fractional remainder
// blends the original grid with the blurred one:
//
//	result = original*(1-frac) + blurred*frac
//
// A strength <= 0 returns g untouched.
func Smooth(g Grid, strength float64) Grid {
	if strength <= 0 {
		return g
	}
	passes := math.Floor(strength)
	frac := strength - passes

	blurred := g
	for p := 0; p < int(passes); p++ {
		blurred = BoxBlur(blurred)
	}
	if frac == 0 {
		return blurred
	}

	out := NewGrid(g.Cols, g.Rows)
	for i, v := range g.Cells {
		out.Cells[i] = v*(1-frac) + blurred.Cells[i]*frac
	}
	return out
}
