package halftone

// threshold is the binarization level for error diffusion and noise.
const threshold = 128

// noiseAmplitude is the total width of the uniform noise band.
const noiseAmplitude = 50

// bayer2 is the 2x2 ordered dithering matrix.
var bayer2 = [2][2]float64{
	{0, 2},
	{3, 1},
}

// NoiseSource supplies uniform values in [0, 1). *rand.Rand satisfies it.
type NoiseSource interface {
	Float64() float64
}

// Dither requantizes g in place according to mode and returns it. The noise
// source is only consulted in DitherNoise mode and must be non-nil then.
func Dither(g Grid, mode DitherMode, noise NoiseSource) Grid {
	switch mode {
	case DitherFloydSteinberg:
		return FloydSteinberg(g)
	case DitherOrdered:
		return Ordered(g)
	case DitherNoise:
		return Noise(g, noise)
	}
	return g
}

func binarize(v float64) float64 {
	if v < threshold {
		return 0
	}
	return 255
}

// FloydSteinberg binarizes g at 128 in row-major order, diffusing the
// quantization error to unvisited neighbors with weights 7/16 (east),
// 3/16 (south-west), 5/16 (south) and 1/16 (south-east).
func FloydSteinberg(g Grid) Grid {
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			old := g.At(col, row)
			v := binarize(old)
			g.Set(col, row, v)
			diffuse(g, col+1, row, (old-v)*7/16)
			diffuse(g, col-1, row+1, (old-v)*3/16)
			diffuse(g, col, row+1, (old-v)*5/16)
			diffuse(g, col+1, row+1, (old-v)*1/16)
		}
	}
	return g
}

func diffuse(g Grid, col, row int, e float64) {
	if col < 0 || col >= g.Cols || row >= g.Rows {
		return
	}
	g.Cells[row*g.Cols+col] += e
}

// Ordered binarizes g against the position-dependent thresholds of a 2x2
// Bayer matrix.
func Ordered(g Grid) Grid {
	const n = len(bayer2)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			t := (bayer2[row%n][col%n] + 0.5) * (255.0 / float64(n*n))
			if g.At(col, row) < t {
				g.Set(col, row, 0)
			} else {
				g.Set(col, row, 255)
			}
		}
	}
	return g
}

// Noise adds uniform noise in [-25, 25) to every cell and binarizes at 128.
func Noise(g Grid, noise NoiseSource) Grid {
	for i, v := range g.Cells {
		n := (noise.Float64() - 0.5) * noiseAmplitude
		g.Cells[i] = binarize(v + n)
	}
	return g
}
