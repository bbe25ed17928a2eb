package halftone

// minRadius is the smallest radius worth drawing.
const minRadius = 0.5

// Dot is a filled black circle in canvas coordinates.
type Dot struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	R float64 `json:"r"`
}

// Radius maps a cell value to a dot radius for the given cell edge. The
// value is clamped to [0, 255]: 0 yields cell/2 and 255 yields 0.
func Radius(value float64, cell int) float64 {
	maxRadius := float64(cell) / 2
	return maxRadius * (1 - clamp(value)/255)
}

// Dots lists the circles to draw for g, one per cell at most, in row-major
// order. Circles with a radius of 0.5 or less are skipped.
func Dots(g Grid, cell int) []Dot {
	dots := make([]Dot, 0, g.Len())
	half := float64(cell) / 2
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			r := Radius(g.At(col, row), cell)
			if r <= minRadius {
				continue
			}
			dots = append(dots, Dot{
				X: float64(col*cell) + half,
				Y: float64(row*cell) + half,
				R: r,
			})
		}
	}
	return dots
}
