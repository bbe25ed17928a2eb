package halftone

// Grid holds one brightness value per cell, row-major. Values are nominally
// in [0, 255] but may leave that range while error diffusion is running.
type Grid struct {
	Cols  int
	Rows  int
	Cells []float64
}

// NewGrid allocates a zeroed grid.
func NewGrid(cols, rows int) Grid {
	return Grid{Cols: cols, Rows: rows, Cells: make([]float64, cols*rows)}
}

// At returns the value of cell (col, row).
func (g Grid) At(col, row int) float64 {
	return g.Cells[row*g.Cols+col]
}

// Set stores the value of cell (col, row).
func (g Grid) Set(col, row int, v float64) {
	g.Cells[row*g.Cols+col] = v
}

// Len returns the number of cells.
func (g Grid) Len() int {
	return len(g.Cells)
}

// Clone returns a deep copy of g.
func (g Grid) Clone() Grid {
	c := Grid{Cols: g.Cols, Rows: g.Rows, Cells: make([]float64, len(g.Cells))}
	copy(c.Cells, g.Cells)
	return c
}

// GridSize returns the number of columns and rows needed to cover a
// width x height field with cells of the given edge.
func GridSize(width, height, cell int) (cols, rows int) {
	if cell <= 0 || width <= 0 || height <= 0 {
		return 0, 0
	}
	return (width + cell - 1) / cell, (height + cell - 1) / cell
}

// Aggregate partitions f into cell x cell squares anchored at the top-left
// corner and reduces each one to the mean of its samples. Cells on the right
// and bottom edges are clipped to the field.
func Aggregate(f Field, cell int) Grid {
	cols, rows := GridSize(f.Width, f.Height, cell)
	g := NewGrid(cols, rows)
	for row := 0; row < rows; row++ {
		y0 := row * cell
		y1 := min(y0+cell, f.Height)
		for col := 0; col < cols; col++ {
			x0 := col * cell
			x1 := min(x0+cell, f.Width)
			var sum float64
			for y := y0; y < y1; y++ {
				for _, v := range f.Pix[y*f.Width+x0 : y*f.Width+x1] {
					sum += v
				}
			}
			g.Set(col, row, sum/float64((x1-x0)*(y1-y0)))
		}
	}
	return g
}
