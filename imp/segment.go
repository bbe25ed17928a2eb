package imp

import (
	"image"
	"image/color"
	"math"

	"github.com/ArnaudCalmettes/dotscreen/halftone"
)

var (
	Black = color.Gray{0}
	White = color.Gray{255}
)

// Stamp renders res with hard edges: a pixel is black when its center lies
// inside a dot.
func Stamp(res *halftone.Result) *image.Gray {
	dst := blank(res.Width, res.Height)
	for _, d := range res.Dots {
		x0 := max(int(math.Floor(d.X-d.R)), 0)
		x1 := min(int(math.Ceil(d.X+d.R)), res.Width)
		y0 := max(int(math.Floor(d.Y-d.R)), 0)
		y1 := min(int(math.Ceil(d.Y+d.R)), res.Height)
		r2 := d.R * d.R
		for y := y0; y < y1; y++ {
			dy := float64(y) + 0.5 - d.Y
			for x := x0; x < x1; x++ {
				dx := float64(x) + 0.5 - d.X
				if dx*dx+dy*dy <= r2 {
					dst.SetGray(x, y, Black)
				}
			}
		}
	}
	return dst
}

func blank(w, h int) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, w, h))
	for i := range dst.Pix {
		dst.Pix[i] = White.Y
	}
	return dst
}
