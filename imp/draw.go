package imp

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/ArnaudCalmettes/dotscreen/halftone"
	"github.com/fogleman/gg"
)

// RasterMode selects how dots are rasterized.
type RasterMode int

const (
	// Smooth draws anti-aliased dots.
	Smooth RasterMode = iota

	// Mono draws anti-aliased dots, then thresholds to pure black and white.
	Mono

	// Hard fills every pixel whose center is inside a dot.
	Hard
)

var rasterNames = map[string]RasterMode{
	"smooth": Smooth,
	"mono":   Mono,
	"hard":   Hard,
}

func (m RasterMode) String() string {
	for name, v := range rasterNames {
		if v == m {
			return name
		}
	}
	return fmt.Sprintf("RasterMode(%d)", int(m))
}

// ParseRasterMode parses "smooth", "mono" or "hard".
func ParseRasterMode(s string) (RasterMode, error) {
	if m, ok := rasterNames[strings.ToLower(s)]; ok {
		return m, nil
	}
	return Smooth, fmt.Errorf("invalid raster mode %q (must be 'smooth', 'mono' or 'hard')", s)
}

// Raster renders res on a white canvas of res.Width x res.Height.
func Raster(res *halftone.Result, mode RasterMode) image.Image {
	switch mode {
	case Hard:
		return Stamp(res)
	case Mono:
		gray := ToGray(Draw(res))
		Threshold(gray, gray, 128)
		return gray
	}
	return Draw(res)
}

// Draw renders res with anti-aliased dots.
func Draw(res *halftone.Result) image.Image {
	dc := gg.NewContext(res.Width, res.Height)
	dc.SetColor(color.White)
	dc.Clear()
	if len(res.Dots) == 0 {
		return dc.Image()
	}
	dc.SetColor(color.Black)
	for _, d := range res.Dots {
		dc.DrawCircle(d.X, d.Y, d.R)
	}
	dc.Fill()
	return dc.Image()
}
