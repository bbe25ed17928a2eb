package halftone

import "math"

// Perceptual luminance weights.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// Field holds one luminance value per source pixel, row-major.
type Field struct {
	Width  int
	Height int
	Pix    []float64
}

// At returns the luminance of pixel (x, y).
func (f Field) At(x, y int) float64 {
	return f.Pix[y*f.Width+x]
}

// ContrastFactor converts a contrast setting into the multiplicative factor
// applied around mid-gray. It is only defined for contrast in (-255, 255).
func ContrastFactor(contrast float64) float64 {
	return (259 * (contrast + 255)) / (255 * (259 - contrast))
}

// Luminance maps one RGB sample to a tone-adjusted gray level in [0, 255].
func Luminance(r, g, b uint8, brightness, factor, gamma float64) float64 {
	v := lumaR*float64(r) + lumaG*float64(g) + lumaB*float64(b)
	v = factor*(v-128) + 128 + brightness
	v = clamp(v)
	return 255 * math.Pow(v/255, 1/gamma)
}

// Grayscale converts an RGBA buffer into a luminance field, applying the
// brightness, contrast and gamma settings of c. Alpha is ignored.
// pix must hold width*height*4 bytes.
func Grayscale(pix []byte, width, height int, c Config) Field {
	f := Field{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height),
	}
	factor := ContrastFactor(c.Contrast)
	for i := range f.Pix {
		p := pix[i*4 : i*4+3 : i*4+3]
		f.Pix[i] = Luminance(p[0], p[1], p[2], c.Brightness, factor, c.Gamma)
	}
	return f
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
