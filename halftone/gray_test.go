package halftone

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func rgba(w, h int, r, g, b uint8) []byte {
	pix := make([]byte, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = r, g, b, 255
	}
	return pix
}

func TestContrastFactor(t *testing.T) {
	if k := ContrastFactor(0); k != 1 {
		t.Errorf("ContrastFactor(0) = %v, want 1", k)
	}
	if k := ContrastFactor(128); k <= 1 {
		t.Errorf("ContrastFactor(128) = %v, want > 1", k)
	}
	if k := ContrastFactor(-128); k >= 1 || k <= 0 {
		t.Errorf("ContrastFactor(-128) = %v, want in (0, 1)", k)
	}
}

func TestGrayscaleWeights(t *testing.T) {
	c := Config{Gamma: 1}
	pix := []byte{
		255, 0, 0, 255,
		0, 255, 0, 0,
		0, 0, 255, 128,
	}
	f := Grayscale(pix, 3, 1, c)
	want := []float64{0.299 * 255, 0.587 * 255, 0.114 * 255}
	if diff := cmp.Diff(want, f.Pix, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Grayscale() mismatch (-want +got):\n%s", diff)
	}
}

func TestGrayscaleBrightnessClamps(t *testing.T) {
	f := Grayscale(rgba(2, 2, 250, 250, 250), 2, 2, Config{Brightness: 20, Gamma: 1})
	for i, v := range f.Pix {
		if v != 255 {
			t.Errorf("pixel %d = %v, want 255", i, v)
		}
	}
}

func TestGrayscaleGamma(t *testing.T) {
	f := Grayscale(rgba(1, 1, 64, 64, 64), 1, 1, Config{Gamma: 2})
	// 64 -> 255 * sqrt(64/255)
	want := 127.7497553813705
	if diff := cmp.Diff(want, f.At(0, 0), cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("gamma mismatch (-want +got):\n%s", diff)
	}
}

func TestGrayscaleRange(t *testing.T) {
	configs := []Config{
		{Gamma: 1},
		{Gamma: 0.1, Brightness: 200, Contrast: 254},
		{Gamma: 10, Brightness: -300, Contrast: -254},
		{Gamma: 2.2, Brightness: 20, Contrast: 100},
	}
	var pix []byte
	for v := 0; v < 256; v += 5 {
		pix = append(pix, uint8(v), uint8(255-v), uint8(v/2), 255)
	}
	n := len(pix) / 4

	for _, c := range configs {
		f := Grayscale(pix, n, 1, c)
		for i, v := range f.Pix {
			if v < 0 || v > 255 {
				t.Errorf("config %v: pixel %d = %v, out of [0,255]", c, i, v)
			}
		}
	}
}
