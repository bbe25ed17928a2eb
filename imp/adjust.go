package imp

import (
	"errors"
	"image"
)

// Threshold performs simple binarization of a grayscale image. src and dst
// may be the same image.
func Threshold(src, dst *image.Gray, level uint8) error {
	if src.Bounds() != dst.Bounds() {
		return errors.New("src and dst should have the same bounds")
	}

	rect := src.Bounds()
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if src.GrayAt(x, y).Y < level {
				dst.SetGray(x, y, Black)
			} else {
				dst.SetGray(x, y, White)
			}
		}
	}
	return nil
}
