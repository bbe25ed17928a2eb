package imp

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ArnaudCalmettes/dotscreen/halftone"
	"github.com/disintegration/imaging"
)

// ReadFile reads an image from a file.
func ReadFile(filename string) (image.Image, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f)
}

// ReadBytes reads an image from raw bytes.
func ReadBytes(data []byte) (image.Image, error) {
	return Read(bytes.NewReader(data))
}

// Read reads an image from a io.Reader, applying EXIF orientation.
func Read(r io.Reader) (image.Image, error) {
	return imaging.Decode(r, imaging.AutoOrientation(true))
}

// IsSVG reports whether filename asks for vector output.
func IsSVG(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".svg")
}

// Encode writes res to w in the given format ("svg", "png", "jpg", "gif",
// "bmp" or "tiff").
func Encode(w io.Writer, res *halftone.Result, format string, mode RasterMode) error {
	if strings.EqualFold(format, "svg") {
		return WriteSVG(w, res)
	}
	f, err := imaging.FormatFromExtension(format)
	if err != nil {
		return fmt.Errorf("unknown format %q: %w", format, err)
	}
	return imaging.Encode(w, Raster(res, mode), f, imaging.JPEGQuality(100))
}

// Save creates a file and writes res to it. Image format is decided based
// upon its extension.
func Save(filename string, res *halftone.Result, mode RasterMode) error {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		return fmt.Errorf("missing extension in %q", filename)
	}
	if !IsSVG(filename) {
		if _, err := imaging.FormatFromExtension(ext); err != nil {
			return fmt.Errorf("unknown extension %q: %w", ext, err)
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := Encode(f, res, ext, mode); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
