package input

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/ArnaudCalmettes/dotscreen/halftone"
	"github.com/ArnaudCalmettes/dotscreen/imp"
	"github.com/disintegration/imaging"
)

// A Source supplies frames on demand. A static image and the current frame
// of a stream look the same once captured.
type Source interface {
	// Size returns the natural size of the source.
	Size() (width, height int)

	// Frame captures the source resampled to width x height.
	Frame(ctx context.Context, width, height int) (halftone.Frame, error)
}

// filters lists the resampling filters accepted by ParseFilter.
var filters = map[string]imaging.ResampleFilter{
	"nearest":    imaging.NearestNeighbor,
	"box":        imaging.Box,
	"linear":     imaging.Linear,
	"catmullrom": imaging.CatmullRom,
	"lanczos":    imaging.Lanczos,
}

// ParseFilter returns the resampling filter with the given name.
func ParseFilter(name string) (imaging.ResampleFilter, error) {
	if f, ok := filters[strings.ToLower(name)]; ok {
		return f, nil
	}
	return imaging.ResampleFilter{}, fmt.Errorf("unknown resampling filter %q", name)
}

// ImageSource captures frames from a still image.
type ImageSource struct {
	Image  image.Image
	Filter imaging.ResampleFilter
}

// NewImageSource creates a source for img using bilinear resampling.
func NewImageSource(img image.Image) *ImageSource {
	return &ImageSource{Image: img, Filter: imaging.Linear}
}

// Size returns the image dimensions.
func (s *ImageSource) Size() (int, int) {
	b := s.Image.Bounds()
	return b.Dx(), b.Dy()
}

// Frame returns the image resampled to width x height. A zero-area request
// yields an empty frame.
func (s *ImageSource) Frame(ctx context.Context, width, height int) (halftone.Frame, error) {
	if err := ctx.Err(); err != nil {
		return halftone.Frame{}, err
	}
	if width <= 0 || height <= 0 {
		return halftone.Frame{}, nil
	}
	w, h := s.Size()
	if w == width && h == height {
		return imp.ToFrame(s.Image), nil
	}
	return imp.ToFrame(imaging.Resize(s.Image, width, height, s.Filter)), nil
}

// Capture grabs a frame at preview size times scale, the working
// resolution of the pipeline. A zero preview dimension means the natural
// size of the source.
func Capture(ctx context.Context, src Source, width, height, scale int) (halftone.Frame, error) {
	if scale <= 0 {
		return halftone.Frame{}, halftone.New(halftone.ErrCodeInvalidConfig, "scale factor must be positive, got %d", scale)
	}
	nw, nh := src.Size()
	if width <= 0 {
		width = nw
	}
	if height <= 0 {
		height = nh
	}
	return src.Frame(ctx, width*scale, height*scale)
}
