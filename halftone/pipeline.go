package halftone

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
)

// Frame is a captured RGBA pixel buffer: Width*Height*4 bytes, row-major,
// top-left origin. The pipeline never modifies it.
type Frame struct {
	Pix    []byte
	Width  int
	Height int
}

// Result is the output of one pipeline run.
type Result struct {
	// Width and Height are the canvas dimensions in pixels.
	Width  int
	Height int

	// CellSize is the effective cell edge (CellSize*Scale).
	CellSize int

	// Grid holds the final cell values after smoothing and dithering.
	Grid Grid

	// Dots lists the circles to draw on a white canvas.
	Dots []Dot
}

// Empty reports whether the result has no cells, as happens for zero-area
// frames.
func (r *Result) Empty() bool {
	return r.Grid.Len() == 0
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the logger used for debug traces.
func WithLogger(l *log.Logger) Option {
	return func(p *Processor) { p.logger = l }
}

// WithNoise sets the noise source used by DitherNoise. A shared source makes
// the Processor unsafe for concurrent use unless the source is.
func WithNoise(src NoiseSource) Option {
	return func(p *Processor) { p.noise = src }
}

// Processor runs the halftone pipeline:
// grayscale -> aggregate -> smooth -> dither -> dots.
type Processor struct {
	logger *log.Logger
	noise  NoiseSource
}

// NewProcessor creates a Processor. Without WithNoise, every run draws
// noise from its own freshly seeded generator.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return p
}

// Run is shorthand for NewProcessor(opts...).Run(f, c).
func Run(f Frame, c Config, opts ...Option) (*Result, error) {
	return NewProcessor(opts...).Run(f, c)
}

// Run converts f into a dot list. Configuration and buffer size errors are
// reported before anything is allocated. A zero-area frame is not an error:
// it yields an empty result.
func (p *Processor) Run(f Frame, c Config) (*Result, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if f.Width < 0 || f.Height < 0 {
		return nil, New(ErrCodeInvalidInput, "negative frame size %dx%d", f.Width, f.Height)
	}
	if want := f.Width * f.Height * 4; len(f.Pix) != want {
		return nil, New(ErrCodeInvalidInput, "frame %dx%d needs %d bytes, got %d", f.Width, f.Height, want, len(f.Pix))
	}

	cell := c.EffectiveCellSize()
	res := &Result{Width: f.Width, Height: f.Height, CellSize: cell}
	if f.Width == 0 || f.Height == 0 {
		p.logger.Debug("empty frame, nothing to render")
		return res, nil
	}

	start := time.Now()
	field := Grayscale(f.Pix, f.Width, f.Height, c)
	grid := Aggregate(field, cell)
	p.logger.Debug("aggregated", "cols", grid.Cols, "rows", grid.Rows, "cell", cell)

	grid = Smooth(grid, c.Smoothing)
	grid = Dither(grid, c.Dither, p.noiseSource(c.Dither))

	res.Grid = grid
	res.Dots = Dots(grid, cell)
	p.logger.Debug("halftone done", "dots", len(res.Dots), "cells", grid.Len(), "elapsed", time.Since(start))
	return res, nil
}

func (p *Processor) noiseSource(mode DitherMode) NoiseSource {
	if mode != DitherNoise {
		return nil
	}
	if p.noise != nil {
		return p.noise
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
