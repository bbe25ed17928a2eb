package halftone

import (
	"bytes"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
)

// plain disables every adjustment so cell values equal raw luminance.
func plain() Config {
	return Config{CellSize: 5, Brightness: 0, Contrast: 0, Gamma: 1, Smoothing: 0, Dither: DitherNone, Scale: 1}
}

func TestRunWhiteImage(t *testing.T) {
	f := Frame{Pix: rgba(10, 10, 255, 255, 255), Width: 10, Height: 10}
	res, err := Run(f, plain())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := Grid{Cols: 2, Rows: 2, Cells: []float64{255, 255, 255, 255}}
	if diff := cmp.Diff(want, res.Grid); diff != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", diff)
	}
	if len(res.Dots) != 0 {
		t.Errorf("got %d dots, want none", len(res.Dots))
	}
}

func TestRunBlackImage(t *testing.T) {
	f := Frame{Pix: rgba(10, 10, 0, 0, 0), Width: 10, Height: 10}
	res, err := Run(f, plain())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := []Dot{
		{X: 2.5, Y: 2.5, R: 2.5},
		{X: 7.5, Y: 2.5, R: 2.5},
		{X: 2.5, Y: 7.5, R: 2.5},
		{X: 7.5, Y: 7.5, R: 2.5},
	}
	if diff := cmp.Diff(want, res.Dots); diff != "" {
		t.Errorf("dots mismatch (-want +got):\n%s", diff)
	}
	if res.Width != 10 || res.Height != 10 || res.CellSize != 5 {
		t.Errorf("canvas = %dx%d cell %d, want 10x10 cell 5", res.Width, res.Height, res.CellSize)
	}
}

func TestRunGridDimensions(t *testing.T) {
	tests := []struct {
		w, h, cell, scale int
		cols, rows        int
	}{
		{100, 100, 5, 1, 20, 20},
		{100, 60, 5, 2, 10, 6},
		{23, 9, 4, 1, 6, 3},
		{10, 10, 5, 2, 1, 1},
	}

	for _, tt := range tests {
		c := plain()
		c.CellSize, c.Scale = tt.cell, tt.scale
		res, err := Run(Frame{Pix: rgba(tt.w, tt.h, 90, 90, 90), Width: tt.w, Height: tt.h}, c)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if res.Grid.Cols != tt.cols || res.Grid.Rows != tt.rows {
			t.Errorf("%dx%d cell %d scale %d: grid %dx%d, want %dx%d",
				tt.w, tt.h, tt.cell, tt.scale, res.Grid.Cols, res.Grid.Rows, tt.cols, tt.rows)
		}
		if res.Grid.Len() != res.Grid.Cols*res.Grid.Rows {
			t.Errorf("grid length %d != %d*%d", res.Grid.Len(), res.Grid.Cols, res.Grid.Rows)
		}
		if res.CellSize != tt.cell*tt.scale {
			t.Errorf("CellSize = %d, want %d", res.CellSize, tt.cell*tt.scale)
		}
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	f := Frame{Pix: rgba(2, 2, 0, 0, 0), Width: 2, Height: 2}
	for _, mutate := range []func(*Config){
		func(c *Config) { c.Gamma = 0 },
		func(c *Config) { c.Contrast = 255 },
		func(c *Config) { c.Contrast = -255 },
		func(c *Config) { c.CellSize = 0 },
		func(c *Config) { c.Scale = 0 },
	} {
		c := plain()
		mutate(&c)
		res, err := Run(f, c)
		if !Is(err, ErrCodeInvalidConfig) {
			t.Errorf("Run(%v) error = %v, want %s", c, err, ErrCodeInvalidConfig)
		}
		if res != nil {
			t.Errorf("Run(%v) returned a result alongside an error", c)
		}
	}
}

func TestRunRejectsBadBuffer(t *testing.T) {
	tests := []Frame{
		{Pix: make([]byte, 15), Width: 2, Height: 2},
		{Pix: make([]byte, 16), Width: 4, Height: 2},
		{Pix: nil, Width: -1, Height: 2},
	}
	for _, f := range tests {
		if _, err := Run(f, plain()); !Is(err, ErrCodeInvalidInput) {
			t.Errorf("Run(%dx%d, %d bytes) error = %v, want %s", f.Width, f.Height, len(f.Pix), err, ErrCodeInvalidInput)
		}
	}
}

func TestRunConfigErrorBeforeInputError(t *testing.T) {
	c := plain()
	c.Gamma = 0
	_, err := Run(Frame{Pix: make([]byte, 3), Width: 1, Height: 1}, c)
	if !Is(err, ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want %s", err, ErrCodeInvalidConfig)
	}
}

func TestRunZeroArea(t *testing.T) {
	for _, f := range []Frame{{Width: 0, Height: 10}, {Width: 10, Height: 0}, {}} {
		res, err := Run(f, plain())
		if err != nil {
			t.Fatalf("Run(%dx%d) error = %v", f.Width, f.Height, err)
		}
		if !res.Empty() || len(res.Dots) != 0 {
			t.Errorf("Run(%dx%d) = %+v, want empty result", f.Width, f.Height, res)
		}
	}
}

func TestRunNoiseWithInjectedSource(t *testing.T) {
	c := plain()
	c.Dither = DitherNoise
	f := Frame{Pix: rgba(10, 10, 128, 128, 128), Width: 10, Height: 10}

	run := func() *Result {
		res, err := Run(f, c, WithNoise(rand.New(rand.NewPCG(11, 12))))
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		return res
	}
	a, b := run(), run()
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("seeded noise runs differ (-a +b):\n%s", diff)
	}
	assertBinary(t, a.Grid)
}

func TestRunSmoothingAndDithering(t *testing.T) {
	// Left half black, right half white: smoothing pulls the boundary cells
	// toward gray, Floyd-Steinberg brings them back to 0/255.
	const w, h = 20, 10
	pix := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := w / 2; x < w; x++ {
			i := (y*w + x) * 4
			pix[i], pix[i+1], pix[i+2] = 255, 255, 255
		}
	}
	c := plain()
	c.Smoothing = 1
	res, err := Run(Frame{Pix: pix, Width: w, Height: h}, c)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if v := res.Grid.At(1, 0); v <= 0 || v >= 255 {
		t.Errorf("smoothed boundary cell = %v, want strictly between 0 and 255", v)
	}

	c.Dither = DitherFloydSteinberg
	res, err = Run(Frame{Pix: pix, Width: w, Height: h}, c)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	assertBinary(t, res.Grid)
}

func TestRunDoesNotModifyFrame(t *testing.T) {
	pix := rgba(6, 6, 10, 200, 30)
	orig := bytes.Clone(pix)
	c := plain()
	c.Smoothing, c.Dither = 1.5, DitherFloydSteinberg
	if _, err := Run(Frame{Pix: pix, Width: 6, Height: 6}, c); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !bytes.Equal(pix, orig) {
		t.Error("Run() modified the input frame")
	}
}

func TestRunConcurrent(t *testing.T) {
	f := Frame{Pix: rgba(40, 40, 70, 80, 90), Width: 40, Height: 40}
	c := plain()
	c.Dither = DitherOrdered
	want, err := Run(f, c)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var wg sync.WaitGroup
	p := NewProcessor()
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := p.Run(f, c)
			if err != nil {
				t.Errorf("Run() error = %v", err)
				return
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("concurrent run mismatch (-want +got):\n%s", diff)
			}
		}()
	}
	wg.Wait()
}

func TestRunLogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	f := Frame{Pix: rgba(10, 10, 0, 0, 0), Width: 10, Height: 10}
	if _, err := Run(f, plain(), WithLogger(logger)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(buf.String(), "halftone done") {
		t.Errorf("debug log missing, got %q", buf.String())
	}
}
