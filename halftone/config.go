package halftone

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// DitherMode selects how cell values are requantized before rendering.
type DitherMode int

// Available dithering strategies.
const (
	DitherNone DitherMode = iota
	DitherFloydSteinberg
	DitherOrdered
	DitherNoise
)

var ditherNames = [...]string{
	DitherNone:           "None",
	DitherFloydSteinberg: "FloydSteinberg",
	DitherOrdered:        "Ordered",
	DitherNoise:          "Noise",
}

// ditherAliases maps lowercase names accepted by ParseDitherMode.
var ditherAliases = map[string]DitherMode{
	"none":           DitherNone,
	"off":            DitherNone,
	"floydsteinberg": DitherFloydSteinberg,
	"floyd":          DitherFloydSteinberg,
	"fs":             DitherFloydSteinberg,
	"ordered":        DitherOrdered,
	"bayer":          DitherOrdered,
	"noise":          DitherNoise,
	"random":         DitherNoise,
}

func (m DitherMode) String() string {
	if m < 0 || int(m) >= len(ditherNames) {
		return fmt.Sprintf("DitherMode(%d)", int(m))
	}
	return ditherNames[m]
}

// Valid reports whether m is one of the known modes.
func (m DitherMode) Valid() bool {
	return m >= DitherNone && m <= DitherNoise
}

// ParseDitherMode parses a dither mode name. Matching ignores case, dashes
// and underscores. Unknown names produce an INVALID_CONFIG error that
// suggests the closest known name.
func ParseDitherMode(s string) (DitherMode, error) {
	key := strings.ToLower(s)
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	if m, ok := ditherAliases[key]; ok {
		return m, nil
	}

	aliases := make([]string, 0, len(ditherAliases))
	for a := range ditherAliases {
		aliases = append(aliases, a)
	}
	sort.Strings(aliases)

	best, score := "", len(key)
	for _, a := range aliases {
		d := levenshtein.DistanceForStrings([]rune(key), []rune(a), levenshtein.DefaultOptions)
		if d < score {
			best, score = a, d
		}
	}
	if best != "" && score <= 2 {
		return DitherNone, New(ErrCodeInvalidConfig, "unknown dither mode %q (did you mean %q?)", s, ditherAliases[best].String())
	}
	return DitherNone, New(ErrCodeInvalidConfig, "unknown dither mode %q (must be one of: %s)", s, strings.Join(ditherNames[:], ", "))
}

// Default parameter values.
const (
	DefaultCellSize   = 5
	DefaultBrightness = 20
	DefaultContrast   = 0
	DefaultGamma      = 1.0
	DefaultSmoothing  = 0
	DefaultScale      = 1
)

// Config is the immutable parameter bundle for one pipeline run.
type Config struct {
	// CellSize is the edge of a cell in preview pixels, before scaling.
	CellSize int `json:"cell_size"`

	// Brightness is added to every adjusted luminance value.
	Brightness float64 `json:"brightness"`

	// Contrast lies strictly between -255 and 255.
	Contrast float64 `json:"contrast"`

	// Gamma is the exponent of the tone curve; it must be positive.
	Gamma float64 `json:"gamma"`

	// Smoothing is the number of box blur passes. Fractional values blend
	// the blurred grid with the original one.
	Smoothing float64 `json:"smoothing"`

	Dither DitherMode `json:"dither"`

	// Scale supersamples both the working resolution and the cell size.
	Scale int `json:"scale"`
}

// DefaultConfig returns the default parameters.
func DefaultConfig() Config {
	return Config{
		CellSize:   DefaultCellSize,
		Brightness: DefaultBrightness,
		Contrast:   DefaultContrast,
		Gamma:      DefaultGamma,
		Smoothing:  DefaultSmoothing,
		Dither:     DitherNone,
		Scale:      DefaultScale,
	}
}

// EffectiveCellSize returns the cell edge in working-resolution pixels.
func (c Config) EffectiveCellSize() int {
	return c.CellSize * c.Scale
}

// Validate checks every precondition of the pipeline. Values are never
// clamped: a bad value is reported so the caller can fix it.
func (c Config) Validate() error {
	if c.CellSize <= 0 {
		return New(ErrCodeInvalidConfig, "cell size must be positive, got %d", c.CellSize)
	}
	if c.Scale <= 0 {
		return New(ErrCodeInvalidConfig, "scale factor must be positive, got %d", c.Scale)
	}
	if math.IsNaN(c.Gamma) || math.IsInf(c.Gamma, 0) || c.Gamma <= 0 {
		return New(ErrCodeInvalidConfig, "gamma must be positive, got %v", c.Gamma)
	}
	if math.IsNaN(c.Contrast) || c.Contrast <= -255 || c.Contrast >= 255 {
		return New(ErrCodeInvalidConfig, "contrast must be strictly between -255 and 255, got %v", c.Contrast)
	}
	if math.IsNaN(c.Brightness) || math.IsInf(c.Brightness, 0) {
		return New(ErrCodeInvalidConfig, "brightness must be finite, got %v", c.Brightness)
	}
	if math.IsNaN(c.Smoothing) || math.IsInf(c.Smoothing, 0) || c.Smoothing < 0 {
		return New(ErrCodeInvalidConfig, "smoothing must be a finite value >= 0, got %v", c.Smoothing)
	}
	if !c.Dither.Valid() {
		return New(ErrCodeInvalidConfig, "unknown dither mode %v", c.Dither)
	}
	return nil
}

func (c Config) String() string {
	return fmt.Sprintf("cell=%d brightness=%g contrast=%g gamma=%g smoothing=%g dither=%v scale=%d",
		c.CellSize, c.Brightness, c.Contrast, c.Gamma, c.Smoothing, c.Dither, c.Scale)
}
