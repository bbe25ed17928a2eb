package cmd

import (
	"fmt"

	"github.com/ArnaudCalmettes/dotscreen/halftone"
	"github.com/ArnaudCalmettes/dotscreen/imp"
	"github.com/ArnaudCalmettes/dotscreen/input"
	"github.com/disintegration/imaging"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	keyCellSize   = "halftone.cell_size"
	keyBrightness = "halftone.brightness"
	keyContrast   = "halftone.contrast"
	keyGamma      = "halftone.gamma"
	keySmoothing  = "halftone.smoothing"
	keyDither     = "halftone.dither"
	keyScale      = "halftone.scale"
	keyRaster     = "render.raster"
	keyFilter     = "render.filter"
	keyWorkers    = "render.workers"
	keyToken      = "bot.token"
	keyPrefix     = "bot.prefix"
	keyMaxPixels  = "bot.max_pixels"
)

func setDefaults(v *viper.Viper) {
	d := halftone.DefaultConfig()
	v.SetDefault(keyCellSize, d.CellSize)
	v.SetDefault(keyBrightness, d.Brightness)
	v.SetDefault(keyContrast, d.Contrast)
	v.SetDefault(keyGamma, d.Gamma)
	v.SetDefault(keySmoothing, d.Smoothing)
	v.SetDefault(keyDither, d.Dither.String())
	v.SetDefault(keyScale, d.Scale)
	v.SetDefault(keyRaster, imp.Smooth.String())
	v.SetDefault(keyFilter, "linear")
	v.SetDefault(keyWorkers, 4)
	v.SetDefault(keyPrefix, ".")
}

// halftoneConfig resolves the halftone parameters from v. The returned
// value is validated.
func halftoneConfig(v *viper.Viper) (halftone.Config, error) {
	dither, err := halftone.ParseDitherMode(v.GetString(keyDither))
	if err != nil {
		return halftone.Config{}, err
	}
	c := halftone.Config{
		CellSize:   v.GetInt(keyCellSize),
		Brightness: v.GetFloat64(keyBrightness),
		Contrast:   v.GetFloat64(keyContrast),
		Gamma:      v.GetFloat64(keyGamma),
		Smoothing:  v.GetFloat64(keySmoothing),
		Dither:     dither,
		Scale:      v.GetInt(keyScale),
	}
	if err := c.Validate(); err != nil {
		return halftone.Config{}, err
	}
	return c, nil
}

// renderSettings resolves the rasterization settings from v.
func renderSettings(v *viper.Viper) (imp.RasterMode, imaging.ResampleFilter, error) {
	mode, err := imp.ParseRasterMode(v.GetString(keyRaster))
	if err != nil {
		return mode, imaging.ResampleFilter{}, err
	}
	filter, err := input.ParseFilter(v.GetString(keyFilter))
	if err != nil {
		return mode, filter, fmt.Errorf("%s: %w", keyFilter, err)
	}
	return mode, filter, nil
}
