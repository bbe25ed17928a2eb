package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ArnaudCalmettes/dotscreen/halftone"
	"github.com/ArnaudCalmettes/dotscreen/imp"
	"github.com/ArnaudCalmettes/dotscreen/input"
	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	"github.com/remeh/sizedwaitgroup"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// renderOpts holds the flags of the render command that don't go through
// viper.
type renderOpts struct {
	output string // output file (single input) or directory
	format string // output format when output is a directory
	width  int    // preview width, 0 keeps the image width
	height int    // preview height, 0 keeps the image height
}

// job is one input file and the file it renders to.
type job struct {
	in  string
	out string
}

var rOpts = renderOpts{format: "png"}

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render <image>...",
	Short: "Render images as halftones",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viper.GetViper()
		c, err := halftoneConfig(v)
		if err != nil {
			return err
		}
		mode, filter, err := renderSettings(v)
		if err != nil {
			return err
		}
		jobs, err := planJobs(args, rOpts.output, rOpts.format)
		if err != nil {
			return err
		}
		r := &fileRenderer{
			config: c,
			mode:   mode,
			filter: filter,
			width:  rOpts.width,
			height: rOpts.height,
			logger: loggerFromContext(cmd.Context()),
		}
		return r.renderAll(cmd.Context(), jobs, v.GetInt(keyWorkers))
	},
}

// knownFormats lists the output extensions render accepts.
var knownFormats = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "gif": true,
	"bmp": true, "tif": true, "tiff": true, "svg": true,
}

func outputExt(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// planJobs decides where every input is written. Without output, files are
// written next to their input. A single input may target a file; otherwise
// output is a directory.
func planJobs(inputs []string, output, format string) ([]job, error) {
	format = strings.ToLower(format)
	if !knownFormats[format] {
		return nil, fmt.Errorf("invalid format: %s (must be one of png, jpg, gif, bmp, tiff, svg)", format)
	}

	name := func(in string) string {
		base := filepath.Base(in)
		return strings.TrimSuffix(base, filepath.Ext(base)) + "_halftone." + format
	}

	jobs := make([]job, 0, len(inputs))
	switch {
	case output == "":
		for _, in := range inputs {
			jobs = append(jobs, job{in: in, out: filepath.Join(filepath.Dir(in), name(in))})
		}
	case len(inputs) == 1 && knownFormats[outputExt(output)]:
		jobs = append(jobs, job{in: inputs[0], out: output})
	default:
		if ext := outputExt(output); ext != "" && knownFormats[ext] {
			return nil, fmt.Errorf("%s: several inputs need an output directory", output)
		}
		seen := make(map[string]string, len(inputs))
		for _, in := range inputs {
			out := filepath.Join(output, name(in))
			if prev, ok := seen[out]; ok {
				return nil, fmt.Errorf("%s and %s would both be written to %s", prev, in, out)
			}
			seen[out] = in
			jobs = append(jobs, job{in: in, out: out})
		}
	}
	return jobs, nil
}

type fileRenderer struct {
	config halftone.Config
	mode   imp.RasterMode
	filter imaging.ResampleFilter
	width  int
	height int
	logger *log.Logger
}

// renderAll renders jobs with at most workers files in flight. Every job
// runs its own pipeline; failures are collected and returned together.
func (r *fileRenderer) renderAll(ctx context.Context, jobs []job, workers int) error {
	if workers < 1 {
		workers = 1
	}
	start := time.Now()
	swg := sizedwaitgroup.New(workers)
	var mu sync.Mutex
	var errs []error

	for _, j := range jobs {
		swg.Add()
		go func(j job) {
			defer swg.Done()
			if err := r.render(ctx, j); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", j.in, err))
				mu.Unlock()
			}
		}(j)
	}
	swg.Wait()

	r.logger.Infof("Rendered %d/%d images (%s)", len(jobs)-len(errs), len(jobs), time.Since(start).Round(time.Millisecond))
	return errors.Join(errs...)
}

func (r *fileRenderer) render(ctx context.Context, j job) error {
	img, err := imp.ReadFile(j.in)
	if err != nil {
		return err
	}
	src := &input.ImageSource{Image: img, Filter: r.filter}
	frame, err := input.Capture(ctx, src, r.width, r.height, r.config.Scale)
	if err != nil {
		return err
	}
	res, err := halftone.Run(frame, r.config, halftone.WithLogger(r.logger))
	if err != nil {
		return err
	}

	if dir := filepath.Dir(j.out); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := imp.Save(j.out, res, r.mode); err != nil {
		return err
	}

	size := "?"
	if fi, err := os.Stat(j.out); err == nil {
		size = humanize.Bytes(uint64(fi.Size()))
	}
	r.logger.Info("Wrote", "file", j.out, "canvas", fmt.Sprintf("%dx%d", res.Width, res.Height),
		"cells", res.Grid.Len(), "dots", len(res.Dots), "size", size)
	return nil
}

func init() {
	rootCmd.AddCommand(renderCmd)

	f := renderCmd.Flags()
	f.StringVarP(&rOpts.output, "output", "o", "", "output file (single input) or directory")
	f.StringVarP(&rOpts.format, "format", "f", rOpts.format, "output format when writing to a directory: png, jpg, gif, bmp, tiff, svg")
	f.IntVar(&rOpts.width, "width", 0, "preview width (default: image width)")
	f.IntVar(&rOpts.height, "height", 0, "preview height (default: image height)")

	d := halftone.DefaultConfig()
	f.Int("cell", d.CellSize, "cell size in preview pixels")
	f.Float64("brightness", d.Brightness, "brightness offset")
	f.Float64("contrast", d.Contrast, "contrast, strictly between -255 and 255")
	f.Float64("gamma", d.Gamma, "gamma, > 0")
	f.Float64("smoothing", d.Smoothing, "box blur strength (passes, may be fractional)")
	f.String("dither", d.Dither.String(), "dithering: None, FloydSteinberg, Ordered, Noise")
	f.Int("scale", d.Scale, "supersampling factor")
	f.String("raster", imp.Smooth.String(), "rasterization: smooth, mono, hard")
	f.String("filter", "linear", "resampling filter: nearest, box, linear, catmullrom, lanczos")
	f.Int("workers", 4, "images rendered concurrently")

	for key, flag := range map[string]string{
		keyCellSize:   "cell",
		keyBrightness: "brightness",
		keyContrast:   "contrast",
		keyGamma:      "gamma",
		keySmoothing:  "smoothing",
		keyDither:     "dither",
		keyScale:      "scale",
		keyRaster:     "raster",
		keyFilter:     "filter",
		keyWorkers:    "workers",
	} {
		viper.BindPFlag(key, f.Lookup(flag))
	}
}
