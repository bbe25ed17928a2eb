// Package halftone turns RGBA frames into halftone dot patterns.
//
// A run goes through five stages, each owning the cell grid during its turn:
//
//  1. Grayscale: luminance with brightness, contrast and gamma applied.
//  2. Aggregate: mean brightness per cell of CellSize*Scale pixels.
//  3. Smooth: optional 3x3 box blur passes, fractional strengths blend.
//  4. Dither: None, FloydSteinberg, Ordered (2x2 Bayer) or Noise.
//  5. Dots: one black circle per cell, radius growing with darkness.
//
// Basic usage:
//
//	res, err := halftone.Run(frame, halftone.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	for _, d := range res.Dots {
//	    // fill circle (d.X, d.Y, d.R)
//	}
//
// The package does no IO. Invalid configurations are rejected with an
// INVALID_CONFIG error; zero-area frames produce an empty Result.
package halftone
