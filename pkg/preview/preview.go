// Package preview derives size and quality constrained renditions of stored images.
package preview

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	DefaultWidth   = 2000
	DefaultHeight  = 2000
	DefaultQuality = 100

	// MaxPixels is the largest source image Render decodes.
	MaxPixels = 40_000_000
)

var (
	ErrInvalidDimensions = errors.New("preview dimensions must be positive")
	ErrImageTooLarge     = errors.New("image exceeds the preview pixel limit")
)

type Options struct {
	Width   int
	Height  int
	Quality int
}

// Normalize fills zero fields with defaults, caps the box at the default size
// and clamps quality to 1..100.
func (o Options) Normalize() Options {
	if o.Width == 0 || o.Width > DefaultWidth {
		o.Width = DefaultWidth
	}
	if o.Height == 0 || o.Height > DefaultHeight {
		o.Height = DefaultHeight
	}
	if o.Quality <= 0 || o.Quality > 100 {
		o.Quality = DefaultQuality
	}
	return o
}

// Render decodes src, scales it down to fit inside Width x Height keeping the
// aspect ratio, and writes it to dst as JPEG. Smaller images are not upscaled.
// Sources declaring more than MaxPixels are refused before decoding.
func Render(dst io.Writer, src io.Reader, opts Options) error {
	opts = opts.Normalize()
	if opts.Width < 0 || opts.Height < 0 {
		return ErrInvalidDimensions
	}

	var header bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(src, &header))
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return ErrImageTooLarge
	}

	img, _, err := image.Decode(io.MultiReader(&header, src))
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := Fit(bounds.Dx(), bounds.Dy(), opts.Width, opts.Height)

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == bounds.Dx() && h == bounds.Dy() {
		draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(out, out.Bounds(), img, bounds, draw.Src, nil)
	}

	if err := jpeg.Encode(dst, out, &jpeg.Options{Quality: opts.Quality}); err != nil {
		return fmt.Errorf("failed to encode preview: %w", err)
	}
	return nil
}

// Fit returns the largest size with the source aspect ratio inside maxW x maxH.
func Fit(srcW, srcH, maxW, maxH int) (int, int) {
	if srcW <= maxW && srcH <= maxH {
		return srcW, srcH
	}
	w, h := maxW, srcH*maxW/srcW
	if h > maxH {
		w, h = srcW*maxH/srcH, maxH
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
