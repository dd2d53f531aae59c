// Package pipeline runs one topoplot render end to end: positions in,
// one raster file out.
package pipeline

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"

	"topoplot-renderer/internal/canvas"
	"topoplot-renderer/internal/compose"
	"topoplot-renderer/internal/head"
	"topoplot-renderer/internal/positions"
)

// Config holds all parameters for one render run.
type Config struct {
	HeadRadiusPx int
	PositionFile string
	ImageFiles   []string
	Convention   positions.Convention
	OutputFile   string

	ScaleImages float64 // 1 means no scaling
	CropImages  []int   // [left, top, right, bottom] or empty
	LineWidth   int     // head outline width; 0 means default 5
	DrawLabels  bool
}

// DefaultLineWidth is the head outline thickness when none is configured.
const DefaultLineWidth = 5

type encodeFunc func(w io.Writer, img *image.NRGBA) error

// Run executes the render stages in order: parse positions, allocate the
// canvas, draw head landmarks, composite markers and images, encode. Any
// stage failure aborts the run; the output file is only created after
// all drawing succeeded, so a failed run leaves no partial output.
func Run(cfg Config) (string, error) {
	if cfg.HeadRadiusPx <= 0 {
		return "", fmt.Errorf("pipeline: head radius must be positive, got %d", cfg.HeadRadiusPx)
	}
	if cfg.ScaleImages <= 0 {
		return "", fmt.Errorf("pipeline: image scale must be positive, got %v", cfg.ScaleImages)
	}
	if n := len(cfg.CropImages); n != 0 && n != 4 {
		return "", fmt.Errorf("pipeline: crop margins need 4 values [L T R D], got %d", n)
	}
	encode, err := encoderFor(cfg.OutputFile)
	if err != nil {
		return "", err
	}
	lineWidth := cfg.LineWidth
	if lineWidth <= 0 {
		lineWidth = DefaultLineWidth
	}

	recs, err := positions.ParseFile(cfg.PositionFile, cfg.Convention)
	if err != nil {
		return "", err
	}

	c := canvas.New(cfg.HeadRadiusPx)
	head.Draw(c, cfg.HeadRadiusPx, c.Center, lineWidth)

	err = compose.Composite(c, recs, cfg.ImageFiles, compose.Options{
		HeadRadiusPx: cfg.HeadRadiusPx,
		Scale:        cfg.ScaleImages,
		Crop:         cfg.CropImages,
		DrawLabels:   cfg.DrawLabels,
	})
	if err != nil {
		return "", err
	}

	f, err := os.Create(cfg.OutputFile)
	if err != nil {
		return "", fmt.Errorf("pipeline: create %s: %w", cfg.OutputFile, err)
	}
	if err := encode(f, c.Img); err != nil {
		f.Close()
		os.Remove(cfg.OutputFile)
		return "", fmt.Errorf("pipeline: encode %s: %w", cfg.OutputFile, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(cfg.OutputFile)
		return "", fmt.Errorf("pipeline: close %s: %w", cfg.OutputFile, err)
	}
	return cfg.OutputFile, nil
}

// encoderFor picks the output encoder from the file extension. Resolved
// before any parsing or drawing so a bad output path fails fast.
func encoderFor(path string) (encodeFunc, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return func(w io.Writer, img *image.NRGBA) error {
			return png.Encode(w, img)
		}, nil
	case ".webp":
		return func(w io.Writer, img *image.NRGBA) error {
			return nativewebp.Encode(w, img, nil)
		}, nil
	case ".jpg", ".jpeg":
		// JPEG carries no alpha channel: flatten onto opaque white.
		return func(w io.Writer, img *image.NRGBA) error {
			return jpeg.Encode(w, flattenWhite(img), &jpeg.Options{Quality: 90})
		}, nil
	}
	return nil, fmt.Errorf("pipeline: unsupported output extension %q (want .png, .webp, .jpg)", filepath.Ext(path))
}

func flattenWhite(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	flat := image.NewNRGBA(b)
	draw.Draw(flat, b, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, b, img, b.Min, draw.Over)
	return flat
}
