// Package compose places per-electrode content on the canvas: a marker
// disk at every location, optional name labels, and the supplied images
// pasted centered on their projected points.
package compose

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"topoplot-renderer/internal/assets"
	"topoplot-renderer/internal/canvas"
	"topoplot-renderer/internal/geom"
	"topoplot-renderer/internal/positions"
)

// MarkerRadius is the electrode dot radius in pixels.
const MarkerRadius = 10

// labelGap separates a label's baseline from the marker edge.
const labelGap = 8

var markerColor = color.NRGBA{A: 255}

// Options controls one compositing pass.
type Options struct {
	HeadRadiusPx int
	Scale        float64 // image scale factor; 1 means no scaling
	Crop         []int   // [left, top, right, bottom] margins; empty means no crop
	DrawLabels   bool
}

// Composite draws markers (and labels) for every location, then pastes
// the images paired with locations by list position. The zip is lenient:
// when fewer images than locations are given only the overlapping prefix
// is pasted, and extra images are ignored.
func Composite(c *canvas.Canvas, recs []positions.Record, imagePaths []string, opts Options) error {
	for _, rec := range recs {
		pt := electrodePoint(rec, opts.HeadRadiusPx, c.Center)
		c.FillDisk(pt, MarkerRadius, markerColor)
		if opts.DrawLabels && rec.Name != "" {
			drawLabel(c, rec.Name, pt)
		}
	}

	n := len(recs)
	if len(imagePaths) < n {
		n = len(imagePaths)
	}
	for i := 0; i < n; i++ {
		img, err := assets.Load(imagePaths[i])
		if err != nil {
			return fmt.Errorf("electrode %d: %w", i, err)
		}
		if len(opts.Crop) == 4 {
			img, err = assets.Crop(img, opts.Crop[0], opts.Crop[1], opts.Crop[2], opts.Crop[3])
			if err != nil {
				return fmt.Errorf("electrode %d: %w", i, err)
			}
		}
		if opts.Scale != 1 {
			img, err = assets.Scale(img, opts.Scale)
			if err != nil {
				return fmt.Errorf("electrode %d: %w", i, err)
			}
		}
		c.PasteCentered(img, electrodePoint(recs[i], opts.HeadRadiusPx, c.Center))
	}
	return nil
}

func electrodePoint(rec positions.Record, headRadiusPx int, center geom.Point) geom.Point {
	r := geom.ElectrodeRadius(float64(headRadiusPx), rec.Radius, rec.Phi)
	return geom.Project(rec.Theta, r, center)
}

func drawLabel(c *canvas.Canvas, text string, at geom.Point) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Round()
	d := &font.Drawer{
		Dst:  c.Img,
		Src:  image.NewUniform(markerColor),
		Face: face,
		Dot:  fixed.P(int(at.X)-width/2, int(at.Y)+MarkerRadius+labelGap+face.Ascent),
	}
	d.DrawString(text)
}
