package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"topoplot-renderer/internal/geom"
)

// Canvas is the render target for one topoplot. Pixels are NRGBA; a
// fully transparent white background lets the output composite cleanly
// over whatever a viewer puts behind it.
type Canvas struct {
	Img    *image.NRGBA
	Center geom.Point
}

// New allocates a square canvas sized 2.5x the head radius, the margin
// needed for the nose and ears plus pasted images near the rim.
func New(headRadiusPx int) *Canvas {
	size := int(2.5 * float64(headRadiusPx))
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
		img.Pix[i+1] = 255
		img.Pix[i+2] = 255
		img.Pix[i+3] = 0
	}
	half := size / 2
	return &Canvas{
		Img:    img,
		Center: geom.Point{X: float64(half), Y: float64(half)},
	}
}

// Transparent is the background and ring-interior fill.
var Transparent = color.NRGBA{R: 255, G: 255, B: 255, A: 0}

// Size returns the canvas edge length in pixels.
func (c *Canvas) Size() int {
	return c.Img.Bounds().Dx()
}

// SetPixel assigns a pixel directly, replacing alpha. Out-of-bounds
// coordinates are ignored.
func (c *Canvas) SetPixel(x, y int, col color.NRGBA) {
	if !(image.Point{X: x, Y: y}).In(c.Img.Bounds()) {
		return
	}
	i := c.Img.PixOffset(x, y)
	c.Img.Pix[i] = col.R
	c.Img.Pix[i+1] = col.G
	c.Img.Pix[i+2] = col.B
	c.Img.Pix[i+3] = col.A
}

// FillDisk draws a filled circle of the given radius centered at 'at'.
func (c *Canvas) FillDisk(at geom.Point, radius float64, col color.NRGBA) {
	if radius <= 0 {
		return
	}
	x0 := int(math.Floor(at.X - radius))
	x1 := int(math.Ceil(at.X + radius))
	y0 := int(math.Floor(at.Y - radius))
	y1 := int(math.Ceil(at.Y + radius))
	rr := radius * radius
	for py := y0; py <= y1; py++ {
		dy := float64(py) + 0.5 - at.Y
		for px := x0; px <= x1; px++ {
			dx := float64(px) + 0.5 - at.X
			if dx*dx+dy*dy <= rr {
				c.SetPixel(px, py, col)
			}
		}
	}
}

// Ring draws an annulus: a filled disk of the outline color with a
// transparent disk punched out at radius-thickness. Thickness at or
// beyond the radius leaves nothing to punch, so the ring degenerates to
// a full disk.
func (c *Canvas) Ring(at geom.Point, radius float64, thickness int, col color.NRGBA) {
	if thickness < 1 {
		thickness = 1
	}
	c.FillDisk(at, radius, col)
	if inner := radius - float64(thickness); inner > 0 {
		c.FillDisk(at, inner, Transparent)
	}
}

// Line draws a straight segment between a and b with a square pen of the
// given width. Endpoints are truncated to pixel coordinates.
func (c *Canvas) Line(a, b geom.Point, width int, col color.NRGBA) {
	if width < 1 {
		width = 1
	}
	x1, y1 := int(a.X), int(a.Y)
	x2, y2 := int(b.X), int(b.Y)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	for {
		c.stamp(x1, y1, width, col)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func (c *Canvas) stamp(x, y, width int, col color.NRGBA) {
	half := width / 2
	for oy := -half; oy < width-half; oy++ {
		for ox := -half; ox < width-half; ox++ {
			c.SetPixel(x+ox, y+oy, col)
		}
	}
}

// PasteCentered alpha-composites src onto the canvas so its center lands
// at 'at', with the point and the half-size both truncated to ints.
func (c *Canvas) PasteCentered(src *image.NRGBA, at geom.Point) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	x0 := int(at.X) - w/2
	y0 := int(at.Y) - h/2
	dst := image.Rect(x0, y0, x0+w, y0+h)
	draw.Draw(c.Img, dst, src, b.Min, draw.Over)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
