package canvas

import (
	"image"
	"image/color"
	"testing"

	"topoplot-renderer/internal/geom"
)

var black = color.NRGBA{A: 255}

func TestNewSizeAndBackground(t *testing.T) {
	c := New(1000)
	if got := c.Size(); got != 2500 {
		t.Fatalf("size = %d, want 2500", got)
	}
	if c.Center.X != 1250 || c.Center.Y != 1250 {
		t.Errorf("center = %+v, want (1250, 1250)", c.Center)
	}
	r, g, b, a := nrgbaAt(c, 0, 0)
	if r != 255 || g != 255 || b != 255 || a != 0 {
		t.Errorf("background = (%d,%d,%d,%d), want transparent white", r, g, b, a)
	}
}

func TestFillDisk(t *testing.T) {
	c := New(40) // 100x100
	c.FillDisk(geom.Point{X: 50, Y: 50}, 10, black)

	if _, _, _, a := nrgbaAt(c, 50, 50); a != 255 {
		t.Error("disk center not filled")
	}
	if _, _, _, a := nrgbaAt(c, 50, 42); a != 255 {
		t.Error("point inside radius not filled")
	}
	if _, _, _, a := nrgbaAt(c, 50, 65); a != 0 {
		t.Error("point outside radius was filled")
	}
}

func TestRingPunchesTransparentInterior(t *testing.T) {
	c := New(40)
	center := geom.Point{X: 50, Y: 50}
	c.Ring(center, 30, 5, black)

	if _, _, _, a := nrgbaAt(c, 50, 22); a != 255 {
		t.Error("ring band not opaque")
	}
	if _, _, _, a := nrgbaAt(c, 50, 50); a != 0 {
		t.Error("ring interior not transparent")
	}
}

func TestRingThickerThanRadiusIsFullDisk(t *testing.T) {
	c := New(40)
	center := geom.Point{X: 50, Y: 50}
	// Thickness beyond the radius must neither invert into a larger
	// disk nor punch a hole: the result is one solid disk.
	c.Ring(center, 10, 50, black)

	if _, _, _, a := nrgbaAt(c, 50, 42); a != 255 {
		t.Error("degenerate ring missing its band")
	}
	if _, _, _, a := nrgbaAt(c, 50, 50); a != 255 {
		t.Error("degenerate ring punched a hole at the center")
	}
	if _, _, _, a := nrgbaAt(c, 50, 65); a != 0 {
		t.Error("degenerate ring drew outside its radius")
	}
}

func TestLineHorizontal(t *testing.T) {
	c := New(40)
	c.Line(geom.Point{X: 10, Y: 50}, geom.Point{X: 90, Y: 50}, 1, black)
	for x := 10; x <= 90; x++ {
		if _, _, _, a := nrgbaAt(c, x, 50); a != 255 {
			t.Fatalf("gap in line at x=%d", x)
		}
	}
	if _, _, _, a := nrgbaAt(c, 50, 60); a != 0 {
		t.Error("line bled away from its row")
	}
}

func TestPasteCenteredPlacement(t *testing.T) {
	c := New(40)

	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i+1] = 200 // green, opaque
		src.Pix[i+3] = 255
	}
	c.PasteCentered(src, geom.Point{X: 50, Y: 50})

	// Top-left = (50-2, 50-2).
	if _, g, _, a := nrgbaAt(c, 48, 48); g != 200 || a != 255 {
		t.Error("paste top-left corner misplaced")
	}
	if _, g, _, _ := nrgbaAt(c, 47, 47); g == 200 {
		t.Error("paste extends past expected top-left")
	}
	if _, g, _, a := nrgbaAt(c, 51, 51); g != 200 || a != 255 {
		t.Error("paste bottom-right corner misplaced")
	}
	if _, g, _, _ := nrgbaAt(c, 52, 52); g == 200 {
		t.Error("paste extends past expected bottom-right")
	}
}

func TestPasteCenteredRespectsAlpha(t *testing.T) {
	c := New(40)
	c.FillDisk(geom.Point{X: 50, Y: 50}, 5, black)

	// Fully transparent source must leave the disk visible.
	src := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	c.PasteCentered(src, geom.Point{X: 50, Y: 50})

	if _, _, _, a := nrgbaAt(c, 50, 50); a != 255 {
		t.Error("transparent paste erased pixels underneath")
	}
}

func nrgbaAt(c *Canvas, x, y int) (r, g, b, a uint8) {
	i := c.Img.PixOffset(x, y)
	return c.Img.Pix[i], c.Img.Pix[i+1], c.Img.Pix[i+2], c.Img.Pix[i+3]
}
