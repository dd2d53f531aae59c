package compose

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"topoplot-renderer/internal/assets"
	"topoplot-renderer/internal/canvas"
	"topoplot-renderer/internal/positions"
)

func writePNG(t *testing.T, path string, w, h int, fill [4]uint8) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		copy(img.Pix[i:i+4], fill[:])
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func alphaAt(c *canvas.Canvas, x, y int) uint8 {
	return c.Img.Pix[c.Img.PixOffset(x, y)+3]
}

func TestCompositeMarkersWithoutImages(t *testing.T) {
	c := canvas.New(100) // 250x250, center (125,125)
	recs := []positions.Record{
		{Theta: 0, Phi: 0, Radius: 1},
		{Theta: 180, Phi: 0, Radius: 1},
	}

	err := Composite(c, recs, nil, Options{HeadRadiusPx: 100, Scale: 1})
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}
	// Markers at (125, 25) and (125, 225) even with no images at all.
	if alphaAt(c, 125, 25) != 255 {
		t.Error("front marker missing")
	}
	if alphaAt(c, 125, 225) != 255 {
		t.Error("back marker missing")
	}
}

func TestCompositeLenientZip(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "a.png")
	writePNG(t, img, 2, 2, [4]uint8{0, 120, 0, 255})

	c := canvas.New(100)
	recs := []positions.Record{
		{Theta: 90, Phi: 0, Radius: 1},
		{Theta: -90, Phi: 0, Radius: 1},
	}

	// One image, two locations: only the first gets an image, no error.
	err := Composite(c, recs, []string{img}, Options{HeadRadiusPx: 100, Scale: 1})
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}
	// First electrode at (225, 125) carries the green paste.
	if g := c.Img.Pix[c.Img.PixOffset(225, 125)+1]; g != 120 {
		t.Errorf("first electrode image missing, green=%d", g)
	}
	// Second electrode at (25, 125) has only the black marker.
	if g := c.Img.Pix[c.Img.PixOffset(25, 125)+1]; g != 0 {
		t.Error("second electrode unexpectedly got an image")
	}
	if alphaAt(c, 25, 125) != 255 {
		t.Error("second electrode marker missing")
	}
}

func TestCompositeCropAndScale(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "tall.png")
	writePNG(t, img, 100, 300, [4]uint8{200, 0, 0, 255})

	c := canvas.New(200) // 500x500, center (250,250)
	recs := []positions.Record{{Theta: 0, Phi: 90, Radius: 1}} // projects to center

	err := Composite(c, recs, []string{img}, Options{
		HeadRadiusPx: 200,
		Scale:        0.5,
		Crop:         []int{0, 200, 0, 0}, // 100x300 -> 100x100, then 50x50
	})
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}
	// 50x50 paste centered at (250,250): covers 225..274.
	if r := c.Img.Pix[c.Img.PixOffset(226, 226)]; r != 200 {
		t.Errorf("cropped+scaled image misplaced, red=%d at (226,226)", r)
	}
	if r := c.Img.Pix[c.Img.PixOffset(220, 220)]; r == 200 {
		t.Error("image extends past expected 50x50 footprint")
	}
}

func TestCompositeDegenerateCrop(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "small.png")
	writePNG(t, img, 10, 10, [4]uint8{0, 0, 0, 255})

	c := canvas.New(100)
	recs := []positions.Record{{Theta: 0, Phi: 0, Radius: 1}}

	err := Composite(c, recs, []string{img}, Options{
		HeadRadiusPx: 100,
		Scale:        1,
		Crop:         []int{0, 10, 0, 0},
	})
	var ie *assets.ImageError
	if !errors.As(err, &ie) {
		t.Fatalf("expected ImageError for degenerate crop, got %v", err)
	}
}

func TestCompositeMissingImage(t *testing.T) {
	c := canvas.New(100)
	recs := []positions.Record{{Theta: 0, Phi: 0, Radius: 1}}

	err := Composite(c, recs, []string{filepath.Join(t.TempDir(), "nope.png")},
		Options{HeadRadiusPx: 100, Scale: 1})
	var ie *assets.ImageError
	if !errors.As(err, &ie) {
		t.Fatalf("expected ImageError for missing file, got %v", err)
	}
}

func TestCompositeLabels(t *testing.T) {
	c := canvas.New(100)
	recs := []positions.Record{{Theta: 0, Phi: 90, Radius: 1, Name: "Cz"}}

	err := Composite(c, recs, nil, Options{HeadRadiusPx: 100, Scale: 1, DrawLabels: true})
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}
	// Label glyphs land below the marker at the center (125,125): some
	// opaque pixel must exist in the band under the marker.
	found := false
	for y := 125 + MarkerRadius + 1; y < 125+MarkerRadius+25; y++ {
		for x := 100; x < 150; x++ {
			if alphaAt(c, x, y) == 255 {
				found = true
			}
		}
	}
	if !found {
		t.Error("no label pixels drawn below the marker")
	}
}
