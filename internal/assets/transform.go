package assets

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Crop cuts margins off an image: box (left, top, width-right,
// height-bottom) in source pixels. Negative margins and margins that
// leave a non-positive width or height are rejected rather than
// producing a corrupt image.
func Crop(img *image.NRGBA, left, top, right, bottom int) (*image.NRGBA, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if left < 0 || top < 0 || right < 0 || bottom < 0 {
		return nil, &ImageError{
			Reason: fmt.Sprintf("negative crop margins [%d %d %d %d]", left, top, right, bottom),
		}
	}
	box := image.Rect(left, top, w-right, h-bottom)
	if box.Dx() <= 0 || box.Dy() <= 0 {
		return nil, &ImageError{
			Reason: fmt.Sprintf("degenerate crop box %v from margins [%d %d %d %d] on %dx%d image",
				box, left, top, right, bottom, w, h),
		}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, box.Dx(), box.Dy()))
	for y := 0; y < box.Dy(); y++ {
		si := img.PixOffset(b.Min.X+box.Min.X, b.Min.Y+box.Min.Y+y)
		di := dst.PixOffset(0, y)
		copy(dst.Pix[di:di+box.Dx()*4], img.Pix[si:si+box.Dx()*4])
	}
	return dst, nil
}

// Scale resizes proportionally by the given factor with truncated target
// dimensions. Factor 1 returns the input unchanged. Scaling goes through
// premultiplied alpha so transparent edges do not grow dark halos.
func Scale(img *image.NRGBA, factor float64) (*image.NRGBA, error) {
	if factor == 1 {
		return img, nil
	}
	b := img.Bounds()
	nw := int(float64(b.Dx()) * factor)
	nh := int(float64(b.Dy()) * factor)
	if nw < 1 || nh < 1 {
		return nil, &ImageError{
			Reason: fmt.Sprintf("scale factor %v empties a %dx%d image", factor, b.Dx(), b.Dy()),
		}
	}

	// Premultiply alpha
	premul := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := img.PixOffset(x, y)
			di := premul.PixOffset(x, y)
			a := float64(img.Pix[si+3]) / 255.0
			premul.Pix[di] = uint8(float64(img.Pix[si])*a + 0.5)
			premul.Pix[di+1] = uint8(float64(img.Pix[si+1])*a + 0.5)
			premul.Pix[di+2] = uint8(float64(img.Pix[si+2])*a + 0.5)
			premul.Pix[di+3] = img.Pix[si+3]
		}
	}

	scaled := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), premul, premul.Bounds(), draw.Src, nil)

	// Unpremultiply alpha
	result := image.NewNRGBA(scaled.Bounds())
	for y := 0; y < nh; y++ {
		for x := 0; x < nw; x++ {
			si := scaled.PixOffset(x, y)
			di := result.PixOffset(x, y)
			a := float64(scaled.Pix[si+3])
			if a > 1 {
				inv := 255.0 / a
				result.Pix[di] = clamp8(float64(scaled.Pix[si]) * inv)
				result.Pix[di+1] = clamp8(float64(scaled.Pix[si+1]) * inv)
				result.Pix[di+2] = clamp8(float64(scaled.Pix[si+2]) * inv)
			}
			result.Pix[di+3] = scaled.Pix[si+3]
		}
	}
	return result, nil
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
