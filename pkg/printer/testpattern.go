package printer

import (
	"image"
	"image/color"
)

// TestPattern renders a horizontal white-to-black gradient, which
// exercises the whole dither and encode path when printed.
func TestPattern(width, height int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(255)
			if width > 1 {
				v = uint8(255 - x*255/(width-1))
			}
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}

	return img
}
