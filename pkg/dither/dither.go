package dither

import (
	"boothprint/pkg/raster"
)

// Mono is a 1-bit raster, true meaning a printed black dot. Each dithering
// pass allocates a fresh instance; a Mono is never rewritten in place.
type Mono struct {
	Width  int
	Height int
	Bits   []bool
}

func NewMono(width, height int) *Mono {
	return &Mono{
		Width:  width,
		Height: height,
		Bits:   make([]bool, width*height),
	}
}

func (m *Mono) BlackAt(x, y int) bool {
	return m.Bits[y*m.Width+x]
}

// FloydSteinberg converts an RGBA buffer to a 1-bit raster by error
// diffusion over luminance. Pixels are visited in strict scan order since
// each threshold decision feeds accumulated error into the neighbors not
// yet visited; independent images may still be dithered concurrently.
func FloydSteinberg(src *raster.Image) *Mono {
	w, h := src.Width, src.Height
	lum := luminance(src)
	m := NewMono(w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			old := lum[i]

			var chosen float64
			black := old < 128
			if !black {
				chosen = 255
			}
			m.Bits[i] = black

			e := old - chosen
			if x+1 < w {
				lum[i+1] += e * 7 / 16
			}
			if y+1 < h {
				if x > 0 {
					lum[i+w-1] += e * 3 / 16
				}
				lum[i+w] += e * 5 / 16
				if x+1 < w {
					lum[i+w+1] += e * 1 / 16
				}
			}
		}
	}

	return m
}

const (
	lumR = 0.299
	lumG = 0.587
	lumB = 0.114
)

// luminance flattens each pixel to a single channel, compositing partial
// alpha against the white of the paper first.
func luminance(src *raster.Image) []float64 {
	out := make([]float64, src.Width*src.Height)

	for i := range out {
		p := src.Pix[i*4 : i*4+4]
		r, g, b, a := float64(p[0]), float64(p[1]), float64(p[2]), float64(p[3])

		if a < 255 {
			r = (r*a + 255*(255-a)) / 255
			g = (g*a + 255*(255-a)) / 255
			b = (b*a + 255*(255-a)) / 255
		}

		l := lumR*r + lumG*g + lumB*b
		if l < 0 {
			l = 0
		} else if l > 255 {
			l = 255
		}
		out[i] = l
	}

	return out
}
