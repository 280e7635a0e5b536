package dither

import (
	"testing"

	"boothprint/pkg/raster"
)

func solid(w, h int, r, g, b, a byte) *raster.Image {
	pix := make([]byte, w*h*4)
	for i := 0; i < w*h; i++ {
		pix[i*4] = r
		pix[i*4+1] = g
		pix[i*4+2] = b
		pix[i*4+3] = a
	}
	return &raster.Image{Width: w, Height: h, Pix: pix}
}

func gradient(w, h int) *raster.Image {
	img := solid(w, h, 0, 0, 0, 255)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := byte(x * 255 / (w - 1))
			off := img.Offset(x, y)
			img.Pix[off] = v
			img.Pix[off+1] = v
			img.Pix[off+2] = v
		}
	}
	return img
}

func TestFloydSteinberg_Dimensions(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{name: "single pixel", w: 1, h: 1},
		{name: "single column", w: 1, h: 7},
		{name: "single row", w: 7, h: 1},
		{name: "small block", w: 5, h: 4},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			m := FloydSteinberg(solid(tc.w, tc.h, 100, 100, 100, 255))
			if m.Width != tc.w || m.Height != tc.h {
				t.Fatalf("got %dx%d, want %dx%d", m.Width, m.Height, tc.w, tc.h)
			}
			if len(m.Bits) != tc.w*tc.h {
				t.Fatalf("bits len = %d, want %d", len(m.Bits), tc.w*tc.h)
			}
		})
	}
}

func TestFloydSteinberg_SolidExtremes(t *testing.T) {
	black := FloydSteinberg(solid(16, 16, 0, 0, 0, 255))
	for i, bit := range black.Bits {
		if !bit {
			t.Fatalf("solid black: pixel %d dithered white", i)
		}
	}

	white := FloydSteinberg(solid(16, 16, 255, 255, 255, 255))
	for i, bit := range white.Bits {
		if bit {
			t.Fatalf("solid white: pixel %d dithered black", i)
		}
	}
}

func TestFloydSteinberg_MidGrayDensity(t *testing.T) {
	m := FloydSteinberg(solid(64, 64, 128, 128, 128, 255))

	count := 0
	for _, bit := range m.Bits {
		if bit {
			count++
		}
	}

	density := float64(count) / float64(len(m.Bits))
	if density < 0.4 || density > 0.6 {
		t.Fatalf("mid-gray density = %.3f, want roughly 0.5", density)
	}
}

func TestFloydSteinberg_Deterministic(t *testing.T) {
	src := gradient(64, 48)

	a := FloydSteinberg(src)
	b := FloydSteinberg(src)

	if a == b {
		t.Fatal("expected a fresh Mono per pass")
	}
	for i := range a.Bits {
		if a.Bits[i] != b.Bits[i] {
			t.Fatalf("pixel %d differs between identical passes", i)
		}
	}
}

func TestFloydSteinberg_TransparentReadsWhite(t *testing.T) {
	// fully transparent black must composite against white paper
	m := FloydSteinberg(solid(8, 8, 0, 0, 0, 0))
	for i, bit := range m.Bits {
		if bit {
			t.Fatalf("transparent pixel %d dithered black", i)
		}
	}
}
