package raster

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestResample_PreservesAspect(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH int
		target     int
		wantH      int
	}{
		{name: "downscale 4:3", srcW: 800, srcH: 600, target: 384, wantH: 288},
		{name: "upscale 2:1", srcW: 100, srcH: 50, target: 384, wantH: 192},
		{name: "tall strip", srcW: 384, srcH: 1000, target: 384, wantH: 1000},
		{name: "odd ratio floors", srcW: 7, srcH: 5, target: 384, wantH: 274},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			src := image.NewNRGBA(image.Rect(0, 0, tc.srcW, tc.srcH))
			img, err := Resample(src, tc.target)
			if err != nil {
				t.Fatalf("Resample() error: %v", err)
			}
			if img.Width != tc.target || img.Height != tc.wantH {
				t.Fatalf("got %dx%d, want %dx%d", img.Width, img.Height, tc.target, tc.wantH)
			}
			if len(img.Pix) != img.Width*img.Height*4 {
				t.Fatalf("pix len = %d, want %d", len(img.Pix), img.Width*img.Height*4)
			}
		})
	}
}

func TestResample_InvalidInputs(t *testing.T) {
	empty := image.NewNRGBA(image.Rect(0, 0, 0, 0))
	if _, err := Resample(empty, 384); !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("empty source: got %v, want ErrInvalidImage", err)
	}

	src := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	if _, err := Resample(src, 0); !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("zero target: got %v, want ErrInvalidImage", err)
	}
}

func TestFromImage_PixelLayout(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	src.SetNRGBA(1, 1, color.NRGBA{R: 200, G: 100, B: 50, A: 128})

	img, err := FromImage(src)
	if err != nil {
		t.Fatalf("FromImage() error: %v", err)
	}

	if got := img.Pix[img.Offset(0, 0) : img.Offset(0, 0)+4]; got[0] != 10 || got[1] != 20 || got[2] != 30 || got[3] != 255 {
		t.Fatalf("pixel (0,0) = %v", got)
	}
	if got := img.Pix[img.Offset(1, 1) : img.Offset(1, 1)+4]; got[0] != 200 || got[1] != 100 || got[2] != 50 || got[3] != 128 {
		t.Fatalf("pixel (1,1) = %v", got)
	}
}
