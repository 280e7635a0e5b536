package raster

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// HeadWidth is the dot width of a 58mm thermal head at 203dpi.
const HeadWidth = 384

var ErrInvalidImage = errors.New("invalid source image")

// Image is a decoded RGBA buffer, 4 bytes per pixel in row-major order.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// Offset returns the index of the R byte for the pixel at (x, y).
func (i *Image) Offset(x, y int) int {
	return (y*i.Width + x) * 4
}

func FromImage(src image.Image) (*Image, error) {
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrInvalidImage
	}

	nrgba := imaging.Clone(src)
	return &Image{
		Width:  nrgba.Rect.Dx(),
		Height: nrgba.Rect.Dy(),
		Pix:    nrgba.Pix,
	}, nil
}

// Resample scales src to targetWidth dots preserving aspect ratio, so
// height comes out as floor(targetWidth * srcH / srcW). Every downstream
// stage assumes this fixed width; only height varies with content length.
func Resample(src image.Image, targetWidth int) (*Image, error) {
	if targetWidth <= 0 {
		return nil, errors.Wrap(ErrInvalidImage, "target width must be positive")
	}

	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrInvalidImage
	}

	height := targetWidth * b.Dy() / b.Dx()
	if height <= 0 {
		return nil, errors.Wrap(ErrInvalidImage, "resampled height is zero")
	}

	return FromImage(imaging.Resize(src, targetWidth, height, imaging.Lanczos))
}
