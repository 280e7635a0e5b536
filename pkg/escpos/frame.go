package escpos

import (
	"bytes"

	"github.com/pkg/errors"

	"boothprint/pkg/dither"
	"boothprint/pkg/raster"
)

// DefaultFeed clears the image past the cut position without wasting paper.
const DefaultFeed = 3

// maxField is the limit of the 16-bit row-width and height header fields.
const maxField = 0xFFFF

var ErrFrameTooLarge = errors.New("image exceeds raster addressing limits")

// Frame is one fully encoded print command stream. It is immutable once
// built; callers must not modify the slice returned by Bytes.
type Frame struct {
	data     []byte
	rowBytes int
	height   int
}

func (f *Frame) Bytes() []byte { return f.data }

func (f *Frame) Len() int { return len(f.data) }

func (f *Frame) RowBytes() int { return f.rowBytes }

func (f *Frame) Height() int { return f.height }

// Encode packs a mono raster into init + raster header + MSB-first packed
// rows + feed/cut trailer. Encoding is a pure function of the raster, so
// identical input yields byte-identical output.
func Encode(m *dither.Mono, feedLines byte) (*Frame, error) {
	if m.Width <= 0 || m.Height <= 0 {
		return nil, errors.Wrapf(raster.ErrInvalidImage, "empty %dx%d raster", m.Width, m.Height)
	}

	rowBytes := (m.Width + 7) / 8
	if rowBytes > maxField || m.Height > maxField {
		return nil, errors.Wrapf(ErrFrameTooLarge, "%dx%d dots", m.Width, m.Height)
	}

	data := make([]byte, 0, 2+8+rowBytes*m.Height+3+3)
	data = append(data, Init()...)
	data = append(data, RasterHeader(rowBytes, m.Height)...)

	row := make([]byte, rowBytes)
	for y := 0; y < m.Height; y++ {
		for i := range row {
			row[i] = 0
		}
		for x := 0; x < m.Width; x++ {
			if m.BlackAt(x, y) {
				row[x/8] |= 0x80 >> uint(x%8)
			}
		}
		data = append(data, row...)
	}

	data = append(data, Feed(feedLines)...)
	data = append(data, PartialCut()...)

	return &Frame{data: data, rowBytes: rowBytes, height: m.Height}, nil
}

// framePrefix is the init and raster header lead-in every encoded frame
// starts with, up to the geometry fields.
var framePrefix = []byte{esc, 0x40, gs, 0x76, 0x30, 0x00}

// FromBytes re-wraps a command stream produced by Encode, recovering the
// row geometry from the raster header. It rejects data that does not
// carry the expected lead-in or is shorter than the geometry promises.
func FromBytes(data []byte) (*Frame, error) {
	if len(data) < len(framePrefix)+4 || !bytes.Equal(data[:len(framePrefix)], framePrefix) {
		return nil, errors.New("not an encoded raster frame")
	}
	rowBytes := int(data[6]) | int(data[7])<<8
	height := int(data[8]) | int(data[9])<<8
	if rowBytes == 0 || height == 0 || len(data) < 10+rowBytes*height {
		return nil, errors.New("truncated raster frame")
	}
	return &Frame{data: data, rowBytes: rowBytes, height: height}, nil
}
