// Package escpos builds the byte sequences understood by ESC/POS-class
// thermal printers and packs dithered rasters into the GS v 0 image command.
package escpos

// Control characters
const (
	esc = 0x1B
	gs  = 0x1D
)

// Init resets the printer to its power-on state.
func Init() []byte {
	return []byte{esc, 0x40}
}

// RasterHeader announces a GS v 0 raster image of rowBytes bytes per row
// and height rows. Both 16-bit fields are little-endian, normal density.
func RasterHeader(rowBytes, height int) []byte {
	return []byte{
		gs, 0x76, 0x30, 0x00,
		byte(rowBytes), byte(rowBytes >> 8),
		byte(height), byte(height >> 8),
	}
}

// Feed advances the paper by n print lines.
func Feed(n byte) []byte {
	return []byte{esc, 0x64, n}
}

// PartialCut cuts the paper leaving one holding point.
func PartialCut() []byte {
	return []byte{gs, 0x56, 0x01}
}
