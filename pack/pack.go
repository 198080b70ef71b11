/*
Package pack implements the 2 bits per pixel encoding shared by the sprite
and tileset converters.

Every byte holds four horizontally adjacent pixels with the leftmost pixel in
bits 7-6 and the rightmost in bits 1-0. A pixel is stored as the position of
its palette index within a four entry ColorTable, so the table fully defines
how codes map back to colors.
*/
package pack

import (
	"fmt"
	"image"
)

const (
	// Colors is the number of entries in a ColorTable
	Colors = 4

	// PixelsPerByte is the number of pixels packed into each byte
	PixelsPerByte = 4

	bitsPerPixel = 2
	codeMask     = 1<<bitsPerPixel - 1
)

// ColorTable maps each 2-bit code, by position, to a palette index.
type ColorTable [Colors]uint8

// Code returns the 2-bit code for palette index c. If c is present more than
// once the lowest position is used.
func (t ColorTable) Code(c uint8) (byte, bool) {
	for i, v := range t {
		if v == c {
			return byte(i) & codeMask, true
		}
	}
	return 0, false
}

// Coder maps a palette index to its 2-bit code
type Coder interface {
	Code(c uint8) (byte, bool)
}

// CodeMap is a Coder with an explicit code for each palette index it holds
type CodeMap map[uint8]byte

// Code returns the 2-bit code for palette index c
func (m CodeMap) Code(c uint8) (byte, bool) {
	code, ok := m[c]
	return code & codeMask, ok
}

// Index returns the palette index stored for the 2-bit code
func (t ColorTable) Index(code byte) uint8 {
	return t[code&codeMask]
}

// Len returns the number of bytes needed to pack the pixels in r
func Len(r image.Rectangle) int {
	return r.Dx() / PixelsPerByte * r.Dy()
}

// Block packs the pixels of m within r using t, usually a ColorTable.
func Block(m *image.Paletted, r image.Rectangle, t Coder) ([]byte, error) {
	if r.Dx()%PixelsPerByte != 0 {
		return nil, fmt.Errorf("%w (block width %d is not a multiple of %d)", ErrSizeMismatch, r.Dx(), PixelsPerByte)
	}

	b := make([]byte, 0, Len(r))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x += PixelsPerByte {
			var v byte
			for k := 0; k < PixelsPerByte; k++ {
				c := m.ColorIndexAt(x+k, y)
				code, ok := t.Code(c)
				if !ok {
					return nil, fmt.Errorf("%w (palette index %d at %d,%d)", ErrColorNotInTable, c, x+k, y)
				}
				v |= code << (bitsPerPixel * (PixelsPerByte - 1 - k))
			}
			b = append(b, v)
		}
	}

	return b, nil
}

// Unpack is the inverse of Block, it sets the pixels of m within r from the
// packed bytes in b.
func Unpack(m *image.Paletted, r image.Rectangle, t ColorTable, b []byte) error {
	if r.Dx()%PixelsPerByte != 0 {
		return fmt.Errorf("%w (block width %d is not a multiple of %d)", ErrSizeMismatch, r.Dx(), PixelsPerByte)
	}
	if len(b) != Len(r) {
		return fmt.Errorf("pack: got %d bytes, expected %d", len(b), Len(r))
	}

	i := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x += PixelsPerByte {
			for k := 0; k < PixelsPerByte; k++ {
				code := b[i] >> (bitsPerPixel * (PixelsPerByte - 1 - k))
				m.SetColorIndex(x+k, y, t.Index(code))
			}
			i++
		}
	}

	return nil
}
