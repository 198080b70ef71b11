/*
Package sprite implements a multicolor sprite encoder and decoder.

A sprite sheet is a single row of frames, each 12 by 21 pixels exactly
(the image height may be any multiple of 21 but frames always span the
full height). Every pixel is one of at most four palette indices shared by
the whole sheet and is stored as a 2-bit code, so each row of a frame is 3
bytes.

The order of the four colors is the palette indices sorted ascending, then
the optional transparent color moved to code 0 and the optional sprite color
moved to code 2.
*/
package sprite

import (
	"fmt"
	"sort"

	"github.com/bodgit/multicolor/pack"
)

const (
	// Width is the width in pixels of each frame
	Width = 12
	// Height is the height in pixels of each frame
	Height = 21

	bytesPerRow = Width / pack.PixelsPerByte
)

// Options controls the placement of colors in the color table. A nil field
// leaves that color in sorted order.
type Options struct {
	// Transparent is the palette index forced to code 0
	Transparent *uint8
	// Sprite is the palette index forced to code 2
	Sprite *uint8
}

// Color returns a pointer to c for use in Options.
func Color(c uint8) *uint8 {
	return &c
}

func indexOf(colors []uint8, c uint8) int {
	for i, v := range colors {
		if v == c {
			return i
		}
	}
	return -1
}

// Resolve builds the color table from the distinct palette indices used by
// the sheet.
func Resolve(colors []uint8, o *Options) (pack.ColorTable, error) {
	if len(colors) > pack.Colors {
		return pack.ColorTable{}, fmt.Errorf("%w (%d found)", pack.ErrTooManyColors, len(colors))
	}

	// Unused slots are padded with palette index 0
	c := make([]uint8, pack.Colors)
	copy(c, colors)

	sort.Slice(c, func(i, j int) bool { return c[i] < c[j] })

	if o == nil {
		o = &Options{}
	}

	if o.Transparent != nil && o.Sprite != nil && *o.Transparent == *o.Sprite {
		return pack.ColorTable{}, fmt.Errorf("%w (transparent and sprite color are both %d)", pack.ErrColorNotFound, *o.Transparent)
	}

	if o.Transparent != nil {
		tc := *o.Transparent
		i := indexOf(c, tc)
		if i < 0 {
			return pack.ColorTable{}, fmt.Errorf("transparent %w (%d)", pack.ErrColorNotFound, tc)
		}
		c = append(c[:i], c[i+1:]...)
		c = append([]uint8{tc}, c...)
	}

	if o.Sprite != nil {
		sc := *o.Sprite
		i := indexOf(c, sc)
		if i < 0 {
			return pack.ColorTable{}, fmt.Errorf("sprite %w (%d)", pack.ErrColorNotFound, sc)
		}
		c = append(c[:i], c[i+1:]...)
		last := len(c) - 1
		c = append(c[:last], append([]uint8{sc}, c[last:]...)...)
	}

	var t pack.ColorTable
	copy(t[:], c)
	return t, nil
}

// Codes returns the code used for each palette index in t. Where an index
// fills more than one slot the transparent and sprite slots take precedence
// over padding, otherwise the lowest position is used.
func Codes(t pack.ColorTable, o *Options) pack.CodeMap {
	codes := make(pack.CodeMap, pack.Colors)
	for i := len(t) - 1; i >= 0; i-- {
		codes[t[i]] = byte(i)
	}
	if o == nil {
		return codes
	}
	if o.Sprite != nil {
		codes[*o.Sprite] = 2
	}
	if o.Transparent != nil {
		codes[*o.Transparent] = 0
	}
	return codes
}
