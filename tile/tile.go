/*
Package tile implements a multicolor tileset (charset) encoder and decoder.

The image is split into tiles of 4 by 8 pixels, scanned row by row, with at
most 256 tiles in total. Three shared colors are common to every tile and
each tile may use one further foreground color with a palette index of 0 to
7. Each tile is stored as 8 bytes of 2-bit pixel codes, codes 0 to 2 being
the shared colors in the order given and code 3 the foreground color. The
foreground color of each tile is also stored as an attribute byte, biased by
8 so it selects the multicolor bank.
*/
package tile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bodgit/multicolor/pack"
)

const (
	// Width is the width in pixels of each tile
	Width = 4
	// Height is the height in pixels of each tile
	Height = 8
	// MaxTiles is the largest number of tiles a set can hold
	MaxTiles = 256
	// MaxForeground is the highest palette index usable as a foreground color
	MaxForeground = 7

	attributeBias = 8
	bytesPerTile  = Width / pack.PixelsPerByte * Height
)

// Shared holds the three colors common to every tile
type Shared [3]uint8

// ParseShared parses a colon-separated list of shared colors such as
// "0:1:12".
func ParseShared(s string) (Shared, error) {
	var shared Shared

	fields := strings.Split(s, ":")
	if len(fields) != len(shared) {
		return shared, fmt.Errorf("%w (%q)", pack.ErrBadShared, s)
	}

	for i, f := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(f), 10, 8)
		if err != nil {
			return shared, fmt.Errorf("%w (%q)", pack.ErrBadShared, s)
		}
		shared[i] = uint8(v)
	}

	return shared, shared.Validate()
}

// Validate checks the shared colors are pairwise distinct
func (s Shared) Validate() error {
	if s[0] == s[1] || s[0] == s[2] || s[1] == s[2] {
		return fmt.Errorf("%w (%d:%d:%d)", pack.ErrBadShared, s[0], s[1], s[2])
	}
	return nil
}

// Contains reports whether c is one of the shared colors
func (s Shared) Contains(c uint8) bool {
	return c == s[0] || c == s[1] || c == s[2]
}

func (s Shared) String() string {
	return fmt.Sprintf("%d:%d:%d", s[0], s[1], s[2])
}

// Resolve builds the color table for a single tile from the distinct palette
// indices it uses and returns it along with the foreground color. A tile
// using only shared colors has a foreground color of 0.
func Resolve(colors []uint8, s Shared) (pack.ColorTable, uint8, error) {
	var fg []uint8
	for _, c := range colors {
		if !s.Contains(c) {
			fg = append(fg, c)
		}
	}

	switch len(fg) {
	case 0:
		fg = append(fg, 0)
	case 1:
	default:
		return pack.ColorTable{}, 0, fmt.Errorf("%w (%v found, %v expected)", pack.ErrAmbiguousForeground, colors, s[:])
	}

	if fg[0] > MaxForeground {
		return pack.ColorTable{}, 0, fmt.Errorf("%w (%d)", pack.ErrForegroundOutOfRange, fg[0])
	}

	return pack.ColorTable{s[0], s[1], s[2], fg[0]}, fg[0], nil
}

// Attribute returns the attribute byte for a foreground color
func Attribute(fg uint8) byte {
	return fg + attributeBias
}
