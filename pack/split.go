package pack

import (
	"fmt"
	"image"
)

func checkSize(b image.Rectangle, bw, bh int) error {
	if b.Empty() || b.Dx()%bw != 0 || b.Dy()%bh != 0 {
		return fmt.Errorf("%w (%dx%d is not a multiple of %dx%d)", ErrSizeMismatch, b.Dx(), b.Dy(), bw, bh)
	}
	return nil
}

// Split divides b into bw by bh blocks, scanning each row of blocks left to
// right before moving down to the next row.
func Split(b image.Rectangle, bw, bh int) ([]image.Rectangle, error) {
	if err := checkSize(b, bw, bh); err != nil {
		return nil, err
	}

	blocks := make([]image.Rectangle, 0, b.Dx()/bw*(b.Dy()/bh))
	for y := b.Min.Y; y < b.Max.Y; y += bh {
		for x := b.Min.X; x < b.Max.X; x += bw {
			blocks = append(blocks, image.Rect(x, y, x+bw, y+bh))
		}
	}
	return blocks, nil
}

// Strips divides b into bw wide columns spanning the full height of b. The
// height must still be a multiple of bh but columns are never divided
// vertically.
func Strips(b image.Rectangle, bw, bh int) ([]image.Rectangle, error) {
	if err := checkSize(b, bw, bh); err != nil {
		return nil, err
	}

	strips := make([]image.Rectangle, 0, b.Dx()/bw)
	for x := b.Min.X; x < b.Max.X; x += bw {
		strips = append(strips, image.Rect(x, b.Min.Y, x+bw, b.Max.Y))
	}
	return strips, nil
}

// Distinct returns the palette indices used by m within r in the order they
// are first seen, scanning rows top to bottom.
func Distinct(m *image.Paletted, r image.Rectangle) []uint8 {
	var seen [256]bool
	var colors []uint8
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := m.ColorIndexAt(x, y)
			if !seen[c] {
				seen[c] = true
				colors = append(colors, c)
			}
		}
	}
	return colors
}
