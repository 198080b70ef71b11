package sprite

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"io/ioutil"

	"github.com/bodgit/multicolor/pack"
)

var errNoFrames = errors.New("sprite: no frame data")

// Decode reads binary sprite frames of the given height from r and returns
// them as a single row image using palette p. The color table must be the
// one used when encoding.
func Decode(r io.Reader, height int, t pack.ColorTable, p color.Palette) (*image.Paletted, error) {
	if height <= 0 || height%Height != 0 {
		return nil, fmt.Errorf("%w (height %d is not a multiple of %d)", pack.ErrSizeMismatch, height, Height)
	}

	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	frameSize := bytesPerRow * height
	if len(b) == 0 {
		return nil, errNoFrames
	}
	if len(b)%frameSize != 0 {
		return nil, fmt.Errorf("sprite: %d bytes is not a multiple of the %d byte frame size", len(b), frameSize)
	}

	m := image.NewPaletted(image.Rect(0, 0, len(b)/frameSize*Width, height), p)

	strips, err := pack.Strips(m.Bounds(), Width, Height)
	if err != nil {
		return nil, err
	}
	for i, s := range strips {
		if err := pack.Unpack(m, s, t, b[i*frameSize:(i+1)*frameSize]); err != nil {
			return nil, &pack.BlockError{Kind: "frame", Index: i, Err: err}
		}
	}

	return m, nil
}
