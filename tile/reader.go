package tile

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"io/ioutil"

	"github.com/bodgit/multicolor/pack"
)

var (
	errNotEnough  = errors.New("tile: not enough tile data")
	errBadColumns = errors.New("tile: invalid number of columns")
	errBadAttr    = errors.New("tile: invalid attribute byte")
)

// DecodeOptions describes the layout of binary tileset data
type DecodeOptions struct {
	// Columns is the number of tiles in each row of the image
	Columns int
	Shared  Shared
	// Attributes is set when the data starts with one attribute byte per
	// tile. Without them code 3 decodes as palette index 0.
	Attributes bool
	Palette    color.Palette
}

// Decode reads a binary tileset from r and returns it as an image.
func Decode(r io.Reader, o DecodeOptions) (*image.Paletted, error) {
	if o.Columns <= 0 {
		return nil, errBadColumns
	}

	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}

	size := bytesPerTile
	if o.Attributes {
		size++
	}
	if len(b) == 0 || len(b)%size != 0 {
		return nil, errNotEnough
	}

	n := len(b) / size
	if n%o.Columns != 0 {
		return nil, fmt.Errorf("%w (%d tiles in %d columns)", errBadColumns, n, o.Columns)
	}
	if n > MaxTiles {
		return nil, fmt.Errorf("%w (%d found)", pack.ErrTooManyTiles, n)
	}

	var attrs []byte
	if o.Attributes {
		attrs, b = b[:n], b[n:]
	}

	m := image.NewPaletted(image.Rect(0, 0, o.Columns*Width, n/o.Columns*Height), o.Palette)

	tiles, err := pack.Split(m.Bounds(), Width, Height)
	if err != nil {
		return nil, err
	}
	for i, t := range tiles {
		var fg uint8
		if attrs != nil {
			if attrs[i] < attributeBias || attrs[i] > attributeBias+MaxForeground {
				return nil, &pack.BlockError{Kind: "tile", Index: i, Err: errBadAttr}
			}
			fg = attrs[i] - attributeBias
		}
		table := pack.ColorTable{o.Shared[0], o.Shared[1], o.Shared[2], fg}
		if err := pack.Unpack(m, t, table, b[i*bytesPerTile:(i+1)*bytesPerTile]); err != nil {
			return nil, &pack.BlockError{Kind: "tile", Index: i, Err: err}
		}
	}

	return m, nil
}
