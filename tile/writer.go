package tile

import (
	"fmt"
	"image"
	"io"

	"github.com/bodgit/multicolor/asm"
	"github.com/bodgit/multicolor/pack"
)

// Set is an encoded tileset
type Set struct {
	Shared     Shared
	Foreground []uint8
	Tiles      [][]byte
}

// Attributes returns the attribute byte of every tile in scan order
func (s *Set) Attributes() []byte {
	b := make([]byte, len(s.Foreground))
	for i, fg := range s.Foreground {
		b[i] = Attribute(fg)
	}
	return b
}

func (s *Set) pixels() []byte {
	b := make([]byte, 0, len(s.Tiles)*bytesPerTile)
	for _, t := range s.Tiles {
		b = append(b, t...)
	}
	return b
}

// Encode converts m into a tileset using the shared colors. Nothing is
// returned unless every tile converts successfully.
func Encode(m *image.Paletted, shared Shared) (*Set, error) {
	if err := shared.Validate(); err != nil {
		return nil, err
	}

	tiles, err := pack.Split(m.Bounds(), Width, Height)
	if err != nil {
		return nil, err
	}
	if len(tiles) > MaxTiles {
		return nil, fmt.Errorf("%w (%d found)", pack.ErrTooManyTiles, len(tiles))
	}

	s := &Set{
		Shared:     shared,
		Foreground: make([]uint8, 0, len(tiles)),
		Tiles:      make([][]byte, 0, len(tiles)),
	}
	for i, r := range tiles {
		table, fg, err := Resolve(pack.Distinct(m, r), shared)
		if err != nil {
			return nil, &pack.BlockError{Kind: "tile", Index: i, Err: err}
		}

		b, err := pack.Block(m, r, table)
		if err != nil {
			return nil, &pack.BlockError{Kind: "tile", Index: i, Err: err}
		}

		s.Foreground = append(s.Foreground, fg)
		s.Tiles = append(s.Tiles, b)
	}

	return s, nil
}

// WriteBinary writes the attribute bytes, if attr is set, followed by the
// pixel data of every tile
func (s *Set) WriteBinary(w io.Writer, attr bool) error {
	if attr {
		if _, err := w.Write(s.Attributes()); err != nil {
			return err
		}
	}
	_, err := w.Write(s.pixels())
	return err
}

// WriteASM writes the tileset as assembler tables labelled with id. The
// attribute table, if attr is set, is labelled id_cols.
func (s *Set) WriteASM(w io.Writer, id string, attr bool) error {
	if err := asm.Comment(w, "%d tiles", len(s.Tiles)); err != nil {
		return err
	}
	if attr {
		if err := asm.Table(w, id+"_cols", s.Attributes()); err != nil {
			return err
		}
	}
	if err := asm.Table(w, id, s.pixels()); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
