package sprite

import (
	"image"
	"io"

	"github.com/bodgit/multicolor/asm"
	"github.com/bodgit/multicolor/pack"
)

// Sheet is an encoded sprite sheet
type Sheet struct {
	Table  pack.ColorTable
	Frames [][]byte
}

// FrameSize returns the number of bytes in each frame
func (s *Sheet) FrameSize() int {
	if len(s.Frames) == 0 {
		return 0
	}
	return len(s.Frames[0])
}

// Encode converts m into a sprite sheet. Nothing is returned unless every
// frame converts successfully.
func Encode(m *image.Paletted, o *Options) (*Sheet, error) {
	b := m.Bounds()

	strips, err := pack.Strips(b, Width, Height)
	if err != nil {
		return nil, err
	}

	table, err := Resolve(pack.Distinct(m, b), o)
	if err != nil {
		return nil, err
	}

	codes := Codes(table, o)

	s := &Sheet{
		Table:  table,
		Frames: make([][]byte, 0, len(strips)),
	}
	for i, r := range strips {
		frame, err := pack.Block(m, r, codes)
		if err != nil {
			return nil, &pack.BlockError{Kind: "frame", Index: i, Err: err}
		}
		s.Frames = append(s.Frames, frame)
	}

	return s, nil
}

// WriteBinary writes every frame in order with no header
func (s *Sheet) WriteBinary(w io.Writer) error {
	for _, f := range s.Frames {
		if _, err := w.Write(f); err != nil {
			return err
		}
	}
	return nil
}

// WriteASM writes the sheet as an assembler table labelled with id
func (s *Sheet) WriteASM(w io.Writer, id string) error {
	if err := asm.Comment(w, "frames: %d (%d bytes per frame)", len(s.Frames), s.FrameSize()); err != nil {
		return err
	}
	if err := asm.Table(w, id, s.Frames...); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
