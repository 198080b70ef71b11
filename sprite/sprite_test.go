package sprite

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/bodgit/multicolor/pack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sheet returns a frames wide sprite sheet where pixel (x, y) uses
// colors[(x+y)%len(colors)]
func sheet(frames int, colors ...uint8) *image.Paletted {
	m := image.NewPaletted(image.Rect(0, 0, frames*Width, Height), make(color.Palette, 16))
	for y := 0; y < Height; y++ {
		for x := 0; x < frames*Width; x++ {
			m.SetColorIndex(x, y, colors[(x+y)%len(colors)])
		}
	}
	return m
}

func TestResolve(t *testing.T) {
	tables := []struct {
		name   string
		colors []uint8
		opts   *Options
		want   pack.ColorTable
	}{
		{"sorted", []uint8{3, 1, 2, 0}, nil, pack.ColorTable{0, 1, 2, 3}},
		{"padded", []uint8{9, 4}, nil, pack.ColorTable{0, 0, 4, 9}},
		{"transparent", []uint8{0, 1, 2, 3}, &Options{Transparent: Color(2)}, pack.ColorTable{2, 0, 1, 3}},
		{"sprite", []uint8{0, 1, 2, 3}, &Options{Sprite: Color(3)}, pack.ColorTable{0, 1, 3, 2}},
		{"both", []uint8{0, 1, 2, 3}, &Options{Transparent: Color(0), Sprite: Color(1)}, pack.ColorTable{0, 2, 1, 3}},
		{"both moved", []uint8{5, 6, 7, 8}, &Options{Transparent: Color(8), Sprite: Color(5)}, pack.ColorTable{8, 6, 5, 7}},
		{"padding transparent", []uint8{6, 3}, &Options{Transparent: Color(0)}, pack.ColorTable{0, 0, 3, 6}},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			got, err := Resolve(table.colors, table.opts)
			require.NoError(t, err)
			assert.Equal(t, table.want, got)
		})
	}
}

func TestResolveErrors(t *testing.T) {
	tables := []struct {
		name   string
		colors []uint8
		opts   *Options
		want   error
	}{
		{"five colors", []uint8{0, 1, 2, 3, 4}, nil, pack.ErrTooManyColors},
		{"missing transparent", []uint8{0, 1, 2, 3}, &Options{Transparent: Color(4)}, pack.ErrColorNotFound},
		{"missing sprite", []uint8{0, 1, 2, 3}, &Options{Sprite: Color(15)}, pack.ErrColorNotFound},
		{"same color", []uint8{0, 1, 2, 3}, &Options{Transparent: Color(1), Sprite: Color(1)}, pack.ErrColorNotFound},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			_, err := Resolve(table.colors, table.opts)
			assert.True(t, errors.Is(err, table.want), "got %v", err)
		})
	}
}

func TestEncode(t *testing.T) {
	m := sheet(2, 0, 1, 2, 3)

	s, err := Encode(m, &Options{Transparent: Color(0), Sprite: Color(1)})
	require.NoError(t, err)

	assert.Equal(t, pack.ColorTable{0, 2, 1, 3}, s.Table)
	assert.Len(t, s.Frames, 2)
	assert.Equal(t, bytesPerRow*Height, s.FrameSize())

	// First row of frame 0 is 0,1,2,3 repeated, so 00 10 01 11
	assert.Equal(t, byte(0x27), s.Frames[0][0])

	// Second row starts at 1,2,3,0, so 10 01 11 00
	assert.Equal(t, byte(0x9c), s.Frames[0][bytesPerRow])
}

func TestEncodeTooManyColors(t *testing.T) {
	_, err := Encode(sheet(1, 0, 1, 2, 3, 4), nil)
	assert.True(t, errors.Is(err, pack.ErrTooManyColors))

	_, err = Encode(sheet(1, 0, 1, 2, 3), nil)
	assert.NoError(t, err)
}

func TestEncodeSizeMismatch(t *testing.T) {
	m := image.NewPaletted(image.Rect(0, 0, Width+4, Height), make(color.Palette, 4))

	_, err := Encode(m, nil)
	assert.True(t, errors.Is(err, pack.ErrSizeMismatch))
}

func TestEncodeTallSheet(t *testing.T) {
	m := image.NewPaletted(image.Rect(0, 0, Width*3, Height*2), make(color.Palette, 4))

	s, err := Encode(m, nil)
	require.NoError(t, err)
	assert.Len(t, s.Frames, 3)
	assert.Equal(t, bytesPerRow*Height*2, s.FrameSize())
}

func TestRoundTrip(t *testing.T) {
	tables := []struct {
		name   string
		colors []uint8
		opts   *Options
	}{
		{"four colors", []uint8{7, 2, 11, 4}, &Options{Transparent: Color(11), Sprite: Color(2)}},
		{"two colors", []uint8{3, 9}, nil},
		{"one color", []uint8{5}, &Options{Transparent: Color(0)}},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			m := sheet(3, table.colors...)

			s, err := Encode(m, table.opts)
			require.NoError(t, err)

			b := new(bytes.Buffer)
			require.NoError(t, s.WriteBinary(b))
			assert.Equal(t, 3*bytesPerRow*Height, b.Len())

			out, err := Decode(b, Height, s.Table, m.Palette)
			require.NoError(t, err)
			assert.Equal(t, m.Bounds(), out.Bounds())
			assert.Equal(t, m.Pix, out.Pix)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(bytes.NewReader(nil), Height, pack.ColorTable{}, nil)
	assert.Equal(t, errNoFrames, err)

	_, err = Decode(bytes.NewReader(make([]byte, 10)), Height, pack.ColorTable{}, nil)
	assert.Error(t, err)

	_, err = Decode(bytes.NewReader(make([]byte, 63)), 20, pack.ColorTable{}, nil)
	assert.True(t, errors.Is(err, pack.ErrSizeMismatch))
}

func TestWriteASM(t *testing.T) {
	s := &Sheet{
		Frames: [][]byte{
			{1, 2, 3, 4, 5, 6, 7, 8, 9},
			{10, 11},
		},
	}

	b := new(bytes.Buffer)
	require.NoError(t, s.WriteASM(b, "player"))
	assert.Equal(t, "; frames: 2 (9 bytes per frame)\n"+
		"player:\n"+
		"\t.byte $01, $02, $03, $04, $05, $06, $07, $08\n"+
		"\t.byte $09\n"+
		"\t.byte $0a, $0b\n"+
		"\n", b.String())
}

func TestCodesConstrainedSlotWins(t *testing.T) {
	o := &Options{Transparent: Color(3), Sprite: Color(0)}

	table, err := Resolve([]uint8{0, 3, 5}, o)
	require.NoError(t, err)
	assert.Equal(t, pack.ColorTable{3, 0, 0, 5}, table)

	codes := Codes(table, o)
	assert.Equal(t, pack.CodeMap{3: 0, 0: 2, 5: 3}, codes)

	// Padding only, so the lowest position is used
	assert.Equal(t, pack.CodeMap{0: 0, 4: 2, 9: 3}, Codes(pack.ColorTable{0, 0, 4, 9}, nil))
}

func TestEncodeSpriteColorFromPadding(t *testing.T) {
	m := sheet(2, 0, 3, 5)
	o := &Options{Transparent: Color(3), Sprite: Color(0)}

	s, err := Encode(m, o)
	require.NoError(t, err)

	// First row is 0,3,5,0 so 10 00 11 10
	assert.Equal(t, byte(0x8e), s.Frames[0][0])

	for _, f := range s.Frames {
		for _, v := range f {
			for k := 0; k < 4; k++ {
				assert.NotEqual(t, byte(1), v>>(2*k)&3, "padding slot selected")
			}
		}
	}

	b := new(bytes.Buffer)
	require.NoError(t, s.WriteBinary(b))

	out, err := Decode(b, Height, s.Table, m.Palette)
	require.NoError(t, err)
	assert.Equal(t, m.Pix, out.Pix)
}
