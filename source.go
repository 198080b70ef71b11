package multicolor

import (
	"crypto/sha1"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/png"
	"io"
	"os"

	"github.com/bodgit/multicolor/pack"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Source is a decoded indexed image
type Source struct {
	Image *image.Paletted
	// SHA1 is the hex encoded SHA-1 of the file contents
	SHA1 string
}

// Open decodes the indexed image in file. Any image that cannot be decoded,
// or which does not use a palette, returns an error wrapping
// pack.ErrDecode.
func Open(file string) (*Source, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w (%v)", file, pack.ErrDecode, err)
	}
	defer f.Close()

	h := sha1.New()
	m, _, err := image.Decode(io.TeeReader(f, h))
	if err != nil {
		return nil, fmt.Errorf("%s: %w (%v)", file, pack.ErrDecode, err)
	}

	pm, ok := m.(*image.Paletted)
	if !ok {
		return nil, fmt.Errorf("%s: %w (no palette)", file, pack.ErrDecode)
	}

	// Adjust image so that top-left corner is at (0, 0)
	if pm.Rect.Min != (image.Point{}) {
		dup := *pm
		dup.Rect = dup.Rect.Sub(dup.Rect.Min)
		pm = &dup
	}

	// Drain anything the decoder didn't read so the hash covers the file
	if _, err := io.Copy(h, f); err != nil {
		return nil, fmt.Errorf("%s: %w (%v)", file, pack.ErrDecode, err)
	}

	return &Source{
		Image: pm,
		SHA1:  fmt.Sprintf("%X", h.Sum(nil)),
	}, nil
}
