package multicolor

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/bodgit/multicolor/sprite"
	"github.com/bodgit/multicolor/tile"
)

// Mode selects the encoding of a Job
type Mode string

const (
	ModeSprite  Mode = "sprite"
	ModeTileset Mode = "tileset"
)

// maxColor is the highest palette index accepted for the transparent and
// sprite colors
const maxColor = 15

// Job describes the conversion of a single image
type Job struct {
	Mode  Mode
	Image string
	// ID labels the assembler tables
	ID     string
	Binary bool

	// Sprite only
	Sprite sprite.Options

	// Tileset only
	Shared       tile.Shared
	NoAttributes bool

	// Output is the file written by Build
	Output string
}

// Validate checks the job arguments before any image is read
func (j *Job) Validate() error {
	if j.Image == "" {
		return errors.New("required parameter: image")
	}
	if j.ID == "" {
		return errors.New("required parameter: id")
	}

	switch j.Mode {
	case ModeSprite:
		if j.Sprite.Transparent != nil && *j.Sprite.Transparent > maxColor {
			return fmt.Errorf("transparent color expects an integer in [0, %d]", maxColor)
		}
		if j.Sprite.Sprite != nil && *j.Sprite.Sprite > maxColor {
			return fmt.Errorf("sprite color expects an integer in [0, %d]", maxColor)
		}
	case ModeTileset:
		return j.Shared.Validate()
	default:
		return fmt.Errorf("unknown mode %q", j.Mode)
	}

	return nil
}

// key identifies the options affecting the output of the job, two jobs with
// the same key and the same image produce identical output
func (j *Job) key() string {
	k := fmt.Sprintf("%s id=%s binary=%t", j.Mode, j.ID, j.Binary)
	switch j.Mode {
	case ModeSprite:
		if tc := j.Sprite.Transparent; tc != nil {
			k += fmt.Sprintf(" tc=%d", *tc)
		}
		if sc := j.Sprite.Sprite; sc != nil {
			k += fmt.Sprintf(" sc=%d", *sc)
		}
	case ModeTileset:
		k += fmt.Sprintf(" colors=%s attr=%t", j.Shared, !j.NoAttributes)
	}
	return k
}

func (c *Converter) encode(m *image.Paletted, j *Job) ([]byte, error) {
	b := new(bytes.Buffer)

	switch j.Mode {
	case ModeSprite:
		s, err := sprite.Encode(m, &j.Sprite)
		if err != nil {
			return nil, err
		}
		c.logger.Printf("%s: %d frames (%d bytes per frame), colors %v\n", j.Image, len(s.Frames), s.FrameSize(), s.Table)
		if j.Binary {
			err = s.WriteBinary(b)
		} else {
			err = s.WriteASM(b, j.ID)
		}
		if err != nil {
			return nil, err
		}
	case ModeTileset:
		s, err := tile.Encode(m, j.Shared)
		if err != nil {
			return nil, err
		}
		c.logger.Printf("%s: %d tiles\n", j.Image, len(s.Tiles))
		if j.Binary {
			err = s.WriteBinary(b, !j.NoAttributes)
		} else {
			err = s.WriteASM(b, j.ID, !j.NoAttributes)
		}
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown mode %q", j.Mode)
	}

	return b.Bytes(), nil
}

// Convert runs the job and returns the complete output. If the converter has
// a catalog, previously converted output for the same image contents and
// options is returned instead.
func (c *Converter) Convert(j *Job) ([]byte, error) {
	if err := j.Validate(); err != nil {
		return nil, err
	}

	src, err := Open(j.Image)
	if err != nil {
		return nil, err
	}

	key := j.key()
	if c.db != nil {
		out, err := c.db.Find(src.SHA1, key)
		if err != nil {
			return nil, err
		}
		if out != nil {
			c.logger.Printf("%s: unchanged, using catalog\n", j.Image)
			return out, nil
		}
	}

	out, err := c.encode(src.Image, j)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", j.Image, err)
	}

	if c.db != nil {
		if err := c.db.Store(src.SHA1, key, out); err != nil {
			return nil, err
		}
	}

	return out, nil
}
