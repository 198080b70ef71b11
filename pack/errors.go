package pack

import (
	"errors"
	"fmt"
)

var (
	ErrDecode               = errors.New("not a readable indexed image")
	ErrSizeMismatch         = errors.New("image size is not a multiple of the block size")
	ErrTooManyColors        = errors.New("image has more than 4 colors")
	ErrTooManyTiles         = errors.New("more than 256 tiles")
	ErrColorNotFound        = errors.New("color not present")
	ErrAmbiguousForeground  = errors.New("tile doesn't have the expected shared colors")
	ErrForegroundOutOfRange = errors.New("foreground color out of range")
	ErrColorNotInTable      = errors.New("color not in color table")
	ErrBadShared            = errors.New("3 different shared colors expected")
)

// BlockError records the sprite frame or tile that failed to convert.
type BlockError struct {
	Kind  string
	Index int
	Err   error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("%s %d: %v", e.Kind, e.Index, e.Err)
}

func (e *BlockError) Unwrap() error {
	return e.Err
}
