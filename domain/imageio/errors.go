package imageio

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned for file extensions without an encoder.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")
	// ErrInvalidSize is returned when a resize target is not positive.
	ErrInvalidSize = errors.New("imageio: invalid size")
	// ErrOutOfBounds is returned when a crop rectangle leaves the image.
	ErrOutOfBounds = errors.New("imageio: rectangle out of bounds")
)

// DecodeError wraps a failure to read or decode a source image.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("decode image: %v", e.Err)
	}
	return fmt.Sprintf("decode image %q: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError wraps an encoder rejecting an image.
type EncodeError struct {
	Format Format
	Err    error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Format, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
