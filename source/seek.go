package source

import (
	"io"

	"github.com/hexbee-net/errors"
)

const (
	ErrWhence        = errors.Error("invalid whence")
	ErrInvalidOffset = errors.Error("invalid offset")
)

// ResolveOffset computes the absolute position of a seek in a store of size
// bytes. Positions outside [0, size] are rejected.
func ResolveOffset(offset int64, whence int, current, size int64) (int64, error) {
	var abs int64

	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = current + offset
	case io.SeekEnd:
		abs = size + offset
	default:
		return 0, errors.WithFields(
			errors.WithStack(ErrWhence),
			errors.Fields{
				"whence": whence,
			})
	}

	if abs < 0 || abs > size {
		return 0, errors.WithFields(
			errors.WithStack(ErrInvalidOffset),
			errors.Fields{
				"offset":   offset,
				"whence":   whence,
				"fileSize": size,
			})
	}

	return abs, nil
}
