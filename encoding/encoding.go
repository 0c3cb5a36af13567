// Package encoding holds the bit-level encodings shared by the value codecs:
// the RLE/bit-packing hybrid used for validity and booleans, and the delta
// binary packing used for integers and list offsets.
package encoding

import (
	"io"

	"github.com/hexbee-net/errors"
)

const (
	errNilWriter             = errors.Error("writer is nil")
	errNilReader             = errors.Error("reader is nil")
	errNotInitialized        = errors.Error("decoder is not initialized")
	errInvalidBlockSize      = errors.Error("invalid block size")
	errInvalidMiniblockCount = errors.Error("invalid mini block count")
	errInvalidBitWidth       = errors.Error("invalid bit-width")
	errOutOfRange            = errors.Error("out of range")
	errNoMoreValues          = errors.Error("no more values")
)

// Decoder yields int32 values one at a time.
type Decoder interface {
	Init(io.Reader) error
	InitSize(io.Reader) error

	Next() (int32, error)
}

// DecodeInt32 fills data from d.
func DecodeInt32(d Decoder, data []int32) error {
	for i := range data {
		v, err := d.Next()
		if err != nil {
			return err
		}

		data[i] = v
	}

	return nil
}
