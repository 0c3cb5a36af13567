package memory

import (
	"bytes"
	"context"

	"github.com/hexbee-net/strata/source"
)

// Reader is a seekable view over a byte slice.
type Reader struct {
	*bytes.Reader
}

func NewReader(data []byte) *Reader {
	return &Reader{
		Reader: bytes.NewReader(data),
	}
}

func (r *Reader) Close() error {
	return nil
}

// Opener hands out independent readers over the same bytes.
type Opener struct {
	data []byte
}

func NewOpener(data []byte) *Opener {
	return &Opener{data: data}
}

func (o *Opener) Open(_ context.Context) (source.Reader, error) {
	return NewReader(o.data), nil
}
