package source

import (
	"context"
	"io"
)

// Reader is a seekable byte store handle.
type Reader interface {
	io.Reader
	io.Seeker
	io.Closer
}

// Opener hands out independent Reader handles over the same stored file.
// Handles share no position, so each column can be read on its own goroutine.
type Opener interface {
	Open(ctx context.Context) (Reader, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(ctx context.Context) (Reader, error)

func (f OpenerFunc) Open(ctx context.Context) (Reader, error) {
	return f(ctx)
}

// Size returns the size of r by seeking to its end, and leaves r positioned
// at the start.
func Size(r io.Seeker) (int64, error) {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}

	return size, nil
}
