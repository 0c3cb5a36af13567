package source

import "io"

// Writer is a byte store sink. Close must flush any pending upload.
type Writer interface {
	io.Writer
	io.Closer
}
