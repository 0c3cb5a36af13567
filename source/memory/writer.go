package memory

import (
	"bytes"
)

// Writer is an in-memory sink.
type Writer struct {
	bytes.Buffer
}

func NewWriter(buf []byte) *Writer {
	return &Writer{
		Buffer: *bytes.NewBuffer(buf),
	}
}

func (w *Writer) Close() error {
	return nil
}

// Opener returns an Opener over a snapshot of the written bytes.
func (w *Writer) Opener() *Opener {
	return NewOpener(w.Bytes())
}
