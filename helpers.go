package strata

import (
	"io"
)

const (
	magic         = "STRA"
	magicLen      = len(magic)
	footerLenSize = 4
	footerLen     = int64(footerLenSize + magicLen)

	formatVersion = 1

	defaultReadBufferSize = 8192
	defaultScratchSize    = 8 * 1024
)

// offsetWriter counts the bytes written through it.
type offsetWriter struct {
	w      io.Writer
	offset uint64
}

func (w *offsetWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.offset += uint64(n)

	return n, err
}

func min(a, b int) int {
	if a < b {
		return a
	}

	return b
}
