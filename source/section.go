package source

import (
	"bufio"
	"io"

	"github.com/hexbee-net/errors"
)

const (
	errInvalidSection = errors.Error("invalid section")
)

// Section is a buffered view of exactly [offset, offset+length) of a Reader.
// Reads past the end of the range return io.EOF even if the underlying
// store holds more bytes.
type Section struct {
	src    io.ReadSeeker
	buf    *bufio.Reader
	offset int64
	length int64
}

// NewSection positions r at offset and bounds it to length bytes, reading
// through a buffer of bufSize bytes. A bufSize larger than length is reduced
// to length.
func NewSection(r io.ReadSeeker, offset, length int64, bufSize int) (*Section, error) {
	if offset < 0 || length < 0 || bufSize < 0 {
		return nil, errors.WithFields(
			errors.WithStack(errInvalidSection),
			errors.Fields{
				"offset":   offset,
				"length":   length,
				"buf-size": bufSize,
			})
	}

	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, "failed to seek to section"),
			errors.Fields{
				"offset": offset,
			})
	}

	if int64(bufSize) > length {
		bufSize = int(length)
	}

	// bufio enforces a minimal size of 16 bytes
	if bufSize <= 0 {
		bufSize = 1
	}

	return &Section{
		src:    r,
		buf:    bufio.NewReaderSize(io.LimitReader(r, length), bufSize),
		offset: offset,
		length: length,
	}, nil
}

func (s *Section) Read(p []byte) (int, error) {
	return s.buf.Read(p)
}

// Offset returns the start of the section in the underlying store.
func (s *Section) Offset() int64 {
	return s.offset
}

// Len returns the size of the section.
func (s *Section) Len() int64 {
	return s.length
}

// Close closes the underlying store handle when it is closable.
func (s *Section) Close() error {
	if c, ok := s.src.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
