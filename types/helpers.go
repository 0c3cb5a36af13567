package types

import (
	"io"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/encoding"
)

func checkWriter(w io.Writer) error {
	if w == nil {
		return errors.WithStack(errNilWriter)
	}

	return nil
}

func checkReader(r io.Reader) error {
	if r == nil {
		return errors.WithStack(errNilReader)
	}

	return nil
}

func checkCount(expected, actual int) error {
	if expected != actual {
		return errors.WithFields(
			errors.WithStack(errCountMismatch),
			errors.Fields{
				"expected": expected,
				"actual":   actual,
			})
	}

	return nil
}

func decodeInt32(d encoding.Decoder, count int) ([]int32, error) {
	data := make([]int32, count)
	if err := encoding.DecodeInt32(d, data); err != nil {
		return nil, err
	}

	return data, nil
}

// readFull reads n bytes, failing before allocating when the reader is known
// to hold less.
func readFull(r io.Reader, n int) ([]byte, error) {
	if l, ok := r.(interface{ Len() int }); ok && l.Len() < n {
		return nil, errors.WithFields(
			errors.WithStack(io.ErrUnexpectedEOF),
			errors.Fields{
				"expected": n,
				"actual":   l.Len(),
			})
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}

	return buf, nil
}

// prefix returns the length of the common prefix of b1 and b2.
func prefix(b1, b2 []byte) int {
	l := len(b1)
	if l2 := len(b2); l > l2 {
		l = l2
	}

	for i := 0; i < l; i++ {
		if b1[i] != b2[i] {
			return i
		}
	}

	return l
}
