package encoding

import (
	"encoding/binary"
	"io"
	"math"
	"math/bits"

	"github.com/hexbee-net/errors"
)

type byteReader struct {
	io.Reader
	buf [1]byte
}

func (r *byteReader) ReadByte() (byte, error) {
	if _, err := io.ReadFull(r.Reader, r.buf[:]); err != nil {
		return 0, err
	}

	return r.buf[0], nil
}

// ByteReader returns r as an io.ByteReader, wrapping it when needed.
func ByteReader(r io.Reader) io.ByteReader {
	if b, ok := r.(io.ByteReader); ok {
		return b
	}

	return &byteReader{Reader: r}
}

func ReadUVarInt32(r io.Reader) (int32, error) {
	i, err := binary.ReadUvarint(ByteReader(r))
	if err != nil {
		return 0, err
	}

	if i > math.MaxInt32 {
		return 0, errors.WithFields(
			errors.WithStack(errOutOfRange),
			errors.Fields{
				"value": i,
			})
	}

	return int32(i), nil
}

func ReadVarInt32(r io.Reader) (int32, error) {
	i, err := binary.ReadVarint(ByteReader(r))
	if err != nil {
		return 0, err
	}

	if i > math.MaxInt32 || i < math.MinInt32 {
		return 0, errors.WithFields(
			errors.WithStack(errOutOfRange),
			errors.Fields{
				"value": i,
			})
	}

	return int32(i), nil
}

func ReadUVarInt64(r io.Reader) (uint64, error) {
	return binary.ReadUvarint(ByteReader(r))
}

func ReadVarInt64(r io.Reader) (int64, error) {
	return binary.ReadVarint(ByteReader(r))
}

func WriteVarInt64(w io.Writer, in int64) error {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutVarint(buf[:], in)

	return WriteFull(w, buf[:n])
}

func WriteUVarInt64(w io.Writer, in uint64) error {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], in)

	return WriteFull(w, buf[:n])
}

// WriteFull writes buf entirely or reports why it could not.
func WriteFull(w io.Writer, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}

	cnt, err := w.Write(buf)
	if err != nil {
		return err
	}

	if cnt != len(buf) {
		return errors.WithFields(
			errors.New("invalid number of bytes written"),
			errors.Fields{
				"expected": len(buf),
				"actual":   cnt,
			})
	}

	return nil
}

// writeIntLittleEndian writes the size low bytes of in.
func writeIntLittleEndian(w io.Writer, in uint64, size int) error {
	var buf [8]byte
	for i := 0; i < size; i++ {
		buf[i] = byte(in >> (8 * uint(i)))
	}

	return WriteFull(w, buf[:size])
}

func readIntLittleEndian(r io.Reader, size int) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:size]); err != nil {
		return 0, err
	}

	var v uint64
	for i := 0; i < size; i++ {
		v |= uint64(buf[i]) << (8 * uint(i))
	}

	return v, nil
}

// BitWidth returns the number of bits needed to represent max.
func BitWidth(max uint64) int {
	return bits.Len64(max)
}

// checkAvailable fails early when r knows it holds fewer than size bytes.
func checkAvailable(r io.Reader, size uint32) error {
	l, ok := r.(interface{ Len() int })
	if !ok || int64(size) <= int64(l.Len()) {
		return nil
	}

	return errors.WithFields(
		errors.WithStack(io.ErrUnexpectedEOF),
		errors.Fields{
			"size":      size,
			"available": l.Len(),
		})
}
