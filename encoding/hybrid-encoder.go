package encoding

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/hexbee-net/errors"
)

// minRLERun is the shortest run of repeated values emitted as an RLE run.
const minRLERun = 8

// HybridEncoder writes int32 values as a sequence of RLE and bit-packed runs.
//
// RLE run:        uvarint(count << 1), value on ceil(bitWidth/8) bytes
// bit-packed run: uvarint(groups << 1 | 1), groups*8 values packed on bitWidth bits
//
// The last bit-packed run is padded with zeros; readers must know the value count.
type HybridEncoder struct {
	w        io.Writer
	original io.Writer

	bitWidth int
	max      uint64
	values   []int32
}

// NewHybridEncoder creates an encoder for values on bitWidth bits (0 to 32).
func NewHybridEncoder(bitWidth int) (*HybridEncoder, error) {
	if bitWidth < 0 || bitWidth > 32 {
		return nil, errors.WithFields(
			errors.WithStack(errInvalidBitWidth),
			errors.Fields{
				"bit-width": bitWidth,
			})
	}

	return &HybridEncoder{
		bitWidth: bitWidth,
		max:      uint64(1)<<uint(bitWidth) - 1,
	}, nil
}

func (e *HybridEncoder) Init(writer io.Writer) error {
	if writer == nil {
		return errors.WithStack(errNilWriter)
	}

	e.w = writer
	e.original = nil
	e.values = e.values[:0]

	return nil
}

// InitSize initializes the encoder so that Close prefixes the runs with their
// byte size as a 4-byte little-endian integer.
func (e *HybridEncoder) InitSize(writer io.Writer) error {
	if writer == nil {
		return errors.WithStack(errNilWriter)
	}

	if err := e.Init(&bytes.Buffer{}); err != nil {
		return err
	}

	e.original = writer

	return nil
}

func (e *HybridEncoder) Encode(data []int32) error {
	for _, v := range data {
		if err := e.AppendSingle(v); err != nil {
			return err
		}
	}

	return nil
}

// EncodeBools appends one value per bool (1 for true). The bit-width must be at least 1.
func (e *HybridEncoder) EncodeBools(data []bool) error {
	if e.bitWidth == 0 {
		return errors.WithFields(
			errors.WithStack(errInvalidBitWidth),
			errors.Fields{
				"bit-width": e.bitWidth,
			})
	}

	for _, v := range data {
		var i int32
		if v {
			i = 1
		}

		e.values = append(e.values, i)
	}

	return nil
}

func (e *HybridEncoder) AppendSingle(v int32) error {
	if v < 0 || uint64(v) > e.max {
		return errors.WithFields(
			errors.WithStack(errOutOfRange),
			errors.Fields{
				"value":     v,
				"bit-width": e.bitWidth,
			})
	}

	e.values = append(e.values, v)

	return nil
}

// Close flushes the buffered values.
func (e *HybridEncoder) Close() error {
	if e.w == nil {
		return errors.WithStack(errNilWriter)
	}

	if e.bitWidth > 0 {
		if err := e.flush(); err != nil {
			return err
		}
	}

	e.values = e.values[:0]

	if e.original == nil {
		return nil
	}

	data := e.w.(*bytes.Buffer).Bytes()
	if err := binary.Write(e.original, binary.LittleEndian, uint32(len(data))); err != nil {
		return err
	}

	return WriteFull(e.original, data)
}

func (e *HybridEncoder) flush() error {
	v := e.values

	for i := 0; i < len(v); {
		if run := runLength(v, i); run >= minRLERun {
			if err := e.rleEncode(v[i], run); err != nil {
				return err
			}

			i += run

			continue
		}

		j := i
		for j < len(v) && runLength(v, j) < minRLERun {
			j += 8
		}

		if j > len(v) {
			j = len(v)
		}

		if err := e.bpEncode(v[i:j]); err != nil {
			return err
		}

		i = j
	}

	return nil
}

func (e *HybridEncoder) rleEncode(value int32, count int) error {
	if err := WriteUVarInt64(e.w, uint64(count)<<1); err != nil {
		return err
	}

	return writeIntLittleEndian(e.w, uint64(value), (e.bitWidth+7)/8)
}

func (e *HybridEncoder) bpEncode(values []int32) error {
	groups := (len(values) + 7) / 8

	if err := WriteUVarInt64(e.w, uint64(groups)<<1|1); err != nil {
		return err
	}

	buf := make([]uint64, groups*8)
	for i, v := range values {
		buf[i] = uint64(v)
	}

	return WriteFull(e.w, Pack(nil, buf, e.bitWidth))
}

func runLength(v []int32, start int) int {
	n := 1
	for start+n < len(v) && v[start+n] == v[start] {
		n++
	}

	return n
}
