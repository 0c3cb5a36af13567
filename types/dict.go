package types

import (
	"bytes"
	"io"
	"math"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/encoding"
)

const errInvalidDictionary = errors.Error("invalid dictionary")

// Encoding_RLE_DICTIONARY /////////////////////////////////////////////////////
//
// uvarint(dictionary size)
// dictionary values, PLAIN encoded
// bit-width of the indices on 1 byte
// indices, hybrid encoded with a 4-byte size prefix
//
// The dictionary lives in the page itself so every page decodes on its own.

// Encoder /////////////////////////////

// DictEncoder buffers the values of a page and writes them as a dictionary of
// distinct values, in first-seen order, followed by one index per value.
type DictEncoder struct {
	typ    Type
	writer io.Writer

	ints32  []int32
	ints64  []int64
	floats  []float32
	doubles []float64
	arrays  [][]byte
}

func NewDictEncoder(t Type) *DictEncoder {
	return &DictEncoder{typ: t}
}

func (e *DictEncoder) Init(writer io.Writer) error {
	if err := checkWriter(writer); err != nil {
		return err
	}

	e.writer = writer
	e.ints32 = e.ints32[:0]
	e.ints64 = e.ints64[:0]
	e.floats = e.floats[:0]
	e.doubles = e.doubles[:0]
	e.arrays = e.arrays[:0]

	return nil
}

func (e *DictEncoder) EncodeValues(values interface{}) error {
	var ok bool

	switch e.typ {
	case Int32:
		var v []int32
		if v, ok = values.([]int32); ok {
			e.ints32 = append(e.ints32, v...)
		}
	case Int64:
		var v []int64
		if v, ok = values.([]int64); ok {
			e.ints64 = append(e.ints64, v...)
		}
	case Float:
		var v []float32
		if v, ok = values.([]float32); ok {
			e.floats = append(e.floats, v...)
		}
	case Double:
		var v []float64
		if v, ok = values.([]float64); ok {
			e.doubles = append(e.doubles, v...)
		}
	case ByteArray:
		var v [][]byte
		if v, ok = values.([][]byte); ok {
			e.arrays = append(e.arrays, v...)
		}
	default:
		return unsupported(e.typ, RLEDictionary)
	}

	if !ok {
		return invalidType(e.zero(), values)
	}

	return nil
}

func (e *DictEncoder) Close() error {
	var (
		dict    interface{}
		size    int
		indices []int32
	)

	switch e.typ {
	case Int32:
		d, idx := dictionary(e.ints32, func(v int32) int32 { return v })
		dict, size, indices = d, len(d), idx
	case Int64:
		d, idx := dictionary(e.ints64, func(v int64) int64 { return v })
		dict, size, indices = d, len(d), idx
	case Float:
		d, idx := dictionary(e.floats, math.Float32bits)
		dict, size, indices = d, len(d), idx
	case Double:
		d, idx := dictionary(e.doubles, math.Float64bits)
		dict, size, indices = d, len(d), idx
	case ByteArray:
		d, idx := dictionary(e.arrays, func(v []byte) string { return string(v) })
		dict, size, indices = d, len(d), idx
	default:
		return unsupported(e.typ, RLEDictionary)
	}

	if err := encoding.WriteUVarInt64(e.writer, uint64(size)); err != nil {
		return err
	}

	if err := EncodeValues(e.writer, e.typ, Plain, dict); err != nil {
		return errors.Wrap(err, "failed to write dictionary values")
	}

	bitWidth := dictBitWidth(size)
	if err := encoding.WriteFull(e.writer, []byte{byte(bitWidth)}); err != nil {
		return err
	}

	enc, err := encoding.NewHybridEncoder(bitWidth)
	if err != nil {
		return err
	}

	if err := enc.InitSize(e.writer); err != nil {
		return err
	}

	if err := enc.Encode(indices); err != nil {
		return err
	}

	return enc.Close()
}

func (e *DictEncoder) zero() interface{} {
	switch e.typ {
	case Int32:
		return []int32(nil)
	case Int64:
		return []int64(nil)
	case Float:
		return []float32(nil)
	case Double:
		return []float64(nil)
	}

	return [][]byte(nil)
}

// Decoder /////////////////////////////

type DictDecoder struct {
	typ    Type
	reader io.Reader
}

func NewDictDecoder(t Type) *DictDecoder {
	return &DictDecoder{typ: t}
}

func (d *DictDecoder) Init(reader io.Reader) error {
	if err := checkReader(reader); err != nil {
		return err
	}

	d.reader = reader

	return nil
}

func (d *DictDecoder) DecodeValues(count int) (interface{}, error) {
	s, err := encoding.ReadUVarInt32(d.reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read dictionary size")
	}

	size := int(s)
	if size > count || (size == 0 && count > 0) {
		return nil, errors.WithFields(
			errors.WithStack(errInvalidDictionary),
			errors.Fields{
				"size":  size,
				"count": count,
			})
	}

	dict, err := DecodeValues(d.reader, d.typ, Plain, size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read dictionary values")
	}

	bw, err := readFull(d.reader, 1)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read dictionary index bit-width")
	}

	if bitWidth := dictBitWidth(size); int(bw[0]) != bitWidth {
		return nil, errors.WithFields(
			errors.WithStack(errInvalidDictionary),
			errors.Fields{
				"bit-width": bw[0],
				"expected":  bitWidth,
			})
	}

	dec, err := encoding.NewHybridDecoder(int(bw[0]))
	if err != nil {
		return nil, err
	}

	if err := dec.InitSize(d.reader); err != nil {
		return nil, err
	}

	indices := make([]int32, count)
	for i := range indices {
		idx, err := dec.Next()
		if err != nil {
			return nil, errors.Wrap(err, "failed to read dictionary index")
		}

		if idx < 0 || int(idx) >= size {
			return nil, errors.WithFields(
				errors.WithStack(errInvalidDictionary),
				errors.Fields{
					"index": idx,
					"size":  size,
				})
		}

		indices[i] = idx
	}

	switch v := dict.(type) {
	case []int32:
		return gather(v, indices), nil
	case []int64:
		return gather(v, indices), nil
	case []float32:
		return gather(v, indices), nil
	case []float64:
		return gather(v, indices), nil
	case [][]byte:
		res := gather(v, indices)
		for i := range res {
			res[i] = bytes.Clone(res[i])
		}

		return res, nil
	}

	return nil, unsupported(d.typ, RLEDictionary)
}

// dictionary returns the distinct values in first-seen order and the index of
// each value in that dictionary.
func dictionary[T any, K comparable](values []T, key func(T) K) ([]T, []int32) {
	seen := make(map[K]int32)
	dict := make([]T, 0)
	indices := make([]int32, len(values))

	for i, v := range values {
		k := key(v)

		id, ok := seen[k]
		if !ok {
			id = int32(len(dict))
			seen[k] = id
			dict = append(dict, v)
		}

		indices[i] = id
	}

	return dict, indices
}

func gather[T any](dict []T, indices []int32) []T {
	res := make([]T, len(indices))
	for i, idx := range indices {
		res[i] = dict[idx]
	}

	return res
}

func dictBitWidth(size int) int {
	if size <= 1 {
		return 0
	}

	return encoding.BitWidth(uint64(size - 1))
}
