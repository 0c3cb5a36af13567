package types

import (
	"encoding/binary"
	"io"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/encoding"
)

// maxByteArrayLen bounds a single decoded value.
const maxByteArrayLen = 1 << 30

// Encoding_PLAIN //////////////////////////////////////////////////////////////

// Encoder /////////////////////////////

// ByteArrayPlainEncoder writes each value as a 4-byte little-endian length
// followed by its bytes.
type ByteArrayPlainEncoder struct {
	writer io.Writer
}

func (e *ByteArrayPlainEncoder) Init(writer io.Writer) error {
	if err := checkWriter(writer); err != nil {
		return err
	}

	e.writer = writer

	return nil
}

func (e *ByteArrayPlainEncoder) EncodeValues(values interface{}) error {
	v, ok := values.([][]byte)
	if !ok {
		return invalidType([][]byte(nil), values)
	}

	var l [4]byte

	for i := range v {
		binary.LittleEndian.PutUint32(l[:], uint32(len(v[i])))

		if err := encoding.WriteFull(e.writer, l[:]); err != nil {
			return err
		}

		if err := encoding.WriteFull(e.writer, v[i]); err != nil {
			return err
		}
	}

	return nil
}

func (e *ByteArrayPlainEncoder) Close() error {
	return nil
}

// Decoder /////////////////////////////

type ByteArrayPlainDecoder struct {
	reader io.Reader
}

func (d *ByteArrayPlainDecoder) Init(reader io.Reader) error {
	if err := checkReader(reader); err != nil {
		return err
	}

	d.reader = reader

	return nil
}

func (d *ByteArrayPlainDecoder) DecodeValues(count int) (interface{}, error) {
	res := make([][]byte, count)

	var l uint32

	for i := range res {
		if err := binary.Read(d.reader, binary.LittleEndian, &l); err != nil {
			return nil, errors.Wrap(err, "failed to read byte array length")
		}

		if l > maxByteArrayLen {
			return nil, errors.WithFields(
				errors.WithStack(errInvalidLength),
				errors.Fields{
					"length": l,
				})
		}

		buf, err := readFull(d.reader, int(l))
		if err != nil {
			return nil, errors.Wrap(err, "failed to read byte array value")
		}

		res[i] = buf
	}

	return res, nil
}

// Encoding_DELTA_LENGTH_BYTE_ARRAY ////////////////////////////////////////////

// Encoder /////////////////////////////

// ByteArrayDeltaLengthEncoder writes the delta-packed lengths of all values
// followed by their concatenated bytes.
type ByteArrayDeltaLengthEncoder struct {
	writer io.Writer

	lens []int32
	data [][]byte
}

func (e *ByteArrayDeltaLengthEncoder) Init(writer io.Writer) error {
	if err := checkWriter(writer); err != nil {
		return err
	}

	e.writer = writer
	e.lens = e.lens[:0]
	e.data = e.data[:0]

	return nil
}

func (e *ByteArrayDeltaLengthEncoder) EncodeValues(values interface{}) error {
	v, ok := values.([][]byte)
	if !ok {
		return invalidType([][]byte(nil), values)
	}

	for i := range v {
		e.writeOne(v[i])
	}

	return nil
}

func (e *ByteArrayDeltaLengthEncoder) writeOne(data []byte) {
	e.lens = append(e.lens, int32(len(data)))
	e.data = append(e.data, data)
}

func (e *ByteArrayDeltaLengthEncoder) Close() error {
	lens := &encoding.DeltaBinaryPackEncoder32{}

	if err := lens.Init(e.writer); err != nil {
		return err
	}

	if err := lens.Encode(e.lens); err != nil {
		return err
	}

	if err := lens.Close(); err != nil {
		return err
	}

	for i := range e.data {
		if err := encoding.WriteFull(e.writer, e.data[i]); err != nil {
			return err
		}
	}

	return nil
}

// Decoder /////////////////////////////

type ByteArrayDeltaLengthDecoder struct {
	reader io.Reader
	lens   []int32
}

func (d *ByteArrayDeltaLengthDecoder) Init(reader io.Reader) error {
	if err := checkReader(reader); err != nil {
		return err
	}

	d.reader = reader

	lensDecoder := encoding.DeltaBinaryPackDecoder32{}
	if err := lensDecoder.Init(reader); err != nil {
		return errors.Wrap(err, "failed to read byte array lengths")
	}

	lens, err := decodeInt32(&lensDecoder, lensDecoder.Count())
	if err != nil {
		return errors.Wrap(err, "failed to read byte array lengths")
	}

	d.lens = lens

	return nil
}

func (d *ByteArrayDeltaLengthDecoder) DecodeValues(count int) (interface{}, error) {
	if err := checkCount(len(d.lens), count); err != nil {
		return nil, err
	}

	total := 0

	for _, l := range d.lens {
		if l < 0 || l > maxByteArrayLen {
			return nil, errors.WithFields(
				errors.WithStack(errInvalidLength),
				errors.Fields{
					"length": l,
				})
		}

		total += int(l)
	}

	buf, err := readFull(d.reader, total)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read byte array data")
	}

	res := make([][]byte, count)

	pos := 0
	for i, l := range d.lens {
		end := pos + int(l)
		res[i] = buf[pos:end:end]
		pos = end
	}

	return res, nil
}

// Encoding_DELTA_BYTE_ARRAY ///////////////////////////////////////////////////

// Encoder /////////////////////////////

// ByteArrayDeltaEncoder stores each value as the length of the prefix shared
// with the previous value plus the remaining suffix.
type ByteArrayDeltaEncoder struct {
	writer io.Writer

	prefixLens    []int32
	previousValue []byte

	suffixes ByteArrayDeltaLengthEncoder
}

func (e *ByteArrayDeltaEncoder) Init(writer io.Writer) error {
	if err := checkWriter(writer); err != nil {
		return err
	}

	e.writer = writer
	e.prefixLens = e.prefixLens[:0]
	e.previousValue = nil

	return e.suffixes.Init(writer)
}

func (e *ByteArrayDeltaEncoder) EncodeValues(values interface{}) error {
	v, ok := values.([][]byte)
	if !ok {
		return invalidType([][]byte(nil), values)
	}

	for i := range v {
		pLen := prefix(e.previousValue, v[i])
		e.prefixLens = append(e.prefixLens, int32(pLen))
		e.suffixes.writeOne(v[i][pLen:])
		e.previousValue = v[i]
	}

	return nil
}

func (e *ByteArrayDeltaEncoder) Close() error {
	// prefix lengths first
	lens := &encoding.DeltaBinaryPackEncoder32{}

	if err := lens.Init(e.writer); err != nil {
		return err
	}

	if err := lens.Encode(e.prefixLens); err != nil {
		return err
	}

	if err := lens.Close(); err != nil {
		return err
	}

	return e.suffixes.Close()
}

// Decoder /////////////////////////////

type ByteArrayDeltaDecoder struct {
	prefixLens []int32
	suffixes   ByteArrayDeltaLengthDecoder
}

func (d *ByteArrayDeltaDecoder) Init(reader io.Reader) error {
	if err := checkReader(reader); err != nil {
		return err
	}

	lensDecoder := encoding.DeltaBinaryPackDecoder32{}
	if err := lensDecoder.Init(reader); err != nil {
		return errors.Wrap(err, "failed to read prefix lengths")
	}

	lens, err := decodeInt32(&lensDecoder, lensDecoder.Count())
	if err != nil {
		return errors.Wrap(err, "failed to read prefix lengths")
	}

	d.prefixLens = lens

	if err := d.suffixes.Init(reader); err != nil {
		return err
	}

	if len(d.prefixLens) != len(d.suffixes.lens) {
		return errors.WithFields(
			errors.New("bytearray/delta: different number of suffixes and prefixes"),
			errors.Fields{
				"prefix": len(d.prefixLens),
				"suffix": len(d.suffixes.lens),
			})
	}

	return nil
}

func (d *ByteArrayDeltaDecoder) DecodeValues(count int) (interface{}, error) {
	v, err := d.suffixes.DecodeValues(count)
	if err != nil {
		return nil, err
	}

	suffixes := v.([][]byte)
	res := make([][]byte, count)

	var previous []byte

	for i := range suffixes {
		prefixLen := int(d.prefixLens[i])
		if prefixLen < 0 || prefixLen > len(previous) {
			return nil, errors.WithFields(
				errors.New("invalid prefix len in the stream"),
				errors.Fields{
					"expected": prefixLen,
					"actual":   len(previous),
				})
		}

		value := make([]byte, 0, prefixLen+len(suffixes[i]))
		value = append(value, previous[:prefixLen]...)
		value = append(value, suffixes[i]...)

		res[i] = value
		previous = value
	}

	return res, nil
}
