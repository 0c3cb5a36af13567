package types //nolint:dupl // it's cleaner to keep each type separate, even with duplication

import (
	"encoding/binary"
	"io"

	"github.com/hexbee-net/strata/encoding"
)

// Encoding_PLAIN //////////////////////////////////////////////////////////////

// Encoder /////////////////////////////

type Int64PlainEncoder struct {
	writer io.Writer
}

func (e *Int64PlainEncoder) Init(writer io.Writer) error {
	if err := checkWriter(writer); err != nil {
		return err
	}

	e.writer = writer

	return nil
}

func (e *Int64PlainEncoder) EncodeValues(values interface{}) error {
	v, ok := values.([]int64)
	if !ok {
		return invalidType([]int64(nil), values)
	}

	return binary.Write(e.writer, binary.LittleEndian, v)
}

func (e *Int64PlainEncoder) Close() error {
	return nil
}

// Decoder /////////////////////////////

type Int64PlainDecoder struct {
	reader io.Reader
}

func (d *Int64PlainDecoder) Init(reader io.Reader) error {
	if err := checkReader(reader); err != nil {
		return err
	}

	d.reader = reader

	return nil
}

func (d *Int64PlainDecoder) DecodeValues(count int) (interface{}, error) {
	buf, err := readFull(d.reader, 8*count)
	if err != nil {
		return nil, err
	}

	res := make([]int64, count)
	for i := range res {
		res[i] = int64(binary.LittleEndian.Uint64(buf[8*i:]))
	}

	return res, nil
}

// Encoding_DELTA_BINARY_PACKED ////////////////////////////////////////////////

// Encoder /////////////////////////////

type Int64DeltaBPEncoder struct {
	encoding.DeltaBinaryPackEncoder64
}

func (e *Int64DeltaBPEncoder) EncodeValues(values interface{}) error {
	v, ok := values.([]int64)
	if !ok {
		return invalidType([]int64(nil), values)
	}

	return e.Encode(v)
}

// Decoder /////////////////////////////

type Int64DeltaBPDecoder struct {
	encoding.DeltaBinaryPackDecoder64
}

func (d *Int64DeltaBPDecoder) DecodeValues(count int) (interface{}, error) {
	if err := checkCount(d.Count(), count); err != nil {
		return nil, err
	}

	res := make([]int64, count)
	for i := range res {
		v, err := d.Next()
		if err != nil {
			return nil, err
		}

		res[i] = v
	}

	return res, nil
}
