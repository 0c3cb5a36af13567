package types //nolint:dupl // it's cleaner to keep each type separate, even with duplication

import (
	"encoding/binary"
	"io"

	"github.com/hexbee-net/strata/encoding"
)

// Encoding_PLAIN //////////////////////////////////////////////////////////////

// Encoder /////////////////////////////

type Int32PlainEncoder struct {
	writer io.Writer
}

func (e *Int32PlainEncoder) Init(writer io.Writer) error {
	if err := checkWriter(writer); err != nil {
		return err
	}

	e.writer = writer

	return nil
}

func (e *Int32PlainEncoder) EncodeValues(values interface{}) error {
	v, ok := values.([]int32)
	if !ok {
		return invalidType([]int32(nil), values)
	}

	return binary.Write(e.writer, binary.LittleEndian, v)
}

func (e *Int32PlainEncoder) Close() error {
	return nil
}

// Decoder /////////////////////////////

type Int32PlainDecoder struct {
	reader io.Reader
}

func (d *Int32PlainDecoder) Init(reader io.Reader) error {
	if err := checkReader(reader); err != nil {
		return err
	}

	d.reader = reader

	return nil
}

func (d *Int32PlainDecoder) DecodeValues(count int) (interface{}, error) {
	buf, err := readFull(d.reader, 4*count)
	if err != nil {
		return nil, err
	}

	res := make([]int32, count)
	for i := range res {
		res[i] = int32(binary.LittleEndian.Uint32(buf[4*i:]))
	}

	return res, nil
}

// Encoding_DELTA_BINARY_PACKED ////////////////////////////////////////////////

// Encoder /////////////////////////////

type Int32DeltaBPEncoder struct {
	encoding.DeltaBinaryPackEncoder32
}

func (e *Int32DeltaBPEncoder) EncodeValues(values interface{}) error {
	v, ok := values.([]int32)
	if !ok {
		return invalidType([]int32(nil), values)
	}

	return e.Encode(v)
}

// Decoder /////////////////////////////

type Int32DeltaBPDecoder struct {
	encoding.DeltaBinaryPackDecoder32
}

func (d *Int32DeltaBPDecoder) DecodeValues(count int) (interface{}, error) {
	if err := checkCount(d.Count(), count); err != nil {
		return nil, err
	}

	return decodeInt32(&d.DeltaBinaryPackDecoder32, count)
}
