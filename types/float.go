package types //nolint:dupl // it's cleaner to keep each type separate, even with duplication

import (
	"encoding/binary"
	"io"
	"math"
)

// Encoding_PLAIN //////////////////////////////////////////////////////////////

// Encoder /////////////////////////////

type FloatPlainEncoder struct {
	writer io.Writer
}

func (e *FloatPlainEncoder) Init(writer io.Writer) error {
	if err := checkWriter(writer); err != nil {
		return err
	}

	e.writer = writer

	return nil
}

func (e *FloatPlainEncoder) EncodeValues(values interface{}) error {
	v, ok := values.([]float32)
	if !ok {
		return invalidType([]float32(nil), values)
	}

	return binary.Write(e.writer, binary.LittleEndian, v)
}

func (e *FloatPlainEncoder) Close() error {
	return nil
}

// Decoder /////////////////////////////

type FloatPlainDecoder struct {
	reader io.Reader
}

func (d *FloatPlainDecoder) Init(reader io.Reader) error {
	if err := checkReader(reader); err != nil {
		return err
	}

	d.reader = reader

	return nil
}

func (d *FloatPlainDecoder) DecodeValues(count int) (interface{}, error) {
	buf, err := readFull(d.reader, 4*count)
	if err != nil {
		return nil, err
	}

	res := make([]float32, count)
	for i := range res {
		res[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}

	return res, nil
}
