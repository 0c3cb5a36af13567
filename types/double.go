package types //nolint:dupl // it's cleaner to keep each type separate, even with duplication

import (
	"encoding/binary"
	"io"
	"math"
)

// Encoding_PLAIN //////////////////////////////////////////////////////////////

// Encoder /////////////////////////////

type DoublePlainEncoder struct {
	writer io.Writer
}

func (e *DoublePlainEncoder) Init(writer io.Writer) error {
	if err := checkWriter(writer); err != nil {
		return err
	}

	e.writer = writer

	return nil
}

func (e *DoublePlainEncoder) EncodeValues(values interface{}) error {
	v, ok := values.([]float64)
	if !ok {
		return invalidType([]float64(nil), values)
	}

	return binary.Write(e.writer, binary.LittleEndian, v)
}

func (e *DoublePlainEncoder) Close() error {
	return nil
}

// Decoder /////////////////////////////

type DoublePlainDecoder struct {
	reader io.Reader
}

func (d *DoublePlainDecoder) Init(reader io.Reader) error {
	if err := checkReader(reader); err != nil {
		return err
	}

	d.reader = reader

	return nil
}

func (d *DoublePlainDecoder) DecodeValues(count int) (interface{}, error) {
	buf, err := readFull(d.reader, 8*count)
	if err != nil {
		return nil, err
	}

	res := make([]float64, count)
	for i := range res {
		res[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[8*i:]))
	}

	return res, nil
}
