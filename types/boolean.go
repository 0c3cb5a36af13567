package types

import (
	"io"

	"github.com/hexbee-net/strata/encoding"
)

// Encoding_PLAIN //////////////////////////////////////////////////////////////

// Encoder /////////////////////////////

// BooleanPlainEncoder packs values one bit each; the bits are written on Close.
type BooleanPlainEncoder struct {
	writer io.Writer
	values []bool
}

func (e *BooleanPlainEncoder) Init(writer io.Writer) error {
	if err := checkWriter(writer); err != nil {
		return err
	}

	e.writer = writer
	e.values = e.values[:0]

	return nil
}

func (e *BooleanPlainEncoder) EncodeValues(values interface{}) error {
	v, ok := values.([]bool)
	if !ok {
		return invalidType([]bool(nil), values)
	}

	e.values = append(e.values, v...)

	return nil
}

func (e *BooleanPlainEncoder) Close() error {
	return encoding.WriteFull(e.writer, encoding.PackBools(nil, e.values))
}

// Decoder /////////////////////////////

type BooleanPlainDecoder struct {
	reader io.Reader
}

func (d *BooleanPlainDecoder) Init(reader io.Reader) error {
	if err := checkReader(reader); err != nil {
		return err
	}

	d.reader = reader

	return nil
}

func (d *BooleanPlainDecoder) DecodeValues(count int) (interface{}, error) {
	buf, err := readFull(d.reader, encoding.PackedSize(count, 1))
	if err != nil {
		return nil, err
	}

	res := make([]bool, count)
	encoding.UnpackBools(res, buf)

	return res, nil
}

// Encoding_RLE ////////////////////////////////////////////////////////////////

// Encoder /////////////////////////////

type BooleanRLEEncoder struct {
	encoder *encoding.HybridEncoder
}

func (e *BooleanRLEEncoder) Init(writer io.Writer) error {
	enc, err := encoding.NewHybridEncoder(1)
	if err != nil {
		return err
	}

	e.encoder = enc

	return e.encoder.InitSize(writer)
}

func (e *BooleanRLEEncoder) EncodeValues(values interface{}) error {
	v, ok := values.([]bool)
	if !ok {
		return invalidType([]bool(nil), values)
	}

	return e.encoder.EncodeBools(v)
}

func (e *BooleanRLEEncoder) Close() error {
	return e.encoder.Close()
}

// Decoder /////////////////////////////

type BooleanRLEDecoder struct {
	decoder *encoding.HybridDecoder
}

func (d *BooleanRLEDecoder) Init(reader io.Reader) error {
	dec, err := encoding.NewHybridDecoder(1)
	if err != nil {
		return err
	}

	d.decoder = dec

	return d.decoder.InitSize(reader)
}

func (d *BooleanRLEDecoder) DecodeValues(count int) (interface{}, error) {
	res := make([]bool, count)
	if err := d.decoder.NextBools(res); err != nil {
		return nil, err
	}

	return res, nil
}
