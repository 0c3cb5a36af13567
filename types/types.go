// Package types implements the physical value encodings of leaf columns.
//
// Every physical type has one encoder and one decoder per supported encoding.
// They operate on typed slices ([]bool, []int32, []int64, []float32, []float64
// and [][]byte) and are selected by NewValuesEncoder and NewValuesDecoder.
package types

import (
	"fmt"
	"io"
	"reflect"

	"github.com/hexbee-net/errors"
)

const (
	errInvalidType         = errors.Error("invalid type")
	errNilWriter           = errors.Error("writer is nil")
	errNilReader           = errors.Error("reader is nil")
	errUnsupportedEncoding = errors.Error("unsupported encoding")
	errCountMismatch       = errors.Error("value count mismatch")
	errInvalidLength       = errors.Error("invalid byte array length")
)

// Type is the physical type of leaf values.
type Type int32

const (
	Boolean   Type = 0
	Int32     Type = 1
	Int64     Type = 2
	Float     Type = 4
	Double    Type = 5
	ByteArray Type = 6
)

func (t Type) String() string {
	switch t {
	case Boolean:
		return "BOOLEAN"
	case Int32:
		return "INT32"
	case Int64:
		return "INT64"
	case Float:
		return "FLOAT"
	case Double:
		return "DOUBLE"
	case ByteArray:
		return "BYTE_ARRAY"
	}

	return fmt.Sprintf("Type(%d)", int32(t))
}

// Valid reports whether t is a known physical type.
func (t Type) Valid() bool {
	switch t {
	case Boolean, Int32, Int64, Float, Double, ByteArray:
		return true
	}

	return false
}

// Encoding identifies how a page stores its values.
type Encoding int32

const (
	Plain                Encoding = 0
	RLE                  Encoding = 3
	DeltaBinaryPacked    Encoding = 5
	DeltaLengthByteArray Encoding = 6
	DeltaByteArray       Encoding = 7
	RLEDictionary        Encoding = 8
)

func (e Encoding) String() string {
	switch e {
	case Plain:
		return "PLAIN"
	case RLE:
		return "RLE"
	case DeltaBinaryPacked:
		return "DELTA_BINARY_PACKED"
	case DeltaLengthByteArray:
		return "DELTA_LENGTH_BYTE_ARRAY"
	case DeltaByteArray:
		return "DELTA_BYTE_ARRAY"
	case RLEDictionary:
		return "RLE_DICTIONARY"
	}

	return fmt.Sprintf("Encoding(%d)", int32(e))
}

type ValuesEncoder interface {
	io.Closer

	Init(io.Writer) error
	// EncodeValues appends a typed slice of values.
	EncodeValues(values interface{}) error
}

type ValuesDecoder interface {
	Init(io.Reader) error

	// DecodeValues returns exactly count values as a typed slice.
	DecodeValues(count int) (interface{}, error)
}

// DefaultEncoding is the most compact encoding supported for t.
func DefaultEncoding(t Type) Encoding {
	switch t {
	case Boolean:
		return RLE
	case Int32, Int64:
		return DeltaBinaryPacked
	case ByteArray:
		return DeltaLengthByteArray
	}

	return Plain
}

// NewValuesEncoder returns the encoder of t values using enc.
func NewValuesEncoder(t Type, enc Encoding) (ValuesEncoder, error) {
	switch t {
	case Boolean:
		switch enc {
		case Plain:
			return &BooleanPlainEncoder{}, nil
		case RLE:
			return &BooleanRLEEncoder{}, nil
		}
	case Int32:
		switch enc {
		case Plain:
			return &Int32PlainEncoder{}, nil
		case DeltaBinaryPacked:
			return &Int32DeltaBPEncoder{}, nil
		case RLEDictionary:
			return NewDictEncoder(t), nil
		}
	case Int64:
		switch enc {
		case Plain:
			return &Int64PlainEncoder{}, nil
		case DeltaBinaryPacked:
			return &Int64DeltaBPEncoder{}, nil
		case RLEDictionary:
			return NewDictEncoder(t), nil
		}
	case Float:
		switch enc {
		case Plain:
			return &FloatPlainEncoder{}, nil
		case RLEDictionary:
			return NewDictEncoder(t), nil
		}
	case Double:
		switch enc {
		case Plain:
			return &DoublePlainEncoder{}, nil
		case RLEDictionary:
			return NewDictEncoder(t), nil
		}
	case ByteArray:
		switch enc {
		case Plain:
			return &ByteArrayPlainEncoder{}, nil
		case DeltaLengthByteArray:
			return &ByteArrayDeltaLengthEncoder{}, nil
		case DeltaByteArray:
			return &ByteArrayDeltaEncoder{}, nil
		case RLEDictionary:
			return NewDictEncoder(t), nil
		}
	}

	return nil, unsupported(t, enc)
}

// NewValuesDecoder returns the decoder of t values stored with enc.
func NewValuesDecoder(t Type, enc Encoding) (ValuesDecoder, error) {
	switch t {
	case Boolean:
		switch enc {
		case Plain:
			return &BooleanPlainDecoder{}, nil
		case RLE:
			return &BooleanRLEDecoder{}, nil
		}
	case Int32:
		switch enc {
		case Plain:
			return &Int32PlainDecoder{}, nil
		case DeltaBinaryPacked:
			return &Int32DeltaBPDecoder{}, nil
		case RLEDictionary:
			return NewDictDecoder(t), nil
		}
	case Int64:
		switch enc {
		case Plain:
			return &Int64PlainDecoder{}, nil
		case DeltaBinaryPacked:
			return &Int64DeltaBPDecoder{}, nil
		case RLEDictionary:
			return NewDictDecoder(t), nil
		}
	case Float:
		switch enc {
		case Plain:
			return &FloatPlainDecoder{}, nil
		case RLEDictionary:
			return NewDictDecoder(t), nil
		}
	case Double:
		switch enc {
		case Plain:
			return &DoublePlainDecoder{}, nil
		case RLEDictionary:
			return NewDictDecoder(t), nil
		}
	case ByteArray:
		switch enc {
		case Plain:
			return &ByteArrayPlainDecoder{}, nil
		case DeltaLengthByteArray:
			return &ByteArrayDeltaLengthDecoder{}, nil
		case DeltaByteArray:
			return &ByteArrayDeltaDecoder{}, nil
		case RLEDictionary:
			return NewDictDecoder(t), nil
		}
	}

	return nil, unsupported(t, enc)
}

// EncodeValues writes values of type t to w using enc.
func EncodeValues(w io.Writer, t Type, enc Encoding, values interface{}) error {
	e, err := NewValuesEncoder(t, enc)
	if err != nil {
		return err
	}

	if err := e.Init(w); err != nil {
		return err
	}

	if err := e.EncodeValues(values); err != nil {
		return err
	}

	return e.Close()
}

// DecodeValues reads count values of type t from r.
func DecodeValues(r io.Reader, t Type, enc Encoding, count int) (interface{}, error) {
	d, err := NewValuesDecoder(t, enc)
	if err != nil {
		return nil, err
	}

	if err := d.Init(r); err != nil {
		return nil, err
	}

	return d.DecodeValues(count)
}

func unsupported(t Type, enc Encoding) error {
	return errors.WithFields(
		errors.WithStack(errUnsupportedEncoding),
		errors.Fields{
			"type":     t.String(),
			"encoding": enc.String(),
		})
}

func invalidType(expected, actual interface{}) error {
	return errors.WithFields(
		errors.WithStack(errInvalidType),
		errors.Fields{
			"expected": reflect.TypeOf(expected).String(),
			"actual":   fmt.Sprintf("%T", actual),
		})
}
