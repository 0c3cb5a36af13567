package format

import (
	"github.com/apache/thrift/lib/go/thrift"
)

// PageHeader precedes every page body.
//
// NumRows counts the top-level rows of the page; NumSlots counts the leaf
// value slots, nulls included. CRC is the IEEE CRC-32 of the stored body.
type PageHeader struct {
	Type             int32
	Encoding         int32
	Codec            int32
	UncompressedSize int32
	CompressedSize   int32
	NumRows          int32
	NumSlots         int32
	NullCount        int32
	CRC              int32
}

func (p *PageHeader) Write(oprot thrift.TProtocol) error {
	if err := writeStructBegin(oprot, "PageHeader"); err != nil {
		return err
	}

	fields := []struct {
		name  string
		value int32
	}{
		{"type", p.Type},
		{"encoding", p.Encoding},
		{"codec", p.Codec},
		{"uncompressed_page_size", p.UncompressedSize},
		{"compressed_page_size", p.CompressedSize},
		{"num_rows", p.NumRows},
		{"num_slots", p.NumSlots},
		{"null_count", p.NullCount},
		{"crc", p.CRC},
	}

	for i, f := range fields {
		if err := writeI32Field(oprot, f.name, int16(i+1), f.value); err != nil {
			return err
		}
	}

	return writeStructEnd(oprot, "PageHeader")
}

func (p *PageHeader) Read(iprot thrift.TProtocol) error {
	var seen isset

	fields := []*int32{
		&p.Type,
		&p.Encoding,
		&p.Codec,
		&p.UncompressedSize,
		&p.CompressedSize,
		&p.NumRows,
		&p.NumSlots,
		&p.NullCount,
		&p.CRC,
	}

	err := readStruct(iprot, "PageHeader", func(id int16, typ thrift.TType) (bool, error) {
		if id < 1 || int(id) > len(fields) || typ != thrift.I32 {
			return false, nil
		}

		v, err := iprot.ReadI32()
		if err != nil {
			return true, err
		}

		*fields[id-1] = v
		seen.set(id)

		return true, nil
	})
	if err != nil {
		return err
	}

	return seen.check("PageHeader", 1, 2, 3, 4, 5, 6, 7, 8, 9)
}
