package format

import (
	"github.com/apache/thrift/lib/go/thrift"
)

// FileMetaData is the footer of a strata file.
type FileMetaData struct {
	Version          int32
	FileID           []byte
	NumRows          int64
	Schema           []*SchemaElement
	RowGroups        []*RowGroup
	KeyValueMetadata []*KeyValue
	CreatedBy        *string
	Codec            int32
}

func (f *FileMetaData) Write(oprot thrift.TProtocol) error {
	if err := writeStructBegin(oprot, "FileMetaData"); err != nil {
		return err
	}

	if err := writeI32Field(oprot, "version", 1, f.Version); err != nil {
		return err
	}

	if err := writeBinaryField(oprot, "file_id", 2, f.FileID); err != nil {
		return err
	}

	if err := writeI64Field(oprot, "num_rows", 3, f.NumRows); err != nil {
		return err
	}

	if err := writeStructListField(oprot, "schema", 4, len(f.Schema), func(i int) thriftWriter { return f.Schema[i] }); err != nil {
		return err
	}

	if err := writeStructListField(oprot, "row_groups", 5, len(f.RowGroups), func(i int) thriftWriter { return f.RowGroups[i] }); err != nil {
		return err
	}

	if len(f.KeyValueMetadata) > 0 {
		if err := writeStructListField(oprot, "key_value_metadata", 6, len(f.KeyValueMetadata), func(i int) thriftWriter { return f.KeyValueMetadata[i] }); err != nil {
			return err
		}
	}

	if f.CreatedBy != nil {
		if err := writeStringField(oprot, "created_by", 7, *f.CreatedBy); err != nil {
			return err
		}
	}

	if err := writeI32Field(oprot, "codec", 8, f.Codec); err != nil {
		return err
	}

	return writeStructEnd(oprot, "FileMetaData")
}

func (f *FileMetaData) Read(iprot thrift.TProtocol) error {
	var seen isset

	err := readStruct(iprot, "FileMetaData", func(id int16, typ thrift.TType) (bool, error) {
		var err error

		switch {
		case id == 1 && typ == thrift.I32:
			f.Version, err = iprot.ReadI32()
		case id == 2 && typ == thrift.STRING:
			f.FileID, err = iprot.ReadBinary()
		case id == 3 && typ == thrift.I64:
			f.NumRows, err = iprot.ReadI64()
		case id == 4 && typ == thrift.LIST:
			f.Schema = nil
			err = readStructList(iprot, func() thriftReader {
				e := &SchemaElement{}
				f.Schema = append(f.Schema, e)

				return e
			})
		case id == 5 && typ == thrift.LIST:
			f.RowGroups = nil
			err = readStructList(iprot, func() thriftReader {
				rg := &RowGroup{}
				f.RowGroups = append(f.RowGroups, rg)

				return rg
			})
		case id == 6 && typ == thrift.LIST:
			f.KeyValueMetadata = nil
			err = readStructList(iprot, func() thriftReader {
				kv := &KeyValue{}
				f.KeyValueMetadata = append(f.KeyValueMetadata, kv)

				return kv
			})
		case id == 7 && typ == thrift.STRING:
			var v string
			v, err = iprot.ReadString()
			f.CreatedBy = &v
		case id == 8 && typ == thrift.I32:
			f.Codec, err = iprot.ReadI32()
		default:
			return false, nil
		}

		seen.set(id)

		return true, err
	})
	if err != nil {
		return err
	}

	return seen.check("FileMetaData", 1, 3, 4, 5, 8)
}

// RowGroup holds the column chunks written by a single batch.
type RowGroup struct {
	NumRows       int64
	Columns       []*ColumnChunk
	TotalByteSize int64
}

func (r *RowGroup) Write(oprot thrift.TProtocol) error {
	if err := writeStructBegin(oprot, "RowGroup"); err != nil {
		return err
	}

	if err := writeI64Field(oprot, "num_rows", 1, r.NumRows); err != nil {
		return err
	}

	if err := writeStructListField(oprot, "columns", 2, len(r.Columns), func(i int) thriftWriter { return r.Columns[i] }); err != nil {
		return err
	}

	if err := writeI64Field(oprot, "total_byte_size", 3, r.TotalByteSize); err != nil {
		return err
	}

	return writeStructEnd(oprot, "RowGroup")
}

func (r *RowGroup) Read(iprot thrift.TProtocol) error {
	var seen isset

	err := readStruct(iprot, "RowGroup", func(id int16, typ thrift.TType) (bool, error) {
		var err error

		switch {
		case id == 1 && typ == thrift.I64:
			r.NumRows, err = iprot.ReadI64()
		case id == 2 && typ == thrift.LIST:
			r.Columns = nil
			err = readStructList(iprot, func() thriftReader {
				c := &ColumnChunk{}
				r.Columns = append(r.Columns, c)

				return c
			})
		case id == 3 && typ == thrift.I64:
			r.TotalByteSize, err = iprot.ReadI64()
		default:
			return false, nil
		}

		seen.set(id)

		return true, err
	})
	if err != nil {
		return err
	}

	return seen.check("RowGroup", 1, 2)
}

// ColumnChunk locates the pages of one leaf column inside a row group.
type ColumnChunk struct {
	Offset       int64
	Pages        []*PageLocation
	PathInSchema []string
}

func (c *ColumnChunk) Write(oprot thrift.TProtocol) error {
	if err := writeStructBegin(oprot, "ColumnChunk"); err != nil {
		return err
	}

	if err := writeI64Field(oprot, "offset", 1, c.Offset); err != nil {
		return err
	}

	if err := writeStructListField(oprot, "pages", 2, len(c.Pages), func(i int) thriftWriter { return c.Pages[i] }); err != nil {
		return err
	}

	if err := writeStringListField(oprot, "path_in_schema", 3, c.PathInSchema); err != nil {
		return err
	}

	return writeStructEnd(oprot, "ColumnChunk")
}

func (c *ColumnChunk) Read(iprot thrift.TProtocol) error {
	var seen isset

	err := readStruct(iprot, "ColumnChunk", func(id int16, typ thrift.TType) (bool, error) {
		var err error

		switch {
		case id == 1 && typ == thrift.I64:
			c.Offset, err = iprot.ReadI64()
		case id == 2 && typ == thrift.LIST:
			c.Pages = nil
			err = readStructList(iprot, func() thriftReader {
				p := &PageLocation{}
				c.Pages = append(c.Pages, p)

				return p
			})
		case id == 3 && typ == thrift.LIST:
			c.PathInSchema, err = readStringList(iprot)
		default:
			return false, nil
		}

		seen.set(id)

		return true, err
	})
	if err != nil {
		return err
	}

	return seen.check("ColumnChunk", 1, 2)
}

// PageLocation describes one page of a column chunk.
type PageLocation struct {
	CompressedPageSize int64
	NumValues          int64
}

func (p *PageLocation) Write(oprot thrift.TProtocol) error {
	if err := writeStructBegin(oprot, "PageLocation"); err != nil {
		return err
	}

	if err := writeI64Field(oprot, "compressed_page_size", 1, p.CompressedPageSize); err != nil {
		return err
	}

	if err := writeI64Field(oprot, "num_values", 2, p.NumValues); err != nil {
		return err
	}

	return writeStructEnd(oprot, "PageLocation")
}

func (p *PageLocation) Read(iprot thrift.TProtocol) error {
	var seen isset

	err := readStruct(iprot, "PageLocation", func(id int16, typ thrift.TType) (bool, error) {
		var err error

		switch {
		case id == 1 && typ == thrift.I64:
			p.CompressedPageSize, err = iprot.ReadI64()
		case id == 2 && typ == thrift.I64:
			p.NumValues, err = iprot.ReadI64()
		default:
			return false, nil
		}

		seen.set(id)

		return true, err
	})
	if err != nil {
		return err
	}

	return seen.check("PageLocation", 1, 2)
}

type KeyValue struct {
	Key   string
	Value *string
}

func (kv *KeyValue) Write(oprot thrift.TProtocol) error {
	if err := writeStructBegin(oprot, "KeyValue"); err != nil {
		return err
	}

	if err := writeStringField(oprot, "key", 1, kv.Key); err != nil {
		return err
	}

	if kv.Value != nil {
		if err := writeStringField(oprot, "value", 2, *kv.Value); err != nil {
			return err
		}
	}

	return writeStructEnd(oprot, "KeyValue")
}

func (kv *KeyValue) Read(iprot thrift.TProtocol) error {
	var seen isset

	err := readStruct(iprot, "KeyValue", func(id int16, typ thrift.TType) (bool, error) {
		var err error

		switch {
		case id == 1 && typ == thrift.STRING:
			kv.Key, err = iprot.ReadString()
		case id == 2 && typ == thrift.STRING:
			var v string
			v, err = iprot.ReadString()
			kv.Value = &v
		default:
			return false, nil
		}

		seen.set(id)

		return true, err
	})
	if err != nil {
		return err
	}

	return seen.check("KeyValue", 1)
}
