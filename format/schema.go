package format

import (
	"github.com/apache/thrift/lib/go/thrift"
)

type FieldRepetitionType int32

const (
	FieldRepetitionTypeRequired FieldRepetitionType = 0
	FieldRepetitionTypeOptional FieldRepetitionType = 1
)

// SchemaElement is one node of the pre-order schema list. Groups (lists and
// structs) carry NumChildren; leaves carry their physical Type.
type SchemaElement struct {
	Name           string
	Kind           int32
	RepetitionType FieldRepetitionType
	NumChildren    int32
	Type           *int32
}

func (s *SchemaElement) Write(oprot thrift.TProtocol) error {
	if err := writeStructBegin(oprot, "SchemaElement"); err != nil {
		return err
	}

	if err := writeStringField(oprot, "name", 1, s.Name); err != nil {
		return err
	}

	if err := writeI32Field(oprot, "kind", 2, s.Kind); err != nil {
		return err
	}

	if err := writeI32Field(oprot, "repetition_type", 3, int32(s.RepetitionType)); err != nil {
		return err
	}

	if err := writeI32Field(oprot, "num_children", 4, s.NumChildren); err != nil {
		return err
	}

	if s.Type != nil {
		if err := writeI32Field(oprot, "type", 5, *s.Type); err != nil {
			return err
		}
	}

	return writeStructEnd(oprot, "SchemaElement")
}

func (s *SchemaElement) Read(iprot thrift.TProtocol) error {
	var seen isset

	err := readStruct(iprot, "SchemaElement", func(id int16, typ thrift.TType) (bool, error) {
		var err error

		switch {
		case id == 1 && typ == thrift.STRING:
			s.Name, err = iprot.ReadString()
		case id == 2 && typ == thrift.I32:
			s.Kind, err = iprot.ReadI32()
		case id == 3 && typ == thrift.I32:
			var v int32
			v, err = iprot.ReadI32()
			s.RepetitionType = FieldRepetitionType(v)
		case id == 4 && typ == thrift.I32:
			s.NumChildren, err = iprot.ReadI32()
		case id == 5 && typ == thrift.I32:
			var v int32
			v, err = iprot.ReadI32()
			s.Type = &v
		default:
			return false, nil
		}

		seen.set(id)

		return true, err
	})
	if err != nil {
		return err
	}

	return seen.check("SchemaElement", 1, 2, 3, 4)
}
