package schema

import (
	"fmt"
	"strings"

	"github.com/hexbee-net/strata/types"
)

// Kind identifies a logical data type. The values are persisted in the footer.
type Kind int32

const (
	Boolean   Kind = 1
	Int32     Kind = 2
	Int64     Kind = 3
	Float32   Kind = 4
	Float64   Kind = 5
	Binary    Kind = 6
	String    Kind = 7
	Date      Kind = 8
	Timestamp Kind = 9
	List      Kind = 10
	Struct    Kind = 11
)

func (k Kind) String() string {
	switch k {
	case Boolean:
		return "bool"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Binary:
		return "binary"
	case String:
		return "string"
	case Date:
		return "date32"
	case Timestamp:
		return "timestamp"
	case List:
		return "list"
	case Struct:
		return "struct"
	}

	return fmt.Sprintf("Kind(%d)", int32(k))
}

// IsPrimitive reports whether k describes a leaf type.
func (k Kind) IsPrimitive() bool {
	_, ok := physicalTypes[k]
	return ok
}

var physicalTypes = map[Kind]types.Type{
	Boolean:   types.Boolean,
	Int32:     types.Int32,
	Int64:     types.Int64,
	Float32:   types.Float,
	Float64:   types.Double,
	Binary:    types.ByteArray,
	String:    types.ByteArray,
	Date:      types.Int32,
	Timestamp: types.Int64,
}

// DataType is the logical type of a field.
type DataType interface {
	Kind() Kind
	String() string
}

// PrimitiveType is a non-nested logical type.
type PrimitiveType struct {
	kind Kind
}

var (
	BooleanType   DataType = PrimitiveType{Boolean}
	Int32Type     DataType = PrimitiveType{Int32}
	Int64Type     DataType = PrimitiveType{Int64}
	Float32Type   DataType = PrimitiveType{Float32}
	Float64Type   DataType = PrimitiveType{Float64}
	BinaryType    DataType = PrimitiveType{Binary}
	StringType    DataType = PrimitiveType{String}
	DateType      DataType = PrimitiveType{Date}
	TimestampType DataType = PrimitiveType{Timestamp}
)

func (t PrimitiveType) Kind() Kind     { return t.kind }
func (t PrimitiveType) String() string { return t.kind.String() }

// Physical returns the physical type leaf values of t are stored as.
func (t PrimitiveType) Physical() types.Type {
	return physicalTypes[t.kind]
}

// ListType is a variable-length list of Elem values.
type ListType struct {
	Elem *Field
}

// ListOf returns a list of elem. The element field is named "item".
func ListOf(elem DataType, nullable bool) *ListType {
	return &ListType{Elem: &Field{Name: listElementName, Type: elem, Nullable: nullable}}
}

func (t *ListType) Kind() Kind { return List }

func (t *ListType) String() string {
	if t.Elem == nil {
		return "list<?>"
	}

	return "list<" + t.Elem.String() + ">"
}

// StructType groups named child fields.
type StructType struct {
	Fields []*Field
}

func StructOf(fields ...*Field) *StructType {
	return &StructType{Fields: fields}
}

func (t *StructType) Kind() Kind { return Struct }

func (t *StructType) String() string {
	parts := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		parts = append(parts, f.String())
	}

	return "struct<" + strings.Join(parts, ", ") + ">"
}

// Field is a named, possibly nullable, logical column.
type Field struct {
	Name     string
	Type     DataType
	Nullable bool
}

func NewField(name string, t DataType, nullable bool) *Field {
	return &Field{Name: name, Type: t, Nullable: nullable}
}

func (f *Field) String() string {
	s := f.Name + ": "
	if f.Type == nil {
		s += "?"
	} else {
		s += f.Type.String()
	}

	if f.Nullable {
		s += "?"
	}

	return s
}

// CountLeaves returns the number of primitive leaves below t.
func CountLeaves(t DataType) int {
	switch tt := t.(type) {
	case *ListType:
		return CountLeaves(tt.Elem.Type)
	case *StructType:
		n := 0
		for _, f := range tt.Fields {
			n += CountLeaves(f.Type)
		}

		return n
	}

	return 1
}
