package schema

import (
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/format"
	"github.com/hexbee-net/strata/types"
)

// LevelKind is the kind of nesting a leaf passes through.
type LevelKind int32

const (
	LevelList   LevelKind = 1
	LevelStruct LevelKind = 2
)

func (k LevelKind) String() string {
	switch k {
	case LevelList:
		return "list"
	case LevelStruct:
		return "struct"
	}

	return "unknown"
}

// Level is one nested ancestor of a leaf, outermost first.
type Level struct {
	Kind     LevelKind
	Nullable bool
}

// Leaf is a primitive column produced by flattening a top-level field.
type Leaf struct {
	// Index is the position of the leaf in the pre-order traversal.
	Index int
	// Field is the index of the top-level field the leaf belongs to.
	Field    int
	FlatName string
	Path     []string
	Type     PrimitiveType
	Physical types.Type
	Levels   []Level
	Nullable bool
}

// MaxDepth returns the number of nested levels above the leaf values.
func (l *Leaf) MaxDepth() int {
	return len(l.Levels)
}

func readElement(schema []*format.SchemaElement, idx int) (*Field, int, error) {
	if len(schema) <= idx {
		return nil, 0, errors.WithFields(
			errors.WithStack(errInvalidSchema),
			errors.Fields{
				"reason": "schema index out of bound",
				"index":  idx,
				"size":   len(schema),
			})
	}

	if schema[idx].Type == nil {
		return readGroupSchema(schema, idx)
	}

	return readColumnSchema(schema, idx)
}

func readGroupSchema(schema []*format.SchemaElement, idx int) (*Field, int, error) {
	s := schema[idx]

	if s.NumChildren <= 0 {
		return nil, 0, errors.WithFields(
			errors.WithStack(errInvalidSchema),
			errors.Fields{
				"reason": "field NumChildren is zero",
				"index":  idx,
			})
	}

	l := int(s.NumChildren)

	if len(schema) < idx+1+l {
		return nil, 0, errors.WithFields(
			errors.WithStack(errInvalidSchema),
			errors.Fields{
				"reason": "not enough element in schema list",
				"index":  idx,
			})
	}

	f := &Field{
		Name:     s.Name,
		Nullable: s.RepetitionType == format.FieldRepetitionTypeOptional,
	}

	idx++ // move idx from this group to next

	children := make([]*Field, 0, l)

	for i := 0; i < l; i++ {
		var (
			child *Field
			err   error
		)

		child, idx, err = readElement(schema, idx)
		if err != nil {
			return nil, 0, err
		}

		children = append(children, child)
	}

	switch Kind(s.Kind) {
	case List:
		if l != 1 {
			return nil, 0, errors.WithFields(
				errors.WithStack(errInvalidSchema),
				errors.Fields{
					"reason": "list must have exactly one child",
					"name":   s.Name,
				})
		}

		f.Type = &ListType{Elem: children[0]}
	case Struct:
		f.Type = &StructType{Fields: children}
	default:
		return nil, 0, errors.WithFields(
			errors.WithStack(errInvalidSchema),
			errors.Fields{
				"reason": "invalid group kind",
				"name":   s.Name,
				"kind":   Kind(s.Kind).String(),
			})
	}

	return f, idx, nil
}

func readColumnSchema(schema []*format.SchemaElement, idx int) (*Field, int, error) {
	s := schema[idx]

	if s.Name == "" {
		return nil, 0, errors.WithFields(
			errors.WithStack(errEmptyName),
			errors.Fields{
				"index": idx,
			})
	}

	kind := Kind(s.Kind)
	if !kind.IsPrimitive() || int32(physicalTypes[kind]) != *s.Type {
		return nil, 0, errors.WithFields(
			errors.WithStack(errInvalidSchema),
			errors.Fields{
				"reason":   "invalid leaf type",
				"name":     s.Name,
				"kind":     kind.String(),
				"physical": types.Type(*s.Type).String(),
			})
	}

	f := &Field{
		Name:     s.Name,
		Type:     PrimitiveType{kind},
		Nullable: s.RepetitionType == format.FieldRepetitionTypeOptional,
	}

	return f, idx + 1, nil
}
