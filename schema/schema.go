// Package schema describes the logical layout of a strata file: its top-level
// fields, their nested types and the primitive leaves they flatten to.
package schema

import (
	"strings"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/format"
)

const (
	errEmptyName     = errors.Error("field name is empty")
	errDuplicateName = errors.Error("duplicate field name")
	errInvalidType   = errors.Error("invalid field type")
	errEmptyStruct   = errors.Error("struct has no fields")
	errInvalidSchema = errors.Error("invalid schema")
)

const (
	rootName        = "root"
	listElementName = "item"
)

type Schema struct {
	fields         []*Field
	leaves         []*Leaf
	fieldLeaves    [][]*Leaf
	selectedColumn []string // selected columns in reading. Empty means all the columns.
}

// New validates fields and computes their pre-order leaves.
func New(fields ...*Field) (*Schema, error) {
	if err := checkFields(fields); err != nil {
		return nil, err
	}

	s := &Schema{
		fields:      fields,
		fieldLeaves: make([][]*Leaf, len(fields)),
	}

	for i, f := range fields {
		before := len(s.leaves)
		s.leaves = walkLeaves(s.leaves, i, f, nil, nil)
		s.fieldLeaves[i] = s.leaves[before:len(s.leaves):len(s.leaves)]
	}

	return s, nil
}

func checkFields(fields []*Field) error {
	seen := make(map[string]struct{}, len(fields))

	for i, f := range fields {
		if f == nil || f.Name == "" {
			return errors.WithFields(
				errors.WithStack(errEmptyName),
				errors.Fields{
					"index": i,
				})
		}

		if _, ok := seen[f.Name]; ok {
			return errors.WithFields(
				errors.WithStack(errDuplicateName),
				errors.Fields{
					"name": f.Name,
				})
		}

		seen[f.Name] = struct{}{}

		if err := checkType(f); err != nil {
			return err
		}
	}

	return nil
}

func checkType(f *Field) error {
	switch t := f.Type.(type) {
	case PrimitiveType:
		if t.kind.IsPrimitive() {
			return nil
		}
	case *ListType:
		if t != nil && t.Elem != nil {
			return checkFields([]*Field{t.Elem})
		}
	case *StructType:
		if t == nil {
			break
		}

		if len(t.Fields) == 0 {
			return errors.WithFields(
				errors.WithStack(errEmptyStruct),
				errors.Fields{
					"name": f.Name,
				})
		}

		return checkFields(t.Fields)
	}

	return errors.WithFields(
		errors.WithStack(errInvalidType),
		errors.Fields{
			"name": f.Name,
		})
}

func walkLeaves(leaves []*Leaf, field int, f *Field, path []string, levels []Level) []*Leaf {
	path = append(path[:len(path):len(path)], f.Name)

	switch t := f.Type.(type) {
	case *ListType:
		levels = append(levels[:len(levels):len(levels)], Level{Kind: LevelList, Nullable: f.Nullable})
		return walkLeaves(leaves, field, t.Elem, path, levels)
	case *StructType:
		levels = append(levels[:len(levels):len(levels)], Level{Kind: LevelStruct, Nullable: f.Nullable})
		for _, child := range t.Fields {
			leaves = walkLeaves(leaves, field, child, path, levels)
		}

		return leaves
	}

	prim := f.Type.(PrimitiveType)

	return append(leaves, &Leaf{
		Index:    len(leaves),
		Field:    field,
		FlatName: strings.Join(path, "."),
		Path:     path,
		Type:     prim,
		Physical: prim.Physical(),
		Levels:   levels,
		Nullable: f.Nullable,
	})
}

// Fields returns the top-level fields.
func (s *Schema) Fields() []*Field {
	return s.fields
}

func (s *Schema) NumFields() int {
	return len(s.fields)
}

// Leaves returns every primitive leaf in pre-order.
func (s *Schema) Leaves() []*Leaf {
	return s.leaves
}

// FieldLeaves returns the leaves of the i-th top-level field.
func (s *Schema) FieldLeaves(i int) []*Leaf {
	return s.fieldLeaves[i]
}

// GetColumnByName returns the leaf with the given dotted name, or nil.
func (s *Schema) GetColumnByName(path string) *Leaf {
	for _, l := range s.leaves {
		if l.FlatName == path {
			return l
		}
	}

	return nil
}

func (s *Schema) SetSelectedColumns(selected ...string) {
	s.selectedColumn = selected
}

func (s *Schema) IsSelected(colPath string) bool {
	if len(s.selectedColumn) == 0 {
		return true
	}

	for _, pattern := range s.selectedColumn {
		if pattern == colPath {
			return true
		}

		if strings.HasPrefix(colPath, pattern+".") {
			return true
		}
	}

	return false
}

// SelectedFields returns the indexes of the top-level fields with at least one
// selected leaf. Nested fields are read whole.
func (s *Schema) SelectedFields() []int {
	var res []int

	for i, leaves := range s.fieldLeaves {
		for _, l := range leaves {
			if s.IsSelected(l.FlatName) {
				res = append(res, i)
				break
			}
		}
	}

	return res
}

func (s *Schema) String() string {
	parts := make([]string, 0, len(s.fields))
	for _, f := range s.fields {
		parts = append(parts, f.String())
	}

	return "schema<" + strings.Join(parts, ", ") + ">"
}

// ToElements returns the pre-order footer representation of s.
func (s *Schema) ToElements() []*format.SchemaElement {
	elems := []*format.SchemaElement{{
		Name:        rootName,
		Kind:        int32(Struct),
		NumChildren: int32(len(s.fields)),
	}}

	for _, f := range s.fields {
		elems = appendElements(elems, f)
	}

	return elems
}

func appendElements(elems []*format.SchemaElement, f *Field) []*format.SchemaElement {
	rep := format.FieldRepetitionTypeRequired
	if f.Nullable {
		rep = format.FieldRepetitionTypeOptional
	}

	elem := &format.SchemaElement{
		Name:           f.Name,
		Kind:           int32(f.Type.Kind()),
		RepetitionType: rep,
	}

	switch t := f.Type.(type) {
	case *ListType:
		elem.NumChildren = 1

		return appendElements(append(elems, elem), t.Elem)
	case *StructType:
		elem.NumChildren = int32(len(t.Fields))
		elems = append(elems, elem)

		for _, child := range t.Fields {
			elems = appendElements(elems, child)
		}

		return elems
	}

	typ := int32(f.Type.(PrimitiveType).Physical())
	elem.Type = &typ

	return append(elems, elem)
}

// LoadSchema rebuilds a schema from its footer representation.
func LoadSchema(schema []*format.SchemaElement) (*Schema, error) {
	if len(schema) == 0 {
		return nil, errors.WithStack(errInvalidSchema)
	}

	root := schema[0]
	schema = schema[1:]

	if root.Kind != int32(Struct) || root.Type != nil || root.NumChildren < 0 {
		return nil, errors.WithFields(
			errors.WithStack(errInvalidSchema),
			errors.Fields{
				"reason": "invalid root element",
			})
	}

	fields := make([]*Field, 0, root.NumChildren)

	idx := 0
	for i := 0; i < int(root.NumChildren); i++ {
		var (
			f   *Field
			err error
		)

		f, idx, err = readElement(schema, idx)
		if err != nil {
			return nil, err
		}

		fields = append(fields, f)
	}

	if idx != len(schema) {
		return nil, errors.WithFields(
			errors.WithStack(errInvalidSchema),
			errors.Fields{
				"reason":   "trailing schema elements",
				"expected": idx,
				"actual":   len(schema),
			})
	}

	return New(fields...)
}
