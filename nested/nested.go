// Package nested flattens nested columns into primitive leaves and assembles
// them back. It does no I/O.
//
// Every leaf carries the chain of list and struct levels above it, outermost
// first. List offsets point directly into the next level (or into the leaf
// values for the innermost one).
package nested

import (
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/array"
	"github.com/hexbee-net/strata/schema"
)

const (
	errTypeMismatch   = errors.Error("array does not match field type")
	errNullInRequired = errors.Error("null value in required field")
	errShapeMismatch  = errors.Error("leaf shapes do not match")
	errLeafCount      = errors.Error("invalid leaf count")
)

// Level is the shape of one nested ancestor of a leaf.
type Level struct {
	Kind     schema.LevelKind
	Length   int
	Validity []bool
	// Offsets has Length+1 entries for list levels, nil otherwise.
	Offsets []int32
}

// ChildRange returns the range of the next level covered by [start, end).
func (l *Level) ChildRange(start, end int) (int, int) {
	if l.Kind != schema.LevelList {
		return start, end
	}

	return int(l.Offsets[start]), int(l.Offsets[end])
}

// Leaf is one flattened primitive column with its nesting shape.
type Leaf struct {
	Levels []Level
	Values array.Primitive
}

// Rows returns the number of top-level rows covered by the leaf.
func (l *Leaf) Rows() int {
	if len(l.Levels) > 0 {
		return l.Levels[0].Length
	}

	return l.Values.Len()
}

// Slots returns the number of value slots, nulls included.
func (l *Leaf) Slots() int {
	return l.Values.Len()
}

// Slice returns the leaf restricted to the top-level rows [offset, offset+length).
// List offsets of the result start at zero. The bounds must lie within Rows().
func (l *Leaf) Slice(offset, length int) *Leaf {
	res := &Leaf{Levels: make([]Level, len(l.Levels))}
	start, end := offset, offset+length

	for i := range l.Levels {
		lvl := &l.Levels[i]
		out := Level{
			Kind:     lvl.Kind,
			Length:   end - start,
			Validity: sliceBools(lvl.Validity, start, end),
		}

		if lvl.Kind == schema.LevelList {
			base := lvl.Offsets[start]

			out.Offsets = make([]int32, end-start+1)
			for k := range out.Offsets {
				out.Offsets[k] = lvl.Offsets[start+k] - base
			}
		}

		start, end = lvl.ChildRange(start, end)
		res.Levels[i] = out
	}

	res.Values = l.Values.Slice(start, end).(array.Primitive)

	return res
}

func sliceBools(v []bool, i, j int) []bool {
	if v == nil {
		return nil
	}

	return v[i:j:j]
}

// Flatten splits arr, a column of field f, into its leaves in pre-order.
func Flatten(f *schema.Field, arr array.Array) ([]*Leaf, error) {
	if arr == nil {
		return nil, typeMismatch(f, arr)
	}

	if err := arr.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid array for field %s", f.Name)
	}

	return flatten(nil, f, arr, nil)
}

func flatten(leaves []*Leaf, f *schema.Field, arr array.Array, levels []Level) ([]*Leaf, error) {
	if !f.Nullable && arr.NullCount() > 0 {
		return nil, errors.WithFields(
			errors.WithStack(errNullInRequired),
			errors.Fields{
				"field": f.Name,
				"nulls": arr.NullCount(),
			})
	}

	switch t := f.Type.(type) {
	case *schema.ListType:
		l, ok := arr.(*array.List)
		if !ok {
			return nil, typeMismatch(f, arr)
		}

		offsets := l.Offsets
		if len(offsets) == 0 {
			offsets = []int32{0}
		}

		levels = append(levels[:len(levels):len(levels)], Level{
			Kind:     schema.LevelList,
			Length:   l.Len(),
			Validity: l.Validity,
			Offsets:  offsets,
		})

		return flatten(leaves, t.Elem, l.Values, levels)

	case *schema.StructType:
		s, ok := arr.(*array.Struct)
		if !ok || len(s.Fields) != len(t.Fields) {
			return nil, typeMismatch(f, arr)
		}

		levels = append(levels[:len(levels):len(levels)], Level{
			Kind:     schema.LevelStruct,
			Length:   s.Length,
			Validity: s.Validity,
		})

		var err error
		for i, child := range t.Fields {
			if leaves, err = flatten(leaves, child, s.Fields[i], levels); err != nil {
				return nil, err
			}
		}

		return leaves, nil

	case schema.PrimitiveType:
		p, ok := arr.(array.Primitive)
		if !ok || p.PhysicalType() != t.Physical() {
			return nil, typeMismatch(f, arr)
		}

		return append(leaves, &Leaf{Levels: levels, Values: p}), nil
	}

	return nil, typeMismatch(f, arr)
}

func typeMismatch(f *schema.Field, arr array.Array) error {
	return errors.WithFields(
		errors.WithStack(errTypeMismatch),
		errors.Fields{
			"field": f.String(),
			"array": typeName(arr),
		})
}

func typeName(arr array.Array) string {
	switch a := arr.(type) {
	case nil:
		return "nil"
	case *array.List:
		return "list"
	case *array.Struct:
		return "struct"
	case array.Primitive:
		return a.PhysicalType().String()
	}

	return "unknown"
}
