package nested

import (
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/array"
	"github.com/hexbee-net/strata/schema"
)

// Assemble rebuilds a column of field f from its leaves, given in pre-order.
func Assemble(f *schema.Field, leaves []*Leaf) (array.Array, error) {
	if expected := schema.CountLeaves(f.Type); len(leaves) != expected {
		return nil, errors.WithFields(
			errors.WithStack(errLeafCount),
			errors.Fields{
				"field":    f.Name,
				"expected": expected,
				"actual":   len(leaves),
			})
	}

	res, err := assemble(f, leaves, 0)
	if err != nil {
		return nil, err
	}

	if err := res.Validate(); err != nil {
		return nil, errors.WithFields(
			errors.WithStack(errShapeMismatch),
			errors.Fields{
				"field": f.Name,
				"error": err.Error(),
			})
	}

	return res, nil
}

func assemble(f *schema.Field, leaves []*Leaf, depth int) (array.Array, error) {
	switch t := f.Type.(type) {
	case *schema.ListType:
		lvl, err := levelAt(f, leaves, depth, schema.LevelList)
		if err != nil {
			return nil, err
		}

		values, err := assemble(t.Elem, leaves, depth+1)
		if err != nil {
			return nil, err
		}

		return &array.List{Offsets: lvl.Offsets, Validity: lvl.Validity, Values: values}, nil

	case *schema.StructType:
		lvl, err := levelAt(f, leaves, depth, schema.LevelStruct)
		if err != nil {
			return nil, err
		}

		fields := make([]array.Array, len(t.Fields))

		pos := 0
		for i, child := range t.Fields {
			n := schema.CountLeaves(child.Type)

			if fields[i], err = assemble(child, leaves[pos:pos+n], depth+1); err != nil {
				return nil, err
			}

			pos += n
		}

		return &array.Struct{Length: lvl.Length, Validity: lvl.Validity, Fields: fields}, nil

	case schema.PrimitiveType:
		leaf := leaves[0]
		if len(leaf.Levels) != depth || leaf.Values == nil || leaf.Values.PhysicalType() != t.Physical() {
			return nil, shapeMismatch(f, depth)
		}

		return leaf.Values, nil
	}

	return nil, shapeMismatch(f, depth)
}

// levelAt returns the shared level at depth, checking every leaf agrees on it.
func levelAt(f *schema.Field, leaves []*Leaf, depth int, kind schema.LevelKind) (*Level, error) {
	var res *Level

	for _, l := range leaves {
		if len(l.Levels) <= depth || l.Levels[depth].Kind != kind {
			return nil, shapeMismatch(f, depth)
		}

		lvl := &l.Levels[depth]
		if res == nil {
			res = lvl
			continue
		}

		if lvl.Length != res.Length || len(lvl.Offsets) != len(res.Offsets) {
			return nil, shapeMismatch(f, depth)
		}
	}

	return res, nil
}

func shapeMismatch(f *schema.Field, depth int) error {
	return errors.WithFields(
		errors.WithStack(errShapeMismatch),
		errors.Fields{
			"field": f.Name,
			"depth": depth,
		})
}
