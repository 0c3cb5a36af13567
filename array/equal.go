package array

import (
	"bytes"
	"math"
)

// Equal reports whether a and b hold the same logical values. Null slots are
// equal to each other whatever their stored content.
func Equal(a, b Array) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if a.Len() != b.Len() {
		return false
	}

	for i := 0; i < a.Len(); i++ {
		if !equalAt(a, b, i, i) {
			return false
		}
	}

	return true
}

// ChunkEqual reports whether two chunks hold equal columns.
func ChunkEqual(a, b *Chunk) bool {
	if a.Rows() != b.Rows() || a.NumColumns() != b.NumColumns() {
		return false
	}

	for i := range a.columns {
		if !Equal(a.columns[i], b.columns[i]) {
			return false
		}
	}

	return true
}

func equalAt(a, b Array, i, j int) bool {
	if a.IsNull(i) || b.IsNull(j) {
		return a.IsNull(i) && b.IsNull(j)
	}

	switch x := a.(type) {
	case *Boolean:
		y, ok := b.(*Boolean)
		return ok && x.Values[i] == y.Values[j]
	case *Int32:
		y, ok := b.(*Int32)
		return ok && x.Values[i] == y.Values[j]
	case *Int64:
		y, ok := b.(*Int64)
		return ok && x.Values[i] == y.Values[j]
	case *Float32:
		y, ok := b.(*Float32)
		return ok && floatEqual(float64(x.Values[i]), float64(y.Values[j]))
	case *Float64:
		y, ok := b.(*Float64)
		return ok && floatEqual(x.Values[i], y.Values[j])
	case *Binary:
		y, ok := b.(*Binary)
		return ok && bytes.Equal(x.Values[i], y.Values[j])
	case *List:
		y, ok := b.(*List)
		if !ok {
			return false
		}

		xs, xe := x.ValueRange(i)
		ys, ye := y.ValueRange(j)

		if xe-xs != ye-ys {
			return false
		}

		for k := 0; k < xe-xs; k++ {
			if !equalAt(x.Values, y.Values, xs+k, ys+k) {
				return false
			}
		}

		return true
	case *Struct:
		y, ok := b.(*Struct)
		if !ok || len(x.Fields) != len(y.Fields) {
			return false
		}

		for k := range x.Fields {
			if !equalAt(x.Fields[k], y.Fields[k], i, j) {
				return false
			}
		}

		return true
	}

	return false
}

func floatEqual(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}
