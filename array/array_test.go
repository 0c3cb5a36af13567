package array

import (
	"math"
	"testing"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitive_NonNullValues(t *testing.T) {
	t.Parallel()

	a := NewInt32([]int32{1, 0, 3, 0}, []bool{true, false, true, false})
	assert.Equal(t, 4, a.Len())
	assert.Equal(t, 2, a.NullCount())
	assert.True(t, a.IsNull(1))
	assert.False(t, a.IsNull(2))
	assert.Equal(t, []int32{1, 3}, a.NonNullValues())

	b := NewBinary([][]byte{[]byte("a"), []byte("b")}, nil)
	assert.Equal(t, 0, b.NullCount())
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b")}, b.NonNullValues())
}

func TestFromValues(t *testing.T) {
	t.Parallel()

	validity := []bool{false, true, true, false, true}

	tests := []struct {
		typ    types.Type
		values interface{}
	}{
		{types.Boolean, []bool{true, false, true}},
		{types.Int32, []int32{1, 2, 3}},
		{types.Int64, []int64{1, 2, 3}},
		{types.Float, []float32{1, 2, 3}},
		{types.Double, []float64{1, 2, 3}},
		{types.ByteArray, [][]byte{[]byte("x"), {}, []byte("z")}},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.typ.String(), func(t *testing.T) {
			t.Parallel()

			a, err := FromValues(tt.typ, tt.values, validity)
			require.NoError(t, err)
			assert.Equal(t, 5, a.Len())
			assert.Equal(t, tt.typ, a.PhysicalType())
			assert.Equal(t, tt.values, a.NonNullValues())
			assert.NoError(t, a.Validate())

			dense, err := FromValues(tt.typ, tt.values, nil)
			require.NoError(t, err)
			assert.Equal(t, 3, dense.Len())

			_, err = FromValues(tt.typ, tt.values, []bool{true})
			assert.EqualError(t, errors.Cause(err), errCountMismatch.Error())

			_, err = FromValues(tt.typ, "nope", nil)
			assert.EqualError(t, errors.Cause(err), errInvalidType.Error())
		})
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	// [[1 2] null [] [3]]
	l := NewList([]int32{0, 2, 2, 2, 3}, []bool{true, false, true, true}, NewInt64([]int64{1, 2, 3}, nil))
	require.NoError(t, l.Validate())
	assert.Equal(t, 4, l.Len())
	assert.Equal(t, 1, l.NullCount())

	s := l.Slice(1, 4).(*List)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []int32{2, 2, 2, 3}, s.Offsets)

	start, end := s.ValueRange(2)
	assert.Equal(t, 2, start)
	assert.Equal(t, 3, end)

	bad := NewList([]int32{0, 2, 1}, nil, NewInt64([]int64{1, 2}, nil))
	assert.EqualError(t, errors.Cause(bad.Validate()), errInvalidOffsets.Error())

	over := NewList([]int32{0, 3}, nil, NewInt64([]int64{1, 2}, nil))
	assert.EqualError(t, errors.Cause(over.Validate()), errInvalidOffsets.Error())

	assert.Equal(t, 0, NewList(nil, nil, NewInt64(nil, nil)).Len())
}

func TestStruct(t *testing.T) {
	t.Parallel()

	s := NewStruct(3, []bool{true, false, true},
		NewInt32([]int32{1, 2, 3}, nil),
		NewString([]string{"a", "b", "c"}, nil),
	)
	require.NoError(t, s.Validate())

	sub := s.Slice(1, 3).(*Struct)
	assert.Equal(t, 2, sub.Len())
	assert.Equal(t, []int32{2, 3}, sub.Fields[0].(*Int32).Values)

	bad := NewStruct(2, nil, NewInt32([]int32{1}, nil))
	assert.EqualError(t, errors.Cause(bad.Validate()), errLengthMismatch.Error())
}

func TestEqual(t *testing.T) {
	t.Parallel()

	a := NewFloat64([]float64{1, 99, math.NaN()}, []bool{true, false, true})
	b := NewFloat64([]float64{1, -5, math.NaN()}, []bool{true, false, true})
	assert.True(t, Equal(a, b))

	c := NewFloat64([]float64{1, -5, math.NaN()}, nil)
	assert.False(t, Equal(a, c))
	assert.False(t, Equal(a, NewInt32([]int32{1, 2, 3}, nil)))

	l1 := NewList([]int32{0, 2, 3}, nil, NewInt32([]int32{1, 2, 3}, nil))
	l2 := NewList([]int32{5, 7, 8}, nil, NewInt32([]int32{0, 0, 0, 0, 0, 1, 2, 3}, nil))
	assert.True(t, Equal(l1, l2))

	l3 := NewList([]int32{0, 1, 3}, nil, NewInt32([]int32{1, 2, 3}, nil))
	assert.False(t, Equal(l1, l3))

	s1 := NewStruct(2, []bool{true, false}, NewInt32([]int32{1, 2}, nil))
	s2 := NewStruct(2, []bool{true, false}, NewInt32([]int32{1, 7}, nil))
	assert.True(t, Equal(s1, s2))

	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(s1, nil))
}

func TestChunk(t *testing.T) {
	t.Parallel()

	c, err := NewChunk(NewInt32([]int32{1, 2, 3}, nil), NewString([]string{"a", "b", "c"}, nil))
	require.NoError(t, err)
	assert.Equal(t, 3, c.Rows())
	assert.Equal(t, 2, c.NumColumns())

	sub := c.Slice(1, 2)
	assert.Equal(t, 1, sub.Rows())
	assert.True(t, Equal(NewInt32([]int32{2}, nil), sub.Column(0)))
	assert.False(t, ChunkEqual(c, sub))
	assert.True(t, ChunkEqual(c, c))

	_, err = NewChunk(NewInt32([]int32{1}, nil), NewInt32([]int32{1, 2}, nil))
	assert.EqualError(t, errors.Cause(err), errLengthMismatch.Error())

	empty, err := NewChunk()
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Rows())
}
