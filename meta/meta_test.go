package meta

import (
	"testing"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnMeta(t *testing.T) {
	t.Parallel()

	c := ColumnMeta{
		Offset: 4,
		Pages:  []PageMeta{{Length: 10, NumValues: 4}, {Length: 12, NumValues: 4}, {Length: 7, NumValues: 2}},
	}

	assert.Equal(t, uint64(29), c.TotalLen())
	assert.Equal(t, uint64(10), c.NumValues())
	assert.Equal(t, uint64(33), c.End())
	assert.Equal(t, []uint64{4, 14, 26}, c.PageOffsets())
	assert.NoError(t, c.Validate())

	empty := ColumnMeta{Offset: 33}
	assert.Zero(t, empty.TotalLen())
	assert.NoError(t, empty.Validate())

	bad := ColumnMeta{Pages: []PageMeta{{Length: 0, NumValues: 3}}}
	assert.EqualError(t, errors.Cause(bad.Validate()), errEmptyPage.Error())
}

func TestRowGroup_Validate(t *testing.T) {
	t.Parallel()

	rg := RowGroup{
		NumRows: 5,
		Columns: []ColumnMeta{
			{Offset: 4, Pages: []PageMeta{{Length: 10, NumValues: 5}}},
			{Offset: 14, Pages: []PageMeta{{Length: 3, NumValues: 2}, {Length: 3, NumValues: 3}}},
		},
	}
	assert.NoError(t, rg.Validate())
	assert.Equal(t, uint64(16), rg.TotalLen())

	rg.NumRows = 6
	assert.EqualError(t, errors.Cause(rg.Validate()), errRowCount.Error())
}

func TestCheckLayout(t *testing.T) {
	t.Parallel()

	columns := []ColumnMeta{
		{Offset: 4, Pages: []PageMeta{{Length: 10, NumValues: 1}}},
		{Offset: 14, Pages: []PageMeta{{Length: 6, NumValues: 1}}},
		{Offset: 20},
	}
	assert.NoError(t, CheckLayout(columns, 4, 20))

	err := CheckLayout(columns, 4, 19)
	assert.EqualError(t, errors.Cause(err), errOutOfBounds.Error())

	err = CheckLayout(columns, 5, 20)
	assert.EqualError(t, errors.Cause(err), errOutOfBounds.Error())

	overlapping := append(columns, ColumnMeta{Offset: 10, Pages: []PageMeta{{Length: 2, NumValues: 1}}})
	err = CheckLayout(overlapping, 4, 20)
	assert.EqualError(t, errors.Cause(err), errOverlap.Error())
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	rgs := []RowGroup{
		{NumRows: 5, Columns: []ColumnMeta{{Offset: 4}, {Offset: 10}}},
		{NumRows: 3, Columns: []ColumnMeta{{Offset: 20}, {Offset: 30}}},
	}

	flat := Flatten(rgs)
	require.Len(t, flat, 4)
	assert.Equal(t, uint64(20), flat[2].Offset)
	assert.Nil(t, Flatten(nil))
}

func TestFormat_RoundTrip(t *testing.T) {
	t.Parallel()

	rgs := []RowGroup{
		{
			NumRows: 10,
			Columns: []ColumnMeta{
				{Offset: 4, Pages: []PageMeta{{Length: 30, NumValues: 4}, {Length: 30, NumValues: 4}, {Length: 20, NumValues: 2}}},
				{Offset: 84, Pages: []PageMeta{}},
			},
		},
		{NumRows: 0, Columns: []ColumnMeta{{Offset: 84, Pages: []PageMeta{}}, {Offset: 84, Pages: []PageMeta{}}}},
	}

	out := ToFormat(rgs, [][]string{{"a"}, {"b", "item"}})
	require.Len(t, out, 2)
	assert.Equal(t, int64(80), out[0].TotalByteSize)
	assert.Equal(t, []string{"b", "item"}, out[0].Columns[1].PathInSchema)

	res, err := FromFormat(out)
	require.NoError(t, err)
	assert.Equal(t, rgs, res)
}

func TestFromFormat_Negative(t *testing.T) {
	t.Parallel()

	tests := []*format.RowGroup{
		{NumRows: -1},
		{Columns: []*format.ColumnChunk{{Offset: -4}}},
		{Columns: []*format.ColumnChunk{{Pages: []*format.PageLocation{{CompressedPageSize: -1}}}}},
		{Columns: []*format.ColumnChunk{{Pages: []*format.PageLocation{{NumValues: -1}}}}},
	}

	for _, rg := range tests {
		_, err := FromFormat([]*format.RowGroup{rg})
		assert.EqualError(t, errors.Cause(err), errNegative.Error())
	}
}
