// Package meta describes where pages and columns live in a strata file.
package meta

import (
	"sort"

	"github.com/hexbee-net/errors"
)

const (
	errEmptyPage   = errors.Error("page with values has no bytes")
	errOverlap     = errors.Error("column byte ranges overlap")
	errOutOfBounds = errors.Error("column byte range out of bounds")
	errNegative    = errors.Error("negative offset or length")
	errRowCount    = errors.Error("column row count does not match row group")
)

// PageMeta describes one page. Length is the on-disk byte count of the page,
// header included.
//
// NumValues is the number of top-level rows the page decodes to, not the
// number of leaf slots: a page of a list<int64> column holding 3 rows with
// 10 elements has NumValues 3. Every leaf of a row group then shares the same
// per-page counts, which is what lets readers consume leaves in lockstep.
// The slot count of a page is kept in its header.
type PageMeta struct {
	Length    uint64
	NumValues uint64
}

// ColumnMeta describes one leaf column of a row group. Its pages are stored
// back to back from Offset.
type ColumnMeta struct {
	Offset uint64
	Pages  []PageMeta
}

// TotalLen is the byte length of the column's pages.
func (c ColumnMeta) TotalLen() uint64 {
	var n uint64
	for _, p := range c.Pages {
		n += p.Length
	}

	return n
}

// NumValues is the number of rows covered by the column's pages.
func (c ColumnMeta) NumValues() uint64 {
	var n uint64
	for _, p := range c.Pages {
		n += p.NumValues
	}

	return n
}

// End returns the offset right after the column's last page.
func (c ColumnMeta) End() uint64 {
	return c.Offset + c.TotalLen()
}

// PageOffsets returns the absolute offset of every page.
func (c ColumnMeta) PageOffsets() []uint64 {
	res := make([]uint64, len(c.Pages))

	off := c.Offset
	for i, p := range c.Pages {
		res[i] = off
		off += p.Length
	}

	return res
}

func (c ColumnMeta) Validate() error {
	for i, p := range c.Pages {
		if p.NumValues > 0 && p.Length == 0 {
			return errors.WithFields(
				errors.WithStack(errEmptyPage),
				errors.Fields{
					"page":       i,
					"num_values": p.NumValues,
				})
		}
	}

	return nil
}

// RowGroup holds the columns written by one batch, one per leaf in pre-order.
type RowGroup struct {
	NumRows uint64
	Columns []ColumnMeta
}

// TotalLen is the byte length of every page of the row group.
func (rg RowGroup) TotalLen() uint64 {
	var n uint64
	for _, c := range rg.Columns {
		n += c.TotalLen()
	}

	return n
}

// Validate checks the pages of every column and that each column covers
// NumRows rows.
func (rg RowGroup) Validate() error {
	for i, c := range rg.Columns {
		if err := c.Validate(); err != nil {
			return errors.WithFields(err, errors.Fields{"column": i})
		}

		if c.NumValues() != rg.NumRows {
			return errors.WithFields(
				errors.WithStack(errRowCount),
				errors.Fields{
					"column":   i,
					"expected": rg.NumRows,
					"actual":   c.NumValues(),
				})
		}
	}

	return nil
}

// Flatten lists the columns of every row group, in writing order.
func Flatten(rowGroups []RowGroup) []ColumnMeta {
	var res []ColumnMeta
	for _, rg := range rowGroups {
		res = append(res, rg.Columns...)
	}

	return res
}

// CheckLayout checks that every column lies in [start, end) and that no two
// columns overlap.
func CheckLayout(columns []ColumnMeta, start, end uint64) error {
	sorted := make([]ColumnMeta, 0, len(columns))

	for i, c := range columns {
		if c.Offset < start || c.End() > end || c.End() < c.Offset {
			return errors.WithFields(
				errors.WithStack(errOutOfBounds),
				errors.Fields{
					"column": i,
					"offset": c.Offset,
					"length": c.TotalLen(),
				})
		}

		if c.TotalLen() > 0 {
			sorted = append(sorted, c)
		}
	}

	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Offset < sorted[i-1].End() {
			return errors.WithFields(
				errors.WithStack(errOverlap),
				errors.Fields{
					"offset":   sorted[i].Offset,
					"previous": sorted[i-1].End(),
				})
		}
	}

	return nil
}
