package meta

import (
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/format"
)

// ToFormat converts row groups to their footer representation. paths holds
// the schema path of every leaf.
func ToFormat(rowGroups []RowGroup, paths [][]string) []*format.RowGroup {
	res := make([]*format.RowGroup, len(rowGroups))

	for i, rg := range rowGroups {
		out := &format.RowGroup{
			NumRows:       int64(rg.NumRows),
			Columns:       make([]*format.ColumnChunk, len(rg.Columns)),
			TotalByteSize: int64(rg.TotalLen()),
		}

		for j, c := range rg.Columns {
			chunk := &format.ColumnChunk{
				Offset: int64(c.Offset),
				Pages:  make([]*format.PageLocation, len(c.Pages)),
			}

			if j < len(paths) {
				chunk.PathInSchema = paths[j]
			}

			for k, p := range c.Pages {
				chunk.Pages[k] = &format.PageLocation{
					CompressedPageSize: int64(p.Length),
					NumValues:          int64(p.NumValues),
				}
			}

			out.Columns[j] = chunk
		}

		res[i] = out
	}

	return res
}

// FromFormat converts the footer row groups back, rejecting negative values.
func FromFormat(rowGroups []*format.RowGroup) ([]RowGroup, error) {
	res := make([]RowGroup, len(rowGroups))

	for i, rg := range rowGroups {
		if rg.NumRows < 0 {
			return nil, negative("num_rows", i, rg.NumRows)
		}

		out := RowGroup{
			NumRows: uint64(rg.NumRows),
			Columns: make([]ColumnMeta, len(rg.Columns)),
		}

		for j, c := range rg.Columns {
			if c.Offset < 0 {
				return nil, negative("offset", i, c.Offset)
			}

			col := ColumnMeta{
				Offset: uint64(c.Offset),
				Pages:  make([]PageMeta, len(c.Pages)),
			}

			for k, p := range c.Pages {
				if p.CompressedPageSize < 0 {
					return nil, negative("compressed_page_size", i, p.CompressedPageSize)
				}

				if p.NumValues < 0 {
					return nil, negative("num_values", i, p.NumValues)
				}

				col.Pages[k] = PageMeta{
					Length:    uint64(p.CompressedPageSize),
					NumValues: uint64(p.NumValues),
				}
			}

			out.Columns[j] = col
		}

		res[i] = out
	}

	return res, nil
}

func negative(name string, rowGroup int, v int64) error {
	return errors.WithFields(
		errors.WithStack(errNegative),
		errors.Fields{
			"field":     name,
			"row_group": rowGroup,
			"value":     v,
		})
}
