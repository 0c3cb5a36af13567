package strata

import (
	"context"
	"io"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/array"
	"github.com/hexbee-net/strata/nested"
	"github.com/hexbee-net/strata/schema"
)

// ChunkReader rebuilds batches by reading the selected columns of each row
// group in lockstep, one page window per Next call.
type ChunkReader struct {
	ctx context.Context
	f   *FileReader

	fields []int
	leaves []int

	rowGroup int
	readers  []*ColumnReader
}

// NewChunkReader returns a reader over every row group of the file,
// restricted to the selected columns.
func (f *FileReader) NewChunkReader(ctx context.Context) *ChunkReader {
	fields, leaves := f.selectedLeaves()

	return &ChunkReader{
		ctx:    ctx,
		f:      f,
		fields: fields,
		leaves: leaves,
	}
}

// Fields returns the top-level fields of the returned chunks.
func (c *ChunkReader) Fields() []*schema.Field {
	res := make([]*schema.Field, len(c.fields))
	for i, idx := range c.fields {
		res[i] = c.f.schema.Fields()[idx]
	}

	return res
}

// Next returns the next page window as a chunk with one column per selected
// field, or io.EOF once every row group was read. Row groups without rows
// produce no chunk.
func (c *ChunkReader) Next() (*array.Chunk, error) {
	if len(c.leaves) == 0 {
		return nil, io.EOF
	}

	for {
		if c.readers == nil {
			if c.rowGroup >= len(c.f.rowGroups) {
				return nil, io.EOF
			}

			if err := c.open(); err != nil {
				return nil, err
			}
		}

		pending := 0
		for _, r := range c.readers {
			if r.HasNext() {
				pending++
			}
		}

		if pending == 0 {
			if err := c.closeReaders(); err != nil {
				return nil, err
			}

			c.rowGroup++

			continue
		}

		if pending != len(c.readers) {
			return nil, errors.WithFields(
				errors.WithStack(ErrMisaligned),
				errors.Fields{
					"row_group": c.rowGroup,
					"reason":    "column exhausted early",
				})
		}

		frags := make([]*nested.Leaf, len(c.readers))

		for i, r := range c.readers {
			frag, err := r.NextArray()
			if err != nil {
				return nil, errors.WithFields(err, errors.Fields{"row_group": c.rowGroup})
			}

			frags[i] = frag
		}

		return c.f.assemble(c.fields, frags)
	}
}

func (c *ChunkReader) open() error {
	c.readers = make([]*ColumnReader, 0, len(c.leaves))

	for _, leaf := range c.leaves {
		r, err := c.f.OpenColumn(c.ctx, c.rowGroup, leaf)
		if err != nil {
			_ = c.closeReaders()
			return err
		}

		c.readers = append(c.readers, r)
	}

	return nil
}

func (c *ChunkReader) closeReaders() error {
	var firstErr error

	for _, r := range c.readers {
		if err := r.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrap(err, "failed to close column")
		}
	}

	c.readers = nil

	return firstErr
}

// Close releases the handles of the current row group.
func (c *ChunkReader) Close() error {
	return c.closeReaders()
}

// assemble zips one fragment per selected leaf into a chunk. frags follows
// the leaf order of the selected fields.
func (f *FileReader) assemble(fields []int, frags []*nested.Leaf) (*array.Chunk, error) {
	rows := -1

	for i, frag := range frags {
		if rows < 0 {
			rows = frag.Rows()
			continue
		}

		if frag.Rows() != rows {
			return nil, errors.WithFields(
				errors.WithStack(ErrMisaligned),
				errors.Fields{
					"leaf":     i,
					"expected": rows,
					"actual":   frag.Rows(),
				})
		}
	}

	columns := make([]array.Array, len(fields))

	pos := 0

	for i, idx := range fields {
		field := f.schema.Fields()[idx]
		n := len(f.schema.FieldLeaves(idx))

		arr, err := nested.Assemble(field, frags[pos:pos+n])
		if err != nil {
			return nil, decodeError(err, errors.Fields{"field": field.Name})
		}

		columns[i] = arr
		pos += n
	}

	chunk, err := array.NewChunk(columns...)
	if err != nil {
		return nil, errors.WithFields(
			errors.WithStack(ErrMisaligned),
			errors.Fields{
				"error": err.Error(),
			})
	}

	return chunk, nil
}
