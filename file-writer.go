package strata

import (
	"bytes"
	"encoding/binary"
	"io"
	"sort"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/array"
	"github.com/hexbee-net/strata/encoding"
	"github.com/hexbee-net/strata/format"
	"github.com/hexbee-net/strata/layout"
	"github.com/hexbee-net/strata/meta"
	"github.com/hexbee-net/strata/nested"
	"github.com/hexbee-net/strata/schema"
)

// FileWriter writes batches as paged columns.
//
// Every WriteBatch call is a row group: each leaf of the schema is split in
// pages of at most MaxPageSize rows and gets its own ColumnMeta. All leaves
// of a batch share the same row windows, so readers can consume them in
// lockstep. Close writes the footer; the writer never closes w.
type FileWriter struct {
	w      *offsetWriter
	schema *schema.Schema
	opts   WriteOptions
	pages  *layout.PageWriter

	rowGroups []meta.RowGroup
	numRows   uint64

	kvStore   map[string]string
	createdBy string

	logger  log.Logger
	metrics *Metrics

	err    error
	closed bool
}

// NewFileWriter validates the options and writes the file header to w.
func NewFileWriter(w io.Writer, s *schema.Schema, opts ...FileWriterOption) (*FileWriter, error) {
	if s == nil {
		return nil, errors.WithFields(
			errors.WithStack(ErrConfig),
			errors.Fields{
				"reason": "nil schema",
			})
	}

	fw := &FileWriter{
		w:       &offsetWriter{w: w},
		schema:  s,
		opts:    DefaultWriteOptions(),
		kvStore: make(map[string]string),
		logger:  log.NewNopLogger(),
	}

	for _, opt := range opts {
		opt(fw)
	}

	if err := fw.opts.Validate(); err != nil {
		return nil, err
	}

	pages, err := layout.NewPageWriter(fw.opts.Compression, nil, fw.opts.Encoding.encodingFunc())
	if err != nil {
		return nil, errors.WithFields(
			errors.WithStack(ErrConfig),
			errors.Fields{
				"compression": fw.opts.Compression.String(),
				"error":       err.Error(),
			})
	}

	fw.pages = pages

	if _, err := fw.w.Write([]byte(magic)); err != nil {
		return nil, errors.Wrap(err, "failed to write file magic header")
	}

	return fw, nil
}

// WriteBatch writes chunk as a new row group. The chunk must hold one column
// per top-level schema field. Once a page failed to encode, every following
// call returns the same error.
func (fw *FileWriter) WriteBatch(chunk *array.Chunk) error {
	if fw.closed {
		return errors.WithStack(ErrClosed)
	}

	if fw.err != nil {
		return fw.err
	}

	if chunk == nil || chunk.NumColumns() != fw.schema.NumFields() {
		actual := 0
		if chunk != nil {
			actual = chunk.NumColumns()
		}

		return errors.WithFields(
			errors.WithStack(ErrSchemaMismatch),
			errors.Fields{
				"expected": fw.schema.NumFields(),
				"actual":   actual,
			})
	}

	rows := chunk.Rows()

	pageSize, err := fw.opts.pageSize(rows)
	if err != nil {
		return err
	}

	leaves, err := fw.flatten(chunk)
	if err != nil {
		return err
	}

	start := fw.w.offset
	rg := meta.RowGroup{
		NumRows: uint64(rows),
		Columns: make([]meta.ColumnMeta, len(leaves)),
	}

	for i, leaf := range leaves {
		col, err := fw.writeColumn(i, leaf, pageSize)
		if err != nil {
			fw.err = err
			return err
		}

		rg.Columns[i] = col
	}

	fw.rowGroups = append(fw.rowGroups, rg)
	fw.numRows += uint64(rows)
	fw.metrics.rowGroupWritten()

	level.Debug(fw.logger).Log(
		"msg", "row group written",
		"rows", rows,
		"leaves", len(leaves),
		"bytes", fw.w.offset-start,
	)

	return nil
}

// flatten returns the leaves of every column of chunk, in schema pre-order.
func (fw *FileWriter) flatten(chunk *array.Chunk) ([]*nested.Leaf, error) {
	res := make([]*nested.Leaf, 0, len(fw.schema.Leaves()))

	for i, f := range fw.schema.Fields() {
		leaves, err := nested.Flatten(f, chunk.Column(i))
		if err != nil {
			return nil, errors.WithFields(
				errors.WithStack(ErrSchemaMismatch),
				errors.Fields{
					"field": f.Name,
					"error": err.Error(),
				})
		}

		if len(leaves) != len(fw.schema.FieldLeaves(i)) {
			return nil, errors.WithFields(
				errors.WithStack(ErrSchemaMismatch),
				errors.Fields{
					"field":    f.Name,
					"expected": len(fw.schema.FieldLeaves(i)),
					"actual":   len(leaves),
				})
		}

		res = append(res, leaves...)
	}

	return res, nil
}

func (fw *FileWriter) writeColumn(idx int, leaf *nested.Leaf, pageSize int) (meta.ColumnMeta, error) {
	desc := fw.schema.Leaves()[idx]
	col := meta.ColumnMeta{Offset: fw.w.offset}

	length := leaf.Rows()

	for o := 0; o < length; o += pageSize {
		n := min(pageSize, length-o)
		pageStart := fw.w.offset

		if _, err := fw.pages.WritePage(fw.w, leaf.Slice(o, n), desc); err != nil {
			return meta.ColumnMeta{}, errors.WithFields(
				errors.WithStack(ErrEncode),
				errors.Fields{
					"leaf":         idx,
					"column":       desc.FlatName,
					"window_start": o,
					"window_end":   o + n,
					"error":        err.Error(),
				})
		}

		page := meta.PageMeta{
			Length:    fw.w.offset - pageStart,
			NumValues: uint64(n),
		}

		col.Pages = append(col.Pages, page)
		fw.metrics.pageWritten(fw.opts.Compression, page.Length, n)
	}

	return col, nil
}

// ColumnMetas returns the columns written so far, per row group then per leaf.
func (fw *FileWriter) ColumnMetas() []meta.ColumnMeta {
	return meta.Flatten(fw.rowGroups)
}

func (fw *FileWriter) RowGroups() []meta.RowGroup {
	res := make([]meta.RowGroup, len(fw.rowGroups))
	copy(res, fw.rowGroups)

	return res
}

// Offset returns the number of bytes written so far.
func (fw *FileWriter) Offset() uint64 {
	return fw.w.offset
}

// NumRows returns the number of rows of the complete row groups.
func (fw *FileWriter) NumRows() uint64 {
	return fw.numRows
}

// Close writes the footer describing the complete row groups, followed by
// the footer length and the magic trailer.
func (fw *FileWriter) Close() error {
	if fw.closed {
		return errors.WithStack(ErrClosed)
	}

	fw.closed = true

	fileID := uuid.New()
	footer := &format.FileMetaData{
		Version:          formatVersion,
		FileID:           fileID[:],
		NumRows:          int64(fw.numRows),
		Schema:           fw.schema.ToElements(),
		RowGroups:        meta.ToFormat(fw.rowGroups, fw.leafPaths()),
		KeyValueMetadata: fw.keyValueMetadata(),
		Codec:            int32(fw.opts.Compression),
	}

	if fw.createdBy != "" {
		footer.CreatedBy = &fw.createdBy
	}

	buf := &bytes.Buffer{}
	if err := format.WriteThrift(footer, buf); err != nil {
		return errors.Wrap(err, "failed to encode file meta data")
	}

	size := buf.Len()

	if err := encoding.WriteFull(fw.w, buf.Bytes()); err != nil {
		return errors.Wrap(err, "failed to write file meta data")
	}

	if err := binary.Write(fw.w, binary.LittleEndian, uint32(size)); err != nil {
		return errors.Wrap(err, "failed to write footer length")
	}

	if _, err := fw.w.Write([]byte(magic)); err != nil {
		return errors.Wrap(err, "failed to write file magic footer")
	}

	level.Info(fw.logger).Log(
		"msg", "file closed",
		"row_groups", len(fw.rowGroups),
		"rows", fw.numRows,
		"footer_bytes", size,
		"file_id", fileID.String(),
	)

	return nil
}

func (fw *FileWriter) leafPaths() [][]string {
	leaves := fw.schema.Leaves()

	res := make([][]string, len(leaves))
	for i, l := range leaves {
		res[i] = l.Path
	}

	return res
}

func (fw *FileWriter) keyValueMetadata() []*format.KeyValue {
	keys := make([]string, 0, len(fw.kvStore))
	for k := range fw.kvStore {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	res := make([]*format.KeyValue, 0, len(keys))

	for _, k := range keys {
		v := fw.kvStore[k]
		res = append(res, &format.KeyValue{Key: k, Value: &v})
	}

	return res
}
