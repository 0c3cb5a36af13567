package strata

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/compression"
	"github.com/hexbee-net/strata/format"
	"github.com/hexbee-net/strata/meta"
	"github.com/hexbee-net/strata/schema"
	"github.com/hexbee-net/strata/source"
)

// FileReader gives access to the schema, the metadata and the columns of a
// strata file. Each column is read through its own handle from the opener,
// so columns can be consumed concurrently.
type FileReader struct {
	opener source.Opener

	meta      *format.FileMetaData
	schema    *schema.Schema
	rowGroups []meta.RowGroup

	columns     []string
	bufSize     int
	compressors compression.Compressors

	logger  log.Logger
	metrics *Metrics
}

// NewFileReader reads and checks the footer of the file served by opener.
// You can limit the columns that are read with WithColumns, using the dotted
// notation. If no columns are provided, then all columns are read.
func NewFileReader(ctx context.Context, opener source.Opener, opts ...FileReaderOption) (*FileReader, error) {
	f := &FileReader{
		opener:      opener,
		bufSize:     defaultReadBufferSize,
		compressors: compression.DefaultCompressors(),
		logger:      log.NewNopLogger(),
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.bufSize < 0 {
		return nil, errors.WithFields(
			errors.WithStack(ErrConfig),
			errors.Fields{
				"read_buffer_size": f.bufSize,
			})
	}

	if f.bufSize == 0 {
		f.bufSize = defaultReadBufferSize
	}

	r, err := opener.Open(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}

	defer func() { _ = r.Close() }()

	fileMeta, footerStart, err := readFileMetaData(r)
	if err != nil {
		return nil, err
	}

	if err := f.load(fileMeta, footerStart); err != nil {
		return nil, err
	}

	f.schema.SetSelectedColumns(f.columns...)

	level.Debug(f.logger).Log(
		"msg", "footer loaded",
		"row_groups", len(f.rowGroups),
		"rows", fileMeta.NumRows,
		"leaves", len(f.schema.Leaves()),
		"footer_bytes", footerStart,
	)

	return f, nil
}

func (f *FileReader) load(fileMeta *format.FileMetaData, footerStart int64) error {
	s, err := schema.LoadSchema(fileMeta.Schema)
	if err != nil {
		return decodeError(err, errors.Fields{"reason": "invalid schema"})
	}

	rowGroups, err := meta.FromFormat(fileMeta.RowGroups)
	if err != nil {
		return decodeError(err, errors.Fields{"reason": "invalid row groups"})
	}

	leaves := s.Leaves()

	var numRows uint64

	for i, rg := range rowGroups {
		if len(rg.Columns) != len(leaves) {
			return errors.WithFields(
				errors.WithStack(ErrSchemaMismatch),
				errors.Fields{
					"row_group": i,
					"expected":  len(leaves),
					"actual":    len(rg.Columns),
				})
		}

		for j, c := range fileMeta.RowGroups[i].Columns {
			if path := strings.Join(c.PathInSchema, "."); path != leaves[j].FlatName {
				return errors.WithFields(
					errors.WithStack(ErrSchemaMismatch),
					errors.Fields{
						"row_group": i,
						"column":    j,
						"expected":  leaves[j].FlatName,
						"actual":    path,
					})
			}
		}

		if err := rg.Validate(); err != nil {
			return decodeError(err, errors.Fields{"row_group": i})
		}

		numRows += rg.NumRows
	}

	if numRows != uint64(fileMeta.NumRows) {
		return errors.WithFields(
			errors.WithStack(ErrDecode),
			errors.Fields{
				"reason":   "row count mismatch",
				"expected": fileMeta.NumRows,
				"actual":   numRows,
			})
	}

	if err := meta.CheckLayout(meta.Flatten(rowGroups), uint64(magicLen), uint64(footerStart)); err != nil {
		return decodeError(err, errors.Fields{"reason": "invalid layout"})
	}

	f.meta = fileMeta
	f.schema = s
	f.rowGroups = rowGroups

	return nil
}

// InferSchema returns the schema stored in the footer.
func (f *FileReader) InferSchema() *schema.Schema {
	return f.schema
}

// ReadMeta returns the columns of every row group, per row group then per leaf.
func (f *FileReader) ReadMeta() []meta.ColumnMeta {
	return meta.Flatten(f.rowGroups)
}

func (f *FileReader) RowGroups() []meta.RowGroup {
	return f.rowGroups
}

// RowGroupCount returns the number of row groups in the file.
func (f *FileReader) RowGroupCount() int {
	return len(f.rowGroups)
}

// NumRows returns the number of rows in the file. This information is
// directly taken from the file's meta data.
func (f *FileReader) NumRows() int64 {
	return f.meta.NumRows
}

// Codec returns the compression codec the file was written with.
func (f *FileReader) Codec() compression.Codec {
	return compression.Codec(f.meta.Codec)
}

// FileID returns the identifier generated when the file was written.
func (f *FileReader) FileID() (uuid.UUID, error) {
	id, err := uuid.FromBytes(f.meta.FileID)
	if err != nil {
		return uuid.Nil, decodeError(err, errors.Fields{"reason": "invalid file id"})
	}

	return id, nil
}

// CreatedBy returns the application name stored in the footer, if any.
func (f *FileReader) CreatedBy() string {
	if f.meta.CreatedBy == nil {
		return ""
	}

	return *f.meta.CreatedBy
}

// MetaData returns a map of metadata key-value pairs stored in the file.
func (f *FileReader) MetaData() map[string]string {
	return metaDataToMap(f.meta.KeyValueMetadata)
}

// OpenColumn opens a reader over the pages of leaf in row group rg, through
// a fresh handle bounded to the column's byte range.
func (f *FileReader) OpenColumn(ctx context.Context, rg, leaf int) (*ColumnReader, error) {
	if rg < 0 || rg >= len(f.rowGroups) || leaf < 0 || leaf >= len(f.schema.Leaves()) {
		return nil, errors.WithFields(
			errors.WithStack(errOutOfRange),
			errors.Fields{
				"row_group": rg,
				"leaf":      leaf,
			})
	}

	col := f.rowGroups[rg].Columns[leaf]

	r, err := f.opener.Open(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open column")
	}

	total := col.TotalLen()

	sec, err := source.NewSection(r, int64(col.Offset), int64(total), int(min64(total, uint64(f.bufSize))))
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	return NewColumnReader(sec, f.schema.Leaves()[leaf], col.Pages, make([]byte, 0, defaultScratchSize),
		WithColumnCompressors(f.compressors),
		WithColumnLogger(f.logger),
		WithColumnMetrics(f.metrics),
	), nil
}

// selectedLeaves returns the selected top-level fields and the index of
// their leaves, in schema order.
func (f *FileReader) selectedLeaves() ([]int, []int) {
	fields := f.schema.SelectedFields()

	var leaves []int

	for _, i := range fields {
		for _, l := range f.schema.FieldLeaves(i) {
			leaves = append(leaves, l.Index)
		}
	}

	return fields, leaves
}

func readFileMetaData(r io.ReadSeeker) (*format.FileMetaData, int64, error) {
	buf := make([]byte, magicLen)

	size, err := source.Size(r)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to get file size")
	}

	if size < int64(magicLen)+footerLen {
		return nil, 0, errors.WithFields(
			errors.WithStack(ErrDecode),
			errors.Fields{
				"reason": "file too small",
				"size":   size,
			})
	}

	// read and validate magic header
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, 0, decodeError(err, errors.Fields{"reason": "failed to read file magic header"})
	}

	if !bytes.Equal(buf, []byte(magic)) {
		return nil, 0, errors.WithFields(
			errors.WithStack(ErrDecode),
			errors.Fields{
				"reason": "invalid file header",
			})
	}

	// read and validate footer
	if _, err := r.Seek(-footerLen, io.SeekEnd); err != nil {
		return nil, 0, errors.Wrap(err, "failed to seek to footer length")
	}

	var fl uint32

	if err := binary.Read(r, binary.LittleEndian, &fl); err != nil {
		return nil, 0, decodeError(err, errors.Fields{"reason": "failed to read footer length"})
	}

	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, 0, decodeError(err, errors.Fields{"reason": "failed to read file magic footer"})
	}

	if !bytes.Equal(buf, []byte(magic)) {
		return nil, 0, errors.WithFields(
			errors.WithStack(ErrDecode),
			errors.Fields{
				"reason": "invalid file footer",
			})
	}

	footerStart := size - footerLen - int64(fl)
	if fl == 0 || footerStart < int64(magicLen) {
		return nil, 0, errors.WithFields(
			errors.WithStack(ErrDecode),
			errors.Fields{
				"reason": "invalid footer length",
				"length": fl,
			})
	}

	// read file metadata
	fileMeta := &format.FileMetaData{}

	if _, err := r.Seek(footerStart, io.SeekStart); err != nil {
		return nil, 0, errors.Wrap(err, "failed to seek to file meta data")
	}

	lr := &io.LimitedReader{R: r, N: int64(fl)}
	if err := format.ReadThrift(fileMeta, lr); err != nil {
		return nil, 0, decodeError(err, errors.Fields{"reason": "failed to read file meta data"})
	}

	if lr.N != 0 {
		return nil, 0, errors.WithFields(
			errors.WithStack(ErrDecode),
			errors.Fields{
				"reason":    "trailing bytes in footer",
				"remaining": lr.N,
			})
	}

	return fileMeta, footerStart, nil
}

func metaDataToMap(kvMetaData []*format.KeyValue) map[string]string {
	data := make(map[string]string)

	for _, kv := range kvMetaData {
		if kv.Value != nil {
			data[kv.Key] = *kv.Value
		}
	}

	return data
}

func min64(a, b uint64) uint64 {
	if a < b {
		return a
	}

	return b
}
