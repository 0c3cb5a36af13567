package strata

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/go-kit/log"
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/array"
	"github.com/hexbee-net/strata/compression"
	"github.com/hexbee-net/strata/meta"
	"github.com/hexbee-net/strata/nested"
	"github.com/hexbee-net/strata/schema"
	"github.com/hexbee-net/strata/source/memory"
	"github.com/hexbee-net/strata/tests/fakes"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Schema(t *testing.T) *schema.Schema {
	t.Helper()

	s, err := schema.New(schema.NewField("a", schema.Int64Type, false))
	require.NoError(t, err)

	return s
}

func int64Chunk(t *testing.T, from, to int) *array.Chunk {
	t.Helper()

	values := make([]int64, 0, to-from)
	for i := from; i < to; i++ {
		values = append(values, int64(i))
	}

	chunk, err := array.NewChunk(array.NewInt64(values, nil))
	require.NoError(t, err)

	return chunk
}

func nestedSchema(t *testing.T) *schema.Schema {
	t.Helper()

	s, err := schema.New(
		schema.NewField("id", schema.Int64Type, false),
		schema.NewField("name", schema.StringType, true),
		schema.NewField("tags", schema.ListOf(schema.StructOf(
			schema.NewField("k", schema.StringType, false),
			schema.NewField("v", schema.Float64Type, true),
		), false), true),
	)
	require.NoError(t, err)

	return s
}

func nestedChunk(t *testing.T, rows, seed int) *array.Chunk {
	t.Helper()

	ids := make([]int64, rows)
	names := make([]string, rows)
	nameValid := make([]bool, rows)
	listValid := make([]bool, rows)
	offsets := []int32{0}

	var (
		keys   []string
		vals   []float64
		valids []bool
	)

	for i := 0; i < rows; i++ {
		x := i + seed

		ids[i] = int64(x*7 - 3)
		names[i] = fmt.Sprintf("name-%d", x)
		nameValid[i] = x%3 != 0
		listValid[i] = x%5 != 1

		n := 0
		if listValid[i] {
			n = x % 4
		}

		for j := 0; j < n; j++ {
			keys = append(keys, fmt.Sprintf("k%d", j))
			vals = append(vals, float64(x)+float64(j)/4)
			valids = append(valids, (x+j)%2 == 0)
		}

		offsets = append(offsets, int32(len(keys)))
	}

	tags := array.NewList(offsets, listValid, array.NewStruct(len(keys), nil,
		array.NewString(keys, nil),
		array.NewFloat64(vals, valids),
	))

	chunk, err := array.NewChunk(array.NewInt64(ids, nil), array.NewString(names, nameValid), tags)
	require.NoError(t, err)

	return chunk
}

func writeFile(t *testing.T, s *schema.Schema, chunks []*array.Chunk, opts ...FileWriterOption) (*memory.Writer, *FileWriter) {
	t.Helper()

	buf := memory.NewWriter(nil)

	fw, err := NewFileWriter(buf, s, opts...)
	require.NoError(t, err)

	for _, c := range chunks {
		require.NoError(t, fw.WriteBatch(c))
	}

	require.NoError(t, fw.Close())

	return buf, fw
}

func TestFileWriter_PageSplit(t *testing.T) {
	t.Parallel()

	s := int64Schema(t)
	buf, fw := writeFile(t, s, []*array.Chunk{int64Chunk(t, 0, 10)},
		WithCompression(compression.Uncompressed),
		WithMaxPageSize(4),
	)

	cols := fw.ColumnMetas()
	require.Len(t, cols, 1)
	require.Len(t, cols[0].Pages, 3)

	var values []uint64
	for _, p := range cols[0].Pages {
		values = append(values, p.NumValues)
		assert.NotZero(t, p.Length)
	}

	assert.Equal(t, []uint64{4, 4, 2}, values)
	assert.Equal(t, uint64(magicLen), cols[0].Offset)
	assert.Equal(t, uint64(10), cols[0].NumValues())

	fr, err := NewFileReader(context.Background(), buf.Opener())
	require.NoError(t, err)
	assert.Equal(t, cols, fr.ReadMeta())

	cr, err := fr.OpenColumn(context.Background(), 0, 0)
	require.NoError(t, err)

	defer func() { _ = cr.Close() }()

	var rows []int

	for cr.HasNext() {
		frag, err := cr.NextArray()
		require.NoError(t, err)

		rows = append(rows, frag.Rows())
	}

	assert.Equal(t, []int{4, 4, 2}, rows)
	assert.False(t, cr.HasNext())

	_, err = cr.NextArray()
	assert.EqualError(t, errors.Cause(err), ErrExhausted.Error())
}

func TestFileWriter_RowGroups(t *testing.T) {
	t.Parallel()

	s := int64Schema(t)
	buf, fw := writeFile(t, s, []*array.Chunk{int64Chunk(t, 0, 5), int64Chunk(t, 5, 8)})

	cols := fw.ColumnMetas()
	require.Len(t, cols, 2)

	require.Len(t, cols[0].Pages, 1)
	require.Len(t, cols[1].Pages, 1)
	assert.Equal(t, uint64(5), cols[0].Pages[0].NumValues)
	assert.Equal(t, uint64(3), cols[1].Pages[0].NumValues)
	assert.Equal(t, cols[0].End(), cols[1].Offset)

	assert.Len(t, fw.RowGroups(), 2)
	assert.Equal(t, uint64(8), fw.NumRows())

	fr, err := NewFileReader(context.Background(), buf.Opener())
	require.NoError(t, err)
	assert.Equal(t, int64(8), fr.NumRows())
	assert.Equal(t, 2, fr.RowGroupCount())

	cr := fr.NewChunkReader(context.Background())

	for _, expected := range []*array.Chunk{int64Chunk(t, 0, 5), int64Chunk(t, 5, 8)} {
		chunk, err := cr.Next()
		require.NoError(t, err)
		assert.True(t, array.ChunkEqual(expected, chunk))
	}

	_, err = cr.Next()
	assert.Equal(t, io.EOF, err)
}

func TestFileWriter_NestedPageCounts(t *testing.T) {
	t.Parallel()

	field := schema.NewField("l", schema.ListOf(schema.Int64Type, false), false)

	s, err := schema.New(field)
	require.NoError(t, err)

	list := array.NewList([]int32{0, 4, 4, 10}, nil,
		array.NewInt64([]int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, nil))

	chunk, err := array.NewChunk(list)
	require.NoError(t, err)

	buf, fw := writeFile(t, s, []*array.Chunk{chunk}, WithMaxPageSize(2))

	col := fw.ColumnMetas()[0]
	require.Len(t, col.Pages, 2)
	assert.Equal(t, uint64(2), col.Pages[0].NumValues)
	assert.Equal(t, uint64(1), col.Pages[1].NumValues)
	assert.Equal(t, uint64(3), col.NumValues())

	fr, err := NewFileReader(context.Background(), buf.Opener())
	require.NoError(t, err)

	cr, err := fr.OpenColumn(context.Background(), 0, 0)
	require.NoError(t, err)

	defer func() { _ = cr.Close() }()

	for i, slots := range []int{4, 6} {
		frag, err := cr.NextArray()
		require.NoError(t, err)
		assert.Equal(t, int(col.Pages[i].NumValues), frag.Rows())
		assert.Equal(t, slots, frag.Slots())
	}
}

func TestFileWriter_EmptyBatch(t *testing.T) {
	t.Parallel()

	s := nestedSchema(t)
	buf, fw := writeFile(t, s, []*array.Chunk{nestedChunk(t, 0, 0), nestedChunk(t, 3, 0)}, WithMaxPageSize(2))

	rgs := fw.RowGroups()
	require.Len(t, rgs, 2)
	require.Len(t, rgs[0].Columns, len(s.Leaves()))

	for _, c := range rgs[0].Columns {
		assert.Empty(t, c.Pages)
		assert.Zero(t, c.TotalLen())
	}

	fr, err := NewFileReader(context.Background(), buf.Opener())
	require.NoError(t, err)

	cr := fr.NewChunkReader(context.Background())

	for _, w := range [][2]int{{0, 2}, {2, 3}} {
		chunk, err := cr.Next()
		require.NoError(t, err)
		assert.True(t, array.ChunkEqual(nestedChunk(t, 3, 0).Slice(w[0], w[1]), chunk))
	}

	_, err = cr.Next()
	assert.Equal(t, io.EOF, err)
}

func TestRoundTrip(t *testing.T) {
	codecs := []compression.Codec{
		compression.Uncompressed,
		compression.Snappy,
		compression.GZip,
		compression.Brotli,
		compression.LZ4,
		compression.ZStd,
	}

	pageSizes := []int{0, 1, 3, 16}
	batches := []int{7, 0, 12, 1}

	for _, codec := range codecs {
		for _, pageSize := range pageSizes {
			for _, policy := range []EncodingPolicy{EncodingAuto, EncodingPlain, EncodingDictionary} {
				codec, pageSize, policy := codec, pageSize, policy

				t.Run(fmt.Sprintf("%s/%d/%s", codec, pageSize, policy), func(t *testing.T) {
					t.Parallel()

					s := nestedSchema(t)

					opts := []FileWriterOption{WithCompression(codec), WithEncoding(policy)}
					if pageSize > 0 {
						opts = append(opts, WithMaxPageSize(pageSize))
					}

					var (
						chunks   []*array.Chunk
						expected []*array.Chunk
						seed     int
					)

					for _, rows := range batches {
						c := nestedChunk(t, rows, seed)
						seed += rows
						chunks = append(chunks, c)

						size := rows
						if pageSize > 0 && pageSize < rows {
							size = pageSize
						}

						for o := 0; o < rows; o += size {
							end := o + size
							if end > rows {
								end = rows
							}

							expected = append(expected, c.Slice(o, end))
						}
					}

					buf, fw := writeFile(t, s, chunks, opts...)

					for _, c := range fw.ColumnMetas() {
						var n uint64
						for _, p := range c.Pages {
							n += p.Length
						}

						assert.Equal(t, c.TotalLen(), n)
					}

					fr, err := NewFileReader(context.Background(), buf.Opener())
					require.NoError(t, err)
					assert.Equal(t, codec, fr.Codec())

					cr := fr.NewChunkReader(context.Background())
					defer func() { _ = cr.Close() }()

					for i, e := range expected {
						chunk, err := cr.Next()
						require.NoError(t, err, i)
						assert.True(t, array.ChunkEqual(e, chunk), i)
					}

					_, err = cr.Next()
					assert.Equal(t, io.EOF, err)

					var parallel []*array.Chunk

					for rg := 0; rg < fr.RowGroupCount(); rg++ {
						res, err := fr.ReadRowGroup(context.Background(), rg)
						require.NoError(t, err)

						parallel = append(parallel, res...)
					}

					require.Len(t, parallel, len(expected))

					for i, e := range expected {
						assert.True(t, array.ChunkEqual(e, parallel[i]), i)
					}
				})
			}
		}
	}
}

func TestFileReader_Columns(t *testing.T) {
	t.Parallel()

	s := nestedSchema(t)
	c := nestedChunk(t, 9, 4)
	buf, _ := writeFile(t, s, []*array.Chunk{c}, WithMaxPageSize(5))

	fr, err := NewFileReader(context.Background(), buf.Opener(), WithColumns("tags.item.v", "id"))
	require.NoError(t, err)

	cr := fr.NewChunkReader(context.Background())

	fields := cr.Fields()
	require.Len(t, fields, 2)
	assert.Equal(t, "id", fields[0].Name)
	assert.Equal(t, "tags", fields[1].Name)

	for _, w := range [][2]int{{0, 5}, {5, 9}} {
		chunk, err := cr.Next()
		require.NoError(t, err)
		require.Equal(t, 2, chunk.NumColumns())

		assert.True(t, array.Equal(c.Column(0).Slice(w[0], w[1]), chunk.Column(0)))
		assert.True(t, array.Equal(c.Column(2).Slice(w[0], w[1]), chunk.Column(1)))
	}

	_, err = cr.Next()
	assert.Equal(t, io.EOF, err)

	chunks, err := fr.ReadRowGroup(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, chunks, 2)

	fr, err = NewFileReader(context.Background(), buf.Opener(), WithColumns("missing"))
	require.NoError(t, err)

	_, err = fr.NewChunkReader(context.Background()).Next()
	assert.Equal(t, io.EOF, err)
}

func TestColumnReader_Truncated(t *testing.T) {
	t.Parallel()

	s := int64Schema(t)
	buf, fw := writeFile(t, s, []*array.Chunk{int64Chunk(t, 0, 10)}, WithMaxPageSize(4))

	col := fw.ColumnMetas()[0]
	data := buf.Bytes()[col.Offset : col.End()-1]

	cr := NewColumnReader(bytes.NewReader(data), s.Leaves()[0], col.Pages, nil)

	var err error

	for cr.HasNext() {
		if _, err = cr.NextArray(); err != nil {
			break
		}
	}

	assert.EqualError(t, errors.Cause(err), ErrDecode.Error())

	_, err = NewFileReader(context.Background(), memory.NewOpener(buf.Bytes()[:buf.Len()-1]))
	assert.EqualError(t, errors.Cause(err), ErrDecode.Error())
}

func TestColumnReader_ReadFail(t *testing.T) {
	t.Parallel()

	s := int64Schema(t)
	buf, fw := writeFile(t, s, []*array.Chunk{int64Chunk(t, 0, 10)}, WithMaxPageSize(4))

	col := fw.ColumnMetas()[0]

	t.Run("read error", func(t *testing.T) {
		t.Parallel()

		reader := fakes.NewReaderMock(t)
		reader.ReadMock.Return(0, errors.New("read failed"))

		cr := NewColumnReader(reader, s.Leaves()[0], col.Pages, nil)

		_, err := cr.NextArray()
		assert.EqualError(t, errors.Cause(err), ErrDecode.Error())
		assert.Contains(t, errors.GetFields(err)["error"], "read failed")
		assert.Equal(t, len(col.Pages)-1, cr.Remaining())
	})

	t.Run("short read", func(t *testing.T) {
		t.Parallel()

		page := buf.Bytes()[col.Offset : col.Offset+col.Pages[0].Length]

		reader := fakes.NewReaderMock(t)
		reader.ReadMock.Set(bytes.NewReader(page[:len(page)/2]).Read)

		cr := NewColumnReader(reader, s.Leaves()[0], col.Pages, nil)

		_, err := cr.NextArray()
		assert.EqualError(t, errors.Cause(err), ErrDecode.Error())
		assert.NotZero(t, reader.ReadAfterCounter())
	})
}

func TestColumnReader_Corrupted(t *testing.T) {
	t.Parallel()

	s := int64Schema(t)
	buf, fw := writeFile(t, s, []*array.Chunk{int64Chunk(t, 0, 10)}, WithMaxPageSize(4))

	col := fw.ColumnMetas()[0]
	data := append([]byte(nil), buf.Bytes()...)
	data[col.Offset+col.Pages[0].Length-1] ^= 0xFF

	fr, err := NewFileReader(context.Background(), memory.NewOpener(data))
	require.NoError(t, err)

	cr, err := fr.OpenColumn(context.Background(), 0, 0)
	require.NoError(t, err)

	_, err = cr.NextArray()
	assert.EqualError(t, errors.Cause(err), ErrDecode.Error())

	// the following pages are still readable
	frag, err := cr.NextArray()
	require.NoError(t, err)
	assert.Equal(t, 4, frag.Rows())

	wrong, err := schema.New(schema.NewField("a", schema.StringType, false))
	require.NoError(t, err)

	cr = NewColumnReader(bytes.NewReader(buf.Bytes()[col.Offset:col.End()]), wrong.Leaves()[0], col.Pages, nil)

	_, err = cr.NextArray()
	assert.EqualError(t, errors.Cause(err), ErrSchemaMismatch.Error())

	bad := []meta.PageMeta{{Length: col.Pages[0].Length, NumValues: 3}}
	cr = NewColumnReader(bytes.NewReader(buf.Bytes()[col.Offset:col.End()]), s.Leaves()[0], bad, nil)

	_, err = cr.NextArray()
	assert.EqualError(t, errors.Cause(err), ErrDecode.Error())
}

func TestColumnReader_Scratch(t *testing.T) {
	t.Parallel()

	s := int64Schema(t)
	chunks := []*array.Chunk{int64Chunk(t, 0, 100)}
	buf, fw := writeFile(t, s, chunks, WithMaxPageSize(60), WithCompression(compression.Uncompressed), WithEncoding(EncodingPlain))

	col := fw.ColumnMetas()[0]
	require.Len(t, col.Pages, 2)
	require.Greater(t, col.Pages[0].Length, col.Pages[1].Length)

	cr := NewColumnReader(bytes.NewReader(buf.Bytes()[col.Offset:col.End()]), s.Leaves()[0], col.Pages, make([]byte, 0, 1))

	first, err := cr.NextArray()
	require.NoError(t, err)

	grown := cap(cr.scratch)
	assert.GreaterOrEqual(t, uint64(grown), col.Pages[0].Length)

	second, err := cr.NextArray()
	require.NoError(t, err)
	assert.Equal(t, grown, cap(cr.scratch))

	res, err := nested.Assemble(s.Fields()[0], []*nested.Leaf{first})
	require.NoError(t, err)
	assert.True(t, array.Equal(chunks[0].Column(0).Slice(0, 60), res))

	res, err = nested.Assemble(s.Fields()[0], []*nested.Leaf{second})
	require.NoError(t, err)
	assert.True(t, array.Equal(chunks[0].Column(0).Slice(60, 100), res))
}

func TestFileWriter_Errors(t *testing.T) {
	t.Parallel()

	s := nestedSchema(t)

	t.Run("sticky encode error", func(t *testing.T) {
		t.Parallel()

		writer := fakes.NewWriterMock(t)
		writer.WriteMock.When([]byte(magic)).Then(magicLen, nil)
		writer.WriteMock.Return(0, errors.New("disk full"))

		fw, err := NewFileWriter(writer, s)
		require.NoError(t, err)

		err = fw.WriteBatch(nestedChunk(t, 4, 0))
		assert.EqualError(t, errors.Cause(err), ErrEncode.Error())

		calls := writer.WriteBeforeCounter()

		again := fw.WriteBatch(nestedChunk(t, 4, 0))
		assert.Equal(t, err, again)
		assert.Empty(t, fw.RowGroups())
		assert.Equal(t, calls, writer.WriteBeforeCounter())
	})

	t.Run("schema mismatch", func(t *testing.T) {
		t.Parallel()

		fw, err := NewFileWriter(memory.NewWriter(nil), s)
		require.NoError(t, err)

		err = fw.WriteBatch(int64Chunk(t, 0, 3))
		assert.EqualError(t, errors.Cause(err), ErrSchemaMismatch.Error())

		c := nestedChunk(t, 3, 0)
		wrong, err := array.NewChunk(c.Column(0), c.Column(0), c.Column(2))
		require.NoError(t, err)

		err = fw.WriteBatch(wrong)
		assert.EqualError(t, errors.Cause(err), ErrSchemaMismatch.Error())

		err = fw.WriteBatch(nil)
		assert.EqualError(t, errors.Cause(err), ErrSchemaMismatch.Error())

		// not sticky
		assert.NoError(t, fw.WriteBatch(c))
	})

	t.Run("invalid options", func(t *testing.T) {
		t.Parallel()

		buf := memory.NewWriter(nil)

		_, err := NewFileWriter(buf, s, WithMaxPageSize(0))
		assert.EqualError(t, errors.Cause(err), ErrConfig.Error())

		_, err = NewFileWriter(buf, s, WithMaxPageSize(-3))
		assert.EqualError(t, errors.Cause(err), ErrConfig.Error())

		_, err = NewFileWriter(buf, s, WithCompression(compression.Codec(3)))
		assert.EqualError(t, errors.Cause(err), ErrConfig.Error())

		_, err = NewFileWriter(buf, s, WithEncoding(EncodingPolicy(9)))
		assert.EqualError(t, errors.Cause(err), ErrConfig.Error())

		_, err = NewFileWriter(buf, nil)
		assert.EqualError(t, errors.Cause(err), ErrConfig.Error())

		assert.Zero(t, buf.Len())
	})

	t.Run("closed", func(t *testing.T) {
		t.Parallel()

		fw, err := NewFileWriter(memory.NewWriter(nil), s)
		require.NoError(t, err)
		require.NoError(t, fw.Close())

		err = fw.WriteBatch(nestedChunk(t, 1, 0))
		assert.EqualError(t, errors.Cause(err), ErrClosed.Error())

		err = fw.Close()
		assert.EqualError(t, errors.Cause(err), ErrClosed.Error())
	})
}

func TestFileReader_Footer(t *testing.T) {
	t.Parallel()

	s := nestedSchema(t)
	buf, _ := writeFile(t, s, []*array.Chunk{nestedChunk(t, 5, 0)},
		WithMetaData(map[string]string{"origin": "test", "team": "storage"}),
		WithCreatedBy("strata-test"),
	)

	fr, err := NewFileReader(context.Background(), buf.Opener())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"origin": "test", "team": "storage"}, fr.MetaData())
	assert.Equal(t, "strata-test", fr.CreatedBy())
	assert.Equal(t, s.String(), fr.InferSchema().String())

	id, err := fr.FileID()
	require.NoError(t, err)
	assert.NotEqual(t, [16]byte{}, [16]byte(id))

	_, err = fr.OpenColumn(context.Background(), 1, 0)
	assert.Error(t, err)

	_, err = fr.OpenColumn(context.Background(), 0, len(s.Leaves()))
	assert.Error(t, err)

	data := buf.Bytes()

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "bad header", data: append([]byte("XXXX"), data[magicLen:]...)},
		{name: "bad trailer", data: append(append([]byte(nil), data[:len(data)-1]...), 'X')},
		{name: "footer length", data: func() []byte {
			d := append([]byte(nil), data...)
			d[len(d)-footerLenSize-magicLen] ^= 0x40
			return d
		}()},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewFileReader(context.Background(), memory.NewOpener(tt.data))
			assert.EqualError(t, errors.Cause(err), ErrDecode.Error())
		})
	}
}

func TestAssemble_Misaligned(t *testing.T) {
	t.Parallel()

	s := nestedSchema(t)
	buf, _ := writeFile(t, s, []*array.Chunk{nestedChunk(t, 6, 0)})

	fr, err := NewFileReader(context.Background(), buf.Opener())
	require.NoError(t, err)

	fields, leaves := fr.selectedLeaves()
	frags := make([]*nested.Leaf, len(leaves))

	for i, leaf := range leaves {
		cr, err := fr.OpenColumn(context.Background(), 0, leaf)
		require.NoError(t, err)

		frags[i], err = cr.NextArray()
		require.NoError(t, err)
		require.NoError(t, cr.Close())
	}

	frags[1] = frags[1].Slice(0, 3)

	_, err = fr.assemble(fields, frags)
	assert.EqualError(t, errors.Cause(err), ErrMisaligned.Error())
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	logs := &bytes.Buffer{}

	s := int64Schema(t)
	buf, _ := writeFile(t, s, []*array.Chunk{int64Chunk(t, 0, 10)},
		WithCompression(compression.Uncompressed),
		WithMaxPageSize(4),
		WithMetrics(m),
		WithLogger(log.NewLogfmtLogger(logs)),
	)

	assert.Equal(t, float64(3), testutil.ToFloat64(m.PagesWritten.WithLabelValues("none")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RowGroupsWritten))
	assert.Contains(t, logs.String(), "row group written")
	assert.Contains(t, logs.String(), "file closed")

	fr, err := NewFileReader(context.Background(), buf.Opener(), WithReaderMetrics(m))
	require.NoError(t, err)

	_, err = fr.ReadRowGroup(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, float64(3), testutil.ToFloat64(m.PagesRead))
	assert.Equal(t, float64(fr.ReadMeta()[0].TotalLen()), testutil.ToFloat64(m.BytesRead))
	assert.Zero(t, testutil.ToFloat64(m.DecodeErrors))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() {
		nilMetrics.pageRead(1)
		nilMetrics.decodeError()
	})
}
