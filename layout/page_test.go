package layout

import (
	"bytes"
	"hash/crc32"
	"runtime"
	"testing"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/array"
	"github.com/hexbee-net/strata/compression"
	"github.com/hexbee-net/strata/format"
	"github.com/hexbee-net/strata/nested"
	"github.com/hexbee-net/strata/schema"
	"github.com/hexbee-net/strata/source/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pageCase struct {
	name  string
	field *schema.Field
	arr   array.Array
}

func pageCases() []pageCase {
	return []pageCase{
		{
			name:  "int64",
			field: schema.NewField("a", schema.Int64Type, false),
			arr:   array.NewInt64([]int64{5, 4, 3, 1 << 40, -7, 0, 0, 0, 0, 0, 0, 0}, nil),
		},
		{
			name:  "nullable string",
			field: schema.NewField("s", schema.StringType, true),
			arr:   array.NewString([]string{"alpha", "", "beta", "gamma"}, []bool{true, false, true, true}),
		},
		{
			name:  "bool",
			field: schema.NewField("b", schema.BooleanType, true),
			arr:   array.NewBoolean([]bool{true, true, false, true, false}, []bool{true, true, true, true, false}),
		},
		{
			name:  "float",
			field: schema.NewField("f", schema.Float32Type, false),
			arr:   array.NewFloat32([]float32{1.5, -2, 3.25}, nil),
		},
		{
			name:  "list of struct",
			field: schema.NewField("l", schema.ListOf(schema.StructOf(
				schema.NewField("x", schema.Float64Type, false),
				schema.NewField("y", schema.Int32Type, true),
			), true), true),
			arr: array.NewList([]int32{0, 2, 2, 3}, []bool{true, false, true},
				array.NewStruct(3, []bool{true, true, false},
					array.NewFloat64([]float64{1, 2, 0}, nil),
					array.NewInt32([]int32{7, 0, 0}, []bool{true, false, true}),
				)),
		},
	}
}

func TestPage_RoundTrip(t *testing.T) {
	codecs := []compression.Codec{
		compression.Uncompressed,
		compression.Snappy,
		compression.GZip,
		compression.Brotli,
		compression.LZ4,
		compression.ZStd,
	}

	for _, c := range pageCases() {
		for _, codec := range codecs {
			for _, enc := range []EncodingFunc{DefaultEncoding, PlainEncoding, DictionaryEncoding} {
				c, codec, enc := c, codec, enc

				t.Run(c.name+"/"+codec.String(), func(t *testing.T) {
					t.Parallel()

					s, err := schema.New(c.field)
					require.NoError(t, err)

					leaves, err := nested.Flatten(c.field, c.arr)
					require.NoError(t, err)

					pw, err := NewPageWriter(codec, nil, enc)
					require.NoError(t, err)

					pr := NewPageReader(nil)

					res := make([]*nested.Leaf, len(leaves))

					for i, leaf := range leaves {
						desc := s.Leaves()[i]
						slice := leaf.Slice(0, leaf.Rows())

						buf := memory.NewWriter(nil)

						n, err := pw.WritePage(buf, slice, desc)
						require.NoError(t, err)
						assert.Equal(t, buf.Len(), n)

						res[i], err = pr.ReadPage(buf.Bytes(), desc)
						require.NoError(t, err)
						assert.Equal(t, slice.Rows(), res[i].Rows())
						assert.Equal(t, slice.Slots(), res[i].Slots())
					}

					arr, err := nested.Assemble(c.field, res)
					require.NoError(t, err)
					assert.True(t, array.Equal(c.arr, arr))
				})
			}
		}
	}
}

func TestPage_Windows(t *testing.T) {
	t.Parallel()

	field := schema.NewField("l", schema.ListOf(schema.Int32Type, false), false)
	arr := array.NewList([]int32{0, 1, 3, 3, 6}, nil, array.NewInt32([]int32{1, 2, 3, 4, 5, 6}, nil))

	s, err := schema.New(field)
	require.NoError(t, err)

	leaves, err := nested.Flatten(field, arr)
	require.NoError(t, err)

	pw, err := NewPageWriter(compression.Snappy, nil, nil)
	require.NoError(t, err)

	pr := NewPageReader(nil)

	for _, w := range [][2]int{{0, 2}, {2, 2}, {3, 1}, {4, 0}} {
		buf := memory.NewWriter(nil)

		_, err := pw.WritePage(buf, leaves[0].Slice(w[0], w[1]), s.Leaves()[0])
		require.NoError(t, err)

		leaf, err := pr.ReadPage(buf.Bytes(), s.Leaves()[0])
		require.NoError(t, err)

		res, err := nested.Assemble(field, []*nested.Leaf{leaf})
		require.NoError(t, err)
		assert.True(t, array.Equal(arr.Slice(w[0], w[0]+w[1]), res), w)
	}
}

func writeTestPage(t *testing.T) ([]byte, *schema.Schema) {
	t.Helper()

	field := schema.NewField("a", schema.Int32Type, true)

	s, err := schema.New(field)
	require.NoError(t, err)

	leaves, err := nested.Flatten(field, array.NewInt32([]int32{1, 2, 0, 4}, []bool{true, true, false, true}))
	require.NoError(t, err)

	pw, err := NewPageWriter(compression.Uncompressed, nil, nil)
	require.NoError(t, err)

	buf := memory.NewWriter(nil)
	_, err = pw.WritePage(buf, leaves[0], s.Leaves()[0])
	require.NoError(t, err)

	return buf.Bytes(), s
}

func TestPage_Corruption(t *testing.T) {
	t.Parallel()

	data, s := writeTestPage(t)
	desc := s.Leaves()[0]
	pr := NewPageReader(nil)

	flipped := append([]byte(nil), data...)
	flipped[len(flipped)-1] ^= 0xFF

	_, err := pr.ReadPage(flipped, desc)
	assert.EqualError(t, errors.Cause(err), ErrChecksum.Error())

	_, err = pr.ReadPage(data[:len(data)-1], desc)
	assert.EqualError(t, errors.Cause(err), errSizeMismatch.Error())

	_, err = pr.ReadPage(append(append([]byte(nil), data...), 0), desc)
	assert.EqualError(t, errors.Cause(err), errSizeMismatch.Error())

	for i := 0; i < len(data); i++ {
		_, err := pr.ReadPage(data[:i], desc)
		assert.Error(t, err, i)
	}

	// the reader is still usable after failures
	leaf, err := pr.ReadPage(data, desc)
	require.NoError(t, err)
	assert.Equal(t, 4, leaf.Rows())
	assert.Equal(t, 1, leaf.Values.NullCount())
}

// TestPage_DecompressionBound feeds pages whose body expands far past the
// size stored in their header. Reading must fail without materializing the
// expanded body.
func TestPage_DecompressionBound(t *testing.T) {
	data, s := writeTestPage(t)
	desc := s.Leaves()[0]

	header := &format.PageHeader{}
	require.NoError(t, format.ReadThrift(header, bytes.NewReader(data)))

	zeros := make([]byte, 128<<20)
	compressors := compression.DefaultCompressors()

	for codec, c := range compressors {
		body, err := c.CompressBlock(nil, zeros)
		require.NoError(t, err)

		forged := *header
		forged.Codec = int32(codec)
		forged.UncompressedSize = 8
		forged.CompressedSize = int32(len(body))
		forged.CRC = int32(crc32.ChecksumIEEE(body))

		buf := &bytes.Buffer{}
		require.NoError(t, format.WriteThrift(&forged, buf))
		buf.Write(body)

		page := buf.Bytes()
		pr := NewPageReader(compressors)

		var before, after runtime.MemStats

		runtime.GC()
		runtime.ReadMemStats(&before)

		_, err = pr.ReadPage(page, desc)

		runtime.ReadMemStats(&after)

		assert.EqualError(t, errors.Cause(err), errSizeMismatch.Error(), codec.String())
		assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(32<<20), codec.String())
	}
}

func TestPage_ShapeMismatch(t *testing.T) {
	t.Parallel()

	data, _ := writeTestPage(t)
	pr := NewPageReader(nil)

	other, err := schema.New(
		schema.NewField("a", schema.Int64Type, true),
		schema.NewField("b", schema.ListOf(schema.Int32Type, true), true),
		schema.NewField("c", schema.Int32Type, false),
	)
	require.NoError(t, err)

	for _, desc := range other.Leaves() {
		_, err := pr.ReadPage(data, desc)
		assert.EqualError(t, errors.Cause(err), ErrShapeMismatch.Error(), desc.FlatName)
	}

	pw, err := NewPageWriter(compression.Uncompressed, nil, nil)
	require.NoError(t, err)

	leaves, err := nested.Flatten(other.Fields()[0], array.NewInt64([]int64{1}, nil))
	require.NoError(t, err)

	_, err = pw.WritePage(memory.NewWriter(nil), leaves[0], other.Leaves()[1])
	assert.EqualError(t, errors.Cause(err), ErrShapeMismatch.Error())
}

func TestNewPageWriter_UnsupportedCodec(t *testing.T) {
	t.Parallel()

	_, err := NewPageWriter(compression.Codec(42), nil, nil)
	assert.Error(t, err)

	_, err = NewPageWriter(compression.ZStd, compression.Compressors{}, nil)
	assert.Error(t, err)
}
