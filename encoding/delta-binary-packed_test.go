package encoding

import (
	"bytes"
	"math"
	"math/rand"
	"testing"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/source/memory"
	"github.com/hexbee-net/strata/tests/fakes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Int32 ///////////////////////////////////////////////////////////////////////

func TestDeltaBinaryPack32(t *testing.T) {
	t.Run("Empty", TestDeltaBinaryPack32_Empty)
	t.Run("RoundTrip", TestDeltaBinaryPack32_RoundTrip)
	t.Run("Extremes", TestDeltaBinaryPack32_Extremes)
	t.Run("InvalidBlockSize", TestDeltaBinaryPack32_InvalidBlockSize)
	t.Run("InvalidMiniblockCount", TestDeltaBinaryPack32_InvalidMiniblockCount)
	t.Run("Init_NilReader", TestDeltaBinaryPack32_Init_NilReader)
	t.Run("Init_ReadFail", TestDeltaBinaryPack32_Init_ReadFail)
	t.Run("Close_WriteFail", TestDeltaBinaryPack32_Close_WriteFail)
	t.Run("Close_ShortWrite", TestDeltaBinaryPack32_Close_ShortWrite)
	t.Run("Next_NoValues", TestDeltaBinaryPack32_Next_NoValues)
	t.Run("Truncated", TestDeltaBinaryPack32_Truncated)
}

func TestDeltaBinaryPack32_Empty(t *testing.T) {
	t.Parallel()

	writer := memory.NewWriter(nil)

	e := DeltaBinaryPackEncoder32{}
	require.NoError(t, e.Init(writer))
	require.NoError(t, e.Close())

	assert.Equal(t, []byte{128, 1, 4, 0, 0}, writer.Bytes())

	d := DeltaBinaryPackDecoder32{}
	require.NoError(t, d.Init(bytes.NewReader(writer.Bytes())))
	assert.Equal(t, 0, d.Count())
}

func encodeDecode32(t *testing.T, values []int32) []int32 {
	writer := memory.NewWriter(nil)

	e, err := NewDeltaBinaryPackEncoder32(DefaultBlockSize, DefaultMiniBlockCount)
	require.NoError(t, err)
	require.NoError(t, e.Init(writer))
	require.NoError(t, e.Encode(values))
	require.NoError(t, e.Close())

	reader := bytes.NewReader(writer.Bytes())

	d := DeltaBinaryPackDecoder32{}
	require.NoError(t, d.Init(reader))
	require.Equal(t, len(values), d.Count())

	res := make([]int32, len(values))
	require.NoError(t, DecodeInt32(&d, res))

	// the decoder consumes exactly the encoded stream
	assert.Equal(t, 0, reader.Len())

	return res
}

func TestDeltaBinaryPack32_RoundTrip(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewSource(7))

	for _, size := range []int{1, 2, 31, 32, 33, 128, 129, 300, 1000} {
		values := make([]int32, size)
		for i := range values {
			values[i] = rnd.Int31n(1000) - 500
		}

		assert.Equal(t, values, encodeDecode32(t, values), "size %d", size)
	}

	offsets := make([]int32, 257)
	for i := 1; i < len(offsets); i++ {
		offsets[i] = offsets[i-1] + int32(i%3)
	}

	assert.Equal(t, offsets, encodeDecode32(t, offsets))
}

func TestDeltaBinaryPack32_Extremes(t *testing.T) {
	t.Parallel()

	values := []int32{math.MaxInt32, math.MinInt32, 0, math.MaxInt32, -1, math.MinInt32}

	assert.Equal(t, values, encodeDecode32(t, values))
}

func TestDeltaBinaryPack32_InvalidBlockSize(t *testing.T) {
	t.Parallel()

	_, err := NewDeltaBinaryPackEncoder32(100, 4)
	assert.EqualError(t, errors.Cause(err), errInvalidBlockSize.Error())

	d := DeltaBinaryPackDecoder32{}
	err = d.Init(bytes.NewReader([]byte{10, 4, 0, 0}))
	assert.EqualError(t, errors.Cause(err), errInvalidBlockSize.Error())
}

func TestDeltaBinaryPack32_InvalidMiniblockCount(t *testing.T) {
	t.Parallel()

	_, err := NewDeltaBinaryPackEncoder32(128, 3)
	assert.EqualError(t, errors.Cause(err), errInvalidMiniblockCount.Error())

	d := DeltaBinaryPackDecoder32{}
	err = d.Init(bytes.NewReader([]byte{128, 1, 0, 0, 0}))
	assert.EqualError(t, errors.Cause(err), errInvalidMiniblockCount.Error())
}

func TestDeltaBinaryPack32_Init_NilReader(t *testing.T) {
	t.Parallel()

	d := DeltaBinaryPackDecoder32{}

	err := d.Init(nil)

	assert.EqualError(t, errors.Cause(err), errNilReader.Error())
}

func TestDeltaBinaryPack32_Init_ReadFail(t *testing.T) {
	t.Parallel()

	reader := fakes.NewReaderMock(t)
	reader.ReadMock.Return(0, errors.New("read failed"))

	d := DeltaBinaryPackDecoder32{}

	err := d.Init(reader)
	assert.EqualError(t, errors.Cause(err), "read failed")

	err = d.InitSize(reader)
	assert.EqualError(t, errors.Cause(err), "read failed")
}

func TestDeltaBinaryPack32_Close_WriteFail(t *testing.T) {
	t.Parallel()

	writer := fakes.NewWriterMock(t)
	writer.WriteMock.Return(0, errors.New("write failed"))

	encoder, err := NewDeltaBinaryPackEncoder32(128, 4)
	require.NoError(t, err)
	require.NoError(t, encoder.Init(writer))
	require.NoError(t, encoder.Encode([]int32{1, 2, 3}))

	err = encoder.Close()
	assert.EqualError(t, errors.Cause(err), "write failed")
	assert.Equal(t, uint64(1), writer.WriteAfterCounter())
}

func TestDeltaBinaryPack32_Close_ShortWrite(t *testing.T) {
	t.Parallel()

	writer := fakes.NewWriterMock(t)
	writer.WriteMock.Set(func(p []byte) (int, error) {
		return len(p) / 2, nil
	})

	encoder, err := NewDeltaBinaryPackEncoder32(128, 4)
	require.NoError(t, err)
	require.NoError(t, encoder.Init(writer))
	require.NoError(t, encoder.Encode([]int32{1, 2, 3}))

	// the block size varint takes two bytes, only one is written
	err = encoder.Close()
	assert.Error(t, err)
}

func TestDeltaBinaryPack32_Next_NoValues(t *testing.T) {
	t.Parallel()

	d := DeltaBinaryPackDecoder32{}
	require.NoError(t, d.Init(bytes.NewReader([]byte{128, 1, 4, 1, 2})))

	v, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, int32(1), v)

	_, err = d.Next()
	assert.EqualError(t, errors.Cause(err), errNoMoreValues.Error())
}

func TestDeltaBinaryPack32_Truncated(t *testing.T) {
	t.Parallel()

	writer := memory.NewWriter(nil)

	e := DeltaBinaryPackEncoder32{}
	require.NoError(t, e.Init(writer))
	require.NoError(t, e.Encode([]int32{1, 100, 3, 70000, 5}))
	require.NoError(t, e.Close())

	data := writer.Bytes()

	d := DeltaBinaryPackDecoder32{}
	require.NoError(t, d.Init(bytes.NewReader(data[:len(data)-1])))

	res := make([]int32, 5)
	assert.Error(t, DecodeInt32(&d, res))
}

// Int64 ///////////////////////////////////////////////////////////////////////

func TestDeltaBinaryPack64_RoundTrip(t *testing.T) {
	t.Parallel()

	values := []int64{math.MaxInt64, math.MinInt64, 0, 1, -1, math.MaxInt64, 42}
	for i := 0; i < 300; i++ {
		values = append(values, int64(i)*1e12)
	}

	writer := memory.NewWriter(nil)

	e, err := NewDeltaBinaryPackEncoder64(256, 8)
	require.NoError(t, err)
	require.NoError(t, e.Init(writer))
	require.NoError(t, e.Encode(values))
	require.NoError(t, e.Close())

	reader := bytes.NewReader(writer.Bytes())

	d := DeltaBinaryPackDecoder64{}
	require.NoError(t, d.Init(reader))
	require.Equal(t, len(values), d.Count())

	for i := range values {
		v, err := d.Next()
		require.NoError(t, err)
		assert.Equal(t, values[i], v, "index %d", i)
	}

	assert.Equal(t, 0, reader.Len())
}

func TestDeltaBinaryPack64_InitSize(t *testing.T) {
	t.Parallel()

	d := DeltaBinaryPackDecoder64{}
	err := d.InitSize(bytes.NewReader([]byte{5, 0, 0, 0, 128, 1, 4, 1, 84}))
	require.NoError(t, err)

	v, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)
}

// Bit packing /////////////////////////////////////////////////////////////////

func TestPack(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte{0x39}, Pack(nil, []uint64{1, 2, 3}, 2))
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, Pack(nil, []uint64{math.MaxUint64}, 64))
	assert.Empty(t, Pack(nil, []uint64{1, 2, 3}, 0))

	res := make([]uint64, 3)
	Unpack(res, []byte{0x39}, 2)
	assert.Equal(t, []uint64{1, 2, 3}, res)
}

func TestPackBools(t *testing.T) {
	t.Parallel()

	values := []bool{true, false, true, true, false, false, false, false, true}

	packed := PackBools(nil, values)
	assert.Equal(t, []byte{0x0D, 0x01}, packed)

	res := make([]bool, len(values))
	UnpackBools(res, packed)
	assert.Equal(t, values, res)
}
