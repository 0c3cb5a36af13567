package encoding

import (
	"io"

	"github.com/hexbee-net/errors"
)

const (
	DefaultBlockSize      = 128
	DefaultMiniBlockCount = 4
)

// deltaEncoder buffers values and writes them on Close:
//
// header: uvarint(block size), uvarint(mini block count), uvarint(total count), varint(first value)
// blocks: varint(min delta), one bit-width byte per mini block, packed mini blocks
//
// Mini blocks past the last delta have a zero bit-width and take no space.
type deltaEncoder struct {
	w io.Writer

	blockSize           int
	miniBlockCount      int
	miniBlockValueCount int

	values []int64
}

func newDeltaEncoder(blockSize, miniBlockCount int) (deltaEncoder, error) {
	if blockSize <= 0 || blockSize%128 != 0 {
		return deltaEncoder{}, errors.WithFields(
			errors.WithStack(errInvalidBlockSize),
			errors.Fields{
				"block-size": blockSize,
			})
	}

	if miniBlockCount <= 0 || blockSize%miniBlockCount != 0 || (blockSize/miniBlockCount)%8 != 0 {
		return deltaEncoder{}, errors.WithFields(
			errors.WithStack(errInvalidMiniblockCount),
			errors.Fields{
				"block-size":       blockSize,
				"mini-block-count": miniBlockCount,
			})
	}

	return deltaEncoder{
		blockSize:           blockSize,
		miniBlockCount:      miniBlockCount,
		miniBlockValueCount: blockSize / miniBlockCount,
	}, nil
}

func (e *deltaEncoder) init(w io.Writer) error {
	if w == nil {
		return errors.WithStack(errNilWriter)
	}

	if e.blockSize == 0 {
		*e = deltaEncoder{
			blockSize:           DefaultBlockSize,
			miniBlockCount:      DefaultMiniBlockCount,
			miniBlockValueCount: DefaultBlockSize / DefaultMiniBlockCount,
		}
	}

	e.w = w
	e.values = e.values[:0]

	return nil
}

func (e *deltaEncoder) close() error {
	if e.w == nil {
		return errors.WithStack(errNilWriter)
	}

	var first int64
	if len(e.values) > 0 {
		first = e.values[0]
	}

	for _, v := range []uint64{uint64(e.blockSize), uint64(e.miniBlockCount), uint64(len(e.values))} {
		if err := WriteUVarInt64(e.w, v); err != nil {
			return err
		}
	}

	if err := WriteVarInt64(e.w, first); err != nil {
		return err
	}

	if len(e.values) < 2 {
		e.values = e.values[:0]
		return nil
	}

	deltas := make([]int64, len(e.values)-1)
	for i := 1; i < len(e.values); i++ {
		deltas[i-1] = e.values[i] - e.values[i-1]
	}

	for start := 0; start < len(deltas); start += e.blockSize {
		end := start + e.blockSize
		if end > len(deltas) {
			end = len(deltas)
		}

		if err := e.writeBlock(deltas[start:end]); err != nil {
			return err
		}
	}

	e.values = e.values[:0]

	return nil
}

func (e *deltaEncoder) writeBlock(block []int64) error {
	minDelta := block[0]
	for _, d := range block[1:] {
		if d < minDelta {
			minDelta = d
		}
	}

	if err := WriteVarInt64(e.w, minDelta); err != nil {
		return err
	}

	widths := make([]byte, e.miniBlockCount)
	packed := make([]byte, 0, 8*len(block))
	values := make([]uint64, e.miniBlockValueCount)

	for m := 0; m < e.miniBlockCount; m++ {
		start := m * e.miniBlockValueCount
		if start >= len(block) {
			break
		}

		end := start + e.miniBlockValueCount
		if end > len(block) {
			end = len(block)
		}

		var max uint64
		for i := range values {
			values[i] = 0
			if start+i < end {
				values[i] = uint64(block[start+i] - minDelta)
				max |= values[i]
			}
		}

		widths[m] = byte(BitWidth(max))
		packed = Pack(packed, values, int(widths[m]))
	}

	if err := WriteFull(e.w, widths); err != nil {
		return err
	}

	return WriteFull(e.w, packed)
}

// DeltaBinaryPackEncoder32 delta-encodes int32 values.
type DeltaBinaryPackEncoder32 struct {
	deltaEncoder
}

// NewDeltaBinaryPackEncoder32 creates an encoder. A zero value encoder uses
// DefaultBlockSize and DefaultMiniBlockCount.
func NewDeltaBinaryPackEncoder32(blockSize, miniBlockCount int) (*DeltaBinaryPackEncoder32, error) {
	e, err := newDeltaEncoder(blockSize, miniBlockCount)
	if err != nil {
		return nil, err
	}

	return &DeltaBinaryPackEncoder32{deltaEncoder: e}, nil
}

func (e *DeltaBinaryPackEncoder32) Init(w io.Writer) error {
	return e.init(w)
}

func (e *DeltaBinaryPackEncoder32) AddInt32(v int32) error {
	e.values = append(e.values, int64(v))
	return nil
}

func (e *DeltaBinaryPackEncoder32) Encode(data []int32) error {
	for _, v := range data {
		e.values = append(e.values, int64(v))
	}

	return nil
}

func (e *DeltaBinaryPackEncoder32) Close() error {
	return e.close()
}

// DeltaBinaryPackEncoder64 delta-encodes int64 values. Deltas wrap around.
type DeltaBinaryPackEncoder64 struct {
	deltaEncoder
}

func NewDeltaBinaryPackEncoder64(blockSize, miniBlockCount int) (*DeltaBinaryPackEncoder64, error) {
	e, err := newDeltaEncoder(blockSize, miniBlockCount)
	if err != nil {
		return nil, err
	}

	return &DeltaBinaryPackEncoder64{deltaEncoder: e}, nil
}

func (e *DeltaBinaryPackEncoder64) Init(w io.Writer) error {
	return e.init(w)
}

func (e *DeltaBinaryPackEncoder64) AddInt64(v int64) error {
	e.values = append(e.values, v)
	return nil
}

func (e *DeltaBinaryPackEncoder64) Encode(data []int64) error {
	e.values = append(e.values, data...)
	return nil
}

func (e *DeltaBinaryPackEncoder64) Close() error {
	return e.close()
}
