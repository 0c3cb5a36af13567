package encoding

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/hexbee-net/errors"
)

// maxDeltaValues bounds the value count announced by a stream header.
const maxDeltaValues = math.MaxInt32

type deltaDecoder struct {
	r io.Reader

	blockSize           int
	miniBlockCount      int
	miniBlockValueCount int

	total    int
	position int
	previous int64

	minDelta  int64
	widths    []byte
	miniBlock int
	values    []uint64
	valuePos  int
	packed    []byte
}

func (d *deltaDecoder) init(r io.Reader) error {
	if r == nil {
		return errors.WithStack(errNilReader)
	}

	d.r = r

	blockSize, err := ReadUVarInt64(r)
	if err != nil {
		return err
	}

	if blockSize == 0 || blockSize%128 != 0 || blockSize > 1<<16 {
		return errors.WithFields(
			errors.WithStack(errInvalidBlockSize),
			errors.Fields{
				"block-size": blockSize,
			})
	}

	miniBlockCount, err := ReadUVarInt64(r)
	if err != nil {
		return err
	}

	if miniBlockCount == 0 || blockSize%miniBlockCount != 0 || (blockSize/miniBlockCount)%8 != 0 {
		return errors.WithFields(
			errors.WithStack(errInvalidMiniblockCount),
			errors.Fields{
				"block-size":       blockSize,
				"mini-block-count": miniBlockCount,
			})
	}

	total, err := ReadUVarInt64(r)
	if err != nil {
		return err
	}

	if total > maxDeltaValues {
		return errors.WithFields(
			errors.WithStack(errOutOfRange),
			errors.Fields{
				"count": total,
			})
	}

	first, err := ReadVarInt64(r)
	if err != nil {
		return err
	}

	d.blockSize = int(blockSize)
	d.miniBlockCount = int(miniBlockCount)
	d.miniBlockValueCount = int(blockSize / miniBlockCount)
	d.total = int(total)
	d.position = 0
	d.previous = first
	d.widths = make([]byte, d.miniBlockCount)
	d.miniBlock = d.miniBlockCount
	d.values = make([]uint64, d.miniBlockValueCount)
	d.valuePos = d.miniBlockValueCount

	return nil
}

func (d *deltaDecoder) initSize(r io.Reader) error {
	if r == nil {
		return errors.WithStack(errNilReader)
	}

	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return err
	}

	if err := checkAvailable(r, size); err != nil {
		return errors.Wrap(err, "failed to read delta encoded data")
	}

	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return errors.Wrap(err, "failed to read delta encoded data")
	}

	return d.init(bytes.NewReader(buf))
}

func (d *deltaDecoder) next() (int64, error) {
	if d.r == nil {
		return 0, errors.WithStack(errNotInitialized)
	}

	if d.position >= d.total {
		return 0, errors.WithStack(errNoMoreValues)
	}

	d.position++

	if d.position == 1 {
		return d.previous, nil
	}

	if d.valuePos >= d.miniBlockValueCount {
		if err := d.readMiniBlock(); err != nil {
			return 0, err
		}
	}

	d.previous += d.minDelta + int64(d.values[d.valuePos])
	d.valuePos++

	return d.previous, nil
}

func (d *deltaDecoder) readMiniBlock() error {
	if d.miniBlock >= d.miniBlockCount {
		minDelta, err := ReadVarInt64(d.r)
		if err != nil {
			return errors.Wrap(err, "failed to read block min delta")
		}

		if _, err := io.ReadFull(d.r, d.widths); err != nil {
			return errors.Wrap(err, "failed to read mini block bit-widths")
		}

		d.minDelta = minDelta
		d.miniBlock = 0
	}

	width := int(d.widths[d.miniBlock])
	if width > 64 {
		return errors.WithFields(
			errors.WithStack(errInvalidBitWidth),
			errors.Fields{
				"bit-width": width,
			})
	}

	size := PackedSize(d.miniBlockValueCount, width)
	if cap(d.packed) < size {
		d.packed = make([]byte, size)
	} else {
		d.packed = d.packed[:size]
	}

	if _, err := io.ReadFull(d.r, d.packed); err != nil {
		return errors.Wrap(err, "failed to read mini block")
	}

	Unpack(d.values, d.packed, width)
	d.miniBlock++
	d.valuePos = 0

	return nil
}

// DeltaBinaryPackDecoder32 decodes values written by DeltaBinaryPackEncoder32.
type DeltaBinaryPackDecoder32 struct {
	deltaDecoder
}

func (d *DeltaBinaryPackDecoder32) Init(r io.Reader) error {
	return d.init(r)
}

func (d *DeltaBinaryPackDecoder32) InitSize(r io.Reader) error {
	return d.initSize(r)
}

func (d *DeltaBinaryPackDecoder32) Next() (int32, error) {
	v, err := d.next()
	if err != nil {
		return 0, err
	}

	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, errors.WithFields(
			errors.WithStack(errOutOfRange),
			errors.Fields{
				"value": v,
			})
	}

	return int32(v), nil
}

// Count returns the number of values announced by the stream header.
func (d *DeltaBinaryPackDecoder32) Count() int {
	return d.total
}

// DeltaBinaryPackDecoder64 decodes values written by DeltaBinaryPackEncoder64.
type DeltaBinaryPackDecoder64 struct {
	deltaDecoder
}

func (d *DeltaBinaryPackDecoder64) Init(r io.Reader) error {
	return d.init(r)
}

func (d *DeltaBinaryPackDecoder64) InitSize(r io.Reader) error {
	return d.initSize(r)
}

func (d *DeltaBinaryPackDecoder64) Next() (int64, error) {
	return d.next()
}

func (d *DeltaBinaryPackDecoder64) Count() int {
	return d.total
}
