package encoding

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/hexbee-net/errors"
)

// maxBitPackedGroups bounds a single bit-packed run header.
const maxBitPackedGroups = 1 << 24

type HybridDecoder struct {
	r io.Reader

	bitWidth     int
	rleValueSize int

	rleCount uint64
	rleValue int32

	bpRun []uint64
	bpPos int
}

func NewHybridDecoder(bitWidth int) (*HybridDecoder, error) {
	if bitWidth < 0 || bitWidth > 32 {
		return nil, errors.WithFields(
			errors.WithStack(errInvalidBitWidth),
			errors.Fields{
				"bit-width": bitWidth,
			})
	}

	return &HybridDecoder{
		bitWidth:     bitWidth,
		rleValueSize: (bitWidth + 7) / 8,
	}, nil
}

func (d *HybridDecoder) Init(reader io.Reader) error {
	if reader == nil {
		return errors.WithStack(errNilReader)
	}

	d.r = reader
	d.rleCount = 0
	d.bpRun = d.bpRun[:0]
	d.bpPos = 0

	return nil
}

// InitSize reads the 4-byte size prefix written by HybridEncoder.InitSize and
// consumes exactly that many bytes from reader.
func (d *HybridDecoder) InitSize(reader io.Reader) error {
	if reader == nil {
		return errors.WithStack(errNilReader)
	}

	var size uint32
	if err := binary.Read(reader, binary.LittleEndian, &size); err != nil {
		return err
	}

	if err := checkAvailable(reader, size); err != nil {
		return errors.Wrap(err, "failed to read hybrid encoded data")
	}

	buf := make([]byte, size)
	if _, err := io.ReadFull(reader, buf); err != nil {
		return errors.Wrap(err, "failed to read hybrid encoded data")
	}

	return d.Init(bytes.NewReader(buf))
}

func (d *HybridDecoder) Next() (int32, error) {
	// with a zero bit-width, the stream is an infinite sequence of zeros
	if d.bitWidth == 0 {
		return 0, nil
	}

	if d.r == nil {
		return 0, errors.WithStack(errNotInitialized)
	}

	if d.rleCount == 0 && d.bpPos >= len(d.bpRun) {
		if err := d.readRunHeader(); err != nil {
			return 0, err
		}
	}

	if d.rleCount > 0 {
		d.rleCount--
		return d.rleValue, nil
	}

	v := d.bpRun[d.bpPos]
	d.bpPos++

	return int32(v), nil
}

// NextBools fills dst with values decoded as booleans.
func (d *HybridDecoder) NextBools(dst []bool) error {
	for i := range dst {
		v, err := d.Next()
		if err != nil {
			return err
		}

		dst[i] = v != 0
	}

	return nil
}

func (d *HybridDecoder) readRunHeader() error {
	h, err := ReadUVarInt64(d.r)
	if err != nil {
		if err == io.EOF {
			return errors.WithStack(errNoMoreValues)
		}

		return err
	}

	if h&1 == 1 {
		return d.readBitPacked(h >> 1)
	}

	return d.readRLE(h >> 1)
}

func (d *HybridDecoder) readRLE(count uint64) error {
	if count == 0 {
		return errors.WithFields(
			errors.New("invalid RLE run length"),
			errors.Fields{
				"count": count,
			})
	}

	v, err := readIntLittleEndian(d.r, d.rleValueSize)
	if err != nil {
		return errors.Wrap(err, "failed to read RLE value")
	}

	if v >= uint64(1)<<uint(d.bitWidth) {
		return errors.WithFields(
			errors.WithStack(errOutOfRange),
			errors.Fields{
				"value":     v,
				"bit-width": d.bitWidth,
			})
	}

	d.rleCount = count
	d.rleValue = int32(v)

	return nil
}

func (d *HybridDecoder) readBitPacked(groups uint64) error {
	if groups == 0 || groups > maxBitPackedGroups {
		return errors.WithFields(
			errors.New("invalid bit-packed run length"),
			errors.Fields{
				"groups": groups,
			})
	}

	count := int(groups) * 8

	buf := make([]byte, PackedSize(count, d.bitWidth))
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return errors.Wrap(err, "failed to read bit-packed run")
	}

	if cap(d.bpRun) < count {
		d.bpRun = make([]uint64, count)
	} else {
		d.bpRun = d.bpRun[:count]
	}

	Unpack(d.bpRun, buf, d.bitWidth)
	d.bpPos = 0

	return nil
}
