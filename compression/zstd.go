package compression

import (
	"bytes"
	"runtime"
	"sync"

	"github.com/hexbee-net/errors"
	"github.com/klauspost/compress/zstd"
)

// maxZStdWindow bounds the window a frame may ask the decoder to allocate.
const maxZStdWindow = 64 << 20

// ZStdCompressor shares one encoder between all callers; EncodeAll is safe
// for concurrent use. Blocks are decompressed as streams so the output can
// be bounded, using decoders kept in a small pool.
type ZStdCompressor struct {
	once    *sync.Once
	encoder *zstd.Encoder
	err     error

	decoders chan *zstd.Decoder
}

func NewZStdCompressor() *ZStdCompressor {
	return &ZStdCompressor{
		once:     &sync.Once{},
		decoders: make(chan *zstd.Decoder, runtime.GOMAXPROCS(0)),
	}
}

func (c *ZStdCompressor) init() error {
	c.once.Do(func() {
		c.encoder, c.err = zstd.NewWriter(nil)
	})

	return c.err
}

func (c *ZStdCompressor) CompressBlock(dst, block []byte) ([]byte, error) {
	if err := c.init(); err != nil {
		return nil, errors.Wrap(err, "failed to create ZSTD encoder")
	}

	return c.encoder.EncodeAll(block, dst[:0]), nil
}

func (c *ZStdCompressor) DecompressBlock(dst, block []byte, size int) ([]byte, error) {
	if len(block) == 0 {
		return dst[:0], nil
	}

	d, err := c.getDecoder()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create ZSTD decoder")
	}

	defer c.putDecoder(d)

	if err := d.Reset(bytes.NewReader(block)); err != nil {
		return nil, errors.Wrap(err, "failed to decompress ZSTD data")
	}

	ret, err := readAllInto(dst, d, size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decompress ZSTD data")
	}

	return ret, nil
}

func (c *ZStdCompressor) getDecoder() (*zstd.Decoder, error) {
	select {
	case d := <-c.decoders:
		return d, nil
	default:
		return zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(true),
			zstd.WithDecoderMaxMemory(maxZStdWindow),
		)
	}
}

// putDecoder returns d to the pool, or closes it when the pool is full.
func (c *ZStdCompressor) putDecoder(d *zstd.Decoder) {
	select {
	case c.decoders <- d:
	default:
		d.Close()
	}
}
