package compression

import (
	"github.com/golang/snappy"
	"github.com/hexbee-net/errors"
)

type SnappyCompressor struct {
}

func (c SnappyCompressor) CompressBlock(dst, block []byte) ([]byte, error) {
	return snappy.Encode(dst[:cap(dst)], block), nil
}

func (c SnappyCompressor) DecompressBlock(dst, block []byte, size int) ([]byte, error) {
	n, err := snappy.DecodedLen(block)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decompress Snappy data")
	}

	if n > size {
		return nil, sizeLimitError(size, int64(n))
	}

	ret, err := snappy.Decode(dst[:cap(dst)], block)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decompress Snappy data")
	}

	return ret, nil
}
