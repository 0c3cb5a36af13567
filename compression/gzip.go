package compression

import (
	"bytes"

	"github.com/hexbee-net/errors"
	"github.com/klauspost/compress/gzip"
)

type GZipCompressor struct {
}

func (c GZipCompressor) CompressBlock(dst, block []byte) ([]byte, error) {
	buf := bytes.NewBuffer(dst[:0])
	w := gzip.NewWriter(buf)

	if _, err := w.Write(block); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (c GZipCompressor) DecompressBlock(dst, block []byte, size int) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(block))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decompress GZIP data")
	}

	ret, err := readAllInto(dst, r, size)
	if err != nil {
		_ = r.Close()
		return nil, errors.Wrap(err, "failed to decompress GZIP data")
	}

	return ret, r.Close()
}
