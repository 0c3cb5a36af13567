package compression

import (
	"bytes"

	"github.com/andybalholm/brotli"
	"github.com/hexbee-net/errors"
)

type BrotliCompressor struct {
}

func (c BrotliCompressor) CompressBlock(dst, block []byte) ([]byte, error) {
	buf := bytes.NewBuffer(dst[:0])
	w := brotli.NewWriter(buf)

	if _, err := w.Write(block); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (c BrotliCompressor) DecompressBlock(dst, block []byte, size int) ([]byte, error) {
	ret, err := readAllInto(dst, brotli.NewReader(bytes.NewReader(block)), size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decompress Brotli data")
	}

	return ret, nil
}
