package layout

import (
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/compression"
)

type blockReader struct {
	compressors compression.Compressors
	buf         []byte
}

// readBlockData decompresses block into the reader's scratch buffer. The
// output never grows past the size announced by the header.
func (r *blockReader) readBlockData(block []byte, codec compression.Codec, uncompressedSize int32) ([]byte, error) {
	if uncompressedSize < 0 {
		return nil, errors.WithFields(
			errors.WithStack(errInvalidPage),
			errors.Fields{
				"uncompressed-size": uncompressedSize,
			})
	}

	c, err := r.compressors.Get(codec)
	if err != nil {
		return nil, err
	}

	res, err := c.DecompressBlock(r.buf[:0], block, int(uncompressedSize))
	if errors.Cause(err) == compression.ErrSizeLimit {
		return nil, errors.WithFields(
			errors.WithStack(errSizeMismatch),
			errors.Fields{
				"expected": uncompressedSize,
				"error":    err.Error(),
			})
	}

	if err != nil {
		return nil, errors.Wrap(err, "failed to decompress block")
	}

	if len(res) != int(uncompressedSize) {
		return nil, errors.WithFields(
			errors.WithStack(errSizeMismatch),
			errors.Fields{
				"expected": uncompressedSize,
				"actual":   len(res),
			})
	}

	if cap(res) > cap(r.buf) {
		r.buf = res[:0]
	}

	return res, nil
}

type blockWriter struct {
	compressor compression.BlockCompressor
	buf        []byte
}

func (w *blockWriter) compressBlock(block []byte) ([]byte, error) {
	res, err := w.compressor.CompressBlock(w.buf[:0], block)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compress block")
	}

	if cap(res) > cap(w.buf) {
		w.buf = res[:0]
	}

	return res, nil
}
