package compression

type UncompressedCompressor struct {
}

func (c UncompressedCompressor) CompressBlock(dst, block []byte) ([]byte, error) {
	return append(dst[:0], block...), nil
}

func (c UncompressedCompressor) DecompressBlock(dst, block []byte, size int) ([]byte, error) {
	if len(block) > size {
		return nil, sizeLimitError(size, int64(len(block)))
	}

	return append(dst[:0], block...), nil
}
