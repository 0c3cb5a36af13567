package compression

import (
	"bytes"
	"io"
	"strings"

	"github.com/hexbee-net/errors"
)

const (
	errUnknownCodec     = errors.Error("unknown compression codec")
	errUnsupportedCodec = errors.Error("compression codec not supported")

	// ErrSizeLimit reports a block that decompresses to more bytes than allowed.
	ErrSizeLimit = errors.Error("decompressed block exceeds size limit")
)

// Codec selects the block compression applied to every page of a write session.
type Codec int32

const (
	Uncompressed Codec = 0
	Snappy       Codec = 1
	GZip         Codec = 2
	Brotli       Codec = 4
	LZ4          Codec = 5
	ZStd         Codec = 6
)

var codecNames = map[Codec]string{
	Uncompressed: "none",
	Snappy:       "snappy",
	GZip:         "gzip",
	Brotli:       "brotli",
	LZ4:          "lz4",
	ZStd:         "zstd",
}

func (c Codec) String() string {
	if name, ok := codecNames[c]; ok {
		return name
	}

	return "<UNSET>"
}

// Valid reports whether c is one of the known codecs.
func (c Codec) Valid() bool {
	_, ok := codecNames[c]
	return ok
}

// ParseCodec returns the codec matching name, case-insensitively.
// "uncompressed" is accepted as an alias of "none".
func ParseCodec(name string) (Codec, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "uncompressed" || name == "" {
		return Uncompressed, nil
	}

	for c, n := range codecNames {
		if n == name {
			return c, nil
		}
	}

	return Uncompressed, errors.WithFields(
		errors.WithStack(errUnknownCodec),
		errors.Fields{
			"codec": name,
		})
}

// BlockCompressor compresses and decompresses whole page bodies.
// dst is scratch space owned by the caller: implementations may reuse its
// storage, and the returned slice may alias it.
//
// DecompressBlock never produces more than size bytes: a block that would
// decompress past size fails with ErrSizeLimit.
type BlockCompressor interface {
	CompressBlock(dst, block []byte) ([]byte, error)
	DecompressBlock(dst, block []byte, size int) ([]byte, error)
}

// Compressors maps codecs to their implementation.
type Compressors map[Codec]BlockCompressor

// DefaultCompressors returns a registry holding every supported codec.
func DefaultCompressors() Compressors {
	return Compressors{
		Uncompressed: UncompressedCompressor{},
		Snappy:       SnappyCompressor{},
		GZip:         GZipCompressor{},
		Brotli:       BrotliCompressor{},
		LZ4:          LZ4Compressor{},
		ZStd:         NewZStdCompressor(),
	}
}

// Get returns the compressor registered for codec.
func (c Compressors) Get(codec Codec) (BlockCompressor, error) {
	bc, ok := c[codec]
	if !ok {
		return nil, errors.WithFields(
			errors.WithStack(errUnsupportedCodec),
			errors.Fields{
				"codec": codec.String(),
			})
	}

	return bc, nil
}

// readAllInto drains r into dst's storage, reading at most one byte past size.
func readAllInto(dst []byte, r io.Reader, size int) ([]byte, error) {
	if size < 0 {
		return nil, sizeLimitError(size, 0)
	}

	buf := bytes.NewBuffer(dst[:0])

	n, err := buf.ReadFrom(io.LimitReader(r, int64(size)+1))
	if err != nil {
		return nil, err
	}

	if n > int64(size) {
		return nil, sizeLimitError(size, n)
	}

	return buf.Bytes(), nil
}

func sizeLimitError(size int, actual int64) error {
	return errors.WithFields(
		errors.WithStack(ErrSizeLimit),
		errors.Fields{
			"limit":  size,
			"actual": actual,
		})
}
