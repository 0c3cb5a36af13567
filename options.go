package strata

import (
	"strings"

	"github.com/go-kit/log"
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/compression"
	"github.com/hexbee-net/strata/layout"
)

// EncodingPolicy selects how page values are encoded.
type EncodingPolicy int

const (
	// EncodingAuto uses delta binary packing for integers, delta-length for
	// byte arrays, RLE for booleans and plain for floats.
	EncodingAuto EncodingPolicy = iota
	// EncodingPlain uses the plain encoding for every type.
	EncodingPlain
	// EncodingDictionary stores each page as a dictionary of its distinct
	// values followed by their indices. Booleans stay RLE encoded.
	EncodingDictionary
)

func (p EncodingPolicy) String() string {
	switch p {
	case EncodingAuto:
		return "auto"
	case EncodingPlain:
		return "plain"
	case EncodingDictionary:
		return "dictionary"
	default:
		return "<UNSET>"
	}
}

// ParseEncodingPolicy returns the policy matching name, case-insensitively.
func ParseEncodingPolicy(name string) (EncodingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "auto", "":
		return EncodingAuto, nil
	case "plain":
		return EncodingPlain, nil
	case "dictionary", "dict":
		return EncodingDictionary, nil
	default:
		return EncodingAuto, errors.WithFields(
			errors.WithStack(ErrConfig),
			errors.Fields{
				"encoding": name,
			})
	}
}

func (p EncodingPolicy) encodingFunc() layout.EncodingFunc {
	switch p {
	case EncodingPlain:
		return layout.PlainEncoding
	case EncodingDictionary:
		return layout.DictionaryEncoding
	default:
		return layout.DefaultEncoding
	}
}

// WriteOptions holds the settings of a write session. A nil MaxPageSize
// writes every batch as a single page per leaf.
type WriteOptions struct {
	Compression compression.Codec
	MaxPageSize *int
	Encoding    EncodingPolicy
}

// DefaultWriteOptions returns snappy compression, unbounded pages and
// automatic encodings.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{
		Compression: compression.Snappy,
		Encoding:    EncodingAuto,
	}
}

func (o WriteOptions) Validate() error {
	if !o.Compression.Valid() {
		return errors.WithFields(
			errors.WithStack(ErrConfig),
			errors.Fields{
				"compression": int32(o.Compression),
			})
	}

	if o.MaxPageSize != nil && *o.MaxPageSize <= 0 {
		return errors.WithFields(
			errors.WithStack(ErrConfig),
			errors.Fields{
				"max_page_size": *o.MaxPageSize,
			})
	}

	switch o.Encoding {
	case EncodingAuto, EncodingPlain, EncodingDictionary:
	default:
		return errors.WithFields(
			errors.WithStack(ErrConfig),
			errors.Fields{
				"encoding": int(o.Encoding),
			})
	}

	return nil
}

// pageSize returns the number of rows per page for a batch of rows rows.
func (o WriteOptions) pageSize(rows int) (int, error) {
	if o.MaxPageSize == nil {
		return rows, nil
	}

	if *o.MaxPageSize <= 0 {
		return 0, errors.WithFields(
			errors.WithStack(ErrConfig),
			errors.Fields{
				"max_page_size": *o.MaxPageSize,
			})
	}

	return min(*o.MaxPageSize, rows), nil
}

// FileWriterOption configures a FileWriter.
type FileWriterOption func(*FileWriter)

// WithWriteOptions replaces every write setting at once.
func WithWriteOptions(opts WriteOptions) FileWriterOption {
	return func(fw *FileWriter) {
		fw.opts = opts
	}
}

// WithCompression sets the codec applied to every page.
func WithCompression(codec compression.Codec) FileWriterOption {
	return func(fw *FileWriter) {
		fw.opts.Compression = codec
	}
}

// WithMaxPageSize bounds the number of rows of each page.
func WithMaxPageSize(size int) FileWriterOption {
	return func(fw *FileWriter) {
		fw.opts.MaxPageSize = &size
	}
}

func WithEncoding(policy EncodingPolicy) FileWriterOption {
	return func(fw *FileWriter) {
		fw.opts.Encoding = policy
	}
}

// WithMetaData stores key/value pairs in the file footer.
func WithMetaData(data map[string]string) FileWriterOption {
	return func(fw *FileWriter) {
		for k, v := range data {
			fw.kvStore[k] = v
		}
	}
}

// WithCreatedBy sets the application name recorded in the footer.
func WithCreatedBy(createdBy string) FileWriterOption {
	return func(fw *FileWriter) {
		fw.createdBy = createdBy
	}
}

func WithLogger(logger log.Logger) FileWriterOption {
	return func(fw *FileWriter) {
		fw.logger = logger
	}
}

func WithMetrics(m *Metrics) FileWriterOption {
	return func(fw *FileWriter) {
		fw.metrics = m
	}
}

// FileReaderOption configures a FileReader.
type FileReaderOption func(*FileReader)

// WithColumns limits reading to the given dotted column names. A top-level
// field is read whole as soon as one of its leaves is selected.
func WithColumns(columns ...string) FileReaderOption {
	return func(fr *FileReader) {
		fr.columns = columns
	}
}

// WithReadBufferSize sets the buffer size of each column section.
func WithReadBufferSize(size int) FileReaderOption {
	return func(fr *FileReader) {
		fr.bufSize = size
	}
}

func WithCompressors(compressors compression.Compressors) FileReaderOption {
	return func(fr *FileReader) {
		fr.compressors = compressors
	}
}

func WithReaderLogger(logger log.Logger) FileReaderOption {
	return func(fr *FileReader) {
		fr.logger = logger
	}
}

func WithReaderMetrics(m *Metrics) FileReaderOption {
	return func(fr *FileReader) {
		fr.metrics = m
	}
}
