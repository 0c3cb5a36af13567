package strata

import (
	"io"
	"math"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/compression"
	"github.com/hexbee-net/strata/layout"
	"github.com/hexbee-net/strata/meta"
	"github.com/hexbee-net/strata/nested"
	"github.com/hexbee-net/strata/schema"
)

// ColumnReader decodes the pages of one column, one page per NextArray
// call. The page bytes are read into a scratch buffer that only grows;
// decoded fragments never alias it.
type ColumnReader struct {
	r     io.Reader
	leaf  *schema.Leaf
	pages []meta.PageMeta
	next  int

	scratch []byte
	decoder *layout.PageReader

	compressors compression.Compressors
	logger      log.Logger
	metrics     *Metrics
}

// ColumnReaderOption configures a ColumnReader.
type ColumnReaderOption func(*ColumnReader)

func WithColumnCompressors(compressors compression.Compressors) ColumnReaderOption {
	return func(c *ColumnReader) {
		c.compressors = compressors
	}
}

func WithColumnLogger(logger log.Logger) ColumnReaderOption {
	return func(c *ColumnReader) {
		c.logger = logger
	}
}

func WithColumnMetrics(m *Metrics) ColumnReaderOption {
	return func(c *ColumnReader) {
		c.metrics = m
	}
}

// NewColumnReader reads pages from r, which must start at the first page of
// the column and hold exactly its pages.
func NewColumnReader(r io.Reader, leaf *schema.Leaf, pages []meta.PageMeta, scratch []byte, opts ...ColumnReaderOption) *ColumnReader {
	c := &ColumnReader{
		r:       r,
		leaf:    leaf,
		pages:   pages,
		scratch: scratch,
		logger:  log.NewNopLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.decoder = layout.NewPageReader(c.compressors)

	return c
}

// HasNext reports whether a page remains to be read.
func (c *ColumnReader) HasNext() bool {
	return c.next < len(c.pages)
}

// Remaining returns the number of pages left.
func (c *ColumnReader) Remaining() int {
	return len(c.pages) - c.next
}

// Leaf returns the descriptor of the column.
func (c *ColumnReader) Leaf() *schema.Leaf {
	return c.leaf
}

// NextArray reads and decodes the next page.
func (c *ColumnReader) NextArray() (*nested.Leaf, error) {
	if !c.HasNext() {
		return nil, errors.WithFields(
			errors.WithStack(ErrExhausted),
			errors.Fields{
				"column": c.leaf.FlatName,
				"pages":  len(c.pages),
			})
	}

	idx := c.next
	page := c.pages[idx]
	c.next++

	if page.Length > math.MaxInt32 {
		return nil, c.fail(idx, errors.WithFields(
			errors.WithStack(ErrDecode),
			errors.Fields{
				"reason": "page too large",
				"length": page.Length,
			}))
	}

	if uint64(cap(c.scratch)) < page.Length {
		c.scratch = make([]byte, page.Length)
	} else {
		c.scratch = c.scratch[:page.Length]
	}

	if _, err := io.ReadFull(c.r, c.scratch); err != nil {
		return nil, c.fail(idx, decodeError(err, errors.Fields{
			"reason": "short page",
			"length": page.Length,
		}))
	}

	frag, err := c.decoder.ReadPage(c.scratch, c.leaf)
	if err != nil {
		kind := ErrDecode
		if errors.Cause(err) == layout.ErrShapeMismatch {
			kind = ErrSchemaMismatch
		}

		return nil, c.fail(idx, errors.WithFields(
			errors.WithStack(kind),
			errors.Fields{
				"error": err.Error(),
			}))
	}

	if uint64(frag.Rows()) != page.NumValues {
		return nil, c.fail(idx, errors.WithFields(
			errors.WithStack(ErrDecode),
			errors.Fields{
				"reason":   "value count mismatch",
				"expected": page.NumValues,
				"actual":   frag.Rows(),
			}))
	}

	c.metrics.pageRead(page.Length)

	return frag, nil
}

func (c *ColumnReader) fail(page int, err error) error {
	err = errors.WithFields(err, errors.Fields{
		"column": c.leaf.FlatName,
		"page":   page,
	})

	c.metrics.decodeError()
	level.Warn(c.logger).Log("msg", "failed to read page", "column", c.leaf.FlatName, "page", page, "err", err)

	return err
}

// Close releases the underlying handle when it is closable.
func (c *ColumnReader) Close() error {
	if cl, ok := c.r.(io.Closer); ok {
		return cl.Close()
	}

	return nil
}
