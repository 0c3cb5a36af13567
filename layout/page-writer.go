package layout

import (
	"bytes"
	"hash/crc32"
	"io"
	"math"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/compression"
	"github.com/hexbee-net/strata/encoding"
	"github.com/hexbee-net/strata/format"
	"github.com/hexbee-net/strata/nested"
	"github.com/hexbee-net/strata/schema"
	"github.com/hexbee-net/strata/types"
)

// PageWriter encodes leaf slices as pages. It owns its payload, compression
// and header buffers and must not be shared between goroutines.
type PageWriter struct {
	codec       compression.Codec
	encodingFor EncodingFunc
	block       blockWriter

	payload bytes.Buffer
	header  bytes.Buffer
}

// NewPageWriter creates a page writer compressing with codec. A nil
// compressors map uses compression.DefaultCompressors, a nil encodingFor
// uses DefaultEncoding.
func NewPageWriter(codec compression.Codec, compressors compression.Compressors, encodingFor EncodingFunc) (*PageWriter, error) {
	if compressors == nil {
		compressors = compression.DefaultCompressors()
	}

	if encodingFor == nil {
		encodingFor = DefaultEncoding
	}

	c, err := compressors.Get(codec)
	if err != nil {
		return nil, err
	}

	return &PageWriter{
		codec:       codec,
		encodingFor: encodingFor,
		block:       blockWriter{compressor: c},
	}, nil
}

// Codec returns the compression codec of the written pages.
func (p *PageWriter) Codec() compression.Codec {
	return p.codec
}

// WritePage encodes leaf, a slice of the column described by desc, to w and
// returns the number of bytes written.
func (p *PageWriter) WritePage(w io.Writer, leaf *nested.Leaf, desc *schema.Leaf) (int, error) {
	if err := checkShape(leaf, desc); err != nil {
		return 0, err
	}

	enc := p.encodingFor(desc.Physical)

	if err := p.encodeBody(leaf, enc); err != nil {
		return 0, err
	}

	if p.payload.Len() > math.MaxInt32 || leaf.Slots() > maxPageValues {
		return 0, errors.WithFields(
			errors.WithStack(errPageTooLarge),
			errors.Fields{
				"size":  p.payload.Len(),
				"slots": leaf.Slots(),
			})
	}

	body, err := p.block.compressBlock(p.payload.Bytes())
	if err != nil {
		return 0, err
	}

	if len(body) > math.MaxInt32 {
		return 0, errors.WithFields(
			errors.WithStack(errPageTooLarge),
			errors.Fields{
				"compressed-size": len(body),
			})
	}

	header := &format.PageHeader{
		Type:             int32(desc.Physical),
		Encoding:         int32(enc),
		Codec:            int32(p.codec),
		UncompressedSize: int32(p.payload.Len()),
		CompressedSize:   int32(len(body)),
		NumRows:          int32(leaf.Rows()),
		NumSlots:         int32(leaf.Slots()),
		NullCount:        int32(leaf.Values.NullCount()),
		CRC:              int32(crc32.ChecksumIEEE(body)),
	}

	p.header.Reset()

	if err := format.WriteThrift(header, &p.header); err != nil {
		return 0, errors.Wrap(err, "failed to encode page header")
	}

	if err := encoding.WriteFull(w, p.header.Bytes()); err != nil {
		return 0, errors.Wrap(err, "failed to write page header")
	}

	if err := encoding.WriteFull(w, body); err != nil {
		return p.header.Len(), errors.Wrap(err, "failed to write page body")
	}

	return p.header.Len() + len(body), nil
}

func (p *PageWriter) encodeBody(leaf *nested.Leaf, enc types.Encoding) error {
	buf := &p.payload
	buf.Reset()

	if err := encoding.WriteUVarInt64(buf, uint64(len(leaf.Levels))); err != nil {
		return err
	}

	for i := range leaf.Levels {
		lvl := &leaf.Levels[i]

		if err := buf.WriteByte(byte(lvl.Kind)); err != nil {
			return err
		}

		if err := encoding.WriteUVarInt64(buf, uint64(lvl.Length)); err != nil {
			return err
		}

		if err := writeValidity(buf, lvl.Validity); err != nil {
			return err
		}

		if lvl.Kind != schema.LevelList {
			continue
		}

		if err := writeOffsets(buf, lvl.Offsets); err != nil {
			return err
		}
	}

	values := leaf.Values

	if err := encoding.WriteUVarInt64(buf, uint64(values.Len())); err != nil {
		return err
	}

	if err := writeValidity(buf, values.Mask()); err != nil {
		return err
	}

	if err := encoding.WriteUVarInt64(buf, uint64(values.Len()-values.NullCount())); err != nil {
		return err
	}

	if err := types.EncodeValues(buf, values.PhysicalType(), enc, values.NonNullValues()); err != nil {
		return errors.WithFields(
			errors.Wrap(err, "failed to encode values"),
			errors.Fields{
				"type":     values.PhysicalType().String(),
				"encoding": enc.String(),
			})
	}

	return nil
}

// checkShape verifies that leaf has the physical type and levels of desc.
func checkShape(leaf *nested.Leaf, desc *schema.Leaf) error {
	if leaf == nil || leaf.Values == nil {
		return errors.WithFields(
			errors.WithStack(ErrShapeMismatch),
			errors.Fields{
				"column": desc.FlatName,
				"reason": "no values",
			})
	}

	if leaf.Values.PhysicalType() != desc.Physical {
		return errors.WithFields(
			errors.WithStack(ErrShapeMismatch),
			errors.Fields{
				"column":   desc.FlatName,
				"expected": desc.Physical.String(),
				"actual":   leaf.Values.PhysicalType().String(),
			})
	}

	if len(leaf.Levels) != len(desc.Levels) {
		return errors.WithFields(
			errors.WithStack(ErrShapeMismatch),
			errors.Fields{
				"column":   desc.FlatName,
				"expected": len(desc.Levels),
				"actual":   len(leaf.Levels),
			})
	}

	for i := range leaf.Levels {
		if leaf.Levels[i].Kind != desc.Levels[i].Kind {
			return errors.WithFields(
				errors.WithStack(ErrShapeMismatch),
				errors.Fields{
					"column":   desc.FlatName,
					"level":    i,
					"expected": desc.Levels[i].Kind.String(),
					"actual":   leaf.Levels[i].Kind.String(),
				})
		}
	}

	return nil
}
