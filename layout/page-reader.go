package layout

import (
	"bytes"
	"hash/crc32"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/array"
	"github.com/hexbee-net/strata/compression"
	"github.com/hexbee-net/strata/encoding"
	"github.com/hexbee-net/strata/format"
	"github.com/hexbee-net/strata/nested"
	"github.com/hexbee-net/strata/schema"
	"github.com/hexbee-net/strata/types"
)

// PageReader decodes pages written by PageWriter. It keeps a decompression
// scratch buffer between calls and must not be shared between goroutines.
// Decoded leaves never alias the page bytes nor the scratch buffer.
type PageReader struct {
	block  blockReader
	reader bytes.Reader
}

// NewPageReader creates a page reader. A nil compressors map uses
// compression.DefaultCompressors.
func NewPageReader(compressors compression.Compressors) *PageReader {
	if compressors == nil {
		compressors = compression.DefaultCompressors()
	}

	return &PageReader{
		block: blockReader{compressors: compressors},
	}
}

// ReadPage decodes data, exactly one page, as a slice of the column desc.
func (p *PageReader) ReadPage(data []byte, desc *schema.Leaf) (*nested.Leaf, error) {
	header, body, err := p.readHeader(data)
	if err != nil {
		return nil, err
	}

	if header.Type != int32(desc.Physical) {
		return nil, errors.WithFields(
			errors.WithStack(ErrShapeMismatch),
			errors.Fields{
				"column":   desc.FlatName,
				"expected": desc.Physical.String(),
				"actual":   types.Type(header.Type).String(),
			})
	}

	if crc := crc32.ChecksumIEEE(body); crc != uint32(header.CRC) {
		return nil, errors.WithFields(
			errors.WithStack(ErrChecksum),
			errors.Fields{
				"expected": uint32(header.CRC),
				"actual":   crc,
			})
	}

	payload, err := p.block.readBlockData(body, compression.Codec(header.Codec), header.UncompressedSize)
	if err != nil {
		return nil, err
	}

	p.reader.Reset(payload)

	leaf, err := p.decodeBody(&p.reader, header, desc)
	if err != nil {
		return nil, err
	}

	if p.reader.Len() != 0 {
		return nil, errors.WithFields(
			errors.WithStack(errTrailingBytes),
			errors.Fields{
				"remaining": p.reader.Len(),
			})
	}

	return leaf, nil
}

// readHeader decodes the page header and returns the page body.
func (p *PageReader) readHeader(data []byte) (*format.PageHeader, []byte, error) {
	p.reader.Reset(data)

	header := &format.PageHeader{}
	if err := format.ReadThrift(header, &p.reader); err != nil {
		return nil, nil, errors.WithFields(
			errors.Wrap(err, "failed to read page header"),
			errors.Fields{
				"size": len(data),
			})
	}

	body := data[len(data)-p.reader.Len():]

	if header.CompressedSize < 0 || int(header.CompressedSize) != len(body) {
		return nil, nil, errors.WithFields(
			errors.WithStack(errSizeMismatch),
			errors.Fields{
				"expected": header.CompressedSize,
				"actual":   len(body),
			})
	}

	if header.NumRows < 0 || header.NumSlots < 0 || header.NullCount < 0 ||
		header.NumRows > maxPageValues || header.NumSlots > maxPageValues || header.NullCount > header.NumSlots {
		return nil, nil, errors.WithFields(
			errors.WithStack(errInvalidPage),
			errors.Fields{
				"num-rows":   header.NumRows,
				"num-slots":  header.NumSlots,
				"null-count": header.NullCount,
			})
	}

	return header, body, nil
}

func (p *PageReader) decodeBody(r *bytes.Reader, header *format.PageHeader, desc *schema.Leaf) (*nested.Leaf, error) {
	depth, err := encoding.ReadUVarInt32(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read level count")
	}

	if int(depth) != len(desc.Levels) {
		return nil, errors.WithFields(
			errors.WithStack(ErrShapeMismatch),
			errors.Fields{
				"column":   desc.FlatName,
				"expected": len(desc.Levels),
				"actual":   depth,
			})
	}

	leaf := &nested.Leaf{Levels: make([]nested.Level, depth)}

	// length expected for the next level, then for the slots
	expected := int(header.NumRows)

	for i := range leaf.Levels {
		lvl, err := readLevel(r, desc, i, expected)
		if err != nil {
			return nil, err
		}

		leaf.Levels[i] = lvl
		_, expected = lvl.ChildRange(0, lvl.Length)
	}

	slots, err := readLength(r, expected)
	if err != nil {
		return nil, errors.Wrap(err, "invalid slot count")
	}

	if slots != int(header.NumSlots) {
		return nil, errors.WithFields(
			errors.WithStack(errInvalidPage),
			errors.Fields{
				"slots":    slots,
				"expected": header.NumSlots,
			})
	}

	validity, err := readValidity(r, slots)
	if err != nil {
		return nil, err
	}

	if validity != nil && !desc.Nullable {
		return nil, errors.WithFields(
			errors.WithStack(ErrShapeMismatch),
			errors.Fields{
				"column": desc.FlatName,
				"reason": "nulls in required column",
			})
	}

	nonNull, err := readLength(r, slots-nullCount(validity))
	if err != nil {
		return nil, errors.Wrap(err, "invalid non-null count")
	}

	if slots-nonNull != int(header.NullCount) {
		return nil, errors.WithFields(
			errors.WithStack(errInvalidPage),
			errors.Fields{
				"null-count": slots - nonNull,
				"expected":   header.NullCount,
			})
	}

	values, err := types.DecodeValues(r, desc.Physical, types.Encoding(header.Encoding), nonNull)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, "failed to decode values"),
			errors.Fields{
				"type":     desc.Physical.String(),
				"encoding": types.Encoding(header.Encoding).String(),
				"count":    nonNull,
			})
	}

	if leaf.Values, err = array.FromValues(desc.Physical, values, validity); err != nil {
		return nil, err
	}

	return leaf, nil
}

func readLevel(r *bytes.Reader, desc *schema.Leaf, i, expected int) (nested.Level, error) {
	kind, err := r.ReadByte()
	if err != nil {
		return nested.Level{}, errors.Wrap(err, "failed to read level kind")
	}

	if schema.LevelKind(kind) != desc.Levels[i].Kind {
		return nested.Level{}, errors.WithFields(
			errors.WithStack(ErrShapeMismatch),
			errors.Fields{
				"column":   desc.FlatName,
				"level":    i,
				"expected": desc.Levels[i].Kind.String(),
				"actual":   schema.LevelKind(kind).String(),
			})
	}

	length, err := readLength(r, expected)
	if err != nil {
		return nested.Level{}, errors.WithFields(
			errors.Wrap(err, "invalid level length"),
			errors.Fields{
				"level": i,
			})
	}

	lvl := nested.Level{Kind: schema.LevelKind(kind), Length: length}

	if lvl.Validity, err = readValidity(r, length); err != nil {
		return nested.Level{}, err
	}

	if lvl.Validity != nil && !desc.Levels[i].Nullable {
		return nested.Level{}, errors.WithFields(
			errors.WithStack(ErrShapeMismatch),
			errors.Fields{
				"column": desc.FlatName,
				"level":  i,
				"reason": "nulls in required level",
			})
	}

	if lvl.Kind == schema.LevelList {
		if lvl.Offsets, err = readOffsets(r, length); err != nil {
			return nested.Level{}, err
		}

		if last := lvl.Offsets[length]; last > maxPageValues {
			return nested.Level{}, errors.WithFields(
				errors.WithStack(errPageTooLarge),
				errors.Fields{
					"level":  i,
					"offset": last,
				})
		}
	}

	return lvl, nil
}
