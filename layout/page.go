// Package layout encodes and decodes single pages of a leaf column.
//
// A page is a thrift PageHeader followed by the compressed body. The body
// holds the nesting levels of the leaf (kind, length, validity and list
// offsets), then the leaf slots: validity, non-null count and the values in
// the header's encoding. The header carries the CRC-32 of the stored body.
package layout

import (
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/types"
)

const (
	// ErrChecksum reports a page body that does not match its header CRC.
	ErrChecksum = errors.Error("page checksum mismatch")
	// ErrShapeMismatch reports a page whose physical type or nesting does not
	// match the leaf it is read or written for.
	ErrShapeMismatch = errors.Error("page shape does not match leaf")

	errInvalidPage   = errors.Error("invalid page")
	errSizeMismatch  = errors.Error("page size mismatch")
	errPageTooLarge  = errors.Error("page too large")
	errTrailingBytes = errors.Error("trailing bytes in page")
)

// maxPageValues bounds every length stored in a page.
const maxPageValues = 1 << 28

// EncodingFunc picks the value encoding of a physical type.
type EncodingFunc func(types.Type) types.Encoding

// DefaultEncoding uses the most compact encoding of each type.
func DefaultEncoding(t types.Type) types.Encoding {
	return types.DefaultEncoding(t)
}

// PlainEncoding stores every type with the plain encoding.
func PlainEncoding(types.Type) types.Encoding {
	return types.Plain
}

// DictionaryEncoding stores every type but booleans as a page-local
// dictionary followed by RLE indices.
func DictionaryEncoding(t types.Type) types.Encoding {
	if t == types.Boolean {
		return types.RLE
	}

	return types.RLEDictionary
}

const (
	validityAbsent  byte = 0
	validityPresent byte = 1
)
