package strata

import (
	"github.com/hexbee-net/errors"
)

const (
	// ErrConfig reports invalid writer or reader options.
	ErrConfig = errors.Error("invalid configuration")
	// ErrEncode reports a page that could not be encoded or written.
	ErrEncode = errors.Error("failed to encode page")
	// ErrDecode reports truncated or corrupt data.
	ErrDecode = errors.Error("failed to decode data")
	// ErrSchemaMismatch reports data that does not match the schema.
	ErrSchemaMismatch = errors.Error("data does not match schema")
	// ErrExhausted is returned by ColumnReader.NextArray when no page remains.
	ErrExhausted = errors.Error("column reader exhausted")
	// ErrMisaligned reports column readers that disagree on page windows.
	ErrMisaligned = errors.Error("column pages are not aligned")
	// ErrClosed reports an operation on a closed writer.
	ErrClosed = errors.Error("writer is closed")
)

const (
	errOutOfRange = errors.Error("index out of range")
)

// decodeError tags err as ErrDecode and keeps its message.
func decodeError(err error, fields errors.Fields) error {
	if fields == nil {
		fields = errors.Fields{}
	}

	fields["error"] = err.Error()

	return errors.WithFields(errors.WithStack(ErrDecode), fields)
}
