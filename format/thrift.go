// Package format holds the thrift structures persisted in a strata file: page
// headers and the file footer. They are encoded with the thrift compact protocol.
package format

import (
	"io"

	"github.com/apache/thrift/lib/go/thrift"
	"github.com/hexbee-net/errors"
)

const (
	errRequiredField = errors.Error("required field is missing")
	errInvalidList   = errors.Error("invalid list")
)

// maxListSize bounds the element count of a decoded list.
const maxListSize = 1 << 24

type thriftReader interface {
	Read(thrift.TProtocol) error
}

type thriftWriter interface {
	Write(thrift.TProtocol) error
}

// ReadThrift decodes tr from r.
func ReadThrift(tr thriftReader, r io.Reader) error {
	// Make sure we are not using any kind of buffered reader here.
	// bufio.Reader "can" reads more data ahead of time, which is a problem on this library
	transport := &thrift.StreamTransport{Reader: r}
	proto := thrift.NewTCompactProtocol(transport)

	return tr.Read(proto)
}

// WriteThrift encodes tw to w.
func WriteThrift(tw thriftWriter, w io.Writer) error {
	transport := &thrift.StreamTransport{Writer: w}
	proto := thrift.NewTCompactProtocol(transport)

	return tw.Write(proto)
}

// Writing /////////////////////////////

func writeFieldBegin(oprot thrift.TProtocol, name string, typ thrift.TType, id int16) error {
	if err := oprot.WriteFieldBegin(name, typ, id); err != nil {
		return errors.WithFields(
			errors.Wrap(err, "failed to write field begin"),
			errors.Fields{
				"field": name,
			})
	}

	return nil
}

func writeFieldEnd(oprot thrift.TProtocol, name string) error {
	if err := oprot.WriteFieldEnd(); err != nil {
		return errors.WithFields(
			errors.Wrap(err, "failed to write field end"),
			errors.Fields{
				"field": name,
			})
	}

	return nil
}

func writeI32Field(oprot thrift.TProtocol, name string, id int16, v int32) error {
	if err := writeFieldBegin(oprot, name, thrift.I32, id); err != nil {
		return err
	}

	if err := oprot.WriteI32(v); err != nil {
		return errors.Wrapf(err, "failed to write field %s", name)
	}

	return writeFieldEnd(oprot, name)
}

func writeI64Field(oprot thrift.TProtocol, name string, id int16, v int64) error {
	if err := writeFieldBegin(oprot, name, thrift.I64, id); err != nil {
		return err
	}

	if err := oprot.WriteI64(v); err != nil {
		return errors.Wrapf(err, "failed to write field %s", name)
	}

	return writeFieldEnd(oprot, name)
}

func writeStringField(oprot thrift.TProtocol, name string, id int16, v string) error {
	if err := writeFieldBegin(oprot, name, thrift.STRING, id); err != nil {
		return err
	}

	if err := oprot.WriteString(v); err != nil {
		return errors.Wrapf(err, "failed to write field %s", name)
	}

	return writeFieldEnd(oprot, name)
}

func writeBinaryField(oprot thrift.TProtocol, name string, id int16, v []byte) error {
	if err := writeFieldBegin(oprot, name, thrift.STRING, id); err != nil {
		return err
	}

	if err := oprot.WriteBinary(v); err != nil {
		return errors.Wrapf(err, "failed to write field %s", name)
	}

	return writeFieldEnd(oprot, name)
}

func writeStructListField(oprot thrift.TProtocol, name string, id int16, n int, elem func(i int) thriftWriter) error {
	if err := writeFieldBegin(oprot, name, thrift.LIST, id); err != nil {
		return err
	}

	if err := oprot.WriteListBegin(thrift.STRUCT, n); err != nil {
		return errors.Wrapf(err, "failed to write list begin of %s", name)
	}

	for i := 0; i < n; i++ {
		if err := elem(i).Write(oprot); err != nil {
			return errors.WithFields(
				errors.Wrapf(err, "failed to write element of %s", name),
				errors.Fields{
					"index": i,
				})
		}
	}

	if err := oprot.WriteListEnd(); err != nil {
		return errors.Wrapf(err, "failed to write list end of %s", name)
	}

	return writeFieldEnd(oprot, name)
}

func writeStringListField(oprot thrift.TProtocol, name string, id int16, values []string) error {
	if err := writeFieldBegin(oprot, name, thrift.LIST, id); err != nil {
		return err
	}

	if err := oprot.WriteListBegin(thrift.STRING, len(values)); err != nil {
		return errors.Wrapf(err, "failed to write list begin of %s", name)
	}

	for _, v := range values {
		if err := oprot.WriteString(v); err != nil {
			return errors.Wrapf(err, "failed to write element of %s", name)
		}
	}

	if err := oprot.WriteListEnd(); err != nil {
		return errors.Wrapf(err, "failed to write list end of %s", name)
	}

	return writeFieldEnd(oprot, name)
}

func writeStructBegin(oprot thrift.TProtocol, name string) error {
	if err := oprot.WriteStructBegin(name); err != nil {
		return errors.Wrapf(err, "failed to write %s struct begin", name)
	}

	return nil
}

func writeStructEnd(oprot thrift.TProtocol, name string) error {
	if err := oprot.WriteFieldStop(); err != nil {
		return errors.Wrapf(err, "failed to write %s field stop", name)
	}

	if err := oprot.WriteStructEnd(); err != nil {
		return errors.Wrapf(err, "failed to write %s struct end", name)
	}

	return nil
}

// Reading /////////////////////////////

// readStruct walks the fields of a struct, handing each one to field. field
// returns false for fields it does not know, which are then skipped.
func readStruct(iprot thrift.TProtocol, name string, field func(id int16, typ thrift.TType) (bool, error)) error {
	if _, err := iprot.ReadStructBegin(); err != nil {
		return errors.Wrapf(err, "failed to read %s struct begin", name)
	}

	for {
		_, typ, id, err := iprot.ReadFieldBegin()
		if err != nil {
			return errors.Wrapf(err, "failed to read %s field begin", name)
		}

		if typ == thrift.STOP {
			break
		}

		known, err := field(id, typ)
		if err != nil {
			return errors.WithFields(
				errors.Wrapf(err, "failed to read %s field", name),
				errors.Fields{
					"id": id,
				})
		}

		if !known {
			if err := iprot.Skip(typ); err != nil {
				return errors.Wrapf(err, "failed to skip %s field", name)
			}
		}

		if err := iprot.ReadFieldEnd(); err != nil {
			return errors.Wrapf(err, "failed to read %s field end", name)
		}
	}

	if err := iprot.ReadStructEnd(); err != nil {
		return errors.Wrapf(err, "failed to read %s struct end", name)
	}

	return nil
}

func readListBegin(iprot thrift.TProtocol, expected thrift.TType) (int, error) {
	typ, size, err := iprot.ReadListBegin()
	if err != nil {
		return 0, err
	}

	if typ != expected || size < 0 || size > maxListSize {
		return 0, errors.WithFields(
			errors.WithStack(errInvalidList),
			errors.Fields{
				"type": typ,
				"size": size,
			})
	}

	return size, nil
}

func readStructList(iprot thrift.TProtocol, elem func() thriftReader) error {
	size, err := readListBegin(iprot, thrift.STRUCT)
	if err != nil {
		return err
	}

	for i := 0; i < size; i++ {
		if err := elem().Read(iprot); err != nil {
			return errors.WithFields(
				errors.Wrap(err, "failed to read list element"),
				errors.Fields{
					"index": i,
				})
		}
	}

	return iprot.ReadListEnd()
}

func readStringList(iprot thrift.TProtocol) ([]string, error) {
	size, err := readListBegin(iprot, thrift.STRING)
	if err != nil {
		return nil, err
	}

	res := make([]string, size)
	for i := range res {
		if res[i], err = iprot.ReadString(); err != nil {
			return nil, err
		}
	}

	return res, iprot.ReadListEnd()
}

// isset tracks which required fields were seen while decoding.
type isset uint32

func (s *isset) set(id int16) {
	*s |= 1 << uint(id)
}

func (s isset) check(name string, ids ...int16) error {
	for _, id := range ids {
		if s&(1<<uint(id)) == 0 {
			return errors.WithFields(
				errors.WithStack(errRequiredField),
				errors.Fields{
					"struct": name,
					"id":     id,
				})
		}
	}

	return nil
}
