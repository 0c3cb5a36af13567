package hdfs

import (
	"github.com/colinmarc/hdfs/v2"
	"github.com/hexbee-net/errors"
)

type Reader struct {
	file

	reader *hdfs.FileReader
}

func NewReader(hosts []string, user string, name string) (*Reader, error) {
	client, err := newClient(hosts, user)
	if err != nil {
		return nil, err
	}

	reader := &Reader{
		file: file{
			FilePath: name,
			client:   client,
		},
	}

	if err := reader.open(); err != nil {
		_ = reader.file.Close()
		return nil, err
	}

	return reader, nil
}

func NewReaderWithClient(client *hdfs.Client, name string) (*Reader, error) {
	reader := &Reader{
		file: file{
			FilePath:       name,
			client:         client,
			externalClient: true,
		},
	}

	if err := reader.open(); err != nil {
		return nil, err
	}

	return reader, nil
}

func (r *Reader) open() (err error) {
	if r.reader, err = r.client.Open(r.FilePath); err != nil {
		return errors.WithFields(
			errors.Wrap(err, "failed to create HDFS reader"),
			errors.Fields{
				"path": r.FilePath,
			})
	}

	return nil
}

func (r *Reader) Read(p []byte) (n int, err error) {
	var cnt int

	ln := len(p)

	for n < ln {
		cnt, err = r.reader.Read(p[n:])
		n += cnt

		if err != nil {
			break
		}
	}

	return n, err
}

func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	return r.reader.Seek(offset, whence)
}

func (r *Reader) Close() (err error) {
	if r.reader != nil {
		err = r.reader.Close()
		r.reader = nil

		if err != nil {
			return errors.Wrap(err, "failed to close HDFS reader")
		}
	}

	return r.file.Close()
}
