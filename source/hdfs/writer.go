package hdfs

import (
	"github.com/colinmarc/hdfs/v2"
	"github.com/hexbee-net/errors"
)

type Writer struct {
	file

	writer *hdfs.FileWriter
}

func NewWriter(hosts []string, user string, name string) (*Writer, error) {
	client, err := newClient(hosts, user)
	if err != nil {
		return nil, err
	}

	writer := &Writer{
		file: file{
			FilePath: name,
			client:   client,
		},
	}

	if err := writer.create(); err != nil {
		_ = writer.file.Close()
		return nil, err
	}

	return writer, nil
}

func NewWriterWithClient(client *hdfs.Client, name string) (*Writer, error) {
	writer := &Writer{
		file: file{
			FilePath:       name,
			client:         client,
			externalClient: true,
		},
	}

	if err := writer.create(); err != nil {
		return nil, err
	}

	return writer, nil
}

func (w *Writer) create() (err error) {
	if w.writer, err = w.client.Create(w.FilePath); err != nil {
		return errors.WithFields(
			errors.Wrap(err, "failed to create HDFS writer"),
			errors.Fields{
				"path": w.FilePath,
			})
	}

	return nil
}

func (w *Writer) Write(p []byte) (n int, err error) {
	return w.writer.Write(p)
}

func (w *Writer) Close() (err error) {
	if w.writer != nil {
		err = w.writer.Close()
		w.writer = nil

		if err != nil {
			return errors.Wrap(err, "failed to close HDFS writer")
		}
	}

	return w.file.Close()
}
