package http

import (
	"context"
	"mime/multipart"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/source"
)

// Reader reads an uploaded multipart file.
type Reader struct {
	fileHeader *multipart.FileHeader
	file       multipart.File
}

func NewReader(header *multipart.FileHeader) (r *Reader, err error) {
	r = &Reader{
		fileHeader: header,
	}

	if r.file, err = r.fileHeader.Open(); err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, "failed to open HTTP stream"),
			errors.Fields{
				"filename": header.Filename,
			})
	}

	return r, nil
}

// Opener opens independent readers on one uploaded file.
type Opener struct {
	Header *multipart.FileHeader
}

func NewOpener(header *multipart.FileHeader) *Opener {
	return &Opener{Header: header}
}

func (o *Opener) Open(_ context.Context) (source.Reader, error) {
	return NewReader(o.Header)
}

func (r *Reader) Read(p []byte) (n int, err error) {
	return r.file.Read(p)
}

func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	return r.file.Seek(offset, whence)
}

func (r *Reader) Close() error {
	return r.file.Close()
}
