package gcs

import (
	"context"
	"io"

	"cloud.google.com/go/storage"
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/source"
	"google.golang.org/api/option"
)

type Reader struct {
	file
	fileSize int64
	offset   int64
}

// NewReader creates a GCS Reader.
func NewReader(ctx context.Context, bucketName, name string, opts ...option.ClientOption) (*Reader, error) {
	client, err := newClient(ctx, opts)
	if err != nil {
		return nil, err
	}

	reader := &Reader{
		file: file{
			BucketName: bucketName,
			FilePath:   name,
			ctx:        ctx,
			Client:     client,
		},
	}

	if err := reader.open(ctx); err != nil {
		_ = reader.file.Close()
		return nil, err
	}

	return reader, nil
}

// NewReaderWithClient is the same as NewReader but allows passing your own GCS client.
func NewReaderWithClient(ctx context.Context, client *storage.Client, bucketName, name string) (*Reader, error) {
	reader := &Reader{
		file: file{
			BucketName:     bucketName,
			FilePath:       name,
			ctx:            ctx,
			externalClient: true,
			Client:         client,
		},
	}

	if err := reader.open(ctx); err != nil {
		return nil, err
	}

	return reader, nil
}

func (r *Reader) Read(p []byte) (cnt int, err error) {
	if r.offset >= r.fileSize {
		return 0, io.EOF
	}

	numBytes := len(p)
	if rem := r.fileSize - r.offset; int64(numBytes) > rem {
		numBytes = int(rem)
	}

	reader, err := r.Object.NewRangeReader(r.ctx, r.offset, int64(numBytes))
	if err != nil {
		return 0, errors.WithFields(
			errors.Wrap(err, "failed to open range reader"),
			errors.Fields{
				"offset": r.offset,
				"length": numBytes,
			})
	}

	defer func() { _ = reader.Close() }()

	cnt, err = io.ReadFull(reader, p[:numBytes])
	r.offset += int64(cnt)

	if err != nil {
		return cnt, errors.Wrap(err, "failed to read file data")
	}

	return cnt, nil
}

func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	abs, err := source.ResolveOffset(offset, whence, r.offset, r.fileSize)
	if err != nil {
		return 0, err
	}

	r.offset = abs

	return r.offset, nil
}

func (r *Reader) open(ctx context.Context) error {
	r.file.open()

	objAttrs, err := r.Object.Attrs(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get object attributes")
	}

	r.fileSize = objAttrs.Size

	return nil
}
