package azblob

import (
	"context"
	"io"

	"github.com/Azure/azure-storage-blob-go/azblob"
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/source"
)

type ReaderOptions struct {
	PipelineOptions

	// MaxRetryRequests bounds the retries of an interrupted range download.
	MaxRetryRequests int
}

type Reader struct {
	blob

	fileSize int64
	offset   int64
	options  ReaderOptions
}

// NewReader creates an Azure Blob Reader.
func NewReader(ctx context.Context, URL string, credential azblob.Credential, options ReaderOptions) (*Reader, error) {
	r := &Reader{
		blob: blob{
			ctx:        ctx,
			credential: credential,
		},
		options: options,
	}

	if err := r.blob.open(URL, options.PipelineOptions); err != nil {
		return nil, err
	}

	props, err := r.blockBlobURL.GetProperties(r.ctx, azblob.BlobAccessConditions{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get blob properties")
	}

	r.fileSize = props.ContentLength()

	return r, nil
}

func (r *Reader) Read(p []byte) (n int, err error) {
	if r.blockBlobURL == nil {
		return 0, errors.WithStack(errURLNotOpened)
	}

	if r.offset >= r.fileSize {
		return 0, io.EOF
	}

	count := int64(len(p))
	if rem := r.fileSize - r.offset; count > rem {
		count = rem
	}

	resp, err := r.blockBlobURL.Download(r.ctx, r.offset, count, azblob.BlobAccessConditions{}, false)
	if err != nil {
		return 0, errors.WithFields(
			errors.Wrap(err, "failed to download blob range"),
			errors.Fields{
				"offset": r.offset,
				"count":  count,
			})
	}

	body := resp.Body(azblob.RetryReaderOptions{MaxRetryRequests: r.options.MaxRetryRequests})
	defer func() { _ = body.Close() }()

	bytesRead, err := io.ReadFull(body, p[:count])
	r.offset += int64(bytesRead)

	if err != nil {
		return bytesRead, errors.Wrap(err, "failed to read data")
	}

	return bytesRead, nil
}

func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	abs, err := source.ResolveOffset(offset, whence, r.offset, r.fileSize)
	if err != nil {
		return 0, err
	}

	r.offset = abs

	return r.offset, nil
}

func (r *Reader) Close() error {
	return nil
}
