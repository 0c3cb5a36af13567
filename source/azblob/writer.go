package azblob

import (
	"context"
	"io"

	"github.com/Azure/azure-storage-blob-go/azblob"
	"github.com/hexbee-net/errors"
)

type WriterOptions struct {
	PipelineOptions

	// BufferSize is the size of each staged block (0 = default)
	BufferSize int
	// MaxBuffers limits the number of blocks uploaded concurrently (0 = default)
	MaxBuffers int
}

type Writer struct {
	blob

	writeDone  chan error
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	options    WriterOptions
}

// NewWriter creates an Azure Blob Writer streaming to a block blob.
func NewWriter(ctx context.Context, URL string, credential azblob.Credential, options WriterOptions) (*Writer, error) {
	w := &Writer{
		blob: blob{
			ctx:        ctx,
			credential: credential,
		},
		writeDone: make(chan error, 1),
		options:   options,
	}

	if err := w.blob.open(URL, options.PipelineOptions); err != nil {
		return nil, err
	}

	w.pipeReader, w.pipeWriter = io.Pipe()

	go func(blobURL azblob.BlockBlobURL, reader *io.PipeReader, done chan<- error) {
		defer close(done)

		_, err := azblob.UploadStreamToBlockBlob(w.ctx, reader, blobURL, azblob.UploadStreamToBlockBlobOptions{
			BufferSize: w.options.BufferSize,
			MaxBuffers: w.options.MaxBuffers,
		})
		if err != nil {
			_ = reader.CloseWithError(err)
		}

		done <- err
	}(*w.blockBlobURL, w.pipeReader, w.writeDone)

	return w, nil
}

func (w *Writer) Write(p []byte) (n int, err error) {
	bytesWritten, err := w.pipeWriter.Write(p)
	if err != nil {
		_ = w.pipeWriter.CloseWithError(err)
		return bytesWritten, errors.Wrap(err, "failed to write to upload stream")
	}

	return bytesWritten, nil
}

// Close ends the stream and waits for the upload to complete.
func (w *Writer) Close() error {
	if err := w.pipeWriter.Close(); err != nil {
		return errors.Wrap(err, "failed to close pipe writer")
	}

	if err := <-w.writeDone; err != nil {
		return errors.Wrap(err, "failed to upload blob")
	}

	return nil
}
