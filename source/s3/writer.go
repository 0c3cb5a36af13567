package s3

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/hexbee-net/errors"
)

// Writer streams into a multipart upload.
type Writer struct {
	file

	writeDone  chan error
	pipeReader *io.PipeReader
	pipeWriter *io.PipeWriter
	uploader   *s3manager.Uploader
}

// NewWriter creates an S3 Writer.
func NewWriter(ctx context.Context, bucket, key string, uploaderOptions []func(*s3manager.Uploader), configProvider client.ConfigProvider, configs ...*aws.Config) (*Writer, error) {
	return NewWriterWithClient(ctx, s3.New(configProvider, configs...), bucket, key, uploaderOptions)
}

// NewWriterWithClient is the same as NewWriter but allows passing your own S3 client.
func NewWriterWithClient(ctx context.Context, s3Client s3iface.S3API, bucket, key string, uploaderOptions []func(*s3manager.Uploader)) (*Writer, error) {
	writer := Writer{
		file: file{
			ctx:        ctx,
			client:     s3Client,
			BucketName: bucket,
			Key:        key,
		},

		writeDone: make(chan error, 1),
	}

	writer.pipeReader, writer.pipeWriter = io.Pipe()
	writer.uploader = s3manager.NewUploaderWithClient(writer.client, uploaderOptions...)

	uploadParams := &s3manager.UploadInput{
		Bucket: aws.String(writer.BucketName),
		Key:    aws.String(writer.Key),
		Body:   writer.pipeReader,
	}

	go func(uploader *s3manager.Uploader, params *s3manager.UploadInput, done chan<- error) {
		defer close(done)

		_, err := uploader.UploadWithContext(writer.ctx, params)
		if err != nil {
			_ = writer.pipeReader.CloseWithError(err)
		}

		done <- err
	}(writer.uploader, uploadParams, writer.writeDone)

	return &writer, nil
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
		return errors.Wrap(err, "failed to close upload stream")
	}

	if err := <-w.writeDone; err != nil {
		return errors.WithFields(
			errors.Wrap(err, "failed to upload object"),
			errors.Fields{
				"bucket": w.BucketName,
				"key":    w.Key,
			})
	}

	return nil
}
