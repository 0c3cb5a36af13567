package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/source"
)

const rangeHeader = "bytes=%d-%d"

// Reader reads an S3 object with one ranged GET per Read call.
type Reader struct {
	file

	fileSize int64
	offset   int64
}

// NewReader creates an S3 Reader.
func NewReader(ctx context.Context, bucket, key string, configProvider client.ConfigProvider, configs ...*aws.Config) (*Reader, error) {
	return NewReaderWithClient(ctx, s3.New(configProvider, configs...), bucket, key)
}

// NewReaderWithClient is the same as NewReader but allows passing your own S3 client.
func NewReaderWithClient(ctx context.Context, s3Client s3iface.S3API, bucket, key string) (*Reader, error) {
	reader := Reader{
		file: file{
			ctx:        ctx,
			client:     s3Client,
			BucketName: bucket,
			Key:        key,
		},
	}

	input := &s3.HeadObjectInput{
		Bucket: aws.String(reader.BucketName),
		Key:    aws.String(reader.Key),
	}

	headObject, err := reader.client.HeadObjectWithContext(reader.ctx, input)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch file description")
	}

	if headObject.ContentLength != nil {
		reader.fileSize = *headObject.ContentLength
	}

	return &reader, nil
}

func (r *Reader) Read(p []byte) (int, error) {
	if r.offset >= r.fileSize {
		return 0, io.EOF
	}

	if len(p) == 0 {
		return 0, nil
	}

	end := r.offset + int64(len(p)) - 1
	if end >= r.fileSize {
		end = r.fileSize - 1
	}

	out, err := r.client.GetObjectWithContext(r.ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.BucketName),
		Key:    aws.String(r.Key),
		Range:  aws.String(fmt.Sprintf(rangeHeader, r.offset, end)),
	})
	if err != nil {
		return 0, errors.WithFields(
			errors.Wrap(err, "failed to get object range"),
			errors.Fields{
				"bucket": r.BucketName,
				"key":    r.Key,
				"offset": r.offset,
			})
	}

	defer func() { _ = out.Body.Close() }()

	n, err := io.ReadFull(out.Body, p[:end-r.offset+1])
	r.offset += int64(n)

	if err != nil {
		return n, errors.Wrap(err, "failed to read object range")
	}

	return n, nil
}

// Seek tracks the offset for the next Read.
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
