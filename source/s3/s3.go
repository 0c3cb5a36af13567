package s3

import (
	"context"

	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/hexbee-net/strata/source"
)

type file struct {
	ctx    context.Context
	client s3iface.S3API

	BucketName string
	Key        string
}

// Opener opens independent ranged readers on one object.
type Opener struct {
	Client     s3iface.S3API
	BucketName string
	Key        string
}

func NewOpener(client s3iface.S3API, bucket, key string) *Opener {
	return &Opener{
		Client:     client,
		BucketName: bucket,
		Key:        key,
	}
}

func (o *Opener) Open(ctx context.Context) (source.Reader, error) {
	return NewReaderWithClient(ctx, o.Client, o.BucketName, o.Key)
}
