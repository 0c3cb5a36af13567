package gcs

import (
	"context"

	"cloud.google.com/go/storage"
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/source"
	"google.golang.org/api/option"
)

const (
	errInstantiate = errors.Error("failed to instantiate GCS client")
)

type file struct {
	BucketName string
	FilePath   string

	ctx            context.Context
	externalClient bool
	Client         *storage.Client
	Object         *storage.ObjectHandle
}

func newClient(ctx context.Context, opts []option.ClientOption) (*storage.Client, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, errors.WithFields(
			errors.WithStack(errInstantiate),
			errors.Fields{
				"error": err.Error(),
			})
	}

	return client, nil
}

func (f *file) open() {
	f.Object = f.Client.Bucket(f.BucketName).Object(f.FilePath)
}

func (f *file) Close() error {
	if f.Client != nil && !f.externalClient {
		err := f.Client.Close()
		f.Client = nil

		if err != nil {
			return errors.Wrap(err, "failed to close GCS client")
		}
	}

	return nil
}

// Opener opens independent range readers on one object through a shared client.
type Opener struct {
	Client     *storage.Client
	BucketName string
	FilePath   string
}

func NewOpener(client *storage.Client, bucketName, name string) *Opener {
	return &Opener{
		Client:     client,
		BucketName: bucketName,
		FilePath:   name,
	}
}

func (o *Opener) Open(ctx context.Context) (source.Reader, error) {
	return NewReaderWithClient(ctx, o.Client, o.BucketName, o.FilePath)
}
