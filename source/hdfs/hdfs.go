package hdfs

import (
	"context"

	"github.com/colinmarc/hdfs/v2"
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/source"
)

type file struct {
	FilePath string

	client         *hdfs.Client
	externalClient bool
}

func newClient(hosts []string, user string) (*hdfs.Client, error) {
	client, err := hdfs.NewClient(hdfs.ClientOptions{
		Addresses: hosts,
		User:      user,
	})
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, "failed to create HDFS client"),
			errors.Fields{
				"hosts": hosts,
				"user":  user,
			})
	}

	return client, nil
}

func (f *file) Close() error {
	if f.client != nil && !f.externalClient {
		err := f.client.Close()
		f.client = nil

		if err != nil {
			return errors.Wrap(err, "failed to close HDFS client")
		}
	}

	return nil
}

// Opener opens independent readers on one file through a shared client.
type Opener struct {
	Client   *hdfs.Client
	FilePath string
}

func NewOpener(client *hdfs.Client, name string) *Opener {
	return &Opener{
		Client:   client,
		FilePath: name,
	}
}

func (o *Opener) Open(_ context.Context) (source.Reader, error) {
	return NewReaderWithClient(o.Client, o.FilePath)
}
