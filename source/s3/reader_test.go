package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	s3iface.S3API

	objects map[string][]byte
	gets    int
}

func (f *fakeS3) HeadObjectWithContext(_ aws.Context, in *s3.HeadObjectInput, _ ...request.Option) (*s3.HeadObjectOutput, error) {
	data, ok := f.objects[*in.Key]
	if !ok {
		return nil, awserr.New(s3.ErrCodeNoSuchKey, "no such key", nil)
	}

	return &s3.HeadObjectOutput{ContentLength: aws.Int64(int64(len(data)))}, nil
}

func (f *fakeS3) GetObjectWithContext(_ aws.Context, in *s3.GetObjectInput, _ ...request.Option) (*s3.GetObjectOutput, error) {
	f.gets++

	data := f.objects[*in.Key]

	var begin, end int
	if _, err := fmt.Sscanf(*in.Range, "bytes=%d-%d", &begin, &end); err != nil {
		return nil, err
	}

	return &s3.GetObjectOutput{
		Body: ioutil.NopCloser(bytes.NewReader(data[begin : end+1])),
	}, nil
}

func TestReader(t *testing.T) {
	t.Parallel()

	client := &fakeS3{objects: map[string][]byte{"obj": []byte("0123456789")}}

	r, err := NewOpener(client, "bucket", "obj").Open(context.Background())
	require.NoError(t, err)

	buf := make([]byte, 4)

	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "0123", string(buf[:n]))

	pos, err := r.Seek(-3, io.SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(7), pos)

	n, err = r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "789", string(buf[:n]))

	_, err = r.Read(buf)
	assert.Equal(t, io.EOF, err)

	_, err = r.Seek(11, io.SeekStart)
	assert.EqualError(t, errors.Cause(err), source.ErrInvalidOffset.Error())

	_, err = r.Seek(0, 42)
	assert.EqualError(t, errors.Cause(err), source.ErrWhence.Error())

	assert.Equal(t, 2, client.gets)
	assert.NoError(t, r.Close())
}

func TestReader_MissingObject(t *testing.T) {
	t.Parallel()

	client := &fakeS3{objects: map[string][]byte{}}

	_, err := NewReaderWithClient(context.Background(), client, "bucket", "missing")
	assert.Error(t, err)
}
