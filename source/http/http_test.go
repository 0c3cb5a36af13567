package http

import (
	"bytes"
	"context"
	"io"
	"io/ioutil"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadedFile(t *testing.T, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	fw, err := mw.CreateFormFile("file", "data.strata")
	require.NoError(t, err)

	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(body, mw.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)

	return form.File["file"][0]
}

func TestReader(t *testing.T) {
	t.Parallel()

	o := NewOpener(uploadedFile(t, []byte("0123456789")))

	r, err := o.Open(context.Background())
	require.NoError(t, err)

	defer func() { _ = r.Close() }()

	_, err = r.Seek(3, io.SeekStart)
	require.NoError(t, err)

	got, err := ioutil.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "3456789", string(got))
}
