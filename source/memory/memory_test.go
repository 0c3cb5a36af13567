package memory

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpener_IndependentHandles(t *testing.T) {
	t.Parallel()

	w := NewWriter(nil)
	_, err := w.Write([]byte("hello world"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	o := w.Opener()

	r1, err := o.Open(context.Background())
	require.NoError(t, err)

	r2, err := o.Open(context.Background())
	require.NoError(t, err)

	_, err = r1.Seek(6, io.SeekStart)
	require.NoError(t, err)

	buf := make([]byte, 5)

	_, err = io.ReadFull(r1, buf)
	require.NoError(t, err)
	assert.Equal(t, "world", string(buf))

	_, err = io.ReadFull(r2, buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf))

	assert.NoError(t, r1.Close())
	assert.NoError(t, r2.Close())
}
