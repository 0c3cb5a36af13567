package strata

import (
	"flag"
	"testing"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/compression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		expected WriteOptions
		pageSize int
		bufSize  int
	}{
		{
			name:     "defaults",
			yaml:     "",
			expected: WriteOptions{Compression: compression.Snappy, Encoding: EncodingAuto},
			bufSize:  defaultReadBufferSize,
		},
		{
			name: "overrides",
			yaml: `
compression: zstd
max_page_size: 4096
encoding: plain
read_buffer_size: 1024
created_by: ingest
`,
			expected: WriteOptions{Compression: compression.ZStd, Encoding: EncodingPlain},
			pageSize: 4096,
			bufSize:  1024,
		},
		{
			name:     "uncompressed alias",
			yaml:     "compression: uncompressed",
			expected: WriteOptions{Compression: compression.Uncompressed, Encoding: EncodingAuto},
			bufSize:  defaultReadBufferSize,
		},
		{
			name:     "dictionary encoding",
			yaml:     "encoding: dictionary",
			expected: WriteOptions{Compression: compression.Snappy, Encoding: EncodingDictionary},
			bufSize:  defaultReadBufferSize,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := LoadConfig([]byte(tt.yaml))
			require.NoError(t, err)

			opts, err := cfg.WriteOptions()
			require.NoError(t, err)

			assert.Equal(t, tt.expected.Compression, opts.Compression)
			assert.Equal(t, tt.expected.Encoding, opts.Encoding)

			if tt.pageSize == 0 {
				assert.Nil(t, opts.MaxPageSize)
			} else {
				require.NotNil(t, opts.MaxPageSize)
				assert.Equal(t, tt.pageSize, *opts.MaxPageSize)
			}

			assert.Equal(t, tt.bufSize, cfg.ReadBufferSize)
			assert.Len(t, cfg.ReaderOptions(), 1)

			writerOpts, err := cfg.WriterOptions()
			require.NoError(t, err)

			fw := &FileWriter{kvStore: map[string]string{}}
			for _, opt := range writerOpts {
				opt(fw)
			}

			assert.Equal(t, cfg.CreatedBy, fw.createdBy)
			assert.Equal(t, opts, fw.opts)
		})
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "unknown key", yaml: "page_size: 4"},
		{name: "unknown codec", yaml: "compression: lzo"},
		{name: "unknown encoding", yaml: "encoding: bitshuffle"},
		{name: "negative page size", yaml: "max_page_size: -1"},
		{name: "negative buffer", yaml: "read_buffer_size: -8"},
		{name: "malformed", yaml: "compression: [snappy"},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadConfig([]byte(tt.yaml))
			assert.EqualError(t, errors.Cause(err), ErrConfig.Error())
		})
	}
}

func TestConfig_RegisterFlags(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlagsAndApplyDefaults("storage.strata", fs)

	require.NoError(t, fs.Parse([]string{
		"-storage.strata.compression=gzip",
		"-storage.strata.max-page-size=12",
	}))

	require.NoError(t, cfg.Validate())

	opts, err := cfg.WriteOptions()
	require.NoError(t, err)
	assert.Equal(t, compression.GZip, opts.Compression)
	require.NotNil(t, opts.MaxPageSize)
	assert.Equal(t, 12, *opts.MaxPageSize)
	assert.Equal(t, defaultReadBufferSize, cfg.ReadBufferSize)
}

func TestWriteOptions_PageSize(t *testing.T) {
	t.Parallel()

	opts := DefaultWriteOptions()

	size, err := opts.pageSize(10)
	require.NoError(t, err)
	assert.Equal(t, 10, size)

	four := 4
	opts.MaxPageSize = &four

	size, err = opts.pageSize(10)
	require.NoError(t, err)
	assert.Equal(t, 4, size)

	size, err = opts.pageSize(3)
	require.NoError(t, err)
	assert.Equal(t, 3, size)

	zero := 0
	opts.MaxPageSize = &zero

	_, err = opts.pageSize(10)
	assert.EqualError(t, errors.Cause(err), ErrConfig.Error())
}
