package strata

import (
	"flag"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/compression"
	"gopkg.in/yaml.v2"
)

// Config is the yaml representation of the writer and reader settings.
type Config struct {
	Compression    string `yaml:"compression"`
	MaxPageSize    int    `yaml:"max_page_size"` // 0 keeps one page per batch
	Encoding       string `yaml:"encoding"`
	ReadBufferSize int    `yaml:"read_buffer_size"`
	CreatedBy      string `yaml:"created_by,omitempty"`
}

func (cfg *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.StringVar(&cfg.Compression, prefixConfig(prefix, "compression"), compression.Snappy.String(), "Page compression codec (none, snappy, gzip, brotli, lz4, zstd).")
	f.IntVar(&cfg.MaxPageSize, prefixConfig(prefix, "max-page-size"), 0, "Maximum number of rows per page, 0 for one page per batch.")
	f.StringVar(&cfg.Encoding, prefixConfig(prefix, "encoding"), EncodingAuto.String(), "Value encoding policy (auto, plain, dictionary).")
	f.IntVar(&cfg.ReadBufferSize, prefixConfig(prefix, "read-buffer-size"), defaultReadBufferSize, "Buffer size in bytes of each column read.")
	f.StringVar(&cfg.CreatedBy, prefixConfig(prefix, "created-by"), "", "Application name recorded in the file footer.")
}

func (cfg *Config) Validate() error {
	if _, err := compression.ParseCodec(cfg.Compression); err != nil {
		return errors.WithFields(
			errors.WithStack(ErrConfig),
			errors.Fields{
				"compression": cfg.Compression,
			})
	}

	if _, err := ParseEncodingPolicy(cfg.Encoding); err != nil {
		return err
	}

	if cfg.MaxPageSize < 0 {
		return errors.WithFields(
			errors.WithStack(ErrConfig),
			errors.Fields{
				"max_page_size": cfg.MaxPageSize,
			})
	}

	if cfg.ReadBufferSize < 0 {
		return errors.WithFields(
			errors.WithStack(ErrConfig),
			errors.Fields{
				"read_buffer_size": cfg.ReadBufferSize,
			})
	}

	return nil
}

// WriteOptions converts the configuration to write settings.
func (cfg *Config) WriteOptions() (WriteOptions, error) {
	if err := cfg.Validate(); err != nil {
		return WriteOptions{}, err
	}

	codec, _ := compression.ParseCodec(cfg.Compression)
	policy, _ := ParseEncodingPolicy(cfg.Encoding)

	opts := WriteOptions{
		Compression: codec,
		Encoding:    policy,
	}

	if cfg.MaxPageSize > 0 {
		size := cfg.MaxPageSize
		opts.MaxPageSize = &size
	}

	return opts, nil
}

// WriterOptions returns the FileWriter options of the configuration.
func (cfg *Config) WriterOptions() ([]FileWriterOption, error) {
	opts, err := cfg.WriteOptions()
	if err != nil {
		return nil, err
	}

	res := []FileWriterOption{WithWriteOptions(opts)}
	if cfg.CreatedBy != "" {
		res = append(res, WithCreatedBy(cfg.CreatedBy))
	}

	return res, nil
}

// ReaderOptions returns the FileReader options of the configuration.
func (cfg *Config) ReaderOptions() []FileReaderOption {
	if cfg.ReadBufferSize <= 0 {
		return nil
	}

	return []FileReaderOption{WithReadBufferSize(cfg.ReadBufferSize)}
}

// LoadConfig parses a yaml configuration on top of the defaults.
func LoadConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	cfg.RegisterFlagsAndApplyDefaults("", flag.NewFlagSet("strata", flag.ContinueOnError))

	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, errors.WithFields(
			errors.WithStack(ErrConfig),
			errors.Fields{
				"error": err.Error(),
			})
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func prefixConfig(prefix, name string) string {
	if prefix == "" {
		return name
	}

	return prefix + "." + name
}
