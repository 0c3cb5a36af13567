package azblob

import (
	"context"
	"net/url"

	"github.com/Azure/azure-pipeline-go/pipeline"
	"github.com/Azure/azure-storage-blob-go/azblob"
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/source"
)

const (
	errURLNotOpened = errors.Error("url not opened")
)

type blob struct {
	ctx          context.Context
	URL          *url.URL
	credential   azblob.Credential
	blockBlobURL *azblob.BlockBlobURL
}

// PipelineOptions configures the HTTP pipeline of a blob handle.
type PipelineOptions struct {
	// HTTPSender configures the sender of HTTP requests
	HTTPSender pipeline.Factory
	// Retry configures the built-in retry policy behavior.
	RetryOptions azblob.RetryOptions
	// Log configures the pipeline's logging infrastructure indicating what information is logged and where.
	Log pipeline.LogOptions
}

func (b *blob) open(URL string, opts PipelineOptions) (err error) {
	if b.URL, err = url.Parse(URL); err != nil {
		return errors.Wrap(err, "failed to parse URL")
	}

	blobURL := azblob.NewBlockBlobURL(*b.URL, azblob.NewPipeline(b.credential, azblob.PipelineOptions{
		HTTPSender: opts.HTTPSender,
		Retry:      opts.RetryOptions,
		Log:        opts.Log,
	}))

	b.blockBlobURL = &blobURL

	return nil
}

// Opener opens independent ranged readers on one blob.
type Opener struct {
	URL        string
	Credential azblob.Credential
	Options    ReaderOptions
}

func NewOpener(URL string, credential azblob.Credential, options ReaderOptions) *Opener {
	return &Opener{
		URL:        URL,
		Credential: credential,
		Options:    options,
	}
}

func (o *Opener) Open(ctx context.Context) (source.Reader, error) {
	return NewReader(ctx, o.URL, o.Credential, o.Options)
}
