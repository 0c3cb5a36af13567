package strata

import (
	"context"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/strata/array"
	"github.com/hexbee-net/strata/nested"
	"golang.org/x/sync/errgroup"
)

// ReadRowGroup reads the selected columns of row group rg concurrently, one
// goroutine and one handle per leaf, and returns one chunk per page window.
// The first failing column cancels the others.
func (f *FileReader) ReadRowGroup(ctx context.Context, rg int) ([]*array.Chunk, error) {
	fields, leaves := f.selectedLeaves()
	if len(leaves) == 0 {
		return nil, nil
	}

	frags := make([][]*nested.Leaf, len(leaves))

	g, ctx := errgroup.WithContext(ctx)

	for i, leaf := range leaves {
		i, leaf := i, leaf

		g.Go(func() error {
			r, err := f.OpenColumn(ctx, rg, leaf)
			if err != nil {
				return err
			}

			defer func() { _ = r.Close() }()

			for r.HasNext() {
				if err := ctx.Err(); err != nil {
					return err
				}

				frag, err := r.NextArray()
				if err != nil {
					return err
				}

				frags[i] = append(frags[i], frag)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.WithFields(err, errors.Fields{"row_group": rg})
	}

	steps := len(frags[0])

	for i := range frags {
		if len(frags[i]) != steps {
			return nil, errors.WithFields(
				errors.WithStack(ErrMisaligned),
				errors.Fields{
					"row_group": rg,
					"leaf":      leaves[i],
					"expected":  steps,
					"actual":    len(frags[i]),
				})
		}
	}

	res := make([]*array.Chunk, steps)
	step := make([]*nested.Leaf, len(leaves))

	for s := 0; s < steps; s++ {
		for i := range frags {
			step[i] = frags[i][s]
		}

		chunk, err := f.assemble(fields, step)
		if err != nil {
			return nil, errors.WithFields(err, errors.Fields{"row_group": rg})
		}

		res[s] = chunk
	}

	return res, nil
}
