package sparsewire

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// minParallelRows is the batch size below which fan-out is not worth the
// goroutine overhead.
const minParallelRows = 64

// encodeBatchParallel encodes contiguous chunks of rows across workers.
// Output order and Dim semantics are identical to EncodeBatch.
func encodeBatchParallel(ctx context.Context, rows []SparseVector, parallelism int) (*WireMessage, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	chunk := (len(rows) + parallelism - 1) / parallelism
	nchunks := (len(rows) + chunk - 1) / chunk

	contents := make([][]byte, len(rows))
	dims := make([]int64, nchunks)

	for ci := 0; ci < nchunks; ci++ {
		ci := ci
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			start := ci * chunk
			end := min(start+chunk, len(rows))

			var dim int64
			for i := start; i < end; i++ {
				contents[i] = EncodeRow(rows[i])
				if n := len(rows[i]); n > 0 {
					if d := int64(rows[i][n-1].Index) + 1; d > dim {
						dim = d
					}
				}
			}
			dims[ci] = dim
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var dim int64
	for _, d := range dims {
		if d > dim {
			dim = d
		}
	}
	return &WireMessage{Contents: contents, Dim: dim}, nil
}

// decodeBatchParallel decodes contiguous chunks of buffers across workers.
// Like DecodeBatch it is all-or-nothing; with multiple malformed rows the
// one surfaced is the first to fail, not necessarily the lowest position.
func decodeBatchParallel(ctx context.Context, msg *WireMessage, parallelism int) ([]SparseVector, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	chunk := (len(msg.Contents) + parallelism - 1) / parallelism
	nchunks := (len(msg.Contents) + chunk - 1) / chunk

	rows := make([]SparseVector, len(msg.Contents))

	for ci := 0; ci < nchunks; ci++ {
		ci := ci
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			start := ci * chunk
			end := min(start+chunk, len(msg.Contents))

			for i := start; i < end; i++ {
				row, err := DecodeRow(msg.Contents[i])
				if err != nil {
					return fmt.Errorf("row %d: %w", i, err)
				}
				rows[i] = row
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}
