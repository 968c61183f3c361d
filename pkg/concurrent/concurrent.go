package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/leviathan-engine/filegen/pkg/sequence"
)

// Concurrent runs action for each element of the iterator in its own
// goroutine, at most limit at a time (no limit when limit <= 0). The context
// passed to action is cancelled on the first error, which is the one returned.
func Concurrent[T any](ctx context.Context, i *sequence.Iterator[T], limit int, action func(context.Context, T) error) error {
	errGroup, groupCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		errGroup.SetLimit(limit)
	}

	next, stop := i.Pull()
	defer stop()

	for {
		value, valid := next()
		if !valid {
			break
		}
		if groupCtx.Err() != nil {
			break
		}

		errGroup.Go(func() error {
			return action(groupCtx, value)
		})
	}

	if err := errGroup.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// ParallelMap applies mapFn to each element in parallel and keeps the order.
// The first error wins and the partial results are dropped.
func ParallelMap[T any, R any](ctx context.Context, i *sequence.Iterator[T], limit int, mapFn func(context.Context, T) (R, error)) ([]R, error) {
	in := i.Collect()
	out := make([]R, len(in))

	err := Concurrent(ctx, sequence.Indexed(in), limit, func(ctx context.Context, e sequence.Entry[T]) error {
		r, err := mapFn(ctx, e.Value)
		if err != nil {
			return err
		}
		out[e.Index] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
