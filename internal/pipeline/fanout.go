package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// mapBounded applies fn to every item with at most limit calls in flight.
// Results and errors keep the order of items.
func mapBounded[In, Out any](ctx context.Context, limit int, items []In, fn func(context.Context, In) (Out, error)) ([]Out, []error) {
	if limit < 1 {
		limit = 1
	}
	out := make([]Out, len(items))
	errs := make([]error, len(items))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			out[i], errs[i] = fn(ctx, item)
			return nil
		})
	}
	_ = g.Wait()

	return out, errs
}
