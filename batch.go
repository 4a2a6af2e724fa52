package floorcal

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// batchChunk is the number of points a worker converts before checking the
// context again.
const batchChunk = 1024

// ToNormalizedAll converts points concurrently. A Pipeline is immutable, so
// workers share it without locking. workers <= 0 uses GOMAXPROCS. The first
// non-finite result cancels the batch and is reported by index.
func (p *Pipeline) ToNormalizedAll(ctx context.Context, points []Vec2, workers int) ([]Vec2, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]Vec2, len(points))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(points); start += batchChunk {
		end := min(start+batchChunk, len(points))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				n := p.ToNormalized(points[i])
				if !n.IsFinite() {
					return fmt.Errorf("point %d (%g, %g): %w", i, points[i].X, points[i].Y, ErrNonFinite)
				}
				out[i] = n
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
