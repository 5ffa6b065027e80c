package transform

import (
	"context"
	"runtime"
	"sync"

	"github.com/jsbundle/jsbundle/domain"
	"golang.org/x/sync/errgroup"
)

// ParallelTransform transforms every module in g concurrently, capped at
// concurrency goroutines (runtime.NumCPU() when concurrency <= 0). Module
// bodies don't depend on each other's transformed output, only on their own
// AST, so there is nothing to synchronize between modules.
func ParallelTransform(ctx context.Context, g *domain.Graph, root string, concurrency int) error {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	group, gCtx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)

	agg := &domain.AggregatedError{}
	var mu sync.Mutex

	for _, key := range g.Order {
		rec := g.Modules[key]
		group.Go(func() error {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			default:
			}

			tr := New(root)
			if err := tr.Transform(rec); err != nil {
				mu.Lock()
				agg.Add(rec.Key, err)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}
	if agg.HasErrors() {
		return agg
	}
	return nil
}
