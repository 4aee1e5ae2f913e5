package source

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const DefaultConcurrency = 4

// Loader reads sources ahead of the consumer.
type Loader struct {
	// Concurrency bounds the reads in flight. Zero means DefaultConcurrency.
	Concurrency int
}

type slot struct {
	done chan struct{}
	src  *Source
	err  error
}

// Queue hands out prefetched sources in input order.
type Queue struct {
	slots  []slot
	next   int
	cancel context.CancelFunc
}

// Prefetch starts reading paths in the background. Reads complete in any
// order; Queue.Next always returns them in the order of paths.
func (l Loader) Prefetch(ctx context.Context, paths []string) *Queue {
	ctx, cancel := context.WithCancel(ctx)
	q := &Queue{slots: make([]slot, len(paths)), cancel: cancel}
	for i := range q.slots {
		q.slots[i].done = make(chan struct{})
	}

	limit := l.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	go func() {
		for i, path := range paths {
			g.Go(func() error {
				s := &q.slots[i]
				defer close(s.done)
				if err := gctx.Err(); err != nil {
					s.err = err
					return nil
				}
				s.src, s.err = Load(path)
				return nil
			})
		}
		_ = g.Wait()
	}()

	return q
}

// Next blocks until the next source in input order is read. It returns the
// source's ReadError, or ctx's error if ctx ends first.
func (q *Queue) Next(ctx context.Context) (*Source, error) {
	if q.next >= len(q.slots) {
		return nil, nil
	}
	s := &q.slots[q.next]
	select {
	case <-s.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	q.next++
	return s.src, s.err
}

// Len returns the number of paths queued.
func (q *Queue) Len() int { return len(q.slots) }

// Close abandons reads that have not started.
func (q *Queue) Close() { q.cancel() }
