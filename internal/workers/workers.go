package workers

import (
	"context"
	"errors"
	"sync"
)

// Workers runs a set of workers concurrently under one context.
type Workers struct {
	workers []Worker
}

// New groups the given workers for a single [Workers.Run] call.
func New(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run starts every worker in its own goroutine and blocks until all of them
// return. Context cancellation errors are treated as a clean shutdown; any
// other worker errors are joined into the returned error.
func (w *Workers) Run(ctx context.Context) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for _, worker := range w.workers {
		wg.Add(1)
		go func(worker Worker) {
			defer wg.Done()

			if err := worker.Run(ctx); err != nil && !isShutdown(err) {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(worker)
	}

	wg.Wait()

	return errors.Join(errs...)
}

func isShutdown(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
