package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// WorkerPool runs tile tasks on a bounded number of goroutines
type WorkerPool struct {
	group      *errgroup.Group
	ctx        context.Context
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// Zero or negative uses the CPU count.
func NewWorkerPool(ctx context.Context, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(numWorkers)

	return &WorkerPool{
		group:      group,
		ctx:        groupCtx,
		numWorkers: numWorkers,
	}
}

// Submit queues task, blocking while all workers are busy. It returns false
// without running task once the pool's context is done.
func (wp *WorkerPool) Submit(task func() error) bool {
	if wp.ctx.Err() != nil {
		return false
	}
	wp.group.Go(task)
	return true
}

// Wait blocks until every submitted task has finished and returns the
// first task error
func (wp *WorkerPool) Wait() error {
	return wp.group.Wait()
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}
