// FILE: lixenwraith/pebble/pool.go
package pebble

import (
	"errors"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
)

// ErrPoolStopped is returned by Submit once the pool has been shut down.
var ErrPoolStopped = errors.New("pebble: enqueue on stopped worker pool")

// Task is a handle to a submitted job. Callers may ignore it.
type Task struct {
	done chan struct{}
}

// Done returns a channel closed when the job has finished.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the job has finished.
func (t *Task) Wait() {
	<-t.done
}

// WorkerPool runs sink writes on a fixed set of goroutines.
// Submission blocks while every worker is busy.
type WorkerPool struct {
	mu      sync.RWMutex
	pool    *ants.Pool
	wg      sync.WaitGroup
	stopped bool
	panics  func(any)
}

// NewWorkerPool creates a pool with n workers; n <= 0 selects runtime.NumCPU().
func NewWorkerPool(n int) (*WorkerPool, error) {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	wp := &WorkerPool{}
	p, err := ants.NewPool(n,
		ants.WithNonblocking(false),
		ants.WithPanicHandler(func(r any) {
			if wp.panics != nil {
				wp.panics(r)
			}
		}),
	)
	if err != nil {
		return nil, fmtErrorf("failed to create worker pool: %w", err)
	}
	wp.pool = p
	return wp, nil
}

// Size returns the number of workers.
func (wp *WorkerPool) Size() int {
	return wp.pool.Cap()
}

// Submit schedules fn and returns its handle.
func (wp *WorkerPool) Submit(fn func()) (*Task, error) {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.stopped {
		return nil, ErrPoolStopped
	}

	task := &Task{done: make(chan struct{})}
	wp.wg.Add(1)
	err := wp.pool.Submit(func() {
		defer wp.wg.Done()
		defer close(task.done)
		fn()
	})
	if err != nil {
		wp.wg.Done()
		if errors.Is(err, ants.ErrPoolClosed) {
			return nil, ErrPoolStopped
		}
		return nil, fmtErrorf("failed to submit task: %w", err)
	}
	return task, nil
}

// Wait blocks until every submitted job has finished. The pool stays usable.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// Shutdown stops accepting jobs, waits up to timeout for submitted jobs and
// releases the workers. Calling it again is a no-op.
func (wp *WorkerPool) Shutdown(timeout time.Duration) error {
	wp.mu.Lock()
	if wp.stopped {
		wp.mu.Unlock()
		return nil
	}
	wp.stopped = true
	wp.mu.Unlock()

	done := make(chan struct{})
	go func() {
		wp.wg.Wait()
		close(done)
	}()

	var err error
	select {
	case <-done:
	case <-time.After(timeout):
		err = fmtErrorf("worker pool did not finish within timeout (%v)", timeout)
	}

	wp.pool.Release()
	return err
}
