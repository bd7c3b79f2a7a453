// FILE: lixenwraith/pebble/queue.go
package pebble

import (
	"sync"
)

// logRecord is a fully rendered record travelling from a producer to the sinks
type logRecord struct {
	Level int64
	Text  string
}

// recordQueue is a FIFO of rendered records.
// Producers push under the lock; the dispatcher is woken through a 1-slot notify channel.
type recordQueue struct {
	mu       sync.Mutex
	items    []logRecord
	capacity int // 0 means unbounded
	closed   bool
	notify   chan struct{}
}

// newRecordQueue creates a queue; capacity 0 leaves it unbounded
func newRecordQueue(capacity int64) *recordQueue {
	initial := capacity
	if initial <= 0 || initial > 1024 {
		initial = 1024
	}
	return &recordQueue{
		items:    make([]logRecord, 0, initial),
		capacity: int(capacity),
		notify:   make(chan struct{}, 1),
	}
}

// newClosedQueue returns a queue that rejects every push
func newClosedQueue() *recordQueue {
	q := newRecordQueue(0)
	q.closed = true
	return q
}

// push appends a record without blocking.
// Returns false if the queue is closed or a bounded queue is full.
func (q *recordQueue) push(r logRecord) bool {
	q.mu.Lock()
	if q.closed || (q.capacity > 0 && len(q.items) >= q.capacity) {
		q.mu.Unlock()
		return false
	}
	q.items = append(q.items, r)
	q.mu.Unlock()

	q.signal()
	return true
}

// pop removes the head record
func (q *recordQueue) pop() (logRecord, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return logRecord{}, false
	}
	r := q.items[0]
	q.items[0] = logRecord{}
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
	}
	return r, true
}

// close rejects further pushes; records already queued stay poppable
func (q *recordQueue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.signal()
}

// isClosed reports whether close has been called
func (q *recordQueue) isClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// len returns the number of queued records
func (q *recordQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// wait returns the channel signalled after pushes
func (q *recordQueue) wait() <-chan struct{} {
	return q.notify
}

// signal wakes the consumer, coalescing with a pending wake-up
func (q *recordQueue) signal() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}
