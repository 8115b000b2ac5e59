package dispatch

import (
	"sync"

	"github.com/roach88/nutridash/internal/filter"
)

// snapshotQueue is a thread-safe FIFO of input snapshots.
//
// Producers (a transport reading events) enqueue from any goroutine while
// the Run loop dequeues. A buffered signal channel lets the loop wait with
// context awareness.
type snapshotQueue struct {
	mu     sync.Mutex
	events []filter.Input
	closed bool
	signal chan struct{} // buffered, size 1
}

func newSnapshotQueue() *snapshotQueue {
	return &snapshotQueue{
		events: make([]filter.Input, 0, 16),
		signal: make(chan struct{}, 1),
	}
}

// Enqueue appends a snapshot. Returns false once the queue is closed.
func (q *snapshotQueue) Enqueue(in filter.Input) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.events = append(q.events, in)

	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

// TryDequeue pops the oldest snapshot without blocking.
func (q *snapshotQueue) TryDequeue() (filter.Input, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return filter.Input{}, false
	}
	in := q.events[0]
	q.events[0] = filter.Input{}
	if len(q.events) == 1 {
		q.events = q.events[:0]
	} else {
		q.events = q.events[1:]
	}
	return in, true
}

// Wait signals that snapshots may be available. The channel is closed
// when the queue closes.
func (q *snapshotQueue) Wait() <-chan struct{} {
	return q.signal
}

// Len returns the number of pending snapshots.
func (q *snapshotQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Closed reports whether Close has been called.
func (q *snapshotQueue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Close stops accepting snapshots and wakes the waiter.
func (q *snapshotQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.signal)
}
