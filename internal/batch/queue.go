// Package batch coalesces storage write operations so bursts of logging
// activity don't trigger one read-modify-write cycle per keystroke.
package batch

import (
	"sync"
	"time"

	"github.com/pitchmind/pitchmind/internal/logger"
)

// Op is a deferred write operation. Ops must be idempotent or safely
// re-appliable: when any op in a batch fails, the whole batch is re-queued
// and will run again.
type Op func() error

// Queue accumulates pending operations and flushes them either when the
// queue reaches the batch size or after an inactivity window since the last
// enqueue, whichever comes first. Flushes run ops sequentially in FIFO order.
type Queue struct {
	mu        sync.Mutex
	pending   []Op
	batchSize int
	delay     time.Duration
	timer     *time.Timer
	closed    bool
}

// New creates a queue flushing at batchSize items or after delay of
// inactivity.
func New(batchSize int, delay time.Duration) *Queue {
	return &Queue{
		batchSize: batchSize,
		delay:     delay,
	}
}

// Add enqueues an operation. It triggers an immediate flush when the batch
// size is reached, otherwise (re)arms the inactivity timer.
func (q *Queue) Add(op Op) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}

	q.pending = append(q.pending, op)

	if len(q.pending) >= q.batchSize {
		q.mu.Unlock()
		go q.Flush()
		return
	}

	if q.timer != nil {
		q.timer.Stop()
	}
	q.timer = time.AfterFunc(q.delay, func() { q.Flush() })
	q.mu.Unlock()
}

// Flush drains the queue, running every pending op in enqueue order. If an
// op fails, the entire batch is put back at the front of the queue in its
// original order for the next flush attempt.
func (q *Queue) Flush() {
	q.mu.Lock()
	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
	if len(q.pending) == 0 {
		q.mu.Unlock()
		return
	}
	ops := q.pending
	q.pending = nil
	q.mu.Unlock()

	for i, op := range ops {
		if err := op(); err != nil {
			logger.Warn("batch flush failed, re-queueing batch", "index", i, "size", len(ops), "error", err)
			q.mu.Lock()
			q.pending = append(append([]Op{}, ops...), q.pending...)
			q.mu.Unlock()
			return
		}
	}
}

// Len returns the number of pending operations.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Close stops the timer and performs a final drain. The queue accepts no
// further operations afterwards.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
	q.mu.Unlock()

	q.Flush()
}
