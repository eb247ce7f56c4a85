// Package queue implements a bounded, multi-producer/multi-consumer FIFO
// queue used to hand work off between the reader, worker pool, and writer
// stages of the TDT pipeline (and, more generally, by any producer/consumer
// pair in this module).
//
// The queue is closed implicitly: each producer holds a "writer" handle and
// calls CloseWriter when it has no more items to push. Once every writer has
// closed, pending and future Pop calls drain the remaining items and then
// return ok=false. This mirrors the "writers count as a phased-closure
// barrier" design called out for the original C list_t type.
package queue

import (
	"sync"

	"github.com/srikanthkris/hpg-variant/circular"
)

// Queue is a bounded FIFO queue of items of type T.
type Queue[T any] struct {
	mu       sync.Mutex
	notEmpty sync.Cond
	notFull  sync.Cond

	buf     []T
	mask    int // len(buf)-1; len(buf) is always a power of 2
	head    int
	count   int
	limit   int // requested capacity; may be < len(buf)

	writers int
}

// New creates a queue with room for up to capacity items, initially held
// open by writers producer handles. capacity and writers must be positive.
// The backing ring buffer is rounded up to a power of 2 (via the teacher's
// own circular.NextExp2), so index wraparound is a bitmask rather than a
// modulo; Push/Pop still
// enforce the caller-requested capacity, not the rounded one.
func New[T any](capacity, writers int) *Queue[T] {
	if capacity <= 0 {
		capacity = 1
	}
	size := 1
	if capacity > 1 {
		size = circular.NextExp2(capacity - 1)
	}
	q := &Queue[T]{
		buf:     make([]T, size),
		mask:    size - 1,
		limit:   capacity,
		writers: writers,
	}
	q.notEmpty.L = &q.mu
	q.notFull.L = &q.mu
	return q
}

// Push appends item to the queue, blocking while the queue is full. Push
// must only be called by the holder of a writer handle; calling it after
// that handle's CloseWriter is undefined.
func (q *Queue[T]) Push(item T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.count == q.limit {
		q.notFull.Wait()
	}
	tail := (q.head + q.count) & q.mask
	q.buf[tail] = item
	q.count++
	q.notEmpty.Signal()
}

// Pop removes and returns the oldest item. It blocks while the queue is
// empty and at least one writer is still open. When the queue is empty and
// every writer has called CloseWriter, Pop returns the zero value and
// ok=false.
func (q *Queue[T]) Pop() (item T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.count == 0 && q.writers > 0 {
		q.notEmpty.Wait()
	}
	if q.count == 0 {
		return item, false
	}
	item = q.buf[q.head]
	var zero T
	q.buf[q.head] = zero
	q.head = (q.head + 1) & q.mask
	q.count--
	q.notFull.Signal()
	return item, true
}

// CloseWriter decrements the writer count. When it reaches zero, every
// pending and future Pop call is released (with ok=false once the queue has
// drained).
func (q *Queue[T]) CloseWriter() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.writers > 0 {
		q.writers--
	}
	if q.writers == 0 {
		q.notEmpty.Broadcast()
	}
}

// Len returns the current number of queued items. Intended for diagnostics
// and tests; the result may be stale immediately after it's read.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}
