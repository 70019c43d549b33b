// Package dispatch provides the UI-affine execution context: every state
// transition and observer notification of a loader runs through a Dispatcher.
package dispatch

import (
	"context"
	"sync"
)

const defaultQueueSize = 64

// Dispatcher runs fn on the context the presentation layer reads from.
type Dispatcher interface {
	Dispatch(fn func())
}

// Inline runs fn on the calling goroutine. Suitable for headless callers that
// only read state through a Loader's lock-free accessors.
type Inline struct{}

func (Inline) Dispatch(fn func()) { fn() }

// Queue is a serialized executor: a single goroutine runs dispatched funcs in
// FIFO order, so everything dispatched to it observes a consistent sequence.
type Queue struct {
	tasks     chan func()
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	doneOnce  sync.Once
}

// NewQueue creates a queue with the given buffer. size <= 0 uses the default.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = defaultQueueSize
	}
	return &Queue{
		tasks: make(chan func(), size),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Dispatch enqueues fn. It blocks while the buffer is full and the queue is
// still running. Once the queue is closed or Run has returned it drops fn, so
// late completions of discarded loaders go nowhere.
func (q *Queue) Dispatch(fn func()) {
	select {
	case <-q.stop:
		return
	case <-q.done:
		return
	default:
	}

	select {
	case q.tasks <- fn:
	case <-q.stop:
	case <-q.done:
	}
}

// Run drains the queue on the calling goroutine until ctx is cancelled or the
// queue is closed. Funcs already enqueued at Close time are still run.
func (q *Queue) Run(ctx context.Context) {
	defer q.doneOnce.Do(func() { close(q.done) })
	for {
		select {
		case <-ctx.Done():
			return
		case <-q.stop:
			q.drain()
			return
		case fn := <-q.tasks:
			q.runSafe(fn)
		}
	}
}

func (q *Queue) drain() {
	for {
		select {
		case fn := <-q.tasks:
			q.runSafe(fn)
		default:
			return
		}
	}
}

// Start runs the queue on a new goroutine.
func (q *Queue) Start(ctx context.Context) {
	go q.Run(ctx)
}

// Close stops accepting work, releases any Dispatch blocked on a full buffer
// and lets Run drain what is buffered. Safe to call more than once.
func (q *Queue) Close() {
	q.closeOnce.Do(func() { close(q.stop) })
}

// Stopped is closed when Run returns.
func (q *Queue) Stopped() <-chan struct{} {
	return q.done
}

// runSafe keeps one panicking observer from killing the queue goroutine.
func (q *Queue) runSafe(fn func()) {
	defer func() { _ = recover() }()
	fn()
}
