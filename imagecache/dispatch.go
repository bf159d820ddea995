package imagecache

import (
	"context"
	"sync"
)

// Dispatcher runs completions on the context the caller designated.
type Dispatcher interface {
	Dispatch(fn func())
}

// DispatchFunc adapts a plain function to Dispatcher.
type DispatchFunc func(fn func())

func (f DispatchFunc) Dispatch(fn func()) { f(fn) }

// Inline runs completions on whichever goroutine delivers them.
var Inline Dispatcher = DispatchFunc(func(fn func()) { fn() })

// Queue is a serial main-loop dispatcher. Work runs in FIFO order on the
// goroutine that calls Run.
type Queue struct {
	work chan func()
	done chan struct{}
	once sync.Once
}

// NewQueue creates a queue that buffers up to size pending callbacks before
// Dispatch blocks.
func NewQueue(size int) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{
		work: make(chan func(), size),
		done: make(chan struct{}),
	}
}

// Dispatch enqueues fn. After Close, fn is dropped.
func (q *Queue) Dispatch(fn func()) {
	select {
	case <-q.done:
		return
	default:
	}
	select {
	case q.work <- fn:
	case <-q.done:
	}
}

// Run executes queued callbacks until ctx is done or the queue is closed.
// Callbacks already queued when Close is called still run.
func (q *Queue) Run(ctx context.Context) {
	for {
		select {
		case fn := <-q.work:
			fn()
		case <-ctx.Done():
			return
		case <-q.done:
			q.drain()
			return
		}
	}
}

func (q *Queue) drain() {
	for {
		select {
		case fn := <-q.work:
			fn()
		default:
			return
		}
	}
}

// Close stops Run once queued work is drained and makes later Dispatch
// calls no-ops.
func (q *Queue) Close() {
	q.once.Do(func() { close(q.done) })
}

// startedQueue returns a queue already running on its own goroutine.
func startedQueue() *Queue {
	q := NewQueue(64)
	go q.Run(context.Background())
	return q
}
