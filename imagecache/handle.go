package imagecache

import (
	"context"
	"sync"
)

type handleState int

const (
	statePending handleState = iota
	stateDelivered
	stateCanceled
)

// Handle is the cancellation token returned by FetchImage.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu    sync.Mutex
	state handleState
}

func newHandle(cancel context.CancelFunc) *Handle {
	return &Handle{
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// finishedHandle is returned on the fast path; there is nothing to cancel.
func finishedHandle() *Handle {
	h := newHandle(func() {})
	h.state = stateDelivered
	close(h.done)
	return h
}

// Cancel aborts the outstanding fetch. A completion that has not started
// running yet will not run. Safe to call more than once.
func (h *Handle) Cancel() {
	h.mu.Lock()
	if h.state == statePending {
		h.state = stateCanceled
	}
	h.mu.Unlock()
	h.cancel()
}

// Canceled reports whether Cancel won the race against delivery.
func (h *Handle) Canceled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state == stateCanceled
}

// Done is closed once the background work has handed its result to the
// dispatcher, or dropped it.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// claim moves the handle to delivered. Only the first caller wins.
func (h *Handle) claim() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != statePending {
		return false
	}
	h.state = stateDelivered
	return true
}

func (h *Handle) finish() {
	h.cancel()
	close(h.done)
}
