package signal

import "sync"

// AutoReset is a gate that releases exactly one waiter per Set call, then
// closes again; a Set with no queued waiter leaves the gate open for the
// next Wait instead. See spec.md §3.1.2.
//
// Instances must be created with NewAutoReset; the zero value is not usable.
type AutoReset struct {
	mu       sync.Mutex
	signaled bool
	queue    waiterQueue
}

// NewAutoReset creates an auto-reset gate, initially open iff signaled is
// true.
func NewAutoReset(signaled bool) *AutoReset {
	return &AutoReset{signaled: signaled}
}

// Wait returns a channel that closes immediately if the gate is open (in
// which case the gate is atomically closed again), or once a matching Set
// releases this waiter otherwise.
func (a *AutoReset) Wait() <-chan struct{} {
	a.mu.Lock()
	if a.signaled {
		a.signaled = false
		a.mu.Unlock()
		return closedChan()
	}
	ch := a.queue.add()
	a.mu.Unlock()
	return ch
}

// Set releases exactly one queued waiter (the oldest), if any. Otherwise it
// opens the gate so the next Wait passes immediately.
func (a *AutoReset) Set() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.queue.releaseOne() {
		return
	}
	a.signaled = true
}

// Reset closes the gate without releasing any waiter.
func (a *AutoReset) Reset() {
	a.mu.Lock()
	a.signaled = false
	a.mu.Unlock()
}

// Signaled reports whether the gate is currently open (no effect on queued
// waiters).
func (a *AutoReset) Signaled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.signaled
}
