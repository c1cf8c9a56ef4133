package signal

import "sync"

// Countdown is a gate that opens once an internal, non-negative counter
// reaches zero. See spec.md §3.1.3.
//
// Instances must be created with NewCountdown; the zero value is not usable.
type Countdown struct {
	mu      sync.Mutex
	counter int
	gate    *ManualReset
}

// NewCountdown creates a countdown gate with the given initial count. A
// non-positive or non-integer-valued initial count clamps to 0 (the gate
// starts open).
func NewCountdown(initial int) *Countdown {
	if initial < 0 {
		initial = 0
	}
	return &Countdown{
		counter: initial,
		gate:    NewManualReset(initial == 0),
	}
}

// clampDelta normalizes an Increment/Decrement argument: non-positive values
// clamp to 1, per spec.md §4.1's documented edge-case policy.
func clampDelta(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// variadicArg returns the first element of n, or 1 if n is empty - emulating
// a defaulted optional argument (increment(n=1) / decrement(n=1) in
// spec.md §3.1.3).
func variadicArg(n []int) int {
	if len(n) == 0 {
		return 1
	}
	return n[0]
}

// Increment adds max(1, n) to the counter and closes the gate, if it was
// open. n defaults to 1 if omitted.
func (c *Countdown) Increment(n ...int) {
	delta := clampDelta(variadicArg(n))
	c.mu.Lock()
	c.counter += delta
	c.gate.Reset()
	c.mu.Unlock()
}

// Decrement subtracts max(1, n) from the counter, clamped at 0. If the
// counter reaches 0, every queued waiter is released in FIFO order.
// Decrementing an already-zero counter is a no-op. n defaults to 1 if
// omitted.
func (c *Countdown) Decrement(n ...int) {
	delta := clampDelta(variadicArg(n))
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counter == 0 {
		return
	}
	c.counter -= delta
	if c.counter < 0 {
		c.counter = 0
	}
	if c.counter == 0 {
		c.gate.Set()
	}
}

// Wait returns a channel that closes immediately if the counter is 0, or
// once it next reaches 0 otherwise.
func (c *Countdown) Wait() <-chan struct{} {
	return c.gate.Wait()
}

// Count returns the current counter value.
func (c *Countdown) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counter
}
