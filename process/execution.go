package process

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// executionState mirrors eventloop's PromiseState enum: an Execution is
// Pending until exactly one of Start's two outcomes (Stop, or an empty
// action list -> settle with results; Cancel/abort -> settle with error)
// fires.
type executionState int32

const (
	executionPending executionState = iota
	executionResolved
	executionRejected
)

// Execution is the controllable handle returned by Process.Start, per
// spec.md §3.2/§6.4. It is grounded in eventloop/promise.go's promise type:
// a mutex-guarded state machine settled exactly once, generalized from a
// single Result value to the (map[string]any, error) pair a process
// invocation settles with, and from a subscriber-channel fan-out to a
// single closed done channel (the same idiom signal.ManualReset uses).
//
// The richer eventloop.ChainedPromise was not used directly - its handler
// chain (Then/Catch/Finally) runs on an event-loop goroutine this package
// does not have, so Execution instead exposes settlement through Wait and
// Done the way a context.Context exposes cancellation.
type Execution struct {
	id uuid.UUID

	mu      sync.Mutex
	state   executionState
	results map[string]any
	err     error
	done    chan struct{}

	control chan controlSignal
}

// controlSignal is sent from Context.Stop/Cancel/Update to the engine's
// driver goroutine, following microbatch.go's ping/pong idiom: a single
// goroutine owns all mutable scheduling state, and every external request
// is a message on a channel rather than a direct mutation.
type controlSignal struct {
	kind       controlKind
	cancelData any
	conditions map[string]any
}

type controlKind int

const (
	controlStop controlKind = iota
	controlCancel
	controlUpdate
)

func newExecution() *Execution {
	return &Execution{
		id:      uuid.New(),
		results: make(map[string]any),
		done:    make(chan struct{}),
		control: make(chan controlSignal, 1),
	}
}

// ID returns the unique identifier of this invocation, per spec.md §6.4.
func (e *Execution) ID() uuid.UUID { return e.id }

// Done returns a channel closed once the execution has settled, resolved
// or rejected.
func (e *Execution) Done() <-chan struct{} { return e.done }

// Wait blocks until the execution settles or ctx is done, whichever comes
// first, returning the final Results snapshot on success.
func (e *Execution) Wait(ctx context.Context) (map[string]any, error) {
	select {
	case <-e.done:
		return e.outcome()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (e *Execution) outcome() (map[string]any, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == executionRejected {
		return nil, e.err
	}
	return cloneMap(e.results), nil
}

// Stop requests that the process end successfully once its current
// thread(s) settle, per spec.md §4.2. Idempotent.
func (e *Execution) Stop() {
	e.send(controlSignal{kind: controlStop})
}

// Cancel requests that the process abort with a CancelError carrying data.
// Idempotent.
func (e *Execution) Cancel(data any) { e.cancelWith(data) }

// Update merges conditions into the process context and asks the logic to
// re-evaluate next actions (see Context.Update).
func (e *Execution) Update(conditions map[string]any) { e.update(conditions) }

// cancelWith requests that the process abort with a CancelError carrying
// data, per spec.md §4.2/§7. Idempotent.
func (e *Execution) cancelWith(data any) {
	e.send(controlSignal{kind: controlCancel, cancelData: data})
}

// stop is the Context-facing alias used by context.go.
func (e *Execution) stop() { e.Stop() }

// update merges conditions and asks the logic to re-evaluate, per spec.md
// §4.2 step 5.
func (e *Execution) update(conditions map[string]any) {
	e.send(controlSignal{kind: controlUpdate, conditions: conditions})
}

// send delivers a control signal to the driver goroutine, dropping it
// silently if the execution has already settled (idempotence per spec.md
// §4.2: "Stop/Cancel have no effect once the handle has settled").
func (e *Execution) send(sig controlSignal) {
	select {
	case <-e.done:
		return
	default:
	}
	select {
	case e.control <- sig:
	case <-e.done:
	}
}

// resolve settles the execution successfully with results, exactly once.
// Closing done is itself the fan-out to every waiter, the same
// close-to-release idiom signal.ManualReset.Set uses.
func (e *Execution) resolve(results map[string]any) {
	e.mu.Lock()
	if e.state != executionPending {
		e.mu.Unlock()
		return
	}
	e.state = executionResolved
	e.results = results
	e.mu.Unlock()
	close(e.done)
}

// reject settles the execution with an error, exactly once.
func (e *Execution) reject(err error) {
	e.mu.Lock()
	if e.state != executionPending {
		e.mu.Unlock()
		return
	}
	e.state = executionRejected
	e.err = err
	e.mu.Unlock()
	close(e.done)
}
