package process

import (
	"errors"
	"fmt"
)

// ErrCyclicDependency is returned by NewDependencies when the supplied
// prerequisite map contains a cycle, per SPEC_FULL.md §5.3: a cyclic
// dependency graph would otherwise never satisfy its actions' prerequisites
// and the process would idle forever once started.
var ErrCyclicDependency = errors.New("process: dependency graph contains a cycle")

// ActionError decorates the error that aborted a process, per spec.md §6's
// error decoration contract and §4.4's abort sequence. It is never
// constructed by caller code; it is attached to the error returned by a
// rejected Execution.
//
// Modeled after eventloop/errors.go's TypeError/RangeError shape: a
// message-bearing struct with a Cause, satisfying Unwrap so errors.As/
// errors.Is see through to the original action error.
type ActionError struct {
	// Cause is the original error returned by the action's execute/retry
	// hooks.
	Cause error
	// Action is the name of the action whose execute/retry rejected.
	Action string
	// Process is the name of the process that aborted.
	Process string
	// Completed is a snapshot of context.completed at the time of abort.
	Completed []string
	// Running is a snapshot of started-minus-completed at the time of
	// abort.
	Running []string
}

// Error implements the error interface.
func (e *ActionError) Error() string {
	return fmt.Sprintf("process %q: action %q failed: %v", e.Process, e.Action, e.Cause)
}

// Unwrap returns the original error, for errors.Is/errors.As.
func (e *ActionError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *ActionError, regardless of contents -
// matching eventloop/abort.go's AbortError.Is pattern.
func (e *ActionError) Is(target error) bool {
	_, ok := target.(*ActionError)
	return ok
}

// CancelError is the rejection reason produced by Execution.Cancel, per
// spec.md §4.2/§7. It wraps an *ActionError (completed/running are still
// reported on cancellation) and carries the caller-supplied data.
type CancelError struct {
	*ActionError
	// Data is whatever was passed to Execution.Cancel.
	Data any
}

// Error implements the error interface.
func (e *CancelError) Error() string {
	return "process cancelled"
}

// Unwrap returns the wrapped *ActionError, so errors.As with a
// **ActionError target finds the completed/running snapshot, and a further Unwrap reaches the
// original cause, if any.
func (e *CancelError) Unwrap() error {
	return e.ActionError
}

// Is reports whether target is a *CancelError, regardless of contents.
func (e *CancelError) Is(target error) bool {
	_, ok := target.(*CancelError)
	return ok
}
