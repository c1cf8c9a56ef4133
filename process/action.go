package process

import "context"

type (
	// InitFunc is an action's per-invocation setup hook, run once before the
	// first Execute. The default is a no-op.
	InitFunc func(ctx context.Context, f *Frame) error

	// ExecuteFunc is an action's business logic. Its return value is stored
	// under the action's name in Context.Results. The default returns
	// (nil, nil).
	ExecuteFunc func(ctx context.Context, f *Frame) (any, error)

	// RetryFunc is invoked when Execute fails. Returning nil re-attempts
	// Execute; returning an error aborts the process. The default returns
	// err unmodified (no retry).
	RetryFunc func(ctx context.Context, f *Frame, err error) error

	// RollbackFunc runs after process abort, for every action whose name is
	// in Context.Started. Fire-and-forget: nothing waits for it and it
	// affects nothing else. The default is a no-op.
	RollbackFunc func(ctx context.Context, f *Frame, err error)

	// FailureFunc runs on every action when the process rejects, whether or
	// not that action ever started. Fire-and-forget. The default is a
	// no-op.
	FailureFunc func(ctx context.Context, f *Frame, err error)

	// SuccessFunc runs on every action when the process resolves.
	// Fire-and-forget. The default is a no-op.
	SuccessFunc func(ctx context.Context, f *Frame)
)

// Action is a named unit of work with up to six hook methods, per spec.md
// §3.2. Names are unique within a Process; constructing two actions with
// the same name and passing both to New is not an error - the first
// occurrence wins (spec.md §4.2 step 1).
//
// Construct with NewAction; the zero value has no usable name.
type Action struct {
	name     string
	init     InitFunc
	execute  ExecuteFunc
	retry    RetryFunc
	rollback RollbackFunc
	failure  FailureFunc
	success  SuccessFunc
	extras   map[string]any
}

// Name returns the action's unique name.
func (a *Action) Name() string { return a.name }

// ActionOption configures an Action at construction, following the
// teacher's functional-options-over-an-interface pattern
// (eventloop.LoopOption).
type ActionOption interface {
	applyAction(*Action)
}

type actionOptionFunc func(*Action)

func (f actionOptionFunc) applyAction(a *Action) { f(a) }

// WithInit sets the action's Init hook.
func WithInit(fn InitFunc) ActionOption {
	return actionOptionFunc(func(a *Action) { a.init = fn })
}

// WithRetry sets the action's Retry hook.
func WithRetry(fn RetryFunc) ActionOption {
	return actionOptionFunc(func(a *Action) { a.retry = fn })
}

// WithRollback sets the action's Rollback hook.
func WithRollback(fn RollbackFunc) ActionOption {
	return actionOptionFunc(func(a *Action) { a.rollback = fn })
}

// WithFailure sets the action's Failure hook.
func WithFailure(fn FailureFunc) ActionOption {
	return actionOptionFunc(func(a *Action) { a.failure = fn })
}

// WithSuccess sets the action's Success hook.
func WithSuccess(fn SuccessFunc) ActionOption {
	return actionOptionFunc(func(a *Action) { a.success = fn })
}

// WithExtra attaches a piece of per-action instance data, merged into the
// Frame passed to every hook call for this action (spec.md §3.2: "This lets
// actions declare instance data... alongside their hooks"). Calling it more
// than once with the same key overwrites the previous value.
func WithExtra(key string, value any) ActionOption {
	return actionOptionFunc(func(a *Action) {
		if a.extras == nil {
			a.extras = make(map[string]any)
		}
		a.extras[key] = value
	})
}

// NewAction constructs an Action named name with the given execute function
// (spec.md §6.2's "accepts either a single function, treated as execute, or
// a partial hook map" - opts is the Go-idiomatic equivalent of the partial
// hook map). execute may be nil, in which case Execute defaults to a no-op
// returning (nil, nil).
func NewAction(name string, execute ExecuteFunc, opts ...ActionOption) *Action {
	a := &Action{
		name:    name,
		execute: execute,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyAction(a)
	}
	return a
}

func (a *Action) frame(ctx *Context) *Frame {
	return &Frame{Context: ctx, Name: a.name, Extras: a.extras}
}

func (a *Action) runInit(ctx context.Context, f *Frame) error {
	if a.init == nil {
		return nil
	}
	return a.init(ctx, f)
}

func (a *Action) runExecute(ctx context.Context, f *Frame) (any, error) {
	if a.execute == nil {
		return nil, nil
	}
	return a.execute(ctx, f)
}

func (a *Action) runRetry(ctx context.Context, f *Frame, err error) error {
	if a.retry == nil {
		return err
	}
	return a.retry(ctx, f, err)
}

func (a *Action) runRollback(ctx context.Context, f *Frame, err error) {
	if a.rollback == nil {
		return
	}
	a.rollback(ctx, f, err)
}

func (a *Action) runFailure(ctx context.Context, f *Frame, err error) {
	if a.failure == nil {
		return
	}
	a.failure(ctx, f, err)
}

func (a *Action) runSuccess(ctx context.Context, f *Frame) {
	if a.success == nil {
		return
	}
	a.success(ctx, f)
}
