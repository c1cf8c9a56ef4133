package process

import "sync"

// Context is the per-process-invocation frame passed to every hook of every
// action in a single process invocation, per spec.md §3.2. All fields are
// accessed through methods so that the engine can enforce the mutation
// rules spec.md §5 documents: Results/Started/Completed are appended only by
// the engine, Conditions is merged only via Update, Args is read-only after
// creation.
type Context struct {
	mu         sync.Mutex
	args       []any
	conditions map[string]any
	results    map[string]any
	started    []string
	completed  []string

	exec *Execution
}

func newContext(args []any, seed map[string]any, exec *Execution) *Context {
	conditions := make(map[string]any, len(seed))
	for k, v := range seed {
		conditions[k] = v
	}
	return &Context{
		args:       args,
		conditions: conditions,
		results:    make(map[string]any),
		exec:       exec,
	}
}

// Args returns the arguments the caller passed to Process.Start. The
// returned slice must not be mutated.
func (c *Context) Args() []any {
	return c.args
}

// Conditions returns a snapshot of the current condition map.
func (c *Context) Conditions() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneMap(c.conditions)
}

// Results returns a snapshot of the accumulated execute() return values,
// keyed by action name.
func (c *Context) Results() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneMap(c.results)
}

// Started returns a snapshot of the names of actions whose execute phase
// has begun, in start order.
func (c *Context) Started() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.started...)
}

// Completed returns a snapshot of the names of actions whose execute phase
// has completed successfully, in completion order.
func (c *Context) Completed() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.completed...)
}

// Running returns started-minus-completed: the names of actions whose
// execute phase is currently in flight.
func (c *Context) Running() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return runningSet(c.started, c.completed)
}

// Stop ends the process successfully once the current thread settles, per
// spec.md §4.2. Idempotent; has no effect if the execution has already
// settled.
func (c *Context) Stop() {
	c.exec.stop()
}

// Cancel aborts the process with a CancelError carrying data, per spec.md
// §4.2/§7. Idempotent; has no effect if the execution has already settled.
func (c *Context) Cancel(data any) {
	c.exec.cancelWith(data)
}

// Update merges conditions into the context and asks the logic to
// re-evaluate next actions, per spec.md §4.2 step 5 and §5's reentrancy
// note. A nil map is a pure re-evaluation trigger.
func (c *Context) Update(conditions map[string]any) {
	c.exec.update(conditions)
}

func (c *Context) markStarted(name string) {
	c.mu.Lock()
	c.started = append(c.started, name)
	c.mu.Unlock()
}

func (c *Context) markCompleted(name string, result any) {
	c.mu.Lock()
	c.completed = append(c.completed, name)
	c.results[name] = result
	c.mu.Unlock()
}

func (c *Context) mergeConditions(conditions map[string]any) {
	if len(conditions) == 0 {
		return
	}
	c.mu.Lock()
	for k, v := range conditions {
		c.conditions[k] = v
	}
	c.mu.Unlock()
}

func (c *Context) snapshotStartedCompleted() (started, completed []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.started...), append([]string(nil), c.completed...)
}

// Frame is the "this-like" call frame passed to an individual action's hook
// methods: the shared Context, non-destructively merged with that action's
// own top-level Extras (per spec.md §3.2's "action's own top-level
// fields... this lets actions declare instance data alongside their
// hooks").
type Frame struct {
	*Context
	// Name is the action's own name, for convenience inside hooks that are
	// shared across multiple Action values.
	Name string
	// Extras holds the action's own instance data, as declared via
	// WithExtra at Action construction (nil if none was declared). It is
	// the Action's own map, not a copy: it is not shared with other
	// actions, but the same map is passed to every hook call of this
	// action in every invocation of the process.
	Extras map[string]any
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func runningSet(started, completed []string) []string {
	done := make(map[string]struct{}, len(completed))
	for _, name := range completed {
		done[name] = struct{}{}
	}
	var running []string
	for _, name := range started {
		if _, ok := done[name]; !ok {
			running = append(running, name)
		}
	}
	return running
}
