package process

// Logic decides which actions a Process runs, initially and after each
// completion or Update, per spec.md §3.2. A nil Logic is treated as the
// zero-value default: InitialActions and NextActions both return nothing,
// and ContextFromArgs seeds no extra conditions - the process would idle
// immediately (useful mainly for tests of the engine's idle/Stop/Cancel
// paths in isolation).
type Logic interface {
	// InitialActions returns which actions to start with.
	InitialActions(actions []*Action, ctx *Context) []*Action
	// NextActions returns which actions to run after any action completes,
	// or after Context.Update is called.
	NextActions(actions []*Action, ctx *Context) []*Action
	// ContextFromArgs returns initial extras merged into the context's
	// conditions, derived from the arguments passed to Process.Start.
	ContextFromArgs(args []any) map[string]any
}

// noopLogic implements Logic with every method returning its zero value; it
// backs a nil Logic passed to New.
type noopLogic struct{}

func (noopLogic) InitialActions([]*Action, *Context) []*Action { return nil }
func (noopLogic) NextActions([]*Action, *Context) []*Action    { return nil }
func (noopLogic) ContextFromArgs([]any) map[string]any         { return nil }

func resolveLogic(logic Logic) Logic {
	if logic == nil {
		return noopLogic{}
	}
	return logic
}

// byName indexes actions by name for logic implementations that need
// name-based lookups (dependencies.go, transitions.go).
func byName(actions []*Action) map[string]*Action {
	m := make(map[string]*Action, len(actions))
	for _, a := range actions {
		m[a.name] = a
	}
	return m
}

// stringSet builds a lookup set from a string slice.
func stringSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
