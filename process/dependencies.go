package process

// Dependencies is the workflow logic described by spec.md §3.2/§4.6: a
// mapping of action name to its prerequisite names. Both the initial and
// next selectors return every not-yet-started action all of whose
// prerequisites are completed; when every action has completed, it calls
// Context.Stop.
type Dependencies struct {
	deps map[string][]string
}

// NewDependencies constructs a Dependencies logic from a prerequisite map.
// An action with no entry in deps is treated as having no prerequisites.
//
// Per SPEC_FULL.md §5.3, this performs a topological feasibility scan over
// deps and returns ErrCyclicDependency if it finds a cycle - a process
// built on a cyclic map would otherwise never reach
// len(completed)==len(actions) and idle forever, exactly as spec.md §9
// documents as the alternative to a construction-time check.
func NewDependencies(deps map[string][]string) (*Dependencies, error) {
	if err := checkAcyclic(deps); err != nil {
		return nil, err
	}
	cloned := make(map[string][]string, len(deps))
	for name, prereqs := range deps {
		cloned[name] = append([]string(nil), prereqs...)
	}
	return &Dependencies{deps: cloned}, nil
}

// MustNewDependencies is like NewDependencies but panics on error,
// convenient for package-level or test construction where deps is a
// compile-time-known literal.
func MustNewDependencies(deps map[string][]string) *Dependencies {
	d, err := NewDependencies(deps)
	if err != nil {
		panic(err)
	}
	return d
}

func checkAcyclic(deps map[string][]string) error {
	const (
		unvisited = 0
		visiting  = 1
		visited   = 2
	)
	state := make(map[string]int, len(deps))

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case visited:
			return nil
		case visiting:
			return ErrCyclicDependency
		}
		state[name] = visiting
		for _, prereq := range deps[name] {
			if err := visit(prereq); err != nil {
				return err
			}
		}
		state[name] = visited
		return nil
	}

	for name := range deps {
		if err := visit(name); err != nil {
			return err
		}
	}
	return nil
}

// ContextFromArgs returns nil; Dependencies seeds no conditions from args.
func (d *Dependencies) ContextFromArgs([]any) map[string]any { return nil }

// InitialActions returns every action with no unmet prerequisites.
func (d *Dependencies) InitialActions(actions []*Action, ctx *Context) []*Action {
	return d.NextActions(actions, ctx)
}

// NextActions returns every not-yet-started action all of whose
// prerequisites are completed. When every action has completed, it calls
// ctx.Stop().
func (d *Dependencies) NextActions(actions []*Action, ctx *Context) []*Action {
	started, completed := ctx.snapshotStartedCompleted()
	startedSet := stringSet(started)
	completedSet := stringSet(completed)

	if len(actions) > 0 && len(completedSet) == len(actions) {
		ctx.Stop()
		return nil
	}

	var ready []*Action
	for _, a := range actions {
		if _, ok := startedSet[a.name]; ok {
			continue
		}
		if d.prereqsMet(a.name, completedSet) {
			ready = append(ready, a)
		}
	}
	return ready
}

func (d *Dependencies) prereqsMet(name string, completed map[string]struct{}) bool {
	for _, prereq := range d.deps[name] {
		if _, ok := completed[prereq]; !ok {
			return false
		}
	}
	return true
}

var _ Logic = (*Dependencies)(nil)
