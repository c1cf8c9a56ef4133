package process

// TransitionPredicate decides whether a Transition applies, given the
// process's current conditions. A nil predicate always applies.
type TransitionPredicate func(conditions map[string]any) bool

// Transition is one edge of a state machine's transition table, per
// spec.md §3.2/§4.7: from the action named From, move to the action named
// To, provided When (if set) returns true for the current conditions.
type Transition struct {
	From string
	To   string
	When TransitionPredicate
}

// Transitions is the state-machine logic described by spec.md §4.7: given a
// list of criteria describing edges between named actions, it starts at
// either an explicitly named initial state or the first action passed to
// New, and on every re-evaluation walks the criteria in order looking for
// the first edge whose From matches the last completed action and whose
// When predicate (if any) passes.
type Transitions struct {
	criteria          []Transition
	autoStopOnNoMatch bool
}

// TransitionsOption configures a Transitions logic at construction.
type TransitionsOption interface {
	applyTransitions(*Transitions)
}

type transitionsOptionFunc func(*Transitions)

func (f transitionsOptionFunc) applyTransitions(t *Transitions) { f(t) }

// WithAutoStopOnNoMatch controls what happens when no transition matches
// the current state and conditions. Per SPEC_FULL.md §5.4, the default
// (false) leaves the process running with no next actions - another
// Update may still supply conditions that make a transition match. Passing
// true instead calls Context.Stop, ending the process successfully the
// moment a dead end is reached.
func WithAutoStopOnNoMatch(enabled bool) TransitionsOption {
	return transitionsOptionFunc(func(t *Transitions) { t.autoStopOnNoMatch = enabled })
}

// NewTransitions constructs a Transitions logic from a transition table.
func NewTransitions(criteria []Transition, opts ...TransitionsOption) *Transitions {
	t := &Transitions{criteria: append([]Transition(nil), criteria...)}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyTransitions(t)
	}
	return t
}

// initialStateArg and initialConditionsArg scan args for the first string
// and first map[string]any respectively, per spec.md §6.3's "accepts an
// optional initial state name and an optional seed condition map".
func initialStateArg(args []any) (string, bool) {
	for _, a := range args {
		if s, ok := a.(string); ok {
			return s, true
		}
	}
	return "", false
}

func initialConditionsArg(args []any) map[string]any {
	for _, a := range args {
		if m, ok := a.(map[string]any); ok {
			return m
		}
	}
	return nil
}

// ContextFromArgs seeds conditions from the first map[string]any found in
// args, if any.
func (t *Transitions) ContextFromArgs(args []any) map[string]any {
	return initialConditionsArg(args)
}

// InitialActions returns the action named by the first string argument
// passed to Process.Start, if one matches; otherwise the first action in
// actions, per spec.md §4.7.
func (t *Transitions) InitialActions(actions []*Action, ctx *Context) []*Action {
	if len(actions) == 0 {
		return nil
	}
	if name, ok := initialStateArg(ctx.Args()); ok {
		if a := byName(actions)[name]; a != nil {
			return []*Action{a}
		}
	}
	return []*Action{actions[0]}
}

// NextActions finds the first transition whose From names the most
// recently completed action and whose When predicate, if any, accepts the
// current conditions, then returns the single action it names as To. If no
// transition matches, it returns nil, optionally calling ctx.Stop first
// per WithAutoStopOnNoMatch.
func (t *Transitions) NextActions(actions []*Action, ctx *Context) []*Action {
	completed := ctx.Completed()
	if len(completed) == 0 {
		return nil
	}
	from := completed[len(completed)-1]
	conditions := ctx.Conditions()
	index := byName(actions)

	for _, tr := range t.criteria {
		if tr.From != from {
			continue
		}
		if tr.When != nil && !tr.When(conditions) {
			continue
		}
		if a := index[tr.To]; a != nil {
			return []*Action{a}
		}
	}

	if t.autoStopOnNoMatch {
		ctx.Stop()
	}
	return nil
}

var _ Logic = (*Transitions)(nil)
