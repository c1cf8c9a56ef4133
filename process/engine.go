package process

import "context"

// Process is a named set of actions run under a Logic, per spec.md §3.2/
// §4.2. Construct with New; run with Start. The driver loop it spawns
// follows microbatch/microbatch.go's single-goroutine ping/pong idiom:
// one goroutine owns all scheduling state, driven entirely by select over
// an action-completion channel and a control-signal channel, so no locks
// are needed around the scheduling decision itself.
type Process struct {
	name    string
	actions []*Action
	logic   Logic
	logger  *Logger
}

// New constructs a Process. Actions are deduplicated by name, first
// occurrence wins, per spec.md §4.2 step 1. A nil logic is treated as
// an always-idle default (see Logic's doc comment).
func New(name string, actions []*Action, logic Logic, opts ...ProcessOption) *Process {
	p := &Process{
		name:    name,
		actions: dedupeActions(actions),
		logic:   resolveLogic(logic),
		logger:  getDefaultLogger(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyProcess(p)
	}
	return p
}

func dedupeActions(actions []*Action) []*Action {
	seen := make(map[string]struct{}, len(actions))
	out := make([]*Action, 0, len(actions))
	for _, a := range actions {
		if _, ok := seen[a.name]; ok {
			continue
		}
		seen[a.name] = struct{}{}
		out = append(out, a)
	}
	return out
}

// Start begins one invocation of the process with args, returning
// immediately with a controllable Execution handle, per spec.md §4.2/§6.3.
func (p *Process) Start(args ...any) *Execution {
	exec := newExecution()
	seed := p.logic.ContextFromArgs(args)
	pctx := newContext(args, seed, exec)
	go p.drive(pctx, exec)
	return exec
}

// actionOutcome is what an action thread reports back to the driver.
type actionOutcome struct {
	name   string
	result any
	err    error
}

// drive is the single goroutine that owns every scheduling decision for
// one process invocation, per spec.md §4.2-§4.7.
func (p *Process) drive(pctx *Context, exec *Execution) {
	// Buffered to the total action count: every thread this invocation can
	// ever launch fits, so a send never blocks even after drive has
	// returned (e.g. a straggling action finishing after abort/stop), and
	// no goroutine is ever leaked waiting on a receiver that stopped
	// listening.
	doneCh := make(chan actionOutcome, len(p.actions))

	active := 0
	stopRequested := false

	p.logger.Info().Str("process", p.name).Str("id", exec.ID().String()).Log("process started")

	start := func(a *Action) {
		pctx.markStarted(a.name)
		active++
		p.logger.Debug().Str("process", p.name).Str("action", a.name).Log("action started")
		go func() {
			result, err := runAction(context.Background(), a, pctx, true)
			doneCh <- actionOutcome{name: a.name, result: result, err: err}
		}()
	}

	resolveNow := func() {
		p.logger.Info().Str("process", p.name).Log("process resolved")
		exec.resolve(pctx.Results())
		p.runSuccessHooks(pctx)
	}

	// schedule starts every action next names and reports whether the
	// process is now idle and should settle. Resolution on idle is driven
	// entirely by stopRequested, not merely by next being empty: per
	// spec.md §4.5/§4.6, reaching idle with nothing further offered is a
	// real, non-terminal "idle-between" state for transitions logic, and
	// even dependencies logic only resolves because it calls
	// Context.Stop() itself once every action has completed (spec.md
	// §4.6's "running-n -> resolved: ... logic triggers stop()"). An
	// engine-automatic idle-resolve would wrongly end a state machine the
	// first time a transition doesn't match.
	schedule := func(next []*Action) (settled bool) {
		for _, a := range next {
			start(a)
		}
		if active == 0 && stopRequested {
			resolveNow()
			return true
		}
		return false
	}

	if len(p.actions) == 0 {
		resolveNow()
		return
	}

	if schedule(p.logic.InitialActions(p.actions, pctx)) {
		return
	}

	for {
		select {
		case outcome := <-doneCh:
			active--
			if outcome.err != nil {
				err := decorateError(outcome.name, p.name, pctx, outcome.err)
				p.logger.Warning().Str("process", p.name).Str("action", outcome.name).Err(err).Log("action failed")
				p.abort(pctx, exec, err)
				return
			}
			pctx.markCompleted(outcome.name, outcome.result)
			p.logger.Debug().Str("process", p.name).Str("action", outcome.name).Log("action completed")

			if stopRequested {
				if active == 0 {
					resolveNow()
					return
				}
				continue
			}
			// Per spec.md §4.2 step 4, every completion - not just the one
			// that drops active to zero - re-queries the logic, so a
			// dependency with multiple in-flight siblings (spec.md S5)
			// starts its successor as soon as its own prerequisites are
			// met, without waiting for the others.
			if schedule(p.logic.NextActions(p.actions, pctx)) {
				return
			}

		case sig := <-exec.control:
			switch sig.kind {
			case controlStop:
				p.logger.Info().Str("process", p.name).Log("process stop requested")
				stopRequested = true
				if active == 0 {
					resolveNow()
					return
				}

			case controlCancel:
				err := &CancelError{
					ActionError: decorateError("", p.name, pctx, nil),
					Data:        sig.cancelData,
				}
				p.logger.Warning().Str("process", p.name).Log("process cancelled")
				p.abort(pctx, exec, err)
				return

			case controlUpdate:
				pctx.mergeConditions(sig.conditions)
				p.logger.Debug().Str("process", p.name).Log("process conditions updated")
				// Per spec.md §5's reentrancy note, Update only triggers
				// re-selection when no thread is active; while threads are
				// running, the merged conditions simply become visible to
				// the next completion-triggered NextActions call above.
				if active == 0 {
					if schedule(p.logic.NextActions(p.actions, pctx)) {
						return
					}
				}
			}
		}
	}
}

// abort runs the rollback/failure sequence fire-and-forget and rejects
// exec immediately, without waiting for any still-running action thread,
// per spec.md §4.4/§5 (cancellation "simply stops scheduling new actions
// and treats the promise as rejected").
func (p *Process) abort(pctx *Context, exec *Execution, err error) {
	started := stringSet(pctx.Started())

	for _, a := range p.actions {
		if _, ok := started[a.name]; ok {
			go a.runRollback(context.Background(), a.frame(pctx), err)
		}
	}
	for _, a := range p.actions {
		go a.runFailure(context.Background(), a.frame(pctx), err)
	}

	p.logger.Err().Str("process", p.name).Err(err).Log("process rejected")
	exec.reject(err)
}

func (p *Process) runSuccessHooks(pctx *Context) {
	for _, a := range p.actions {
		go a.runSuccess(context.Background(), a.frame(pctx))
	}
}

func decorateError(actionName, process string, pctx *Context, cause error) *ActionError {
	started, completed := pctx.snapshotStartedCompleted()
	return &ActionError{
		Cause:     cause,
		Action:    actionName,
		Process:   process,
		Completed: completed,
		Running:   runningSet(started, completed),
	}
}
