package process

import "context"

// Run executes a single action's exec-phase against pctx: init (if
// initialize is true) then an execute/retry loop, exactly as spec.md §6.5
// describes. It returns nil on success; on failure it returns an
// *ActionError decorating the final error with the action/completed/
// running tags; its Process field is empty, since Run is not given a
// process name. Post-exec hooks
// (rollback/failure/success) are never invoked here - that is the
// engine's job, not this primitive's.
//
// Run is what the engine calls internally for every action thread; it is
// also exported for tests and advanced composition that want a single
// action's core behaviour without the rest of the engine.
func Run(ctx context.Context, action *Action, pctx *Context, initialize bool) error {
	_, err := runAction(ctx, action, pctx, initialize)
	if err == nil {
		return nil
	}
	return decorateError(action.name, "", pctx, err)
}

// runAction is the unexported core used by both Run and the engine: it
// returns the execute result alongside the raw (undecorated) error so the
// engine can store results and decorate errors with the process name it
// alone knows.
func runAction(ctx context.Context, action *Action, pctx *Context, initialize bool) (any, error) {
	f := action.frame(pctx)

	if initialize {
		if err := action.runInit(ctx, f); err != nil {
			return nil, err
		}
	}

	for {
		result, err := action.runExecute(ctx, f)
		if err == nil {
			return result, nil
		}
		if retryErr := action.runRetry(ctx, f, err); retryErr != nil {
			return nil, retryErr
		}
	}
}
