package process

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestContext() *Context {
	return newContext(nil, nil, newExecution())
}

func TestRun_SuccessReturnsNil(t *testing.T) {
	pctx := newTestContext()
	a := NewAction("a", func(ctx context.Context, f *Frame) (any, error) {
		return "ok", nil
	})
	require.NoError(t, Run(context.Background(), a, pctx, true))
}

func TestRun_RetryRecovers(t *testing.T) {
	pctx := newTestContext()
	attempts := 0
	a := NewAction("a",
		func(ctx context.Context, f *Frame) (any, error) {
			attempts++
			if attempts < 3 {
				return nil, errors.New("transient")
			}
			return "ok", nil
		},
		WithRetry(func(ctx context.Context, f *Frame, err error) error {
			return nil // resolve -> re-attempt execute
		}),
	)
	require.NoError(t, Run(context.Background(), a, pctx, true))
	require.Equal(t, 3, attempts)
}

func TestRun_RetryRejectsAborts(t *testing.T) {
	pctx := newTestContext()
	sentinel := errors.New("fatal")
	a := NewAction("a", func(ctx context.Context, f *Frame) (any, error) {
		return nil, sentinel
	})
	err := Run(context.Background(), a, pctx, true)
	require.Error(t, err)
	var actionErr *ActionError
	require.ErrorAs(t, err, &actionErr)
	require.Equal(t, "a", actionErr.Action)
	require.ErrorIs(t, err, sentinel)
}

func TestRun_InitErrorSkipsExecute(t *testing.T) {
	pctx := newTestContext()
	executed := false
	initErr := errors.New("init failed")
	a := NewAction("a",
		func(ctx context.Context, f *Frame) (any, error) {
			executed = true
			return nil, nil
		},
		WithInit(func(ctx context.Context, f *Frame) error {
			return initErr
		}),
	)
	err := Run(context.Background(), a, pctx, true)
	require.Error(t, err)
	require.False(t, executed)
}

func TestRun_SkipsInitWhenNotInitializing(t *testing.T) {
	pctx := newTestContext()
	initCalled := false
	a := NewAction("a",
		func(ctx context.Context, f *Frame) (any, error) {
			return nil, nil
		},
		WithInit(func(ctx context.Context, f *Frame) error {
			initCalled = true
			return nil
		}),
	)
	require.NoError(t, Run(context.Background(), a, pctx, false))
	require.False(t, initCalled)
}
