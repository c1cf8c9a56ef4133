package process_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/joeycumines/go-asyncflow/process"
)

// TestRollback_S7 is spec scenario S7: workflow X, Y, Z with Z depending
// on X. Y's execute (and its retry) always fails, so the process aborts
// before Z - whose only prerequisite, X, does complete - ever gets a
// chance to start. Rollback must run for X and Y (both started) but not
// Z; failure must run for all three; success must never run.
func TestRollback_S7(t *testing.T) {
	var mu sync.Mutex
	var rolledBack []string
	var failed []string
	var succeeded []string

	record := func(dst *[]string, name string) {
		mu.Lock()
		*dst = append(*dst, name)
		mu.Unlock()
	}

	yFail := errors.New("y-fail")

	x := process.NewAction("X",
		func(ctx context.Context, f *process.Frame) (any, error) {
			// Slow enough that Y's synchronous failure is always
			// processed by the driver first, so Z - gated on X - never
			// becomes eligible before the process aborts.
			time.Sleep(20 * time.Millisecond)
			return "x-result", nil
		},
		process.WithRollback(func(ctx context.Context, f *process.Frame, err error) {
			record(&rolledBack, "X")
		}),
		process.WithFailure(func(ctx context.Context, f *process.Frame, err error) {
			record(&failed, "X")
		}),
		process.WithSuccess(func(ctx context.Context, f *process.Frame) {
			record(&succeeded, "X")
		}),
	)

	y := process.NewAction("Y",
		func(ctx context.Context, f *process.Frame) (any, error) {
			return nil, yFail
		},
		process.WithRetry(func(ctx context.Context, f *process.Frame, err error) error {
			return err
		}),
		process.WithRollback(func(ctx context.Context, f *process.Frame, err error) {
			record(&rolledBack, "Y")
		}),
		process.WithFailure(func(ctx context.Context, f *process.Frame, err error) {
			record(&failed, "Y")
		}),
		process.WithSuccess(func(ctx context.Context, f *process.Frame) {
			record(&succeeded, "Y")
		}),
	)

	z := process.NewAction("Z",
		func(ctx context.Context, f *process.Frame) (any, error) {
			return "z-result", nil
		},
		process.WithRollback(func(ctx context.Context, f *process.Frame, err error) {
			record(&rolledBack, "Z")
		}),
		process.WithFailure(func(ctx context.Context, f *process.Frame, err error) {
			record(&failed, "Z")
		}),
		process.WithSuccess(func(ctx context.Context, f *process.Frame) {
			record(&succeeded, "Z")
		}),
	)

	logic := process.MustNewDependencies(map[string][]string{
		"Z": {"X"},
	})

	p := process.New("rollback-workflow", []*process.Action{x, y, z}, logic)
	exec := p.Start()

	_, err := exec.Wait(context.Background())
	require.Error(t, err)

	var actionErr *process.ActionError
	require.ErrorAs(t, err, &actionErr)
	require.Equal(t, "Y", actionErr.Action)
	require.ErrorIs(t, err, yFail)

	// Fire-and-forget hooks run on their own goroutines; give them a
	// moment to land before asserting on the recorded slices.
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(failed) == 3
	}, time.Second, time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.ElementsMatch(t, []string{"X", "Y"}, rolledBack)
	require.ElementsMatch(t, []string{"X", "Y", "Z"}, failed)
	require.Empty(t, succeeded)
}
