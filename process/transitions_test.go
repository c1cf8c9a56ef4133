package process_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joeycumines/go-asyncflow/process"
)

// newS6Process builds spec scenario S6: a state machine start -> show ->
// work -> stop, where the transition from show to work is conditional on
// conditions["needed"], and the stop action itself calls Context.Stop().
func newS6Process(t *testing.T) *process.Process {
	t.Helper()

	mk := func(name string) *process.Action {
		return process.NewAction(name, func(ctx context.Context, f *process.Frame) (any, error) {
			if name == "stop" {
				f.Stop()
			}
			return name, nil
		})
	}

	needed := func(conditions map[string]any) bool {
		v, _ := conditions["needed"].(bool)
		return v
	}

	logic := process.NewTransitions([]process.Transition{
		{From: "start", To: "show"},
		{From: "show", To: "work", When: needed},
		{From: "show", To: "stop"},
		{From: "work", To: "stop"},
	})

	return process.New("machine", []*process.Action{
		mk("start"), mk("show"), mk("work"), mk("stop"),
	}, logic)
}

func TestTransitions_S6_WithoutCondition(t *testing.T) {
	p := newS6Process(t)
	exec := p.Start()
	results, err := exec.Wait(context.Background())
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"start", "show", "stop"}, keysOf(results))
}

func TestTransitions_S6_WithCondition(t *testing.T) {
	p := newS6Process(t)
	exec := p.Start(map[string]any{"needed": true})
	results, err := exec.Wait(context.Background())
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"start", "show", "work", "stop"}, keysOf(results))
}

func TestTransitions_NamedInitialState(t *testing.T) {
	p := newS6Process(t)
	exec := p.Start("show", map[string]any{"needed": true})
	results, err := exec.Wait(context.Background())
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"show", "work", "stop"}, keysOf(results))
}

func TestTransitions_NoMatchIdlesUntilUpdate(t *testing.T) {
	start := process.NewAction("start", func(ctx context.Context, f *process.Frame) (any, error) {
		return nil, nil
	})
	done := process.NewAction("done", func(ctx context.Context, f *process.Frame) (any, error) {
		f.Stop()
		return nil, nil
	})

	needed := func(conditions map[string]any) bool {
		v, _ := conditions["go"].(bool)
		return v
	}

	logic := process.NewTransitions([]process.Transition{
		{From: "start", To: "done", When: needed},
	})
	p := process.New("waits-for-update", []*process.Action{start, done}, logic)
	exec := p.Start()

	select {
	case <-exec.Done():
		t.Fatal("execution settled before an update supplied the needed condition")
	default:
	}

	exec.Update(map[string]any{"go": true})
	_, err := exec.Wait(context.Background())
	require.NoError(t, err)
}

func keysOf(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
