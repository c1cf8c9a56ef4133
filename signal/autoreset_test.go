package signal_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joeycumines/go-asyncflow/signal"
)

// S2 from spec.md §8: three waits appending 1,2,3; Set called three times
// with a yield between each releases exactly one waiter per call, in FIFO
// order.
func TestAutoReset_S2(t *testing.T) {
	a := signal.NewAutoReset(false)

	var mu sync.Mutex
	var order []int

	ch1, ch2, ch3 := a.Wait(), a.Wait(), a.Wait()
	done1 := make(chan struct{})
	done2 := make(chan struct{})
	done3 := make(chan struct{})
	go func() { <-ch1; mu.Lock(); order = append(order, 1); mu.Unlock(); close(done1) }()
	go func() { <-ch2; mu.Lock(); order = append(order, 2); mu.Unlock(); close(done2) }()
	go func() { <-ch3; mu.Lock(); order = append(order, 3); mu.Unlock(); close(done3) }()

	a.Set()
	<-done1
	mu.Lock()
	require.Equal(t, []int{1}, order)
	mu.Unlock()

	a.Set()
	<-done2
	mu.Lock()
	require.Equal(t, []int{1, 2}, order)
	mu.Unlock()

	a.Set()
	<-done3
	mu.Lock()
	require.Equal(t, []int{1, 2, 3}, order)
	mu.Unlock()

	// Extra Set with no pending waiter leaves signaled=true.
	a.Set()
	require.True(t, a.Signaled())
	select {
	case <-a.Wait():
	default:
		t.Fatal("expected immediate resolution after extra Set")
	}
}

func TestAutoReset_AtMostOnePerSet(t *testing.T) {
	a := signal.NewAutoReset(false)
	ch1 := a.Wait()
	ch2 := a.Wait()

	a.Set()
	<-ch1

	select {
	case <-ch2:
		t.Fatal("second waiter must not be released by a single Set")
	default:
	}

	a.Set()
	<-ch2
}

func TestAutoReset_InitialSignaledPassesOnce(t *testing.T) {
	a := signal.NewAutoReset(true)
	select {
	case <-a.Wait():
	default:
		t.Fatal("expected immediate pass on initial signaled state")
	}
	select {
	case <-a.Wait():
		t.Fatal("gate should have auto-reset after the first pass")
	default:
	}
}
