package state

import (
	"testing"
	"time"
)

func recv(t *testing.T, ch <-chan int) int {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
		return 0
	}
}

func TestSubscriberGetsCurrentSnapshotImmediately(t *testing.T) {
	h := NewHolder(42)
	ch, cancel := h.Subscribe()
	defer cancel()

	if got := recv(t, ch); got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

func TestSetNotifiesAndCoalesces(t *testing.T) {
	h := NewHolder(0)
	ch, cancel := h.Subscribe()
	defer cancel()
	recv(t, ch) // initial

	// A slow subscriber only ever sees the latest value.
	h.Set(1)
	h.Set(2)
	h.Set(3)

	if got := recv(t, ch); got != 3 {
		t.Fatalf("got %d, want latest snapshot 3", got)
	}
	if got := h.Get(); got != 3 {
		t.Fatalf("Get() = %d, want 3", got)
	}
}

func TestUpdateIsAtomic(t *testing.T) {
	h := NewHolder(0)
	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			for j := 0; j < 250; j++ {
				h.Update(func(v int) int { return v + 1 })
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}
	if got := h.Get(); got != 1000 {
		t.Fatalf("lost updates: got %d, want 1000", got)
	}
}

func TestCancelAndClose(t *testing.T) {
	h := NewHolder(0)
	ch1, cancel1 := h.Subscribe()
	recv(t, ch1)
	cancel1()
	if _, ok := <-ch1; ok {
		t.Fatal("cancelled subscription channel should be closed")
	}

	ch2, _ := h.Subscribe()
	recv(t, ch2)
	h.Close()
	if _, ok := <-ch2; ok {
		t.Fatal("Close should close subscriber channels")
	}

	h.Set(9)
	if got := h.Get(); got != 0 {
		t.Fatalf("Set after Close should be ignored, got %d", got)
	}
}
