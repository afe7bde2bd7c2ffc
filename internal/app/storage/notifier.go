package storage

import (
	"context"
	"sync"
)

// Notifier fans a change signal out to any number of watchers. Each watcher
// gets a buffered channel; a signal that arrives while the buffer is full is
// coalesced with the pending one, so slow watchers never block writers.
type Notifier struct {
	mu       sync.Mutex
	watchers map[chan struct{}]struct{}
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{watchers: make(map[chan struct{}]struct{})}
}

// Watch registers a watcher bound to ctx. The channel is closed once ctx is
// cancelled.
func (n *Notifier) Watch(ctx context.Context) <-chan struct{} {
	ch := make(chan struct{}, 1)

	n.mu.Lock()
	n.watchers[ch] = struct{}{}
	n.mu.Unlock()

	go func() {
		<-ctx.Done()
		n.mu.Lock()
		delete(n.watchers, ch)
		n.mu.Unlock()
		close(ch)
	}()

	return ch
}

// Notify signals all registered watchers.
func (n *Notifier) Notify() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
