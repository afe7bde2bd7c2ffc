// Package state provides a single-writer observable snapshot holder. The
// owning controller replaces the whole snapshot; subscribers receive every
// replacement through a buffered channel with drop-oldest delivery, so a slow
// subscriber never blocks the writer and always ends up with the latest value.
package state

import "sync"

// Holder owns a snapshot of type T and notifies subscribers when it is
// replaced.
type Holder[T any] struct {
	mu      sync.Mutex
	current T
	subs    map[int]chan T
	nextID  int
	closed  bool
}

// NewHolder creates a holder with the given initial snapshot.
func NewHolder[T any](initial T) *Holder[T] {
	return &Holder[T]{current: initial, subs: make(map[int]chan T)}
}

// Get returns the current snapshot.
func (h *Holder[T]) Get() T {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Set replaces the snapshot wholesale and notifies every subscriber. If a
// subscriber's buffer is full the stale pending value is dropped in favour of
// the new one.
func (h *Holder[T]) Set(snapshot T) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.current = snapshot
	for _, ch := range h.subs {
		select {
		case ch <- snapshot:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snapshot
		}
	}
}

// Update applies fn to the current snapshot under the holder's lock and
// publishes the result. The read-modify-write is atomic with respect to other
// Update and Set calls.
func (h *Holder[T]) Update(fn func(T) T) T {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return h.current
	}
	h.current = fn(h.current)
	for _, ch := range h.subs {
		select {
		case ch <- h.current:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- h.current
		}
	}
	return h.current
}

// Subscribe registers a subscriber. The current snapshot is delivered
// immediately, so late subscribers start from the latest state. The returned
// cancel function removes the subscription and closes the channel.
func (h *Holder[T]) Subscribe() (<-chan T, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan T, 1)
	id := h.nextID
	h.nextID++

	if h.closed {
		close(ch)
		return ch, func() {}
	}

	h.subs[id] = ch
	ch <- h.current

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Close tears the holder down, closing all subscriber channels. Further Set
// and Update calls are ignored.
func (h *Holder[T]) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
