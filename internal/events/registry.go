package events

import (
	"sync"
)

// registry holds the listeners of one event and optionally remembers the last
// notified value so late listeners can be brought up to date.
// L is the listener type (a channel or a callback).
type registry[T any, L any] struct {
	mu                    sync.RWMutex
	listeners             map[uint64]L
	nextID                uint64
	sendLastEventOnListen bool
	lastEvent             T
	hasNotified           bool
}

func (r *registry[T, L]) init(sendLastEventOnListen bool) {
	r.listeners = make(map[uint64]L)
	r.sendLastEventOnListen = sendLastEventOnListen
}

// add registers the listener and returns its deregistration function together
// with the value to replay to it, if any
func (r *registry[T, L]) add(listener L) (func(), T, bool) {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = listener
	replay := r.sendLastEventOnListen && r.hasNotified
	last := r.lastEvent
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}, last, replay
}

// record stores the value when replay is enabled and returns a copy of the
// listener set so delivery can happen outside the lock
func (r *registry[T, L]) record(value T) []L {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sendLastEventOnListen {
		r.lastEvent = value
		r.hasNotified = true
	}

	listeners := make([]L, 0, len(r.listeners))
	for _, l := range r.listeners {
		listeners = append(listeners, l)
	}
	return listeners
}

// Latest returns the last notified value when the event remembers it
func (r *registry[T, L]) Latest() (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastEvent, r.sendLastEventOnListen && r.hasNotified
}

// ListenerCount returns the current number of registered listeners
func (r *registry[T, L]) ListenerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listeners)
}
