package events

// CallbackEvent provides pub/sub behavior with type-safe callbacks.
// Callbacks run synchronously on the notifying goroutine, outside any lock,
// so a callback may register or remove listeners.
type CallbackEvent[T any] struct {
	registry[T, func(T)]
}

// NewCallbackEvent creates a new CallbackEvent instance
// sendLastEventOnListen: if true, new listeners are called immediately with the
// last Notify value
func NewCallbackEvent[T any](sendLastEventOnListen bool) *CallbackEvent[T] {
	e := &CallbackEvent[T]{}
	e.init(sendLastEventOnListen)
	return e
}

// Listen registers a callback function to be called when Notify is invoked
// Returns a deregistration function that can be called to remove the listener
func (e *CallbackEvent[T]) Listen(callback func(T)) func() {
	if callback == nil {
		panic("callback cannot be nil")
	}

	unregister, last, replay := e.add(callback)
	if replay {
		callback(last)
	}
	return unregister
}

// Notify calls all registered listener callbacks with the provided value
func (e *CallbackEvent[T]) Notify(value T) {
	for _, callback := range e.record(value) {
		callback(value)
	}
}
