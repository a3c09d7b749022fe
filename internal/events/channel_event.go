package events

// ChannelEvent provides pub/sub behavior using channels.
// Sends never block: a listener whose channel is full misses that value.
type ChannelEvent[T any] struct {
	registry[T, chan<- T]
}

// NewChannelEvent creates a new ChannelEvent instance
// sendLastEventOnListen: if true, the last Notify value is sent to new listeners
// as soon as they register
func NewChannelEvent[T any](sendLastEventOnListen bool) *ChannelEvent[T] {
	e := &ChannelEvent[T]{}
	e.init(sendLastEventOnListen)
	return e
}

// Listen registers a channel to receive values when Notify is invoked
// Returns a deregistration function that can be called to remove the listener
func (e *ChannelEvent[T]) Listen(ch chan<- T) func() {
	if ch == nil {
		panic("channel cannot be nil")
	}

	unregister, last, replay := e.add(ch)
	if replay {
		select {
		case ch <- last:
		default:
		}
	}
	return unregister
}

// Notify sends the provided value to all registered channels
func (e *ChannelEvent[T]) Notify(value T) {
	for _, ch := range e.record(value) {
		select {
		case ch <- value:
		default:
			// Channel is full, skip this channel
		}
	}
}
