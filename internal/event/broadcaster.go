// Package event is the publish/subscribe hub of one discovery run and the
// records published on it.
package event

import "sync"

// Listener receives an event synchronously on the emitting goroutine.
type Listener func(Event)

// Broadcaster fans events out to listeners registered by name. The zero
// value is ready to use. Registration may happen concurrently with Emit.
type Broadcaster struct {
	mu        sync.RWMutex
	listeners map[Name][]Listener
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{listeners: make(map[Name][]Listener)}
}

// On registers l for events called name. Events emitted before the call are
// not replayed.
func (b *Broadcaster) On(name Name, l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.listeners == nil {
		b.listeners = make(map[Name][]Listener)
	}
	b.listeners[name] = append(b.listeners[name], l)
}

// OnAll registers l for every event name.
func (b *Broadcaster) OnAll(l Listener) {
	for _, name := range Names {
		b.On(name, l)
	}
}

// Emit delivers ev to the listeners registered for its name when Emit is
// called, in registration order.
func (b *Broadcaster) Emit(ev Event) {
	b.mu.RLock()
	// Appends never touch elements below the current length, so the slice
	// header is a stable snapshot.
	listeners := b.listeners[ev.EventName()]
	b.mu.RUnlock()

	for _, l := range listeners {
		l(ev)
	}
}

// ListenerCount returns the number of listeners registered for name.
func (b *Broadcaster) ListenerCount(name Name) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[name])
}
