package event

import (
	"reflect"
	"sync"
)

// Bus is a typed event queue. Events emitted while a command is processed
// are held until Flush, which the game loop calls once the broadcast for
// that command has gone out. Delivery preserves emission order.
type Bus struct {
	mu       sync.Mutex // only protects handler registration
	pending  []any
	handlers map[reflect.Type][]any
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[reflect.Type][]any),
	}
}

// Emit queues an event. A nil bus discards it.
func Emit[T any](b *Bus, event T) {
	if b == nil {
		return
	}
	b.pending = append(b.pending, event)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], fn)
}

// Pending returns the number of queued events.
func (b *Bus) Pending() int {
	return len(b.pending)
}

// Flush delivers all queued events to their subscribers and clears the queue.
// Events emitted by handlers during Flush are delivered in the same call.
func (b *Bus) Flush() {
	for i := 0; i < len(b.pending); i++ {
		ev := b.pending[i]
		b.mu.Lock()
		handlers := b.handlers[reflect.TypeOf(ev)]
		b.mu.Unlock()
		for _, h := range handlers {
			callHandler(h, ev)
		}
	}
	clear(b.pending)
	b.pending = b.pending[:0]
}

func callHandler(handler any, event any) {
	reflect.ValueOf(handler).Call([]reflect.Value{reflect.ValueOf(event)})
}
