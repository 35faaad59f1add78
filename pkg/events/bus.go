package events

import (
	"sync"

	"github.com/charmbracelet/log"
)

// Handler receives a dispatched event.
type Handler func(Event)

// Subscription identifies one registration. Handlers are not comparable in
// Go, so Off takes the token On returned.
type Subscription uint64

type registration struct {
	id      Subscription
	handler Handler
}

// Bus is a synchronous publish/subscribe registry keyed by event name.
type Bus struct {
	mu     sync.RWMutex
	next   Subscription
	byName map[string][]registration
	logger *log.Logger
}

// NewBus returns an empty bus. A nil logger falls back to log.Default().
func NewBus(logger *log.Logger) *Bus {
	if logger == nil {
		logger = log.Default()
	}
	return &Bus{
		byName: make(map[string][]registration),
		logger: logger.WithPrefix("bus"),
	}
}

// On registers handler for name. Registering the same handler twice delivers
// events to it twice.
func (b *Bus) On(name string, handler Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	b.byName[name] = append(b.byName[name], registration{id: b.next, handler: handler})
	return b.next
}

// Off removes the registration matching sub and reports whether one existed.
func (b *Bus) Off(name string, sub Subscription) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	regs := b.byName[name]
	for i, r := range regs {
		if r.id == sub {
			b.byName[name] = append(regs[:i:i], regs[i+1:]...)
			return true
		}
	}
	return false
}

// Dispatch invokes every handler for name in registration order. A handler
// that panics is logged and the remaining handlers still run.
func (b *Bus) Dispatch(name string, ev Event) {
	b.mu.RLock()
	regs := append([]registration(nil), b.byName[name]...)
	b.mu.RUnlock()

	for _, r := range regs {
		b.invoke(name, r, ev)
	}
}

// Len reports how many handlers are registered for name.
func (b *Bus) Len(name string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.byName[name])
}

func (b *Bus) invoke(name string, r registration, ev Event) {
	defer func() {
		if rec := recover(); rec != nil {
			b.logger.Error("handler panicked", "event", name, "subscription", r.id, "source", ev.Source(), "panic", rec)
		}
	}()
	r.handler(ev)
}
