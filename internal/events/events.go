package events

import (
	"fmt"
	"sync"

	console "pipecrm/internal/utils/logger"
)

var log = console.New("events")

type Handler func(interface{})

// Bus is a minimal in-process pub/sub used to decouple CRUD side effects
// (campaign scheduling, reminders) from the request path. Handlers run in
// their own goroutine and must not assume ordering.
type Bus struct {
	handlers map[string][]Handler
	mu       sync.RWMutex
}

var defaultBus = NewBus()

func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

// On registers a handler for an event name, e.g. "deals.created".
func (b *Bus) On(event string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[event] = append(b.handlers[event], handler)
}

// Emit triggers an event. Panicking handlers are recovered so a bad
// subscriber cannot take down the request that emitted the event.
func (b *Bus) Emit(event string, data interface{}) {
	b.mu.RLock()
	handlers := b.handlers[event]
	b.mu.RUnlock()

	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					_ = log.Error("panic in handler for %s", fmt.Errorf("%v", r), event)
				}
			}()
			h(data)
		}(handler)
	}
}

// On registers a handler on the default bus.
func On(event string, handler Handler) {
	defaultBus.On(event, handler)
}

// Emit publishes on the default bus.
func Emit(event string, data interface{}) {
	defaultBus.Emit(event, data)
}
