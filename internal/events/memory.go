package events

import "sync"

// MemoryBus is an in-process Bus. Handlers run synchronously on the
// publishing goroutine, which keeps tests deterministic.
type MemoryBus struct {
	mu       sync.Mutex
	handlers map[int]Handler
	nextID   int
}

var _ Bus = (*MemoryBus)(nil)

// NewMemoryBus creates an empty in-process bus.
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{handlers: make(map[int]Handler)}
}

func (b *MemoryBus) PublishOrderPlaced(event OrderPlaced) error {
	b.mu.Lock()
	fns := make([]Handler, 0, len(b.handlers))
	for _, fn := range b.handlers {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(event)
	}
	return nil
}

func (b *MemoryBus) SubscribeOrderPlaced(fn Handler) (func(), error) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.handlers, id)
		b.mu.Unlock()
	}, nil
}

func (b *MemoryBus) Close() {}
