package core

import "sync"

// Topic names for the process-wide broadcast.
const (
	TopicCarpoolingUpdated   = "carpooling-updated"
	TopicConversationUpdated = "conversation-updated"
)

// Broadcast is a minimal process-wide signal bus: the one cross-controller
// channel in the app (e.g. notifications telling the carpooling controller
// to reload). Handlers run synchronously on the publisher's goroutine.
type Broadcast struct {
	mu   sync.RWMutex
	subs map[string][]func()
}

func NewBroadcast() *Broadcast {
	return &Broadcast{subs: make(map[string][]func())}
}

func (b *Broadcast) Subscribe(topic string, fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[topic] = append(b.subs[topic], fn)
}

func (b *Broadcast) Publish(topic string) {
	b.mu.RLock()
	fns := append([]func(){}, b.subs[topic]...)
	b.mu.RUnlock()
	for _, fn := range fns {
		fn()
	}
}
