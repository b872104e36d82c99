package bus

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Channel names the engine publishes on
const (
	ChannelOrders        = "orders"
	ChannelAdmin         = "admin"
	ChannelNotifications = "notifications"
	ChannelSales         = "sales"
	ChannelUsers         = "users"
)

// Handler receives one published payload
type Handler func(payload interface{})

// Bus is a named-channel fan-out registry. Handlers run asynchronously
// so a slow or failing subscriber never blocks the publisher, and
// publishers call Publish only after their mutation is committed.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	channels map[string]map[int]Handler
	logger   *logrus.Logger
}

// NewBus creates an empty event bus
func NewBus(logger *logrus.Logger) *Bus {
	if logger == nil {
		logger = logrus.New()
	}
	return &Bus{
		channels: make(map[string]map[int]Handler),
		logger:   logger,
	}
}

// Subscribe registers a handler on a channel and returns a function
// that removes it. Unsubscribing during a fan-out is safe and does not
// affect delivery to other handlers.
func (b *Bus) Subscribe(channel string, handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.channels[channel] == nil {
		b.channels[channel] = make(map[int]Handler)
	}
	id := b.nextID
	b.nextID++
	b.channels[channel][id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.channels[channel], id)
	}
}

// Publish delivers the payload to every handler currently registered on
// the channel. Delivery is best-effort: each handler runs in its own
// goroutine and a panic in one is logged, not propagated.
func (b *Bus) Publish(channel string, payload interface{}) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.channels[channel]))
	for _, handler := range b.channels[channel] {
		handlers = append(handlers, handler)
	}
	b.mu.RUnlock()

	for _, handler := range handlers {
		go b.deliver(channel, handler, payload)
	}
}

func (b *Bus) deliver(channel string, handler Handler, payload interface{}) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.WithFields(logrus.Fields{
				"channel": channel,
				"panic":   r,
			}).Error("Subscriber panicked while handling event")
		}
	}()
	handler(payload)
}

// SubscriberCount returns the number of handlers on a channel
func (b *Bus) SubscriberCount(channel string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.channels[channel])
}
