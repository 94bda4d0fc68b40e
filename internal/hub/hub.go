package hub

import "log/slog"

// Subscriber represents a single connected browser waiting for rendered
// status fragments. The Hub sends byte slices to its Send channel; the
// websocket handler drains it.
type Subscriber struct {
	// Send is a buffered channel of outbound messages.
	Send chan []byte
}

// Hub is a concurrent broadcast bus. It maintains the set of active
// subscribers and fans each broadcast message out to all of them.
type Hub struct {
	subscribers map[*Subscriber]bool

	// Broadcast is the channel for inbound messages. Any component can send
	// a message here to have it delivered to every subscriber.
	Broadcast chan []byte

	// Register is a channel for new subscribers to register with the hub.
	Register chan *Subscriber

	// Unregister is a channel for subscribers to unregister from the hub.
	Unregister chan *Subscriber
}

// NewHub creates and returns a new Hub instance.
func NewHub() *Hub {
	return &Hub{
		Broadcast:   make(chan []byte),
		Register:    make(chan *Subscriber),
		Unregister:  make(chan *Subscriber),
		subscribers: make(map[*Subscriber]bool),
	}
}

// Run starts the Hub's message processing loop. It must be run in a separate
// goroutine.
func (h *Hub) Run() {
	for {
		select {
		case subscriber := <-h.Register:
			h.subscribers[subscriber] = true
			slog.Debug("New subscriber registered", "total_subscribers", len(h.subscribers))

		case subscriber := <-h.Unregister:
			if _, ok := h.subscribers[subscriber]; ok {
				delete(h.subscribers, subscriber)
				close(subscriber.Send)
				slog.Debug("Subscriber unregistered", "total_subscribers", len(h.subscribers))
			}

		case message := <-h.Broadcast:
			for subscriber := range h.subscribers {
				// Non-blocking send. A full buffer means the client is
				// lagging or gone, so drop it.
				select {
				case subscriber.Send <- message:
				default:
					close(subscriber.Send)
					delete(h.subscribers, subscriber)
					slog.Warn("Unregistering slow subscriber", "total_subscribers", len(h.subscribers))
				}
			}
		}
	}
}
