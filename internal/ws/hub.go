package ws

import (
	"context"
	"errors"
	"sync"
)

var ErrHubFull = errors.New("live feed connection limit reached")

// Hub fans announcements out to every connected client.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*Client]struct{}
	maxConns int
	closed   bool
}

func NewHub(maxConns int) *Hub {
	if maxConns <= 0 {
		maxConns = 10000
	}
	return &Hub{clients: make(map[*Client]struct{}), maxConns: maxConns}
}

// Register adds c, or returns ErrHubFull once the cap is reached.
func (h *Hub) Register(c *Client) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed || len(h.clients) >= h.maxConns {
		return ErrHubFull
	}
	h.clients[c] = struct{}{}
	return nil
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		c.Close()
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast queues the message for every client. Clients whose buffer is full are dropped.
func (h *Hub) Broadcast(kind string, payload any) {
	msg := OutgoingMessage{Type: kind, Payload: payload}
	var slow []*Client
	h.mu.RLock()
	for c := range h.clients {
		select {
		case <-c.done:
		case c.send <- msg:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()
	for _, c := range slow {
		h.Unregister(c)
	}
}

// Run blocks until ctx ends, then disconnects everyone.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()
	h.mu.Lock()
	h.closed = true
	all := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		all = append(all, c)
	}
	h.clients = make(map[*Client]struct{})
	h.mu.Unlock()

	for _, c := range all {
		c.Close()
	}
	for _, c := range all {
		c.Wait()
	}
}
