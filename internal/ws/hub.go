package ws

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/gorilla/websocket"

	"github.com/orderpay/schedule/internal/domain"
)

const sendBuffer = 16

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans schedule change events out to every connected client.
type Hub struct {
	clients    map[*client]struct{}
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*client]struct{}),
		broadcast:  make(chan []byte),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
	}
}

// Run serves the hub until ctx is done, then drops every client.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		for c := range h.clients {
			h.drop(c)
		}
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			slog.Debug("websocket client registered", "clients", len(h.clients))
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
				slog.Debug("websocket client unregistered", "clients", len(h.clients))
			}
		case message := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- message:
				default:
					// slow client
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
}

// Broadcast queues event for every client. It is a no-op once Run returned.
func (h *Hub) Broadcast(event domain.ScheduleEvent) {
	message, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to encode schedule event", "error", err)
		return
	}
	select {
	case h.broadcast <- message:
	case <-h.done:
	}
}

// ScheduleSaved broadcasts a schedule_saved event for month.
func (h *Hub) ScheduleSaved(month string) {
	h.Broadcast(domain.ScheduleEvent{Type: domain.EventScheduleSaved, Month: month})
}
