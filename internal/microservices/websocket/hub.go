package websocket

import (
	"context"
	"log/slog"

	"churchhub/internal/microservices/http-api/models"
)

// Central hub managing all connections.
// Each WebSocket connection runs in its own goroutines,
// but they all communicate through channels to avoid race conditions.

type delivery struct {
	userID  string
	payload []byte
}

type countRequest struct {
	userID string
	reply  chan int
}

type Hub struct {
	clients    map[string]map[*Client]bool // user id -> open connections of that user
	Register   chan *Client
	Unregister chan *Client
	deliveries chan delivery
	counts     chan countRequest
	done       chan struct{}
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		deliveries: make(chan delivery, 256),
		counts:     make(chan countRequest),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run owns the client registry until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, conns := range h.clients {
				for client := range conns {
					close(client.SendChannel)
				}
			}
			h.clients = make(map[string]map[*Client]bool)
			return

		case client := <-h.Register:
			conns, ok := h.clients[client.UserID]
			if !ok {
				conns = make(map[*Client]bool)
				h.clients[client.UserID] = conns
			}
			conns[client] = true
			h.logger.Debug("websocket client registered", "user_id", client.UserID, "client_id", client.ID)

		case client := <-h.Unregister:
			h.remove(client)

		case d := <-h.deliveries:
			for client := range h.clients[d.userID] {
				select {
				case client.SendChannel <- d.payload:
				default:
					// slow consumer; it can reload from the notification log
					h.remove(client)
				}
			}

		case req := <-h.counts:
			req.reply <- len(h.clients[req.userID])
		}
	}
}

// register reports false when the hub is no longer running.
func (h *Hub) register(client *Client) bool {
	select {
	case h.Register <- client:
		return true
	case <-h.done:
		return false
	}
}

// unregister is safe to call after Run has returned.
func (h *Hub) unregister(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) remove(client *Client) {
	conns, ok := h.clients[client.UserID]
	if !ok || !conns[client] {
		return
	}
	delete(conns, client)
	close(client.SendChannel)
	if len(conns) == 0 {
		delete(h.clients, client.UserID)
	}
	h.logger.Debug("websocket client removed", "user_id", client.UserID, "client_id", client.ID)
}

// Publish queues a notification for every open connection of the user.
// It never blocks the caller; when the queue is full the push is dropped.
func (h *Hub) Publish(userID string, notification *models.Notification) {
	payload, err := NewNotificationMessage(notification).ToJSON()
	if err != nil {
		h.logger.Error("failed to encode notification", "error", err)
		return
	}
	select {
	case h.deliveries <- delivery{userID: userID, payload: payload}:
	default:
		h.logger.Warn("notification push dropped", "user_id", userID, "notification_id", notification.ID)
	}
}

// ClientCount reports the open connections of a user. It must not be called
// after Run has returned.
func (h *Hub) ClientCount(userID string) int {
	reply := make(chan int, 1)
	h.counts <- countRequest{userID: userID, reply: reply}
	return <-reply
}
