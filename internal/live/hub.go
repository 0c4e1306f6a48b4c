package live

import (
	"context"
	"net/http"
	"sync"
	"time"

	"cleanguard-backend/internal/logger"
	"cleanguard-backend/internal/models"

	"github.com/gorilla/websocket"
)

// OccupancyEvent is pushed to every connected client after a locker change
type OccupancyEvent struct {
	Reason    string                `json:"reason"`
	Summary   *models.LockerSummary `json:"summary"`
	Timestamp time.Time             `json:"timestamp"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans occupancy events out to websocket clients
type Hub struct {
	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
	broadcast  chan OccupancyEvent
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan OccupancyEvent, 64),
	}
}

// Run delivers events until ctx is cancelled, then closes all clients
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.clientsMux.Lock()
			for client := range h.clients {
				client.Close()
				delete(h.clients, client)
			}
			h.clientsMux.Unlock()
			return
		case event := <-h.broadcast:
			h.clientsMux.Lock()
			for client := range h.clients {
				client.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := client.WriteJSON(event); err != nil {
					client.Close()
					delete(h.clients, client)
				}
			}
			h.clientsMux.Unlock()
		}
	}
}

// Publish queues an event. A full queue drops the event instead of
// blocking the caller; the next change carries a fresh summary anyway.
func (h *Hub) Publish(event OccupancyEvent) {
	if h == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case h.broadcast <- event:
	default:
		logger.WarnLog(context.Background(), "occupancy event dropped: %s", event.Reason)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()
	return len(h.clients)
}

// ServeWS upgrades the request and keeps the client registered until it disconnects
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.ErrorLog(r.Context(), err, "websocket upgrade failed")
		return
	}
	defer conn.Close()

	h.clientsMux.Lock()
	h.clients[conn] = true
	h.clientsMux.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.clientsMux.Lock()
			delete(h.clients, conn)
			h.clientsMux.Unlock()
			break
		}
	}
}
