package websocket

import (
	"encoding/json"
	"sync"

	"github.com/cetakindo/printshop-backend/pkg/logger"
)

// Client is one connected order-editor session. A staff member keeps several
// widgets open against the same order; each browser tab is its own client.
type Client struct {
	Hub     *Hub
	Conn    *Conn
	UserID  uint
	OrderID uint
	Send    chan []byte
}

// Hub fans order state changes out to every editor session watching that
// order, so all widgets converge on the authoritative totals after each edit.
type Hub struct {
	// Sessions per order (OrderID -> clients)
	rooms map[uint]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *orderMessage

	mu sync.RWMutex
}

type orderMessage struct {
	OrderID uint
	Payload []byte
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[uint]map[*Client]bool),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		broadcast:  make(chan *orderMessage, 256),
	}
}

// Run owns the room maps. Only this goroutine mutates them.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.rooms[client.OrderID]; !ok {
				h.rooms[client.OrderID] = make(map[*Client]bool)
			}
			h.rooms[client.OrderID][client] = true
			h.mu.Unlock()
			logger.Info("Order editor session opened", map[string]interface{}{
				"user_id":  client.UserID,
				"order_id": client.OrderID,
				"sessions": h.SessionCount(client.OrderID),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.OrderID]; ok {
				if _, present := clients[client]; present {
					delete(clients, client)
					close(client.Send)
					if len(clients) == 0 {
						delete(h.rooms, client.OrderID)
					}
				}
			}
			h.mu.Unlock()
			logger.Info("Order editor session closed", map[string]interface{}{
				"user_id":  client.UserID,
				"order_id": client.OrderID,
			})

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.rooms[message.OrderID] {
				select {
				case client.Send <- message.Payload:
				default:
					// Send buffer full; drop the session asynchronously.
					go h.Unregister(client)
					logger.Warn("Editor session send buffer full, disconnecting", map[string]interface{}{
						"user_id":  client.UserID,
						"order_id": client.OrderID,
					})
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastOrderEvent implements service.OrderEventBroadcaster. Events are
// best-effort: a full broadcast channel drops the event rather than blocking
// the mutation that produced it.
func (h *Hub) BroadcastOrderEvent(orderID uint, event interface{}) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal order event", err, map[string]interface{}{
			"order_id": orderID,
		})
		return
	}

	select {
	case h.broadcast <- &orderMessage{OrderID: orderID, Payload: payload}:
	default:
		logger.Warn("Order event channel full, event dropped", map[string]interface{}{
			"order_id": orderID,
		})
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// SessionCount reports how many editor sessions are watching an order.
func (h *Hub) SessionCount(orderID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[orderID])
}
