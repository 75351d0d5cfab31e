package ws

import (
	"sync"

	"go-inventory-client/internal/model"

	"github.com/gofiber/contrib/websocket"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

const TypeStockUpdate = "stock_update"

const (
	ActionProductCreated = "product_created"
	ActionProductUpdated = "product_updated"
	ActionProductDeleted = "product_deleted"
)

// Event is one message on the stock update stream.
type Event struct {
	Type    string         `json:"type"`
	Action  string         `json:"action"`
	Product *model.Product `json:"product,omitempty"`
	User    string         `json:"user,omitempty"`
	Message string         `json:"message"`
}

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	quit       chan struct{}
	stopped    chan struct{}
	closeOnce  sync.Once
	mutex      sync.Mutex
	log        *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte),
		quit:       make(chan struct{}),
		stopped:    make(chan struct{}),
		log:        log,
	}
}

// Run serves registrations and broadcasts until Close. Connections belong to
// their handlers; the hub only writes to them while they are registered and
// never closes them.
func (h *Hub) Run() {
	defer close(h.stopped)
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			n := len(h.Clients)
			h.mutex.Unlock()
			h.log.Debug("ws client connected", zap.Int("clients", n))

		case conn := <-h.Unregister:
			h.mutex.Lock()
			delete(h.Clients, conn)
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					h.log.Debug("dropping ws client", zap.Error(err))
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()

		case <-h.quit:
			h.mutex.Lock()
			clear(h.Clients)
			h.mutex.Unlock()
			return
		}
	}
}

// Close stops Run. Handlers watching Done close their own connections.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.quit) })
}

// Done is closed when the hub shuts down.
func (h *Hub) Done() <-chan struct{} {
	return h.quit
}

// Add registers conn unless the hub has stopped.
func (h *Hub) Add(conn *websocket.Conn) {
	select {
	case h.Register <- conn:
	case <-h.stopped:
	}
}

// Remove unregisters conn. Once it returns the hub no longer touches conn.
func (h *Hub) Remove(conn *websocket.Conn) {
	select {
	case h.Unregister <- conn:
	case <-h.stopped:
	}
}

// Publish broadcasts ev without blocking the caller. A nil hub drops the event.
func (h *Hub) Publish(ev Event) {
	if h == nil {
		return
	}
	msg, err := jsoniter.Marshal(ev)
	if err != nil {
		h.log.Warn("encode ws event", zap.Error(err))
		return
	}
	go func() {
		select {
		case h.Broadcast <- msg:
		case <-h.quit:
		}
	}()
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}
