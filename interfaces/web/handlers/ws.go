package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"toastd/domain/toasts"
	"toastd/logging"
)

const (
	wsWriteWait  = 10 * time.Second
	wsReadLimit  = 4096
	wsPingPeriod = 30 * time.Second
)

// wsOutbound is the frame pushed to browsers.
type wsOutbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// wsInbound is the frame browsers send back. Only "signal" is understood.
type wsInbound struct {
	Type   string `json:"type"`
	ID     string `json:"id"`
	Signal string `json:"signal"`
}

type wsClient struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	once sync.Once
	done chan struct{}
}

func (c *wsClient) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// WSHub manages WebSocket clients. It broadcasts toast events and relays
// interaction signals back to whoever subscribed with OnSignal.
type WSHub struct {
	clients  map[string]*wsClient
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	logger   *logging.Logger
	observer ClientObserver

	handlersMu sync.RWMutex
	handlers   []func(id toasts.ID, signal toasts.Signal)
}

var _ toasts.SignalSource = (*WSHub)(nil)

// NewWSHub creates a hub that accepts connections from any origin.
func NewWSHub(observer ClientObserver) *WSHub {
	if observer == nil {
		observer = nopClientObserver{}
	}
	return &WSHub{
		clients: make(map[string]*wsClient),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger:   logging.Default().WithComponent("ws_hub"),
		observer: observer,
	}
}

// OnSignal registers a handler for signals received from clients.
func (h *WSHub) OnSignal(handler func(id toasts.ID, signal toasts.Signal)) {
	h.handlersMu.Lock()
	defer h.handlersMu.Unlock()
	h.handlers = append(h.handlers, handler)
}

// HandleWebSocket upgrades the request and serves the client until it
// disconnects.
func (h *WSHub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("WebSocket upgrade failed", "error", err)
		return
	}

	client := &wsClient{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, clientBufferSize),
		done: make(chan struct{}),
	}

	h.mu.Lock()
	h.clients[client.id] = client
	total := len(h.clients)
	h.mu.Unlock()

	h.observer.ClientConnected("ws")
	h.logger.Transport("WebSocket client connected", "client_id", client.id, "total_clients", total)

	go h.writePump(client)
	h.readPump(client)
}

// Broadcast queues an event for every connected client. data must be JSON.
func (h *WSHub) Broadcast(event, data string) {
	raw := json.RawMessage(data)
	if !json.Valid(raw) {
		quoted, _ := json.Marshal(data)
		raw = quoted
	}
	frame, err := json.Marshal(wsOutbound{Event: event, Data: raw})
	if err != nil {
		h.logger.Error("Failed to encode WebSocket frame", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	var slow []*wsClient
	for _, client := range h.clients {
		select {
		case client.send <- frame:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.logger.Warn("WebSocket client too slow, dropping", "client_id", client.id, "event", event)
		h.remove(client)
	}
}

// ClientCount returns the number of connected clients.
func (h *WSHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *WSHub) Close() {
	h.mu.RLock()
	clients := make([]*wsClient, 0, len(h.clients))
	for _, client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		h.remove(client)
	}
}

func (h *WSHub) remove(client *wsClient) {
	h.mu.Lock()
	_, exists := h.clients[client.id]
	delete(h.clients, client.id)
	h.mu.Unlock()

	client.close()
	if exists {
		h.observer.ClientDisconnected("ws")
		h.logger.Transport("WebSocket client disconnected", "client_id", client.id)
	}
}

func (h *WSHub) readPump(client *wsClient) {
	defer h.remove(client)

	client.conn.SetReadLimit(wsReadLimit)
	for {
		_, payload, err := client.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg wsInbound
		if err := json.Unmarshal(payload, &msg); err != nil {
			h.logger.Debug("Ignoring malformed WebSocket frame", "client_id", client.id, "error", err)
			continue
		}
		if msg.Type != "signal" || msg.ID == "" {
			continue
		}
		signal := toasts.Signal(msg.Signal)
		if !signal.Valid() {
			h.logger.Debug("Ignoring unknown signal", "client_id", client.id, "signal", msg.Signal)
			continue
		}
		h.emit(toasts.ID(msg.ID), signal)
	}
}

func (h *WSHub) writePump(client *wsClient) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-client.done:
			return
		case frame := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := client.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				h.remove(client)
				return
			}
		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.remove(client)
				return
			}
		}
	}
}

func (h *WSHub) emit(id toasts.ID, signal toasts.Signal) {
	h.handlersMu.RLock()
	handlers := make([]func(toasts.ID, toasts.Signal), len(h.handlers))
	copy(handlers, h.handlers)
	h.handlersMu.RUnlock()

	for _, handler := range handlers {
		handler(id, signal)
	}
}
