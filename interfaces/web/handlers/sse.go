package handlers

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"toastd/logging"
)

const clientBufferSize = 64

// Broadcaster pushes a named event with a payload to every connected client.
type Broadcaster interface {
	Broadcast(event, data string)
}

// ClientObserver is told about push clients coming and going.
type ClientObserver interface {
	ClientConnected(transport string)
	ClientDisconnected(transport string)
}

type nopClientObserver struct{}

func (nopClientObserver) ClientConnected(string)    {}
func (nopClientObserver) ClientDisconnected(string) {}

type sseMessage struct {
	event string
	data  string
}

// SSEClient represents a connected Server-Sent Events client.
type SSEClient struct {
	id   string
	send chan sseMessage
	done chan struct{}
}

// SSEManager manages Server-Sent Events connections and real-time broadcasting.
// Broadcasts never block: each client has a bounded queue drained by its own
// request goroutine, and clients that fall behind are dropped.
type SSEManager struct {
	clients   map[string]*SSEClient
	mu        sync.RWMutex
	logger    *logging.Logger
	observer  ClientObserver
	keepAlive time.Duration
	stop      chan struct{}
	stopOnce  sync.Once
}

// NewSSEManager creates a new SSE connection manager with a keep-alive routine.
func NewSSEManager(keepAlive time.Duration, observer ClientObserver) *SSEManager {
	if observer == nil {
		observer = nopClientObserver{}
	}
	if keepAlive <= 0 {
		keepAlive = 30 * time.Second
	}
	manager := &SSEManager{
		clients:   make(map[string]*SSEClient),
		logger:    logging.Default().WithComponent("sse_manager"),
		observer:  observer,
		keepAlive: keepAlive,
		stop:      make(chan struct{}),
	}

	go manager.keepAliveRoutine()

	return manager
}

// AddClient registers a new SSE client
func (s *SSEManager) AddClient(clientID string) *SSEClient {
	client := &SSEClient{
		id:   clientID,
		send: make(chan sseMessage, clientBufferSize),
		done: make(chan struct{}),
	}

	s.mu.Lock()
	old, replaced := s.clients[clientID]
	if replaced {
		close(old.done)
	}
	s.clients[clientID] = client
	total := len(s.clients)
	s.mu.Unlock()

	if replaced {
		s.observer.ClientDisconnected("sse")
	}
	s.observer.ClientConnected("sse")
	s.logger.Transport("SSE client connected", "client_id", clientID, "total_clients", total)
	return client
}

// RemoveClient removes an SSE client connection
func (s *SSEManager) RemoveClient(clientID string) {
	s.mu.RLock()
	client := s.clients[clientID]
	s.mu.RUnlock()

	if client != nil {
		s.removeClient(client)
	}
}

// removeClient only removes the exact registration, so a reconnect that
// replaced it under the same ID is left alone.
func (s *SSEManager) removeClient(client *SSEClient) {
	s.mu.Lock()
	current, exists := s.clients[client.id]
	removed := exists && current == client
	if removed {
		delete(s.clients, client.id)
		close(client.done)
	}
	s.mu.Unlock()

	if removed {
		s.observer.ClientDisconnected("sse")
		s.logger.Transport("SSE client disconnected", "client_id", client.id)
	}
}

// ClientCount returns the number of connected clients.
func (s *SSEManager) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Broadcast queues an event for every connected client
func (s *SSEManager) Broadcast(event, data string) {
	s.mu.RLock()
	if len(s.clients) == 0 {
		s.mu.RUnlock()
		return
	}
	var slow []*SSEClient
	for _, client := range s.clients {
		select {
		case client.send <- sseMessage{event: event, data: data}:
		default:
			slow = append(slow, client)
		}
	}
	total := len(s.clients)
	s.mu.RUnlock()

	for _, client := range slow {
		s.logger.Warn("SSE client too slow, dropping", "client_id", client.id, "event", event)
		s.removeClient(client)
	}

	s.logger.Debug("Broadcasted SSE event", "event", event, "clients", total, "dropped", len(slow))
}

// SendKeepAlive queues a comment line for every client
func (s *SSEManager) SendKeepAlive() {
	s.Broadcast("keepalive", time.Now().Format(time.RFC3339))
}

// Close stops the keep-alive routine and disconnects every client.
func (s *SSEManager) Close() {
	s.stopOnce.Do(func() { close(s.stop) })

	s.mu.RLock()
	clients := make([]*SSEClient, 0, len(s.clients))
	for _, client := range s.clients {
		clients = append(clients, client)
	}
	s.mu.RUnlock()

	for _, client := range clients {
		s.removeClient(client)
	}
}

func (s *SSEManager) keepAliveRoutine() {
	ticker := time.NewTicker(s.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.SendKeepAlive()
		case <-s.stop:
			return
		}
	}
}

// writeMessage writes one SSE frame. Keep-alives are sent as comments so
// they never trigger client handlers.
func writeMessage(w http.ResponseWriter, flusher http.Flusher, msg sseMessage) error {
	var frame string
	if msg.event == "keepalive" || msg.event == "connected" {
		frame = fmt.Sprintf(": %s\n\n", msg.data)
	} else {
		frame = fmt.Sprintf("event: %s\ndata: %s\n\n", msg.event, msg.data)
	}

	if _, err := w.Write([]byte(frame)); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	flusher.Flush()
	return nil
}

// HandleSSEConnection handles the SSE endpoint
func (s *SSEManager) HandleSSEConnection(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.logger.Error("Response writer does not support flushing")
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		clientID = fmt.Sprintf("client_%d", time.Now().UnixNano())
	}

	client := s.AddClient(clientID)
	defer s.removeClient(client)

	if err := writeMessage(w, flusher, sseMessage{event: "connected", data: "client " + clientID}); err != nil {
		return
	}

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-client.done:
			return
		case msg := <-client.send:
			if err := writeMessage(w, flusher, msg); err != nil {
				s.logger.Debug("SSE write failed", "client_id", clientID, "error", err)
				return
			}
		}
	}
}
