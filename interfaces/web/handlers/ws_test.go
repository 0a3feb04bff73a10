package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toastd/domain/toasts"
)

type receivedSignal struct {
	id     toasts.ID
	signal toasts.Signal
}

func dialHub(t *testing.T, hub *WSHub) (*websocket.Conn, func()) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	url := "ws" + strings.TrimPrefix(server.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	return conn, func() {
		conn.Close()
		server.Close()
	}
}

func TestWSHub_BroadcastsEvents(t *testing.T) {
	observer := newCountingClientObserver()
	hub := NewWSHub(observer)
	defer hub.Close()

	conn, cleanup := dialHub(t, hub)
	defer cleanup()

	hub.Broadcast(EventToastFreeze, `{"id":"toast-1","fraction":0.5}`)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var frame struct {
		Event string `json:"event"`
		Data  struct {
			ID       string  `json:"id"`
			Fraction float64 `json:"fraction"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(payload, &frame))
	assert.Equal(t, EventToastFreeze, frame.Event)
	assert.Equal(t, "toast-1", frame.Data.ID)
	assert.Equal(t, 0.5, frame.Data.Fraction)

	connected, _ := observer.counts("ws")
	assert.Equal(t, 1, connected)
}

func TestWSHub_NonJSONDataIsQuoted(t *testing.T) {
	hub := NewWSHub(nil)
	defer hub.Close()

	conn, cleanup := dialHub(t, hub)
	defer cleanup()

	hub.Broadcast("notice", "plain text")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"notice","data":"plain text"}`, string(payload))
}

func TestWSHub_RelaysSignals(t *testing.T) {
	hub := NewWSHub(nil)
	defer hub.Close()

	received := make(chan receivedSignal, 4)
	hub.OnSignal(func(id toasts.ID, signal toasts.Signal) {
		received <- receivedSignal{id: id, signal: signal}
	})

	conn, cleanup := dialHub(t, hub)
	defer cleanup()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "hello", "id": "toast-1", "signal": "dismiss"}))
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "signal", "id": "toast-1", "signal": "wiggle"}))
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "signal", "id": "toast-1", "signal": "pointer-enter"}))

	select {
	case got := <-received:
		assert.Equal(t, receivedSignal{id: "toast-1", signal: toasts.SignalPointerEnter}, got)
	case <-time.After(2 * time.Second):
		t.Fatal("signal was not relayed")
	}
	assert.Empty(t, received)
}

func TestWSHub_ClientDisconnect(t *testing.T) {
	observer := newCountingClientObserver()
	hub := NewWSHub(observer)
	defer hub.Close()

	conn, cleanup := dialHub(t, hub)
	defer cleanup()

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		_, disconnected := observer.counts("ws")
		return disconnected == 1
	}, 2*time.Second, 10*time.Millisecond)
}
