package handlers

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toastd/domain/toasts"
	"toastd/interfaces/web/presenters"
)

type broadcast struct {
	event string
	data  string
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	frames []broadcast
}

func (r *recordingBroadcaster) Broadcast(event, data string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, broadcast{event: event, data: data})
}

func (r *recordingBroadcaster) last(t *testing.T) broadcast {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.frames)
	return r.frames[len(r.frames)-1]
}

func TestBroadcastRenderer_Mount(t *testing.T) {
	sse, ws := &recordingBroadcaster{}, &recordingBroadcaster{}
	renderer := NewBroadcastRenderer(presenters.NewToastPresenter("/toasts"), sse, ws)

	inst := testInstance("toast-1", toasts.StateArmed)
	inst.Request.Title = "<b>Saved</b>"
	require.NoError(t, renderer.Mount(inst))

	for _, b := range []*recordingBroadcaster{sse, ws} {
		frame := b.last(t)
		assert.Equal(t, EventToastMount, frame.event)

		var payload mountPayload
		require.NoError(t, json.Unmarshal([]byte(frame.data), &payload))
		assert.Equal(t, toasts.ID("toast-1"), payload.ID)
		assert.Equal(t, toasts.PositionBottomRight, payload.Position)
		assert.Equal(t, "toast-container-bottom-right", payload.ContainerID)
		assert.Contains(t, payload.HTML, `id="toast-1"`)
		assert.Contains(t, payload.HTML, "&lt;b&gt;Saved&lt;/b&gt;")
	}
}

func TestBroadcastRenderer_ProgressAndExit(t *testing.T) {
	b := &recordingBroadcaster{}
	renderer := NewBroadcastRenderer(presenters.NewToastPresenter("/toasts"), b)

	require.NoError(t, renderer.StartProgress("toast-1", 2500*time.Millisecond))
	assert.Equal(t, broadcast{EventToastProgress, `{"id":"toast-1","durationMs":2500}`}, b.last(t))

	require.NoError(t, renderer.FreezeProgress("toast-1", 0.25))
	assert.Equal(t, broadcast{EventToastFreeze, `{"id":"toast-1","fraction":0.25}`}, b.last(t))

	require.NoError(t, renderer.Exit("toast-1"))
	assert.Equal(t, broadcast{EventToastExit, `{"id":"toast-1"}`}, b.last(t))

	require.NoError(t, renderer.Remove("toast-1"))
	assert.Equal(t, broadcast{EventToastRemove, `{"id":"toast-1"}`}, b.last(t))
}

func TestBroadcastRenderer_DrivenByManager(t *testing.T) {
	b := &recordingBroadcaster{}
	renderer := NewBroadcastRenderer(presenters.NewToastPresenter("/toasts"), b)
	manager := toasts.NewManager(nil, renderer, nil)
	defer manager.Close()

	inst := manager.Spawn(toasts.Request{Title: "Hi", Duration: time.Minute, ShowIndicator: true})
	manager.Dismiss(inst.ID)

	b.mu.Lock()
	defer b.mu.Unlock()
	var events []string
	for _, f := range b.frames {
		events = append(events, f.event)
	}
	assert.Equal(t, []string{EventToastMount, EventToastProgress, EventToastExit}, events)
}
