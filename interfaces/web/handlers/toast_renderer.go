package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"toastd/domain/toasts"
	"toastd/interfaces/web/presenters"
)

// Push event names understood by toast.js.
const (
	EventToastMount    = "toast-mount"
	EventToastProgress = "toast-progress"
	EventToastFreeze   = "toast-freeze"
	EventToastExit     = "toast-exit"
	EventToastRemove   = "toast-remove"
)

type mountPayload struct {
	ID          toasts.ID       `json:"id"`
	Position    toasts.Position `json:"position"`
	ContainerID string          `json:"containerId"`
	HTML        string          `json:"html"`
}

type progressPayload struct {
	ID         toasts.ID `json:"id"`
	DurationMs int64     `json:"durationMs"`
}

type freezePayload struct {
	ID       toasts.ID `json:"id"`
	Fraction float64   `json:"fraction"`
}

type idPayload struct {
	ID toasts.ID `json:"id"`
}

// BroadcastRenderer renders toasts into connected browsers by pushing
// events over every configured transport.
type BroadcastRenderer struct {
	presenter    presenters.ToastPresenterInterface
	broadcasters []Broadcaster
}

var _ toasts.Renderer = (*BroadcastRenderer)(nil)

func NewBroadcastRenderer(presenter presenters.ToastPresenterInterface, broadcasters ...Broadcaster) *BroadcastRenderer {
	return &BroadcastRenderer{
		presenter:    presenter,
		broadcasters: broadcasters,
	}
}

func (b *BroadcastRenderer) Mount(inst toasts.Instance) error {
	html, err := b.presenter.FormatToast(context.Background(), inst)
	if err != nil {
		return fmt.Errorf("render toast %s: %w", inst.ID, err)
	}
	return b.send(EventToastMount, mountPayload{
		ID:          inst.ID,
		Position:    inst.Request.Position,
		ContainerID: inst.Request.Position.ContainerID(),
		HTML:        html,
	})
}

func (b *BroadcastRenderer) StartProgress(id toasts.ID, d time.Duration) error {
	return b.send(EventToastProgress, progressPayload{ID: id, DurationMs: d.Milliseconds()})
}

func (b *BroadcastRenderer) FreezeProgress(id toasts.ID, fraction float64) error {
	return b.send(EventToastFreeze, freezePayload{ID: id, Fraction: fraction})
}

func (b *BroadcastRenderer) Exit(id toasts.ID) error {
	return b.send(EventToastExit, idPayload{ID: id})
}

func (b *BroadcastRenderer) Remove(id toasts.ID) error {
	return b.send(EventToastRemove, idPayload{ID: id})
}

func (b *BroadcastRenderer) send(event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s: %w", event, err)
	}
	for _, bc := range b.broadcasters {
		bc.Broadcast(event, string(data))
	}
	return nil
}
