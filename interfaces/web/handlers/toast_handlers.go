package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/angelofallars/htmx-go"
	"github.com/go-chi/chi/v5"

	"toastd/application"
	"toastd/domain/contracts"
	"toastd/domain/toasts"
	"toastd/interfaces/web/presenters"
	"toastd/interfaces/web/templates/components/ui"
	"toastd/logging"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

var toastAttributes = []string{
	toasts.AttrTitle,
	toasts.AttrDescription,
	toasts.AttrVariant,
	toasts.AttrPosition,
	toasts.AttrDuration,
	toasts.AttrDismissible,
	toasts.AttrShowIndicator,
	toasts.AttrIcon,
}

// ToastHandlers handles toast-related HTTP requests
type ToastHandlers struct {
	toastService application.ToastService
	presenter    presenters.ToastPresenterInterface
	title        string
	logger       *logging.Logger
}

// NewToastHandlers creates new toast handlers
func NewToastHandlers(toastService application.ToastService, presenter presenters.ToastPresenterInterface, title string) *ToastHandlers {
	if title == "" {
		title = "toastd"
	}
	return &ToastHandlers{
		toastService: toastService,
		presenter:    presenter,
		title:        title,
		logger:       logging.Default().WithComponent("toast_handlers"),
	}
}

// ToastResponse is the JSON representation of a toast snapshot.
type ToastResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Variant       string    `json:"variant"`
	Position      string    `json:"position"`
	State         string    `json:"state"`
	Dismissible   bool      `json:"dismissible"`
	DurationMs    int64     `json:"durationMs"`
	RemainingMs   int64     `json:"remainingMs"`
	Paused        bool      `json:"paused"`
	CreatedAt     time.Time `json:"createdAt"`
	DismissReason string    `json:"dismissReason,omitempty"`
}

// HistoryResponse is the JSON representation of a history entry.
type HistoryResponse struct {
	ID          int64     `json:"id"`
	ToastID     string    `json:"toastId"`
	Event       string    `json:"event"`
	Title       string    `json:"title"`
	Variant     string    `json:"variant"`
	Position    string    `json:"position"`
	DurationMs  int64     `json:"durationMs"`
	RemainingMs int64     `json:"remainingMs"`
	Reason      string    `json:"reason,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

func toToastResponse(inst toasts.Instance) ToastResponse {
	return ToastResponse{
		ID:            string(inst.ID),
		Title:         inst.Request.Title,
		Description:   inst.Request.Description,
		Variant:       string(inst.Request.Variant),
		Position:      string(inst.Request.Position),
		State:         string(inst.State),
		Dismissible:   inst.Request.Dismissible,
		DurationMs:    inst.Duration.Milliseconds(),
		RemainingMs:   inst.Remaining.Milliseconds(),
		Paused:        inst.Paused,
		CreatedAt:     inst.CreatedAt,
		DismissReason: string(inst.DismissReason),
	}
}

func toHistoryResponses(entries []*toasts.HistoryEntry) []HistoryResponse {
	out := make([]HistoryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, HistoryResponse{
			ID:          e.ID,
			ToastID:     string(e.ToastID),
			Event:       string(e.Event),
			Title:       e.Title,
			Variant:     string(e.Variant),
			Position:    string(e.Position),
			DurationMs:  e.Duration.Milliseconds(),
			RemainingMs: e.Remaining.Milliseconds(),
			Reason:      string(e.Reason),
			OccurredAt:  e.OccurredAt,
		})
	}
	return out
}

// Home renders the demo page with every live toast already mounted.
func (h *ToastHandlers) Home(w http.ResponseWriter, r *http.Request) {
	view := h.presenter.ToPageView(
		h.title,
		h.toastService.Positions(),
		h.toastService.Active(),
		h.toastService.Defaults(),
	)
	RenderResponse(r.Context(), w, r, ui.Page(view))
}

// SpawnToast spawns a toast from form fields or a JSON body named like the
// trigger attributes.
func (h *ToastHandlers) SpawnToast(w http.ResponseWriter, r *http.Request) {
	attrs, err := parseToastAttributes(r)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, err)
		return
	}

	inst := h.toastService.SpawnFromAttributes(attrs)
	h.logger.Toast("Toast spawned via HTTP", string(inst.ID), "htmx", IsHTMXRequest(r))

	if IsHTMXRequest(r) {
		h.writeHTMX(w, r, htmx.NewResponse().
			Reswap(htmx.SwapNone).
			AddTrigger(htmx.TriggerDetail(EventToastSpawned, string(inst.ID))))
		return
	}
	WriteJSON(w, http.StatusCreated, toToastResponse(inst))
}

// ListToasts returns every live toast.
func (h *ToastHandlers) ListToasts(w http.ResponseWriter, r *http.Request) {
	active := h.toastService.Active()
	out := make([]ToastResponse, 0, len(active))
	for _, inst := range active {
		out = append(out, toToastResponse(inst))
	}
	WriteJSON(w, http.StatusOK, out)
}

// GetToast returns one live toast.
func (h *ToastHandlers) GetToast(w http.ResponseWriter, r *http.Request) {
	id := toasts.ID(chi.URLParam(r, "toastID"))
	inst, ok := h.toastService.Get(id)
	if !ok {
		WriteError(w, r, http.StatusNotFound, application.ErrToastNotFound)
		return
	}
	WriteJSON(w, http.StatusOK, toToastResponse(inst))
}

// DismissToast handles toast dismissal requests
func (h *ToastHandlers) DismissToast(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "dismiss", h.toastService.Dismiss)
}

// PauseToast freezes a toast's countdown.
func (h *ToastHandlers) PauseToast(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "pause", h.toastService.Pause)
}

// ResumeToast re-arms a paused toast.
func (h *ToastHandlers) ResumeToast(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "resume", h.toastService.Resume)
}

// SignalToast relays an interaction signal from clients without a
// WebSocket connection.
func (h *ToastHandlers) SignalToast(w http.ResponseWriter, r *http.Request) {
	id := toasts.ID(chi.URLParam(r, "toastID"))
	if err := r.ParseForm(); err != nil {
		WriteError(w, r, http.StatusBadRequest, fmt.Errorf("parse form: %w", err))
		return
	}
	signal := toasts.Signal(r.FormValue("signal"))

	if err := h.toastService.Signal(id, signal); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// History returns the most recent lifecycle records.
func (h *ToastHandlers) History(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxHistoryLimit {
			WriteError(w, r, http.StatusBadRequest, fmt.Errorf("%w: %q", contracts.ErrInvalidLimit, raw))
			return
		}
		limit = n
	}

	entries, err := h.toastService.History(r.Context(), limit)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toHistoryResponses(entries))
}

// ToastHistory returns every lifecycle record of one toast.
func (h *ToastHandlers) ToastHistory(w http.ResponseWriter, r *http.Request) {
	id := toasts.ID(chi.URLParam(r, "toastID"))
	entries, err := h.toastService.ToastHistory(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toHistoryResponses(entries))
}

func (h *ToastHandlers) lifecycle(w http.ResponseWriter, r *http.Request, op string, fn func(toasts.ID) (toasts.Instance, error)) {
	id := toasts.ID(chi.URLParam(r, "toastID"))
	if id == "" {
		WriteError(w, r, http.StatusBadRequest, errors.New("toast ID is required"))
		return
	}

	inst, err := fn(id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.logger.Toast("Toast "+op+" via HTTP", string(id), "state", inst.State)

	if IsHTMXRequest(r) {
		h.writeHTMX(w, r, htmx.NewResponse().Reswap(htmx.SwapNone))
		return
	}
	WriteJSON(w, http.StatusOK, toToastResponse(inst))
}

func (h *ToastHandlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, application.ErrToastNotFound):
		WriteError(w, r, http.StatusNotFound, err)
	case errors.Is(err, application.ErrInvalidSignal):
		WriteError(w, r, http.StatusBadRequest, err)
	case errors.Is(err, application.ErrHistoryDisabled):
		WriteError(w, r, http.StatusServiceUnavailable, err)
	default:
		h.logger.Error("Toast request failed", "path", r.URL.Path, "error", err)
		WriteError(w, r, http.StatusInternalServerError, errors.New("internal error"))
	}
}

// parseToastAttributes reads the toast-* fields present in the request.
// Absent fields are left out so defaults apply.
func (h *ToastHandlers) writeHTMX(w http.ResponseWriter, r *http.Request, resp htmx.Response) {
	if err := resp.Write(w); err != nil {
		h.logger.Error("Failed to write htmx response", "path", r.URL.Path, "error", err)
	}
}

func parseToastAttributes(r *http.Request) (map[string]string, error) {
	attrs := make(map[string]string, len(toastAttributes))

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body map[string]any
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil {
			return nil, fmt.Errorf("decode body: %w", err)
		}
		for _, key := range toastAttributes {
			switch v := body[key].(type) {
			case nil:
			case string:
				attrs[key] = v
			case json.Number:
				attrs[key] = v.String()
			default:
				attrs[key] = fmt.Sprint(v)
			}
		}
		return attrs, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("parse form: %w", err)
	}
	for _, key := range toastAttributes {
		if vals, ok := r.Form[key]; ok && len(vals) > 0 {
			attrs[key] = vals[0]
		}
	}
	return attrs, nil
}
