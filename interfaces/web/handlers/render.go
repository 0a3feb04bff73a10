// Package handlers render provides HTTP response and HTMX utilities.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
	"github.com/angelofallars/htmx-go"

	"toastd/logging"
)

// Client-side events dispatched through the HX-Trigger header.
const (
	EventToastSpawned = "toast-spawned"
	EventToastError   = "toast-error"
)

// RenderResponse renders Templ components to HTTP responses.
func RenderResponse(ctx context.Context, w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(ctx, w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// IsHTMXRequest checks if the request came from HTMX.
func IsHTMXRequest(r *http.Request) bool {
	return htmx.IsHTMX(r)
}

// WriteJSON encodes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Default().Debug("Failed to encode JSON response", "error", err)
	}
}

// WriteError reports an error to htmx as a toast-error trigger without
// swapping, and to everyone else as a JSON body.
func WriteError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if IsHTMXRequest(r) {
		resp := htmx.NewResponse().
			StatusCode(status).
			Reswap(htmx.SwapNone).
			AddTrigger(htmx.TriggerDetail(EventToastError, err.Error()))
		if werr := resp.Write(w); werr != nil {
			logging.Default().Error("Failed to write htmx error response", "path", r.URL.Path, "error", werr)
		}
		return
	}
	WriteJSON(w, status, map[string]string{"error": err.Error()})
}
