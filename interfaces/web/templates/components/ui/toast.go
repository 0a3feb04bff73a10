package ui

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"toastd/interfaces/web/templates/components/core"
)

var variantClasses = map[string]string{
	"default": "bg-white text-slate-900 border-slate-200",
	"success": "bg-white text-slate-900 border-green-200",
	"error":   "bg-white text-slate-900 border-red-200",
	"warning": "bg-white text-slate-900 border-yellow-200",
	"info":    "bg-white text-slate-900 border-blue-200",
}

var indicatorClasses = map[string]string{
	"default": "bg-slate-500",
	"success": "bg-green-500",
	"error":   "bg-red-500",
	"warning": "bg-yellow-500",
	"info":    "bg-blue-500",
}

// Lucide icon paths, 24x24 viewBox.
var variantIcons = map[string]struct{ class, paths string }{
	"success": {"text-green-500", `<circle cx="12" cy="12" r="10"/><path d="m9 12 2 2 4-4"/>`},
	"error":   {"text-red-500", `<circle cx="12" cy="12" r="10"/><path d="m15 9-6 6"/><path d="m9 9 6 6"/>`},
	"warning": {"text-yellow-500", `<path d="m21.73 18-8-14a2 2 0 0 0-3.48 0l-8 14A2 2 0 0 0 4 21h16a2 2 0 0 0 1.73-3"/><path d="M12 9v4"/><path d="M12 17h.01"/>`},
	"info":    {"text-blue-500", `<circle cx="12" cy="12" r="10"/><path d="M12 16v-4"/><path d="M12 8h.01"/>`},
}

// Toast renders one toast element. The client glue animates the indicator
// and reports hover and close interactions by the element id.
func Toast(v ToastView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder

		b.WriteString(`<div`)
		b.WriteString(core.Attr("id", v.ID))
		b.WriteString(core.Attr("class", core.Classes(
			"toast pointer-events-auto relative w-full overflow-hidden rounded-lg border shadow-sm",
			variantClasses[v.Variant],
		)))
		b.WriteString(` role="status" aria-live="polite" data-toast`)
		b.WriteString(core.Attr("data-variant", v.Variant))
		b.WriteString(core.Attr("data-position", v.Position))
		b.WriteString(core.Attr("data-state", v.State))
		b.WriteString(core.Attr("data-duration-ms", strconv.FormatInt(v.DurationMs, 10)))
		b.WriteString(core.Attr("data-remaining-ms", strconv.FormatInt(v.RemainingMs, 10)))
		b.WriteString(core.BoolAttr("data-paused", v.Paused))
		b.WriteString(`>`)

		if v.ShowIndicator {
			b.WriteString(`<div class="absolute top-0 left-0 right-0 h-1 overflow-hidden">`)
			b.WriteString(`<div`)
			b.WriteString(core.Attr("class", core.Classes("toast-progress h-full origin-left", indicatorClasses[v.Variant])))
			b.WriteString(core.Attr("style", fmt.Sprintf("transform: scaleX(%.4f)", v.Fraction)))
			b.WriteString(`></div></div>`)
		}

		b.WriteString(`<div class="flex items-center gap-3 pt-5 pb-4 px-4">`)
		if icon, ok := variantIcons[v.Variant]; ok && v.ShowIcon {
			b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true"`)
			b.WriteString(core.Attr("class", core.Classes("size-5 flex-shrink-0", icon.class)))
			b.WriteString(`>`)
			b.WriteString(icon.paths)
			b.WriteString(`</svg>`)
		}

		b.WriteString(`<span class="flex-1 min-w-0">`)
		if v.Title != "" {
			b.WriteString(`<p class="toast-title text-sm font-semibold truncate">`)
			b.WriteString(templ.EscapeString(v.Title))
			b.WriteString(`</p>`)
		}
		if v.Description != "" {
			b.WriteString(`<p class="toast-description text-sm opacity-90 mt-1">`)
			b.WriteString(templ.EscapeString(v.Description))
			b.WriteString(`</p>`)
		}
		b.WriteString(`</span>`)

		if v.Dismissible {
			b.WriteString(`<button type="button" class="toast-close rounded p-1 opacity-75 hover:opacity-100" aria-label="Close" data-toast-dismiss>`)
			b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" class="size-4" aria-hidden="true"><path d="M18 6 6 18"/><path d="m6 6 12 12"/></svg>`)
			b.WriteString(`</button>`)
		}
		b.WriteString(`</div></div>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

// ToastContainer renders the stacking container of one position with the
// toasts already in it.
func ToastContainer(v ToastContainerView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		open := `<div` +
			core.Attr("id", v.ID) +
			core.Attr("class", "toast-container pointer-events-none fixed z-50 flex flex-col gap-2 p-4 w-full md:max-w-[420px]") +
			core.Attr("data-position", v.Position) +
			` data-toast-container>`
		if _, err := io.WriteString(w, open); err != nil {
			return err
		}
		for _, t := range v.Toasts {
			if err := Toast(t).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// ToastTrigger renders a button carrying the toast configuration as data
// attributes. Clicking it posts the configuration with htmx.
func ToastTrigger(v ToastTriggerView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<button type="button" class="rounded-md border border-slate-300 bg-white px-4 py-2 text-sm font-medium hover:bg-slate-50" data-toast-trigger`)

		keys := make([]string, 0, len(v.Attributes))
		for k := range v.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(core.Attr("data-"+k, v.Attributes[k]))
		}
		if v.Action != "" {
			b.WriteString(core.Attr("hx-post", v.Action))
			b.WriteString(core.Attr("hx-vals", v.Values))
			b.WriteString(` hx-swap="none"`)
		}
		b.WriteString(`>`)
		b.WriteString(templ.EscapeString(v.Label))
		b.WriteString(`</button>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}
