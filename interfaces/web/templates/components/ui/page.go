package ui

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Page renders the demo page: a trigger per configured toast and every
// allocated container with its live toasts.
func Page(v PageView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		head := `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">` +
			`<meta name="viewport" content="width=device-width, initial-scale=1">` +
			`<title>` + templ.EscapeString(v.Title) + `</title>` +
			`<script src="https://cdn.tailwindcss.com"></script>` +
			`<script src="https://unpkg.com/htmx.org@2.0.4"></script>` +
			`<link rel="stylesheet" href="/assets/toast.css">` +
			`</head><body class="min-h-screen bg-slate-50 text-slate-900">` +
			`<main class="mx-auto max-w-3xl p-8"><h1 class="text-2xl font-semibold mb-6">` +
			templ.EscapeString(v.Title) + `</h1><div class="flex flex-wrap gap-3">`
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}

		for _, t := range v.Triggers {
			if err := ToastTrigger(t).Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</div></main><div id="toast-root">`); err != nil {
			return err
		}

		for _, c := range v.Containers {
			if err := ToastContainer(c).Render(ctx, w); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</div><script src="/assets/toast.js" defer></script></body></html>`)
		return err
	})
}
