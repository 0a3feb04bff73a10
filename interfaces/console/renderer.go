// Package console renders toasts as styled lines on a terminal.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"toastd/domain/toasts"
)

var (
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")) // gray
	titleStyle = lipgloss.NewStyle().Bold(true)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	variantColors = map[toasts.Variant]lipgloss.Color{
		toasts.VariantDefault: lipgloss.Color("7"),  // white
		toasts.VariantSuccess: lipgloss.Color("2"),  // green
		toasts.VariantError:   lipgloss.Color("1"),  // red
		toasts.VariantWarning: lipgloss.Color("3"),  // yellow
		toasts.VariantInfo:    lipgloss.Color("12"), // light blue
	}

	variantMarks = map[toasts.Variant]string{
		toasts.VariantSuccess: "✓",
		toasts.VariantError:   "✗",
		toasts.VariantWarning: "!",
		toasts.VariantInfo:    "i",
	}
)

const progressWidth = 20

// Renderer prints toast lifecycle changes to a writer.
type Renderer struct {
	mu     sync.Mutex
	out    io.Writer
	titles map[toasts.ID]string
}

var _ toasts.Renderer = (*Renderer)(nil)

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{
		out:    out,
		titles: make(map[toasts.ID]string),
	}
}

func (r *Renderer) Mount(inst toasts.Instance) error {
	req := inst.Request
	color := variantColors[req.Variant]

	title := req.Title
	if title == "" {
		title = "(untitled)"
	}
	header := titleStyle.Render(title)
	if mark, ok := variantMarks[req.Variant]; ok && req.HasIcon() {
		header = lipgloss.NewStyle().Foreground(color).Render(mark) + " " + header
	}

	lines := []string{header}
	if req.Description != "" {
		lines = append(lines, req.Description)
	}
	meta := fmt.Sprintf("%s · %s", req.Position, lifetime(inst.Duration))
	if req.Dismissible {
		meta += " · dismissible"
	}
	lines = append(lines, mutedStyle.Render(meta))

	box := boxStyle.BorderForeground(color).Render(strings.Join(lines, "\n"))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.titles[inst.ID] = title
	return r.printf("%s\n", box)
}

func (r *Renderer) StartProgress(id toasts.ID, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.printf("%s %s counting down %s\n", mutedStyle.Render("=>"), r.label(id), formatSeconds(d))
}

func (r *Renderer) FreezeProgress(id toasts.ID, fraction float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.printf("%s %s paused %s %d%%\n", mutedStyle.Render("||"), r.label(id), progressBar(fraction), int(fraction*100+0.5))
}

func (r *Renderer) Exit(id toasts.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.printf("%s %s dismissed\n", mutedStyle.Render("<="), r.label(id))
}

func (r *Renderer) Remove(id toasts.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	err := r.printf("%s %s removed\n", mutedStyle.Render("--"), r.label(id))
	delete(r.titles, id)
	return err
}

func (r *Renderer) label(id toasts.ID) string {
	if title, ok := r.titles[id]; ok {
		return titleStyle.Render(title)
	}
	return string(id)
}

func (r *Renderer) printf(format string, args ...any) error {
	_, err := fmt.Fprintf(r.out, format, args...)
	return err
}

func lifetime(d time.Duration) string {
	if d <= 0 {
		return "persistent"
	}
	return formatSeconds(d)
}

// formatSeconds formats d as seconds with one decimal, e.g. "2.5s".
func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func progressBar(fraction float64) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction*progressWidth + 0.5)
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", progressWidth-filled) + "]"
}
