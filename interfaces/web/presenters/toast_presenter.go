package presenters

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"toastd/domain/toasts"
	"toastd/interfaces/web/templates/components/ui"
)

// ToastPresenter handles toast view logic and formatting.
type ToastPresenter struct {
	spawnAction string
}

// NewToastPresenter creates a new toast presenter. Triggers post to spawnAction.
func NewToastPresenter(spawnAction string) *ToastPresenter {
	return &ToastPresenter{spawnAction: spawnAction}
}

// ToToastView transforms a toast snapshot into its view model.
func (p *ToastPresenter) ToToastView(inst toasts.Instance) ui.ToastView {
	req := inst.Request
	return ui.ToastView{
		ID:            string(inst.ID),
		Title:         req.Title,
		Description:   req.Description,
		Variant:       string(req.Variant),
		Position:      string(req.Position),
		State:         string(inst.State),
		Dismissible:   req.Dismissible,
		ShowIndicator: req.HasIndicator(),
		ShowIcon:      req.HasIcon(),
		DurationMs:    inst.Duration.Milliseconds(),
		RemainingMs:   inst.Remaining.Milliseconds(),
		Fraction:      inst.Fraction(),
		Paused:        inst.Paused,
	}
}

// FormatToast renders a toast to an HTML fragment.
func (p *ToastPresenter) FormatToast(ctx context.Context, inst toasts.Instance) (string, error) {
	var buf strings.Builder
	if err := ui.Toast(p.ToToastView(inst)).Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ToContainerViews groups active toasts by their allocated containers.
// Every position in positions yields a container, even an empty one.
func (p *ToastPresenter) ToContainerViews(positions []toasts.Position, active []toasts.Instance) []ui.ToastContainerView {
	byPos := make(map[toasts.Position][]ui.ToastView, len(positions))
	for _, inst := range active {
		pos := inst.Request.Position
		byPos[pos] = append(byPos[pos], p.ToToastView(inst))
	}

	views := make([]ui.ToastContainerView, 0, len(positions))
	for _, pos := range positions {
		views = append(views, ui.ToastContainerView{
			ID:       pos.ContainerID(),
			Position: string(pos),
			Toasts:   byPos[pos],
		})
	}
	return views
}

// ToTriggerViews creates one trigger per variant plus a persistent one.
func (p *ToastPresenter) ToTriggerViews(defaults toasts.Defaults) []ui.ToastTriggerView {
	var triggers []ui.ToastTriggerView
	for _, variant := range toasts.Variants {
		req := defaults.Request()
		req.Variant = variant
		req.Title = strings.ToUpper(string(variant[:1])) + string(variant[1:])
		req.Description = "Spawned at the " + string(req.Position) + " corner"
		triggers = append(triggers, p.trigger("Show "+string(variant), req))
	}

	sticky := defaults.Request()
	sticky.Title = "Persistent"
	sticky.Description = "Stays until closed"
	sticky.Duration = 0
	sticky.Position = toasts.PositionTopCenter
	triggers = append(triggers, p.trigger("Show persistent", sticky))

	quick := defaults.Request()
	quick.Title = "Quick"
	quick.Variant = toasts.VariantInfo
	quick.Duration = time.Second
	quick.Position = toasts.PositionBottomLeft
	triggers = append(triggers, p.trigger("Show quick", quick))

	return triggers
}

// ToPageView assembles the demo page.
func (p *ToastPresenter) ToPageView(title string, positions []toasts.Position, active []toasts.Instance, defaults toasts.Defaults) ui.PageView {
	return ui.PageView{
		Title:      title,
		Triggers:   p.ToTriggerViews(defaults),
		Containers: p.ToContainerViews(positions, active),
	}
}

func (p *ToastPresenter) trigger(label string, req toasts.Request) ui.ToastTriggerView {
	attrs := req.Attributes()
	values, err := json.Marshal(attrs)
	if err != nil {
		values = []byte("{}")
	}
	return ui.ToastTriggerView{
		Label:      label,
		Attributes: attrs,
		Values:     string(values),
		Action:     p.spawnAction,
	}
}
