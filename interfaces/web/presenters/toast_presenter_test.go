package presenters

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toastd/domain/toasts"
)

func createTestInstance(variant toasts.Variant, d time.Duration) toasts.Instance {
	req := toasts.BuiltinDefaults().Request()
	req.Title = "Saved <draft>"
	req.Description = "All changes stored"
	req.Variant = variant
	req.Duration = d
	return toasts.Instance{
		ID:        "toast-abc",
		Request:   req,
		State:     toasts.StateArmed,
		Duration:  d,
		Remaining: d / 2,
	}
}

func TestToastPresenter_ToToastView(t *testing.T) {
	p := NewToastPresenter("/toasts")

	view := p.ToToastView(createTestInstance(toasts.VariantSuccess, 4*time.Second))

	assert.Equal(t, "toast-abc", view.ID)
	assert.Equal(t, "success", view.Variant)
	assert.True(t, view.ShowIndicator)
	assert.True(t, view.ShowIcon)
	assert.Equal(t, int64(4000), view.DurationMs)
	assert.Equal(t, int64(2000), view.RemainingMs)
	assert.InDelta(t, 0.5, view.Fraction, 1e-9)
}

func TestToastPresenter_FormatToast(t *testing.T) {
	p := NewToastPresenter("/toasts")

	tests := []struct {
		name        string
		inst        toasts.Instance
		contains    []string
		notContains []string
	}{
		{
			name: "timed success toast",
			inst: createTestInstance(toasts.VariantSuccess, 3*time.Second),
			contains: []string{
				`id="toast-abc"`,
				`data-variant="success"`,
				`Saved &lt;draft&gt;`,
				`toast-progress`,
				`<svg`,
				`data-toast-dismiss`,
			},
			notContains: []string{"<draft>"},
		},
		{
			name:        "persistent default toast has neither indicator nor icon",
			inst:        createTestInstance(toasts.VariantDefault, 0),
			contains:    []string{`data-duration-ms="0"`, `data-toast-dismiss`},
			notContains: []string{"toast-progress", "size-5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := p.FormatToast(context.Background(), tt.inst)

			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, html, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, html, s)
			}
		})
	}
}

func TestToastPresenter_ToContainerViews(t *testing.T) {
	p := NewToastPresenter("/toasts")
	a := createTestInstance(toasts.VariantInfo, time.Second)
	b := createTestInstance(toasts.VariantInfo, time.Second)
	b.ID = "toast-b"

	views := p.ToContainerViews(
		[]toasts.Position{toasts.PositionTopLeft, toasts.PositionBottomRight},
		[]toasts.Instance{a, b},
	)

	require.Len(t, views, 2)
	assert.Equal(t, "toast-container-top-left", views[0].ID)
	assert.Empty(t, views[0].Toasts)
	assert.Equal(t, []string{"toast-abc", "toast-b"}, []string{views[1].Toasts[0].ID, views[1].Toasts[1].ID})
}

func TestToastPresenter_ToTriggerViews(t *testing.T) {
	p := NewToastPresenter("/toasts")

	triggers := p.ToTriggerViews(toasts.BuiltinDefaults())

	require.Len(t, triggers, len(toasts.Variants)+2)
	first := triggers[0]
	assert.Equal(t, "/toasts", first.Action)
	assert.Equal(t, "default", first.Attributes[toasts.AttrVariant])

	var values map[string]string
	require.NoError(t, json.Unmarshal([]byte(first.Values), &values))
	assert.Equal(t, "3000", values[toasts.AttrDuration])

	persistent := triggers[len(toasts.Variants)]
	assert.Equal(t, "0", persistent.Attributes[toasts.AttrDuration])
}
