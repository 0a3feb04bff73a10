package presenters

import (
	"context"

	"toastd/domain/toasts"
	"toastd/interfaces/web/templates/components/ui"
)

// ToastPresenterInterface defines the contract for toast presentation logic.
type ToastPresenterInterface interface {
	ToToastView(inst toasts.Instance) ui.ToastView
	ToPageView(title string, positions []toasts.Position, active []toasts.Instance, defaults toasts.Defaults) ui.PageView
	FormatToast(ctx context.Context, inst toasts.Instance) (string, error)
}

// Ensure ToastPresenter implements the interface.
var _ ToastPresenterInterface = (*ToastPresenter)(nil)
