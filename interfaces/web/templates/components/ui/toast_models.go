package ui

// ToastView represents the view model of one mounted toast.
type ToastView struct {
	ID          string
	Title       string
	Description string
	Variant     string
	Position    string
	State       string

	Dismissible   bool
	ShowIndicator bool
	ShowIcon      bool

	DurationMs  int64
	RemainingMs int64
	// Fraction is the share of the countdown left, drawn as the indicator width.
	Fraction float64
	Paused   bool
}

// ToastContainerView represents one stacking container.
type ToastContainerView struct {
	ID       string
	Position string
	Toasts   []ToastView
}

// ToastTriggerView represents a button that spawns a toast when clicked.
type ToastTriggerView struct {
	Label string
	// Attributes are the toast-* trigger attributes, rendered as data-*.
	Attributes map[string]string
	// Values are posted to the spawn endpoint.
	Values string
	Action string
}

// PageView is the demo page.
type PageView struct {
	Title      string
	Triggers   []ToastTriggerView
	Containers []ToastContainerView
}
