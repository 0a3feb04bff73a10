package toasts

import "time"

// Renderer owns the visual representation of toasts. Methods are invoked
// while the Manager holds its lock and must not call back into the Manager
// synchronously. Returned errors are logged and otherwise ignored.
type Renderer interface {
	// Mount builds the visual element and appends it to its container.
	Mount(inst Instance) error
	// StartProgress runs the progress indicator down over d.
	StartProgress(id ID, d time.Duration) error
	// FreezeProgress stops the indicator at fraction (1 = full).
	FreezeProgress(id ID, fraction float64) error
	// Exit starts the exit transition.
	Exit(id ID) error
	// Remove detaches the element.
	Remove(id ID) error
}

// SignalSource delivers interaction signals from the rendering side.
type SignalSource interface {
	OnSignal(handler func(id ID, signal Signal))
}

// Observer is notified after each lifecycle transition is applied. Like
// Renderer, it runs under the Manager lock.
type Observer interface {
	ToastSpawned(inst Instance)
	ToastPaused(inst Instance)
	ToastResumed(inst Instance)
	ToastDismissed(inst Instance)
	ToastRemoved(inst Instance)
}

// NopRenderer discards every rendering call.
type NopRenderer struct{}

func (NopRenderer) Mount(Instance) error                  { return nil }
func (NopRenderer) StartProgress(ID, time.Duration) error { return nil }
func (NopRenderer) FreezeProgress(ID, float64) error      { return nil }
func (NopRenderer) Exit(ID) error                         { return nil }
func (NopRenderer) Remove(ID) error                       { return nil }

type nopObserver struct{}

func (nopObserver) ToastSpawned(Instance)   {}
func (nopObserver) ToastPaused(Instance)    {}
func (nopObserver) ToastResumed(Instance)   {}
func (nopObserver) ToastDismissed(Instance) {}
func (nopObserver) ToastRemoved(Instance)   {}

// MultiRenderer fans every call out to each renderer in turn and returns
// the first error.
type MultiRenderer []Renderer

func (m MultiRenderer) Mount(inst Instance) error {
	return m.each(func(r Renderer) error { return r.Mount(inst) })
}

func (m MultiRenderer) StartProgress(id ID, d time.Duration) error {
	return m.each(func(r Renderer) error { return r.StartProgress(id, d) })
}

func (m MultiRenderer) FreezeProgress(id ID, fraction float64) error {
	return m.each(func(r Renderer) error { return r.FreezeProgress(id, fraction) })
}

func (m MultiRenderer) Exit(id ID) error {
	return m.each(func(r Renderer) error { return r.Exit(id) })
}

func (m MultiRenderer) Remove(id ID) error {
	return m.each(func(r Renderer) error { return r.Remove(id) })
}

func (m MultiRenderer) each(fn func(Renderer) error) error {
	var first error
	for _, r := range m {
		if err := fn(r); err != nil && first == nil {
			first = err
		}
	}
	return first
}
