package toasts

import (
	"time"

	"github.com/google/uuid"
)

// ExitGracePeriod is the fixed delay between a dismissal and the removal of
// the toast, reserved for the exit transition.
const ExitGracePeriod = 300 * time.Millisecond

// ID is the opaque handle of a spawned toast.
type ID string

// NewID returns a fresh toast handle.
func NewID() ID {
	return ID("toast-" + uuid.NewString())
}

func (id ID) String() string { return string(id) }

// Variant selects the visual flavour of a toast.
type Variant string

const (
	VariantDefault Variant = "default"
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantWarning Variant = "warning"
	VariantInfo    Variant = "info"
)

// Variants lists every known variant in display order.
var Variants = []Variant{VariantDefault, VariantSuccess, VariantError, VariantWarning, VariantInfo}

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool {
	switch v {
	case VariantDefault, VariantSuccess, VariantError, VariantWarning, VariantInfo:
		return true
	}
	return false
}

// Position is the screen area a toast stacks into.
type Position string

const (
	PositionTopLeft      Position = "top-left"
	PositionTopRight     Position = "top-right"
	PositionTopCenter    Position = "top-center"
	PositionBottomLeft   Position = "bottom-left"
	PositionBottomRight  Position = "bottom-right"
	PositionBottomCenter Position = "bottom-center"
)

// Positions lists every known position.
var Positions = []Position{
	PositionTopLeft, PositionTopCenter, PositionTopRight,
	PositionBottomLeft, PositionBottomCenter, PositionBottomRight,
}

// Valid reports whether p is a known position.
func (p Position) Valid() bool {
	switch p {
	case PositionTopLeft, PositionTopRight, PositionTopCenter,
		PositionBottomLeft, PositionBottomRight, PositionBottomCenter:
		return true
	}
	return false
}

// ContainerID is the element id of the stacking container for p.
func (p Position) ContainerID() string {
	return "toast-container-" + string(p)
}

// State is the lifecycle state of a toast instance.
type State string

const (
	// StateArmed means the countdown timer is running.
	StateArmed State = "armed"
	// StatePaused means the timer is cancelled and the remaining time frozen.
	StatePaused State = "paused"
	// StatePersistent is the state of toasts without auto-dismiss.
	StatePersistent State = "persistent"
	// StateDismissing means the exit transition is running.
	StateDismissing State = "dismissing"
	// StateRemoved is terminal.
	StateRemoved State = "removed"
)

// Live reports whether the toast is still mounted and interactive.
func (s State) Live() bool {
	return s == StateArmed || s == StatePaused || s == StatePersistent
}

// DismissReason records which path dismissed a toast.
type DismissReason string

const (
	ReasonTimeout DismissReason = "timeout"
	ReasonUser    DismissReason = "user"
	ReasonAPI     DismissReason = "api"
)

// Signal is a derived interaction reported by the rendering side.
type Signal string

const (
	SignalPointerEnter     Signal = "pointer-enter"
	SignalPointerLeave     Signal = "pointer-leave"
	SignalDismissRequested Signal = "dismiss"
)

// Valid reports whether s is a known signal.
func (s Signal) Valid() bool {
	return s == SignalPointerEnter || s == SignalPointerLeave || s == SignalDismissRequested
}

// Instance is a point-in-time snapshot of a toast.
type Instance struct {
	ID      ID
	Request Request
	State   State

	// Duration is the configured lifetime; zero for persistent toasts.
	Duration time.Duration
	// Remaining is the countdown left at snapshot time.
	Remaining time.Duration
	// StartedAt is the time of the last spawn or resume.
	StartedAt time.Time
	Paused    bool

	CreatedAt     time.Time
	DismissedAt   time.Time
	DismissReason DismissReason
}

// Fraction is the share of the countdown still left, in [0, 1]. Persistent
// toasts report 1.
func (i Instance) Fraction() float64 {
	if i.Duration <= 0 {
		return 1
	}
	return float64(i.Remaining) / float64(i.Duration)
}
