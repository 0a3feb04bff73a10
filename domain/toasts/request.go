package toasts

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DefaultDuration is the lifetime used when a trigger does not specify one.
const DefaultDuration = 3 * time.Second

// maxDurationMillis is the longest duration attribute a time.Duration can hold.
const maxDurationMillis = math.MaxInt64 / int64(time.Millisecond)

// Request describes a toast to spawn.
type Request struct {
	Title         string
	Description   string
	Variant       Variant
	Position      Position
	Duration      time.Duration
	Dismissible   bool
	ShowIndicator bool
	ShowIcon      bool
}

// Normalize degrades unknown values to defaults instead of failing.
func (r Request) Normalize() Request {
	if !r.Variant.Valid() {
		r.Variant = VariantDefault
	}
	if !r.Position.Valid() {
		r.Position = PositionBottomRight
	}
	if r.Duration < 0 {
		r.Duration = 0
	}
	return r
}

// HasIndicator reports whether a progress indicator is rendered.
func (r Request) HasIndicator() bool {
	return r.ShowIndicator && r.Duration > 0
}

// HasIcon reports whether a variant icon is rendered. The default variant
// has no icon.
func (r Request) HasIcon() bool {
	return r.ShowIcon && r.Variant != VariantDefault
}

// Defaults holds the values a trigger falls back to for absent attributes.
type Defaults struct {
	Variant       Variant       `yaml:"variant"`
	Position      Position      `yaml:"position"`
	Duration      time.Duration `yaml:"duration"`
	Dismissible   bool          `yaml:"dismissible"`
	ShowIndicator bool          `yaml:"show_indicator"`
	ShowIcon      bool          `yaml:"show_icon"`
}

// BuiltinDefaults returns the trigger defaults used when nothing is configured.
func BuiltinDefaults() Defaults {
	return Defaults{
		Variant:       VariantDefault,
		Position:      PositionBottomRight,
		Duration:      DefaultDuration,
		Dismissible:   true,
		ShowIndicator: true,
		ShowIcon:      true,
	}
}

// Request returns a request populated only with the defaults.
func (d Defaults) Request() Request {
	return Request{
		Variant:       d.Variant,
		Position:      d.Position,
		Duration:      d.Duration,
		Dismissible:   d.Dismissible,
		ShowIndicator: d.ShowIndicator,
		ShowIcon:      d.ShowIcon,
	}.Normalize()
}

// Trigger attribute names, without the data- prefix.
const (
	AttrTitle         = "toast-title"
	AttrDescription   = "toast-description"
	AttrVariant       = "toast-variant"
	AttrPosition      = "toast-position"
	AttrDuration      = "toast-duration"
	AttrDismissible   = "toast-dismissible"
	AttrShowIndicator = "toast-show-indicator"
	AttrIcon          = "toast-icon"
)

// RequestFromAttributes maps declarative trigger attributes onto a Request.
// The duration attribute is in milliseconds; an explicit "0" yields a
// persistent toast. Absent, unparseable or out of range values take the
// default.
func RequestFromAttributes(attrs map[string]string, d Defaults) Request {
	req := d.Request()

	req.Title = strings.TrimSpace(attrs[AttrTitle])
	req.Description = strings.TrimSpace(attrs[AttrDescription])

	if v, ok := attrs[AttrVariant]; ok && v != "" {
		req.Variant = Variant(strings.ToLower(strings.TrimSpace(v)))
	}
	if v, ok := attrs[AttrPosition]; ok && v != "" {
		req.Position = Position(strings.ToLower(strings.TrimSpace(v)))
	}
	if v, ok := attrs[AttrDuration]; ok {
		if ms, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil && ms >= 0 && ms <= maxDurationMillis {
			req.Duration = time.Duration(ms) * time.Millisecond
		}
	}
	req.Dismissible = parseBool(attrs, AttrDismissible, req.Dismissible)
	req.ShowIndicator = parseBool(attrs, AttrShowIndicator, req.ShowIndicator)
	req.ShowIcon = parseBool(attrs, AttrIcon, req.ShowIcon)

	return req.Normalize()
}

// Attributes is the inverse of RequestFromAttributes.
func (r Request) Attributes() map[string]string {
	return map[string]string{
		AttrTitle:         r.Title,
		AttrDescription:   r.Description,
		AttrVariant:       string(r.Variant),
		AttrPosition:      string(r.Position),
		AttrDuration:      strconv.FormatInt(r.Duration.Milliseconds(), 10),
		AttrDismissible:   strconv.FormatBool(r.Dismissible),
		AttrShowIndicator: strconv.FormatBool(r.ShowIndicator),
		AttrIcon:          strconv.FormatBool(r.ShowIcon),
	}
}

func parseBool(attrs map[string]string, key string, def bool) bool {
	v, ok := attrs[key]
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}
