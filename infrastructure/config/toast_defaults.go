package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"toastd/domain/toasts"
)

// toastDefaultsFile mirrors toasts.Defaults with optional fields so a file
// can override a subset.
type toastDefaultsFile struct {
	Variant       *string        `yaml:"variant"`
	Position      *string        `yaml:"position"`
	Duration      *time.Duration `yaml:"duration"`
	Dismissible   *bool          `yaml:"dismissible"`
	ShowIndicator *bool          `yaml:"show_indicator"`
	ShowIcon      *bool          `yaml:"show_icon"`
}

// LoadToastDefaultsFile overlays the YAML file at path onto base. Unknown
// variants or positions in the file are rejected.
func LoadToastDefaultsFile(path string, base toasts.Defaults) (toasts.Defaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read toast defaults: %w", err)
	}
	return ParseToastDefaults(data, base)
}

// ParseToastDefaults overlays YAML document data onto base.
func ParseToastDefaults(data []byte, base toasts.Defaults) (toasts.Defaults, error) {
	var file toastDefaultsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return base, fmt.Errorf("parse toast defaults: %w", err)
	}

	out := base
	if file.Variant != nil {
		v := toasts.Variant(*file.Variant)
		if !v.Valid() {
			return base, fmt.Errorf("toast defaults: unknown variant %q", *file.Variant)
		}
		out.Variant = v
	}
	if file.Position != nil {
		p := toasts.Position(*file.Position)
		if !p.Valid() {
			return base, fmt.Errorf("toast defaults: unknown position %q", *file.Position)
		}
		out.Position = p
	}
	if file.Duration != nil {
		if *file.Duration < 0 {
			return base, fmt.Errorf("toast defaults: negative duration %s", *file.Duration)
		}
		out.Duration = *file.Duration
	}
	if file.Dismissible != nil {
		out.Dismissible = *file.Dismissible
	}
	if file.ShowIndicator != nil {
		out.ShowIndicator = *file.ShowIndicator
	}
	if file.ShowIcon != nil {
		out.ShowIcon = *file.ShowIcon
	}
	return out, nil
}
