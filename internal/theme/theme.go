// Package theme resolves the dashboard colour palette for light and dark
// modes from an optional deployment override.
package theme

import "fmt"

// RGB is a resolved colour
type RGB struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
}

// Palette is a resolved pair of brand colours
type Palette struct {
	Primary   RGB `json:"primary" yaml:"primary"`
	Secondary RGB `json:"secondary" yaml:"secondary"`
}

// Resolved is a fully populated theme
type Resolved struct {
	Light Palette `json:"light" yaml:"light"`
	Dark  Palette `json:"dark" yaml:"dark"`
}

// RGBOverride is a colour as written in configuration. Channels are pointers
// so that a missing channel can be told apart from zero.
type RGBOverride struct {
	R *int `json:"r" yaml:"r"`
	G *int `json:"g" yaml:"g"`
	B *int `json:"b" yaml:"b"`
}

// PaletteOverride is a palette as written in configuration
type PaletteOverride struct {
	Primary   *RGBOverride `json:"primary" yaml:"primary"`
	Secondary *RGBOverride `json:"secondary" yaml:"secondary"`
}

// Theme is the deployment's palette override
type Theme struct {
	Light *PaletteOverride `json:"light" yaml:"light"`
	Dark  *PaletteOverride `json:"dark" yaml:"dark"`
}

// WarningKind classifies a non-fatal resolution problem
type WarningKind string

// PaletteChannelOutOfRange is reported when an override colour has a missing
// channel or a channel outside [0,255]
const PaletteChannelOutOfRange WarningKind = "PaletteChannelOutOfRange"

// Warning describes one override colour that was replaced by its default
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Mode    string      `json:"mode"`
	Role    string      `json:"role"`
	Channel string      `json:"channel"`
	Value   *int        `json:"value,omitempty"`
}

func (w Warning) String() string {
	if w.Value == nil {
		return fmt.Sprintf("%s: %s.%s.%s is missing", w.Kind, w.Mode, w.Role, w.Channel)
	}
	return fmt.Sprintf("%s: %s.%s.%s = %d is outside [0,255]", w.Kind, w.Mode, w.Role, w.Channel, *w.Value)
}

// Default returns the built-in theme
func Default() Resolved {
	return Resolved{
		Light: Palette{
			Primary:   RGB{R: 0, G: 108, B: 163},
			Secondary: RGB{R: 96, G: 239, B: 255},
		},
		Dark: Palette{
			Primary:   RGB{R: 83, G: 183, B: 226},
			Secondary: RGB{R: 96, G: 239, B: 255},
		},
	}
}

// Resolve applies an override on top of Default. Any colour with a missing or
// out-of-range channel keeps its default value and is reported as a Warning;
// resolution itself never fails.
func Resolve(override *Theme) (Resolved, []Warning) {
	out := Default()
	if override == nil {
		return out, nil
	}

	var warnings []Warning
	warnings = resolvePalette(&out.Light, override.Light, "light", warnings)
	warnings = resolvePalette(&out.Dark, override.Dark, "dark", warnings)
	return out, warnings
}

func resolvePalette(dst *Palette, override *PaletteOverride, mode string, warnings []Warning) []Warning {
	if override == nil {
		return warnings
	}
	warnings = resolveColour(&dst.Primary, override.Primary, mode, "primary", warnings)
	warnings = resolveColour(&dst.Secondary, override.Secondary, mode, "secondary", warnings)
	return warnings
}

func resolveColour(dst *RGB, override *RGBOverride, mode, role string, warnings []Warning) []Warning {
	if override == nil {
		return warnings
	}

	channels := []struct {
		name  string
		value *int
	}{
		{"r", override.R},
		{"g", override.G},
		{"b", override.B},
	}

	valid := true
	for _, ch := range channels {
		if ch.value == nil || *ch.value < 0 || *ch.value > 255 {
			valid = false
			warnings = append(warnings, Warning{
				Kind:    PaletteChannelOutOfRange,
				Mode:    mode,
				Role:    role,
				Channel: ch.name,
				Value:   ch.value,
			})
		}
	}

	if valid {
		*dst = RGB{R: uint8(*override.R), G: uint8(*override.G), B: uint8(*override.B)}
	}
	return warnings
}

// Hex renders the colour as #rrggbb
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
