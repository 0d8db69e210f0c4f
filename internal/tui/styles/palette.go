package styles

import (
	"slices"
)

// ThemeName represents a named color theme.
type ThemeName string

// Available theme names.
const (
	ThemeHeist ThemeName = "heist" // Slate panels with cyan accents
	ThemeVault ThemeName = "vault" // Warm bronze and gold
	ThemeNoir  ThemeName = "noir"  // Grayscale, for low-color terminals
)

// DefaultTheme is used when no theme is configured.
const DefaultTheme = ThemeHeist

// BuiltinThemes returns all built-in theme names.
func BuiltinThemes() []string {
	return []string{
		string(ThemeHeist),
		string(ThemeVault),
		string(ThemeNoir),
	}
}

// ValidThemes returns all valid theme names (built-in + custom).
func ValidThemes() []string {
	themes := BuiltinThemes()
	themes = append(themes, CustomThemeNames()...)
	return themes
}

// IsValidTheme checks if a theme name is valid (built-in or custom).
func IsValidTheme(name string) bool {
	if slices.Contains(BuiltinThemes(), name) {
		return true
	}
	return IsCustomTheme(name)
}

// ColorPalette defines the board chrome. Squad colors are not part of a
// theme; rows always use the fixed squad palette.
//
// All colors are hex strings (#RGB or #RRGGBB).
type ColorPalette struct {
	// Surface is the outer panel background.
	Surface string
	// Background is the track header and row background.
	Background string
	// Accent colors the title and the panel frame.
	Accent string
	// Border outlines running rows and divides bar quadrants.
	Border string
	// HeaderBorder outlines the track header.
	HeaderBorder string
	// Track is the empty part of a progress bar and the chip background.
	Track string
	// Text is used for team names and percentages.
	Text string
	// Muted is used for chip text and the placeholder headline.
	Muted string
	// Subtle is used for subtitles and waypoint labels.
	Subtle string
	// Faint is used for the placeholder hint.
	Faint string
	// Complete outlines finished rows and colors the ESCAPED chip.
	Complete string
	// Error colors feed errors in the status line.
	Error string

	// TrackStops is the header strip gradient, left to right.
	TrackStops [5]string
	// Markers color the waypoint dots on the header strip.
	Markers [5]string
}

// HeistPalette returns the default slate/cyan palette.
func HeistPalette() *ColorPalette {
	return &ColorPalette{
		Surface:      "#1E293B",
		Background:   "#0F172A",
		Accent:       "#22D3EE",
		Border:       "#475569",
		HeaderBorder: "#334155",
		Track:        "#334155",
		Text:         "#FFFFFF",
		Muted:        "#94A3B8",
		Subtle:       "#64748B",
		Faint:        "#475569",
		Complete:     "#4ADE80",
		Error:        "#F87171",
		TrackStops:   [5]string{"#334155", "#164E63", "#831843", "#78350F", "#14532D"},
		Markers:      [5]string{"#94A3B8", "#22D3EE", "#F472B6", "#FBBF24", "#4ADE80"},
	}
}

// VaultPalette returns a bronze/gold palette.
func VaultPalette() *ColorPalette {
	return &ColorPalette{
		Surface:      "#292524",
		Background:   "#1C1917",
		Accent:       "#FBBF24",
		Border:       "#57534E",
		HeaderBorder: "#44403C",
		Track:        "#44403C",
		Text:         "#FAFAF9",
		Muted:        "#A8A29E",
		Subtle:       "#78716C",
		Faint:        "#57534E",
		Complete:     "#4ADE80",
		Error:        "#F87171",
		TrackStops:   [5]string{"#44403C", "#713F12", "#7C2D12", "#78350F", "#14532D"},
		Markers:      [5]string{"#A8A29E", "#FACC15", "#FB923C", "#FBBF24", "#4ADE80"},
	}
}

// NoirPalette returns a grayscale palette.
func NoirPalette() *ColorPalette {
	return &ColorPalette{
		Surface:      "#171717",
		Background:   "#0A0A0A",
		Accent:       "#E5E5E5",
		Border:       "#525252",
		HeaderBorder: "#404040",
		Track:        "#262626",
		Text:         "#FFFFFF",
		Muted:        "#A3A3A3",
		Subtle:       "#737373",
		Faint:        "#525252",
		Complete:     "#D4D4D4",
		Error:        "#FAFAFA",
		TrackStops:   [5]string{"#262626", "#404040", "#525252", "#737373", "#A3A3A3"},
		Markers:      [5]string{"#737373", "#A3A3A3", "#D4D4D4", "#E5E5E5", "#FFFFFF"},
	}
}

// GetPalette returns the palette for a theme name. Unknown names fall back
// to the default palette.
func GetPalette(name ThemeName) *ColorPalette {
	switch name {
	case ThemeVault:
		return VaultPalette()
	case ThemeNoir:
		return NoirPalette()
	case ThemeHeist:
		return HeistPalette()
	}
	if custom := GetCustomTheme(name); custom != nil {
		return custom.ToPalette()
	}
	return HeistPalette()
}

// Faded returns a copy of p with every color pulled toward Surface, the
// way a translucent element looks over the panel. Surface itself is kept.
func (p *ColorPalette) Faded(opacity float64) *ColorPalette {
	if opacity >= 1 {
		return p
	}
	f := func(c string) string { return Fade(c, opacity, p.Surface) }
	out := *p
	out.Background = f(p.Background)
	out.Accent = f(p.Accent)
	out.Border = f(p.Border)
	out.HeaderBorder = f(p.HeaderBorder)
	out.Track = f(p.Track)
	out.Text = f(p.Text)
	out.Muted = f(p.Muted)
	out.Subtle = f(p.Subtle)
	out.Faint = f(p.Faint)
	out.Complete = f(p.Complete)
	out.Error = f(p.Error)
	for i := range out.TrackStops {
		out.TrackStops[i] = f(p.TrackStops[i])
		out.Markers[i] = f(p.Markers[i])
	}
	return &out
}
