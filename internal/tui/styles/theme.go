package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a resolved theme: its name, palette, and styles bound to a
// renderer.
type Theme struct {
	Name ThemeName
	*Styles
}

// NewTheme resolves a built-in or registered custom theme. An empty name
// selects the default theme.
func NewTheme(r *lipgloss.Renderer, name string) (*Theme, error) {
	if name == "" {
		name = string(DefaultTheme)
	}
	if !IsValidTheme(name) {
		return nil, fmt.Errorf("unknown theme %q (valid: %v)", name, ValidThemes())
	}
	tn := ThemeName(name)
	return &Theme{Name: tn, Styles: NewStyles(r, GetPalette(tn))}, nil
}

// DefaultThemeFor returns the default theme bound to r.
func DefaultThemeFor(r *lipgloss.Renderer) *Theme {
	return &Theme{Name: DefaultTheme, Styles: NewStyles(r, HeistPalette())}
}
