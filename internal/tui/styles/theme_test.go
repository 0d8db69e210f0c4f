package styles

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestNewTheme(t *testing.T) {
	ClearCustomThemes()
	defer ClearCustomThemes()

	r := lipgloss.NewRenderer(io.Discard)

	th, err := NewTheme(r, "")
	if err != nil {
		t.Fatalf("NewTheme(\"\") error = %v", err)
	}
	if th.Name != DefaultTheme {
		t.Errorf("Name = %q, want default", th.Name)
	}

	th, err = NewTheme(r, "noir")
	if err != nil {
		t.Fatalf("NewTheme(noir) error = %v", err)
	}
	if *th.Palette != *NoirPalette() || th.Renderer() != r {
		t.Error("noir theme mismatch")
	}

	if _, err := NewTheme(r, "dracula"); err == nil || !strings.Contains(err.Error(), "unknown theme") {
		t.Errorf("err = %v, want unknown theme", err)
	}
}

func TestDefaultThemeFor(t *testing.T) {
	th := DefaultThemeFor(nil)
	if th.Name != ThemeHeist || th.Styles == nil {
		t.Errorf("DefaultThemeFor = %+v", th)
	}
}
