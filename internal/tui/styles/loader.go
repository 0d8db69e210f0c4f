package styles

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ThemeFile represents a custom theme definition loaded from YAML.
type ThemeFile struct {
	// Name is the theme's display name (e.g., "Midnight Job")
	Name string `yaml:"name"`
	// Author is the theme creator's name (optional)
	Author string `yaml:"author,omitempty"`
	// Description provides details about the theme (optional)
	Description string `yaml:"description,omitempty"`
	// Version is the theme file format version (currently "1")
	Version string `yaml:"version"`
	// Colors defines the color palette
	Colors ThemeColors `yaml:"colors"`
}

// ThemeColors contains all color definitions for a theme.
// All colors should be hex format (#RRGGBB or #RGB).
type ThemeColors struct {
	// Base colors
	Surface    string `yaml:"surface"`
	Background string `yaml:"background"`
	Accent     string `yaml:"accent"`
	Border     string `yaml:"border"`
	Text       string `yaml:"text"`
	Muted      string `yaml:"muted"`

	// Optional colors, derived from the base colors when empty
	HeaderBorder string `yaml:"header_border,omitempty"`
	Track        string `yaml:"track,omitempty"`
	Subtle       string `yaml:"subtle,omitempty"`
	Faint        string `yaml:"faint,omitempty"`
	Complete     string `yaml:"complete,omitempty"`
	Error        string `yaml:"error,omitempty"`

	// Header strip, five entries each when given
	TrackStops []string `yaml:"track_stops,omitempty"`
	Markers    []string `yaml:"markers,omitempty"`
}

// hexColorRegex validates hex color format.
var hexColorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// LoadThemeFile loads a theme from a YAML file.
func LoadThemeFile(path string) (*ThemeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}
	return ParseThemeFile(data)
}

// ParseThemeFile decodes and validates a theme from YAML.
func ParseThemeFile(data []byte) (*ThemeFile, error) {
	var theme ThemeFile
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("parsing theme file: %w", err)
	}

	if err := theme.Validate(); err != nil {
		return nil, fmt.Errorf("invalid theme: %w", err)
	}

	return &theme, nil
}

// Validate checks that the theme file is well-formed.
func (t *ThemeFile) Validate() error {
	if t.Name == "" {
		return errors.New("theme name is required")
	}

	if t.Version == "" {
		return errors.New("theme version is required")
	}

	if t.Version != "1" {
		return fmt.Errorf("unsupported theme version: %s (supported: 1)", t.Version)
	}

	required := []struct{ name, color string }{
		{"surface", t.Colors.Surface},
		{"background", t.Colors.Background},
		{"accent", t.Colors.Accent},
		{"border", t.Colors.Border},
		{"text", t.Colors.Text},
		{"muted", t.Colors.Muted},
	}
	for _, c := range required {
		if c.color == "" {
			return fmt.Errorf("color '%s' is required", c.name)
		}
		if !isValidHexColor(c.color) {
			return fmt.Errorf("color '%s' has invalid format: %s (expected #RGB or #RRGGBB)", c.name, c.color)
		}
	}

	optional := []struct{ name, color string }{
		{"header_border", t.Colors.HeaderBorder},
		{"track", t.Colors.Track},
		{"subtle", t.Colors.Subtle},
		{"faint", t.Colors.Faint},
		{"complete", t.Colors.Complete},
		{"error", t.Colors.Error},
	}
	for _, c := range optional {
		if c.color != "" && !isValidHexColor(c.color) {
			return fmt.Errorf("color '%s' has invalid format: %s (expected #RGB or #RRGGBB)", c.name, c.color)
		}
	}

	lists := []struct {
		name   string
		colors []string
	}{
		{"track_stops", t.Colors.TrackStops},
		{"markers", t.Colors.Markers},
	}
	for _, l := range lists {
		if l.colors == nil {
			continue
		}
		if len(l.colors) != 5 {
			return fmt.Errorf("'%s' must list 5 colors, got %d", l.name, len(l.colors))
		}
		for i, c := range l.colors {
			if !isValidHexColor(c) {
				return fmt.Errorf("color '%s[%d]' has invalid format: %s (expected #RGB or #RRGGBB)", l.name, i, c)
			}
		}
	}

	return nil
}

// isValidHexColor checks if a string is a valid hex color.
func isValidHexColor(color string) bool {
	return hexColorRegex.MatchString(color)
}

// ToPalette converts the theme file to a ColorPalette. Optional colors
// fall back to base colors; the header strip falls back to the default
// theme's strip.
func (t *ThemeFile) ToPalette() *ColorPalette {
	c := t.Colors
	p := &ColorPalette{
		Surface:    c.Surface,
		Background: c.Background,
		Accent:     c.Accent,
		Border:     c.Border,
		Text:       c.Text,
		Muted:      c.Muted,
	}

	p.HeaderBorder = colorOrDefault(c.HeaderBorder, c.Border)
	p.Track = colorOrDefault(c.Track, c.Border)
	p.Subtle = colorOrDefault(c.Subtle, c.Muted)
	p.Faint = colorOrDefault(c.Faint, c.Border)
	p.Complete = colorOrDefault(c.Complete, HeistPalette().Complete)
	p.Error = colorOrDefault(c.Error, HeistPalette().Error)

	def := HeistPalette()
	p.TrackStops = def.TrackStops
	p.Markers = def.Markers
	if len(c.TrackStops) == len(p.TrackStops) {
		copy(p.TrackStops[:], c.TrackStops)
	}
	if len(c.Markers) == len(p.Markers) {
		copy(p.Markers[:], c.Markers)
	}

	return p
}

// colorOrDefault returns the color if non-empty, otherwise returns the default.
func colorOrDefault(color, defaultColor string) string {
	if color != "" {
		return color
	}
	return defaultColor
}

var (
	customMu     sync.RWMutex
	customThemes = make(map[ThemeName]*ThemeFile)
)

// RegisterCustomTheme registers a custom theme by name.
func RegisterCustomTheme(name ThemeName, theme *ThemeFile) {
	customMu.Lock()
	defer customMu.Unlock()
	customThemes[name] = theme
}

// GetCustomTheme returns a custom theme by name, or nil if not found.
func GetCustomTheme(name ThemeName) *ThemeFile {
	customMu.RLock()
	defer customMu.RUnlock()
	return customThemes[name]
}

// CustomThemeNames returns the sorted names of all registered custom themes.
func CustomThemeNames() []string {
	customMu.RLock()
	defer customMu.RUnlock()
	names := make([]string, 0, len(customThemes))
	for name := range customThemes {
		names = append(names, string(name))
	}
	slices.Sort(names)
	return names
}

// ClearCustomThemes removes all registered custom themes.
// Primarily used for testing.
func ClearCustomThemes() {
	customMu.Lock()
	defer customMu.Unlock()
	customThemes = make(map[ThemeName]*ThemeFile)
}

// IsBuiltinTheme checks if a theme name is a built-in theme.
func IsBuiltinTheme(name string) bool {
	return slices.Contains(BuiltinThemes(), name)
}

// IsCustomTheme checks if a theme name is a registered custom theme.
func IsCustomTheme(name string) bool {
	return GetCustomTheme(ThemeName(name)) != nil
}

// DiscoverCustomThemes loads every valid theme in dir. A missing directory
// is not an error. Invalid themes are skipped and reported.
func DiscoverCustomThemes(dir string) ([]string, []error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, []error{fmt.Errorf("reading themes directory: %w", err)}
	}

	var loaded []string
	var errs []error

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		theme, err := LoadThemeFile(filepath.Join(dir, name))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}

		themeName := strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml")

		// Built-in themes cannot be overridden
		if IsBuiltinTheme(themeName) {
			errs = append(errs, fmt.Errorf("%s: cannot override built-in theme '%s'", name, themeName))
			continue
		}

		RegisterCustomTheme(ThemeName(themeName), theme)
		loaded = append(loaded, themeName)
	}

	return loaded, errs
}

// ExportTheme exports a theme to YAML format, as a starting point for a
// custom theme.
func ExportTheme(name ThemeName) ([]byte, error) {
	if custom := GetCustomTheme(name); custom != nil {
		return yaml.Marshal(custom)
	}
	if !IsBuiltinTheme(string(name)) {
		return nil, fmt.Errorf("unknown theme: %s", name)
	}
	return yaml.Marshal(paletteToThemeFile(string(name), GetPalette(name)))
}

// paletteToThemeFile converts a ColorPalette to a ThemeFile for export.
func paletteToThemeFile(name string, p *ColorPalette) *ThemeFile {
	return &ThemeFile{
		Name:        name,
		Description: fmt.Sprintf("Exported from heistboard built-in theme '%s'", name),
		Version:     "1",
		Colors: ThemeColors{
			Surface:      p.Surface,
			Background:   p.Background,
			Accent:       p.Accent,
			Border:       p.Border,
			Text:         p.Text,
			Muted:        p.Muted,
			HeaderBorder: p.HeaderBorder,
			Track:        p.Track,
			Subtle:       p.Subtle,
			Faint:        p.Faint,
			Complete:     p.Complete,
			Error:        p.Error,
			TrackStops:   p.TrackStops[:],
			Markers:      p.Markers[:],
		},
	}
}

// SaveTheme writes a theme to dir as <name>.yaml.
func SaveTheme(dir, name string, theme *ThemeFile) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating themes directory: %w", err)
	}

	data, err := yaml.Marshal(theme)
	if err != nil {
		return fmt.Errorf("marshaling theme: %w", err)
	}

	path := filepath.Join(dir, name+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing theme file: %w", err)
	}

	return nil
}
