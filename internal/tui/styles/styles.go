package styles

import "github.com/charmbracelet/lipgloss"

// FrameAlpha is the opacity of the accent-colored panel frame.
const FrameAlpha = 0.3

// ChipCompleteAlpha is the opacity of the ESCAPED chip background.
const ChipCompleteAlpha = 0.2

// Styles holds every lipgloss style the board draws with. Styles are
// bound to a renderer so that each SSH session gets its own color profile.
type Styles struct {
	Palette *ColorPalette

	renderer *lipgloss.Renderer

	// Panel chrome
	Panel       lipgloss.Style
	Title       lipgloss.Style
	TrackHeader lipgloss.Style
	Waypoint    lipgloss.Style

	// Rows
	Row          lipgloss.Style
	RowComplete  lipgloss.Style
	Badge        lipgloss.Style
	Name         lipgloss.Style
	Chip         lipgloss.Style
	ChipComplete lipgloss.Style
	Subtitle     lipgloss.Style
	Percent      lipgloss.Style

	// Empty state
	PlaceholderIcon lipgloss.Style
	PlaceholderText lipgloss.Style
	PlaceholderHint lipgloss.Style

	// Status line
	StatusBar lipgloss.Style
	HelpKey   lipgloss.Style
	ErrorMsg  lipgloss.Style
}

// NewStyles builds styles for palette p. A nil renderer uses lipgloss's
// default renderer; a nil palette uses the default theme.
func NewStyles(r *lipgloss.Renderer, p *ColorPalette) *Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	if p == nil {
		p = HeistPalette()
	}

	s := &Styles{Palette: p, renderer: r}

	s.Panel = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Lip(Over(p.Accent, FrameAlpha, p.Surface))).
		BorderBackground(Lip(p.Surface)).
		Background(Lip(p.Surface)).
		Padding(1, 2)

	s.Title = r.NewStyle().
		Bold(true).
		Foreground(Lip(p.Accent)).
		Background(Lip(p.Surface))

	s.TrackHeader = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Lip(p.HeaderBorder)).
		BorderBackground(Lip(p.Surface)).
		Background(Lip(p.Background)).
		Padding(0, 1)

	s.Waypoint = r.NewStyle().
		Foreground(Lip(p.Subtle)).
		Background(Lip(p.Background))

	s.Row = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Lip(p.Border)).
		BorderBackground(Lip(p.Surface)).
		Background(Lip(p.Background)).
		Padding(0, 1)

	s.RowComplete = s.Row.
		Border(lipgloss.ThickBorder()).
		BorderForeground(Lip(p.Complete))

	s.Badge = r.NewStyle().
		Bold(true).
		Foreground(Lip(p.Text)).
		Padding(0, 1)

	s.Name = r.NewStyle().
		Bold(true).
		Foreground(Lip(p.Text)).
		Background(Lip(p.Background))

	s.Chip = r.NewStyle().
		Foreground(Lip(p.Muted)).
		Background(Lip(p.Track)).
		Padding(0, 1)

	s.ChipComplete = r.NewStyle().
		Foreground(Lip(p.Complete)).
		Background(Lip(Over(p.Complete, ChipCompleteAlpha, p.Background))).
		Padding(0, 1)

	s.Subtitle = r.NewStyle().
		Foreground(Lip(p.Subtle)).
		Background(Lip(p.Background))

	s.Percent = r.NewStyle().
		Bold(true).
		Foreground(Lip(p.Text))

	s.PlaceholderIcon = r.NewStyle().
		Background(Lip(p.Surface))

	s.PlaceholderText = r.NewStyle().
		Foreground(Lip(p.Muted)).
		Background(Lip(p.Surface))

	s.PlaceholderHint = r.NewStyle().
		Foreground(Lip(p.Faint)).
		Background(Lip(p.Surface))

	s.StatusBar = r.NewStyle().
		Foreground(Lip(p.Subtle)).
		Padding(0, 1)

	s.HelpKey = r.NewStyle().
		Bold(true).
		Foreground(Lip(p.Accent))

	s.ErrorMsg = r.NewStyle().
		Bold(true).
		Foreground(Lip(p.Error))

	return s
}

// Renderer returns the renderer the styles are bound to.
func (s *Styles) Renderer() *lipgloss.Renderer {
	return s.renderer
}

// Cell returns a style for a single cell with the given colors. An empty
// color leaves that attribute unset.
func (s *Styles) Cell(fg, bg string) lipgloss.Style {
	st := s.renderer.NewStyle()
	if fg != "" {
		st = st.Foreground(Lip(fg))
	}
	if bg != "" {
		st = st.Background(Lip(bg))
	}
	return st
}
