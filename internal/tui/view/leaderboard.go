package view

import (
	"math"
	"strings"

	"github.com/Iron-Ham/heistboard/internal/leaderboard"
	"github.com/Iron-Ham/heistboard/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Static text of the board.
const (
	TitleText        = "HEIST PROGRESS"
	PlaceholderTitle = "AWAITING SQUAD DEPLOYMENT..."
	PlaceholderHint  = "Teams will appear here once heist begins"
)

const (
	// MinWidth is the narrowest board that is still drawn in full.
	MinWidth = 40
	// DefaultWidth is used when the terminal width is unknown.
	DefaultWidth = 80
	// panelChrome is the horizontal space the panel border and padding take.
	panelChrome = 6
	// headerChrome is the horizontal space of the track header's border
	// and padding.
	headerChrome = 4
)

// LeaderboardView renders the heist leaderboard panel.
type LeaderboardView struct {
	width  int
	theme  *styles.Theme
	glyphs leaderboard.Glyphs
}

// NewLeaderboardView creates a view of the given outer width. A nil theme
// uses the default theme.
func NewLeaderboardView(width int, theme *styles.Theme, glyphs leaderboard.Glyphs) *LeaderboardView {
	if theme == nil {
		theme = styles.DefaultThemeFor(nil)
	}
	v := &LeaderboardView{theme: theme, glyphs: glyphs}
	v.SetWidth(width)
	return v
}

// SetWidth changes the outer width, clamped to MinWidth.
func (v *LeaderboardView) SetWidth(width int) {
	if width <= 0 {
		width = DefaultWidth
	}
	v.width = max(width, MinWidth)
}

// Width returns the outer width.
func (v *LeaderboardView) Width() int {
	return v.width
}

// SetTheme switches the theme. A nil theme is ignored.
func (v *LeaderboardView) SetTheme(theme *styles.Theme) {
	if theme != nil {
		v.theme = theme
	}
}

// Theme returns the current theme.
func (v *LeaderboardView) Theme() *styles.Theme {
	return v.theme
}

// innerWidth is the width available inside the panel.
func (v *LeaderboardView) innerWidth() int {
	return v.width - panelChrome
}

// Render draws entries with every animation at rest.
func (v *LeaderboardView) Render(entries []leaderboard.Entry) string {
	return v.RenderFrames(entries, leaderboard.SettledFrames(entries))
}

// RenderFrames draws the board for the current snapshot using the given
// animation frames. With no entries the placeholder is drawn and frames
// are ignored.
func (v *LeaderboardView) RenderFrames(entries []leaderboard.Entry, frames []leaderboard.Frame) string {
	s := v.theme.Styles
	inner := v.innerWidth()

	var b strings.Builder
	b.WriteString(v.renderTitle())
	b.WriteString("\n")
	b.WriteString(v.surfaceLine(inner))
	b.WriteString("\n")
	b.WriteString(v.renderTrackHeader())
	b.WriteString("\n")
	b.WriteString(v.surfaceLine(inner))
	b.WriteString("\n")

	if len(entries) == 0 {
		b.WriteString(v.renderPlaceholder())
	} else {
		b.WriteString(strings.Join(v.renderRows(frames), "\n"))
	}

	return s.Panel.Width(v.width - 2).Render(b.String())
}

func (v *LeaderboardView) surfaceLine(width int) string {
	return v.theme.Cell("", v.theme.Palette.Surface).Render(strings.Repeat(" ", max(width, 0)))
}

// renderTitle draws the centered heading flanked by the bank and runner.
func (v *LeaderboardView) renderTitle() string {
	text := v.glyphs.Bank + " " + TitleText + " " + v.glyphs.Runner
	return v.theme.Title.Width(v.innerWidth()).Align(lipgloss.Center).Render(text)
}

// renderTrackHeader draws the waypoint labels over the gradient strip.
func (v *LeaderboardView) renderTrackHeader() string {
	s := v.theme.Styles
	w := v.innerWidth() - headerChrome

	top := s.Waypoint.Render(spread(waypointLabels(w, v.glyphs.Door), w))
	strip := buildStrip(w, s.Palette).render(s)
	return s.TrackHeader.Width(w + 2).Render(top + "\n" + strip)
}

// waypointLabels picks the widest set of waypoint labels that fits width:
// the full names with the door, the short names with the door, or the
// short names alone.
func waypointLabels(width int, door string) []string {
	candidates := [][]string{
		withDoor(leaderboard.Waypoints[:], door),
		withDoor(leaderboard.ShortWaypoints[:], door),
	}
	for _, labels := range candidates {
		if fits(labels, width) {
			return labels
		}
	}
	return leaderboard.ShortWaypoints[:]
}

func withDoor(labels []string, door string) []string {
	out := make([]string, len(labels))
	copy(out, labels)
	out[len(out)-1] += " " + door
	return out
}

// fits reports whether labels fit width with at least one space between
// neighbours.
func fits(labels []string, width int) bool {
	total := len(labels) - 1
	for _, l := range labels {
		total += ansi.StringWidth(l)
	}
	return total <= width
}

// spread places labels across width with equal gaps, first label flush
// left and last flush right. Labels that cannot fit are truncated.
func spread(labels []string, width int) string {
	if len(labels) == 0 || width <= 0 {
		return strings.Repeat(" ", max(width, 0))
	}
	if len(labels) == 1 {
		return labels[0] + strings.Repeat(" ", max(width-ansi.StringWidth(labels[0]), 0))
	}

	total := 0
	for _, l := range labels {
		total += ansi.StringWidth(l)
	}
	gaps := len(labels) - 1
	free := width - total
	if free < gaps {
		line := ansi.Truncate(strings.Join(labels, " "), width, "")
		return line + strings.Repeat(" ", width-ansi.StringWidth(line))
	}

	var b strings.Builder
	for i, l := range labels {
		b.WriteString(l)
		if i < gaps {
			// distribute the remainder to the leftmost gaps
			n := free / gaps
			if i < free%gaps {
				n++
			}
			b.WriteString(strings.Repeat(" ", n))
		}
	}
	return b.String()
}

// renderRows composes row boxes on a line canvas. Each frame's box is
// placed at its fractional vertical position and horizontal slide; frames
// later in the slice are drawn over earlier ones.
func (v *LeaderboardView) renderRows(frames []leaderboard.Frame) []string {
	inner := v.innerWidth()

	height := 0
	for _, f := range frames {
		height = max(height, rowTop(f.Y)+rowLines)
	}
	for _, f := range frames {
		if !f.Exiting {
			height = max(height, (f.Index+1)*rowPitch-rowGap)
		}
	}

	canvas := make([]string, height)
	for _, f := range frames {
		box := renderRow(RowState{
			Entry:   f.Entry,
			Index:   f.Index,
			Fill:    f.Fill,
			Runner:  f.Runner,
			Opacity: f.Opacity,
			Width:   inner,
		}, v.theme.Styles, v.glyphs)

		top := rowTop(f.Y)
		shift := int(math.Round(f.Slide))
		for i, line := range strings.Split(box, "\n") {
			y := top + i
			if y < 0 || y >= height {
				continue
			}
			canvas[y] = v.slideLine(line, shift, inner)
		}
	}

	blank := v.surfaceLine(inner)
	for i := range canvas {
		if canvas[i] == "" {
			canvas[i] = blank
		}
	}
	return canvas
}

func rowTop(y float64) int {
	return int(math.Round(y * rowPitch))
}

// slideLine shifts a rendered line horizontally by shift cells, keeping
// its width. Vacated cells show the panel surface.
func (v *LeaderboardView) slideLine(line string, shift, width int) string {
	if shift == 0 {
		return line
	}
	fill := func(n int) string {
		return v.theme.Cell("", v.theme.Palette.Surface).Render(strings.Repeat(" ", n))
	}
	if shift >= width || -shift >= width {
		return fill(width)
	}
	if shift > 0 {
		return fill(shift) + ansi.Truncate(line, width-shift, "")
	}
	return ansi.TruncateLeft(line, -shift, "") + fill(-shift)
}

// renderPlaceholder draws the empty-state block.
func (v *LeaderboardView) renderPlaceholder() string {
	s := v.theme.Styles
	w := v.innerWidth()
	center := func(st lipgloss.Style, text string) string {
		return st.Width(w).Align(lipgloss.Center).Render(ansi.Truncate(text, w, "…"))
	}
	lines := []string{
		v.surfaceLine(w),
		center(s.PlaceholderIcon, v.glyphs.Bank),
		v.surfaceLine(w),
		center(s.PlaceholderText, PlaceholderTitle),
		center(s.PlaceholderHint, PlaceholderHint),
		v.surfaceLine(w),
	}
	return strings.Join(lines, "\n")
}
