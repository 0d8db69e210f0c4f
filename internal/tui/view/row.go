package view

import (
	"strings"

	"github.com/Iron-Ham/heistboard/internal/leaderboard"
	"github.com/Iron-Ham/heistboard/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	// badgeInner is the minimum label width inside a badge.
	badgeInner = 3
	// rowChrome is the horizontal space a row's border and padding take.
	rowChrome = 4
	// rowLines is the height of a row including its border.
	rowLines = 5
	// rowGap is the blank space between rows.
	rowGap = 1
	// rowPitch is the distance between the tops of consecutive rows.
	rowPitch = rowLines + rowGap
	// nameMin is the name width a long chip cannot squeeze below.
	nameMin = 12
)

// RowState is what one row needs to render.
type RowState struct {
	Entry  leaderboard.Entry
	Index  int
	Fill   float64
	Runner float64
	// Opacity fades the whole row toward the panel surface.
	Opacity float64
	// Width is the outer width of the row box.
	Width int
}

// renderRow renders one bordered row, rowLines high and st.Width wide.
func renderRow(st RowState, theme *styles.Styles, g leaderboard.Glyphs) string {
	s := theme
	if st.Opacity < 1 {
		s = styles.NewStyles(theme.Renderer(), theme.Palette.Faded(max(st.Opacity, 0)))
	}
	p := s.Palette
	fade := func(c string) string { return styles.Fade(c, st.Opacity, p.Surface) }

	inner := max(st.Width-rowChrome, 1)
	bg := s.Cell("", p.Background)
	pad := func(n int) string {
		if n <= 0 {
			return ""
		}
		return bg.Render(strings.Repeat(" ", n))
	}

	e := st.Entry

	// Line 1: badge, name, chip
	badge := leaderboard.BadgeFor(e, st.Index)
	label := lipgloss.PlaceHorizontal(max(badgeInner, ansi.StringWidth(badge.Label(g))), lipgloss.Center, badge.Label(g))
	badgeText := s.Badge.Background(styles.Lip(fade(badge.Background))).Render(label)
	badgeWidth := lipgloss.Width(badgeText)

	chipStyle := s.Chip
	if e.IsComplete {
		chipStyle = s.ChipComplete
	}
	// The name keeps up to nameMin cells; the chip gives way first.
	avail := inner - badgeWidth - 1 - 1
	chipRoom := avail - min(ansi.StringWidth(e.Name), nameMin) - lipgloss.Width(chipStyle.Render(""))
	chip := ""
	if chipRoom > 0 {
		chip = chipStyle.Render(ansi.Truncate(leaderboard.StatusChip(e), chipRoom, "…"))
	}
	chipWidth := lipgloss.Width(chip)

	nameRoom := avail - chipWidth
	name := ansi.Truncate(e.Name, max(nameRoom, 0), "…")
	nameText := s.Name.Render(name)

	line1 := badgeText + pad(1) + nameText +
		pad(inner-badgeWidth-1-lipgloss.Width(nameText)-chipWidth) + chip
	line1 = fitLine(line1, inner, pad)

	// Line 2: operatives
	sub := s.Subtitle.Render(ansi.Truncate(leaderboard.Subtitle(e), max(inner-badgeWidth-1, 0), "…"))
	line2 := fitLine(pad(badgeWidth+1)+sub, inner, pad)

	// Line 3: progress bar
	bar := buildBar(BarState{
		Entry:  e,
		Index:  st.Index,
		Fill:   st.Fill,
		Runner: st.Runner,
		Width:  inner,
	}, theme.Palette, g)
	if st.Opacity < 1 {
		for i := range bar {
			bar[i].bg = fade(bar[i].bg)
			if bar[i].fg != "" {
				bar[i].fg = fade(bar[i].fg)
			}
		}
	}
	line3 := bar.render(s)

	box := s.Row
	if e.IsComplete {
		box = s.RowComplete
	}
	return box.Width(inner + 2).Render(line1 + "\n" + line2 + "\n" + line3)
}

// fitLine truncates or pads an already styled line to exactly width cells.
func fitLine(line string, width int, pad func(int) string) string {
	w := lipgloss.Width(line)
	if w > width {
		return ansi.Truncate(line, width, "")
	}
	return line + pad(width-w)
}
