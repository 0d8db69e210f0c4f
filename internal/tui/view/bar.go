package view

import (
	"math"

	"github.com/Iron-Ham/heistboard/internal/leaderboard"
	"github.com/Iron-Ham/heistboard/internal/tui/styles"
	"github.com/rivo/uniseg"
)

const (
	gridGlyph   = "│"
	stripGlyph  = "━"
	markerGlyph = "●"
	// percentPad is the gap between the percentage and the bar's right edge.
	percentPad = 1
)

// BarState is everything the progress bar of one row needs.
type BarState struct {
	Entry leaderboard.Entry
	Index int
	// Fill and Runner are the drawn values in percent; they may lag the
	// entry's progress while animating.
	Fill   float64
	Runner float64
	Width  int
}

// quadrantColumns returns the columns holding the dividers between the
// bar's quadrants: the last column of each of the first three segments.
func quadrantColumns(width int) []int {
	cols := make([]int, 0, leaderboard.Quadrants-1)
	for k := 1; k < leaderboard.Quadrants; k++ {
		c := int(math.Round(float64(width*k)/leaderboard.Quadrants)) - 1
		if c >= 0 && c < width {
			cols = append(cols, c)
		}
	}
	return cols
}

// fillCells converts a fill percentage into a column count, clipped to
// the bar.
func fillCells(fill float64, width int) float64 {
	return min(max(fill/100*float64(width), 0), float64(width))
}

// runnerColumn returns the column the runner glyph starts at.
func runnerColumn(runner float64, width int) int {
	return int(math.Round(runner / 100 * float64(width)))
}

// buildBar lays out a progress bar: the track with quadrant dividers, the
// gradient fill over it, the percentage and the runner on top. The
// percentage moves left of the runner when the two would overlap. Anything
// past the right edge is clipped.
func buildBar(st BarState, p *styles.ColorPalette, g leaderboard.Glyphs) cellLine {
	line := newCellLine(st.Width, p.Track)
	if st.Width == 0 {
		return line
	}

	for _, c := range quadrantColumns(st.Width) {
		line[c].text = gridGlyph
		line[c].fg = p.Border
	}

	grad := leaderboard.FillGradient(st.Entry, st.Index)
	from := grad.From
	to := styles.Over(grad.To, grad.ToAlpha, p.Track)
	filled := fillCells(st.Fill, st.Width)
	for c := range line {
		center := float64(c) + 0.5
		if center > filled {
			break
		}
		line[c] = cell{text: " ", bg: styles.Blend(from, to, center/filled)}
	}

	runner := g.RunnerGlyph(st.Entry)
	rw := uniseg.StringWidth(runner)
	rc := runnerColumn(st.Runner, st.Width)

	pct := leaderboard.PercentText(st.Entry.ProgressPercent)
	pw := len(pct)
	px := st.Width - percentPad - pw

	// A runner starting past the right edge stays clipped; one that only
	// overhangs it is pulled back in.
	if rc < st.Width {
		rc = max(min(rc, st.Width-rw), 0)
		if px < rc+rw && rc < px+pw && rc-1-pw >= 0 {
			px = rc - 1 - pw
		}
	}
	line.put(px, pct, p.Text, true)
	line.put(rc, runner, p.Text, false)

	return line
}

// buildStrip lays out the header's decorative strip: a multi-stop
// gradient with a marker at each waypoint.
func buildStrip(width int, p *styles.ColorPalette) cellLine {
	line := newCellLine(width, p.Background)
	if width == 0 {
		return line
	}
	for c := range line {
		t := (float64(c) + 0.5) / float64(width)
		line[c].text = stripGlyph
		line[c].fg = styles.Stops(p.TrackStops[:], t)
	}
	n := len(p.Markers)
	for i, m := range p.Markers {
		c := int(math.Round(float64(i) * float64(width-1) / float64(n-1)))
		line[c].text = markerGlyph
		line[c].fg = m
	}
	return line
}
