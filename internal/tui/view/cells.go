package view

import (
	"strings"

	"github.com/Iron-Ham/heistboard/internal/tui/styles"
	"github.com/rivo/uniseg"
)

// cell is one terminal column of a cell line.
type cell struct {
	text string
	fg   string
	bg   string
	bold bool
	// cont marks the second column of a wide glyph.
	cont bool
}

// cellLine is a fixed-width row of cells that can be painted in layers.
type cellLine []cell

func newCellLine(width int, bg string) cellLine {
	l := make(cellLine, max(width, 0))
	for i := range l {
		l[i] = cell{text: " ", bg: bg}
	}
	return l
}

// clearAt blanks whatever glyph occupies column i, including the other
// half of a wide glyph.
func (l cellLine) clearAt(i int) {
	if l[i].cont && i > 0 {
		l[i-1].text = " "
	}
	if i+1 < len(l) && l[i+1].cont {
		l[i+1] = cell{text: " ", bg: l[i+1].bg}
	}
	l[i].cont = false
	l[i].text = " "
}

// put draws s starting at column x on top of the existing backgrounds.
// Glyphs that do not fit entirely are dropped. An empty fg keeps the
// cell's foreground.
func (l cellLine) put(x int, s, fg string, bold bool) {
	state := -1
	for len(s) > 0 {
		var g string
		var w int
		g, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
		if w == 0 {
			continue
		}
		if x >= 0 && x+w <= len(l) {
			for i := x; i < x+w; i++ {
				l.clearAt(i)
			}
			l[x].text = g
			if fg != "" {
				l[x].fg = fg
			}
			l[x].bold = bold
			for i := x + 1; i < x+w; i++ {
				l[i].cont = true
			}
		}
		x += w
	}
}

// render turns the line into styled text, merging runs of equal style.
func (l cellLine) render(s *styles.Styles) string {
	var b strings.Builder
	var run strings.Builder
	var cur cell
	flush := func() {
		if run.Len() == 0 {
			return
		}
		st := s.Cell(cur.fg, cur.bg).Bold(cur.bold)
		b.WriteString(st.Render(run.String()))
		run.Reset()
	}
	for i, c := range l {
		if c.cont {
			continue
		}
		if i == 0 || c.fg != cur.fg || c.bg != cur.bg || c.bold != cur.bold {
			flush()
			cur = c
		}
		run.WriteString(c.text)
	}
	flush()
	return b.String()
}
