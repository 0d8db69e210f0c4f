package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/Iron-Ham/heistboard/internal/leaderboard"
	"github.com/Iron-Ham/heistboard/internal/tui/styles"
	"github.com/charmbracelet/x/ansi"
)

// FooterState holds the state needed to render the status line.
type FooterState struct {
	// Source names the feed, e.g. a file path or URL.
	Source string
	// Entries is the latest snapshot.
	Entries []leaderboard.Entry
	// Updated is when the latest snapshot arrived; zero before the first.
	Updated time.Time
	// Err is the most recent feed error, cleared by the next snapshot.
	Err error
	// Now is the reference time for the age of the snapshot.
	Now time.Time
	// Width is the available width for the footer.
	Width int
}

// RenderFooter renders the status line under the board.
func RenderFooter(state FooterState, s *styles.Styles) string {
	var parts []string

	if state.Source != "" {
		parts = append(parts, s.StatusBar.Render(state.Source))
	}

	escaped := 0
	for _, e := range state.Entries {
		if e.IsComplete {
			escaped++
		}
	}
	parts = append(parts, s.StatusBar.Render(fmt.Sprintf("%d/%d escaped", escaped, len(state.Entries))))

	if !state.Updated.IsZero() {
		parts = append(parts, s.StatusBar.Render("updated "+formatAge(state.Now.Sub(state.Updated))))
	}

	if state.Err != nil {
		parts = append(parts, s.ErrorMsg.Render(state.Err.Error()))
	}

	line := strings.Join(parts, " ")
	if state.Width > 0 {
		line = ansi.Truncate(line, state.Width, "…")
	}
	return line
}

// formatAge formats how long ago something happened.
func formatAge(d time.Duration) string {
	switch {
	case d < time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
}
