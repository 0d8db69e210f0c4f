package leaderboard

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SquadColors is the fixed palette assigned to rows by position.
var SquadColors = [10]string{
	"#ef4444", "#f97316", "#eab308", "#22c55e", "#06b6d4",
	"#3b82f6", "#8b5cf6", "#ec4899", "#f43f5e", "#14b8a6",
}

const (
	// CompleteColor marks finished teams (badge, border, fill start).
	CompleteColor = "#22c55e"
	// CompleteLightColor is the end stop of the finished-team fill gradient.
	CompleteLightColor = "#4ade80"
	// FillAlpha is the opacity of the running-team fill's end stop (0xdd).
	FillAlpha = float64(0xdd) / 0xff
	// Quadrants is the number of decorative segments in each progress bar.
	Quadrants = 4
	// RunnerMinOffset is the smallest runner offset, in percent.
	RunnerMinOffset = 2
	// RunnerLead is how far the runner trails the fill edge, in percent.
	RunnerLead = 3
	// EscapedLabel replaces the stage chip once a team finishes.
	EscapedLabel = "ESCAPED!"
)

// Waypoints are the decorative labels along the track header, in order.
var Waypoints = [5]string{"ENTRANCE", "SIGNAL JAMMER", "VAULT", "GETAWAY", "EXIT"}

// ShortWaypoints are the abbreviated labels for headers too narrow for
// Waypoints.
var ShortWaypoints = [5]string{"ENTRY", "JAMMER", "VAULT", "AWAY", "EXIT"}

// ColorFor returns the palette color for the row at index.
func ColorFor(index int) string {
	n := len(SquadColors)
	return SquadColors[((index%n)+n)%n]
}

// RowColor returns the accent color of a row: green once complete,
// otherwise the position's palette color.
func RowColor(e Entry, index int) string {
	if e.IsComplete {
		return CompleteColor
	}
	return ColorFor(index)
}

// BadgeKind identifies what the leftmost badge shows.
type BadgeKind int

const (
	// BadgeRank shows the running position (index+1).
	BadgeRank BadgeKind = iota
	// BadgeTrophy is shown for a first-place finish.
	BadgeTrophy
	// BadgeSilver is shown for a second-place finish.
	BadgeSilver
	// BadgeBronze is shown for a third-place finish.
	BadgeBronze
	// BadgeFinish shows "#<finishPosition>" for other finishes.
	BadgeFinish
)

// Badge is the derived content of a row's badge.
type Badge struct {
	Kind       BadgeKind
	Text       string // set for BadgeRank and BadgeFinish
	Background string
}

// Label returns the text to draw inside the badge using glyphs g.
func (b Badge) Label(g Glyphs) string {
	switch b.Kind {
	case BadgeTrophy:
		return g.Trophy
	case BadgeSilver:
		return g.Silver
	case BadgeBronze:
		return g.Bronze
	default:
		return b.Text
	}
}

// BadgeFor derives the badge of the entry at index. Running teams show
// their position in the sequence, never FinishPosition.
func BadgeFor(e Entry, index int) Badge {
	b := Badge{Background: RowColor(e, index)}
	if !e.IsComplete {
		b.Kind = BadgeRank
		b.Text = strconv.Itoa(index + 1)
		return b
	}

	switch {
	case !e.HasFinishPosition():
		b.Kind = BadgeFinish
		b.Text = "#?"
	case e.Position() == 1:
		b.Kind = BadgeTrophy
	case e.Position() == 2:
		b.Kind = BadgeSilver
	case e.Position() == 3:
		b.Kind = BadgeBronze
	default:
		b.Kind = BadgeFinish
		b.Text = "#" + strconv.Itoa(e.Position())
	}
	return b
}

// StatusChip returns the chip text: EscapedLabel once complete, otherwise
// the stage tag upper-cased with underscores shown as spaces.
func StatusChip(e Entry) string {
	if e.IsComplete {
		return EscapedLabel
	}
	return FormatView(e.CurrentView)
}

// FormatView turns a stage tag like "signal_jammer" into "SIGNAL JAMMER".
// Every underscore becomes a space, so a multi-word tag such as
// "inner_vault_door" reads "INNER VAULT DOOR" rather than keeping the
// underscores after the first.
func FormatView(view string) string {
	return strings.ReplaceAll(strings.ToUpper(view), "_", " ")
}

// Subtitle returns the operatives line under the team name.
func Subtitle(e Entry) string {
	return fmt.Sprintf("%d operatives", e.PlayerCount)
}

// RoundPercent rounds half up, so 44.5 becomes 45 and -0.5 becomes 0.
func RoundPercent(p float64) int {
	return int(math.Floor(p + 0.5))
}

// PercentText returns the label drawn at the right end of the bar.
func PercentText(p float64) string {
	return strconv.Itoa(RoundPercent(p)) + "%"
}

// RunnerOffset returns the runner's left offset in percent. Only the lower
// bound is clamped; values above 100 pass through like the fill does.
func RunnerOffset(p float64) float64 {
	return math.Max(RunnerMinOffset, p-RunnerLead)
}

// Gradient describes a two-stop horizontal fill.
type Gradient struct {
	From string
	To   string
	// ToAlpha is the opacity of the To stop over the track background.
	ToAlpha float64
}

// FillGradient returns the progress fill of the entry at index.
func FillGradient(e Entry, index int) Gradient {
	c := RowColor(e, index)
	if e.IsComplete {
		return Gradient{From: c, To: CompleteLightColor, ToAlpha: 1}
	}
	return Gradient{From: c, To: c, ToAlpha: FillAlpha}
}
