package anim

import (
	"github.com/Iron-Ham/heistboard/internal/leaderboard"
)

// DefaultFPS is the frame rate used when Options.FPS is unset.
const DefaultFPS = 60

// DefaultSlideDistance is the enter/exit slide in cells.
const DefaultSlideDistance = 6

// Options configure a Board.
type Options struct {
	// FPS is the rate Step is called at.
	FPS int
	// Row drives opacity, slide and vertical position.
	Row Params
	// Progress drives fill width and runner offset.
	Progress Params
	// SlideDistance is how far rows enter from the left and exit to the
	// right, in cells.
	SlideDistance float64
	// Disabled makes every change take effect immediately.
	Disabled bool
}

// DefaultOptions returns the board's standard motion.
func DefaultOptions() Options {
	return Options{
		FPS:           DefaultFPS,
		Row:           RowParams,
		Progress:      ProgressParams,
		SlideDistance: DefaultSlideDistance,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.FPS <= 0 {
		o.FPS = d.FPS
	}
	if !o.Row.Valid() {
		o.Row = d.Row
	}
	if !o.Progress.Valid() {
		o.Progress = d.Progress
	}
	if o.SlideDistance < 0 {
		o.SlideDistance = d.SlideDistance
	}
	return o
}

type row struct {
	key     string
	entry   leaderboard.Entry
	index   int
	exiting bool

	opacity *Spring
	slide   *Spring
	y       *Spring
	fill    *Spring
	runner  *Spring
}

func (r *row) springs() [5]*Spring {
	return [5]*Spring{r.opacity, r.slide, r.y, r.fill, r.runner}
}

func (r *row) settled() bool {
	for _, s := range r.springs() {
		if !s.Settled() {
			return false
		}
	}
	return true
}

func (r *row) snap() {
	for _, s := range r.springs() {
		s.Snap()
	}
}

func (r *row) frame() leaderboard.Frame {
	return leaderboard.Frame{
		Key:     r.key,
		Entry:   r.entry,
		Index:   r.index,
		Opacity: clamp01(r.opacity.Value()),
		Slide:   r.slide.Value(),
		Y:       r.y.Value(),
		Fill:    r.fill.Value(),
		Runner:  r.runner.Value(),
		Exiting: r.exiting,
	}
}

// Board holds the animated state of every row on the leaderboard.
// It is not safe for concurrent use; the owning tea.Model serializes access.
type Board struct {
	opts    Options
	rows    map[string]*row
	order   []string
	exiting []string
	entries []leaderboard.Entry
}

// NewBoard creates an empty board.
func NewBoard(opts Options) *Board {
	return &Board{
		opts: opts.withDefaults(),
		rows: make(map[string]*row),
	}
}

// Options returns the effective options.
func (b *Board) Options() Options {
	return b.opts
}

// Entries returns the latest snapshot.
func (b *Board) Entries() []leaderboard.Entry {
	return b.entries
}

// Len returns the number of rows in the latest snapshot.
func (b *Board) Len() int {
	return len(b.order)
}

// SetEntries replaces the snapshot and retargets every row. New rows fade
// and slide in from the left, removed rows fade and slide out to the
// right, and surviving rows glide to their new positions and progress.
// An empty snapshot clears the board at once, exiting rows included.
func (b *Board) SetEntries(entries []leaderboard.Entry) leaderboard.Diff {
	diff := leaderboard.Reconcile(b.entries, entries)
	b.entries = entries

	if len(entries) == 0 {
		b.Release()
		b.entries = entries
		return diff
	}

	keys := leaderboard.Keys(entries)
	present := make(map[string]struct{}, len(keys))
	for i, k := range keys {
		present[k] = struct{}{}
		e := entries[i]
		r, ok := b.rows[k]
		if !ok {
			r = b.newRow(k, i, e)
			b.rows[k] = r
		} else if r.exiting {
			b.revive(r)
		}
		r.entry = e
		r.index = i
		r.y.SetTarget(float64(i))
		r.fill.SetTarget(e.ProgressPercent)
		r.runner.SetTarget(leaderboard.RunnerOffset(e.ProgressPercent))
	}

	for _, k := range b.order {
		if _, ok := present[k]; ok {
			continue
		}
		r := b.rows[k]
		r.exiting = true
		r.opacity.SetTarget(0)
		r.slide.SetTarget(b.opts.SlideDistance)
		b.exiting = append(b.exiting, k)
	}
	b.order = keys

	if b.opts.Disabled {
		b.finish()
	}
	return diff
}

func (b *Board) newRow(key string, index int, e leaderboard.Entry) *row {
	fps := b.opts.FPS
	rp, pp := b.opts.Row, b.opts.Progress
	return &row{
		key:     key,
		entry:   e,
		index:   index,
		opacity: NewSpring(fps, rp, 1).From(0),
		slide:   NewSpring(fps, rp, 0).From(-b.opts.SlideDistance),
		y:       NewSpring(fps, rp, float64(index)),
		fill:    NewSpring(fps, pp, e.ProgressPercent).From(0),
		runner:  NewSpring(fps, pp, leaderboard.RunnerOffset(e.ProgressPercent)).From(0),
	}
}

// revive brings back a row that reappears while it is still exiting.
func (b *Board) revive(r *row) {
	r.exiting = false
	r.opacity.SetTarget(1)
	r.slide.SetTarget(0)
	for i, k := range b.exiting {
		if k == r.key {
			b.exiting = append(b.exiting[:i], b.exiting[i+1:]...)
			break
		}
	}
}

// Step advances every row by one frame and drops rows whose exit finished.
func (b *Board) Step() {
	for _, r := range b.rows {
		for _, s := range r.springs() {
			s.Step()
		}
	}
	b.sweep()
}

// SetDisabled turns motion off or back on. Turning it off lands every row
// on its target.
func (b *Board) SetDisabled(disabled bool) {
	b.opts.Disabled = disabled
	if disabled {
		b.finish()
	}
}

// finish snaps every row to its target.
func (b *Board) finish() {
	for _, r := range b.rows {
		r.snap()
	}
	b.sweep()
}

func (b *Board) sweep() {
	kept := b.exiting[:0]
	for _, k := range b.exiting {
		r := b.rows[k]
		if r.opacity.Settled() {
			delete(b.rows, k)
			continue
		}
		kept = append(kept, k)
	}
	b.exiting = kept
}

// Animating reports whether another Step would change anything.
func (b *Board) Animating() bool {
	if len(b.exiting) > 0 {
		return true
	}
	for _, r := range b.rows {
		if !r.settled() {
			return true
		}
	}
	return false
}

// Frames returns the current render state in draw order: exiting rows
// first so that live rows are drawn over them, then live rows in
// snapshot order.
func (b *Board) Frames() []leaderboard.Frame {
	frames := make([]leaderboard.Frame, 0, len(b.exiting)+len(b.order))
	for _, k := range b.exiting {
		frames = append(frames, b.rows[k].frame())
	}
	for _, k := range b.order {
		frames = append(frames, b.rows[k].frame())
	}
	return frames
}

// Release drops every row and the snapshot. It is called when the board's
// view goes away so that no spring keeps the frame loop alive.
func (b *Board) Release() {
	clear(b.rows)
	b.order = nil
	b.exiting = nil
	b.entries = nil
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
