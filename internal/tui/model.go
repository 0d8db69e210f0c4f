package tui

import (
	"slices"
	"strings"
	"time"

	"github.com/Iron-Ham/heistboard/internal/errors"
	"github.com/Iron-Ham/heistboard/internal/feed"
	"github.com/Iron-Ham/heistboard/internal/leaderboard"
	"github.com/Iron-Ham/heistboard/internal/logging"
	"github.com/Iron-Ham/heistboard/internal/tui/anim"
	"github.com/Iron-Ham/heistboard/internal/tui/msg"
	"github.com/Iron-Ham/heistboard/internal/tui/styles"
	"github.com/Iron-Ham/heistboard/internal/tui/view"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Options configure a Model.
type Options struct {
	// Theme styles the board. Nil uses the default theme.
	Theme *styles.Theme
	// Glyphs selects emoji or ASCII badges and runners.
	Glyphs leaderboard.Glyphs
	// Anim configures the row springs.
	Anim anim.Options
	// Width fixes the board width. Zero follows the terminal.
	Width int
	// Source names the feed in the status line.
	Source string
	// Updates delivers snapshots. Nil shows the empty board.
	Updates <-chan feed.Update
	// HideHelp drops the key help line.
	HideHelp bool
	// Logger receives feed events. Nil discards them.
	Logger *logging.Logger
	// Now is the clock for the status line. Nil uses time.Now.
	Now func() time.Time
}

// Model holds the TUI application state
type Model struct {
	opts   Options
	board  *anim.Board
	view   *view.LeaderboardView
	keys   keyMap
	help   help.Model
	logger *logging.Logger

	// Feed state
	source  string
	updated time.Time
	feedErr error
	closed  bool

	// UI state
	framing  bool
	motion   bool
	now      time.Time
	quitting bool
}

// NewModel creates a new TUI model
func NewModel(opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Theme == nil {
		opts.Theme = styles.DefaultThemeFor(nil)
	}
	if opts.Glyphs == (leaderboard.Glyphs{}) {
		opts.Glyphs = leaderboard.EmojiGlyphs
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}

	h := help.New()
	h.Styles.ShortKey = opts.Theme.HelpKey
	h.Styles.FullKey = opts.Theme.HelpKey
	h.Styles.ShortDesc = opts.Theme.StatusBar
	h.Styles.FullDesc = opts.Theme.StatusBar

	return Model{
		opts:   opts,
		board:  anim.NewBoard(opts.Anim),
		view:   view.NewLeaderboardView(opts.Width, opts.Theme, opts.Glyphs),
		keys:   keys,
		help:   h,
		logger: logger.WithSource("tui"),
		source: opts.Source,
		motion: !opts.Anim.Disabled,
		now:    opts.Now(),
	}
}

// Init starts listening to the feed and the status clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(msg.Listen(m.opts.Updates), msg.Tick())
}

// Update handles messages and updates the model
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return m.handleKeypress(message)

	case tea.WindowSizeMsg:
		if m.opts.Width == 0 {
			m.view.SetWidth(message.Width)
		}
		m.help.Width = message.Width
		return m, nil

	case msg.EntriesMsg:
		if diff := m.board.SetEntries(message.Entries); !diff.Empty() {
			m.logger.Debug("standings changed",
				"added", diff.Added, "removed", diff.Removed, "moved", diff.Moved)
		}
		m.updated = message.At
		if message.Source != "" {
			m.source = message.Source
		}
		m.feedErr = nil
		return m, tea.Batch(msg.Listen(m.opts.Updates), m.startFrames())

	case msg.FeedErrMsg:
		m.feedErr = message.Err
		m.logFeedError(message)
		return m, msg.Listen(m.opts.Updates)

	case msg.FeedClosedMsg:
		m.closed = true
		m.logger.Info("feed closed", "feed", m.source)
		return m, nil

	case msg.FrameMsg:
		m.board.Step()
		if m.board.Animating() {
			return m, msg.Frame(m.board.Options().FPS)
		}
		m.framing = false
		return m, nil

	case msg.TickMsg:
		m.now = m.opts.Now()
		return m, msg.Tick()
	}

	return m, nil
}

// logFeedError logs at the error's severity: warnings for failures the
// feed retries, errors for the rest.
func (m Model) logFeedError(fe msg.FeedErrMsg) {
	args := []any{"feed", fe.Source, "error", fe.Err, "retryable", errors.IsRetryable(fe.Err)}
	if errors.GetSeverity(fe.Err) <= errors.SeverityWarning {
		m.logger.Warn("feed error", args...)
		return
	}
	m.logger.Error("feed error", args...)
}

// startFrames begins the frame loop if the board is moving and no loop is
// already running.
func (m *Model) startFrames() tea.Cmd {
	if m.framing || !m.board.Animating() {
		return nil
	}
	m.framing = true
	return msg.Frame(m.board.Options().FPS)
}

func (m Model) handleKeypress(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(k, m.keys.Quit):
		m.quitting = true
		m.board.Release()
		return m, tea.Quit

	case key.Matches(k, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(k, m.keys.Theme):
		m.cycleTheme()

	case key.Matches(k, m.keys.Animate):
		m.toggleMotion()
	}
	return m, nil
}

// cycleTheme switches to the next built-in or custom theme.
func (m *Model) cycleTheme() {
	current := m.view.Theme()
	names := styles.ValidThemes()
	next := names[(slices.Index(names, string(current.Name))+1)%len(names)]

	theme, err := styles.NewTheme(current.Renderer(), next)
	if err != nil {
		m.logger.Warn("theme switch failed", "theme", next, "error", err)
		return
	}
	m.view.SetTheme(theme)
	m.help.Styles.ShortKey = theme.HelpKey
	m.help.Styles.FullKey = theme.HelpKey
	m.help.Styles.ShortDesc = theme.StatusBar
	m.help.Styles.FullDesc = theme.StatusBar
}

// toggleMotion swaps between animated and immediate updates.
func (m *Model) toggleMotion() {
	m.motion = !m.motion
	m.board.SetDisabled(!m.motion)
}

// View renders the board, the status line and the key help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	theme := m.view.Theme()
	var b strings.Builder
	b.WriteString(m.view.RenderFrames(m.board.Entries(), m.board.Frames()))
	b.WriteString("\n")

	source := m.source
	if m.closed {
		source += " (closed)"
	}
	b.WriteString(view.RenderFooter(view.FooterState{
		Source:  source,
		Entries: m.board.Entries(),
		Updated: m.updated,
		Err:     m.feedErr,
		Now:     m.now,
		Width:   m.view.Width(),
	}, theme.Styles))

	if !m.opts.HideHelp {
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

// Entries returns the snapshot on screen.
func (m Model) Entries() []leaderboard.Entry {
	return m.board.Entries()
}

// Animating reports whether the frame loop is running.
func (m Model) Animating() bool {
	return m.framing
}
