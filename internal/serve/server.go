// Package serve lets spectators watch the board over SSH.
//
// Every SSH session gets its own Bubble Tea program, renderer, and spring
// board, all fed from one shared [feed.Hub]. Sessions without a terminal
// can run the "snapshot" command to print the current board once.
package serve

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/Iron-Ham/heistboard/internal/errors"
	"github.com/Iron-Ham/heistboard/internal/feed"
	"github.com/Iron-Ham/heistboard/internal/leaderboard"
	"github.com/Iron-Ham/heistboard/internal/logging"
	"github.com/Iron-Ham/heistboard/internal/tui"
	"github.com/Iron-Ham/heistboard/internal/tui/anim"
	"github.com/Iron-Ham/heistboard/internal/tui/styles"
	"github.com/Iron-Ham/heistboard/internal/tui/view"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	wishlog "github.com/charmbracelet/wish/logging"
)

// SnapshotCommand prints the current board once and exits.
const SnapshotCommand = "snapshot"

// DefaultShutdownTimeout bounds how long Shutdown waits for sessions.
const DefaultShutdownTimeout = 10 * time.Second

// Config configures the spectator server.
type Config struct {
	Host        string
	Port        int
	HostKeyPath string
	// Theme names the theme every session starts with.
	Theme string
	// Glyphs selects emoji or ASCII badges.
	Glyphs leaderboard.Glyphs
	// Anim configures each session's row springs.
	Anim anim.Options
	// IdleTimeout disconnects sessions with no input. Zero disables it.
	IdleTimeout time.Duration
}

// Addr returns host:port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Server serves the board to SSH spectators.
type Server struct {
	cfg    Config
	hub    *feed.Hub
	logger *logging.Logger
	srv    *ssh.Server
}

// New creates a server showing the snapshots published to hub.
func New(cfg Config, hub *feed.Hub, logger *logging.Logger) (*Server, error) {
	if hub == nil {
		return nil, errors.NewValidationError("serve requires a hub")
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	if cfg.Theme != "" && !styles.IsValidTheme(cfg.Theme) {
		return nil, errors.NewValidationError(fmt.Sprintf("unknown theme %q", cfg.Theme)).
			WithField("serve.theme").
			WithValue(cfg.Theme)
	}
	if cfg.Glyphs == (leaderboard.Glyphs{}) {
		cfg.Glyphs = leaderboard.EmojiGlyphs
	}

	s := &Server{cfg: cfg, hub: hub, logger: logger.WithSource("serve")}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Addr()),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithMiddleware(
			s.commandMiddleware,
			bubbletea.Middleware(s.teaHandler),
			wishlog.Middleware(),
		),
	}
	if cfg.IdleTimeout > 0 {
		opts = append(opts, wish.WithIdleTimeout(cfg.IdleTimeout))
	}

	srv, err := wish.NewServer(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "creating ssh server")
	}
	s.srv = srv
	return s, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Addr()
}

// ListenAndServe listens on the configured address. It returns nil once
// the server is shut down.
func (s *Server) ListenAndServe() error {
	s.logger.Info("ssh server listening", "addr", s.Addr())
	return closedOK(s.srv.ListenAndServe())
}

// Serve accepts sessions on l.
func (s *Server) Serve(l net.Listener) error {
	s.logger.Info("ssh server listening", "addr", l.Addr().String())
	return closedOK(s.srv.Serve(l))
}

// Shutdown stops accepting sessions and waits for open ones to end.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("ssh server shutting down")
	return closedOK(s.srv.Shutdown(ctx))
}

// Close drops every session at once.
func (s *Server) Close() error {
	return closedOK(s.srv.Close())
}

func closedOK(err error) error {
	if errors.Is(err, ssh.ErrServerClosed) {
		return nil
	}
	return err
}

// teaHandler builds a board for one interactive session. Sessions without
// a terminal, or that ran a command, fall through to commandMiddleware.
func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	if len(sess.Command()) > 0 {
		return nil, nil
	}
	_, _, active := sess.Pty()
	if !active {
		return nil, nil
	}

	renderer := bubbletea.MakeRenderer(sess)
	theme, err := styles.NewTheme(renderer, s.cfg.Theme)
	if err != nil {
		theme = styles.DefaultThemeFor(renderer)
	}

	updates, unsubscribe := s.hub.Subscribe()
	ctx := sess.Context()
	context.AfterFunc(ctx, unsubscribe)

	logger := s.logger.WithSession(sess.User()).With("remote", sess.RemoteAddr().String())
	logger.Info("spectator joined")
	context.AfterFunc(ctx, func() { logger.Info("spectator left") })

	m := tui.NewModel(tui.Options{
		Theme:   theme,
		Glyphs:  s.cfg.Glyphs,
		Anim:    s.cfg.Anim,
		Source:  "live",
		Updates: updates,
		Logger:  logger,
	})
	return m, append(bubbletea.MakeOptions(sess), tea.WithAltScreen())
}

// commandMiddleware answers non-interactive sessions. It sits inside the
// bubbletea middleware and only runs when teaHandler declined the session.
func (s *Server) commandMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		cmd := sess.Command()
		switch {
		case len(cmd) == 1 && cmd[0] == SnapshotCommand:
			width := view.DefaultWidth
			if pty, _, ok := sess.Pty(); ok && pty.Window.Width > 0 {
				width = pty.Window.Width
			}
			renderer := bubbletea.MakeRenderer(sess)
			wish.Println(sess, s.Snapshot(renderer, width))
			if u, ok := s.hub.Latest(); ok && u.Err != nil {
				wish.Errorln(sess, "feed error: "+u.Err.Error())
			}
			_ = sess.Exit(0)
		case len(cmd) > 0:
			wish.Fatalln(sess, fmt.Sprintf("unknown command %q (try %q)", cmd[0], SnapshotCommand))
		default:
			wish.Fatalln(sess, "no active terminal: connect with ssh -t, or run the "+SnapshotCommand+" command")
		}
	}
}

// Snapshot renders the latest snapshot at rest.
func (s *Server) Snapshot(r *lipgloss.Renderer, width int) string {
	theme, err := styles.NewTheme(r, s.cfg.Theme)
	if err != nil {
		theme = styles.DefaultThemeFor(r)
	}
	var entries []leaderboard.Entry
	if u, ok := s.hub.LastSnapshot(); ok {
		entries = u.Entries
	}
	return view.NewLeaderboardView(width, theme, s.cfg.Glyphs).Render(entries)
}
